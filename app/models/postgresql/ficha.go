package models

// FichaRecord is one enrollment batch row from the fact table, already joined
// to the year and week lookup tables. Several rows may share the same
// (UniversityID, Year, Week); they must be summed, never overwritten.
type FichaRecord struct {
	UniversityID int `json:"universityId"`
	Year         int `json:"year"`
	Week         int `json:"week"`
	Amount       int `json:"amount"`
}
