package models

// University is a row of the universities catalog. ShortName is the unique
// key used in report payloads and logo lookups.
type University struct {
	ID        int    `json:"id"`
	ShortName string `json:"shortName"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
}
