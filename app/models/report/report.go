package models

import (
	"bytes"
	"encoding/json"
)

// WeeklyPoint is one summed amount for a (year, week) cell. Every requested
// (year, week) pair appears exactly once, with Amount 0 when no raw rows match.
type WeeklyPoint struct {
	Week   int `json:"week"`
	Year   int `json:"year"`
	Amount int `json:"amount"`
}

// CumulativePoint carries the running total of Amount over weeks 1..Week
// within its year. The running total resets at week 1 of each year.
type CumulativePoint struct {
	Week         int `json:"week"`
	Year         int `json:"year"`
	Amount       int `json:"amount"`
	RunningTotal int `json:"runningTotal"`
}

// UniversityReport holds both series for one university, ordered by
// (year, week) ascending, year-major.
type UniversityReport struct {
	Regular    []WeeklyPoint     `json:"regular"`
	Cumulative []CumulativePoint `json:"cumulative"`
}

// AggregationFailure records one university whose fetch failed while the rest
// of the payload succeeded. It is surfaced to the caller, never replaced by
// zero-filled data.
type AggregationFailure struct {
	University string `json:"university"`
	Error      string `json:"error"`
}

// ReportPayload maps university short names to their reports while preserving
// insertion order. The order follows the active-university listing and drives
// column ordering in the PDF, so a plain map (unordered, and sorted by key
// when marshalled) is not enough.
type ReportPayload struct {
	names   []string
	reports map[string]UniversityReport
}

func NewReportPayload() *ReportPayload {
	return &ReportPayload{reports: make(map[string]UniversityReport)}
}

// Add appends a university entry. Re-adding an existing name replaces the
// report but keeps its original position.
func (p *ReportPayload) Add(name string, rep UniversityReport) {
	if _, ok := p.reports[name]; !ok {
		p.names = append(p.names, name)
	}
	p.reports[name] = rep
}

// Names returns the short names in insertion order.
func (p *ReportPayload) Names() []string {
	return p.names
}

func (p *ReportPayload) Get(name string) (UniversityReport, bool) {
	rep, ok := p.reports[name]
	return rep, ok
}

func (p *ReportPayload) Len() int {
	return len(p.names)
}

// MarshalJSON emits the payload as a JSON object whose keys follow insertion
// order.
func (p *ReportPayload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range p.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(p.reports[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
