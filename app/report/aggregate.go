package report

import (
	"context"
	"sort"

	modelPg "university-enrollment-report/app/models/postgresql"
	modelReport "university-enrollment-report/app/models/report"
	repository "university-enrollment-report/app/repository/postgresql"
)

// BuildSeries folds raw ficha rows into the regular and cumulative series for
// one university. Years are processed in ascending order, weeks 1..weekLimit;
// every (year, week) cell appears exactly once, zero-filled when no rows
// match. Rows sharing a cell are summed. The fold is pure: each call starts
// from fresh accumulators, so nothing leaks across universities or calls.
func BuildSeries(records []modelPg.FichaRecord, years []int, weekLimit int) modelReport.UniversityReport {
	sums := make(map[[2]int]int, len(records))
	for _, rec := range records {
		sums[[2]int{rec.Year, rec.Week}] += rec.Amount
	}

	sorted := append([]int(nil), years...)
	sort.Ints(sorted)

	rep := modelReport.UniversityReport{
		Regular:    make([]modelReport.WeeklyPoint, 0, len(sorted)*weekLimit),
		Cumulative: make([]modelReport.CumulativePoint, 0, len(sorted)*weekLimit),
	}

	for _, year := range sorted {
		running := 0
		for week := 1; week <= weekLimit; week++ {
			amount := sums[[2]int{year, week}]
			running += amount
			rep.Regular = append(rep.Regular, modelReport.WeeklyPoint{
				Week:   week,
				Year:   year,
				Amount: amount,
			})
			rep.Cumulative = append(rep.Cumulative, modelReport.CumulativePoint{
				Week:         week,
				Year:         year,
				Amount:       amount,
				RunningTotal: running,
			})
		}
	}
	return rep
}

// Engine aggregates raw ficha rows into per-university report series.
type Engine struct {
	fichas repository.FichaRepository
}

func NewEngine(fichas repository.FichaRepository) *Engine {
	return &Engine{fichas: fichas}
}

// Aggregate fetches all matching rows for one university in a single batched
// query and folds them. A fetch failure surfaces as a DataSourceError; it is
// never masked as a legitimate all-zero report.
func (e *Engine) Aggregate(ctx context.Context, universityID int, years []int, weekLimit int) (modelReport.UniversityReport, error) {
	if err := ValidateParams(years, weekLimit); err != nil {
		return modelReport.UniversityReport{}, err
	}

	records, err := e.fichas.FetchRange(ctx, universityID, years, weekLimit)
	if err != nil {
		return modelReport.UniversityReport{}, &DataSourceError{Op: "fetch fichas", Err: err}
	}
	return BuildSeries(records, years, weekLimit), nil
}

// ValidateParams checks the shared caller contract for aggregation and
// rendering: a non-empty set of positive years and a week limit of at least 1.
func ValidateParams(years []int, weekLimit int) error {
	if len(years) == 0 {
		return &InvalidParameterError{Param: "years", Reason: "must not be empty"}
	}
	for _, y := range years {
		if y <= 0 {
			return &InvalidParameterError{Param: "years", Reason: "must be positive integers"}
		}
	}
	if weekLimit < 1 {
		return &InvalidParameterError{Param: "weekLimit", Reason: "must be at least 1"}
	}
	return nil
}
