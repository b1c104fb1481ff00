package report

import (
	"context"
	"database/sql"
	"errors"
	"log"

	modelReport "university-enrollment-report/app/models/report"
	repository "university-enrollment-report/app/repository/postgresql"
)

// Assembler builds the canonical report payload consumed both by the JSON
// endpoints and by the PDF renderer.
type Assembler struct {
	engine       *Engine
	universities repository.UniversityRepository
}

func NewAssembler(engine *Engine, universities repository.UniversityRepository) *Assembler {
	return &Assembler{engine: engine, universities: universities}
}

// BuildAll aggregates every active university in listing order. A failure for
// one university does not abort the payload: the entry is omitted and the
// failure recorded, so a dashboard sees the gap instead of fake zeros. Only a
// failed university listing fails the whole call.
func (a *Assembler) BuildAll(ctx context.Context, years []int, weekLimit int) (*modelReport.ReportPayload, []modelReport.AggregationFailure, error) {
	if err := ValidateParams(years, weekLimit); err != nil {
		return nil, nil, err
	}

	universities, err := a.universities.GetActive(ctx)
	if err != nil {
		return nil, nil, &DataSourceError{Op: "list active universities", Err: err}
	}

	payload := modelReport.NewReportPayload()
	var failures []modelReport.AggregationFailure

	for _, uni := range universities {
		rep, err := a.engine.Aggregate(ctx, uni.ID, years, weekLimit)
		if err != nil {
			log.Printf("aggregation failed for %s (id=%d): %v", uni.ShortName, uni.ID, err)
			failures = append(failures, modelReport.AggregationFailure{
				University: uni.ShortName,
				Error:      err.Error(),
			})
			continue
		}
		payload.Add(uni.ShortName, rep)
	}

	return payload, failures, nil
}

// BuildFor aggregates a single university. An unknown id is a caller
// contract violation; any other lookup failure is a data-source outage and
// must surface as one.
func (a *Assembler) BuildFor(ctx context.Context, universityID int, years []int, weekLimit int) (modelReport.UniversityReport, error) {
	if err := ValidateParams(years, weekLimit); err != nil {
		return modelReport.UniversityReport{}, err
	}

	if _, err := a.universities.GetByID(ctx, universityID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return modelReport.UniversityReport{}, &InvalidParameterError{
				Param:  "universityId",
				Reason: "unknown or inactive university",
			}
		}
		return modelReport.UniversityReport{}, &DataSourceError{Op: "lookup university", Err: err}
	}

	return a.engine.Aggregate(ctx, universityID, years, weekLimit)
}
