package repository

import (
	"context"
	"database/sql"
	"log"

	models "university-enrollment-report/app/models/postgresql"

	"github.com/lib/pq"
)

type FichaRepository interface {
	FetchRange(ctx context.Context, universityID int, years []int, weekLimit int) ([]models.FichaRecord, error)
}

type fichaRepository struct {
	db *sql.DB
}

func NewFichaRepository(db *sql.DB) FichaRepository {
	return &fichaRepository{db: db}
}

// FetchRange pulls every ficha row for one university across the full
// year/week range in a single batched query. Grouping and summing happen
// in memory in the aggregation engine, so one query per university is enough
// regardless of how many years and weeks are requested.
func (r *fichaRepository) FetchRange(ctx context.Context, universityID int, years []int, weekLimit int) ([]models.FichaRecord, error) {
	query := `
        SELECT f.university_id, y.year, w.week_number, f.amount
        FROM fichas f
        JOIN academic_years y ON f.year_id = y.id
        JOIN weeks w ON f.week_id = w.id
        WHERE f.university_id = $1
          AND y.year = ANY($2)
          AND w.week_number <= $3
        ORDER BY y.year, w.week_number
    `

	rows, err := r.db.QueryContext(ctx, query, universityID, pq.Array(years), weekLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.FichaRecord
	for rows.Next() {
		var rec models.FichaRecord
		var amount sql.NullInt64
		if err := rows.Scan(&rec.UniversityID, &rec.Year, &rec.Week, &amount); err != nil {
			return nil, err
		}
		if amount.Valid {
			rec.Amount = int(amount.Int64)
		} else {
			// NULL amounts count as 0; log the anomaly instead of failing
			// mid-aggregation.
			log.Printf("ficha row with NULL amount: university=%d year=%d week=%d", rec.UniversityID, rec.Year, rec.Week)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
