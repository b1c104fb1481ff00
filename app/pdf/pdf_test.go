package pdf

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	models "university-enrollment-report/app/models/postgresql"
	modelReport "university-enrollment-report/app/models/report"
	"university-enrollment-report/app/report"
)

func testParams(years []int, weekLimit int, view ViewMode) Params {
	return Params{
		Years:       years,
		WeekLimit:   weekLimit,
		View:        view,
		GeneratedBy: "tester",
		Timestamp:   time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
	}
}

// payloadOf builds a payload whose cells all hold the given amount, using the
// real aggregation fold so the series invariants hold.
func payloadOf(uniCount int, years []int, weekLimit, amount int) *modelReport.ReportPayload {
	payload := modelReport.NewReportPayload()
	for i := 0; i < uniCount; i++ {
		var records []models.FichaRecord
		for _, year := range years {
			for week := 1; week <= weekLimit; week++ {
				records = append(records, models.FichaRecord{Year: year, Week: week, Amount: amount})
			}
		}
		payload.Add(fmt.Sprintf("U%02d", i+1), report.BuildSeries(records, years, weekLimit))
	}
	return payload
}

func TestFormatDelta(t *testing.T) {
	assert.Equal(t, "(+30)", formatDelta(30))
	assert.Equal(t, "(-30)", formatDelta(-30))
	assert.Equal(t, "(0)", formatDelta(0))
}

func TestShowDelta(t *testing.T) {
	t.Run("Applies to the later of two adjacent selected years", func(t *testing.T) {
		assert.True(t, showDelta([]int{2023, 2024}, 2024))
	})
	t.Run("Never on the earlier year", func(t *testing.T) {
		assert.False(t, showDelta([]int{2023, 2024}, 2023))
	})
	t.Run("Omitted when the prior year is not selected", func(t *testing.T) {
		assert.False(t, showDelta([]int{2022, 2024}, 2024))
		assert.False(t, showDelta([]int{2024}, 2024))
	})
}

func TestDeltaScenario(t *testing.T) {
	// Totals 100 vs 130 across two adjacent years: the 2024 column is
	// annotated (+30); swapped, (-30).
	records := []models.FichaRecord{
		{Year: 2023, Week: 1, Amount: 100},
		{Year: 2024, Week: 1, Amount: 130},
	}
	payload := modelReport.NewReportPayload()
	payload.Add("A", report.BuildSeries(records, []int{2023, 2024}, 2))
	idx := buildAmountIndex(payload)

	diff := idx.columnTotal("A", 2024, 2) - idx.columnTotal("A", 2023, 2)
	assert.Equal(t, "(+30)", formatDelta(diff))
	assert.Equal(t, "(-30)", formatDelta(-diff))
}

func TestColumnTotalInvariant(t *testing.T) {
	years := []int{2023, 2024}
	payload := payloadOf(3, years, 4, 2)
	idx := buildAmountIndex(payload)

	grandFromColumns := 0
	for _, uni := range payload.Names() {
		for _, year := range years {
			total := idx.columnTotal(uni, year, 4)
			rep, _ := payload.Get(uni)
			// Column total equals the final cumulative value of that year.
			for _, pt := range rep.Cumulative {
				if pt.Year == year && pt.Week == 4 {
					assert.Equal(t, pt.RunningTotal, total)
				}
			}
			grandFromColumns += total
		}
	}

	grandFromPoints := 0
	for _, uni := range payload.Names() {
		rep, _ := payload.Get(uni)
		for _, pt := range rep.Regular {
			grandFromPoints += pt.Amount
		}
	}
	assert.Equal(t, grandFromPoints, grandFromColumns)
}

func TestParseViewMode(t *testing.T) {
	assert.Equal(t, ByUniversity, ParseViewMode("byUniversity"))
	assert.Equal(t, ByWeek, ParseViewMode("byWeek"))
	assert.Equal(t, ByWeek, ParseViewMode(""))
	assert.Equal(t, ByWeek, ParseViewMode("garbage"))
}

func TestRenderValidation(t *testing.T) {
	payload := payloadOf(1, []int{2024}, 3, 1)
	var invalidErr *report.InvalidParameterError

	_, err := Render(payload, testParams([]int{2024}, 0, ByWeek), nil)
	assert.ErrorAs(t, err, &invalidErr)

	_, err = Render(payload, testParams(nil, 3, ByWeek), nil)
	assert.ErrorAs(t, err, &invalidErr)
}

func TestByWeekPagination(t *testing.T) {
	cases := []struct {
		weeks int
		pages int
	}{
		{9, 1},
		{15, 2},
		{25, 3},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d weeks span %d pages", tc.weeks, tc.pages), func(t *testing.T) {
			years := []int{2024}
			payload := payloadOf(2, years, tc.weeks, 1)

			view := newByWeekView(payload, years, tc.weeks)
			assert.Equal(t, tc.pages, view.simulatePages())

			res, err := Render(payload, testParams(years, tc.weeks, ByWeek), nil)
			assert.NoError(t, err)
			// The printed "Page N of M" comes from the same simulation, so
			// matching emitted pages means M is never wrong.
			assert.Equal(t, tc.pages, res.Pages)
		})
	}
}

func TestByUniversityPagination(t *testing.T) {
	t.Run("One page per ten-week group", func(t *testing.T) {
		years := []int{2024}
		payload := payloadOf(2, years, 25, 1)

		view := newByUniversityView(payload, years, 25)
		assert.Equal(t, 3, view.simulatePages())

		res, err := Render(payload, testParams(years, 25, ByUniversity), nil)
		assert.NoError(t, err)
		assert.Equal(t, 3, res.Pages)
	})

	t.Run("Vertical overflow adds pages within a group", func(t *testing.T) {
		years := []int{2024}
		payload := payloadOf(20, years, 5, 1)

		res, err := Render(payload, testParams(years, 5, ByUniversity), nil)
		assert.NoError(t, err)
		assert.Equal(t, newByUniversityView(payload, years, 5).simulatePages(), res.Pages)
		assert.Greater(t, res.Pages, 1)
	})
}

func TestWeekGroups(t *testing.T) {
	groups := weekGroups(25, 10)
	assert.Len(t, groups, 3)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, groups[0])
	assert.Equal(t, []int{21, 22, 23, 24, 25}, groups[2])

	assert.Len(t, weekGroups(10, 10), 1)
}

func TestRenderEmptyPayload(t *testing.T) {
	for _, view := range []ViewMode{ByWeek, ByUniversity} {
		t.Run(string(view), func(t *testing.T) {
			res, err := Render(modelReport.NewReportPayload(), testParams([]int{2024}, 5, view), nil)

			assert.NoError(t, err)
			assert.Equal(t, 1, res.Pages)
			assert.True(t, len(res.Bytes) > 4)
			assert.Equal(t, "%PDF", string(res.Bytes[:4]))
		})
	}
}

func TestLogoFallback(t *testing.T) {
	// A provider pointing at a directory with no images must never fail the
	// render; every header falls back to the short name.
	payload := payloadOf(2, []int{2024}, 3, 1)
	provider := DirProvider{Dir: t.TempDir()}

	res, err := Render(payload, testParams([]int{2024}, 3, ByWeek), provider)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Pages)
}
