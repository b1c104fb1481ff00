package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	modelReport "university-enrollment-report/app/models/report"
	"university-enrollment-report/app/pdf"
	"university-enrollment-report/app/report"

	"github.com/gofiber/fiber/v2"
)

const defaultWeekLimit = 10

type ReportService struct {
	assembler *report.Assembler
	logos     pdf.LogoProvider
}

func NewReportService(assembler *report.Assembler, logos pdf.LogoProvider) *ReportService {
	return &ReportService{assembler: assembler, logos: logos}
}

// === Query helpers ===

// parseYears reads the repeatable "years" query parameter.
func parseYears(c *fiber.Ctx) ([]int, error) {
	raw := c.Context().QueryArgs().PeekMulti("years")
	years := make([]int, 0, len(raw))
	for _, v := range raw {
		year, err := strconv.Atoi(string(v))
		if err != nil {
			return nil, &report.InvalidParameterError{Param: "years", Reason: "must be integers"}
		}
		years = append(years, year)
	}
	if len(years) == 0 {
		return nil, &report.InvalidParameterError{Param: "years", Reason: "at least one year is required"}
	}
	return years, nil
}

// parseWeekLimit reads the "weeks" query parameter. The default applies only
// when the parameter is absent; a present but unparsable value is rejected.
func parseWeekLimit(c *fiber.Ctx) (int, error) {
	raw := c.Query("weeks")
	if raw == "" {
		return defaultWeekLimit, nil
	}
	weeks, err := strconv.Atoi(raw)
	if err != nil || weeks < 1 {
		return 0, &report.InvalidParameterError{Param: "weeks", Reason: "must be a positive integer"}
	}
	return weeks, nil
}

// reportTimestamp localizes the generation time with the client's hour
// offset, when supplied; otherwise server time is used.
func reportTimestamp(c *fiber.Ctx) time.Time {
	raw := c.Query("timezone")
	if raw == "" {
		return time.Now()
	}
	offset, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return time.Now()
	}
	loc := time.FixedZone("client", int(offset*3600))
	return time.Now().In(loc)
}

func writeError(c *fiber.Ctx, err error) error {
	var invalidErr *report.InvalidParameterError
	var sourceErr *report.DataSourceError
	var renderErr *report.RenderError

	status, kind := 500, "internal"
	switch {
	case errors.As(err, &invalidErr):
		status, kind = 400, "invalid_parameter"
	case errors.As(err, &sourceErr):
		status, kind = 502, "data_source"
	case errors.As(err, &renderErr):
		status, kind = 500, "render"
	}
	return c.Status(status).JSON(fiber.Map{"kind": kind, "error": err.Error()})
}

// === Endpoint Logic: single university report ===

// GetUniversityReport returns the regular and cumulative series for one
// university. Non-admin principals are restricted to their own university.
func (s *ReportService) GetUniversityReport(c *fiber.Ctx) error {
	universityID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"kind": "invalid_parameter", "error": "invalid university id"})
	}

	if role, _ := c.Locals("role_name").(string); role != "" && role != "admin" {
		scoped, ok := c.Locals("university_id").(int)
		if !ok || scoped != universityID {
			return c.Status(403).JSON(fiber.Map{"kind": "forbidden", "error": "caller is not scoped to this university"})
		}
	}

	years, err := parseYears(c)
	if err != nil {
		return writeError(c, err)
	}
	weeks, err := parseWeekLimit(c)
	if err != nil {
		return writeError(c, err)
	}

	rep, err := s.assembler.BuildFor(c.Context(), universityID, years, weeks)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rep)
}

// === Endpoint Logic: all universities ===

// GetAllUniversitiesReport returns the full payload plus an errors array for
// any university whose aggregation failed. Partial data is returned with the
// gap visible, never silently zero-filled.
func (s *ReportService) GetAllUniversitiesReport(c *fiber.Ctx) error {
	years, err := parseYears(c)
	if err != nil {
		return writeError(c, err)
	}
	weeks, err := parseWeekLimit(c)
	if err != nil {
		return writeError(c, err)
	}

	payload, failures, err := s.assembler.BuildAll(c.Context(), years, weeks)
	if err != nil {
		return writeError(c, err)
	}
	if failures == nil {
		failures = []modelReport.AggregationFailure{}
	}
	return c.JSON(fiber.Map{
		"data":   payload,
		"errors": failures,
	})
}

// === Endpoint Logic: PDF download ===

// GetReportPDF renders the payload into the selected tabular layout and
// streams it as an attachment. Failures return a JSON error body, never a
// truncated PDF.
func (s *ReportService) GetReportPDF(c *fiber.Ctx) error {
	years, err := parseYears(c)
	if err != nil {
		return writeError(c, err)
	}
	weeks, err := parseWeekLimit(c)
	if err != nil {
		return writeError(c, err)
	}

	generatedBy := c.Query("usuario", "Usuario")

	payload, failures, err := s.assembler.BuildAll(c.Context(), years, weeks)
	if err != nil {
		return writeError(c, err)
	}
	for _, f := range failures {
		// The gap is visible inside the aggregation failure log; the table
		// simply has no column block for the failed university.
		c.Append("X-Aggregation-Failures", f.University)
	}

	result, err := pdf.Render(payload, pdf.Params{
		Years:       years,
		WeekLimit:   weeks,
		View:        pdf.ParseViewMode(c.Query("viewType")),
		GeneratedBy: generatedBy,
		Timestamp:   reportTimestamp(c),
	}, s.logos)
	if err != nil {
		return writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="reporte_%d.pdf"`, time.Now().Unix()))
	return c.Send(result.Bytes)
}
