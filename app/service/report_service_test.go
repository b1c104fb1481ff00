package service_test

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	models "university-enrollment-report/app/models/postgresql"
	modelReport "university-enrollment-report/app/models/report"
	"university-enrollment-report/app/report"
	"university-enrollment-report/app/repository/mocks"
	"university-enrollment-report/app/service"
)

// --- SETUP HELPERS ---

func setupReportServiceTest() (*service.ReportService, *mocks.MockFichaRepo, *mocks.MockUniversityRepo) {
	fichaRepo := new(mocks.MockFichaRepo)
	universityRepo := new(mocks.MockUniversityRepo)

	assembler := report.NewAssembler(report.NewEngine(fichaRepo), universityRepo)
	svc := service.NewReportService(assembler, nil)

	return svc, fichaRepo, universityRepo
}

func setupReportApp() *fiber.App {
	return fiber.New()
}

// --- TEST CASES ---

func TestGetAllUniversitiesReport(t *testing.T) {
	t.Run("Success: payload plus empty errors array", func(t *testing.T) {
		svc, fichaRepo, universityRepo := setupReportServiceTest()
		app := setupReportApp()

		universityRepo.On("GetActive", mock.Anything).Return([]models.University{
			{ID: 1, ShortName: "UPQ", Active: true},
		}, nil)
		fichaRepo.On("FetchRange", mock.Anything, 1, []int{2024}, 3).Return([]models.FichaRecord{
			{UniversityID: 1, Year: 2024, Week: 1, Amount: 5},
		}, nil)

		app.Get("/reports/all", svc.GetAllUniversitiesReport)

		req := httptest.NewRequest("GET", "/reports/all?years=2024&weeks=3", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, 200, resp.StatusCode)

		var body struct {
			Data   map[string]modelReport.UniversityReport `json:"data"`
			Errors []modelReport.AggregationFailure        `json:"errors"`
		}
		raw, _ := io.ReadAll(resp.Body)
		assert.NoError(t, json.Unmarshal(raw, &body))
		assert.Len(t, body.Data["UPQ"].Regular, 3)
		assert.Empty(t, body.Errors)
		universityRepo.AssertExpectations(t)
	})

	t.Run("Partial failure surfaces in the errors field", func(t *testing.T) {
		svc, fichaRepo, universityRepo := setupReportServiceTest()
		app := setupReportApp()

		universityRepo.On("GetActive", mock.Anything).Return([]models.University{
			{ID: 1, ShortName: "UPQ", Active: true},
			{ID: 2, ShortName: "UTEQ", Active: true},
		}, nil)
		fichaRepo.On("FetchRange", mock.Anything, 1, []int{2024}, 10).Return(nil, errors.New("timeout"))
		fichaRepo.On("FetchRange", mock.Anything, 2, []int{2024}, 10).Return([]models.FichaRecord{}, nil)

		app.Get("/reports/all", svc.GetAllUniversitiesReport)

		req := httptest.NewRequest("GET", "/reports/all?years=2024", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, 200, resp.StatusCode)

		var body struct {
			Data   map[string]modelReport.UniversityReport `json:"data"`
			Errors []modelReport.AggregationFailure        `json:"errors"`
		}
		raw, _ := io.ReadAll(resp.Body)
		assert.NoError(t, json.Unmarshal(raw, &body))
		assert.NotContains(t, body.Data, "UPQ")
		assert.Contains(t, body.Data, "UTEQ")
		assert.Len(t, body.Errors, 1)
		assert.Equal(t, "UPQ", body.Errors[0].University)
	})

	t.Run("Error: missing years parameter", func(t *testing.T) {
		svc, _, _ := setupReportServiceTest()
		app := setupReportApp()

		app.Get("/reports/all", svc.GetAllUniversitiesReport)

		req := httptest.NewRequest("GET", "/reports/all?weeks=3", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Error: non-numeric weeks value is rejected, not defaulted", func(t *testing.T) {
		svc, _, universityRepo := setupReportServiceTest()
		app := setupReportApp()

		app.Get("/reports/all", svc.GetAllUniversitiesReport)

		req := httptest.NewRequest("GET", "/reports/all?years=2024&weeks=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, 400, resp.StatusCode)
		universityRepo.AssertNotCalled(t, "GetActive")
	})

	t.Run("Error: university listing failure maps to 502", func(t *testing.T) {
		svc, _, universityRepo := setupReportServiceTest()
		app := setupReportApp()

		universityRepo.On("GetActive", mock.Anything).Return(nil, errors.New("db down"))

		app.Get("/reports/all", svc.GetAllUniversitiesReport)

		req := httptest.NewRequest("GET", "/reports/all?years=2024", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, 502, resp.StatusCode)

		var body map[string]string
		raw, _ := io.ReadAll(resp.Body)
		assert.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "data_source", body["kind"])
	})
}

func TestGetUniversityReport(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, fichaRepo, universityRepo := setupReportServiceTest()
		app := setupReportApp()

		universityRepo.On("GetByID", mock.Anything, 1).Return(&models.University{ID: 1, ShortName: "UPQ", Active: true}, nil)
		fichaRepo.On("FetchRange", mock.Anything, 1, []int{2024}, 2).Return([]models.FichaRecord{
			{UniversityID: 1, Year: 2024, Week: 2, Amount: 4},
		}, nil)

		app.Get("/reports/university/:id", svc.GetUniversityReport)

		req := httptest.NewRequest("GET", "/reports/university/1?years=2024&weeks=2", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, 200, resp.StatusCode)

		var rep modelReport.UniversityReport
		raw, _ := io.ReadAll(resp.Body)
		assert.NoError(t, json.Unmarshal(raw, &rep))
		assert.Equal(t, 4, rep.Cumulative[1].RunningTotal)
	})

	t.Run("Error: non-admin caller scoped to another university", func(t *testing.T) {
		svc, _, _ := setupReportServiceTest()
		app := setupReportApp()

		app.Get("/reports/university/:id", func(c *fiber.Ctx) error {
			c.Locals("role_name", "viewer")
			c.Locals("university_id", 2)
			return svc.GetUniversityReport(c)
		})

		req := httptest.NewRequest("GET", "/reports/university/1?years=2024", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, 403, resp.StatusCode)
	})

	t.Run("Error: unknown university id maps to 400", func(t *testing.T) {
		svc, _, universityRepo := setupReportServiceTest()
		app := setupReportApp()

		universityRepo.On("GetByID", mock.Anything, 99).Return(nil, sql.ErrNoRows)

		app.Get("/reports/university/:id", svc.GetUniversityReport)

		req := httptest.NewRequest("GET", "/reports/university/99?years=2024", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Error: university lookup outage maps to 502, not 400", func(t *testing.T) {
		svc, _, universityRepo := setupReportServiceTest()
		app := setupReportApp()

		universityRepo.On("GetByID", mock.Anything, 1).Return(nil, errors.New("dial tcp: connection refused"))

		app.Get("/reports/university/:id", svc.GetUniversityReport)

		req := httptest.NewRequest("GET", "/reports/university/1?years=2024", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, 502, resp.StatusCode)

		var body map[string]string
		raw, _ := io.ReadAll(resp.Body)
		assert.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "data_source", body["kind"])
	})
}

func TestGetReportPDF(t *testing.T) {
	t.Run("Success: PDF attachment with correct headers", func(t *testing.T) {
		svc, fichaRepo, universityRepo := setupReportServiceTest()
		app := setupReportApp()

		universityRepo.On("GetActive", mock.Anything).Return([]models.University{
			{ID: 1, ShortName: "UPQ", Active: true},
		}, nil)
		fichaRepo.On("FetchRange", mock.Anything, 1, []int{2024}, 3).Return([]models.FichaRecord{
			{UniversityID: 1, Year: 2024, Week: 1, Amount: 5},
		}, nil)

		app.Get("/reports/pdf", svc.GetReportPDF)

		req := httptest.NewRequest("GET", "/reports/pdf?years=2024&weeks=3&viewType=byWeek&usuario=ana&timezone=-6", nil)
		resp, _ := app.Test(req, -1)

		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

		raw, _ := io.ReadAll(resp.Body)
		assert.True(t, len(raw) > 4)
		assert.Equal(t, "%PDF", string(raw[:4]))
	})

	t.Run("Error: failure returns a JSON body, not a truncated PDF", func(t *testing.T) {
		svc, _, universityRepo := setupReportServiceTest()
		app := setupReportApp()

		universityRepo.On("GetActive", mock.Anything).Return(nil, errors.New("db down"))

		app.Get("/reports/pdf", svc.GetReportPDF)

		req := httptest.NewRequest("GET", "/reports/pdf?years=2024", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, 502, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	})

	t.Run("Error: non-positive weeks rejected before any work", func(t *testing.T) {
		svc, _, universityRepo := setupReportServiceTest()
		app := setupReportApp()

		app.Get("/reports/pdf", svc.GetReportPDF)

		req := httptest.NewRequest("GET", "/reports/pdf?years=2024&weeks=0", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, 400, resp.StatusCode)
		universityRepo.AssertNotCalled(t, "GetActive")
	})
}
