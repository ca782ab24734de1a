package reportshandler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workdesk/internal/domain/auth"
	"workdesk/internal/domain/org"
	"workdesk/internal/domain/performance"
	"workdesk/internal/domain/report"
	"workdesk/internal/platform/metrics"
	"workdesk/internal/transport/http/middleware"
)

type stubDirectory struct {
	users []org.User
	err   error
}

func (s *stubDirectory) ListDepartments(context.Context) ([]org.Department, error) {
	return nil, s.err
}

func (s *stubDirectory) ListUsers(context.Context) ([]org.User, error) {
	return s.users, s.err
}

type stubRecords struct {
	records []performance.MonthlyRecord
}

func (s *stubRecords) ListRange(context.Context, []string, int, int, int, int) ([]performance.MonthlyRecord, error) {
	return s.records, nil
}

func fixture(t *testing.T, dirErr error) (*Handler, *metrics.Collector) {
	t.Helper()
	directory := &stubDirectory{
		users: []org.User{
			{ID: "e1", Name: "Ada", BaseSalary: decimal.NewFromInt(1000), Active: true},
		},
		err: dirErr,
	}
	records := &stubRecords{}
	collector := metrics.New()
	return NewHandler(report.NewService(directory, records), nil, nil, nil, collector), collector
}

func newReportRequest(body string) *http.Request {
	r := httptest.NewRequest("POST", "/reports/performance", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	admin := auth.UserContext{UserID: "root", RoleID: "r-admin", Role: auth.RoleAdmin}
	return r.WithContext(middleware.WithUser(r.Context(), admin))
}

func TestGenerateCountsOneRun(t *testing.T) {
	h, collector := fixture(t, nil)

	rec := httptest.NewRecorder()
	h.handleGenerate(rec, newReportRequest(`{"startDate":"2024-01-01","endDate":"2024-01-31"}`))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	snap := collector.Snapshot()
	assert.Equal(t, uint64(1), snap["reportRunsTotal"])
	assert.Equal(t, uint64(0), snap["reportFailures"])
}

func TestGenerateFailureCountsOneFailedRun(t *testing.T) {
	h, collector := fixture(t, errors.New("connection refused"))

	rec := httptest.NewRecorder()
	h.handleGenerate(rec, newReportRequest(`{"startDate":"2024-01-01","endDate":"2024-01-31"}`))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	snap := collector.Snapshot()
	assert.Equal(t, uint64(1), snap["reportRunsTotal"])
	assert.Equal(t, uint64(1), snap["reportFailures"])
}

func TestGeneratePDFCountsOneRun(t *testing.T) {
	h, collector := fixture(t, nil)

	rec := httptest.NewRecorder()
	h.handleGeneratePDF(rec, newReportRequest(`{"startDate":"2024-01-01","endDate":"2024-01-31"}`))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "PerformanceReport_2024-01-01_2024-01-31.pdf")

	snap := collector.Snapshot()
	assert.Equal(t, uint64(1), snap["reportRunsTotal"], "a pdf request is one run, not two")
	assert.Equal(t, uint64(0), snap["reportFailures"])
}

func TestGenerateValidationRejectIsNotARun(t *testing.T) {
	// Rejected payloads never reach the engine and must not skew run counts.
	h, collector := fixture(t, nil)

	rec := httptest.NewRecorder()
	h.handleGenerate(rec, newReportRequest(`{"startDate":"2024-03-01","endDate":"2024-01-01"}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	snap := collector.Snapshot()
	assert.Equal(t, uint64(0), snap["reportRunsTotal"])
	assert.Equal(t, uint64(0), snap["reportFailures"])
}
