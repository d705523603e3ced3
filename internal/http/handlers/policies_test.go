package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/core"
)

type stubPolicyService struct {
	policy core.Policy
	list   []core.Policy
	total  int
	err    error

	gotFilter core.PolicyFilter
	gotLimit  int
	gotOffset int
	gotReason string
}

func (s *stubPolicyService) Issue(context.Context, core.IssueInput) (core.Policy, error) {
	return s.policy, s.err
}

func (s *stubPolicyService) Cancel(_ context.Context, _ string, reason string) (core.Policy, error) {
	s.gotReason = reason
	return s.policy, s.err
}

func (s *stubPolicyService) Get(context.Context, string) (core.Policy, error) {
	return s.policy, s.err
}

func (s *stubPolicyService) GetByNumber(context.Context, core.PolicyNumber) (core.Policy, error) {
	return s.policy, s.err
}

func (s *stubPolicyService) List(_ context.Context, filter core.PolicyFilter, limit, offset int) ([]core.Policy, int, error) {
	s.gotFilter, s.gotLimit, s.gotOffset = filter, limit, offset
	return s.list, s.total, s.err
}

func mountPolicy(svc core.PolicyService) http.Handler {
	r := chi.NewRouter()
	NewPolicyHandler(svc, slog.Default()).Mount(r)
	return r
}

func TestPolicyIssue(t *testing.T) {
	svc := &stubPolicyService{policy: core.Policy{ID: "p-1", Number: "OSG-20250615-0042"}}
	srv := mountPolicy(svc)

	body := `{"vehicle_id":"veh-1","coverage_months":12,"driver_age":35,"driver_experience_years":7,"bonus_malus":"1.0"}`
	req := httptest.NewRequest(http.MethodPost, "/policies/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got core.Policy
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Equal(t, core.PolicyNumber("OSG-20250615-0042"), got.Number)
}

func TestPolicyIssueVehicleNotFound(t *testing.T) {
	srv := mountPolicy(&stubPolicyService{err: core.ErrVehicleNotFound})

	req := httptest.NewRequest(http.MethodPost, "/policies/", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPolicyGetByNumber(t *testing.T) {
	svc := &stubPolicyService{policy: core.Policy{Number: "OSG-20250615-0042"}}
	srv := mountPolicy(svc)

	req := httptest.NewRequest(http.MethodGet, "/policies/OSG-20250615-0042", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPolicyGetNotFound(t *testing.T) {
	srv := mountPolicy(&stubPolicyService{err: core.ErrPolicyNotFound})

	req := httptest.NewRequest(http.MethodGet, "/policies/OSG-20990101-0000", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPolicyCancel(t *testing.T) {
	svc := &stubPolicyService{policy: core.Policy{ID: "p-1", Status: core.StoredStatusCancelled}}
	srv := mountPolicy(svc)

	req := httptest.NewRequest(http.MethodPost, "/policies/p-1/cancel", strings.NewReader(`{"reason":"vehicle sold"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "vehicle sold", svc.gotReason)
}

func TestPolicyCancelAlreadyCancelled(t *testing.T) {
	srv := mountPolicy(&stubPolicyService{err: core.ErrAlreadyCancelled})

	req := httptest.NewRequest(http.MethodPost, "/policies/p-1/cancel", strings.NewReader(`{"reason":"again"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestPolicyListParsesQuery(t *testing.T) {
	svc := &stubPolicyService{list: []core.Policy{}, total: 0}
	srv := mountPolicy(svc)

	req := httptest.NewRequest(http.MethodGet, "/policies/?status=expiring_soon&vehicle_id=veh-1&limit=5&offset=10", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, core.StatusExpiringSoon, svc.gotFilter.Status)
	require.Equal(t, "veh-1", svc.gotFilter.VehicleID)
	require.Equal(t, 5, svc.gotLimit)
	require.Equal(t, 10, svc.gotOffset)

	// Empty result is a JSON array, never null.
	require.Contains(t, rec.Body.String(), `"items":[]`)
}
