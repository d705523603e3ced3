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

type stubQuoteService struct {
	quote core.Quote
	err   error
}

func (s *stubQuoteService) Price(context.Context, core.RatingProfile) (core.Quote, error) {
	return s.quote, s.err
}

func mountQuote(svc core.QuoteService) http.Handler {
	r := chi.NewRouter()
	NewQuoteHandler(svc, slog.Default()).Mount(r)
	return r
}

func TestQuoteCreate(t *testing.T) {
	srv := mountQuote(&stubQuoteService{quote: core.Quote{CoverageMonths: 12}})

	body := `{"engine_power_hp":120,"vehicle_year":2023,"coverage_months":12,"driver_age":35,"driver_experience_years":7,"bonus_malus":"1.0"}`
	req := httptest.NewRequest(http.MethodPost, "/quotes/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got core.Quote
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Equal(t, 12, got.CoverageMonths)
}

func TestQuoteCreateBadJSON(t *testing.T) {
	srv := mountQuote(&stubQuoteService{})

	req := httptest.NewRequest(http.MethodPost, "/quotes/", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuoteCreateInvalidProfile(t *testing.T) {
	srv := mountQuote(&stubQuoteService{err: core.ErrInvalidProfile})

	req := httptest.NewRequest(http.MethodPost, "/quotes/", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Validation Error")
}
