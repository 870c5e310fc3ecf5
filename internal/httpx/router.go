package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mktintel/internal/dashboard"
	"mktintel/internal/ingest"
	"mktintel/internal/utils"
)

func NewRouter(log *slog.Logger, svc *dashboard.Service) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))
	mux.Use(utils.Metrics)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", promhttp.Handler())

	mux.Get("/api/dashboard", func(w http.ResponseWriter, r *http.Request) {
		rep, err := svc.Query(r.Context(), dashboard.ParseQuery(r.URL.Query()))
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		writeJSON(w, rep)
	})

	mux.Get("/api/summary", func(w http.ResponseWriter, r *http.Request) {
		rep, err := svc.Query(r.Context(), dashboard.ParseQuery(r.URL.Query()))
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		writeJSON(w, rep.Summary)
	})

	mux.Get("/api/channels", func(w http.ResponseWriter, r *http.Request) {
		rep, err := svc.Query(r.Context(), dashboard.ParseQuery(r.URL.Query()))
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		writeJSON(w, rep.Channels)
	})

	mux.Get("/api/insights", func(w http.ResponseWriter, r *http.Request) {
		rep, err := svc.Query(r.Context(), dashboard.ParseQuery(r.URL.Query()))
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		writeJSON(w, rep.Insights)
	})

	mux.Post("/sources/reload", func(w http.ResponseWriter, r *http.Request) {
		snap, err := svc.Reload(r.Context())
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		writeJSON(w, map[string]any{
			"marketing_rows": len(snap.Marketing),
			"business_rows":  len(snap.Business),
		})
	})

	return mux
}

// Load failures are upstream problems, not client mistakes.
func statusFor(err error) int {
	if errors.Is(err, ingest.ErrSourceUnavailable) || errors.Is(err, ingest.ErrSchemaMismatch) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}
