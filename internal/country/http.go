package country

import (
	"log/slog"
	"net/http"

	"crew-service/internal/httputil"
	"crew-service/internal/metrics"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewHandler(service Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/countries", h.GetAllCountries)
}

func (h *Handler) GetAllCountries(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "fetching all countries")

	countries, err := h.service.GetAllCountries(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to fetch countries", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.metrics.Catalog.RecordList(r.Context(), "countries", len(countries))

	httputil.RespondWithJSON(w, http.StatusOK, countries)
}
