package expedition

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"crew-service/internal/httputil"
	"crew-service/internal/messaging"
	"crew-service/internal/metrics"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service   Service
	publisher messaging.ViewPublisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewHandler(service Service, publisher messaging.ViewPublisher, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	return &Handler{
		service:   service,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/expeditions", h.GetAllExpeditions)
	router.Get("/expeditions/{id:[0-9]+}", h.GetExpedition)
}

func (h *Handler) GetAllExpeditions(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "fetching all expeditions")

	expeditions, err := h.service.GetAllExpeditions(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.Catalog.RecordList(r.Context(), "expeditions", len(expeditions))

	httputil.RespondWithJSON(w, http.StatusOK, expeditions)
}

func (h *Handler) GetExpedition(w http.ResponseWriter, r *http.Request) {
	// the route only matches digits, so a parse failure is an id out of range
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, ErrExpeditionNotFound)
		return
	}

	h.logger.InfoContext(r.Context(), "fetching expedition by ID", "id", id)
	expedition, err := h.service.GetExpeditionByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.Catalog.RecordDetail(r.Context(), messaging.KindExpedition)
	h.publisher.PublishView(r.Context(), messaging.KindExpedition, id)

	httputil.RespondWithJSON(w, http.StatusOK, expedition)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrExpeditionNotFound) {
		h.logger.InfoContext(r.Context(), "expedition not found")
		httputil.RespondWithError(w, http.StatusNotFound, "Expedition not found")
		return
	}
	h.logger.ErrorContext(r.Context(), "internal error", "error", err)
	httputil.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
}
