package astronaut

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"crew-service/internal/httputil"
	"crew-service/internal/messaging"
	"crew-service/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service   Service
	validate  *validator.Validate
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
		validate:  validator.New(),
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/metadata", h.GetMetadata)
	router.Get("/astronauts", h.ListAstronauts)
	router.Get("/astronauts/{id:[0-9]+}", h.GetAstronaut)
}

func (h *Handler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "computing astronaut metadata")

	meta, err := h.service.GetMetadata(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.Catalog.RecordMetadata(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, meta)
}

func (h *Handler) ListAstronauts(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)
	if err := h.validate.Struct(&q); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	h.logger.InfoContext(r.Context(), "fetching astronauts", "sort_by", q.SortBy, "order", q.Order)
	astronauts, err := h.service.ListAstronauts(r.Context(), q)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.Catalog.RecordList(r.Context(), "astronauts", len(astronauts))

	httputil.RespondWithJSON(w, http.StatusOK, astronauts)
}

func (h *Handler) GetAstronaut(w http.ResponseWriter, r *http.Request) {
	// the route only matches digits, so a parse failure is an id out of range
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, ErrAstronautNotFound)
		return
	}

	h.logger.InfoContext(r.Context(), "fetching astronaut by ID", "id", id)
	astronaut, err := h.service.GetAstronautByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.Catalog.RecordDetail(r.Context(), messaging.KindAstronaut)
	h.publisher.PublishView(r.Context(), messaging.KindAstronaut, id)

	httputil.RespondWithJSON(w, http.StatusOK, astronaut)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrAstronautNotFound) {
		h.logger.InfoContext(r.Context(), "astronaut not found")
		httputil.RespondWithError(w, http.StatusNotFound, "Astronaut not found")
		return
	}
	if errors.Is(err, ErrInvalidInput) {
		h.logger.InfoContext(r.Context(), "invalid input", "error", err)
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.ErrorContext(r.Context(), "internal error", "error", err)
	httputil.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
}

// parseListQuery reads the listing parameters. Numeric parameters that do
// not parse are ignored rather than rejected.
func parseListQuery(r *http.Request) ListQuery {
	values := r.URL.Query()

	return ListQuery{
		Search:    values.Get("search"),
		CountryID: httputil.QueryInt(r, "country_id"),
		Gender:    values.Get("gender"),
		Status:    values.Get("status"),

		MinEVAs:    httputil.QueryFloat(r, "min_evas"),
		MaxEVAs:    httputil.QueryFloat(r, "max_evas"),
		MinAge:     httputil.QueryInt(r, "min_age"),
		MaxAge:     httputil.QueryInt(r, "max_age"),
		MinTime:    httputil.QueryInt(r, "min_time"),
		MaxTime:    httputil.QueryInt(r, "max_time"),
		MinEVATime: httputil.QueryInt(r, "min_eva_time"),
		MaxEVATime: httputil.QueryInt(r, "max_eva_time"),

		SortBy: values.Get("sort_by"),
		Order:  values.Get("order"),
	}
}
