package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"nuffjamz/internal/bookings/service"
	apperrors "nuffjamz/pkg/errors"
	"nuffjamz/pkg/httpx"
	"nuffjamz/pkg/logger"
	"nuffjamz/pkg/middleware"
	"nuffjamz/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

// bookingListPage is the list response payload: the page of bookings
// plus pagination metadata.
type bookingListPage struct {
	Bookings   []*model.Booking  `json:"bookings"`
	Pagination *model.Pagination `json:"pagination"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var draft model.BookingDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	meta := service.RequestMeta{
		IPAddress: middleware.DefaultIPExtractor(r),
		UserAgent: r.UserAgent(),
	}

	booking, err := h.service.Create(r.Context(), &draft, meta)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httpx.WriteCreated(w, booking, "Booking request submitted successfully! We'll be in touch within 24 hours."); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httpx.WriteSuccess(w, booking, ""); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	page, ok := h.queryInt(w, "GetAll", query.Get("page"), "page")
	if !ok {
		return
	}
	limit, ok := h.queryInt(w, "GetAll", query.Get("limit"), "limit")
	if !ok {
		return
	}

	bookings, pagination, err := h.service.GetAll(r.Context(), service.ListQuery{
		Status:    query.Get("status"),
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortOrder"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if bookings == nil {
		bookings = []*model.Booking{}
	}

	if err := httpx.WriteSuccess(w, bookingListPage{
		Bookings:   bookings,
		Pagination: pagination,
	}, ""); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "error", err)
	}
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var update model.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, "UpdateStatus", apperrors.InvalidInput("Invalid request body"))
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), id, &update)
	if err != nil {
		h.writeError(w, "UpdateStatus", err)
		return
	}

	if err := httpx.WriteSuccess(w, booking, "Booking status updated"); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateStatus", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httpx.WriteSuccess(w, nil, "Booking deleted"); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "error", err)
	}
}

func (h *BookingHandler) Stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.writeError(w, "Stats", err)
		return
	}

	if err := httpx.WriteSuccess(w, stats, ""); err != nil {
		h.log.Error("failed to write success response", "handler", "Stats", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httpx.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *BookingHandler) queryInt(w http.ResponseWriter, handlerName, raw, name string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		h.writeError(w, handlerName, apperrors.InvalidInput("invalid "+name+" parameter: "+raw))
		return 0, false
	}
	return v, true
}

// The static /stats segment sits under /id/:id's sibling path on
// purpose: httprouter rejects a wildcard that conflicts with a static
// route at the same position.
func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings", h.GetAll)
	router.GET("/api/v1/bookings/stats", h.Stats)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)
	router.PATCH("/api/v1/bookings/id/:id", h.UpdateStatus)
	router.DELETE("/api/v1/bookings/id/:id", h.Delete)
}
