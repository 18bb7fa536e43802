package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"nuffjamz/internal/contacts/service"
	apperrors "nuffjamz/pkg/errors"
	"nuffjamz/pkg/httpx"
	"nuffjamz/pkg/logger"
	"nuffjamz/pkg/middleware"
	"nuffjamz/pkg/model"
)

type ContactHandler struct {
	service service.ContactService
	log     *logger.Logger
}

func NewContactHandler(service service.ContactService, log *logger.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		log:     log,
	}
}

type contactListPage struct {
	Contacts   []*model.Contact  `json:"contacts"`
	Pagination *model.Pagination `json:"pagination"`
}

type contactStatusUpdate struct {
	Status string `json:"status"`
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var contact model.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	created, err := h.service.Create(r.Context(), &contact, middleware.DefaultIPExtractor(r))
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httpx.WriteCreated(w, created, "Thanks for reaching out! We'll get back to you soon."); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *ContactHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	contacts, pagination, err := h.service.GetAll(r.Context(), query.Get("status"), page, limit)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if contacts == nil {
		contacts = []*model.Contact{}
	}

	if err := httpx.WriteSuccess(w, contactListPage{
		Contacts:   contacts,
		Pagination: pagination,
	}, ""); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "error", err)
	}
}

func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update contactStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, "UpdateStatus", apperrors.InvalidInput("Invalid request body"))
		return
	}

	contact, err := h.service.UpdateStatus(r.Context(), ps.ByName("id"), update.Status)
	if err != nil {
		h.writeError(w, "UpdateStatus", err)
		return
	}

	if err := httpx.WriteSuccess(w, contact, "Contact status updated"); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateStatus", "error", err)
	}
}

func (h *ContactHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httpx.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *ContactHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/contacts", h.Create)
	router.GET("/api/v1/contacts", h.GetAll)
	router.PATCH("/api/v1/contacts/id/:id", h.UpdateStatus)
}
