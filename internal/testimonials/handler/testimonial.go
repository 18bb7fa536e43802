package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"nuffjamz/internal/testimonials/service"
	apperrors "nuffjamz/pkg/errors"
	"nuffjamz/pkg/httpx"
	"nuffjamz/pkg/logger"
	"nuffjamz/pkg/model"
)

type TestimonialHandler struct {
	service service.TestimonialService
	log     *logger.Logger
}

func NewTestimonialHandler(service service.TestimonialService, log *logger.Logger) *TestimonialHandler {
	return &TestimonialHandler{
		service: service,
		log:     log,
	}
}

func (h *TestimonialHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var testimonial model.Testimonial
	if err := json.NewDecoder(r.Body).Decode(&testimonial); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	created, err := h.service.Create(r.Context(), &testimonial)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httpx.WriteCreated(w, created, "Thanks for the review! It will appear once approved."); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

// GetPublic serves the approved testimonials shown on the site.
func (h *TestimonialHandler) GetPublic(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	featuredOnly := r.URL.Query().Get("featured") == "true"

	testimonials, err := h.service.GetPublic(r.Context(), featuredOnly)
	if err != nil {
		h.writeError(w, "GetPublic", err)
		return
	}

	if testimonials == nil {
		testimonials = []*model.Testimonial{}
	}

	if err := httpx.WriteSuccess(w, testimonials, ""); err != nil {
		h.log.Error("failed to write success response", "handler", "GetPublic", "error", err)
	}
}

// GetAll serves every testimonial for moderation.
func (h *TestimonialHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	testimonials, err := h.service.GetAll(r.Context())
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if testimonials == nil {
		testimonials = []*model.Testimonial{}
	}

	if err := httpx.WriteSuccess(w, testimonials, ""); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "error", err)
	}
}

func (h *TestimonialHandler) SetFlags(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update service.FlagsUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, "SetFlags", apperrors.InvalidInput("Invalid request body"))
		return
	}

	testimonial, err := h.service.SetFlags(r.Context(), ps.ByName("id"), &update)
	if err != nil {
		h.writeError(w, "SetFlags", err)
		return
	}

	if err := httpx.WriteSuccess(w, testimonial, "Testimonial updated"); err != nil {
		h.log.Error("failed to write success response", "handler", "SetFlags", "error", err)
	}
}

func (h *TestimonialHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httpx.WriteSuccess(w, nil, "Testimonial deleted"); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "error", err)
	}
}

func (h *TestimonialHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httpx.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *TestimonialHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/testimonials", h.Create)
	router.GET("/api/v1/testimonials", h.GetPublic)
	router.GET("/api/v1/testimonials/all", h.GetAll)
	router.PATCH("/api/v1/testimonials/id/:id", h.SetFlags)
	router.DELETE("/api/v1/testimonials/id/:id", h.Delete)
}
