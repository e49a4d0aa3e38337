package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ToxicBeastt/shuttle-booking/internal/catalog"
	"github.com/ToxicBeastt/shuttle-booking/internal/models"
	"github.com/ToxicBeastt/shuttle-booking/internal/storage"
	"github.com/ToxicBeastt/shuttle-booking/internal/timezone"
	"github.com/ToxicBeastt/shuttle-booking/internal/validation"
)

// FormHandler mirrors the passenger form draft. Clients PUT the whole draft
// on every field change and get the fresh validation result back.
type FormHandler struct {
	store   *catalog.Store
	schemas *validation.Schemas
	forms   *storage.FormCache
	now     func() time.Time
	logger  *zap.Logger
}

func NewFormHandler(store *catalog.Store, schemas *validation.Schemas, forms *storage.FormCache, now func() time.Time, logger *zap.Logger) *FormHandler {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormHandler{
		store:   store,
		schemas: schemas,
		forms:   forms,
		now:     now,
		logger:  logger,
	}
}

func (h *FormHandler) Get(c echo.Context) error {
	form := h.forms.Load(c.Request().Context())
	return c.JSON(http.StatusOK, h.respond(c, form))
}

func (h *FormHandler) Put(c echo.Context) error {
	var form models.FormData
	if err := c.Bind(&form); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid_request", "Failed to parse request body: "+err.Error())
	}

	if err := h.forms.Save(c.Request().Context(), form); err != nil {
		h.logger.Error("saving form draft failed", zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, "storage_error", "Failed to save form: "+err.Error())
	}
	h.store.SetFormData(&form)

	return c.JSON(http.StatusOK, h.respond(c, form))
}

// Clear drops the draft, as a page unload does.
func (h *FormHandler) Clear(c echo.Context) error {
	if err := h.forms.Clear(c.Request().Context()); err != nil {
		h.logger.Error("clearing form draft failed", zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, "storage_error", "Failed to clear form: "+err.Error())
	}
	h.store.SetFormData(nil)
	return c.NoContent(http.StatusNoContent)
}

func (h *FormHandler) respond(c echo.Context, form models.FormData) models.FormResponse {
	now := h.now()
	errs := h.schemas.Passenger(form, now).Localize(localeOf(c))
	return models.FormResponse{
		Form:    form,
		Valid:   errs.Valid(),
		Errors:  errs.Map(),
		MinDate: timezone.Today(now, h.schemas.Location()),
	}
}
