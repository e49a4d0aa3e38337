package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ToxicBeastt/shuttle-booking/internal/catalog"
	"github.com/ToxicBeastt/shuttle-booking/internal/latency"
	"github.com/ToxicBeastt/shuttle-booking/internal/models"
	"github.com/ToxicBeastt/shuttle-booking/internal/validation"
)

type SearchHandler struct {
	store   *catalog.Store
	schemas *validation.Schemas
	delay   latency.Delay
	now     func() time.Time
}

func NewSearchHandler(store *catalog.Store, schemas *validation.Schemas, delay latency.Delay, now func() time.Time) *SearchHandler {
	if now == nil {
		now = time.Now
	}
	return &SearchHandler{
		store:   store,
		schemas: schemas,
		delay:   delay,
		now:     now,
	}
}

// List returns the current view: the whole catalog, or the results of the
// active search.
func (h *SearchHandler) List(c echo.Context) error {
	if err := h.store.Ready(); err != nil {
		return unavailable(c, err)
	}
	return c.JSON(http.StatusOK, buildSearchResponse(h.store.Snapshot()))
}

// Search runs the generic search-filter form.
func (h *SearchHandler) Search(c echo.Context) error {
	var form models.SearchFilterForm
	if err := c.Bind(&form); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid_request", "Failed to parse request body: "+err.Error())
	}

	criteria, errs := h.schemas.FilterCriteria(form)
	if !errs.Valid() {
		return validationJSON(c, errs)
	}

	return h.run(c, criteria)
}

// SearchPassenger runs the passenger form: it must pass the passenger schema
// and its values become the session's form data.
func (h *SearchHandler) SearchPassenger(c echo.Context) error {
	var form models.FormData
	if err := c.Bind(&form); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid_request", "Failed to parse request body: "+err.Error())
	}

	if errs := h.schemas.Passenger(form, h.now()); !errs.Valid() {
		return validationJSON(c, errs)
	}
	if err := h.store.Ready(); err != nil {
		return unavailable(c, err)
	}

	h.store.SetFormData(&form)
	return h.run(c, h.schemas.PassengerCriteria(form))
}

func (h *SearchHandler) Reset(c echo.Context) error {
	if err := h.store.Ready(); err != nil {
		return unavailable(c, err)
	}
	return c.JSON(http.StatusOK, buildSearchResponse(h.store.Reset()))
}

func (h *SearchHandler) run(c echo.Context, criteria models.SearchCriteria) error {
	if err := h.store.Ready(); err != nil {
		return unavailable(c, err)
	}

	if err := h.delay.Wait(c.Request().Context()); err != nil {
		return errorJSON(c, http.StatusServiceUnavailable, "search_error", "Search interrupted: "+err.Error())
	}

	return c.JSON(http.StatusOK, buildSearchResponse(h.store.Search(criteria)))
}

func buildSearchResponse(st catalog.State) models.SearchResponse {
	shuttles := st.Filtered()
	return models.SearchResponse{
		Criteria:     st.Criteria(),
		TotalResults: len(shuttles),
		Shuttles:     shuttles,
	}
}
