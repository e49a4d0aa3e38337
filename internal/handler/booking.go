package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ToxicBeastt/shuttle-booking/internal/booking"
	"github.com/ToxicBeastt/shuttle-booking/internal/models"
)

type BookingHandler struct {
	service *booking.Service
}

func NewBookingHandler(service *booking.Service) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Preview(c echo.Context) error {
	var req models.BookingRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid_request", "Failed to parse request body: "+err.Error())
	}

	summary, err := h.service.Preview(req)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *BookingHandler) Confirm(c echo.Context) error {
	var req models.BookingRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid_request", "Failed to parse request body: "+err.Error())
	}

	b, err := h.service.Confirm(c.Request().Context(), req)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusCreated, models.BookingConfirmation{
		Message: localized(c, "booked"),
		Booking: b,
	})
}

func (h *BookingHandler) List(c echo.Context) error {
	rows := h.service.List(c.Request().Context())
	resp := models.BookingsResponse{
		Total:    len(rows),
		Bookings: rows,
	}
	if len(rows) == 0 {
		resp.Message = localized(c, "no_bookings")
	}
	return c.JSON(http.StatusOK, resp)
}

func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrMissingSelection):
		return errorJSON(c, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, booking.ErrShuttleNotFound):
		return errorJSON(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, booking.ErrDepartureNotOffered):
		return errorJSON(c, http.StatusUnprocessableEntity, "invalid_departure", err.Error())
	case errors.Is(err, booking.ErrCatalogUnavailable):
		return unavailable(c, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return errorJSON(c, http.StatusServiceUnavailable, "booking_interrupted", "Booking interrupted: "+err.Error())
	default:
		return errorJSON(c, http.StatusInternalServerError, "storage_error", "Failed to confirm booking: "+err.Error())
	}
}
