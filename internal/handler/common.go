package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ToxicBeastt/shuttle-booking/internal/catalog"
	"github.com/ToxicBeastt/shuttle-booking/internal/models"
	"github.com/ToxicBeastt/shuttle-booking/internal/validation"
)

// loadErrorMessage is not localized.
const loadErrorMessage = "Failed to load data"

var text = map[validation.Locale]map[string]string{
	validation.LocaleID: {
		"loading":          "Data shuttle sedang dimuat",
		"validation_error": "Data formulir tidak valid",
		"booked":           "Terima kasih, booking Anda berhasil!",
		"no_bookings":      "Belum ada booking yang dikonfirmasi.",
	},
	validation.LocaleEN: {
		"loading":          "Shuttle data is still loading",
		"validation_error": "The form contains invalid values",
		"booked":           "Thank you, your booking was successful!",
		"no_bookings":      "No confirmed bookings yet.",
	},
}

func localeOf(c echo.Context) validation.Locale {
	if lang := c.QueryParam("lang"); lang != "" {
		return validation.ParseLocale(lang)
	}
	return validation.ParseLocale(c.Request().Header.Get("Accept-Language"))
}

func localized(c echo.Context, key string) string {
	if m, ok := text[localeOf(c)][key]; ok {
		return m
	}
	return text[validation.DefaultLocale][key]
}

func errorJSON(c echo.Context, code int, kind, message string) error {
	return c.JSON(code, models.ErrorResponse{
		Error:   kind,
		Message: message,
		Code:    code,
	})
}

func validationJSON(c echo.Context, errs validation.Errors) error {
	errs = errs.Localize(localeOf(c))
	return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
		Error:   "validation_error",
		Message: localized(c, "validation_error"),
		Code:    http.StatusUnprocessableEntity,
		Fields:  errs.Map(),
	})
}

// unavailable answers with the catalog's static failure message. The
// fetch is never retried.
func unavailable(c echo.Context, err error) error {
	if errors.Is(err, catalog.ErrNotLoaded) {
		return errorJSON(c, http.StatusServiceUnavailable, "loading", localized(c, "loading"))
	}
	return errorJSON(c, http.StatusServiceUnavailable, "load_error", loadErrorMessage)
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
