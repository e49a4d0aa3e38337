package handler

import "github.com/labstack/echo/v4"

type Handlers struct {
	Search  *SearchHandler
	Form    *FormHandler
	Booking *BookingHandler
}

// Register mounts the API under /api/v1. Middleware passed in applies to
// the API group only, so /health stays outside the rate limiter.
func Register(e *echo.Echo, h Handlers, mw ...echo.MiddlewareFunc) {
	e.GET("/health", HealthHandler)

	api := e.Group("/api/v1", mw...)
	api.GET("/health", HealthHandler)

	api.GET("/shuttles", h.Search.List)
	api.POST("/shuttles/search", h.Search.Search)
	api.POST("/shuttles/search/passenger", h.Search.SearchPassenger)
	api.DELETE("/shuttles/search", h.Search.Reset)

	api.GET("/form", h.Form.Get)
	api.PUT("/form", h.Form.Put)
	api.DELETE("/form", h.Form.Clear)

	api.POST("/bookings/preview", h.Booking.Preview)
	api.POST("/bookings", h.Booking.Confirm)
	api.GET("/bookings", h.Booking.List)
}
