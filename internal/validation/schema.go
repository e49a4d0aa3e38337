package validation

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ToxicBeastt/shuttle-booking/internal/models"
	"github.com/ToxicBeastt/shuttle-booking/internal/timezone"
)

type passengerInput struct {
	Name          string `json:"name" validate:"required"`
	Origin        string `json:"origin" validate:"required"`
	Destination   string `json:"destination" validate:"required"`
	DepartureDate string `json:"departureDate" validate:"required,notpast"`
}

type searchFilterInput struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	Operator      string `json:"operator"`
	DepartureTime string `json:"departureTime"`
	MinPrice      string `json:"minPrice" validate:"omitempty,nonnegative"`
	MaxPrice      string `json:"maxPrice" validate:"omitempty,nonnegative"`
	DepartureDate string `json:"departureDate"`
}

type nowKey struct{}

// Schemas validates the passenger form and the search-filter form.
// Date rules are evaluated at day granularity in the configured location.
type Schemas struct {
	validate *validator.Validate
	loc      *time.Location
}

func New(loc *time.Location) *Schemas {
	if loc == nil {
		loc = timezone.WIB
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	s := &Schemas{validate: v, loc: loc}

	_ = v.RegisterValidationCtx("notpast", s.notPast)
	_ = v.RegisterValidation("nonnegative", nonNegative)
	v.RegisterStructValidation(sameCity, passengerInput{})
	v.RegisterStructValidation(filterCrossField, searchFilterInput{})

	return s
}

func (s *Schemas) Location() *time.Location {
	return s.loc
}

// Passenger checks the passenger form against the calendar date of now.
func (s *Schemas) Passenger(form models.FormData, now time.Time) Errors {
	in := passengerInput{
		Name:          form.Name,
		Origin:        form.Origin,
		Destination:   form.Destination,
		DepartureDate: form.DepartureDate,
	}
	ctx := context.WithValue(context.Background(), nowKey{}, now)
	return collect(s.validate.StructCtx(ctx, in))
}

func (s *Schemas) SearchFilter(form models.SearchFilterForm) Errors {
	in := searchFilterInput(form)
	return collect(s.validate.Struct(in))
}

// FilterCriteria validates form and turns it into catalog criteria. Empty
// fields become unconstrained. Fractional bounds are rounded inwards since
// prices are whole rupiah.
func (s *Schemas) FilterCriteria(form models.SearchFilterForm) (models.SearchCriteria, Errors) {
	if errs := s.SearchFilter(form); !errs.Valid() {
		return models.SearchCriteria{}, errs
	}

	c := models.SearchCriteria{
		Origin:        form.Origin,
		Destination:   form.Destination,
		Operator:      form.Operator,
		DepartureTime: form.DepartureTime,
		Date:          form.DepartureDate,
	}
	if v, ok := parsePrice(form.MinPrice); ok {
		minPrice := int64(math.Ceil(v))
		c.MinPrice = &minPrice
	}
	if v, ok := parsePrice(form.MaxPrice); ok {
		maxPrice := int64(math.Floor(v))
		c.MaxPrice = &maxPrice
	}
	return c, nil
}

// PassengerCriteria is the catalog query issued by a passenger search. The
// departure date is normalized to the catalog's YYYY-MM-DD form in the
// configured location.
func (s *Schemas) PassengerCriteria(form models.FormData) models.SearchCriteria {
	date := form.DepartureDate
	if t, err := timezone.ParseDate(date, s.loc); err == nil {
		date = t.Format(timezone.DateLayout)
	}
	return models.SearchCriteria{
		Origin:      form.Origin,
		Destination: form.Destination,
		Date:        date,
	}
}

func (s *Schemas) notPast(ctx context.Context, fl validator.FieldLevel) bool {
	now, ok := ctx.Value(nowKey{}).(time.Time)
	if !ok {
		now = time.Now()
	}
	date, err := timezone.ParseDate(fl.Field().String(), s.loc)
	if err != nil {
		return false
	}
	return timezone.NotBefore(date, now, s.loc)
}

func nonNegative(fl validator.FieldLevel) bool {
	_, ok := parsePrice(fl.Field().String())
	return ok
}

func sameCity(sl validator.StructLevel) {
	in := sl.Current().Interface().(passengerInput)
	if in.Origin != "" && in.Destination != "" && in.Origin == in.Destination {
		sl.ReportError(in.Destination, "destination", "Destination", "nefield", "origin")
	}
}

func filterCrossField(sl validator.StructLevel) {
	in := sl.Current().Interface().(searchFilterInput)

	minPrice, minOK := parsePrice(in.MinPrice)
	maxPrice, maxOK := parsePrice(in.MaxPrice)
	if minOK && maxOK && minPrice > maxPrice {
		sl.ReportError(in.MaxPrice, "maxPrice", "MaxPrice", "gtefield", "minPrice")
	}

	if in.Origin != "" && in.Destination != "" && in.Origin == in.Destination {
		sl.ReportError(in.Destination, "destination", "Destination", "nefield", "origin")
	}
}

func parsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

func collect(err error) Errors {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return Errors{{Field: "", Rule: "invalid", Message: err.Error()}}
	}

	var out Errors
	for _, fe := range ves {
		out.add(fe.Field(), fe.Tag())
	}
	return out
}
