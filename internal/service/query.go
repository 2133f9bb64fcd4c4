package service

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Danielmituku/solar-challenge-week0/internal/models"
)

// Query errors
var (
	ErrNoCountrySelected = errors.New("please select at least one country")
	ErrInvalidDateRange  = errors.New("start date must not be after end date")
	ErrInvalidQuery      = errors.New("invalid query")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("country", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseCountry(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("metric", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseMetric(fl.Field().String())
		return ok
	})
	return v
}

// BuildQuery converts raw request parameters into a validated query.
// countriesGiven distinguishes an absent country parameter (all countries)
// from an explicitly empty selection.
func BuildQuery(params models.QueryParams, countriesGiven bool) (models.ObservationQuery, error) {
	q := models.ObservationQuery{
		Metric: models.MetricGHI,
		Limit:  params.Limit,
	}

	if !countriesGiven {
		q.Countries = append(q.Countries, models.AllCountries...)
	} else {
		seen := make(map[models.Country]bool)
		for _, raw := range params.Country {
			for _, part := range strings.Split(raw, ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				c, ok := models.ParseCountry(part)
				if !ok {
					return q, errors.Wrapf(ErrInvalidQuery, "unknown country %q", part)
				}
				if !seen[c] {
					seen[c] = true
					q.Countries = append(q.Countries, c)
				}
			}
		}
		if len(q.Countries) == 0 {
			return q, ErrNoCountrySelected
		}
	}

	if params.Metric != "" {
		m, ok := models.ParseMetric(params.Metric)
		if !ok {
			return q, errors.Wrapf(ErrInvalidQuery, "unknown metric %q", params.Metric)
		}
		q.Metric = m
	}

	var err error
	if q.Start, err = parseDate(params.Start, "start"); err != nil {
		return q, err
	}
	if q.End, err = parseDate(params.End, "end"); err != nil {
		return q, err
	}

	if err := ValidateQuery(q); err != nil {
		return q, err
	}
	return q, nil
}

// ValidateQuery checks a query built by hand or by BuildQuery
func ValidateQuery(q models.ObservationQuery) error {
	if len(q.Countries) == 0 {
		return ErrNoCountrySelected
	}
	if err := validate.Struct(q); err != nil {
		return errors.Wrap(ErrInvalidQuery, err.Error())
	}
	if q.Start != nil && q.End != nil && q.Start.After(*q.End) {
		return ErrInvalidDateRange
	}
	return nil
}

func parseDate(s, name string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidQuery, "%s must be YYYY-MM-DD, got %q", name, s)
	}
	return &t, nil
}
