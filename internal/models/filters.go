package models

import "time"

// ObservationQuery is the validated selection every dashboard query starts from
type ObservationQuery struct {
	Countries []Country  `validate:"required,min=1,dive,country"`
	Start     *time.Time // inclusive, midnight UTC
	End       *time.Time // inclusive calendar day
	Metric    Metric     `validate:"omitempty,metric"`
	Limit     int        `validate:"gte=0"`
}

// QueryParams represents the raw query-string parameters of the dashboard API
type QueryParams struct {
	Country []string `form:"country"` // repeatable; absent means all countries
	Start   string   `form:"start"`   // YYYY-MM-DD
	End     string   `form:"end"`     // YYYY-MM-DD
	Metric  string   `form:"metric"`  // GHI, DNI, DHI
	Limit   int      `form:"limit"`   // observations endpoint only
	Format  string   `form:"format"`  // export endpoints only
}

// DateLayout is the calendar-date format accepted by the API
const DateLayout = "2006-01-02"
