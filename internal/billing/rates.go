package billing

import (
	"os"
	"strconv"
)

// RateSchedule is the facility's billing configuration. It is loaded once at
// startup and passed into the calculator by value; the calculator itself
// never reads configuration.
type RateSchedule struct {
	HourlyRate   float64
	FullDayHours float64
	FullDayRate  float64
	TaxRate      float64
}

const (
	defaultHourlyRate   = 15.0
	defaultFullDayHours = 8.0
	defaultFullDayRate  = 100.0
	defaultTaxRate      = 0.1
)

func LoadRateScheduleFromEnv() RateSchedule {
	return RateSchedule{
		HourlyRate:   envFloat("BILLING_HOURLY_RATE", defaultHourlyRate),
		FullDayHours: envFloat("BILLING_FULL_DAY_HOURS", defaultFullDayHours),
		FullDayRate:  envFloat("BILLING_FULL_DAY_RATE", defaultFullDayRate),
		TaxRate:      envFloat("BILLING_TAX_RATE", defaultTaxRate),
	}
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
