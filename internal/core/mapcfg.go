package core

import (
	"strconv"
	"time"
)

// The Map* helpers apply one FromMap key. Missing keys, unparsable values and
// values rejected by valid leave dst untouched.

// MapInt parses cfg[key] as an integer into dst.
func MapInt(cfg map[string]string, key string, dst *int, valid func(int) bool) {
	v, ok := cfg[key]
	if !ok {
		return
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || (valid != nil && !valid(parsed)) {
		return
	}
	*dst = parsed
}

// MapInt64 parses cfg[key] as a 64-bit integer into dst.
func MapInt64(cfg map[string]string, key string, dst *int64) {
	v, ok := cfg[key]
	if !ok {
		return
	}
	if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
		*dst = parsed
	}
}

// MapFloat parses cfg[key] as a float into dst.
func MapFloat(cfg map[string]string, key string, dst *float64, valid func(float64) bool) {
	v, ok := cfg[key]
	if !ok {
		return
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil || (valid != nil && !valid(parsed)) {
		return
	}
	*dst = parsed
}

// MapBool parses cfg[key] as a boolean into dst.
func MapBool(cfg map[string]string, key string, dst *bool) {
	v, ok := cfg[key]
	if !ok {
		return
	}
	if parsed, err := strconv.ParseBool(v); err == nil {
		*dst = parsed
	}
}

// MapDuration accepts either a Go duration string ("1.3s") or a bare number
// of milliseconds.
func MapDuration(cfg map[string]string, key string, dst *time.Duration) {
	v, ok := cfg[key]
	if !ok {
		return
	}
	if parsed, err := time.ParseDuration(v); err == nil && parsed >= 0 {
		*dst = parsed
		return
	}
	if ms, err := strconv.ParseFloat(v, 64); err == nil && ms >= 0 {
		*dst = time.Duration(ms * float64(time.Millisecond))
	}
}

// Positive accepts values greater than zero.
func Positive[T int | float64](v T) bool { return v > 0 }

// NonNegative accepts values greater than or equal to zero.
func NonNegative[T int | float64](v T) bool { return v >= 0 }

// UnitInterval accepts values in [0, 1].
func UnitInterval(v float64) bool { return v >= 0 && v <= 1 }
