package util

import (
	"math"
	"strings"
	"time"
)

// Round Method to round to 2 decimals
func Round(f float64) float64 {
	return math.Round(f*100) / 100
}

// Seconds converts a duration to seconds rounded to 2 decimals.
func Seconds(d time.Duration) float64 {
	return Round(d.Seconds())
}

// SplitValues flattens repeated and comma separated values, dropping blanks.
func SplitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
