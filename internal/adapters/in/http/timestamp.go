package http

import (
	"time"

	"dispatch/internal/pkg/errs"
)

// parseUTCTimestamp parses an RFC3339 timestamp with optional fractional
// seconds. The zone designator is mandatory and must denote UTC; the engine
// does all completion arithmetic in UTC and never guesses a zone.
func parseUTCTimestamp(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause("complete_time", err)
	}

	if _, offset := parsed.Zone(); offset != 0 {
		return time.Time{}, errs.NewValueIsInvalidError("complete_time must be UTC")
	}

	return parsed.UTC(), nil
}
