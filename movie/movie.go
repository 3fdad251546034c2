package movie

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"smdb/errs"
)

const (
	MinYear        = 1888
	MaxTitleLength = 256
)

var (
	ErrPayloadRequired = errs.Errorf(errs.EINVALID, "Movie payload is required.")
	ErrTitleRequired   = errs.Errorf(errs.EINVALID, "Title is required and cannot be empty.")
	ErrTitleTooLong    = errs.Errorf(errs.EINVALID, "Title cannot be longer than %d characters.", MaxTitleLength)
)

// ErrYearOutOfRange is returned when a year falls outside [MinYear, maxYear].
func ErrYearOutOfRange(maxYear int) *errs.Error {
	return errs.Errorf(errs.EINVALID, "Year must be between %d and %d.", MinYear, maxYear)
}

type Movie struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Year        int    `json:"year"`
	Description string `json:"description"`
}

// Validate checks the payload against the rules in order and reports the
// first violation. now supplies the upper bound for Year.
func (m *Movie) Validate(now time.Time) error {
	if m == nil {
		return ErrPayloadRequired
	}

	if strings.TrimSpace(m.Title) == "" {
		return ErrTitleRequired
	}

	if utf8.RuneCountInString(m.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}

	maxYear := now.UTC().Year()
	if m.Year < MinYear || m.Year > maxYear {
		return ErrYearOutOfRange(maxYear)
	}

	return nil
}

func (m Movie) String() string {
	return fmt.Sprintf("%q (%d)", m.Title, m.Year)
}
