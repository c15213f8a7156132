package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Document is a registered piece of correspondence with a human-readable
// reference number unique within its scope.
type Document struct {
	ID        uuid.UUID
	Scope     string
	RegNumber string
	Subject   string
	CreatedBy uuid.UUID
	CreatedAt time.Time
}

// SequenceKey is the number_sequences key for a scope and year, e.g. "INCOMING_2025".
func SequenceKey(scope string, year int) string {
	return fmt.Sprintf("%s_%d", strings.ToUpper(scope), year)
}

// NumberPrefix is the prefix every number issued in the given year carries.
func NumberPrefix(year int) string {
	return strconv.Itoa(year) + "/"
}

// FormatNumber renders a reference number as "{year}/{6-digit number}".
func FormatNumber(year int, n int64) string {
	return fmt.Sprintf("%d/%06d", year, n)
}

// ParseNumber splits a reference number back into year and sequence value.
func ParseNumber(s string) (year int, n int64, ok bool) {
	y, rest, found := strings.Cut(s, "/")
	if !found || len(y) != 4 || rest == "" {
		return 0, 0, false
	}
	year, err := strconv.Atoi(y)
	if err != nil {
		return 0, 0, false
	}
	n, err = strconv.ParseInt(rest, 10, 64)
	if err != nil || n <= 0 {
		return 0, 0, false
	}
	return year, n, true
}

// SequenceRef identifies the counter that numbers one scope in one year.
type SequenceRef struct {
	// Sequence is the number_sequences key, e.g. "INCOMING_2025".
	Sequence string
	// Scope is the documents.number_scope being numbered.
	Scope string
	// Prefix is the year prefix of issued numbers, e.g. "2025/".
	Prefix string
	Year   int
}

// NewSequenceRef builds the counter reference for a scope and year. The
// scope is normalized to upper case.
func NewSequenceRef(scope string, year int) SequenceRef {
	scope = strings.ToUpper(strings.TrimSpace(scope))
	return SequenceRef{
		Sequence: SequenceKey(scope, year),
		Scope:    scope,
		Prefix:   NumberPrefix(year),
		Year:     year,
	}
}

// Format renders the n-th number of the sequence.
func (r SequenceRef) Format(n int64) string { return FormatNumber(r.Year, n) }
