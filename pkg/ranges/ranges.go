// Package ranges parses compact subject-range expressions such as
// "0,2-4,7,10-12" into ordered integer sets.
package ranges

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrMalformedRange is the sentinel for any range-expression parse failure.
var ErrMalformedRange = errors.New("malformed range")

// ParseError reports the token that failed to parse.
type ParseError struct {
	Token  string
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed range token %q: %s", e.Token, e.Reason)
}

// Unwrap returns the sentinel so callers can use errors.Is.
func (e *ParseError) Unwrap() error {
	return ErrMalformedRange
}

// Parse turns a comma-separated list of non-negative integers and inclusive
// lo-hi spans into an ascending, deduplicated slice. Empty input yields an
// empty slice; the caller decides whether that means "all".
func Parse(expr string) ([]int, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return []int{}, nil
	}

	seen := make(map[int]struct{})
	for _, token := range strings.Split(expr, ",") {
		token = strings.TrimSpace(token)
		lo, hi, err := parseToken(token)
		if err != nil {
			return nil, err
		}
		for i := lo; i <= hi; i++ {
			seen[i] = struct{}{}
		}
	}

	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out, nil
}

// parseToken handles one "n" or "lo-hi" token
func parseToken(token string) (int, int, error) {
	if token == "" {
		return 0, 0, &ParseError{Token: token, Reason: "empty token"}
	}

	if lo, hi, found := strings.Cut(token, "-"); found {
		loVal, err := parseNonNegative(token, lo)
		if err != nil {
			return 0, 0, err
		}
		hiVal, err := parseNonNegative(token, hi)
		if err != nil {
			return 0, 0, err
		}
		if loVal > hiVal {
			return 0, 0, &ParseError{Token: token, Reason: "descending span"}
		}
		return loVal, hiVal, nil
	}

	v, err := parseNonNegative(token, token)
	if err != nil {
		return 0, 0, err
	}
	return v, v, nil
}

func parseNonNegative(token, part string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(part))
	if err != nil {
		return 0, &ParseError{Token: token, Reason: "expected an integer"}
	}
	if v < 0 {
		return 0, &ParseError{Token: token, Reason: "negative value"}
	}
	return v, nil
}
