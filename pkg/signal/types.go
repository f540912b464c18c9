// Package signal defines the signal-type vocabulary of the pulse-wave
// database and the mapping between anatomical site names and the signal
// prefixes used in record headers.
package signal

import (
	"errors"
	"fmt"
	"strings"
)

// Type is a recognized physiological signal type
type Type string

const (
	// Pressure in mmHg
	Pressure Type = "P"
	// Velocity is flow velocity in m/sec
	Velocity Type = "U"
	// Area is luminal cross-sectional area in m2
	Area Type = "A"
	// Flow is volumetric flow rate in m3/sec
	Flow Type = "Q"
	// PPG is the photoplethysmogram proxy, in arbitrary units
	PPG Type = "PPG"
)

// RecognizedTypes lists every signal type the tool understands, in canonical
// ordering position. Selection output is sorted by this order.
var RecognizedTypes = []Type{Pressure, Velocity, Area, Flow, PPG}

// DefaultTypes is the type filter applied when the user gives none.
// Q is recorded for fewer sites and is opt-in, matching the upstream export.
var DefaultTypes = []Type{Pressure, Velocity, Area, PPG}

// Units maps each signal type to its physical unit
var Units = map[Type]string{
	PPG:      "au",
	Pressure: "mmHg",
	Area:     "m2",
	Flow:     "m3/sec",
	Velocity: "m/sec",
}

// ErrUnknownType is the sentinel for unrecognized signal types.
var ErrUnknownType = errors.New("unknown signal type")

// UnknownTypeError reports a requested type outside RecognizedTypes.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown signal type %q, expected one of %v", e.Name, RecognizedTypes)
}

func (e *UnknownTypeError) Unwrap() error {
	return ErrUnknownType
}

// ParseType validates a single signal-type token
func ParseType(s string) (Type, error) {
	t := Type(strings.TrimSpace(s))
	for _, known := range RecognizedTypes {
		if t == known {
			return t, nil
		}
	}
	return "", &UnknownTypeError{Name: s}
}

// ParseTypeList parses a comma-separated type list, preserving first
// occurrence order and dropping duplicates.
func ParseTypeList(s string) ([]Type, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var out []Type
	seen := make(map[Type]struct{})
	for _, part := range strings.Split(s, ",") {
		t, err := ParseType(part)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}

// TypeOrder returns the canonical sort position of a type, with unknown
// types ordered last.
func TypeOrder(t Type) int {
	for i, known := range RecognizedTypes {
		if t == known {
			return i
		}
	}
	return len(RecognizedTypes)
}
