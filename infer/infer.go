// Package infer picks a column's element type from its text values when
// the caller doesn't supply an explicit schema (spec §4.1).
package infer

import (
	"strconv"
	"strings"

	"github.com/colinmarc/ccf/format"
)

// Type scans values once and returns the narrowest type every non-empty
// value parses as, preferring Int32, then Float64, then falling back to
// String. Empty strings are treated as null and ignored by the scan; if
// every value is empty the result is Int32 by vacuous truth of both
// checks.
//
// Integer parsing accepts only the canonical signed decimal lexical form
// (optional leading '-', digits only): no underscores, no hex, no
// whitespace. Values outside the 32-bit signed range fall through to
// Float64 rather than being treated as integers. Float parsing accepts
// decimal forms with an optional exponent and IEEE-754 infinities; values
// that don't parse as a float at all fall through to String.
func Type(values []string) format.Type {
	isInt := true
	isFloat := true

	for _, v := range values {
		if v == "" {
			continue
		}

		if isInt {
			if _, err := strconv.ParseInt(v, 10, 32); err != nil {
				isInt = false
			}
		}

		if isFloat {
			// ParseFloat also takes Go literal syntax (digit-separating
			// underscores, hexadecimal mantissas); neither is a decimal form.
			if _, err := strconv.ParseFloat(v, 64); err != nil || strings.ContainsAny(v, "_xX") {
				isFloat = false
			}
		}

		if !isInt && !isFloat {
			return format.String
		}
	}

	switch {
	case isInt:
		return format.Int32
	case isFloat:
		return format.Float64
	default:
		return format.String
	}
}
