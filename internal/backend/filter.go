// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package backend

import (
	"strings"
)

// escaper doubles backslashes before escaping quotes; the order matters,
// otherwise the backslash added for a quote would itself be doubled.
var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Escape makes a value safe to embed in a double-quoted filter literal.
func Escape(value string) string {
	return escaper.Replace(value)
}

// Filter is a backend filter expression.
type Filter string

func compare(field, op, value string) Filter {
	return Filter(field + " " + op + ` "` + Escape(value) + `"`)
}

// Eq matches records whose field equals value.
func Eq(field, value string) Filter { return compare(field, "=", value) }

// NotEq matches records whose field differs from value.
func NotEq(field, value string) Filter { return compare(field, "!=", value) }

// Contains matches records whose field contains value.
func Contains(field, value string) Filter { return compare(field, "~", value) }

// Gt matches records whose field sorts after value.
func Gt(field, value string) Filter { return compare(field, ">", value) }

// Lt matches records whose field sorts before value.
func Lt(field, value string) Filter { return compare(field, "<", value) }

// Bool matches a boolean field.
func Bool(field string, value bool) Filter {
	if value {
		return Filter(field + " = true")
	}
	return Filter(field + " = false")
}

// And joins expressions with &&. Empty expressions are skipped.
func And(filters ...Filter) Filter { return join(" && ", filters) }

// Or joins expressions with ||, grouping the result in parentheses.
func Or(filters ...Filter) Filter {
	f := join(" || ", filters)
	if f == "" {
		return ""
	}
	return "(" + f + ")"
}

func join(sep string, filters []Filter) Filter {
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		if f != "" {
			parts = append(parts, string(f))
		}
	}
	return Filter(strings.Join(parts, sep))
}

// String returns the expression text.
func (f Filter) String() string {
	return string(f)
}

// Published is the filter shared by every public listing.
var Published = Bool("published", true)
