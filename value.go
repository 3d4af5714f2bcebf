// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package inifile

import (
	"errors"
	"strconv"
)

// scanInt64 converts the longest leading decimal numeral of s, ignoring any
// trailing text, in the manner of C's strtol. No numeral at all converts to
// zero; a numeral out of range clamps to the nearest representable value.
func scanInt64(s string) int64 {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return n
}

// scanFloat64 converts the longest leading decimal floating-point numeral of
// s, ignoring any trailing text, in the manner of C's strtod. The numeral
// may carry a fraction and an exponent; an exponent marker without digits is
// not part of the numeral.
func scanFloat64(s string) float64 {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := func() int {
		n := 0
		for end < len(s) && isDigit(s[end]) {
			end++
			n++
		}
		return n
	}
	n := digits()
	if end < len(s) && s[end] == '.' {
		end++
		n += digits()
	}
	if n == 0 {
		return 0
	}
	if mark := end; end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		end++
		if end < len(s) && (s[end] == '+' || s[end] == '-') {
			end++
		}
		if digits() == 0 {
			end = mark
		}
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return f
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
