// Copyright (c) 2026 Leafmark. All rights reserved.

// Package isbn validates International Standard Book Numbers.
//
// It accepts ISBN-10 and ISBN-13 values with or without hyphens/spaces and
// verifies the trailing check digit.
package isbn

import "strings"

// Normalize strips hyphens and spaces and uppercases the check character.
func Normalize(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, raw)

	return strings.ToUpper(cleaned)
}

// IsValid reports whether raw is a well-formed ISBN-10 or ISBN-13.
func IsValid(raw string) bool {
	normalized := Normalize(raw)

	switch len(normalized) {
	case 10:
		return validISBN10(normalized)
	case 13:
		return validISBN13(normalized)
	default:
		return false
	}
}

// validISBN10 verifies the weighted mod-11 checksum.
// The final position may be the roman numeral 'X' representing 10.
func validISBN10(s string) bool {
	sum := 0
	for i, r := range s {
		var digit int
		switch {
		case r >= '0' && r <= '9':
			digit = int(r - '0')
		case r == 'X' && i == 9:
			digit = 10
		default:
			return false
		}
		sum += digit * (10 - i)
	}

	return sum%11 == 0
}

// validISBN13 verifies the alternating 1/3 weighted mod-10 checksum.
func validISBN13(s string) bool {
	sum := 0
	for i, r := range s {
		if r < '0' || r > '9' {
			return false
		}
		digit := int(r - '0')

		if i%2 == 0 {
			sum += digit
		} else {
			sum += digit * 3
		}
	}

	return sum%10 == 0
}
