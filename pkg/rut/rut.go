// Package rut provides validation and formatting of Chilean RUT numbers.
package rut

import "strings"

// Normalize strips separators and case from a free-form RUT string.
// The last remaining character becomes the check digit (upper-cased) and
// everything before it the body. ok is false when fewer than 2 usable
// characters remain.
func Normalize(input string) (body, checkDigit string, ok bool) {
	var sb strings.Builder
	for _, r := range input {
		switch {
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == 'K' || r == 'k':
			sb.WriteRune('K')
		}
	}

	cleaned := sb.String()
	if len(cleaned) < 2 {
		return "", "", false
	}

	body = cleaned[:len(cleaned)-1]
	checkDigit = cleaned[len(cleaned)-1:]

	// K is only valid as the check digit.
	if strings.ContainsRune(body, 'K') {
		return "", "", false
	}

	return body, checkDigit, true
}

// ComputeCheckDigit computes the modulus-11 check digit for a RUT body.
// Digits are weighted 2..7 from the rightmost position, cycling back to 2.
// The result is always one of "0".."9" or "K".
func ComputeCheckDigit(body string) string {
	sum := 0
	multiplier := 2

	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			continue
		}
		sum += int(c-'0') * multiplier
		multiplier++
		if multiplier > 7 {
			multiplier = 2
		}
	}

	remainder := 11 - (sum % 11)
	switch remainder {
	case 11:
		return "0"
	case 10:
		return "K"
	default:
		return string(rune('0' + remainder))
	}
}

// IsValid reports whether input is a well-formed RUT with a correct check
// digit. Separators and case are ignored.
func IsValid(input string) bool {
	body, checkDigit, ok := Normalize(input)
	if !ok {
		return false
	}
	return checkDigit == ComputeCheckDigit(body)
}

// Format renders a RUT in canonical form: dotted thousands separators in the
// body and a dash before the check digit (e.g. "12.345.678-5"). Input that
// cannot be normalized is returned unchanged. Format never fails, so it is
// safe in rendering paths, and it is idempotent.
func Format(input string) string {
	if input == "" {
		return ""
	}

	body, checkDigit, ok := Normalize(input)
	if !ok {
		return input
	}

	var sb strings.Builder
	for i, c := range body {
		if i > 0 && (len(body)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(c)
	}
	sb.WriteByte('-')
	sb.WriteString(checkDigit)

	return sb.String()
}
