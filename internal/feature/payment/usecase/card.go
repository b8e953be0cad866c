package usecase

import (
	"regexp"
	"strings"
	"time"
)

var (
	digitsOnly = regexp.MustCompile(`^\d+$`)
	expiryForm = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvcForm    = regexp.MustCompile(`^\d{3,4}$`)
)

// ValidateCard reports whether a card number is plausible: after
// stripping spaces and dashes it must be 13-19 digits and pass the
// Luhn checksum.
func ValidateCard(number string) bool {
	clean := strings.NewReplacer(" ", "", "-", "").Replace(number)

	if !digitsOnly.MatchString(clean) {
		return false
	}
	if len(clean) < 13 || len(clean) > 19 {
		return false
	}

	// Luhn: double every second digit from the right, subtract 9 when
	// the doubled value exceeds 9, valid iff the sum is divisible by 10.
	sum := 0
	double := false
	for i := len(clean) - 1; i >= 0; i-- {
		digit := int(clean[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

// ValidateExpiry reports whether expiry is a valid MM/YY date that is
// not before the month of now. Years compare mod 100.
func ValidateExpiry(expiry string, now time.Time) bool {
	if !expiryForm.MatchString(expiry) {
		return false
	}

	month := int(expiry[0]-'0')*10 + int(expiry[1]-'0')
	year := int(expiry[3]-'0')*10 + int(expiry[4]-'0')

	if month < 1 || month > 12 {
		return false
	}

	currentYear := now.Year() % 100
	currentMonth := int(now.Month())
	if year < currentYear || (year == currentYear && month < currentMonth) {
		return false
	}
	return true
}

// ValidateCVC reports whether cvc is 3 or 4 digits.
func ValidateCVC(cvc string) bool {
	return cvcForm.MatchString(cvc)
}
