package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	vpaPattern   = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9]+$`)
	digitsOnly   = regexp.MustCompile(`^\d{13,19}$`)
	separatorSet = strings.NewReplacer(" ", "", "-", "", "\t", "")
)

// Now is the clock used for expiry checks. Overridable in tests.
var Now = time.Now

// ValidateVPA checks a UPI virtual payment address of the form local@handle.
func ValidateVPA(vpa string) bool {
	return vpaPattern.MatchString(vpa)
}

// ValidateCardNumber strips separators, requires 13-19 digits and a valid
// Luhn checksum.
func ValidateCardNumber(cardNumber string) bool {
	cleaned := CleanCardNumber(cardNumber)
	if !digitsOnly.MatchString(cleaned) {
		return false
	}
	return LuhnCheck(cleaned)
}

// LuhnCheck validates an all-digit string with the Luhn algorithm: every
// second digit from the right is doubled, doubled digits above 9 drop 9,
// and the total must be divisible by 10.
func LuhnCheck(digits string) bool {
	if digits == "" {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// DetectCardNetwork classifies a card number by its issuer prefix.
// Checks run in declaration order; first match wins.
func DetectCardNetwork(cardNumber string) string {
	cleaned := CleanCardNumber(cardNumber)

	switch {
	case strings.HasPrefix(cleaned, "4"):
		return "visa"
	case hasPrefixInRange(cleaned, 51, 55):
		return "mastercard"
	case strings.HasPrefix(cleaned, "34"), strings.HasPrefix(cleaned, "37"):
		return "amex"
	case strings.HasPrefix(cleaned, "60"), strings.HasPrefix(cleaned, "65"), hasPrefixInRange(cleaned, 81, 89):
		return "rupay"
	default:
		return "unknown"
	}
}

// ValidateCardExpiry reports whether month/year name the current year-month
// or later. Two-digit years are normalized by adding 2000. Non-numeric
// input or an out-of-range month is invalid, never an error.
func ValidateCardExpiry(month, year string) bool {
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return false
	}
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return false
	}

	if m < 1 || m > 12 {
		return false
	}
	if y < 100 {
		y += 2000
	}

	now := Now()
	if y != now.Year() {
		return y > now.Year()
	}
	return m >= int(now.Month())
}

// CleanCardNumber strips spaces, tabs and hyphens.
func CleanCardNumber(cardNumber string) string {
	return separatorSet.Replace(cardNumber)
}

func hasPrefixInRange(digits string, lo, hi int) bool {
	if len(digits) < 2 {
		return false
	}
	prefix, err := strconv.Atoi(digits[:2])
	if err != nil {
		return false
	}
	return prefix >= lo && prefix <= hi
}
