package validation

import (
	"fmt"
	"testing"
	"time"
)

func TestLuhnCheck(t *testing.T) {
	tests := []struct {
		name   string
		digits string
		want   bool
	}{
		{
			name:   "Valid Visa",
			digits: "4242424242424242",
			want:   true,
		},
		{
			name:   "Valid Visa test number",
			digits: "4111111111111111",
			want:   true,
		},
		{
			name:   "Valid Mastercard",
			digits: "5555555555554444",
			want:   true,
		},
		{
			name:   "Valid Amex",
			digits: "378282246310005",
			want:   true,
		},
		{
			name:   "Invalid checksum",
			digits: "4242424242424241",
			want:   false,
		},
		{
			name:   "Sequential digits",
			digits: "1234567890123456",
			want:   false,
		},
		{
			name:   "Empty string",
			digits: "",
			want:   false,
		},
		{
			name:   "Non-digit input",
			digits: "42424242424242ab",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LuhnCheck(tt.digits)
			if got != tt.want {
				t.Errorf("LuhnCheck(%q) = %v, want %v", tt.digits, got, tt.want)
			}
		})
	}
}

// Changing any single digit of a valid number must break the checksum.
func TestLuhnCheckSingleDigitMutation(t *testing.T) {
	valid := "4242424242424242"
	if !LuhnCheck(valid) {
		t.Fatalf("LuhnCheck(%q) = false, want true", valid)
	}

	for i := 0; i < len(valid); i++ {
		for d := byte('0'); d <= '9'; d++ {
			if valid[i] == d {
				continue
			}
			mutated := valid[:i] + string(d) + valid[i+1:]
			if LuhnCheck(mutated) {
				t.Errorf("LuhnCheck(%q) = true after mutating index %d, want false", mutated, i)
			}
		}
	}
}

func TestValidateCardNumber(t *testing.T) {
	tests := []struct {
		name       string
		cardNumber string
		want       bool
	}{
		{
			name:       "Plain digits",
			cardNumber: "4242424242424242",
			want:       true,
		},
		{
			name:       "Spaced groups",
			cardNumber: "4242 4242 4242 4242",
			want:       true,
		},
		{
			name:       "Hyphenated groups",
			cardNumber: "4242-4242-4242-4242",
			want:       true,
		},
		{
			name:       "Too short",
			cardNumber: "424242424242",
			want:       false,
		},
		{
			name:       "Too long",
			cardNumber: "42424242424242424242",
			want:       false,
		},
		{
			name:       "Letters rejected",
			cardNumber: "4242abcd42424242",
			want:       false,
		},
		{
			name:       "Bad checksum",
			cardNumber: "4242424242424243",
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateCardNumber(tt.cardNumber)
			if got != tt.want {
				t.Errorf("ValidateCardNumber(%q) = %v, want %v", tt.cardNumber, got, tt.want)
			}
		})
	}
}

func TestDetectCardNetwork(t *testing.T) {
	tests := []struct {
		name       string
		cardNumber string
		want       string
	}{
		{
			name:       "Visa",
			cardNumber: "4111111111111111",
			want:       "visa",
		},
		{
			name:       "Mastercard",
			cardNumber: "5500000000000004",
			want:       "mastercard",
		},
		{
			name:       "Amex 34",
			cardNumber: "340000000000009",
			want:       "amex",
		},
		{
			name:       "Amex 37",
			cardNumber: "378282246310005",
			want:       "amex",
		},
		{
			name:       "RuPay 65",
			cardNumber: "6521000000000006",
			want:       "rupay",
		},
		{
			name:       "RuPay 60",
			cardNumber: "6021000000000000",
			want:       "rupay",
		},
		{
			name:       "RuPay 81",
			cardNumber: "8121000000000000",
			want:       "rupay",
		},
		{
			name:       "Spaced Visa",
			cardNumber: "4242 4242 4242 4242",
			want:       "visa",
		},
		{
			name:       "Unknown prefix",
			cardNumber: "1234567890123456",
			want:       "unknown",
		},
		{
			name:       "Empty string",
			cardNumber: "",
			want:       "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectCardNetwork(tt.cardNumber)
			if got != tt.want {
				t.Errorf("DetectCardNetwork(%q) = %v, want %v", tt.cardNumber, got, tt.want)
			}
		})
	}
}

func TestValidateCardExpiry(t *testing.T) {
	// Pin the clock so month-boundary cases are stable.
	fixed := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	Now = func() time.Time { return fixed }
	defer func() { Now = time.Now }()

	tests := []struct {
		name  string
		month string
		year  string
		want  bool
	}{
		{
			name:  "Current month is still valid",
			month: "06",
			year:  "2026",
			want:  true,
		},
		{
			name:  "Previous month same year",
			month: "05",
			year:  "2026",
			want:  false,
		},
		{
			name:  "Next month",
			month: "07",
			year:  "2026",
			want:  true,
		},
		{
			name:  "Future year",
			month: "01",
			year:  "2030",
			want:  true,
		},
		{
			name:  "Past year",
			month: "12",
			year:  "2025",
			want:  false,
		},
		{
			name:  "Two-digit year normalized",
			month: "06",
			year:  "26",
			want:  true,
		},
		{
			name:  "Two-digit past year",
			month: "12",
			year:  "25",
			want:  false,
		},
		{
			name:  "Month zero",
			month: "0",
			year:  "2030",
			want:  false,
		},
		{
			name:  "Month thirteen",
			month: "13",
			year:  "2030",
			want:  false,
		},
		{
			name:  "Non-numeric month",
			month: "ab",
			year:  "2030",
			want:  false,
		},
		{
			name:  "Non-numeric year",
			month: "06",
			year:  "twenty",
			want:  false,
		},
		{
			name:  "Empty input",
			month: "",
			year:  "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateCardExpiry(tt.month, tt.year)
			if got != tt.want {
				t.Errorf("ValidateCardExpiry(%q, %q) = %v, want %v", tt.month, tt.year, got, tt.want)
			}
		})
	}
}

func TestValidateVPA(t *testing.T) {
	tests := []struct {
		name string
		vpa  string
		want bool
	}{
		{
			name: "Simple address",
			vpa:  "user@bank",
			want: true,
		},
		{
			name: "Dots underscores hyphens in local part",
			vpa:  "first.last_01-x@okaxis",
			want: true,
		},
		{
			name: "Missing separator",
			vpa:  "user-bank",
			want: false,
		},
		{
			name: "Empty local part",
			vpa:  "@bank",
			want: false,
		},
		{
			name: "Empty handle",
			vpa:  "user@",
			want: false,
		},
		{
			name: "Symbols in handle",
			vpa:  "user@ba_nk",
			want: false,
		},
		{
			name: "Two separators",
			vpa:  "user@bank@bank",
			want: false,
		},
		{
			name: "Empty string",
			vpa:  "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateVPA(tt.vpa)
			if got != tt.want {
				t.Errorf("ValidateVPA(%q) = %v, want %v", tt.vpa, got, tt.want)
			}
		})
	}
}

func BenchmarkLuhnCheck(b *testing.B) {
	for i := 0; i < b.N; i++ {
		LuhnCheck("4242424242424242")
	}
}

func ExampleDetectCardNetwork() {
	fmt.Println(DetectCardNetwork("4111111111111111"))
	// Output: visa
}
