package validate

import (
	"regexp"
	"strconv"
	"strings"

	"stockroom/internal/domain"
)

var (
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reZIP   = regexp.MustCompile(`^[0-9]{5}$`)
)

// ID validates a simple resource identifier (product/order/payment/address ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func Zip(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reZIP.MatchString(s)
}

// Qty parses a strictly positive quantity; zero/garbage is rejected rather
// than clamped because a wrong quantity moves real stock.
func Qty(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Amount parses a payment amount in major currency units.
func Amount(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return f, true
}

// OrderStatus checks membership in the closed order-status set.
func OrderStatus(s string) (domain.OrderStatus, bool) {
	st := domain.OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	return st, st.Valid()
}

// PaymentStatus checks membership in the closed payment-status set.
func PaymentStatus(s string) (domain.PaymentStatus, bool) {
	st := domain.PaymentStatus(strings.ToUpper(strings.TrimSpace(s)))
	return st, st.Valid()
}

// Password enforces the login password policy.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 20 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
