package service

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/and161185/nutrilog/internal/errs"
)

var (
	clockRe   = regexp.MustCompile(`^\d{2}:\d{2}$`)
	barcodeRe = regexp.MustCompile(`^\d{4,20}$`)
	digitsRe  = regexp.MustCompile(`^\d*$`)
)

// checker accumulates field-level validation messages.
type checker struct{ details []string }

func (c *checker) check(ok bool, msg string) {
	if !ok {
		c.details = append(c.details, msg)
	}
}

func (c *checker) err() error {
	if len(c.details) == 0 {
		return nil
	}
	return errs.Validation(c.details...)
}

func (c *checker) date(v, field string) {
	c.check(isDate(v), field+" must be a date in YYYY-MM-DD format.")
}

func (c *checker) clock(v, field string) {
	c.check(isClock(v), field+" must be a time in HH:MM format.")
}

func (c *checker) text(v string, min, max int, field string) {
	n := len([]rune(v))
	c.check(n >= min && n <= max, fmt.Sprintf("%s must be %d-%d characters.", field, min, max))
}

func (c *checker) optText(v *string, max int, field string) {
	if v != nil {
		c.check(len([]rune(*v)) <= max, fmt.Sprintf("%s must be at most %d characters.", field, max))
	}
}

func (c *checker) oneOf(v string, allowed []string, field string) {
	for _, a := range allowed {
		if v == a {
			return
		}
	}
	c.details = append(c.details, fmt.Sprintf("%s must be one of: %s.", field, strings.Join(allowed, ", ")))
}

func (c *checker) number(v *float64, min, max float64, field string) {
	if v == nil {
		c.details = append(c.details, field+" is required.")
		return
	}
	c.check(*v >= min && *v <= max, fmt.Sprintf("%s must be between %g and %g.", field, min, max))
}

func (c *checker) optNumber(v *float64, min, max float64, field string) {
	if v != nil {
		c.number(v, min, max, field)
	}
}

func (c *checker) integer(v *int, min, max int, field string) {
	if v == nil {
		c.details = append(c.details, field+" is required.")
		return
	}
	c.check(*v >= min && *v <= max, fmt.Sprintf("%s must be between %d and %d.", field, min, max))
}

func (c *checker) optInteger(v *int, min, max int, field string) {
	if v != nil {
		c.integer(v, min, max, field)
	}
}

func isDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

func isClock(s string) bool {
	if !clockRe.MatchString(s) {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// ValidBarcode reports whether code is 4 to 20 digits.
func ValidBarcode(code string) bool { return barcodeRe.MatchString(code) }

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func isEmail(s string) bool {
	if len(s) == 0 || len(s) > 255 {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	return at > 0 && strings.Contains(s[at+1:], ".")
}

// strongPassword requires 8-128 characters with upper, lower and digit.
func strongPassword(pw string) (lengthOK, classesOK bool) {
	n := len([]rune(pw))
	lengthOK = n >= 8 && n <= 128
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lengthOK, upper && lower && digit
}

// daysParam validates an optional day-window parameter; zero means def.
func daysParam(days, def, max int) (int, error) {
	if days == 0 {
		return def, nil
	}
	if days < 1 || days > max {
		return 0, errs.Validation(fmt.Sprintf("days must be between 1 and %d.", max))
	}
	return days, nil
}

func validID(id int64) error {
	if id < 1 {
		return errs.Validation("id must be a positive integer.")
	}
	return nil
}

func optionalDate(date string) error {
	if date != "" && !isDate(date) {
		return errs.Validation("date must be a date in YYYY-MM-DD format.")
	}
	return nil
}
