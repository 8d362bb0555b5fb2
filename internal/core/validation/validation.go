// Package validation checks caller-supplied calculation parameters before any
// store access happens.
package validation

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/vietddude/bizday/internal/core/calendar"
	"github.com/vietddude/bizday/internal/core/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Accepts both boundary forms, YYYY-MM-DD and YYYY-MM-DD HH:mm:ss.
	_ = v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDate(fl.Field().String())
		return err == nil
	})
	return v
}

// Input is a calculation request in its raw boundary form.
type Input struct {
	Date      string
	DayCount  string
	TableName string
	Region    string
}

// Validate returns every problem found in in; an empty result means valid.
func Validate(in Input) []domain.Message {
	var msgs []domain.Message
	msgs = append(msgs, NotEmpty("date", in.Date)...)
	msgs = append(msgs, NotEmpty("dayCount", in.DayCount)...)
	msgs = append(msgs, NotEmpty("tableName", in.TableName)...)
	msgs = append(msgs, NotEmpty("region", in.Region)...)
	msgs = append(msgs, Date("date", in.Date)...)
	if numeric := Numeric("dayCount", in.DayCount); len(numeric) > 0 {
		msgs = append(msgs, numeric...)
	} else {
		msgs = append(msgs, AtMost("dayCount", in.DayCount, calendar.MaxDayCount)...)
	}
	return msgs
}

// NotEmpty reports a missing value.
func NotEmpty(field, value string) []domain.Message {
	if err := validate.Var(value, "required"); err != nil {
		return []domain.Message{domain.NewMessage("%s is required.", field)}
	}
	return nil
}

// Date reports a value that is not a calendar date. Empty values pass; use NotEmpty for those.
func Date(field, value string) []domain.Message {
	if err := validate.Var(value, "omitempty,calendardate"); err != nil {
		return []domain.Message{domain.NewMessage("%s must be a valid date (YYYY-MM-DD).", field)}
	}
	return nil
}

// Numeric reports a value that is not a non-negative integer. Empty values pass.
func Numeric(field, value string) []domain.Message {
	if err := validate.Var(value, "omitempty,number"); err != nil {
		return []domain.Message{domain.NewMessage("%s must be a non-negative integer.", field)}
	}
	return nil
}

// AtMost reports a non-negative integer value greater than max. Values that
// do not fit an int are over the limit. Empty values pass.
func AtMost(field, value string, max int) []domain.Message {
	if value == "" {
		return nil
	}
	tooLarge := []domain.Message{domain.NewMessage("%s must be at most %d.", field, max)}
	n, err := strconv.Atoi(value)
	if err != nil {
		return tooLarge
	}
	if err := validate.Var(n, fmt.Sprintf("lte=%d", max)); err != nil {
		return tooLarge
	}
	return nil
}
