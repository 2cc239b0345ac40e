package guestimport

import (
	"regexp"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/secura-qr/secura-qr/internal/domain"
)

// PhoneRegex accepts digits, spaces, plus, dashes and parentheses, 8 to 20
// characters. Shared with the API request validators so the single-create and
// import paths apply the same phone rule.
var PhoneRegex = regexp.MustCompile(`^[0-9 ()+\-]{8,20}$`)

// ValidateRow schema-checks a normalized import candidate and returns a flat,
// deterministic list of human-readable error messages. An empty list means
// the row is valid.
func ValidateRow(c domain.NormalizedGuest) []string {
	var messages []string

	if c.EventID == 0 {
		messages = append(messages, "event id is required")
	}
	if c.FirstName == "" && c.LastName == "" {
		messages = append(messages, "a first name or last name is required")
	}

	err := validation.ValidateStruct(&c,
		validation.Field(&c.FirstName, validation.Length(0, 100)),
		validation.Field(&c.LastName, validation.Length(0, 100)),
		validation.Field(&c.Email, is.Email),
		validation.Field(&c.Phone, validation.Match(PhoneRegex).Error("must be a valid phone number")),
		validation.Field(&c.Company, validation.Length(0, 100)),
		validation.Field(&c.Notes, validation.Length(0, 500)),
		validation.Field(&c.Seats, validation.Min(1)),
	)
	if err != nil {
		messages = append(messages, flatten(err)...)
	}

	return messages
}

// flatten turns an ozzo validation.Errors map into "field: message" strings
// sorted by field name, so batch error output is reproducible.
func flatten(err error) []string {
	errs, ok := err.(validation.Errors)
	if !ok {
		return []string{err.Error()}
	}

	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, field+": "+errs[field].Error())
	}

	return messages
}
