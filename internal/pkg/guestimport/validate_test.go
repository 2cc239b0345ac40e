package guestimport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/secura-qr/secura-qr/internal/domain"
)

func validCandidate() domain.NormalizedGuest {
	return domain.NormalizedGuest{
		EventID:   1,
		FirstName: "Alice",
		LastName:  "Martin",
		Email:     "alice@example.com",
		Phone:     "+33612345678",
		Seats:     1,
		Status:    domain.GuestPending,
	}
}

func TestValidateRow_Valid(t *testing.T) {
	assert.Empty(t, ValidateRow(validCandidate()))
}

func TestValidateRow_NameRequired(t *testing.T) {
	c := validCandidate()
	c.FirstName = ""
	c.LastName = ""

	messages := ValidateRow(c)
	assert.Contains(t, messages, "a first name or last name is required")
}

func TestValidateRow_OneNameSuffices(t *testing.T) {
	c := validCandidate()
	c.FirstName = ""

	assert.Empty(t, ValidateRow(c))

	c = validCandidate()
	c.LastName = ""

	assert.Empty(t, ValidateRow(c))
}

func TestValidateRow_MissingEventID(t *testing.T) {
	c := validCandidate()
	c.EventID = 0

	messages := ValidateRow(c)
	assert.Contains(t, messages, "event id is required")
}

func TestValidateRow_Email(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{"empty is allowed", "", true},
		{"valid", "alice@example.com", true},
		{"no at sign", "alice.example.com", false},
		{"no domain", "alice@", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCandidate()
			c.Email = tt.email

			messages := ValidateRow(c)
			if tt.valid {
				assert.Empty(t, messages)
			} else {
				assert.NotEmpty(t, messages)
			}
		})
	}
}

func TestValidateRow_Phone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{"empty is allowed", "", true},
		{"international", "+33 6 12 34 56 78", true},
		{"national", "0612345678", true},
		{"with parens", "(01) 2345-6789", true},
		{"letters", "abc", false},
		{"too short", "1234567", false},
		{"too long", "123456789012345678901", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCandidate()
			c.Phone = tt.phone

			messages := ValidateRow(c)
			if tt.valid {
				assert.Empty(t, messages)
			} else {
				assert.NotEmpty(t, messages)
			}
		})
	}
}

func TestValidateRow_NotesLength(t *testing.T) {
	c := validCandidate()
	c.Notes = strings.Repeat("x", 500)
	assert.Empty(t, ValidateRow(c))

	c.Notes = strings.Repeat("x", 501)
	assert.NotEmpty(t, ValidateRow(c))
}

func TestValidateRow_Deterministic(t *testing.T) {
	c := validCandidate()
	c.Email = "not-an-email"
	c.Phone = "abc"
	c.Notes = strings.Repeat("x", 501)

	first := ValidateRow(c)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, ValidateRow(c))
	}
}
