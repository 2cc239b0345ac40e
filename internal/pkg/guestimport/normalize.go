// Package guestimport implements the CSV guest import pipeline: header alias
// normalization, row validation and intra-batch duplicate detection.
package guestimport

import (
	"strconv"
	"strings"

	"github.com/secura-qr/secura-qr/internal/domain"
)

// Accepted header aliases per canonical field, in lookup order. Guest lists
// come from both French and English tools, so both header sets are accepted.
// Aliases are matched case-insensitively against trimmed headers.
var (
	firstNameAliases = []string{"firstname", "first_name", "prenom", "prénom"}
	lastNameAliases  = []string{"lastname", "last_name", "nom", "name"}
	emailAliases     = []string{"email", "e-mail", "courriel", "mail"}
	phoneAliases     = []string{"phone", "telephone", "téléphone", "tel"}
	companyAliases   = []string{"company", "societe", "société", "organisation"}
	notesAliases     = []string{"notes", "commentaires", "comments"}
	seatsAliases     = []string{"seats", "places", "nb_places"}
	categoryAliases  = []string{"category", "categorie", "catégorie"}
	tableAliases     = []string{"tablenumber", "table_number", "table", "numero_table"}
)

// Normalize maps one raw CSV record onto a canonical import candidate. It
// trims whitespace, lowercases the email, defaults seats to 1 when missing or
// non-numeric and defaults the status to pending. It never fails; missing
// fields become empty strings.
func Normalize(eventID uint, raw map[string]string) domain.NormalizedGuest {
	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		fields[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}

	seats := 1
	if v := lookup(fields, seatsAliases); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			seats = n
		}
	}

	return domain.NormalizedGuest{
		EventID:     eventID,
		FirstName:   lookup(fields, firstNameAliases),
		LastName:    lookup(fields, lastNameAliases),
		Email:       strings.ToLower(lookup(fields, emailAliases)),
		Phone:       lookup(fields, phoneAliases),
		Company:     lookup(fields, companyAliases),
		Notes:       lookup(fields, notesAliases),
		Seats:       seats,
		Status:      domain.GuestPending,
		Category:    lookup(fields, categoryAliases),
		TableNumber: lookup(fields, tableAliases),
	}
}

// lookup returns the value of the first alias present with a non-empty value.
func lookup(fields map[string]string, aliases []string) string {
	for _, alias := range aliases {
		if v, ok := fields[alias]; ok && v != "" {
			return v
		}
	}

	return ""
}
