package guestimport

import "github.com/secura-qr/secura-qr/internal/domain"

// Dedup detects duplicates within a single import batch. Two candidates for
// the same event collide when both carry the same non-empty email, or when
// both lack an email and their first and last names match exactly. The first
// occurrence wins; the accumulator never consults the persistent store.
type Dedup struct {
	accepted []domain.NormalizedGuest
}

func NewDedup() *Dedup {
	return &Dedup{}
}

// IsDuplicate reports whether the candidate collides with an earlier
// registered row of the same batch.
func (d *Dedup) IsDuplicate(c domain.NormalizedGuest) bool {
	for _, a := range d.accepted {
		if a.EventID != c.EventID {
			continue
		}
		if c.Email != "" && a.Email == c.Email {
			return true
		}
		if c.Email == "" && a.Email == "" &&
			a.FirstName == c.FirstName && a.LastName == c.LastName {
			return true
		}
	}

	return false
}

// Register records an accepted candidate for subsequent duplicate checks.
func (d *Dedup) Register(c domain.NormalizedGuest) {
	d.accepted = append(d.accepted, c)
}
