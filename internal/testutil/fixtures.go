// Package testutil holds fixtures and helpers shared by package tests.
package testutil

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdugdh24/matchdotcom-backend/internal/domain"
	"github.com/stretchr/testify/require"
)

// BioText is long enough to satisfy the bio length rule.
var BioText = strings.Repeat("Enjoys sea swims, trad sessions and a good book by the fire. ", 10)

// ProfileOption tweaks a fixture before it is validated.
type ProfileOption func(*domain.UserProfileInput)

func WithDateOfBirth(dob time.Time) ProfileOption {
	return func(in *domain.UserProfileInput) { in.DateOfBirth = dob }
}

// WithAge sets the birth date so the profile is age years old today.
func WithAge(age int) ProfileOption {
	return WithDateOfBirth(time.Now().UTC().AddDate(-age, 0, -1))
}

func WithCoordinates(c domain.Coordinates) ProfileOption {
	return func(in *domain.UserProfileInput) { in.Contact.Address.Coordinates = c }
}

// NewAddress returns a valid Dublin address at the default coordinates.
func NewAddress(t testing.TB) *domain.Address {
	t.Helper()
	a, err := domain.NewAddress("1 Grafton Street", "Dublin", "Leinster", "D02 X285", "Ireland", "D02X285")
	require.NoError(t, err)
	return a
}

// NewProfile builds a valid profile for username, aged 30 unless overridden.
func NewProfile(t testing.TB, username string, opts ...ProfileOption) *domain.UserProfile {
	t.Helper()

	contact, err := domain.NewContact(username+"@example.ie", "+353 1 234 5678", NewAddress(t))
	require.NoError(t, err)

	bio, err := domain.NewProfileBio(BioText, nil, domain.GenderFemale,
		[]domain.Gender{domain.GenderMale}, []domain.Interest{domain.InterestOutdoors, domain.InterestReading})
	require.NoError(t, err)

	in := domain.UserProfileInput{
		Username:    username,
		FirstName:   "Aoife",
		MiddleName:  "Mary",
		LastName:    "Byrne",
		DateOfBirth: time.Now().UTC().AddDate(-30, 0, -1),
		Contact:     contact,
		Bio:         bio,
	}
	for _, opt := range opts {
		opt(&in)
	}

	p, err := domain.NewUserProfile(in)
	require.NoError(t, err)
	return p
}

// StubResolver answers every lookup with Coords or Err and records queries.
type StubResolver struct {
	Coords  domain.Coordinates
	Err     error
	Queries []string
}

func (s *StubResolver) Resolve(ctx context.Context, address string) (domain.Coordinates, error) {
	s.Queries = append(s.Queries, address)
	return s.Coords, s.Err
}
