package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 20
	minAdultAge    = 18
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	minBirthDate  = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// UserProfile is the aggregate root. It owns exactly one Contact and one
// ProfileBio.
type UserProfile struct {
	ID          uuid.UUID   `json:"Id" bson:"id"`
	Username    string      `json:"Username" bson:"username"`
	FirstName   string      `json:"FirstName" bson:"first_name"`
	MiddleName  string      `json:"MiddleName" bson:"middle_name"`
	LastName    string      `json:"LastName" bson:"last_name"`
	DateOfBirth time.Time   `json:"DateOfBirth" bson:"date_of_birth"`
	Contact     *Contact    `json:"Contact" bson:"contact"`
	Bio         *ProfileBio `json:"Bio" bson:"bio"`
	CreatedAt   time.Time   `json:"CreatedAt" bson:"created_at"`
	UpdatedAt   *time.Time  `json:"UpdatedAt" bson:"updated_at"`
}

type UserProfileInput struct {
	Username    string
	FirstName   string
	MiddleName  string
	LastName    string
	DateOfBirth time.Time
	Contact     *Contact
	Bio         *ProfileBio
}

// NewUserProfile validates the input and builds a profile. Validation stops at
// the first failing rule; no partially built profile is ever returned.
func NewUserProfile(in UserProfileInput) (*UserProfile, error) {
	return newUserProfileAt(in, time.Now().UTC())
}

func newUserProfileAt(in UserProfileInput, now time.Time) (*UserProfile, error) {
	p := &UserProfile{
		Username:    in.Username,
		FirstName:   in.FirstName,
		MiddleName:  in.MiddleName,
		LastName:    in.LastName,
		DateOfBirth: in.DateOfBirth,
		Contact:     in.Contact,
		Bio:         in.Bio,
	}
	if err := p.validateAt(now); err != nil {
		return nil, err
	}
	p.ID = uuid.New()
	p.CreatedAt = now
	return p, nil
}

// Validate re-checks every invariant of the aggregate against the current time.
func (p *UserProfile) Validate() error {
	if err := p.validateAt(time.Now().UTC()); err != nil {
		return err
	}
	if err := p.Contact.Validate(); err != nil {
		return err
	}
	return p.Bio.Validate()
}

func (p *UserProfile) validateAt(now time.Time) error {
	if err := ValidateUsername(p.Username); err != nil {
		return err
	}
	if err := textBetween("FirstName", p.FirstName, 2, 50); err != nil {
		return err
	}
	if err := textBetween("MiddleName", p.MiddleName, 1, 50); err != nil {
		return err
	}
	if err := textBetween("LastName", p.LastName, 2, 50); err != nil {
		return err
	}
	if err := validateDateOfBirth(p.DateOfBirth, now); err != nil {
		return err
	}
	if p.Contact == nil {
		return missingDependency("contact")
	}
	if p.Bio == nil {
		return missingDependency("bio")
	}
	return nil
}

func ValidateUsername(username string) error {
	n := runeLen(username)
	if isBlank(username) || n < minUsernameLen || n > maxUsernameLen || !usernameRegex.MatchString(username) {
		return NewValidationError("Username",
			"must be between %d and %d characters long and can only contain letters, numbers, and underscores",
			minUsernameLen, maxUsernameLen)
	}
	return nil
}

// validateDateOfBirth requires the birth date to be strictly before
// now minus 18 years and not before 1900-01-01.
func validateDateOfBirth(dob, now time.Time) error {
	if !dob.Before(now.AddDate(-minAdultAge, 0, 0)) || dob.Before(minBirthDate) {
		return NewValidationError("DateOfBirth", "must be at least %d years old and born in or after 1900", minAdultAge)
	}
	return nil
}

// Age is derived from DateOfBirth at call time.
func (p *UserProfile) Age() int {
	return p.AgeAt(time.Now().UTC())
}

func (p *UserProfile) AgeAt(now time.Time) int {
	return AgeAt(p.DateOfBirth, now)
}

// AgeAt returns full years elapsed between dob and now.
func AgeAt(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if dob.AddDate(years, 0, 0).After(now) {
		years--
	}
	return years
}

// Coordinates returns the profile's address location.
func (p *UserProfile) Coordinates() Coordinates {
	if p.Contact == nil || p.Contact.Address == nil {
		return DefaultCoordinates()
	}
	return p.Contact.Address.Coordinates
}

func (p *UserProfile) Touch(now time.Time) {
	p.UpdatedAt = &now
}

// Clone returns a deep copy so stores never share mutable state with callers.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	cp := *p
	cp.UpdatedAt = cloneTime(p.UpdatedAt)
	if p.Contact != nil {
		c := *p.Contact
		c.UpdatedAt = cloneTime(p.Contact.UpdatedAt)
		if p.Contact.Address != nil {
			a := *p.Contact.Address
			c.Address = &a
		}
		cp.Contact = &c
	}
	if p.Bio != nil {
		b := *p.Bio
		b.UpdatedAt = cloneTime(p.Bio.UpdatedAt)
		if p.Bio.LifeMotto != nil {
			m := *p.Bio.LifeMotto
			b.LifeMotto = &m
		}
		b.GenderPreference = append([]Gender(nil), p.Bio.GenderPreference...)
		b.Interests = append([]Interest(nil), p.Bio.Interests...)
		cp.Bio = &b
	}
	return &cp
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
