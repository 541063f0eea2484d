package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	minBioLen       = 500
	maxBioLen       = 5000
	maxLifeMottoLen = 200
	maxInterests    = 10
)

type Gender int

const (
	GenderMale Gender = iota
	GenderFemale
	GenderOther
)

var genderNames = [...]string{"Male", "Female", "Other"}

func (g Gender) IsValid() bool {
	return g >= GenderMale && g <= GenderOther
}

func (g Gender) String() string {
	if !g.IsValid() {
		return "Unknown"
	}
	return genderNames[g]
}

type Interest int

const (
	InterestSports Interest = iota
	InterestMusic
	InterestTravel
	InterestFood
	InterestArts
	InterestTechnology
	InterestFitness
	InterestReading
	InterestGaming
	InterestOutdoors
)

var interestNames = [...]string{
	"Sports", "Music", "Travel", "Food", "Arts",
	"Technology", "Fitness", "Reading", "Gaming", "Outdoors",
}

func (i Interest) IsValid() bool {
	return i >= InterestSports && i <= InterestOutdoors
}

func (i Interest) String() string {
	if !i.IsValid() {
		return "Unknown"
	}
	return interestNames[i]
}

// AllInterests lists every interest in ordinal order.
func AllInterests() []Interest {
	out := make([]Interest, 0, len(interestNames))
	for i := range interestNames {
		out = append(out, Interest(i))
	}
	return out
}

type ProfileBio struct {
	ID               uuid.UUID  `json:"Id" bson:"id"`
	BioText          string     `json:"BioText" bson:"bio_text"`
	LifeMotto        *string    `json:"LifeMotto" bson:"life_motto"`
	Gender           Gender     `json:"Gender" bson:"gender"`
	GenderPreference []Gender   `json:"GenderPreference" bson:"gender_preference"`
	Interests        []Interest `json:"Interests" bson:"interests"`
	CreatedAt        time.Time  `json:"CreatedAt" bson:"created_at"`
	UpdatedAt        *time.Time `json:"UpdatedAt" bson:"updated_at"`
}

func NewProfileBio(bioText string, lifeMotto *string, gender Gender, genderPreference []Gender, interests []Interest) (*ProfileBio, error) {
	b := &ProfileBio{
		BioText:          bioText,
		LifeMotto:        lifeMotto,
		Gender:           gender,
		GenderPreference: append([]Gender(nil), genderPreference...),
		Interests:        append([]Interest(nil), interests...),
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	b.ID = uuid.New()
	b.CreatedAt = time.Now().UTC()
	return b, nil
}

func (b *ProfileBio) Validate() error {
	n := runeLen(b.BioText)
	if isBlank(b.BioText) {
		return NewValidationError("BioText", "is required")
	}
	if n < minBioLen {
		return NewValidationError("BioText", "must be at least %d characters", minBioLen)
	}
	if n > maxBioLen {
		return NewValidationError("BioText", "cannot exceed %d characters", maxBioLen)
	}
	if b.LifeMotto != nil {
		if err := optionalText("LifeMotto", *b.LifeMotto, maxLifeMottoLen); err != nil {
			return err
		}
	}
	if !b.Gender.IsValid() {
		return NewValidationError("Gender", "unknown gender %d", int(b.Gender))
	}
	if len(b.GenderPreference) == 0 {
		return NewValidationError("GenderPreference", "at least one gender preference is required")
	}
	for _, g := range b.GenderPreference {
		if !g.IsValid() {
			return NewValidationError("GenderPreference", "unknown gender %d", int(g))
		}
	}
	if len(b.Interests) == 0 {
		return NewValidationError("Interests", "at least one interest is required")
	}
	if len(b.Interests) > maxInterests {
		return NewValidationError("Interests", "a maximum of %d interests can be specified", maxInterests)
	}
	for _, i := range b.Interests {
		if !i.IsValid() {
			return NewValidationError("Interests", "unknown interest %d", int(i))
		}
	}
	return nil
}

func (b *ProfileBio) Touch(now time.Time) {
	b.UpdatedAt = &now
}
