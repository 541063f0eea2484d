package profile

import (
	"encoding/json"
	"time"

	"github.com/gdugdh24/matchdotcom-backend/internal/domain"
)

// Request bodies use the same field names as the profile JSON, so a profile
// read from the API can be posted back.

type AddressRequest struct {
	Street          string `json:"Street" binding:"required"`
	City            string `json:"City" binding:"required"`
	StateOrProvince string `json:"StateOrProvince"`
	PostalCode      string `json:"PostalCode" binding:"required"`
	Country         string `json:"Country" binding:"required"`
	Eircode         string `json:"Eircode"`
}

type ContactRequest struct {
	PhoneNumber string          `json:"PhoneNumber" binding:"required,phone"`
	Email       string          `json:"Email" binding:"required,email"`
	Address     *AddressRequest `json:"Address" binding:"required"`
}

type BioRequest struct {
	BioText          string            `json:"BioText" binding:"required"`
	LifeMotto        *string           `json:"LifeMotto"`
	Gender           domain.Gender     `json:"Gender"`
	GenderPreference []domain.Gender   `json:"GenderPreference" binding:"required,min=1"`
	Interests        []domain.Interest `json:"Interests" binding:"required,min=1"`
}

// CreateProfileRequest represents profile creation request
type CreateProfileRequest struct {
	Username    string          `json:"Username" binding:"required"`
	FirstName   string          `json:"FirstName" binding:"required"`
	MiddleName  string          `json:"MiddleName" binding:"required"`
	LastName    string          `json:"LastName" binding:"required"`
	DateOfBirth time.Time       `json:"DateOfBirth" binding:"required"`
	Contact     *ContactRequest `json:"Contact" binding:"required"`
	Bio         *BioRequest     `json:"Bio" binding:"required"`
}

type UpdateContactRequest struct {
	PhoneNumber *string         `json:"PhoneNumber" binding:"omitempty,phone"`
	Email       *string         `json:"Email" binding:"omitempty,email"`
	Address     *AddressRequest `json:"Address"`
}

// UpdateBioRequest carries bio changes. An empty LifeMotto clears it.
type UpdateBioRequest struct {
	BioText          *string           `json:"BioText"`
	LifeMotto        *string           `json:"LifeMotto"`
	Gender           *domain.Gender    `json:"Gender"`
	GenderPreference []domain.Gender   `json:"GenderPreference"`
	Interests        []domain.Interest `json:"Interests"`
}

// UpdateProfileRequest represents a partial profile update. Nil fields are
// left untouched. Username, when present, must name the profile being updated.
type UpdateProfileRequest struct {
	Username    *string               `json:"Username"`
	FirstName   *string               `json:"FirstName"`
	MiddleName  *string               `json:"MiddleName"`
	LastName    *string               `json:"LastName"`
	DateOfBirth *time.Time            `json:"DateOfBirth"`
	Contact     *UpdateContactRequest `json:"Contact"`
	Bio         *UpdateBioRequest     `json:"Bio"`
}

// UnmarshalJSON accepts DateOfBirth with or without a zone offset.
func (r *CreateProfileRequest) UnmarshalJSON(data []byte) error {
	type createAlias CreateProfileRequest
	aux := struct {
		*createAlias
		DateOfBirth domain.Timestamp `json:"DateOfBirth"`
	}{createAlias: (*createAlias)(r), DateOfBirth: domain.Timestamp(r.DateOfBirth)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.DateOfBirth = time.Time(aux.DateOfBirth)
	return nil
}

func (r *UpdateProfileRequest) UnmarshalJSON(data []byte) error {
	type updateAlias UpdateProfileRequest
	aux := struct {
		*updateAlias
		DateOfBirth *domain.Timestamp `json:"DateOfBirth"`
	}{updateAlias: (*updateAlias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.DateOfBirth != nil {
		dob := time.Time(*aux.DateOfBirth)
		r.DateOfBirth = &dob
	}
	return nil
}
