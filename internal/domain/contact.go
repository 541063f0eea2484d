package domain

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	maxEmailLen    = 254
	maxPhoneLen    = 20
	minPhoneDigits = 7
)

var (
	validate   = validator.New()
	phoneRegex = regexp.MustCompile(`^\+?[0-9(][0-9 ().-]*[0-9]$`)
)

type Contact struct {
	ID          uuid.UUID  `json:"Id" bson:"id"`
	PhoneNumber string     `json:"PhoneNumber" bson:"phone_number"`
	Email       string     `json:"Email" bson:"email"`
	Address     *Address   `json:"Address" bson:"address"`
	CreatedAt   time.Time  `json:"CreatedAt" bson:"created_at"`
	UpdatedAt   *time.Time `json:"UpdatedAt" bson:"updated_at"`
}

func NewContact(email, phoneNumber string, address *Address) (*Contact, error) {
	c := &Contact{
		Email:       email,
		PhoneNumber: phoneNumber,
		Address:     address,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.ID = uuid.New()
	c.CreatedAt = time.Now().UTC()
	return c, nil
}

func (c *Contact) Validate() error {
	if err := ValidateEmail(c.Email); err != nil {
		return err
	}
	if err := ValidatePhoneNumber(c.PhoneNumber); err != nil {
		return err
	}
	if c.Address == nil {
		return missingDependency("address")
	}
	return c.Address.Validate()
}

// Touch marks the contact as modified.
func (c *Contact) Touch(now time.Time) {
	c.UpdatedAt = &now
}

func ValidateEmail(email string) error {
	if err := requireText("Email", email, maxEmailLen); err != nil {
		return err
	}
	if err := validate.Var(email, "email"); err != nil {
		return NewValidationError("Email", "invalid email address format")
	}
	return nil
}

func ValidatePhoneNumber(phone string) error {
	if err := requireText("PhoneNumber", phone, maxPhoneLen); err != nil {
		return err
	}
	if !IsValidPhone(phone) {
		return NewValidationError("PhoneNumber", "invalid phone number format")
	}
	return nil
}

// IsValidPhone accepts digits with optional leading +, spaces, dashes, dots and
// parentheses, with at least seven digits.
func IsValidPhone(phone string) bool {
	if !phoneRegex.MatchString(phone) {
		return false
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= minPhoneDigits
}
