package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/matchdotcom-backend/internal/domain"
	"github.com/gdugdh24/matchdotcom-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	resolver    domain.Resolver
	logger      *logrus.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewProfileUseCase wires the profile workflow. resolver may be nil, in which
// case new addresses keep their default coordinates.
func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	resolver domain.Resolver,
	logger *logrus.Logger,
	tracer trace.Tracer,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		resolver:    resolver,
		logger:      logger,
		tracer:      tracer,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateProfile validates the request through the domain constructors,
// geocodes the address and stores the profile.
func (uc *ProfileUseCase) CreateProfile(ctx context.Context, req *CreateProfileRequest) (*domain.UserProfile, error) {
	ctx, span := uc.tracer.Start(ctx, "ProfileUseCase.CreateProfile")
	defer span.End()

	if req.Contact == nil {
		return nil, fmt.Errorf("%w: contact", domain.ErrMissingDependency)
	}
	if req.Contact.Address == nil {
		return nil, fmt.Errorf("%w: address", domain.ErrMissingDependency)
	}
	if req.Bio == nil {
		return nil, fmt.Errorf("%w: bio", domain.ErrMissingDependency)
	}

	a := req.Contact.Address
	address, err := domain.NewAddress(a.Street, a.City, a.StateOrProvince, a.PostalCode, a.Country, a.Eircode)
	if err != nil {
		return nil, err
	}
	contact, err := domain.NewContact(req.Contact.Email, req.Contact.PhoneNumber, address)
	if err != nil {
		return nil, err
	}
	bio, err := domain.NewProfileBio(req.Bio.BioText, req.Bio.LifeMotto, req.Bio.Gender, req.Bio.GenderPreference, req.Bio.Interests)
	if err != nil {
		return nil, err
	}
	profile, err := domain.NewUserProfile(domain.UserProfileInput{
		Username:    req.Username,
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Contact:     contact,
		Bio:         bio,
	})
	if err != nil {
		return nil, err
	}

	// Skip the rate-limited lookup when the username is already taken.
	if _, err := uc.profileRepo.GetByUsername(ctx, profile.Username); err == nil {
		return nil, domain.ErrProfileAlreadyExists
	} else if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	uc.geocode(ctx, profile)

	if err := uc.profileRepo.Add(ctx, profile); err != nil {
		return nil, err
	}

	uc.logger.WithFields(logrus.Fields{
		"profile_id": profile.ID,
		"username":   profile.Username,
	}).Info("profile created")
	return profile, nil
}

func (uc *ProfileUseCase) GetProfileByUsername(ctx context.Context, username string) (*domain.UserProfile, error) {
	ctx, span := uc.tracer.Start(ctx, "ProfileUseCase.GetProfileByUsername")
	defer span.End()

	return uc.profileRepo.GetByUsername(ctx, username)
}

func (uc *ProfileUseCase) GetProfileByID(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	ctx, span := uc.tracer.Start(ctx, "ProfileUseCase.GetProfileByID")
	defer span.End()

	return uc.profileRepo.GetByID(ctx, id)
}

func (uc *ProfileUseCase) GetAllProfiles(ctx context.Context) ([]*domain.UserProfile, error) {
	ctx, span := uc.tracer.Start(ctx, "ProfileUseCase.GetAllProfiles")
	defer span.End()

	return uc.profileRepo.GetAll(ctx)
}

// UpdateProfile applies the non-nil fields of req, re-validates the whole
// aggregate and re-geocodes when the address changed.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, username string, req *UpdateProfileRequest) (*domain.UserProfile, error) {
	ctx, span := uc.tracer.Start(ctx, "ProfileUseCase.UpdateProfile")
	defer span.End()

	if req.Username != nil && *req.Username != username {
		return nil, domain.NewValidationError("Username", "does not match the profile being updated")
	}

	current, err := uc.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	updated := current.Clone()
	contactChanged, addressChanged, bioChanged := applyUpdate(updated, req)

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	now := uc.now()
	if addressChanged {
		updated.Contact.Address.Coordinates = domain.DefaultCoordinates()
		uc.geocode(ctx, updated)
	}
	if contactChanged || addressChanged {
		updated.Contact.Touch(now)
	}
	if bioChanged {
		updated.Bio.Touch(now)
	}
	updated.Touch(now)

	if err := uc.profileRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	uc.logger.WithFields(logrus.Fields{
		"profile_id":      updated.ID,
		"username":        updated.Username,
		"address_changed": addressChanged,
	}).Info("profile updated")
	return updated, nil
}

func applyUpdate(p *domain.UserProfile, req *UpdateProfileRequest) (contactChanged, addressChanged, bioChanged bool) {
	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.MiddleName != nil {
		p.MiddleName = *req.MiddleName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	if req.DateOfBirth != nil {
		p.DateOfBirth = *req.DateOfBirth
	}

	if c := req.Contact; c != nil {
		if c.Email != nil && *c.Email != p.Contact.Email {
			p.Contact.Email = *c.Email
			contactChanged = true
		}
		if c.PhoneNumber != nil && *c.PhoneNumber != p.Contact.PhoneNumber {
			p.Contact.PhoneNumber = *c.PhoneNumber
			contactChanged = true
		}
		if a := c.Address; a != nil {
			addr := p.Contact.Address
			if addr.Street != a.Street || addr.City != a.City || addr.StateOrProvince != a.StateOrProvince ||
				addr.PostalCode != a.PostalCode || addr.Country != a.Country || addr.Eircode != a.Eircode {
				addr.Street = a.Street
				addr.City = a.City
				addr.StateOrProvince = a.StateOrProvince
				addr.PostalCode = a.PostalCode
				addr.Country = a.Country
				addr.Eircode = a.Eircode
				addressChanged = true
			}
		}
	}

	if b := req.Bio; b != nil {
		if b.BioText != nil {
			p.Bio.BioText = *b.BioText
			bioChanged = true
		}
		if b.LifeMotto != nil {
			if *b.LifeMotto == "" {
				p.Bio.LifeMotto = nil
			} else {
				motto := *b.LifeMotto
				p.Bio.LifeMotto = &motto
			}
			bioChanged = true
		}
		if b.Gender != nil {
			p.Bio.Gender = *b.Gender
			bioChanged = true
		}
		if b.GenderPreference != nil {
			p.Bio.GenderPreference = append([]domain.Gender(nil), b.GenderPreference...)
			bioChanged = true
		}
		if b.Interests != nil {
			p.Bio.Interests = append([]domain.Interest(nil), b.Interests...)
			bioChanged = true
		}
	}
	return contactChanged, addressChanged, bioChanged
}

// RefreshCoordinates re-geocodes the stored address of username.
func (uc *ProfileUseCase) RefreshCoordinates(ctx context.Context, username string) (*domain.UserProfile, error) {
	ctx, span := uc.tracer.Start(ctx, "ProfileUseCase.RefreshCoordinates")
	defer span.End()

	profile, err := uc.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	before := profile.Coordinates()
	if !uc.geocode(ctx, profile) || profile.Coordinates() == before {
		return profile, nil
	}

	now := uc.now()
	profile.Contact.Touch(now)
	profile.Touch(now)
	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (uc *ProfileUseCase) DeleteProfileByUsername(ctx context.Context, username string) (bool, error) {
	ctx, span := uc.tracer.Start(ctx, "ProfileUseCase.DeleteProfileByUsername")
	defer span.End()

	deleted, err := uc.profileRepo.DeleteByUsername(ctx, username)
	if err == nil && deleted {
		uc.logger.WithField("username", username).Info("profile deleted")
	}
	return deleted, err
}

func (uc *ProfileUseCase) DeleteProfileByID(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, span := uc.tracer.Start(ctx, "ProfileUseCase.DeleteProfileByID")
	defer span.End()

	deleted, err := uc.profileRepo.DeleteByID(ctx, id)
	if err == nil && deleted {
		uc.logger.WithField("profile_id", id).Info("profile deleted")
	}
	return deleted, err
}

// geocode is best effort: a failed lookup never blocks the caller.
func (uc *ProfileUseCase) geocode(ctx context.Context, profile *domain.UserProfile) bool {
	if uc.resolver == nil {
		return false
	}
	ok := profile.Contact.Address.UpdateCoordinates(ctx, uc.resolver)
	if !ok {
		uc.logger.WithField("username", profile.Username).Warn("could not geocode address, keeping current coordinates")
	}
	return ok
}
