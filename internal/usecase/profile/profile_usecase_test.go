package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdugdh24/matchdotcom-backend/internal/domain"
	"github.com/gdugdh24/matchdotcom-backend/internal/repository/mocks"
	"github.com/gdugdh24/matchdotcom-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var galway = domain.Coordinates{Latitude: 53.2707, Longitude: -9.0568}

func newUseCase(repo *mocks.ProfileRepository, resolver domain.Resolver) *ProfileUseCase {
	uc := NewProfileUseCase(repo, resolver, testutil.Logger(), testutil.Tracer())
	uc.now = func() time.Time { return time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC) }
	return uc
}

func validCreateRequest() *CreateProfileRequest {
	motto := "Carpe diem"
	return &CreateProfileRequest{
		Username:    "ciara_g",
		FirstName:   "Ciara",
		MiddleName:  "Anne",
		LastName:    "Gallagher",
		DateOfBirth: time.Date(1994, time.June, 2, 0, 0, 0, 0, time.UTC),
		Contact: &ContactRequest{
			PhoneNumber: "+353 91 123 456",
			Email:       "ciara@example.ie",
			Address: &AddressRequest{
				Street:     "Shop Street",
				City:       "Galway",
				PostalCode: "H91 X2Y3",
				Country:    "Ireland",
				Eircode:    "H91X2Y3",
			},
		},
		Bio: &BioRequest{
			BioText:          testutil.BioText,
			LifeMotto:        &motto,
			Gender:           domain.GenderFemale,
			GenderPreference: []domain.Gender{domain.GenderMale, domain.GenderOther},
			Interests:        []domain.Interest{domain.InterestArts, domain.InterestTravel},
		},
	}
}

func TestCreateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("geocodes and stores", func(t *testing.T) {
		repo := new(mocks.ProfileRepository)
		resolver := &testutil.StubResolver{Coords: galway}
		repo.On("GetByUsername", mock.Anything, "ciara_g").Return(nil, domain.ErrProfileNotFound)
		repo.On("Add", mock.Anything, mock.MatchedBy(func(p *domain.UserProfile) bool {
			return p.Username == "ciara_g" && p.Contact.Address.Coordinates == galway
		})).Return(nil)

		p, err := newUseCase(repo, resolver).CreateProfile(ctx, validCreateRequest())
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, p.ID)
		assert.Equal(t, galway, p.Coordinates())
		assert.Equal(t, []string{"H91X2Y3, Shop Street, Galway, H91 X2Y3, Ireland"}, resolver.Queries)
		repo.AssertExpectations(t)
	})

	t.Run("geocoding failure does not block creation", func(t *testing.T) {
		repo := new(mocks.ProfileRepository)
		repo.On("GetByUsername", mock.Anything, "ciara_g").Return(nil, domain.ErrProfileNotFound)
		repo.On("Add", mock.Anything, mock.Anything).Return(nil)

		p, err := newUseCase(repo, &testutil.StubResolver{Err: errors.New("offline")}).CreateProfile(ctx, validCreateRequest())
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultCoordinates(), p.Coordinates())
	})

	t.Run("without a resolver keeps default coordinates", func(t *testing.T) {
		repo := new(mocks.ProfileRepository)
		repo.On("GetByUsername", mock.Anything, "ciara_g").Return(nil, domain.ErrProfileNotFound)
		repo.On("Add", mock.Anything, mock.Anything).Return(nil)

		p, err := newUseCase(repo, nil).CreateProfile(ctx, validCreateRequest())
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultCoordinates(), p.Coordinates())
	})

	t.Run("taken username skips geocoding", func(t *testing.T) {
		repo := new(mocks.ProfileRepository)
		resolver := &testutil.StubResolver{Coords: galway}
		repo.On("GetByUsername", mock.Anything, "ciara_g").Return(testutil.NewProfile(t, "ciara_g"), nil)

		_, err := newUseCase(repo, resolver).CreateProfile(ctx, validCreateRequest())
		assert.ErrorIs(t, err, domain.ErrProfileAlreadyExists)
		assert.Empty(t, resolver.Queries)
		repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("conflict from the store", func(t *testing.T) {
		repo := new(mocks.ProfileRepository)
		repo.On("GetByUsername", mock.Anything, "ciara_g").Return(nil, domain.ErrProfileNotFound)
		repo.On("Add", mock.Anything, mock.Anything).Return(domain.ErrProfileAlreadyExists)

		_, err := newUseCase(repo, nil).CreateProfile(ctx, validCreateRequest())
		assert.ErrorIs(t, err, domain.ErrProfileAlreadyExists)
	})

	t.Run("invalid input never reaches the store", func(t *testing.T) {
		cases := map[string]func(*CreateProfileRequest){
			"bad email":      func(r *CreateProfileRequest) { r.Contact.Email = "not-an-email" },
			"short bio":      func(r *CreateProfileRequest) { r.Bio.BioText = "too short" },
			"bad username":   func(r *CreateProfileRequest) { r.Username = "ciara g" },
			"missing street": func(r *CreateProfileRequest) { r.Contact.Address.Street = "" },
			"minor":          func(r *CreateProfileRequest) { r.DateOfBirth = time.Now().AddDate(-17, 0, 0) },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				repo := new(mocks.ProfileRepository)
				req := validCreateRequest()
				mutate(req)

				_, err := newUseCase(repo, nil).CreateProfile(ctx, req)
				assert.ErrorIs(t, err, domain.ErrValidation)
				repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("missing parts", func(t *testing.T) {
		repo := new(mocks.ProfileRepository)
		req := validCreateRequest()
		req.Bio = nil
		_, err := newUseCase(repo, nil).CreateProfile(ctx, req)
		assert.ErrorIs(t, err, domain.ErrMissingDependency)

		req = validCreateRequest()
		req.Contact.Address = nil
		_, err = newUseCase(repo, nil).CreateProfile(ctx, req)
		assert.ErrorIs(t, err, domain.ErrMissingDependency)
	})
}

func strPtr(s string) *string { return &s }

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a mismatched username", func(t *testing.T) {
		repo := new(mocks.ProfileRepository)
		_, err := newUseCase(repo, nil).UpdateProfile(ctx, "aoife", &UpdateProfileRequest{Username: strPtr("someone_else")})

		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "Username", vErr.Field)
		repo.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
	})

	t.Run("unknown profile", func(t *testing.T) {
		repo := new(mocks.ProfileRepository)
		repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, domain.ErrProfileNotFound)

		_, err := newUseCase(repo, nil).UpdateProfile(ctx, "ghost", &UpdateProfileRequest{})
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})

	t.Run("partial name change", func(t *testing.T) {
		existing := testutil.NewProfile(t, "aoife")
		repo := new(mocks.ProfileRepository)
		resolver := &testutil.StubResolver{Coords: galway}
		repo.On("GetByUsername", mock.Anything, "aoife").Return(existing, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		p, err := newUseCase(repo, resolver).UpdateProfile(ctx, "aoife", &UpdateProfileRequest{
			Username: strPtr("aoife"),
			LastName: strPtr("Kavanagh"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Kavanagh", p.LastName)
		assert.Equal(t, "Aoife", p.FirstName)
		require.NotNil(t, p.UpdatedAt)
		assert.Nil(t, p.Contact.UpdatedAt)
		assert.Nil(t, p.Bio.UpdatedAt)
		assert.Empty(t, resolver.Queries)
		assert.Equal(t, "Byrne", existing.LastName, "stored copy must not be mutated")
	})

	t.Run("address change re-geocodes", func(t *testing.T) {
		existing := testutil.NewProfile(t, "aoife")
		repo := new(mocks.ProfileRepository)
		resolver := &testutil.StubResolver{Coords: galway}
		repo.On("GetByUsername", mock.Anything, "aoife").Return(existing, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.UserProfile) bool {
			return p.Coordinates() == galway
		})).Return(nil)

		p, err := newUseCase(repo, resolver).UpdateProfile(ctx, "aoife", &UpdateProfileRequest{
			Contact: &UpdateContactRequest{Address: &AddressRequest{
				Street: "Quay Street", City: "Galway", PostalCode: "H91 AB12", Country: "Ireland",
			}},
		})
		require.NoError(t, err)
		assert.Equal(t, existing.Contact.Address.ID, p.Contact.Address.ID)
		assert.Equal(t, "Quay Street", p.Contact.Address.Street)
		assert.NotNil(t, p.Contact.UpdatedAt)
		assert.Len(t, resolver.Queries, 1)
		repo.AssertExpectations(t)
	})

	t.Run("bio change touches the bio", func(t *testing.T) {
		existing := testutil.NewProfile(t, "aoife")
		repo := new(mocks.ProfileRepository)
		repo.On("GetByUsername", mock.Anything, "aoife").Return(existing, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		p, err := newUseCase(repo, nil).UpdateProfile(ctx, "aoife", &UpdateProfileRequest{
			Bio: &UpdateBioRequest{Interests: []domain.Interest{domain.InterestFood}},
		})
		require.NoError(t, err)
		assert.Equal(t, []domain.Interest{domain.InterestFood}, p.Bio.Interests)
		assert.NotNil(t, p.Bio.UpdatedAt)
	})

	t.Run("empty life motto clears it", func(t *testing.T) {
		existing := testutil.NewProfile(t, "aoife")
		existing.Bio.LifeMotto = strPtr("Live and let live")
		repo := new(mocks.ProfileRepository)
		repo.On("GetByUsername", mock.Anything, "aoife").Return(existing, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.UserProfile) bool {
			return p.Bio.LifeMotto == nil
		})).Return(nil)

		p, err := newUseCase(repo, nil).UpdateProfile(ctx, "aoife", &UpdateProfileRequest{
			Bio: &UpdateBioRequest{LifeMotto: strPtr("")},
		})
		require.NoError(t, err)
		assert.Nil(t, p.Bio.LifeMotto)
		assert.NotNil(t, p.Bio.UpdatedAt)
		repo.AssertExpectations(t)
	})

	t.Run("life motto can be set", func(t *testing.T) {
		repo := new(mocks.ProfileRepository)
		repo.On("GetByUsername", mock.Anything, "aoife").Return(testutil.NewProfile(t, "aoife"), nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		p, err := newUseCase(repo, nil).UpdateProfile(ctx, "aoife", &UpdateProfileRequest{
			Bio: &UpdateBioRequest{LifeMotto: strPtr("Sláinte")},
		})
		require.NoError(t, err)
		require.NotNil(t, p.Bio.LifeMotto)
		assert.Equal(t, "Sláinte", *p.Bio.LifeMotto)
	})

	t.Run("invalid result is rejected", func(t *testing.T) {
		repo := new(mocks.ProfileRepository)
		repo.On("GetByUsername", mock.Anything, "aoife").Return(testutil.NewProfile(t, "aoife"), nil)

		_, err := newUseCase(repo, nil).UpdateProfile(ctx, "aoife", &UpdateProfileRequest{
			Bio: &UpdateBioRequest{Interests: []domain.Interest{}},
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestRefreshCoordinates(t *testing.T) {
	ctx := context.Background()

	t.Run("stores new coordinates", func(t *testing.T) {
		repo := new(mocks.ProfileRepository)
		repo.On("GetByUsername", mock.Anything, "aoife").Return(testutil.NewProfile(t, "aoife"), nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		p, err := newUseCase(repo, &testutil.StubResolver{Coords: galway}).RefreshCoordinates(ctx, "aoife")
		require.NoError(t, err)
		assert.Equal(t, galway, p.Coordinates())
		assert.NotNil(t, p.UpdatedAt)
		repo.AssertCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unchanged coordinates are not rewritten", func(t *testing.T) {
		repo := new(mocks.ProfileRepository)
		repo.On("GetByUsername", mock.Anything, "aoife").Return(testutil.NewProfile(t, "aoife"), nil)

		p, err := newUseCase(repo, &testutil.StubResolver{Coords: domain.DefaultCoordinates()}).RefreshCoordinates(ctx, "aoife")
		require.NoError(t, err)
		assert.Nil(t, p.UpdatedAt)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("failed lookup keeps coordinates", func(t *testing.T) {
		repo := new(mocks.ProfileRepository)
		repo.On("GetByUsername", mock.Anything, "aoife").Return(testutil.NewProfile(t, "aoife"), nil)

		p, err := newUseCase(repo, &testutil.StubResolver{Err: errors.New("down")}).RefreshCoordinates(ctx, "aoife")
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultCoordinates(), p.Coordinates())
	})
}

func TestDeleteProfile(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	repo := new(mocks.ProfileRepository)
	repo.On("DeleteByUsername", mock.Anything, "aoife").Return(true, nil)
	repo.On("DeleteByUsername", mock.Anything, "ghost").Return(false, nil)
	repo.On("DeleteByID", mock.Anything, id).Return(true, nil)
	uc := newUseCase(repo, nil)

	deleted, err := uc.DeleteProfileByUsername(ctx, "aoife")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = uc.DeleteProfileByUsername(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = uc.DeleteProfileByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)
}
