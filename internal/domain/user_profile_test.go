package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContact(t *testing.T) *Contact {
	t.Helper()
	c, err := NewContact("test@example.com", "+353-1-234-5678", validAddress(t))
	require.NoError(t, err)
	return c
}

func validInput(t *testing.T) UserProfileInput {
	t.Helper()
	return UserProfileInput{
		Username:    "john_doe_123",
		FirstName:   "John",
		MiddleName:  "Michael",
		LastName:    "Doe",
		DateOfBirth: time.Date(1990, time.May, 15, 0, 0, 0, 0, time.UTC),
		Contact:     newTestContact(t),
		Bio:         newTestBio(t),
	}
}

func TestNewUserProfile(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		in := validInput(t)
		p, err := NewUserProfile(in)
		require.NoError(t, err)
		assert.Equal(t, "john_doe_123", p.Username)
		assert.Equal(t, in.DateOfBirth, p.DateOfBirth)
		assert.Same(t, in.Contact, p.Contact)
		assert.Same(t, in.Bio, p.Bio)
		assert.WithinDuration(t, time.Now().UTC(), p.CreatedAt, time.Second)
		assert.Nil(t, p.UpdatedAt)
	})

	t.Run("ids are unique", func(t *testing.T) {
		a, err := NewUserProfile(validInput(t))
		require.NoError(t, err)
		b, err := NewUserProfile(validInput(t))
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestUsernameRules(t *testing.T) {
	for _, name := range []string{"abc", "user123", "test_user", "User_Name_123", "abcdefghij1234567890", "john_doe_123"} {
		t.Run("accepts "+name, func(t *testing.T) {
			in := validInput(t)
			in.Username = name
			_, err := NewUserProfile(in)
			assert.NoError(t, err)
		})
	}

	for _, name := range []string{"ab", "", strings.Repeat("x", 40), "user name", "user@name", "user-name", "   "} {
		t.Run("rejects "+name, func(t *testing.T) {
			in := validInput(t)
			in.Username = name
			p, err := NewUserProfile(in)
			assert.Nil(t, p)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "Username", vErr.Field)
		})
	}
}

func TestNameRules(t *testing.T) {
	long := strings.Repeat("n", 51)
	cases := []struct {
		field string
		set   func(*UserProfileInput, string)
		bad   []string
		good  []string
	}{
		{"FirstName", func(in *UserProfileInput, v string) { in.FirstName = v }, []string{"J", "", long}, []string{"Jo", strings.Repeat("n", 50)}},
		{"MiddleName", func(in *UserProfileInput, v string) { in.MiddleName = v }, []string{"", " ", long}, []string{"M"}},
		{"LastName", func(in *UserProfileInput, v string) { in.LastName = v }, []string{"D", "", long}, []string{"Do"}},
	}
	for _, tc := range cases {
		for _, v := range tc.bad {
			t.Run(tc.field+" rejects "+v, func(t *testing.T) {
				in := validInput(t)
				tc.set(&in, v)
				_, err := NewUserProfile(in)
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tc.field, vErr.Field)
			})
		}
		for _, v := range tc.good {
			t.Run(tc.field+" accepts "+v, func(t *testing.T) {
				in := validInput(t)
				tc.set(&in, v)
				_, err := NewUserProfile(in)
				assert.NoError(t, err)
			})
		}
	}
}

func TestValidationIsFailFast(t *testing.T) {
	in := validInput(t)
	in.Username = "x"
	in.FirstName = "J"
	in.DateOfBirth = time.Now()
	in.Contact = nil

	_, err := NewUserProfile(in)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Username", vErr.Field)
}

func TestDateOfBirthRules(t *testing.T) {
	now := time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

	t.Run("accepts 18 years ago minus one day", func(t *testing.T) {
		in := validInput(t)
		in.DateOfBirth = now.AddDate(-18, 0, -1)
		_, err := newUserProfileAt(in, now)
		assert.NoError(t, err)
	})

	for name, dob := range map[string]time.Time{
		"exactly 18 years ago": now.AddDate(-18, 0, 0),
		"17 years ago":         now.AddDate(-17, 0, 0),
		"in the future":        now.AddDate(1, 0, 0),
		"born in 1899":         time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC),
	} {
		t.Run("rejects "+name, func(t *testing.T) {
			in := validInput(t)
			in.DateOfBirth = dob
			_, err := newUserProfileAt(in, now)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "DateOfBirth", vErr.Field)
		})
	}

	t.Run("accepts 1900-01-01", func(t *testing.T) {
		in := validInput(t)
		in.DateOfBirth = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
		_, err := newUserProfileAt(in, now)
		assert.NoError(t, err)
	})
}

func TestMissingDependencies(t *testing.T) {
	t.Run("nil contact", func(t *testing.T) {
		in := validInput(t)
		in.Contact = nil
		_, err := NewUserProfile(in)
		assert.ErrorIs(t, err, ErrMissingDependency)
		assert.NotErrorIs(t, err, ErrValidation)
	})

	t.Run("nil bio", func(t *testing.T) {
		in := validInput(t)
		in.Bio = nil
		_, err := NewUserProfile(in)
		assert.ErrorIs(t, err, ErrMissingDependency)
		assert.Contains(t, err.Error(), "bio")
	})
}

func TestAge(t *testing.T) {
	now := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		dob  time.Time
		want int
	}{
		{time.Date(1990, time.October, 18, 0, 0, 0, 0, time.UTC), 36},
		{time.Date(1990, time.October, 19, 0, 0, 0, 0, time.UTC), 35},
		{time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC), 36},
		{time.Date(1990, time.December, 31, 0, 0, 0, 0, time.UTC), 35},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AgeAt(tc.dob, now), tc.dob.String())
	}

	p := &UserProfile{DateOfBirth: time.Date(2000, time.March, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, 26, p.AgeAt(now))
}

func TestUserProfileJSONShape(t *testing.T) {
	p, err := NewUserProfile(validInput(t))
	require.NoError(t, err)

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	for _, key := range []string{"Id", "Username", "FirstName", "MiddleName", "LastName", "DateOfBirth", "Contact", "Bio", "CreatedAt", "UpdatedAt"} {
		assert.Contains(t, doc, key)
	}
	assert.Nil(t, doc["UpdatedAt"])

	contact := doc["Contact"].(map[string]any)
	address := contact["Address"].(map[string]any)
	coords := address["Coordinates"].(map[string]any)
	assert.Equal(t, 53.3498, coords["latitude"])
	assert.Equal(t, -6.2603, coords["longitude"])
	for _, key := range []string{"Id", "Street", "City", "StateOrProvince", "PostalCode", "Country", "Eircode"} {
		assert.Contains(t, address, key)
	}

	bio := doc["Bio"].(map[string]any)
	assert.Equal(t, float64(0), bio["Gender"])
	assert.Equal(t, []any{float64(1)}, bio["GenderPreference"])
	assert.Equal(t, []any{float64(1), float64(2)}, bio["Interests"])

	var back UserProfile
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, p.ID, back.ID)
	assert.Equal(t, p.Username, back.Username)
	assert.True(t, p.DateOfBirth.Equal(back.DateOfBirth))
	assert.Equal(t, p.Contact.Address.Coordinates, back.Contact.Address.Coordinates)
	assert.Equal(t, p.Bio.Gender, back.Bio.Gender)
	assert.Equal(t, p.Bio.Interests, back.Bio.Interests)
	assert.Equal(t, *p.Bio.LifeMotto, *back.Bio.LifeMotto)
	assert.True(t, p.CreatedAt.Equal(back.CreatedAt))
}

func TestClone(t *testing.T) {
	p, err := NewUserProfile(validInput(t))
	require.NoError(t, err)

	cp := p.Clone()
	cp.Contact.Address.Coordinates = cork
	cp.Bio.Interests[0] = InterestGaming
	*cp.Bio.LifeMotto = "changed"

	assert.Equal(t, DefaultCoordinates(), p.Contact.Address.Coordinates)
	assert.Equal(t, InterestMusic, p.Bio.Interests[0])
	assert.Equal(t, "Live, love, laugh", *p.Bio.LifeMotto)
}
