package mongo

import (
	"testing"

	"github.com/gdugdh24/matchdotcom-backend/internal/domain"
	"github.com/gdugdh24/matchdotcom-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestProfileDocumentRoundTrip(t *testing.T) {
	p := testutil.NewProfile(t, "mongo_user")
	p.Contact.Address.Coordinates = domain.Coordinates{Latitude: 53.27, Longitude: -9.05}

	raw, err := bson.Marshal(newProfileDocument(p))
	require.NoError(t, err)

	var fields bson.M
	require.NoError(t, bson.Unmarshal(raw, &fields))
	assert.Equal(t, p.ID.String(), fields["_id"])
	assert.Equal(t, "mongo_user", fields["username"])

	var doc profileDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))
	require.NotNil(t, doc.Profile)
	assert.Equal(t, p.ID, doc.Profile.ID)
	assert.Equal(t, p.Contact.Address.Coordinates, doc.Profile.Contact.Address.Coordinates)
	assert.Equal(t, p.Bio.Interests, doc.Profile.Bio.Interests)
	assert.Equal(t, p.Bio.GenderPreference, doc.Profile.Bio.GenderPreference)
	assert.Nil(t, doc.Profile.UpdatedAt)
}
