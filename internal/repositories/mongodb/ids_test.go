package mongodb

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLegacyKeys(t *testing.T) {
	oid, err := primitive.ObjectIDFromHex("6acf870b0b6c7210f9fc5168")
	require.NoError(t, err)

	id := legacyUUID(oid)
	assert.EqualValues(t, 0, id.Version())

	back, ok := legacyObjectID(id)
	require.True(t, ok)
	assert.Equal(t, oid, back)
	assert.Equal(t, oid, docKey(id))

	parsed, err := parseKey(oid)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestDocKey_NewIDsStayStrings(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := uuid.Must(uuid.NewV7())
		_, legacy := legacyObjectID(id)
		require.False(t, legacy)
		assert.Equal(t, id.String(), docKey(id))

		parsed, err := parseKey(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	}
	assert.Equal(t, uuid.Nil.String(), docKey(uuid.Nil))
}

func TestParseKey_Unsupported(t *testing.T) {
	_, err := parseKey(int32(7))
	assert.Error(t, err)

	_, err = parseKey("not-a-uuid")
	assert.Error(t, err)
}
