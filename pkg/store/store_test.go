package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sardine/pkg/errors"
	"github.com/matzehuels/sardine/pkg/lot"
)

func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	in := &Record{Name: "north", RequestHash: "abc", Stats: lot.Stats{Spots: 30}, Lot: []byte(`{"spots":[]}`)}
	saved, err := s.Save(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.Empty(t, in.ID, "Save must not modify its argument")

	got, err := s.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "north", got.Name)
	assert.Equal(t, 30, got.Stats.Spots)
	assert.JSONEq(t, `{"spots":[]}`, string(got.Lot))

	time.Sleep(2 * time.Millisecond)
	second, err := s.Save(ctx, &Record{Name: "south"})
	require.NoError(t, err)

	list, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(list), 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")

	list, err = s.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.Delete(ctx, saved.ID))
	_, err = s.Get(ctx, saved.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "got %v", err)
	assert.True(t, errors.Is(s.Delete(ctx, saved.ID), errors.ErrCodeNotFound))

	_, err = s.Get(ctx, "not-a-uuid")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)

	require.NoError(t, s.Delete(ctx, second.ID))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close(context.Background())
	exerciseStore(t, s)
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	data := []byte("lot")
	rec, err := s.Save(ctx, &Record{Lot: data})
	require.NoError(t, err)
	data[0] = 'x'
	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "lot", string(got.Lot))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("6F9619FF-8B86-D011-B42D-00C04FC964FF")
	require.NoError(t, err)
	assert.Equal(t, "6f9619ff-8b86-d011-b42d-00c04fc964ff", id)

	_, err = ParseID("")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("SARDINE_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("SARDINE_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	s, err := NewMongoStore(ctx, uri, "sardine_test")
	require.NoError(t, err)
	defer s.Close(ctx)
	exerciseStore(t, s)
}
