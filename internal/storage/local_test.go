package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	store, err := NewLocalStore(t.TempDir(), log)
	require.NoError(t, err)
	return store
}

func TestLocalStore_SaveAndOpen(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ref, err := store.Save(ctx, "blood_test.pdf", strings.NewReader("report bytes"))
	require.NoError(t, err)
	assert.NotEmpty(t, ref)
	assert.Contains(t, ref, "blood_test.pdf")

	blob, err := store.Open(ctx, ref)
	require.NoError(t, err)
	defer blob.Close()

	data, err := io.ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, "report bytes", string(data))
}

func TestLocalStore_SaveSanitizesName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ref, err := store.Save(ctx, "../../etc/x ray result.png", strings.NewReader("data"))
	require.NoError(t, err)
	assert.NotContains(t, ref, "..")
	assert.NotContains(t, ref, "/")
	assert.NotContains(t, ref, " ")
}

func TestLocalStore_SaveRequiresName(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save(context.Background(), "  ", strings.NewReader("data"))
	assert.ErrorIs(t, err, ErrMissingFileName)
}

func TestLocalStore_UniqueRefsForSameName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ref1, err := store.Save(ctx, "scan.pdf", strings.NewReader("first"))
	require.NoError(t, err)
	ref2, err := store.Save(ctx, "scan.pdf", strings.NewReader("second"))
	require.NoError(t, err)

	assert.NotEqual(t, ref1, ref2)

	blob, err := store.Open(ctx, ref1)
	require.NoError(t, err)
	defer blob.Close()
	data, _ := io.ReadAll(blob)
	assert.Equal(t, "first", string(data))
}

func TestLocalStore_OpenRejectsPathRefs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Open(ctx, "../outside.txt")
	assert.ErrorIs(t, err, ErrBlobNotFound)

	_, err = store.Open(ctx, "")
	assert.ErrorIs(t, err, ErrBlobNotFound)

	_, err = store.Open(ctx, "missing-ref")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}
