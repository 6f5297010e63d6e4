package filestore

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tantasui/decentradocs/internal/config"
	appErr "github.com/tantasui/decentradocs/internal/pkg/errors"
)

func newLocal(t *testing.T) Store {
	t.Helper()
	store, err := New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": t.TempDir()},
	})
	require.NoError(t, err)
	return store
}

func TestLocalSaveAndOpen(t *testing.T) {
	store := newLocal(t)
	ctx := context.Background()
	content := "raw document bytes"

	err := store.Save(ctx, "abc123", strings.NewReader(content), int64(len(content)))
	require.NoError(t, err)

	r, err := store.Open(ctx, "abc123")
	require.NoError(t, err)
	defer r.Close()
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, content, string(got))
}

func TestLocalOpenMissingKey(t *testing.T) {
	store := newLocal(t)
	_, err := store.Open(context.Background(), "missing")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestLocalSaveOverwrites(t *testing.T) {
	store := newLocal(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "key", strings.NewReader("v1"), 2))
	require.NoError(t, store.Save(ctx, "key", strings.NewReader("v2"), 2))

	r, err := store.Open(ctx, "key")
	require.NoError(t, err)
	defer r.Close()
	got, _ := io.ReadAll(r)
	require.Equal(t, "v2", string(got))
}

func TestLocalRejectsPathKeys(t *testing.T) {
	store := newLocal(t)
	ctx := context.Background()

	require.Error(t, store.Save(ctx, "../escape", strings.NewReader("x"), 1))
	require.Error(t, store.Save(ctx, "", strings.NewReader("x"), 1))
	_, err := store.Open(ctx, "a/b")
	require.Error(t, err)
}

func TestNewRejectsUnknownType(t *testing.T) {
	_, err := New(config.FileStoreConfig{Type: "ftp"})
	require.Error(t, err)
}

func TestLocalRequiresDir(t *testing.T) {
	_, err := New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{},
	})
	require.Error(t, err)
}
