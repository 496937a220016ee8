package media_test

import (
	"os"
	"strings"
	"testing"

	"github.com/Astemirdum/library-rental/internal/errs"
	"github.com/Astemirdum/library-rental/internal/media"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndPath(t *testing.T) {
	t.Parallel()
	store, err := media.NewStore(t.TempDir(), "books")
	require.NoError(t, err)

	name, err := store.Save(media.Upload{Filename: "Cover Art.PNG", Content: strings.NewReader("img-bytes")})
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(name, ".png"))
	require.NotContains(t, name, " ")

	path, err := store.Path(name)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "img-bytes", string(data))

	// every save gets a fresh opaque name
	name2, err := store.Save(media.Upload{Filename: "Cover Art.PNG", Content: strings.NewReader("x")})
	require.NoError(t, err)
	require.NotEqual(t, name, name2)
}

func TestStore_SaveRejectsUnknownExtension(t *testing.T) {
	t.Parallel()
	store, err := media.NewStore(t.TempDir(), "books")
	require.NoError(t, err)

	for _, filename := range []string{"cover.gif", "cover", "cover.pdf"} {
		_, err := store.Save(media.Upload{Filename: filename, Content: strings.NewReader("x")})
		require.ErrorIs(t, err, errs.ErrInvalidInput, filename)
	}
}

func TestStore_PathMissingOrUnsafe(t *testing.T) {
	t.Parallel()
	store, err := media.NewStore(t.TempDir(), "students")
	require.NoError(t, err)

	_, err = store.Path("does-not-exist.png")
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = store.Path("../../etc/passwd")
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = store.Path("")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()
	store, err := media.NewStore(t.TempDir(), "students")
	require.NoError(t, err)

	name, err := store.Save(media.Upload{Filename: "me.jpeg", Content: strings.NewReader("x")})
	require.NoError(t, err)

	require.NoError(t, store.Delete(name))
	_, err = store.Path(name)
	require.ErrorIs(t, err, errs.ErrNotFound)

	// deleting a missing blob is fine
	require.NoError(t, store.Delete(name))
	require.NoError(t, store.Delete(""))
}
