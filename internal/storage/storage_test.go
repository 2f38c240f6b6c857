package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teacher-transfer-system/pkg/apierror"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store := newTestStore(t)

	relPath, err := store.Save("certificates", "degree.pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(relPath, "certificates/"))
	assert.True(t, strings.HasSuffix(relPath, "_degree.pdf"))

	f, err := store.Open(relPath)
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(data))
}

func TestOpenMissingDocument(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Open("certificates/nope.pdf")
	assert.True(t, apierror.HasCode(err, "NOT_FOUND"))
}

func TestRemoveIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	relPath, err := store.Save("photos", "me.jpg", strings.NewReader("jpg"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(relPath))
	require.NoError(t, store.Remove(relPath))

	_, err = store.Open(relPath)
	assert.Error(t, err)
}

func TestResolveRejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	for _, relPath := range []string{
		"../etc/passwd",
		"certificates/../../etc/passwd",
		`certificates\..\..\secrets`,
	} {
		_, err := store.Resolve(relPath)
		assert.True(t, apierror.HasCode(err, "PATH_TRAVERSAL"), "path %q", relPath)
	}
}

func TestResolveRejectsBadInput(t *testing.T) {
	store := newTestStore(t)

	for _, relPath := range []string{"", "/", "certs/a\x00b.pdf"} {
		_, err := store.Resolve(relPath)
		assert.True(t, apierror.HasCode(err, "INVALID_PATH"), "path %q", relPath)
	}
}

func TestSaveRejectsBadCategory(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save("", "a.pdf", strings.NewReader("x"))
	assert.True(t, apierror.HasCode(err, "INVALID_PATH"))

	_, err = store.Save("..", "a.pdf", strings.NewReader("x"))
	assert.True(t, apierror.HasCode(err, "INVALID_PATH"))
}
