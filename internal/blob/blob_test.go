package blob_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/jpl-au/stash/internal/blob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_PutDelete(t *testing.T) {
	root := filepath.Join(t.TempDir(), "files")
	l, err := blob.NewLocal(root, "")
	require.NoError(t, err)
	ctx := context.Background()

	obj, err := l.Put(ctx, "file_abc.png", strings.NewReader("png!"), 4, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "file_abc.png", obj.Key)
	assert.Equal(t, "/files/file_abc.png", obj.URL)

	data, err := os.ReadFile(filepath.Join(root, "file_abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "png!", string(data))

	require.NoError(t, l.Delete(ctx, "file_abc.png"))
	assert.NoFileExists(t, filepath.Join(root, "file_abc.png"))
	require.NoError(t, l.Delete(ctx, "file_abc.png"), "deleting a missing blob succeeds")
}

func TestLocal_ShortWrite(t *testing.T) {
	l, err := blob.NewLocal(t.TempDir(), "https://cdn.example.com/")
	require.NoError(t, err)

	_, err = l.Put(context.Background(), "k", strings.NewReader("abc"), 10, "")
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(l.Root(), "k"))
}

func TestLocal_RejectsTraversal(t *testing.T) {
	l, err := blob.NewLocal(t.TempDir(), "")
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "../x", "/etc/passwd", "a//b", `a\b`} {
		_, err := l.Put(ctx, key, strings.NewReader("x"), 1, "")
		assert.ErrorIs(t, err, blob.ErrInvalidKey, key)
		assert.ErrorIs(t, l.Delete(ctx, key), blob.ErrInvalidKey, key)
	}
}

// fakeS3 records the requests an S3 client sends.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]string
	types   map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = string(body)
		f.types[r.URL.Path] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(f.objects, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestS3_PutDelete(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))

	fake := &fakeS3{objects: map[string]string{}, types: map[string]string{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	ctx := context.Background()
	s, err := blob.NewS3(ctx, blob.S3Options{
		Bucket:    "stash",
		Region:    "us-east-1",
		Endpoint:  srv.URL,
		PublicURL: "https://cdn.example.com",
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)

	obj, err := s.Put(ctx, "file_xyz.pdf", strings.NewReader("%PDF"), 4, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/file_xyz.pdf", obj.URL)

	fake.mu.Lock()
	assert.Equal(t, "%PDF", fake.objects["/stash/file_xyz.pdf"])
	assert.Equal(t, "application/pdf", fake.types["/stash/file_xyz.pdf"])
	fake.mu.Unlock()

	require.NoError(t, s.Delete(ctx, "file_xyz.pdf"))
	fake.mu.Lock()
	assert.Empty(t, fake.objects)
	fake.mu.Unlock()
}

func TestNewS3_RequiresBucket(t *testing.T) {
	_, err := blob.NewS3(context.Background(), blob.S3Options{})
	assert.Error(t, err)
}
