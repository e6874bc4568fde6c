package publish

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruthina1/Dev-Genie/internal/config"
	"github.com/ruthina1/Dev-Genie/internal/errors"
)

func TestNew_Validation(t *testing.T) {
	valid := config.PublishConfig{
		Endpoint:  "localhost:9000",
		Bucket:    "projects",
		AccessKey: "minio",
		SecretKey: "minio123",
	}
	tests := []struct {
		name   string
		mutate func(*config.PublishConfig)
		ok     bool
	}{
		{"valid", func(*config.PublishConfig) {}, true},
		{"scheme stripped", func(c *config.PublishConfig) { c.Endpoint = "http://localhost:9000" }, true},
		{"no endpoint", func(c *config.PublishConfig) { c.Endpoint = "" }, false},
		{"no bucket", func(c *config.PublishConfig) { c.Bucket = " " }, false},
		{"no access key", func(c *config.PublishConfig) { c.AccessKey = "" }, false},
		{"no secret key", func(c *config.PublishConfig) { c.SecretKey = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			p, err := New(cfg)
			if tt.ok {
				require.NoError(t, err)
				require.Equal(t, "projects", p.Bucket())
				return
			}
			require.True(t, errors.Is(err, errors.ErrInvalidRequest), "got %v", err)
		})
	}
}

func TestObjectKey(t *testing.T) {
	key, err := ObjectKey("01ABC", "shop.zip")
	require.NoError(t, err)
	require.Equal(t, "01ABC/shop.zip", key)

	for _, tc := range [][2]string{{"", "a.zip"}, {"id", ""}, {"id", "../a.zip"}, {"a/b", "a.zip"}} {
		_, err := ObjectKey(tc[0], tc[1])
		require.Error(t, err, "%v", tc)
	}
}

// fakeS3 answers the minimal set of calls Publish makes. Bucket requests
// arrive path-style as "/<bucket>/".
type fakeS3 struct {
	mu           sync.Mutex
	buckets      map[string]bool
	objects      map[string][]byte
	bucketChecks int
	denyChecks   int
}

func newFakeS3() *fakeS3 {
	return &fakeS3{buckets: map[string]bool{}, objects: map[string][]byte{}}
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 2)
	bucket := parts[0]
	bucketLevel := len(parts) == 1 || parts[1] == ""
	switch {
	case bucketLevel && r.Method == http.MethodHead:
		f.bucketChecks++
		if f.denyChecks > 0 {
			f.denyChecks--
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if !f.buckets[bucket] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case bucketLevel && r.Method == http.MethodPut:
		f.buckets[bucket] = true
		w.WriteHeader(http.StatusOK)
	case !bucketLevel && r.Method == http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[bucket+"/"+parts[1]] = body
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func newTestPublisher(t *testing.T, fake *fakeS3) *Publisher {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	p, err := New(config.PublishConfig{
		Endpoint:  u.Host,
		Bucket:    "projects",
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	require.NoError(t, err)
	return p
}

func TestPublish_UploadsAndPresigns(t *testing.T) {
	fake := newFakeS3()
	p := newTestPublisher(t, fake)

	obj, err := p.Publish(context.Background(), "01ABC", "shop.zip", []byte("PK-data"))
	require.NoError(t, err)
	require.Equal(t, "01ABC/shop.zip", obj.Key)
	require.Equal(t, "projects", obj.Bucket)
	require.Contains(t, obj.URL, "X-Amz-Signature")
	require.True(t, fake.buckets["projects"])
	require.Equal(t, []byte("PK-data"), fake.objects["projects/01ABC/shop.zip"])

	_, err = p.Publish(context.Background(), "01ABD", "shop.zip", []byte("PK-more"))
	require.NoError(t, err)
	require.Equal(t, 1, fake.bucketChecks, "bucket is checked once per publisher")
}

func TestPublish_RetriesBucketCheckAfterFailure(t *testing.T) {
	fake := newFakeS3()
	fake.denyChecks = 1
	p := newTestPublisher(t, fake)

	_, err := p.Publish(context.Background(), "01ABC", "shop.zip", []byte("PK-data"))
	require.True(t, errors.Is(err, errors.ErrPublishFailed), "got %v", err)
	require.Empty(t, fake.objects)

	obj, err := p.Publish(context.Background(), "01ABC", "shop.zip", []byte("PK-data"))
	require.NoError(t, err)
	require.Equal(t, "01ABC/shop.zip", obj.Key)
	require.Equal(t, 2, fake.bucketChecks)
	require.Contains(t, fake.objects, "projects/01ABC/shop.zip")
}

func TestPublish_RejectsEmptyArchive(t *testing.T) {
	p, err := New(config.PublishConfig{Endpoint: "localhost:1", Bucket: "b", AccessKey: "a", SecretKey: "s"})
	require.NoError(t, err)
	_, err = p.Publish(context.Background(), "id", "x.zip", nil)
	require.True(t, errors.Is(err, errors.ErrInvalidRequest))
}
