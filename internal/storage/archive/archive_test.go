package archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/minio/minio-go/v7"

	"github.com/nugen/evgb/internal/simb"
	"github.com/nugen/evgb/internal/storage"
)

type fakeBucket struct {
	mu      sync.Mutex
	exists  bool
	made    int
	objects map[string][]byte
	types   map[string]string
	putErr  error
}

func newFake(exists bool) *fakeBucket {
	return &fakeBucket{exists: exists, objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeBucket) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.exists, nil
}

func (f *fakeBucket) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.made++
	f.exists = true
	return nil
}

func (f *fakeBucket) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[bucketName+"/"+objectName] = body
	f.types[bucketName+"/"+objectName] = opts.ContentType
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: objectSize}, nil
}

func event(id string, run int) *storage.EventTruth {
	return &storage.EventTruth{ID: id, Run: run, MCTruth: &simb.MCTruth{}, GTruth: simb.NewGTruth()}
}

func TestArchive_SaveEvent(t *testing.T) {
	fake := newFake(false)
	a, err := newArchive(fake, Config{Bucket: "truth", Region: "us-east-1"})
	if err != nil {
		t.Fatalf("newArchive() error = %v", err)
	}

	ctx := context.Background()
	for _, id := range []string{"a", "b"} {
		if err := a.SaveEvent(ctx, event(id, 12)); err != nil {
			t.Fatalf("SaveEvent() error = %v", err)
		}
	}

	if fake.made != 1 {
		t.Errorf("MakeBucket calls = %d, want 1", fake.made)
	}
	body, ok := fake.objects["truth/events/12/a.json"]
	if !ok {
		t.Fatalf("object not written, have %v", fake.objects)
	}
	if got := fake.types["truth/events/12/a.json"]; got != "application/json" {
		t.Errorf("content type = %q", got)
	}

	var decoded storage.EventTruth
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("stored object is not an event: %v", err)
	}
	if decoded.ID != "a" || decoded.Run != 12 {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.GTruth.Gint != -1 {
		t.Errorf("decoded GTruth.Gint = %d, want -1", decoded.GTruth.Gint)
	}
}

func TestArchive_Key(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"", "events/3/x.json"},
		{"/mc/truth/", "mc/truth/3/x.json"},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			a, err := newArchive(newFake(true), Config{Bucket: "b", Prefix: tt.prefix})
			if err != nil {
				t.Fatalf("newArchive() error = %v", err)
			}
			if got := a.Key(event("x", 3)); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArchive_Errors(t *testing.T) {
	if _, err := newArchive(newFake(true), Config{}); err == nil {
		t.Error("newArchive() expected error without bucket")
	}
	if _, err := New(Config{Bucket: "b"}); err == nil {
		t.Error("New() expected error without endpoint")
	}
	if _, err := New(Config{Endpoint: "localhost:9000", Bucket: "b"}); err == nil {
		t.Error("New() expected error without credentials")
	}

	fake := newFake(true)
	fake.putErr = errors.New("boom")
	a, _ := newArchive(fake, Config{Bucket: "b"})
	if err := a.SaveEvent(context.Background(), event("x", 1)); err == nil {
		t.Error("SaveEvent() expected put error")
	}
	if err := a.SaveEvent(context.Background(), &storage.EventTruth{}); !errors.Is(err, storage.ErrInvalidEvent) {
		t.Errorf("SaveEvent() error = %v, want ErrInvalidEvent", err)
	}
}
