package localmedia

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	t.Setenv("MEDIA_DIR", t.TempDir())
	t.Setenv("MEDIA_PUBLIC_URL", "/media")
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	s, err := NewStore(log)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestSaveAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	url, err := s.Save(ctx, "avatar/u1/1.png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if url != "/media/avatar/u1/1.png" {
		t.Fatalf("unexpected url %q", url)
	}

	onDisk := filepath.Join(s.Root(), "avatar", "u1", "1.png")
	data, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected contents %q", data)
	}

	if err := s.Delete(ctx, "avatar/u1/1.png"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(onDisk); !os.IsNotExist(err) {
		t.Fatalf("file still present after delete")
	}

	// deleting a missing key is not an error
	if err := s.Delete(ctx, "avatar/u1/1.png"); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
}

func TestSaveRejectsTraversal(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Save(context.Background(), "../outside.png", []byte("x")); err == nil {
		t.Fatal("expected error for traversal key")
	}
	if _, err := s.Save(context.Background(), "  ", []byte("x")); err == nil {
		t.Fatal("expected error for empty key")
	}
}
