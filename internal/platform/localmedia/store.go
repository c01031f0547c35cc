package localmedia

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yerinchoi/lingotalk-backend/internal/pkg/ctxutil"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/envutil"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
)

// Store writes media files under a local directory that the router serves
// at /media. Keys are slash-separated relative paths ("avatar/<id>/1.png").
type Store interface {
	Save(ctx context.Context, key string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
	Root() string
}

type store struct {
	log       *logger.Logger
	root      string
	publicURL string
}

func NewStore(log *logger.Logger) (Store, error) {
	storeLog := log.With("service", "LocalMedia")

	root := envutil.GetEnv("MEDIA_DIR", "./media", log)
	publicURL := strings.TrimRight(envutil.GetEnv("MEDIA_PUBLIC_URL", "/media", log), "/")

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}

	return &store{log: storeLog, root: root, publicURL: publicURL}, nil
}

func (s *store) Save(ctx context.Context, key string, data []byte) (string, error) {
	_ = ctxutil.Default(ctx)

	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir media subdir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return s.PublicURL(key), nil
}

func (s *store) Delete(ctx context.Context, key string) error {
	_ = ctxutil.Default(ctx)

	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(key))); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove media file: %w", err)
	}
	return nil
}

func (s *store) PublicURL(key string) string {
	key, err := cleanKey(key)
	if err != nil {
		return s.publicURL
	}
	return s.publicURL + "/" + key
}

func (s *store) Root() string { return s.root }

func cleanKey(key string) (string, error) {
	key = strings.Trim(strings.TrimSpace(key), "/")
	if key == "" {
		return "", fmt.Errorf("media key required")
	}
	cleaned := filepath.ToSlash(filepath.Clean(key))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("invalid media key %q", key)
	}
	return cleaned, nil
}
