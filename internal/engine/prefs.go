package engine

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"lifeplanner/internal/storage"
)

// Theme returns the stored theme preference, or "" when none was saved.
func (s *Service) Theme(ctx context.Context) (string, error) {
	v, ok, err := s.kv.Get(ctx, storage.KeyTheme)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return v, nil
}

// SetTheme stores the theme preference.
func (s *Service) SetTheme(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyText
	}
	if err := s.kv.Set(ctx, storage.KeyTheme, name); err != nil {
		return err
	}
	s.log.Debug("theme set", zap.String("theme", name))
	s.notify(KindTheme)
	return nil
}
