package prefs

import (
	"context"
	"strings"
	"time"

	"github.com/vitrinalabs/storefront-backend/pkg/errors"
	"github.com/vitrinalabs/storefront-backend/pkg/redis"
)

// DefaultTheme is served until a session picks one.
const DefaultTheme = "light"

const maxThemeNameLength = 64

// themeStore is the slice of the Redis wrapper the service needs.
type themeStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	ThemeKey(sessionID string) string
}

// Service persists per-session display preferences.
type Service interface {
	Theme(ctx context.Context, sessionID string) (string, error)
	SetTheme(ctx context.Context, sessionID, theme string) error
	ClearTheme(ctx context.Context, sessionID string) error
}

type service struct {
	store themeStore
}

func NewService(store themeStore) (Service, error) {
	if store == nil {
		return nil, errors.New(errors.CodeInternal, "theme store is required")
	}
	return &service{store: store}, nil
}

// Theme returns the session's stored theme, or the default when none is set.
func (s *service) Theme(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", errors.New(errors.CodeValidation, "session id is required")
	}
	theme, err := s.store.Get(ctx, s.store.ThemeKey(sessionID))
	if err == redis.Nil {
		return DefaultTheme, nil
	}
	if err != nil {
		return "", errors.Wrap(errors.CodeDependency, err, "loading theme")
	}
	return theme, nil
}

func (s *service) SetTheme(ctx context.Context, sessionID, theme string) error {
	if sessionID == "" {
		return errors.New(errors.CodeValidation, "session id is required")
	}
	theme = strings.TrimSpace(theme)
	if theme == "" || len(theme) > maxThemeNameLength {
		return errors.New(errors.CodeValidation, "theme name must be 1-64 characters")
	}
	if err := s.store.Set(ctx, s.store.ThemeKey(sessionID), theme, 0); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "saving theme")
	}
	return nil
}

func (s *service) ClearTheme(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return errors.New(errors.CodeValidation, "session id is required")
	}
	if err := s.store.Del(ctx, s.store.ThemeKey(sessionID)); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "clearing theme")
	}
	return nil
}
