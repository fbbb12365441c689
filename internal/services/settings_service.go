package services

import (
	"context"
	"fmt"
	"quote-intake-service/internal/domain"
	"quote-intake-service/internal/ports"
	"sync"
)

// SettingsService serves settings from a process-wide cache.
// The process is the only writer, so Update simply refreshes the cache.
type SettingsService struct {
	repo ports.SettingsRepository

	mu     sync.RWMutex
	cached domain.Settings
}

func NewSettingsService(repo ports.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Init loads the cache. Call once at startup.
func (s *SettingsService) Init(ctx context.Context) error {
	_, err := s.reload(ctx)
	return err
}

// Get returns a copy of the cached settings, loading them on first use.
func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()

	if cached != nil {
		return cached.Clone(), nil
	}
	return s.reload(ctx)
}

// Update validates and persists every key, then refreshes the cache.
func (s *SettingsService) Update(ctx context.Context, in domain.Settings) (domain.Settings, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("update settings: %w: %w", ErrInvalidSettings, err)
	}

	if err := s.repo.SaveSettings(ctx, in); err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return s.reload(ctx)
}

func (s *SettingsService) reload(ctx context.Context) (domain.Settings, error) {
	loaded, err := s.repo.LoadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	s.mu.Lock()
	s.cached = loaded
	s.mu.Unlock()

	return loaded.Clone(), nil
}
