// Package settings owns the system settings, the only state kept across restarts.
package settings

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/validators"
)

// StorageKey is the key the settings blob is saved under.
const StorageKey = "systemSettings"

// MaxLogoSize is the largest accepted logo upload.
const MaxLogoSize = 2 << 20

var (
	ErrInvalidSettings = errors.New("invalid settings")
	ErrFileTooLarge    = errors.New("file too large")
)

// Service holds the current settings and keeps the storage in sync with them.
// Create one per process and pass it to whoever needs it.
type Service struct {
	storage Storage

	mu      sync.RWMutex
	current models.Settings
}

// NewService creates a service starting from the default settings.
func NewService(storage Storage) *Service {
	return &Service{storage: storage, current: models.DefaultSettings()}
}

// Current returns the settings in effect.
func (s *Service) Current() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Load reads the saved settings and merges them over the defaults field by field,
// so settings added since the blob was written keep their default value.
// A corrupt or invalid blob is logged and ignored.
func (s *Service) Load(ctx context.Context) (models.Settings, error) {
	merged := models.DefaultSettings()
	blob, err := s.storage.Get(ctx, StorageKey)
	switch {
	case errors.Is(err, ErrNoValue):
	case err != nil:
		return models.Settings{}, fmt.Errorf("load settings: %w", err)
	default:
		candidate := models.DefaultSettings()
		if err := decodeOver(blob, &candidate); err != nil {
			log.WithError(err).Warn("Ignoring saved settings")
		} else {
			merged = candidate
		}
	}

	s.mu.Lock()
	s.current = merged
	s.mu.Unlock()
	return merged, nil
}

// Save validates snapshot, persists it and makes it current.
func (s *Service) Save(ctx context.Context, snapshot models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, snapshot)
}

// saveLocked is Save for callers holding mu.
func (s *Service) saveLocked(ctx context.Context, snapshot models.Settings) error {
	if err := validators.Struct(snapshot); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.storage.Put(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	s.current = snapshot
	return nil
}

// modify runs change on a copy of the current settings and saves the result,
// all under mu so concurrent changes are applied one after another.
func (s *Service) modify(ctx context.Context, change func(*models.Settings) error) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current
	if next.Logo != nil {
		logo := *next.Logo
		next.Logo = &logo
	}
	if err := change(&next); err != nil {
		return models.Settings{}, err
	}
	if err := s.saveLocked(ctx, next); err != nil {
		return models.Settings{}, err
	}
	return next, nil
}

// Reset restores the defaults and forgets the saved blob.
func (s *Service) Reset(ctx context.Context) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Delete(ctx, StorageKey); err != nil {
		return models.Settings{}, fmt.Errorf("reset settings: %w", err)
	}
	s.current = models.DefaultSettings()
	return s.current, nil
}

// Update applies a partial JSON document over the current settings.
// Unknown fields are rejected. On error nothing changes.
func (s *Service) Update(ctx context.Context, patch []byte) (models.Settings, error) {
	return s.modify(ctx, func(next *models.Settings) error {
		if err := validators.Decode(bytes.NewReader(patch), next); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
		}
		return checkLogo(next.Logo)
	})
}

// Import replaces the settings with an exported document. Fields missing from the
// document take their default value. Malformed input leaves the settings untouched.
func (s *Service) Import(ctx context.Context, data []byte) (models.Settings, error) {
	next := models.DefaultSettings()
	if err := decodeOver(data, &next); err != nil {
		return models.Settings{}, err
	}
	if err := checkLogo(next.Logo); err != nil {
		return models.Settings{}, err
	}
	if err := s.Save(ctx, next); err != nil {
		return models.Settings{}, err
	}
	return next, nil
}

// Export renders the current settings as an indented JSON document.
func (s *Service) Export() ([]byte, error) {
	return json.MarshalIndent(s.Current(), "", "  ")
}

// SetLogo stores an uploaded image as a data URI.
func (s *Service) SetLogo(ctx context.Context, data []byte) (models.Settings, error) {
	if len(data) > MaxLogoSize {
		return models.Settings{}, fmt.Errorf("%w: logo must not exceed %dMB", ErrFileTooLarge, MaxLogoSize>>20)
	}
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return models.Settings{}, fmt.Errorf("%w: logo must be an image, got %s", ErrInvalidSettings, mtype.String())
	}
	uri := "data:" + mtype.String() + ";base64," + base64.StdEncoding.EncodeToString(data)

	return s.modify(ctx, func(next *models.Settings) error {
		next.Logo = &uri
		return nil
	})
}

// ClearLogo removes the logo.
func (s *Service) ClearLogo(ctx context.Context) (models.Settings, error) {
	return s.modify(ctx, func(next *models.Settings) error {
		next.Logo = nil
		return nil
	})
}

// checkLogo applies the upload limits to a logo data URI taken from a document.
func checkLogo(logo *string) error {
	if logo == nil {
		return nil
	}
	header, payload, ok := strings.Cut(*logo, ",")
	if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return fmt.Errorf("%w: logo must be a base64 image data URI", ErrInvalidSettings)
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxLogoSize+2 {
		return fmt.Errorf("%w: logo must not exceed %dMB", ErrFileTooLarge, MaxLogoSize>>20)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("%w: logo: %v", ErrInvalidSettings, err)
	}
	if len(data) > MaxLogoSize {
		return fmt.Errorf("%w: logo must not exceed %dMB", ErrFileTooLarge, MaxLogoSize>>20)
	}
	return nil
}

// decodeOver unmarshals data onto dest, which already holds the base values.
func decodeOver(data []byte, dest *models.Settings) error {
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if err := validators.Struct(dest); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return nil
}
