// Package catalog loads the activity catalog from YAML and seeds it into storage.
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"littlewins/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultCatalog []byte

const defaultActivityType = "generic"

// Upserter persists activities keyed by id.
type Upserter interface {
	Upsert(ctx context.Context, acts []models.Activity) error
}

type file struct {
	Activities []entry `yaml:"activities"`
}

type entry struct {
	ID            string         `yaml:"id"`
	Mode          string         `yaml:"mode"`
	Title         string         `yaml:"title"`
	Description   string         `yaml:"description"`
	DurationHints []int          `yaml:"duration_hints"`
	ActivityType  string         `yaml:"activity_type"`
	Payload       map[string]any `yaml:"payload"`
}

// Default returns the built-in catalog.
func Default() ([]models.Activity, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads a catalog from path, or the built-in one when path is empty.
func LoadFile(path string) ([]models.Activity, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) ([]models.Activity, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Activities) == 0 {
		return nil, errors.New("catalog has no activities")
	}

	seen := make(map[string]struct{}, len(f.Activities))
	out := make([]models.Activity, 0, len(f.Activities))
	for i, e := range f.Activities {
		a, err := e.toActivity()
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i+1, err)
		}
		if _, dup := seen[a.ID]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %q", i+1, a.ID)
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}
	return out, nil
}

func (e entry) toActivity() (models.Activity, error) {
	a := models.Activity{
		ID:          strings.TrimSpace(e.ID),
		Mode:        strings.TrimSpace(e.Mode),
		Title:       strings.TrimSpace(e.Title),
		Description: strings.TrimSpace(e.Description),
		Type:        strings.TrimSpace(e.ActivityType),
	}
	switch {
	case a.ID == "":
		return a, errors.New("id is required")
	case a.Mode == "":
		return a, fmt.Errorf("%s: mode is required", a.ID)
	case a.Title == "":
		return a, fmt.Errorf("%s: title is required", a.ID)
	}
	if a.Type == "" {
		a.Type = defaultActivityType
	}
	for _, h := range e.DurationHints {
		if h <= 0 {
			return a, fmt.Errorf("%s: duration hint %d must be positive", a.ID, h)
		}
		a.DurationHints = append(a.DurationHints, h)
	}
	if e.Payload != nil {
		b, err := json.Marshal(e.Payload)
		if err != nil {
			return a, fmt.Errorf("%s: encode payload: %w", a.ID, err)
		}
		a.RawPayload = string(b)
	}
	return a, nil
}

// Seed upserts acts into the store.
func Seed(ctx context.Context, store Upserter, acts []models.Activity) error {
	if err := store.Upsert(ctx, acts); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}
