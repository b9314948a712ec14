// Package store persists taxpayer profiles by name as YAML files under a
// data directory. The engine itself imposes no schema beyond the domain
// types; this is the save/load collaborator around it.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nkharadze/taxge/internal/domain"
)

// ProfileStore is a directory of named profile files.
type ProfileStore struct {
	Dir string
}

// NewProfileStore creates a store rooted at dir, creating it if needed.
func NewProfileStore(dir string) (*ProfileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}
	return &ProfileStore{Dir: dir}, nil
}

// Save writes the profile under its name, overwriting any previous version.
func (ps *ProfileStore) Save(profile *domain.Profile) error {
	if profile == nil {
		return fmt.Errorf("profile is required")
	}
	name, err := sanitizeName(profile.Name)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile %s: %w", profile.Name, err)
	}
	path := filepath.Join(ps.Dir, name+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile %s: %w", path, err)
	}
	return nil
}

// Load reads a profile by name.
func (ps *ProfileStore) Load(name string) (*domain.Profile, error) {
	safe, err := sanitizeName(name)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(ps.Dir, safe+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("profile %q not found", name)
		}
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	var profile domain.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	if profile.Name == "" {
		profile.Name = name
	}
	return &profile, nil
}

// List returns the stored profile names, sorted.
func (ps *ProfileStore) List() ([]string, error) {
	entries, err := os.ReadDir(ps.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list store directory %s: %w", ps.Dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(entry.Name(), ".yaml"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a stored profile by name.
func (ps *ProfileStore) Delete(name string) error {
	safe, err := sanitizeName(name)
	if err != nil {
		return err
	}
	path := filepath.Join(ps.Dir, safe+".yaml")
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("profile %q not found", name)
		}
		return fmt.Errorf("failed to delete profile %s: %w", path, err)
	}
	return nil
}

// sanitizeName keeps profile names usable as file names and inside the data
// directory.
func sanitizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("profile name is required")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid profile name %q", name)
	}
	return name, nil
}
