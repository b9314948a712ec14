package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nkharadze/taxge/internal/domain"
)

// InputParser handles parsing of profile and rule files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadProfile loads a taxpayer profile from a YAML or JSON file.
func (ip *InputParser) LoadProfile(filename string) (*domain.Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseProfile(data)
}

// ParseProfile parses a profile from raw YAML/JSON bytes and validates it.
func (ip *InputParser) ParseProfile(data []byte) (*domain.Profile, error) {
	var profile domain.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := ip.ValidateProfile(&profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}
	return &profile, nil
}

// ValidateProfile checks the structural fields of a profile. Per-item value
// checks (negative amounts, zero months) are the calculators' concern and
// surface as in-result warnings instead.
func (ip *InputParser) ValidateProfile(profile *domain.Profile) error {
	if profile.Year < 2000 || profile.Year > 2100 {
		return fmt.Errorf("tax year %d is out of range", profile.Year)
	}
	if profile.Residency == "" {
		profile.Residency = domain.Resident
	}
	if !profile.Residency.IsValid() {
		return fmt.Errorf("unknown residency status %q (expected %s or %s)", profile.Residency, domain.Resident, domain.NonResident)
	}
	if profile.FamilyIncome.IsNegative() {
		return fmt.Errorf("family income must not be negative")
	}
	return nil
}

// LoadRules loads a tax rule set from a YAML file and validates it.
func (ip *InputParser) LoadRules(filename string) (*domain.TaxRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var rules domain.TaxRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}
	if rules.Version == "" {
		return nil, fmt.Errorf("rules validation failed: version is required")
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}
	return &rules, nil
}
