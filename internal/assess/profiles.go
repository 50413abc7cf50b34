package assess

import (
	_ "embed"
	"fmt"

	"healthbot/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var profilesYAML []byte

// Profile describes how an industry is presented in the assessment.
type Profile struct {
	Icon            string   `yaml:"icon"`
	Label           string   `yaml:"label"`
	RequiredTags    []string `yaml:"required_tags"`
	Recommendations []string `yaml:"recommendations"`
}

type profileFile struct {
	Profiles map[string]Profile `yaml:"profiles"`
	Default  Profile            `yaml:"default"`
}

// ProfileSet resolves an industry to its presentation profile, falling back
// to the default profile for unknown industries.
type ProfileSet struct {
	byIndustry map[domain.Industry]Profile
	fallback   Profile
}

// LoadProfiles parses the embedded profile table.
func LoadProfiles() (*ProfileSet, error) {
	var pf profileFile
	if err := yaml.Unmarshal(profilesYAML, &pf); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	if pf.Default.Label == "" {
		return nil, fmt.Errorf("profiles: missing default profile")
	}

	set := &ProfileSet{
		byIndustry: make(map[domain.Industry]Profile, len(pf.Profiles)),
		fallback:   pf.Default,
	}
	for name, p := range pf.Profiles {
		set.byIndustry[domain.Industry(name)] = p
	}
	return set, nil
}

// For returns the profile for an industry, or the default profile when the
// industry has no dedicated entry.
func (s *ProfileSet) For(industry domain.Industry) Profile {
	if p, ok := s.byIndustry[industry]; ok {
		return p
	}
	return s.fallback
}
