// Package sports holds the catalog of sport tags a session may be created for.
package sports

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/apperrors"
	"gopkg.in/yaml.v3"
)

// Sport is one catalog entry.
type Sport struct {
	Tag         string `yaml:"tag"`
	Name        string `yaml:"name"`
	MaxTeamSize int    `yaml:"max_team_size"`
}

type catalogFile struct {
	Sports []Sport `yaml:"sports"`
}

// Catalog maps sport tags to their limits. An empty catalog accepts any sport.
type Catalog struct {
	sports map[string]Sport
}

// NewCatalog builds a catalog from entries, rejecting duplicates and blank tags.
func NewCatalog(entries []Sport) (*Catalog, error) {
	c := &Catalog{sports: make(map[string]Sport, len(entries))}
	for _, s := range entries {
		tag := strings.ToLower(strings.TrimSpace(s.Tag))
		if tag == "" {
			return nil, fmt.Errorf("sport tag cannot be empty")
		}
		if _, exists := c.sports[tag]; exists {
			return nil, fmt.Errorf("sport %q listed twice", tag)
		}
		if s.MaxTeamSize < 0 {
			return nil, fmt.Errorf("sport %q has negative max_team_size", tag)
		}
		s.Tag = tag
		c.sports[tag] = s
	}
	return c, nil
}

// LoadCatalog reads a YAML catalog. An empty path yields an open catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return &Catalog{sports: map[string]Sport{}}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sports catalog: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sports catalog: %w", err)
	}
	return NewCatalog(file.Sports)
}

// Lookup returns the entry for tag.
func (c *Catalog) Lookup(tag string) (Sport, bool) {
	s, ok := c.sports[strings.ToLower(strings.TrimSpace(tag))]
	return s, ok
}

// Tags lists the configured tags in order.
func (c *Catalog) Tags() []string {
	tags := make([]string, 0, len(c.sports))
	for tag := range c.sports {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Validate checks a sport tag and team size against the catalog.
func (c *Catalog) Validate(tag string, teamSize int) error {
	if len(c.sports) == 0 {
		return nil
	}
	s, ok := c.Lookup(tag)
	if !ok {
		return apperrors.Validationf("unknown sport %q (expected one of %s)", tag, strings.Join(c.Tags(), ", "))
	}
	if s.MaxTeamSize > 0 && teamSize > s.MaxTeamSize {
		return apperrors.Validationf("team_size %d exceeds the maximum of %d for %s", teamSize, s.MaxTeamSize, s.Name)
	}
	return nil
}
