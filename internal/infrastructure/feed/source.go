package feed

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	KindJSON = "json"
	KindHTML = "html"
	// KindHeadless pages build their listings with JavaScript and are
	// rendered in headless Chrome before the selectors run.
	KindHeadless = "headless"
)

var ErrInvalidSource = errors.New("invalid feed source")

// Selectors locate posting fields inside each card matched by Card.
// Link is read from its href attribute.
type Selectors struct {
	Card        string `yaml:"card"`
	Title       string `yaml:"title"`
	Firm        string `yaml:"firm"`
	Location    string `yaml:"location"`
	AreaOfLaw   string `yaml:"area_of_law"`
	Deadline    string `yaml:"deadline"`
	Description string `yaml:"description"`
	Link        string `yaml:"link"`
}

type Source struct {
	Name      string    `yaml:"name"`
	Kind      string    `yaml:"kind"`
	URL       string    `yaml:"url"`
	Firm      string    `yaml:"firm"`
	Enabled   *bool     `yaml:"enabled"`
	Selectors Selectors `yaml:"selectors"`
}

func (s Source) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

type sourcesFile struct {
	Sources []Source `yaml:"sources"`
}

func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}
	return ParseSources(data)
}

// ParseSources decodes a sources document and returns its enabled entries.
func ParseSources(data []byte) ([]Source, error) {
	var f sourcesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}

	seen := map[string]struct{}{}
	out := make([]Source, 0, len(f.Sources))
	for i, s := range f.Sources {
		s.Name = strings.TrimSpace(s.Name)
		s.Kind = strings.ToLower(strings.TrimSpace(s.Kind))
		s.URL = strings.TrimSpace(s.URL)

		if s.Name == "" || s.URL == "" {
			return nil, fmt.Errorf("%w: entry %d needs name and url", ErrInvalidSource, i)
		}
		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidSource, s.Name)
		}
		seen[s.Name] = struct{}{}

		switch s.Kind {
		case KindJSON:
		case KindHTML, KindHeadless:
			if strings.TrimSpace(s.Selectors.Card) == "" || strings.TrimSpace(s.Selectors.Title) == "" {
				return nil, fmt.Errorf("%w: %s needs card and title selectors", ErrInvalidSource, s.Name)
			}
		default:
			return nil, fmt.Errorf("%w: %s has unknown kind %q", ErrInvalidSource, s.Name, s.Kind)
		}

		if !s.IsEnabled() {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
