package roster

import (
	"os"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// TeamNameOverrides maps a curator-facing club name to the term the provider's team search knows.
type TeamNameOverrides map[string]string

func DefaultTeamNameOverrides() TeamNameOverrides {
	return TeamNameOverrides{
		"OGC Nice":             "Nice",
		"U.S. Sassuolo Calcio": "Sassuolo",
	}
}

// SearchTerm returns the override for clubName, or clubName itself.
func (o TeamNameOverrides) SearchTerm(clubName string) string {
	if term, ok := o[clubName]; ok && strings.TrimSpace(term) != "" {
		return term
	}
	return clubName
}

type overridesFile struct {
	Teams map[string]string `yaml:"teams"`
}

// LoadTeamNameOverrides reads a YAML file of the form
//
//	teams:
//	  "OGC Nice": Nice
//
// and layers it over the built-in table. An empty path returns the built-in table.
func LoadTeamNameOverrides(path string) (TeamNameOverrides, error) {
	out := DefaultTeamNameOverrides()
	path = strings.TrimSpace(path)
	if path == "" {
		return out, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read team overrides %s", path)
	}

	var file overridesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, crerr.Wrapf(err, "parse team overrides %s", path)
	}
	for club, term := range file.Teams {
		club = strings.TrimSpace(club)
		term = strings.TrimSpace(term)
		if club == "" || term == "" {
			return nil, crerr.Newf("team overrides %s: empty club or search term in %q: %q", path, club, term)
		}
		out[club] = term
	}
	return out, nil
}
