package identity

import (
	_ "embed"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/roadtrip/roadtrip/internal/alias"
)

//go:embed overrides.yaml
var defaultOverrides []byte

// Override maps historically divergent names of one country to its id.
type Override struct {
	ID    string   `yaml:"id"`
	Names []string `yaml:"names"`
}

type overrideFile struct {
	Overrides []Override `yaml:"overrides"`
}

// Overrides is the static name -> id table consulted when every heuristic
// of the resolver failed.
type Overrides struct {
	byName map[string]string
}

// DefaultOverrides returns the built-in override table.
func DefaultOverrides() *Overrides {
	o, err := ParseOverrides(defaultOverrides)
	if err != nil {
		panic(err)
	}
	return o
}

// LoadOverrides reads an override file from path.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read overrides %s", path)
	}
	return ParseOverrides(data)
}

// ParseOverrides decodes a YAML override document.
func ParseOverrides(data []byte) (*Overrides, error) {
	var file overrideFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "decode overrides")
	}
	o := &Overrides{byName: make(map[string]string)}
	for i, ov := range file.Overrides {
		id := strings.TrimSpace(ov.ID)
		if id == "" {
			return nil, errors.Newf("override %d has no id", i)
		}
		for _, name := range ov.Names {
			if name = alias.Squash(name); name != "" {
				o.byName[name] = id
			}
		}
	}
	return o, nil
}

// Merge copies the entries of other into o, replacing names present in both.
func (o *Overrides) Merge(other *Overrides) {
	if other == nil {
		return
	}
	for name, id := range other.byName {
		o.byName[name] = id
	}
}

// Lookup returns the id overriding name.
func (o *Overrides) Lookup(name string) (string, bool) {
	if o == nil {
		return "", false
	}
	id, ok := o.byName[alias.Squash(name)]
	return id, ok
}

// Len returns the number of names in the table.
func (o *Overrides) Len() int {
	if o == nil {
		return 0
	}
	return len(o.byName)
}
