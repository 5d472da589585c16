package tongue

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlDocument is the on-disk shape of a custom lexicon table:
//
//	KO: ["tok0", "tok1", ..., "tok255"]
//	AV: [...]
//	...
//
// one entry per canonical (upper-case) tongue name, each a 256-element
// token list indexed by byte
// value. This is the external mapping format spec.md section 4.1 allows
// a custom lexicon to be loaded from.
type yamlDocument map[string][]string

// LoadTableFile reads a custom lexicon table from a YAML file on disk and
// builds a Lexicons value from it.
func LoadTableFile(path string) (*Lexicons, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tongue: read lexicon file: %w", err)
	}
	return LoadTableBytes(raw)
}

// LoadTableBytes parses a YAML document into a Table and builds Lexicons.
func LoadTableBytes(raw []byte) (*Lexicons, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("tongue: parse lexicon yaml: %w", err)
	}
	table := make(Table, len(doc))
	for name, tokens := range doc {
		if len(tokens) != 256 {
			return nil, fmt.Errorf("%w: tongue %s has %d tokens, want 256", ErrIncomplete, name, len(tokens))
		}
		var entries [256]string
		copy(entries[:], tokens)
		table[name] = entries
	}
	return Build(table)
}
