package lexgen

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// specFile is the YAML-decodable shape of a Spec: same fields as Rule,
// but with yaml tags and lowercase keys for a hand-editable rule file.
type specFile struct {
	Rules []struct {
		Name    string `yaml:"name"`
		Pattern string `yaml:"pattern"`
		Skip    bool   `yaml:"skip"`
		Comment bool   `yaml:"comment"`
	} `yaml:"rules"`
}

// LoadSpec reads a rule list from YAML of the form:
//
//	rules:
//	  - name: Ident
//	    pattern: '[A-Za-z_][A-Za-z_0-9]*'
//	  - name: Comment
//	    pattern: '//^[\n]*'
//	    skip: true
//	    comment: true
//
// Rules keep the declaration order they appear in; that order is what
// Compile uses for end-num ordinals and tie-breaking.
func LoadSpec(r io.Reader) (*Spec, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("lexgen: reading spec: %w", err)
	}
	var sf specFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("lexgen: parsing spec: %w", yaml.FormatError(err, true, true))
	}
	spec := &Spec{Rules: make([]Rule, 0, len(sf.Rules))}
	for _, r := range sf.Rules {
		spec.Rules = append(spec.Rules, Rule{
			Name:    r.Name,
			Pattern: r.Pattern,
			Skip:    r.Skip,
			Comment: r.Comment,
		})
	}
	return spec, nil
}
