package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// OptionsFile is the YAML form of the options block:
//
//	prefix: nla_
//	octetStringLen:
//	  unicode: "_wcslen(item->{fieldName}) * 2"
//	fieldOptions:
//	  - target: TSCspDataDetail.cardName
//	    option: charInMemorySerializeToUnicode
type OptionsFile struct {
	Prefix         *string           `yaml:"prefix,omitempty"`
	OctetStringLen map[string]string `yaml:"octetStringLen,omitempty"`
	FieldOptions   []FieldOptionSpec `yaml:"fieldOptions,omitempty"`
}

// FieldOptionSpec attaches one option to a "Record.field" target.
type FieldOptionSpec struct {
	Target string `yaml:"target"`
	Option string `yaml:"option"`
}

// LoadOptionsFile loads and parses a YAML options file from the given path.
func LoadOptionsFile(path string) (*OptionsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file %s: %w", path, err)
	}

	return ParseOptionsFile(data)
}

// ParseOptionsFile parses YAML data into an OptionsFile. Unknown keys are
// rejected the same way unknown option keywords are.
func ParseOptionsFile(data []byte) (*OptionsFile, error) {
	var of OptionsFile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&of); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse options YAML: %w", err)
	}

	return &of, nil
}

// WithOptions returns a copy of the schema with the file's options applied
// on top of the options block. The receiver is left untouched.
func (s *Schema) WithOptions(of *OptionsFile) (*Schema, error) {
	c := s.Clone()
	if of == nil {
		return c, nil
	}

	if of.Prefix != nil {
		if err := c.setPrefix(*of.Prefix, 0); err != nil {
			return nil, fmt.Errorf("options file: %w", err)
		}
	}

	reps := make([]string, 0, len(of.OctetStringLen))
	for k := range of.OctetStringLen {
		reps = append(reps, k)
	}

	sort.Strings(reps)

	for _, rep := range reps {
		if err := c.setLengthExpr(rep, of.OctetStringLen[rep], 0); err != nil {
			return nil, fmt.Errorf("options file: %w", err)
		}
	}

	for _, fo := range of.FieldOptions {
		if err := c.addFieldOption(fo.Target, fo.Option, 0); err != nil {
			return nil, fmt.Errorf("options file: %w", err)
		}
	}

	return c, nil
}
