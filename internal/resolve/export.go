package resolve

import (
	"gopkg.in/yaml.v3"

	"ber-generator/internal/schema"
)

// ModelFile is the YAML view of a resolved schema.
type ModelFile struct {
	Prefix         string            `yaml:"prefix,omitempty"`
	OctetStringLen map[string]string `yaml:"octetStringLen"`
	Records        []ModelRecord     `yaml:"records"`
}

// ModelRecord is the YAML view of a resolved record.
type ModelRecord struct {
	Name         string       `yaml:"name"`
	Type         string       `yaml:"type"`
	ArrayElement bool         `yaml:"arrayElement,omitempty"`
	Fields       []ModelField `yaml:"fields"`
}

// ModelField is the YAML view of a resolved field with its rendered fragments.
type ModelField struct {
	Name           string   `yaml:"name"`
	Index          int      `yaml:"index"`
	Optional       bool     `yaml:"optional,omitempty"`
	Type           string   `yaml:"type"`
	Category       string   `yaml:"category"`
	Representation string   `yaml:"representation,omitempty"`
	Members        []string `yaml:"members"`
	Length         string   `yaml:"length"`
	Write          string   `yaml:"write"`
	Read           string   `yaml:"read"`
	Cleanup        string   `yaml:"cleanup,omitempty"`
}

// Export builds the YAML view of the resolved schema.
func Export(s *Schema) *ModelFile {
	names := s.Naming()
	mf := &ModelFile{
		Prefix:         s.Prefix,
		OctetStringLen: make(map[string]string, len(s.LengthExprs)),
	}

	for _, rep := range schema.KnownRepresentations {
		if e, ok := s.LengthExprs[rep]; ok {
			mf.OctetStringLen[string(rep)] = e
		}
	}

	for _, r := range s.Records {
		mr := ModelRecord{Name: r.Name, Type: names.Type(r.Name), ArrayElement: r.ArrayElement}

		for _, f := range r.Fields {
			c := NewContext(names, f)
			mfld := ModelField{
				Name:           f.Name,
				Index:          f.Index,
				Optional:       f.Optional,
				Type:           declared(f),
				Category:       f.Category.String(),
				Representation: string(f.Representation),
				Length:         f.Template.Length(c),
				Write:          f.Template.Write(c),
				Read:           f.Template.Read(c),
				Cleanup:        f.Template.Cleanup(c),
			}

			for _, m := range f.Template.Members(c) {
				mfld.Members = append(mfld.Members, m.Type+" "+m.Name)
			}

			mr.Fields = append(mr.Fields, mfld)
		}

		mf.Records = append(mf.Records, mr)
	}

	return mf
}

// ExportYAML renders the resolved schema as YAML.
func ExportYAML(s *Schema) ([]byte, error) {
	return yaml.Marshal(Export(s))
}

func declared(f *Field) string {
	if f.Category == CategoryArrayOfRecord {
		return f.DeclaredType + " " + f.ElementType
	}

	return f.DeclaredType
}
