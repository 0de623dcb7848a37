package codec

import (
	"fmt"

	"ber-generator/internal/resolve"
	"ber-generator/internal/schema"
)

// Instance is one value of a record type.
type Instance struct {
	Record *resolve.Record
	values map[string]any
}

// NewInstance returns an empty instance of r.
func NewInstance(r *resolve.Record) *Instance {
	return &Instance{Record: r, values: make(map[string]any, len(r.Fields))}
}

// Set assigns a field value after checking it matches the field category.
func (i *Instance) Set(field string, v any) error {
	f := i.Record.Field(field)
	if f == nil {
		return fmt.Errorf("%s has no field %q", i.Record.Name, field)
	}

	if err := checkValue(f, v); err != nil {
		return fmt.Errorf("%s.%s: %w", i.Record.Name, field, err)
	}

	i.values[field] = v

	return nil
}

// Get returns a field value and whether it is present.
func (i *Instance) Get(field string) (any, bool) {
	v, ok := i.values[field]
	return v, ok
}

// Has reports whether the field is present.
func (i *Instance) Has(field string) bool {
	_, ok := i.values[field]
	return ok
}

// Clear removes a field value.
func (i *Instance) Clear(field string) {
	delete(i.values, field)
}

func checkValue(f *resolve.Field, v any) error {
	ok := false

	switch f.Category {
	case resolve.CategoryScalarInteger:
		_, ok = v.(uint32)
	case resolve.CategoryByteBlob:
		switch f.Representation {
		case schema.RepresentationTranscoded:
			_, ok = v.(string)
		case schema.RepresentationWide:
			_, ok = v.([]uint16)
		default:
			_, ok = v.([]byte)
		}
	case resolve.CategoryNestedRecord:
		var child *Instance

		child, ok = v.(*Instance)
		if ok && (child == nil || child.Record != f.Ref) {
			return fmt.Errorf("want a %s instance", f.Ref.Name)
		}
	case resolve.CategoryArrayOfRecord:
		var items []*Instance

		items, ok = v.([]*Instance)
		for _, it := range items {
			if it == nil || it.Record != f.Ref {
				return fmt.Errorf("want %s elements", f.Ref.Name)
			}
		}
	}

	if !ok {
		return fmt.Errorf("value of type %T does not fit a %s field", v, f.Category)
	}

	return nil
}
