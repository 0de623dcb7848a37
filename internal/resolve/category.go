package resolve

//go:generate go tool stringer -type=Category -trimprefix=Category -output=category_string.go

// Category is the behavioral class of a field.
type Category int

const (
	CategoryScalarInteger Category = iota
	CategoryByteBlob
	CategoryArrayOfRecord
	CategoryNestedRecord
)

// OwnsResource reports whether fields of this category hold memory the
// record destructor must release.
func (c Category) OwnsResource() bool {
	switch c {
	case CategoryByteBlob, CategoryArrayOfRecord, CategoryNestedRecord:
		return true
	default:
		return false
	}
}
