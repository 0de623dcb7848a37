package resolve

// TeardownStep is one label of a read routine's failure path. Control
// arriving at the label releases Release (if any) and falls through to the
// next step.
type TeardownStep struct {
	Label   string
	Release *Field
}

// FailLabel is the label a read jumps to when the field fails.
func FailLabel(f *Field) string {
	return "out_fail_" + f.Name
}

// Teardown returns the failure path of the record read routine: one step per
// field, last field first. A jump to the label of field i releases fields
// i-1 down to 0, in that order.
func (r *Record) Teardown() []TeardownStep {
	steps := make([]TeardownStep, 0, len(r.Fields))
	for i := len(r.Fields) - 1; i >= 0; i-- {
		step := TeardownStep{Label: FailLabel(r.Fields[i])}
		if i > 0 {
			step.Release = r.Fields[i-1]
		}

		steps = append(steps, step)
	}

	return steps
}

// ReleasedOnFailure lists the resource owning fields released when reading
// the field at position idx fails, in release order.
func (r *Record) ReleasedOnFailure(idx int) []*Field {
	if idx < 0 || idx >= len(r.Fields) {
		return nil
	}

	var out []*Field

	reached := false
	for _, step := range r.Teardown() {
		if step.Label == FailLabel(r.Fields[idx]) {
			reached = true
		}

		if reached && step.Release != nil && step.Release.Category.OwnsResource() {
			out = append(out, step.Release)
		}
	}

	return out
}
