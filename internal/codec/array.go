package codec

import (
	"fmt"

	"ber-generator/internal/ber"
	"ber-generator/internal/resolve"
)

// SizeofArrayContent is the sum of the element sequence sizes.
func (c *Codec) SizeofArrayContent(items []*Instance) (int, error) {
	total := 0

	for _, it := range items {
		n, err := c.Sizeof(it)
		if err != nil {
			return 0, err
		}

		total += n
	}

	return total, nil
}

// SizeofArray is the size of the sequence holding the elements.
func (c *Codec) SizeofArray(items []*Instance) (int, error) {
	n, err := c.SizeofArrayContent(items)
	if err != nil {
		return 0, err
	}

	return ber.SizeofSequence(n), nil
}

// SizeofArrayContextual is the size of the element sequence inside a context tag.
func (c *Codec) SizeofArrayContextual(items []*Instance) (int, error) {
	n, err := c.SizeofArray(items)
	if err != nil {
		return 0, err
	}

	return ber.SizeofContextualTag(n) + n, nil
}

// WriteArray writes one sequence holding every element, failing on the
// first element that fails.
func (c *Codec) WriteArray(w *ber.Writer, items []*Instance) (int, error) {
	content, err := c.SizeofArrayContent(items)
	if err != nil {
		return 0, err
	}

	total, err := w.WriteSequenceTag(content)
	if err != nil {
		return 0, err
	}

	for idx, it := range items {
		n, err := c.Write(w, it)
		if err != nil {
			return 0, fmt.Errorf("element %d: %w", idx, err)
		}

		total += n
	}

	return total, nil
}

// WriteArrayContextual writes the element sequence inside context tag tag.
func (c *Codec) WriteArrayContextual(w *ber.Writer, tag byte, items []*Instance) (int, error) {
	inner, err := c.SizeofArray(items)
	if err != nil {
		return 0, err
	}

	n, err := w.WriteContextualTag(tag, inner, true)
	if err != nil {
		return 0, err
	}

	if _, err := c.WriteArray(w, items); err != nil {
		return 0, err
	}

	return n + inner, nil
}

// ReadArray reads elements of type rec until the sequence is exhausted. On
// failure every element read so far is released.
func (c *Codec) ReadArray(r *ber.Reader, rec *resolve.Record) ([]*Instance, error) {
	subLen, err := r.ReadSequenceTag()
	if err != nil {
		return nil, err
	}

	sub, err := r.Sub(subLen)
	if err != nil {
		return nil, err
	}

	items := []*Instance{}

	for sub.Remaining() > 0 {
		it, err := c.Read(sub, rec)
		if err != nil {
			c.FreeArray(items)
			return nil, fmt.Errorf("element %d: %w", len(items), err)
		}

		items = append(items, it)
	}

	return items, nil
}

// FreeArray releases the members of every element.
func (c *Codec) FreeArray(items []*Instance) {
	for _, it := range items {
		c.Free(it)
	}
}
