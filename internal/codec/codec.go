package codec

import (
	"errors"
	"fmt"
	"log/slog"

	"ber-generator/internal/ber"
	"ber-generator/internal/common"
	"ber-generator/internal/resolve"
	"ber-generator/internal/schema"
)

// ErrMissingField is returned when a mandatory field has no value.
var ErrMissingField = errors.New("mandatory field missing")

// FieldError reports the field whose read or write failed.
type FieldError struct {
	Record string
	Field  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Record, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Config holds codec configuration.
type Config struct {
	// Logger receives debug traces of read failures. Nil disables logging.
	Logger *slog.Logger
	// OnRelease observes every release of a present, resource owning field.
	OnRelease func(inst *Instance, f *resolve.Field)
}

// DefaultConfig returns the default codec configuration.
func DefaultConfig() Config {
	return Config{}
}

// Codec encodes and decodes instances.
type Codec struct {
	cfg Config
	log *slog.Logger
}

// New creates a codec.
func New(cfg Config) *Codec {
	return &Codec{
		cfg: cfg,
		log: common.Logger(cfg.Logger).With(slog.String("component", "codec")),
	}
}

// SizeofContent is the sum of the contextual sizes of the present fields.
func (c *Codec) SizeofContent(inst *Instance) (int, error) {
	total := 0

	for _, f := range inst.Record.Fields {
		v, ok := inst.values[f.Name]
		if !ok {
			if f.Optional {
				continue
			}

			return 0, &FieldError{Record: inst.Record.Name, Field: f.Name, Err: ErrMissingField}
		}

		n, err := c.sizeofField(f, v)
		if err != nil {
			return 0, &FieldError{Record: inst.Record.Name, Field: f.Name, Err: err}
		}

		total += n
	}

	return total, nil
}

// Sizeof is the size of the encoded record sequence.
func (c *Codec) Sizeof(inst *Instance) (int, error) {
	n, err := c.SizeofContent(inst)
	if err != nil {
		return 0, err
	}

	return ber.SizeofSequence(n), nil
}

// SizeofContextual is the size of the record sequence inside a context tag.
func (c *Codec) SizeofContextual(inst *Instance) (int, error) {
	n, err := c.Sizeof(inst)
	if err != nil {
		return 0, err
	}

	return ber.SizeofContextualTag(n) + n, nil
}

func (c *Codec) sizeofField(f *resolve.Field, v any) (int, error) {
	switch f.Category {
	case resolve.CategoryScalarInteger:
		return ber.SizeofContextualInteger(v.(uint32)), nil
	case resolve.CategoryByteBlob:
		payload, err := blobPayload(f, v)
		if err != nil {
			return 0, err
		}

		return ber.SizeofContextualOctetString(len(payload)), nil
	case resolve.CategoryNestedRecord:
		return c.SizeofContextual(v.(*Instance))
	case resolve.CategoryArrayOfRecord:
		return c.SizeofArrayContextual(v.([]*Instance))
	default:
		return 0, fmt.Errorf("unknown category %s", f.Category)
	}
}

func blobPayload(f *resolve.Field, v any) ([]byte, error) {
	switch f.Representation {
	case schema.RepresentationTranscoded:
		return ber.EncodeUTF16(v.(string))
	case schema.RepresentationWide:
		return ber.WideBytes(v.([]uint16)), nil
	default:
		return v.([]byte), nil
	}
}

// Write writes the record sequence and returns the bytes written.
func (c *Codec) Write(w *ber.Writer, inst *Instance) (int, error) {
	content, err := c.SizeofContent(inst)
	if err != nil {
		return 0, err
	}

	n, err := w.WriteSequenceTag(content)
	if err != nil {
		return 0, err
	}

	for _, f := range inst.Record.Fields {
		v, ok := inst.values[f.Name]
		if !ok {
			continue
		}

		if err := c.writeField(w, f, v); err != nil {
			return 0, &FieldError{Record: inst.Record.Name, Field: f.Name, Err: err}
		}
	}

	return n + content, nil
}

// WriteContextual writes the record sequence inside context tag tag.
func (c *Codec) WriteContextual(w *ber.Writer, tag byte, inst *Instance) (int, error) {
	inner, err := c.Sizeof(inst)
	if err != nil {
		return 0, err
	}

	n, err := w.WriteContextualTag(tag, inner, true)
	if err != nil {
		return 0, err
	}

	if _, err := c.Write(w, inst); err != nil {
		return 0, err
	}

	return n + inner, nil
}

func (c *Codec) writeField(w *ber.Writer, f *resolve.Field, v any) error {
	tag := byte(f.Index)

	var err error

	switch f.Category {
	case resolve.CategoryScalarInteger:
		_, err = w.WriteContextualInteger(tag, v.(uint32))
	case resolve.CategoryByteBlob:
		switch f.Representation {
		case schema.RepresentationTranscoded:
			_, err = w.WriteContextualCharToUnicodeOctetString(tag, v.(string))
		case schema.RepresentationWide:
			_, err = w.WriteContextualUnicodeOctetString(tag, v.([]uint16))
		default:
			_, err = w.WriteContextualOctetString(tag, v.([]byte))
		}
	case resolve.CategoryNestedRecord:
		_, err = c.WriteContextual(w, tag, v.(*Instance))
	case resolve.CategoryArrayOfRecord:
		_, err = c.WriteArrayContextual(w, tag, v.([]*Instance))
	}

	return err
}

// Read reads one record sequence and advances r past it. On failure every
// field read so far is released and nil is returned.
func (c *Codec) Read(r *ber.Reader, rec *resolve.Record) (*Instance, error) {
	seqLength, err := r.ReadSequenceTag()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rec.Name, err)
	}

	seq, err := r.Sub(seqLength)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rec.Name, err)
	}

	inst := NewInstance(rec)

	for i, f := range rec.Fields {
		innerSize, ok := seq.ReadContextualTag(byte(f.Index), true)
		if !ok {
			if f.Optional {
				continue
			}

			return nil, c.failRead(inst, i, fmt.Errorf("missing context tag [%d]", f.Index))
		}

		fieldStream, err := seq.Sub(innerSize)
		if err != nil {
			return nil, c.failRead(inst, i, err)
		}

		v, err := c.readField(fieldStream, f)
		if err != nil {
			return nil, c.failRead(inst, i, err)
		}

		inst.values[f.Name] = v
	}

	return inst, nil
}

// failRead releases what the read of field idx leaves behind.
func (c *Codec) failRead(inst *Instance, idx int, err error) error {
	f := inst.Record.Fields[idx]

	c.log.Debug("read failed",
		slog.String("record", inst.Record.Name),
		slog.String("field", f.Name),
		slog.String("label", resolve.FailLabel(f)),
		slog.Any("error", err))

	for _, rf := range inst.Record.ReleasedOnFailure(idx) {
		c.release(inst, rf)
	}

	return &FieldError{Record: inst.Record.Name, Field: f.Name, Err: err}
}

func (c *Codec) readField(r *ber.Reader, f *resolve.Field) (any, error) {
	switch f.Category {
	case resolve.CategoryScalarInteger:
		return r.ReadInteger()
	case resolve.CategoryByteBlob:
		switch f.Representation {
		case schema.RepresentationTranscoded:
			return r.ReadCharFromUnicodeOctetString()
		case schema.RepresentationWide:
			return r.ReadUnicodeOctetString()
		default:
			return r.ReadOctetString()
		}
	case resolve.CategoryNestedRecord:
		return c.Read(r, f.Ref)
	case resolve.CategoryArrayOfRecord:
		return c.ReadArray(r, f.Ref)
	default:
		return nil, fmt.Errorf("unknown category %s", f.Category)
	}
}

// Free releases every present, resource owning field in declaration order.
func (c *Codec) Free(inst *Instance) {
	if inst == nil {
		return
	}

	for _, f := range inst.Record.Fields {
		if f.Category.OwnsResource() {
			c.release(inst, f)
		}
	}
}

func (c *Codec) release(inst *Instance, f *resolve.Field) {
	v, ok := inst.values[f.Name]
	if !ok {
		return
	}

	switch f.Category {
	case resolve.CategoryNestedRecord:
		c.Free(v.(*Instance))
	case resolve.CategoryArrayOfRecord:
		c.FreeArray(v.([]*Instance))
	}

	if c.cfg.OnRelease != nil {
		c.cfg.OnRelease(inst, f)
	}

	delete(inst.values, f.Name)
}

// Encode returns the encoded record sequence.
func (c *Codec) Encode(inst *Instance) ([]byte, error) {
	w := ber.NewWriter()
	if _, err := c.Write(w, inst); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// Decode reads one record sequence of type rec from data.
func (c *Codec) Decode(rec *resolve.Record, data []byte) (*Instance, error) {
	return c.Read(ber.NewReader(data), rec)
}
