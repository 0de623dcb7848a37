package resolve

import (
	"errors"
	"log/slog"
	"maps"
	"slices"

	"ber-generator/internal/common"
	"ber-generator/internal/diagnostic"
	"ber-generator/internal/match"
	"ber-generator/internal/schema"
)

// Config holds configuration for resolution.
type Config struct {
	// Logger receives debug traces of classification. Nil disables logging.
	Logger *slog.Logger
	// MaxSuggestions bounds the "did you mean" list of unresolved types.
	// Zero means match.DefaultMaxSuggestions.
	MaxSuggestions int
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() Config {
	return Config{
		MaxSuggestions: match.DefaultMaxSuggestions,
	}
}

type resolver struct {
	log    *slog.Logger
	cfg    Config
	out    *Schema
	diags  diagnostic.Diagnostics
	record *Record
	// candidates are the type names offered as suggestions.
	candidates []string
}

// Resolve classifies every field of the parsed schema, links record
// references and attaches templates. Every problem found is reported; the
// returned error joins one diagnostic.Error per problem.
func Resolve(s *schema.Schema, cfg Config) (*Schema, error) {
	if s == nil {
		return nil, errors.New("resolve: nil schema")
	}

	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = match.DefaultMaxSuggestions
	}

	lengthExprs := schema.DefaultOptions().OctetStringLen
	maps.Copy(lengthExprs, s.Options.OctetStringLen)

	r := &resolver{
		log: common.Logger(cfg.Logger).With(slog.String("component", "resolve")),
		cfg: cfg,
		out: &Schema{
			Prefix:      s.Options.Prefix,
			LengthExprs: lengthExprs,
			index:       make(map[string]*Record, len(s.Records)),
		},
	}

	r.candidates = append(s.RecordNames(), schema.TypeInteger, schema.TypeOctetString)

	// Allocate every record first so references resolve regardless of order.
	for _, pr := range s.Records {
		rec := &Record{Name: pr.Name, Line: pr.Line}
		r.out.Records = append(r.out.Records, rec)
		r.out.index[rec.Name] = rec
	}

	for i, pr := range s.Records {
		r.record = r.out.Records[i]
		if len(pr.Fields) == 0 {
			r.diags.Add(diagnostic.Warningf(diagnostic.CodeEmptyRecord, pr.Line, pr.Name, "",
				"record has no fields; it encodes as an empty SEQUENCE"))
		}

		for _, pf := range pr.Fields {
			r.record.Fields = append(r.record.Fields, r.resolveField(pf))
		}
	}

	if err := r.diags.Error(); err != nil {
		return nil, err
	}

	r.out.Warnings = append(slices.Clone(s.Warnings), r.diags.Warnings...)

	r.log.Debug("schema resolved",
		slog.Int("records", len(r.out.Records)),
		slog.String("prefix", r.out.Prefix))

	return r.out, nil
}

func (r *resolver) resolveField(pf *schema.Field) *Field {
	f := &Field{
		Name:         pf.Name,
		Index:        pf.Index,
		Optional:     pf.Optional,
		DeclaredType: pf.Type,
		ElementType:  pf.ElementType,
		Options:      append([]schema.FieldOption(nil), pf.Options...),
		Line:         pf.Line,
	}

	switch pf.Type {
	case schema.TypeInteger:
		f.Category = CategoryScalarInteger
	case schema.TypeOctetString:
		f.Category = CategoryByteBlob
	case schema.TypeSequenceOf:
		f.Category = CategoryArrayOfRecord
		f.Ref = r.out.Record(pf.ElementType)

		if f.Ref == nil {
			r.fail(diagnostic.CodeUnknownElementType, f, pf.ElementType,
				"unknown element type %q in SEQUENCE OF", pf.ElementType)
		} else {
			f.Ref.ArrayElement = true
		}
	default:
		f.Category = CategoryNestedRecord
		f.Ref = r.out.Record(pf.Type)

		if f.Ref == nil {
			r.fail(diagnostic.CodeUnresolvedType, f, pf.Type, "unresolved type %q", pf.Type)
		}
	}

	f.Representation = r.representation(f)
	f.Template = templateFor(f, r.out.LengthExprs)

	r.log.Debug("field classified",
		slog.String("record", r.record.Name),
		slog.String("field", f.Name),
		slog.String("category", f.Category.String()),
		slog.String("representation", string(f.Representation)))

	return f
}

// representation validates the field options and picks the blob representation.
func (r *resolver) representation(f *Field) schema.Representation {
	if f.Category != CategoryByteBlob {
		for _, o := range f.Options {
			r.fail(diagnostic.CodeOptionNotApplicable, f, "",
				"field option %q applies to OCTET STRING fields only, %s is %s", o, f.Name, f.DeclaredType)
		}

		return ""
	}

	transcoded := f.hasOption(schema.OptionCharToUnicode)
	wide := f.hasOption(schema.OptionUnicode)

	switch {
	case transcoded && wide:
		r.fail(diagnostic.CodeConflictingFieldOptions, f, "",
			"field options %q and %q are mutually exclusive", schema.OptionCharToUnicode, schema.OptionUnicode)

		return schema.RepresentationBytes
	case transcoded:
		r.warnDefaultTranscodedLength(f)
		return schema.RepresentationTranscoded
	case wide:
		return schema.RepresentationWide
	default:
		return schema.RepresentationBytes
	}
}

// warnDefaultTranscodedLength flags transcoded fields still sized by the
// default expression, which counts bytes and not UTF-16 code units.
func (r *resolver) warnDefaultTranscodedLength(f *Field) {
	expr := r.out.LengthExprs[schema.RepresentationTranscoded]
	if expr != schema.DefaultOptions().OctetStringLen[schema.RepresentationTranscoded] {
		return
	}

	r.diags.Add(diagnostic.Warningf(diagnostic.CodeASCIIOnlyLength, f.Line, r.record.Name, f.Name,
		"length %q is exact for ASCII content only", expr))
}

// fail records an error on f. When missing is set, suggestions are drawn
// from the known type names.
func (r *resolver) fail(code string, f *Field, missing, format string, args ...any) {
	d := diagnostic.Errorf(code, f.Line, r.record.Name, f.Name, format, args...)
	if missing != "" {
		d = d.WithSuggestions(match.Suggest(missing, r.candidates, match.DefaultMinScore, r.cfg.MaxSuggestions))
	}

	r.diags.Add(d)
}
