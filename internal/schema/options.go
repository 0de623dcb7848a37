package schema

import (
	"slices"
	"strings"

	"ber-generator/internal/diagnostic"
	"ber-generator/internal/match"
)

// Options block keywords.
const (
	KeywordPrefix         = "prefix"
	KeywordFieldOption    = "fieldOption"
	KeywordOctetStringLen = "octetStringLen"
)

var optionKeywords = []string{KeywordFieldOption, KeywordPrefix, KeywordOctetStringLen}

// applyOption executes one options command against the records known so far.
func (s *Schema) applyOption(args []string, line int) error {
	switch args[0] {
	case KeywordPrefix:
		if len(args) != 2 {
			return diagnostic.Errorf(diagnostic.CodeMalformedOption, line, "", "",
				"expected \"%s <identifier>\", got %q", KeywordPrefix, strings.Join(args, " ")).Err()
		}

		return s.setPrefix(args[1], line)

	case KeywordFieldOption:
		if len(args) != 3 {
			return diagnostic.Errorf(diagnostic.CodeMalformedOption, line, "", "",
				"expected \"%s <Record.field> <option>\", got %q", KeywordFieldOption, strings.Join(args, " ")).Err()
		}

		return s.addFieldOption(args[1], args[2], line)

	case KeywordOctetStringLen:
		if len(args) < 3 {
			return diagnostic.Errorf(diagnostic.CodeMalformedOption, line, "", "",
				"expected \"%s <representation> <expression>\", got %q", KeywordOctetStringLen, strings.Join(args, " ")).Err()
		}

		return s.setLengthExpr(args[1], strings.Join(args[2:], " "), line)

	default:
		return diagnostic.Errorf(diagnostic.CodeUnknownOption, line, "", "",
			"unknown option %q", args[0]).
			WithSuggestions(match.SuggestDefault(args[0], optionKeywords)).Err()
	}
}

func (s *Schema) setPrefix(prefix string, line int) error {
	if !isIdent(prefix) {
		return diagnostic.Errorf(diagnostic.CodeMalformedOption, line, "", "",
			"prefix %q is not a valid identifier", prefix).Err()
	}

	s.Options.Prefix = prefix

	return nil
}

func (s *Schema) addFieldOption(target, option string, line int) error {
	recordName, fieldName, ok := strings.Cut(target, ".")
	if !ok || recordName == "" || fieldName == "" || strings.Contains(fieldName, ".") {
		return diagnostic.Errorf(diagnostic.CodeMalformedOption, line, "", "",
			"field option target %q must be \"Record.field\"", target).Err()
	}

	rec := s.Record(recordName)
	if rec == nil {
		return diagnostic.Errorf(diagnostic.CodeUnknownRecord, line, recordName, "",
			"field option %q targets unknown record %q", option, recordName).
			WithSuggestions(match.SuggestDefault(recordName, s.RecordNames())).Err()
	}

	f := rec.Field(fieldName)
	if f == nil {
		return diagnostic.Errorf(diagnostic.CodeUnknownField, line, recordName, fieldName,
			"record %s has no field %s", recordName, fieldName).
			WithSuggestions(match.SuggestDefault(fieldName, rec.FieldNames())).Err()
	}

	opt := FieldOption(option)
	if !slices.Contains(KnownFieldOptions, opt) {
		known := make([]string, 0, len(KnownFieldOptions))
		for _, k := range KnownFieldOptions {
			known = append(known, string(k))
		}

		return diagnostic.Errorf(diagnostic.CodeUnknownFieldOption, line, recordName, fieldName,
			"unknown field option %q", option).
			WithSuggestions(match.SuggestDefault(option, known)).Err()
	}

	if !f.HasOption(opt) {
		f.Options = append(f.Options, opt)
	}

	return nil
}

func (s *Schema) setLengthExpr(rep, expr string, line int) error {
	r := Representation(rep)
	if !slices.Contains(KnownRepresentations, r) {
		known := make([]string, 0, len(KnownRepresentations))
		for _, k := range KnownRepresentations {
			known = append(known, string(k))
		}

		return diagnostic.Errorf(diagnostic.CodeMalformedOption, line, "", "",
			"unknown octet string representation %q", rep).
			WithSuggestions(match.SuggestDefault(rep, known)).Err()
	}

	if !strings.Contains(expr, FieldNamePlaceholder) {
		return diagnostic.Errorf(diagnostic.CodeMalformedOption, line, "", "",
			"length expression %q must reference %s", expr, FieldNamePlaceholder).Err()
	}

	s.Options.OctetStringLen[r] = expr

	return nil
}
