package schema

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"ber-generator/internal/common"
	"ber-generator/internal/diagnostic"
)

// ParseConfig holds configuration for schema parsing.
type ParseConfig struct {
	// Logger receives debug traces of state transitions. Nil disables logging.
	Logger *slog.Logger
	// MaxLineLength bounds a single schema line in bytes.
	MaxLineLength int
}

// DefaultParseConfig returns the default parse configuration.
func DefaultParseConfig() ParseConfig {
	return ParseConfig{
		MaxLineLength: 1 << 20,
	}
}

type parserState int

const (
	stateRoot parserState = iota
	stateInRecord
	stateInOptions
)

func (s parserState) String() string {
	switch s {
	case stateRoot:
		return "ROOT"
	case stateInRecord:
		return "IN_RECORD"
	case stateInOptions:
		return "IN_OPTIONS"
	default:
		return common.UnknownStr
	}
}

const (
	optionsOpener = "%options"
	assignToken   = "::="
	openBrace     = "{"
	closeBrace    = "}"
	comma         = ","
	keywordSeq    = "SEQUENCE"
	keywordOf     = "OF"
	keywordOpt    = "OPTIONAL"
	keywordDefs   = "DEFINITIONS"
	keywordBegin  = "BEGIN"
	keywordEnd    = "END"
)

type parser struct {
	log    *slog.Logger
	state  parserState
	schema *Schema
	diags  diagnostic.Diagnostics

	current      *Record
	optionsStart int
	line         int
}

// Parse consumes the whole schema text and returns the parsed registry.
// It stops at the first grammar error; the returned error wraps a
// *diagnostic.Error identifying the offending line.
func Parse(r io.Reader, cfg ParseConfig) (*Schema, error) {
	p := &parser{
		log:    common.Logger(cfg.Logger).With(slog.String("component", "schema")),
		state:  stateRoot,
		schema: newSchema(),
	}

	maxLine := cfg.MaxLineLength
	if maxLine <= 0 {
		maxLine = DefaultParseConfig().MaxLineLength
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLine)

	for sc.Scan() {
		p.line++
		if err := p.feed(sc.Text()); err != nil {
			return nil, err
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}

	if err := p.finish(); err != nil {
		return nil, err
	}

	p.schema.Warnings = p.diags.Warnings

	return p.schema, nil
}

// ParseString parses a schema held in memory.
func ParseString(src string, cfg ParseConfig) (*Schema, error) {
	return Parse(strings.NewReader(src), cfg)
}

func (p *parser) feed(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || isComment(trimmed) {
		return nil
	}

	switch p.state {
	case stateRoot:
		return p.stepRoot(tokenize(trimmed))
	case stateInRecord:
		return p.stepRecord(tokenize(trimmed))
	case stateInOptions:
		return p.stepOptions(strings.Fields(trimmed))
	default:
		return fmt.Errorf("line %d: parser in invalid state %s", p.line, p.state)
	}
}

func (p *parser) transition(to parserState) {
	p.log.Debug("state transition",
		slog.Int("line", p.line),
		slog.String("from", p.state.String()),
		slog.String("to", to.String()))
	p.state = to
}

func (p *parser) fail(code, record, field, format string, args ...any) error {
	return diagnostic.Errorf(code, p.line, record, field, format, args...).Err()
}

// stepRoot handles a line while no block is open.
func (p *parser) stepRoot(tokens []string) error {
	if tokens[0] == optionsOpener {
		if len(tokens) != 2 || tokens[1] != openBrace {
			return p.fail(diagnostic.CodeMalformedHeader, "", "",
				"expected %q, got %q", optionsOpener+" "+openBrace, strings.Join(tokens, " "))
		}

		p.optionsStart = p.line
		p.transition(stateInOptions)

		return nil
	}

	if len(tokens) < 2 || tokens[1] != assignToken {
		return p.skipRoot(tokens)
	}

	name := tokens[0]
	if !isIdent(name) {
		return p.fail(diagnostic.CodeMalformedHeader, name, "", "invalid record name %q", name)
	}

	rhs := tokens[2:]
	if len(rhs) == 0 {
		return p.fail(diagnostic.CodeMalformedHeader, name, "", "missing right-hand side after %q", assignToken)
	}

	if rhs[0] != keywordSeq {
		return p.fail(diagnostic.CodeUnsupportedDefinition, name, "",
			"%q is not a flat SEQUENCE record; only SEQUENCE definitions are supported", strings.Join(rhs, " "))
	}

	if len(rhs) > 1 && rhs[1] == keywordOf {
		return p.fail(diagnostic.CodeUnsupportedDefinition, name, "",
			"top-level %q is not a flat record", strings.Join(rhs, " "))
	}

	if len(rhs) != 2 || rhs[1] != openBrace {
		return p.fail(diagnostic.CodeMalformedHeader, name, "",
			"expected %q, got %q", keywordSeq+" "+openBrace, strings.Join(rhs, " "))
	}

	if prev := p.schema.Record(name); prev != nil {
		return p.fail(diagnostic.CodeDuplicateRecord, name, "",
			"record already defined at line %d", prev.Line)
	}

	p.current = &Record{Name: name, Line: p.line}
	p.transition(stateInRecord)

	return nil
}

// skipRoot handles a ROOT line that is not a definition. Module wrappers
// are dropped quietly, other free text with a warning. Anything carrying
// definition syntax fails, or its record would vanish with it.
func (p *parser) skipRoot(tokens []string) error {
	text := strings.Join(tokens, " ")

	if isModuleWrapper(tokens) {
		p.log.Debug("skipping module wrapper line", slog.Int("line", p.line), slog.String("text", text))
		return nil
	}

	if looksLikeDefinition(tokens) {
		return p.fail(diagnostic.CodeMalformedHeader, "", "",
			"expected %q or a module wrapper line, got %q", "<Name> ::= SEQUENCE {", text)
	}

	p.diags.Add(diagnostic.Warningf(diagnostic.CodeSkippedLine, p.line, "", "",
		"line %q is not a record definition and was skipped", text))

	return nil
}

// isModuleWrapper matches "X DEFINITIONS ... ::= BEGIN" and "END".
func isModuleWrapper(tokens []string) bool {
	if len(tokens) == 1 {
		return tokens[0] == keywordEnd
	}

	return tokens[1] == keywordDefs && tokens[len(tokens)-1] == keywordBegin
}

func looksLikeDefinition(tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(tok, assignToken) || strings.HasPrefix(tok, "[") ||
			tok == openBrace || tok == closeBrace {
			return true
		}
	}

	return false
}

// stepRecord handles a line inside a record body.
func (p *parser) stepRecord(tokens []string) error {
	if tokens[0] == closeBrace {
		if len(tokens) > 1 {
			return p.fail(diagnostic.CodeMalformedField, p.current.Name, "",
				"unexpected %q after %q", strings.Join(tokens[1:], " "), closeBrace)
		}

		p.schema.add(p.current)
		p.log.Debug("record parsed",
			slog.String("record", p.current.Name),
			slog.Int("fields", len(p.current.Fields)))
		p.current = nil
		p.transition(stateRoot)

		return nil
	}

	f, err := p.parseField(tokens)
	if err != nil {
		return err
	}

	for _, existing := range p.current.Fields {
		if existing.Name == f.Name {
			return p.fail(diagnostic.CodeDuplicateField, p.current.Name, f.Name,
				"field already declared at line %d", existing.Line)
		}

		if existing.Index == f.Index {
			return p.fail(diagnostic.CodeDuplicateIndex, p.current.Name, f.Name,
				"index [%d] already used by field %q", f.Index, existing.Name)
		}
	}

	p.current.Fields = append(p.current.Fields, f)

	return nil
}

func (p *parser) parseField(tokens []string) (*Field, error) {
	record := p.current.Name

	if last, ok := common.Last(tokens); ok && last == comma {
		tokens = tokens[:len(tokens)-1]
	}

	if len(tokens) < 3 {
		return nil, p.fail(diagnostic.CodeMalformedField, record, "",
			"expected \"<name> [<index>] <type> [OPTIONAL]\", got %q", strings.Join(tokens, " "))
	}

	f := &Field{Name: tokens[0], Line: p.line}
	if !isIdent(f.Name) {
		return nil, p.fail(diagnostic.CodeMalformedField, record, f.Name, "invalid field name %q", f.Name)
	}

	idx, err := parseIndex(tokens[1])
	if err != nil {
		return nil, p.fail(diagnostic.CodeMalformedField, record, f.Name, "%v", err)
	}

	if idx < 0 || idx > MaxContextTag {
		return nil, p.fail(diagnostic.CodeIndexOutOfRange, record, f.Name,
			"index [%d] outside 0..%d", idx, MaxContextTag)
	}

	f.Index = idx

	typeTokens := tokens[2:]
	if last, _ := common.Last(typeTokens); last == keywordOpt {
		f.Optional = true
		typeTokens = typeTokens[:len(typeTokens)-1]
	}

	if len(typeTokens) == 0 {
		return nil, p.fail(diagnostic.CodeMalformedField, record, f.Name, "missing type")
	}

	for _, t := range typeTokens {
		if t == openBrace || t == closeBrace || t == comma {
			return nil, p.fail(diagnostic.CodeUnsupportedDefinition, record, f.Name,
				"inline constructed type %q is not supported", strings.Join(typeTokens, " "))
		}
	}

	if typeTokens[0] == keywordSeq {
		if len(typeTokens) != 3 || typeTokens[1] != keywordOf || !isTypeName(typeTokens[2]) {
			return nil, p.fail(diagnostic.CodeUnsupportedDefinition, record, f.Name,
				"expected \"SEQUENCE OF <Record>\", got %q", strings.Join(typeTokens, " "))
		}

		f.Type = TypeSequenceOf
		f.ElementType = typeTokens[2]

		return f, nil
	}

	f.Type = strings.Join(typeTokens, " ")

	return f, nil
}

func parseIndex(tok string) (int, error) {
	if len(tok) < 3 || tok[0] != '[' || tok[len(tok)-1] != ']' {
		return 0, fmt.Errorf("expected bracketed index like [0], got %q", tok)
	}

	n, err := strconv.Atoi(tok[1 : len(tok)-1])
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", tok)
	}

	return n, nil
}

// stepOptions handles a line inside the options block.
func (p *parser) stepOptions(fields []string) error {
	if fields[0] == closeBrace {
		if len(fields) > 1 {
			return p.fail(diagnostic.CodeMalformedOption, "", "",
				"unexpected %q after %q", strings.Join(fields[1:], " "), closeBrace)
		}

		p.transition(stateRoot)

		return nil
	}

	if err := p.schema.applyOption(fields, p.line); err != nil {
		return err
	}

	p.log.Debug("option applied", slog.Int("line", p.line), slog.String("option", fields[0]))

	return nil
}

func (p *parser) finish() error {
	switch p.state {
	case stateInRecord:
		return diagnostic.Errorf(diagnostic.CodeUnterminatedBlock, p.current.Line, p.current.Name, "",
			"end of input inside record definition").Err()
	case stateInOptions:
		return diagnostic.Errorf(diagnostic.CodeUnterminatedBlock, p.optionsStart, "", "",
			"end of input inside %s block", optionsOpener).Err()
	default:
		return nil
	}
}
