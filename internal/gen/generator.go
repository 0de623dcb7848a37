package gen

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"text/template"

	"ber-generator/internal/common"
	"ber-generator/internal/resolve"
)

// Generator generates C code from a resolved schema.
type Generator struct {
	config GeneratorConfig
	log    *slog.Logger
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{
		config: config,
		log:    common.Logger(config.Logger).With(slog.String("component", "gen")),
	}
}

// GeneratedFile represents one generated C artifact.
type GeneratedFile struct {
	Kind FileKind
	// Filename is the base name of the file (e.g., "tscredentials.h").
	Filename string
	Content  []byte
}

// Generate renders the artifacts selected by the configured mode, header
// first. Nothing is written anywhere.
func (g *Generator) Generate(s *resolve.Schema) ([]GeneratedFile, error) {
	if s == nil {
		return nil, errors.New("generate: nil schema")
	}

	if _, err := ParseMode(string(g.mode())); err != nil {
		return nil, err
	}

	names := s.Naming()
	if g.config.PrefixOverride != "" {
		names.Prefix = g.config.PrefixOverride
	}

	var files []GeneratedFile

	for _, kind := range []FileKind{FileKindHeader, FileKindImpl} {
		if !g.mode().Includes(kind) {
			continue
		}

		file, err := g.generateFile(kind, s, names)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", kind, err)
		}

		g.log.Debug("generated file",
			slog.String("file", file.Filename),
			slog.Int("bytes", len(file.Content)))

		files = append(files, *file)
	}

	return files, nil
}

func (g *Generator) mode() OutputMode {
	if g.config.Mode == "" {
		return ModeBoth
	}

	return g.config.Mode
}

func (g *Generator) headerName() string {
	if g.config.HeaderName == "" {
		return DefaultHeaderName
	}

	return g.config.HeaderName
}

// skeletonData feeds the file skeleton templates.
type skeletonData struct {
	Command     string
	ProgramName string
	Guard       string
	Includes    []string
	HeaderName  string
	LogTag      string
	Body        string
}

var bannerTemplate = `/* ============================================================================================================
 * this file has been generated using
 * {{.Command}}
 *
 * /!\ If you want to modify this file you'd probably better change {{.ProgramName}} or the corresponding ASN1
 *     definition file
 *
 * ============================================================================================================
 */
`

var headerTemplate = template.Must(template.New("header").Parse(bannerTemplate + `#ifndef {{.Guard}}
#define {{.Guard}}

{{range .Includes}}#include <{{.}}>
{{end}}
#ifdef __cplusplus
extern "C"
{
#endif

{{.Body}}#ifdef __cplusplus
}
#endif

#endif /* {{.Guard}} */
`))

var implTemplate = template.Must(template.New("impl").Parse(bannerTemplate + `
{{range .Includes}}#include <{{.}}>
{{end}}
#include "{{.HeaderName}}.h"

#include <freerdp/log.h>

#define TAG FREERDP_TAG("{{.LogTag}}")

{{.Body}}`))

func (g *Generator) generateFile(kind FileKind, s *resolve.Schema, names resolve.Naming) (*GeneratedFile, error) {
	data := skeletonData{
		Command:     g.config.Command,
		ProgramName: programName(g.config.Command),
		Guard:       IncludeGuard(g.config.InputName),
		HeaderName:  g.headerName(),
		LogTag:      g.config.LogTagPrefix + g.headerName(),
	}

	e := &emitter{names: names}
	tmpl := headerTemplate
	ext := ".h"

	switch kind {
	case FileKindHeader:
		data.Includes = g.config.HeaderIncludes
		e.declarations(s)
	case FileKindImpl:
		data.Includes = g.config.ImplIncludes
		tmpl = implTemplate
		ext = ".c"

		e.implementations(s)
	default:
		return nil, fmt.Errorf("unknown file kind %d", kind)
	}

	data.Body = e.buf.String()

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	return &GeneratedFile{
		Kind:     kind,
		Filename: g.headerName() + ext,
		Content:  buf.Bytes(),
	}, nil
}

func programName(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return common.UnknownStr
	}

	return filepath.Base(fields[0])
}
