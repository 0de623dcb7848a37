// Package main provides the CLI entrypoint for ber-generator.
//
// ber-generator reads a schema of flat ASN.1 SEQUENCE records and emits the
// C declarations and implementations that size, write, read and free them
// with the FreeRDP BER primitives.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"ber-generator/internal/gen"
	"ber-generator/internal/resolve"
	"ber-generator/internal/schema"
)

const programName = "ber-generator"

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	input        string
	output       string
	outputKind   string
	optionsFile  string
	prefix       string
	logTagPrefix string
	dumpModel    bool
	verbose      bool
	help         bool
}

func newFlagSet(opts *options) *pflag.FlagSet {
	defaults := gen.DefaultGeneratorConfig()

	flagSet := pflag.NewFlagSet(programName, pflag.ContinueOnError)
	flagSet.StringVarP(&opts.input, "input", "i", "", "schema file (default: standard input)")
	flagSet.StringVarP(&opts.output, "output", "o", "", "output file (default: standard output)")
	flagSet.StringVarP(&opts.outputKind, "output-kind", "t", string(gen.ModeBoth), "artifacts to generate: headers, impls or both")
	flagSet.StringVar(&opts.optionsFile, "options", "", "YAML options file applied on top of the schema options block")
	flagSet.StringVar(&opts.prefix, "prefix", "", "override the function name prefix")
	flagSet.StringVar(&opts.logTagPrefix, "log-tag-prefix", defaults.LogTagPrefix, "prefix of the FREERDP_TAG in implementations")
	flagSet.BoolVar(&opts.dumpModel, "dump-model", false, "write the resolved model as YAML to the output instead of generating code")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug traces to standard error")
	flagSet.BoolVarP(&opts.help, "help", "h", false, "show help")

	return flagSet
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options

	flagSet := newFlagSet(&opts)
	flagSet.SetOutput(io.Discard)

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flagSet)
			return exitOK
		}

		return usageError(stderr, flagSet, err)
	}

	if opts.help {
		printHelp(stderr, flagSet)
		return exitOK
	}

	if rest := flagSet.Args(); len(rest) > 0 {
		return usageError(stderr, flagSet, fmt.Errorf("unexpected argument: %s", rest[0]))
	}

	mode, err := gen.ParseMode(opts.outputKind)
	if err != nil {
		return usageError(stderr, flagSet, err)
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := generate(&opts, mode, args, stdin, stdout, logger); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Fprintf(stderr, "error: %s\n", line)
		}

		return exitError
	}

	return exitOK
}

func generate(opts *options, mode gen.OutputMode, args []string, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	parsed, err := parseInput(opts.input, stdin, logger)
	if err != nil {
		return err
	}

	if opts.optionsFile != "" {
		of, err := schema.LoadOptionsFile(opts.optionsFile)
		if err != nil {
			return err
		}

		parsed, err = parsed.WithOptions(of)
		if err != nil {
			return err
		}
	}

	rcfg := resolve.DefaultConfig()
	rcfg.Logger = logger

	resolved, err := resolve.Resolve(parsed, rcfg)
	if err != nil {
		return err
	}

	for _, w := range resolved.Warnings {
		logger.Warn(w.String())
	}

	if opts.dumpModel {
		if opts.prefix != "" {
			resolved = resolved.WithPrefix(opts.prefix)
		}

		return dumpModel(resolved, opts.output, stdout)
	}

	cfg := gen.DefaultGeneratorConfig()
	cfg.Mode = mode
	cfg.InputName = opts.input
	cfg.HeaderName = gen.HeaderName(opts.output)
	cfg.LogTagPrefix = opts.logTagPrefix
	cfg.Command = strings.Join(append([]string{programName}, args...), " ")
	cfg.PrefixOverride = opts.prefix
	cfg.Logger = logger

	files, err := gen.NewGenerator(cfg).Generate(resolved)
	if err != nil {
		return err
	}

	return writeOutput(opts.output, mode, files, stdout)
}

func dumpModel(resolved *resolve.Schema, output string, stdout io.Writer) error {
	data, err := resolve.ExportYAML(resolved)
	if err != nil {
		return fmt.Errorf("exporting model: %w", err)
	}

	if output == "" || output == "-" {
		_, err = stdout.Write(data)
		return err
	}

	if err := gen.WriteFile(output, data); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	return nil
}

func parseInput(path string, stdin io.Reader, logger *slog.Logger) (*schema.Schema, error) {
	cfg := schema.DefaultParseConfig()
	cfg.Logger = logger

	if path == "" || path == "-" {
		return schema.Parse(stdin, cfg)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening schema: %w", err)
	}
	defer f.Close()

	s, err := schema.Parse(f, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// writeOutput concatenates the artifacts on standard output, writes the
// single artifact to the given path, or writes <stem>.h and <stem>.c next to
// it when both were generated.
func writeOutput(output string, mode gen.OutputMode, files []gen.GeneratedFile, stdout io.Writer) error {
	if output == "" || output == "-" {
		return gen.WriteConcatenated(stdout, files)
	}

	if mode != gen.ModeBoth {
		for _, f := range files {
			if err := gen.WriteFile(output, f.Content); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
		}

		return nil
	}

	return gen.WriteFiles(files, filepath.Dir(output))
}

func usageError(stderr io.Writer, flagSet *pflag.FlagSet, err error) int {
	fmt.Fprintf(stderr, "error: %v\n\n", err)
	printHelp(stderr, flagSet)

	return exitUsage
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `ber-generator generates C BER serializers from an ASN.1 SEQUENCE schema.

Usage:
  %s [flags]

Examples:
  # Generate libfreerdp/core/tscredentials.h and tscredentials.c
  %s -i libfreerdp/core/credssp.asn1 -o libfreerdp/core/tscredentials.c

  # Only the implementations, with a different log tag
  %s -i credssp.asn1 -t impls --log-tag-prefix com.freerdp.core. -o tscredentials.c

Flags:
`, programName, programName, programName)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
