// FILE: lixenwraith/deconfig/cmd/deconfig/resolve.go
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/deconfig"
)

type resolveOptions struct {
	fields    []string
	envPrefix string
	noEnv     bool
	dotenv    []string
	iniFiles  []string
	section   string
	file      string
	discover  string
	asTOML    bool
	debug     bool
	verbose   bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "deconfig",
		Short:         "Declarative configuration resolution",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newResolveCmd())
	return root
}

func newResolveCmd() *cobra.Command {
	var opts resolveOptions

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve fields and print name=value lines",
		Long: `Resolve declares one field per --field flag, given as name[:type][:optional]
with type one of string, int, float, bool, duration, strings. Adapters are
queried in this order: environment, .env files, config file, INI files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.fields, "field", "f", nil, "field declaration name[:type][:optional]")
	flags.StringVar(&opts.envPrefix, "env-prefix", "", "environment variable prefix")
	flags.BoolVar(&opts.noEnv, "no-env", false, "do not read environment variables")
	flags.StringArrayVar(&opts.dotenv, "dotenv", nil, ".env file, may be repeated")
	flags.StringArrayVar(&opts.iniFiles, "ini", nil, "INI file, may be repeated")
	flags.StringVar(&opts.section, "section", "", "INI section")
	flags.StringVar(&opts.file, "file", "", "TOML, YAML or JSON config file")
	flags.StringVar(&opts.discover, "discover", "", "discover <name>.{toml,yaml,yml,json} for this application name")
	flags.BoolVar(&opts.asTOML, "toml", false, "print resolved values as TOML")
	flags.BoolVar(&opts.debug, "debug", false, "print every field with its source")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log resolution to stderr")
	_ = cmd.MarkFlagRequired("field")

	return cmd
}

func runResolve(out, errOut io.Writer, opts resolveOptions) error {
	adapters, err := buildChain(opts)
	if err != nil {
		return err
	}

	b := deconfig.NewBuilder("deconfig").WithAdapters(adapters...)
	if opts.verbose {
		b.WithLogger(slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	names := make([]string, 0, len(opts.fields))
	for _, spec := range opts.fields {
		m, name, err := parseFieldSpec(spec)
		if err != nil {
			return err
		}
		b.Method(m)
		names = append(names, name)
	}

	schema, err := b.Build()
	if err != nil {
		return err
	}
	cfg := schema.New()

	if opts.debug {
		_, err := io.WriteString(out, cfg.Debug())
		if err != nil {
			return err
		}
		return cfg.Check()
	}

	if opts.asTOML {
		return cfg.Dump(out)
	}

	var errs []error
	for _, name := range names {
		val, err := cfg.Value(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if val == nil {
			fmt.Fprintf(out, "%s=\n", name)
			continue
		}
		fmt.Fprintf(out, "%s=%v\n", name, val)
	}
	return errors.Join(errs...)
}

func buildChain(opts resolveOptions) ([]deconfig.Adapter, error) {
	var adapters []deconfig.Adapter

	if !opts.noEnv {
		adapters = append(adapters, deconfig.NewEnvAdapter(opts.envPrefix))
	}
	if len(opts.dotenv) > 0 {
		adapters = append(adapters, deconfig.NewDotenvAdapter(opts.envPrefix, opts.dotenv))
	}

	file := opts.file
	if file == "" && opts.discover != "" {
		file, _ = deconfig.DiscoverFile(deconfig.DefaultDiscoveryOptions(opts.discover))
	}
	if file != "" {
		adapters = append(adapters, deconfig.NewFileAdapter(file))
	}

	if len(opts.iniFiles) > 0 {
		if opts.section == "" {
			return nil, errors.New("--ini requires --section")
		}
		adapters = append(adapters, deconfig.NewIniAdapter(opts.section, deconfig.IniFiles(opts.iniFiles...)))
	}

	if len(adapters) == 0 {
		return nil, errors.New("no sources enabled")
	}
	return adapters, nil
}

// parseFieldSpec turns "name[:type][:optional]" into a declaration
func parseFieldSpec(spec string) (*deconfig.MethodBuilder, string, error) {
	parts := strings.Split(spec, ":")
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return nil, "", fmt.Errorf("invalid field %q: empty name", spec)
	}

	m := deconfig.Method(name, deconfig.NoDefault()).Field(name)

	for _, p := range parts[1:] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "", "string":
		case "optional":
			m.Optional()
		case "int", "integer":
			m.Transform(deconfig.Integer())
		case "float":
			m.Transform(deconfig.Float())
		case "bool", "boolean":
			m.Transform(deconfig.Boolean())
		case "duration":
			m.Transform(deconfig.Duration())
		case "strings", "list":
			m.Transform(deconfig.Split(","))
		default:
			return nil, "", fmt.Errorf("invalid field %q: unknown modifier %q", spec, p)
		}
	}
	return m, name, nil
}
