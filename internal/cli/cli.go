package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"intlgen/internal/aggregate"
	"intlgen/internal/codegen"
	"intlgen/internal/config"
	"intlgen/internal/discovery"
	"intlgen/internal/export"
	"intlgen/internal/textutil"
	"intlgen/internal/watch"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "intlgen",
		Short: "ARB localization toolkit: ICU analysis and code generation",
		Long: "intlgen ingests per-module ARB locale files, normalizes them into a " +
			"locale-complete key model with ICU message analysis, and generates " +
			"localization sources and message bundles from it.",
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate [project-dir]",
		Short: "Parse ARB modules and generate localization classes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(projectDir(args))
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-dir]",
		Short: "Check ARB documents and ICU message structure",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(projectDir(args))
		},
	}
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [project-dir]",
		Short: "Export parsed modules as go-i18n message bundles",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			return runExport(projectDir(args), out)
		},
	}
	cmd.Flags().String("out", "bundles", "output directory for message bundles")
	return cmd
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [project-dir]",
		Short: "Regenerate localization sources whenever ARB files change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(projectDir(args))
		},
	}
}

func projectDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// parseModules discovers, parses, and aggregates every module under the
// project's l10n root. Per-document and per-entry problems are collected on
// the modules, never fatal.
func parseModules(ctx context.Context, cfg *config.Config, dir string) ([]*aggregate.ParsedModule, error) {
	root := filepath.Join(dir, cfg.L10nRoot)
	scanner := discovery.NewScanner(cfg.Ignore)
	found, err := scanner.Scan(root)
	if err != nil {
		return nil, err
	}

	var modules []*aggregate.ParsedModule
	for _, mod := range found {
		var sources []aggregate.Source
		var problems []aggregate.Problem
		for _, f := range mod.Files {
			data, err := os.ReadFile(f.Path)
			if err != nil {
				problems = append(problems, aggregate.Problem{
					Path: f.Path, Locale: f.Locale, Reason: err.Error(),
				})
				continue
			}
			sources = append(sources, aggregate.Source{Path: f.Path, Locale: f.Locale, Content: data})
		}

		docs, parseProblems := aggregate.ParseSources(ctx, sources, cfg.Workers)
		problems = append(problems, parseProblems...)

		for _, d := range docs {
			if declared := d.Doc.Locale(); declared != "" && declared != d.Locale {
				log.Warn().Str("path", d.Path).Str("filename", d.Locale).Str("declared", declared).
					Msg("@@locale disagrees with file name")
			}
		}

		pm := aggregate.Module(mod.Name, mod.Path, docs)
		pm.Problems = append(problems, pm.Problems...)
		modules = append(modules, pm)
	}
	return modules, nil
}

func runGenerate(dir string) error {
	ctx := context.Background()
	cfg := config.Load(dir)

	modules, err := parseModules(ctx, cfg, dir)
	if err != nil {
		return err
	}

	reportProblems(modules)

	gen := &codegen.Generator{TemplateLocale: cfg.TemplateLocale}
	outDir := filepath.Join(dir, cfg.OutputDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir output dir: %w", err)
	}

	for _, m := range modules {
		src, err := gen.Module(m)
		if err != nil {
			return fmt.Errorf("generate module %s: %w", m.Name, err)
		}
		path := filepath.Join(outDir, gen.FileName(m))
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		log.Info().Str("module", m.Name).Int("keys", len(m.Keys)).Str("path", path).Msg("Generated localizations")
	}
	return nil
}

func runValidate(dir string) error {
	ctx := context.Background()
	cfg := config.Load(dir)

	modules, err := parseModules(ctx, cfg, dir)
	if err != nil {
		return err
	}

	total := 0
	for _, m := range modules {
		for _, p := range m.Problems {
			total++
			log.Error().Str("module", m.Name).Str("path", p.Path).Str("locale", p.Locale).
				Str("key", p.Key).Msg(p.Reason)
		}
		for _, p := range m.Validate() {
			total++
			log.Error().Str("module", m.Name).Str("locale", p.Locale).Str("key", p.Key).Msg(p.Reason)
		}
	}

	if total > 0 {
		return fmt.Errorf("validation failed: %d problems", total)
	}
	log.Info().Int("modules", len(modules)).Msg("All messages valid")
	return nil
}

func runExport(dir, out string) error {
	ctx := context.Background()
	cfg := config.Load(dir)

	modules, err := parseModules(ctx, cfg, dir)
	if err != nil {
		return err
	}

	reportProblems(modules)

	for _, m := range modules {
		if err := export.WriteBundle(m, filepath.Join(dir, out, m.Name)); err != nil {
			return fmt.Errorf("export module %s: %w", m.Name, err)
		}
	}
	return nil
}

func runWatch(dir string) error {
	cfg := config.Load(dir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runGenerate(dir); err != nil {
		log.Error().Err(err).Msg("Initial generation failed")
	}

	root := filepath.Join(dir, cfg.L10nRoot)
	watcher := watch.New(root,
		time.Duration(cfg.PollInterval)*time.Second,
		time.Duration(cfg.Debounce)*time.Millisecond)

	log.Info().Str("root", root).Msg("Watching for resource changes")
	err := watcher.Run(ctx, func(paths []string) {
		for _, p := range paths {
			log.Info().Str("path", textutil.Truncate(p, 120)).Msg("Changed")
		}
		if err := runGenerate(dir); err != nil {
			log.Error().Err(err).Msg("Regeneration failed")
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func reportProblems(modules []*aggregate.ParsedModule) {
	for _, m := range modules {
		for _, p := range m.Problems {
			log.Warn().Str("module", m.Name).Str("path", p.Path).Str("locale", p.Locale).
				Str("key", p.Key).Msg(p.Reason)
		}
	}
}
