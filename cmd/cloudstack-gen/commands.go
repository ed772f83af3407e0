package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/yaml"

	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/analyzer"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/config"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/exporter"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/logger"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/sink"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/source"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/ui"
)

// errUnknownMethods is returned by dump when some requested names were not found
var errUnknownMethods = errors.New("one or more methods were not found")

func loadConfig(cctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// newSource reads --input when given, otherwise calls the configured management server
func newSource(cctx *cli.Context, cfg *config.Config) (source.Source, error) {
	if input := cctx.String("input"); input != "" {
		src := source.NewFileSource(input)
		logger.Debug("Reading listApis from %s", src.Path())
		return src, nil
	}
	if err := cfg.ValidateRemote(); err != nil {
		return nil, err
	}
	logger.Debug("Fetching listApis from %s", cfg.BaseURL())
	return source.NewHTTPSource(cfg), nil
}

func fetch(cctx *cli.Context, cfg *config.Config) ([]model.RawMethod, error) {
	src, err := newSource(cctx, cfg)
	if err != nil {
		return nil, err
	}
	methods, err := src.FetchAllMethods(cctx.Context)
	if err != nil {
		logger.LogFailure("fetch listApis", err)
		return nil, err
	}
	return methods, nil
}

func runGenerate(cctx *cli.Context) error {
	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}

	if lang := cctx.String("lang"); lang != "" {
		cfg.Generation.Language = lang
	}
	if formats := cctx.StringSlice("format"); len(formats) > 0 {
		cfg.Output.Formats = formats
	}
	if outputDir := cctx.String("output"); outputDir != "" {
		abs, err := filepath.Abs(outputDir)
		if err != nil {
			return fmt.Errorf("failed to resolve output directory: %w", err)
		}
		cfg.Output.Dir = abs
	}
	if workers := cctx.Int("workers"); workers > 0 {
		cfg.Generation.Workers = workers
	}

	// Language and formats are checked before anything is fetched or resolved
	if _, err := exporter.LookupProfile(cfg.Generation.Language); err != nil {
		return err
	}
	exporters, err := exporter.GetExporters(cfg.Output.Formats)
	if err != nil {
		return err
	}

	if err := cfg.EnsureOutputDir(); err != nil {
		return err
	}
	if err := logger.Init(cctx.App.Writer, cfg.LogPath(), cctx.Bool("verbose")); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	quiet := cctx.Bool("quiet")
	if !quiet {
		printBanner(cctx.App.Writer)
	}
	if logger.IsVerbose() {
		cfg.Print()
	}

	pipeline := ui.NewPipelineWithOutput([]ui.Phase{
		ui.PhaseFetching,
		ui.PhaseResolving,
		ui.PhaseRendering,
	}, cctx.App.Writer)
	if quiet {
		pipeline.Disable()
	}
	defer pipeline.Finish()

	// --- Phase 1: Fetching ---
	logger.Info("Phase 1: Fetching API metadata...")
	fetchBar := pipeline.NextPhase(-1)
	methods, err := fetch(cctx, cfg)
	if err != nil {
		return err
	}
	fetchBar.Finish()
	logger.Info("Fetched %d methods", len(methods))

	// --- Phase 2: Resolving ---
	logger.Info("Phase 2: Resolving response schemas...")
	resolveBar := pipeline.NextPhase(len(methods))
	catalog, err := analyzer.Analyze(methods)
	if err != nil {
		logger.LogFailure("resolve", err)
		return err
	}
	resolveBar.Add(len(methods))

	summary := catalog.Summarize(time.Now().Format("2006-01-02"))
	logger.Debug("Catalog: %s", summary.String())

	// --- Phase 3: Rendering ---
	logger.Info("Phase 3: Rendering %d output format(s)...", len(exporters))
	renderBar := pipeline.NextPhase(len(exporters))

	var exportErrors []error
	for _, exp := range exporters {
		renderBar.Describe(exp.Name())
		if err := exp.Export(catalog, &summary, cfg); err != nil {
			logger.Error("Export %s failed: %v", exp.Name(), err)
			logger.LogFailure("export "+exp.Name(), err)
			exportErrors = append(exportErrors, err)
		}
		renderBar.Increment()
	}
	pipeline.Finish()

	if len(exportErrors) > 0 {
		return fmt.Errorf("one or more exports failed: %w", errors.Join(exportErrors...))
	}

	pipeline.PrintSummary(summary.String())
	logger.Info("Generation complete. Check [%s] directory.", cfg.Output.Dir)
	logger.Debug("Run log written to %s", logger.GetLogFilePath())
	return nil
}

func runShow(cctx *cli.Context) error {
	name := cctx.Args().First()
	if name == "" {
		return fmt.Errorf("show requires a method name")
	}

	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}
	if _, err := exporter.LookupProfile(cfg.Generation.Language); err != nil {
		return err
	}
	if err := logger.Init(cctx.App.ErrWriter, "", cctx.Bool("verbose")); err != nil {
		return err
	}
	defer logger.Close()

	methods, err := fetch(cctx, cfg)
	if err != nil {
		return err
	}

	catalog, err := analyzer.AnalyzeMethod(methods, name)
	if err != nil {
		return err
	}
	summary := catalog.Summarize(time.Now().Format("2006-01-02"))

	out := sink.NewMemorySink()
	if err := exporter.NewLanguageExporter(out, nil).Export(catalog, &summary, cfg); err != nil {
		return err
	}

	for _, artifact := range out.Artifacts() {
		fmt.Fprintf(cctx.App.Writer, "// ===== %s =====\n%s\n", artifact.Filename, artifact.Content)
	}
	return nil
}

// dumpDocument is the normalized form printed by dump
type dumpDocument struct {
	Methods []model.MethodDescriptor `json:"methods"`
	Schemas []model.ResponseSchema   `json:"schemas"`
}

func runDump(cctx *cli.Context) error {
	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}
	if err := logger.Init(cctx.App.ErrWriter, "", cctx.Bool("verbose")); err != nil {
		return err
	}
	defer logger.Close()

	methods, err := fetch(cctx, cfg)
	if err != nil {
		return err
	}

	catalog, err := analyzer.Analyze(methods)
	if err != nil {
		return err
	}

	var unknown []error
	if names := cctx.Args().Slice(); len(names) > 0 {
		catalog, unknown = catalog.Subset(names)
		for _, err := range unknown {
			logger.Warn("%v", err)
		}
	}

	if err := writeDump(cctx.App.Writer, dumpDocument{Methods: catalog.Methods, Schemas: catalog.Schemas}, cctx.Bool("yaml")); err != nil {
		return err
	}

	if len(unknown) > 0 {
		return fmt.Errorf("%w: %d of %d", errUnknownMethods, len(unknown), cctx.Args().Len())
	}
	return nil
}

func writeDump(w io.Writer, doc dumpDocument, asYAML bool) error {
	var (
		out []byte
		err error
	)
	if asYAML {
		out, err = yaml.Marshal(doc)
	} else {
		out, err = json.MarshalIndent(doc, "", "  ")
		out = append(out, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to encode dump: %w", err)
	}

	_, err = w.Write(out)
	return err
}
