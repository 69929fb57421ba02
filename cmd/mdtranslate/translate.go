package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	mdtranslate "github.com/alnah/go-mdtranslate"
	"github.com/alnah/go-mdtranslate/internal/config"
)

// Sentinel errors for the translate command.
var (
	ErrNoInput        = errors.New("no input file specified")
	ErrReadMarkdown   = errors.New("failed to read markdown file")
	ErrInvalidOutput  = errors.New("invalid output mode")
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrPartialFailure = errors.New("some artifacts failed")
	ErrRunFailed      = errors.New("all artifacts failed")
)

func runTranslate(args []string) error {
	f, pos, err := parseTranslateFlags(args)
	if err != nil {
		return err
	}
	if len(pos) == 0 {
		printTranslateUsage(os.Stderr)
		return ErrNoInput
	}
	inputPath := pos[0]

	cfg := config.DefaultConfig()
	if f.common.config != "" {
		cfg, err = config.LoadConfig(f.common.config)
		if err != nil {
			return err
		}
	}
	mergeFlags(cfg, f)

	log := newLogger(f.common.quiet, f.common.verbose)

	creds, err := config.LoadCredentials()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(inputPath) // #nosec G304 -- input path is user-provided
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrReadMarkdown, inputPath, err)
	}

	outputs, err := resolveOutputs(cfg)
	if err != nil {
		return err
	}

	opts := []mdtranslate.Option{mdtranslate.WithLogger(log)}
	if f.workers > 0 {
		opts = append(opts, mdtranslate.WithConcurrency(f.workers))
	}
	if f.timeout != "" {
		d, err := time.ParseDuration(f.timeout)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTimeout, f.timeout)
		}
		opts = append(opts, mdtranslate.WithTimeout(d))
	}

	if len(cfg.Languages) > 0 {
		translator, err := mdtranslate.NewTranslator(cfg.Provider, mdtranslate.ProviderCredentials{
			DeepLKey:    creds.DeepLKey,
			AzureKey:    creds.AzureKey,
			AzureRegion: creds.AzureRegion,
		}, log)
		if err != nil {
			return err
		}
		opts = append(opts, mdtranslate.WithTranslator(translator))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if outputs.Cloud {
		cloud, err := mdtranslate.NewGDocsRenderer(ctx, mdtranslate.GoogleConfig{
			CredentialsFile: firstNonEmpty(creds.CredentialsFile, cfg.Cloud.CredentialsFile),
			TokenFile:       firstNonEmpty(creds.TokenFile, cfg.Cloud.TokenFile),
			FolderID:        firstNonEmpty(creds.FolderID, cfg.Cloud.FolderID),
		}, log)
		if err != nil {
			return err
		}
		opts = append(opts, mdtranslate.WithCloudRenderer(cloud))
	}

	svc := mdtranslate.NewService(opts...)
	report, err := svc.Run(ctx, mdtranslate.Input{
		Markdown:      string(data),
		Name:          strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)),
		Languages:     cfg.Languages,
		IncludeSource: cfg.Source.Include,
		SourceLang:    cfg.Source.Lang,
		HeaderImage:   cfg.Header.Image,
		OutDir:        cfg.Output.Dir,
		Outputs:       outputs,
	})
	if err != nil {
		return err
	}

	if !f.common.quiet {
		fmt.Print(report.Summary())
		printCloudLinks(report)
	}

	switch report.ExitCode() {
	case 0:
		return nil
	case 5:
		return ErrPartialFailure
	default:
		return ErrRunFailed
	}
}

// mergeFlags overlays explicit flag values onto the loaded config.
func mergeFlags(cfg *config.Config, f *translateFlags) {
	if len(f.langs) > 0 {
		cfg.Languages = f.langs
	}
	if f.provider != "" {
		cfg.Provider = f.provider
	}
	if f.output.dir != "" {
		cfg.Output.Dir = f.output.dir
	}
	if f.headerImage != "" {
		cfg.Header.Image = f.headerImage
	}
	if f.source.include {
		cfg.Source.Include = true
	}
	if f.source.lang != "" {
		cfg.Source.Lang = f.source.lang
	}
	if f.output.noDocx {
		cfg.Output.Docx = false
	}
	if f.output.noPDF {
		cfg.Output.PDF = false
	}
	switch f.output.mode {
	case "local":
		cfg.Output.Cloud = false
	case "cloud":
		cfg.Output.Cloud = true
		cfg.Output.Docx = false
		cfg.Output.PDF = false
	case "both":
		cfg.Output.Cloud = true
	}
}

// resolveOutputs maps config to the pipeline output set.
func resolveOutputs(cfg *config.Config) (mdtranslate.OutputSet, error) {
	out := mdtranslate.OutputSet{
		LocalDOCX: cfg.Output.Docx,
		LocalPDF:  cfg.Output.PDF,
		Cloud:     cfg.Output.Cloud,
	}
	if !out.Local() && !out.Cloud {
		return out, fmt.Errorf("%w: nothing to produce", ErrInvalidOutput)
	}
	return out, nil
}

// printCloudLinks lists published document URLs after the summary.
func printCloudLinks(report *mdtranslate.Report) {
	var links []string
	for _, e := range report.Entries() {
		if e.Artifact == mdtranslate.ArtifactCloud && e.Status == mdtranslate.StatusSuccess {
			links = append(links, fmt.Sprintf("  %s: %s", e.Lang, e.Path))
		}
	}
	if len(links) > 0 {
		fmt.Println("Published documents:")
		for _, l := range links {
			fmt.Println(l)
		}
	}
}

// newLogger builds the CLI console logger.
func newLogger(quiet, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if quiet {
		level = zerolog.ErrorLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
