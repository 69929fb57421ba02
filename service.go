package mdtranslate

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-mdtranslate/internal/fileutil"
)

// defaultConcurrency bounds how many languages are processed at once.
const defaultConcurrency = 4

// Service runs the translation pipeline: segment once, then per language
// translate, reassemble, and render the requested artifacts. Stages are
// injected so callers can swap providers and renderers.
type Service struct {
	translator  Translator
	local       LocalRenderer
	pdf         PDFConverter
	cloud       CloudRenderer
	log         zerolog.Logger
	concurrency int
	timeout     time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithTranslator sets the translation backend.
func WithTranslator(t Translator) Option {
	return func(s *Service) { s.translator = t }
}

// WithLocalRenderer sets the local document writer.
func WithLocalRenderer(r LocalRenderer) Option {
	return func(s *Service) { s.local = r }
}

// WithPDFConverter sets the document-to-PDF converter.
func WithPDFConverter(c PDFConverter) Option {
	return func(s *Service) { s.pdf = c }
}

// WithCloudRenderer sets the cloud document publisher.
func WithCloudRenderer(r CloudRenderer) Option {
	return func(s *Service) { s.cloud = r }
}

// WithLogger sets the service logger. The default logger is disabled.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithConcurrency bounds how many languages run in parallel.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithTimeout bounds the whole run. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// NewService creates a pipeline service. Without options it renders local
// documents only; translation and cloud publishing need explicit wiring.
func NewService(opts ...Option) *Service {
	s := &Service{
		local:       NewDocxRenderer(),
		pdf:         NewSofficeConverter(),
		log:         zerolog.Nop(),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the pipeline for every requested language. A failure in one
// language never aborts the others; per-artifact outcomes land in the Report.
// The returned error covers only whole-run problems (bad input, missing
// wiring), not per-language failures.
func (s *Service) Run(ctx context.Context, in Input) (*Report, error) {
	if in.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}
	resolved, err := ResolveTargets(in.Languages)
	if err != nil {
		return nil, err
	}
	targets := make([]resolvedTarget, 0, len(resolved)+1)
	for _, rt := range resolved {
		targets = append(targets, resolvedTarget{LanguageTarget: rt})
	}
	if in.IncludeSource {
		src := in.SourceLang
		if src == "" {
			src = "es"
		}
		srcTarget, err := ResolveTarget(src)
		if err != nil {
			return nil, err
		}
		targets = append([]resolvedTarget{{LanguageTarget: srcTarget, passthrough: true}}, targets...)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: no target languages", ErrUnknownLanguage)
	}

	needsTranslation := false
	for _, t := range targets {
		if !t.passthrough {
			needsTranslation = true
		}
	}
	if needsTranslation && s.translator == nil {
		return nil, fmt.Errorf("%w: no translator configured", ErrNoProviders)
	}
	if in.Outputs.Cloud && s.cloud == nil {
		return nil, fmt.Errorf("%w: cloud renderer not configured", ErrCloudAuth)
	}

	// Segmentation runs once, before any network call, so malformed input
	// fails the run without spending provider quota.
	seg, err := SegmentMarkdown(in.Markdown)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("segments", seg.Count()).Int("translatable", len(seg.Texts())).
		Int("languages", len(targets)).Msg("starting pipeline")

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	report := &Report{}
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup
	for _, t := range targets {
		wg.Add(1)
		go func(t resolvedTarget) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			s.runLanguage(ctx, in, seg, t, report)
		}(t)
	}
	wg.Wait()

	return report, nil
}

// resolvedTarget pairs a language with whether it skips translation.
type resolvedTarget struct {
	LanguageTarget
	passthrough bool
}

// failAll records a failure for every requested artifact of one language.
func (s *Service) failAll(report *Report, in Input, code, provider, reason string) {
	entry := func(a Artifact) ReportEntry {
		return ReportEntry{Lang: code, Artifact: a, Status: StatusFailed, Provider: provider, Reason: reason}
	}
	if in.Outputs.Local() {
		report.add(entry(ArtifactMarkdown))
	}
	if in.Outputs.LocalDOCX {
		report.add(entry(ArtifactDOCX))
	}
	if in.Outputs.LocalPDF {
		report.add(entry(ArtifactPDF))
	}
	if in.Outputs.Cloud {
		report.add(entry(ArtifactCloud))
	}
}

func (s *Service) runLanguage(ctx context.Context, in Input, seg *SegmentedDocument, t resolvedTarget, report *Report) {
	log := s.log.With().Str("lang", t.Code).Logger()

	markdown := in.Markdown
	provider := ""
	fallback := false
	if !t.passthrough {
		result, err := s.translator.Translate(ctx, seg.Texts(), t.LanguageTarget)
		if err != nil {
			log.Error().Err(err).Msg("translation failed")
			s.failAll(report, in, t.Code, "", err.Error())
			return
		}
		provider = result.Provider
		fallback = result.Fallback
		markdown, err = seg.Reassemble(result.Translations)
		if err != nil {
			log.Error().Err(err).Msg("reassembly failed")
			s.failAll(report, in, t.Code, provider, err.Error())
			return
		}
		log.Info().Str("provider", provider).Bool("fallback", fallback).Msg("translated")
	}

	langDir := filepath.Join(in.OutDir, t.Code)
	if in.Outputs.Local() {
		mdPath := filepath.Join(langDir, t.Code+".md")
		if err := fileutil.WriteFile(mdPath, []byte(markdown)); err != nil {
			log.Error().Err(err).Msg("write markdown failed")
			s.failAll(report, in, t.Code, provider, err.Error())
			return
		}
		report.add(ReportEntry{Lang: t.Code, Artifact: ArtifactMarkdown, Status: StatusSuccess,
			Path: mdPath, Provider: provider, Fallback: fallback})
	}

	needsBlocks := in.Outputs.LocalDOCX || in.Outputs.LocalPDF || in.Outputs.Cloud
	if !needsBlocks {
		return
	}
	blocks, err := ParseBlocks(markdown)
	if err != nil {
		log.Error().Err(err).Msg("block parsing failed")
		reason := err.Error()
		if in.Outputs.LocalDOCX {
			report.add(ReportEntry{Lang: t.Code, Artifact: ArtifactDOCX, Status: StatusFailed, Provider: provider, Reason: reason})
		}
		if in.Outputs.LocalPDF {
			report.add(ReportEntry{Lang: t.Code, Artifact: ArtifactPDF, Status: StatusFailed, Provider: provider, Reason: reason})
		}
		if in.Outputs.Cloud {
			report.add(ReportEntry{Lang: t.Code, Artifact: ArtifactCloud, Status: StatusFailed, Provider: provider, Reason: reason})
		}
		return
	}
	job := RenderJob{
		Name:        in.Name,
		Title:       documentTitle(blocks, in.Name),
		Blocks:      blocks,
		Target:      t.LanguageTarget,
		HeaderImage: in.HeaderImage,
	}

	docxPath := ""
	if in.Outputs.LocalDOCX || in.Outputs.LocalPDF {
		data, err := s.local.Render(job)
		if err == nil {
			docxPath = filepath.Join(langDir, t.Code+".docx")
			err = fileutil.WriteFile(docxPath, data)
		}
		if err != nil {
			docxPath = ""
			log.Error().Err(err).Msg("document rendering failed")
			if in.Outputs.LocalDOCX {
				report.add(ReportEntry{Lang: t.Code, Artifact: ArtifactDOCX, Status: StatusFailed, Provider: provider, Reason: err.Error()})
			}
		} else if in.Outputs.LocalDOCX {
			report.add(ReportEntry{Lang: t.Code, Artifact: ArtifactDOCX, Status: StatusSuccess,
				Path: docxPath, Provider: provider, Fallback: fallback})
		}
	}

	if in.Outputs.LocalPDF {
		switch {
		case docxPath == "":
			report.add(ReportEntry{Lang: t.Code, Artifact: ArtifactPDF, Status: StatusFailed,
				Provider: provider, Reason: "local document unavailable"})
		case !s.pdf.Available():
			log.Warn().Msg("PDF converter not installed, skipping")
			report.add(ReportEntry{Lang: t.Code, Artifact: ArtifactPDF, Status: StatusSkipped,
				Provider: provider, Reason: "converter not installed"})
		default:
			pdfPath, err := s.pdf.Convert(ctx, docxPath, langDir)
			if err != nil {
				log.Error().Err(err).Msg("PDF conversion failed")
				report.add(ReportEntry{Lang: t.Code, Artifact: ArtifactPDF, Status: StatusFailed,
					Provider: provider, Reason: err.Error()})
			} else {
				report.add(ReportEntry{Lang: t.Code, Artifact: ArtifactPDF, Status: StatusSuccess,
					Path: pdfPath, Provider: provider, Fallback: fallback})
			}
		}
	}

	if in.Outputs.Cloud {
		url, err := s.cloud.Publish(ctx, job)
		if err != nil {
			log.Error().Err(err).Msg("cloud publishing failed")
			report.add(ReportEntry{Lang: t.Code, Artifact: ArtifactCloud, Status: StatusFailed,
				Provider: provider, Reason: err.Error()})
		} else {
			report.add(ReportEntry{Lang: t.Code, Artifact: ArtifactCloud, Status: StatusSuccess,
				Path: url, Provider: provider, Fallback: fallback})
		}
	}
}

// documentTitle picks the title block's text, or falls back to the base name.
func documentTitle(blocks []Block, fallback string) string {
	for _, b := range blocks {
		if b.Kind == BlockTitle {
			return b.PlainText()
		}
	}
	return fallback
}
