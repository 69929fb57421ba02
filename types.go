package mdtranslate

import "context"

// Input describes one pipeline run: a Markdown document and the set of
// target languages and outputs to produce from it.
type Input struct {
	Markdown      string   // source document content
	Name          string   // base name for output files, e.g. the source file stem
	Languages     []string // target language codes, e.g. "fr", "ar", "zh"
	IncludeSource bool     // also render the untranslated source document
	SourceLang    string   // language code of the source, used when IncludeSource is set
	HeaderImage   string   // optional path to a banner image placed in the page header
	OutDir        string   // root directory for local outputs
	Outputs       OutputSet
}

// OutputSet selects which artifacts the pipeline produces per language.
// The translated Markdown file is always written when local output is on.
type OutputSet struct {
	LocalDOCX bool
	LocalPDF  bool
	Cloud     bool
}

// Local reports whether any local artifact is requested.
func (o OutputSet) Local() bool { return o.LocalDOCX || o.LocalPDF }

// RenderJob is the unit of work handed to renderers: one translated
// document, parsed into blocks, with its language and styling inputs.
type RenderJob struct {
	Name        string
	Title       string
	Blocks      []Block
	Target      LanguageTarget
	HeaderImage string
}

// LocalRenderer produces a styled document file from a render job.
type LocalRenderer interface {
	Render(job RenderJob) ([]byte, error)
}

// PDFConverter converts a local document file to PDF. Available reports
// whether the underlying converter binary exists; when it does not, PDF
// output is skipped rather than failed.
type PDFConverter interface {
	Available() bool
	Convert(ctx context.Context, docPath, outDir string) (string, error)
}

// CloudRenderer publishes a render job to a cloud document service and
// returns the resulting document URL.
type CloudRenderer interface {
	Publish(ctx context.Context, job RenderJob) (string, error)
}
