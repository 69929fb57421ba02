// Package mdtranslate translates Markdown documents into multiple languages
// and renders each translation as a styled document.
//
// # Quick Start
//
// Build a service with a translator and run the pipeline:
//
//	translator, err := mdtranslate.NewTranslator(mdtranslate.ProviderAuto,
//	    mdtranslate.ProviderCredentials{DeepLKey: os.Getenv("DEEPL_API_KEY")},
//	    zerolog.Nop())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	svc := mdtranslate.NewService(mdtranslate.WithTranslator(translator))
//	report, err := svc.Run(ctx, mdtranslate.Input{
//	    Markdown:  content,
//	    Name:      "notes",
//	    Languages: []string{"en", "fr", "ar"},
//	    OutDir:    "translated",
//	    Outputs:   mdtranslate.OutputSet{LocalDOCX: true, LocalPDF: true},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(report.Summary())
//
// # Pipeline
//
// Each run follows these stages:
//
//  1. Segmentation: the source Markdown is split into literal spans
//     (syntax markers, code, URLs) and translatable spans (prose).
//  2. Translation: translatable spans go to a provider (DeepL or Azure
//     Translator) in order-preserving batches, with retry and fallback.
//  3. Reassembly: translated spans are spliced back between the untouched
//     literal spans, yielding valid Markdown per language.
//  4. Rendering: each translated document is written as Markdown, DOCX
//     (fumiama/go-docx), PDF (LibreOffice, when installed), and optionally
//     published to Google Docs.
//
// Languages are processed in parallel and independently: one language
// failing never stops the others. Per-artifact outcomes are collected in a
// Report.
//
// # Right-to-left scripts
//
// Arabic output is right-aligned with mirrored list labels in DOCX, and uses
// the native RIGHT_TO_LEFT paragraph direction in Google Docs.
//
// # External tools
//
// PDF conversion shells out to LibreOffice (soffice). When the binary is not
// on PATH, PDF artifacts are reported as skipped rather than failed.
package mdtranslate
