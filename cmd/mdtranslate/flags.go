package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// outputFlags holds artifact selection flags.
type outputFlags struct {
	mode   string // "local", "cloud", "both"
	dir    string
	noDocx bool
	noPDF  bool
}

// sourceFlags holds source passthrough flags.
type sourceFlags struct {
	include bool
	lang    string
}

// translateFlags holds all flags for the translate command.
type translateFlags struct {
	common      commonFlags
	langs       []string
	provider    string
	output      outputFlags
	source      sourceFlags
	headerImage string
	workers     int
	timeout     string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

// addOutputFlags adds artifact selection flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.mode, "output", "o", "", "output destination: local, cloud, both")
	fs.StringVar(&f.dir, "out-dir", "", "local output directory (default \"translated\")")
	fs.BoolVar(&f.noDocx, "no-docx", false, "skip DOCX output")
	fs.BoolVar(&f.noPDF, "no-pdf", false, "skip PDF conversion")
}

// addSourceFlags adds source passthrough flags to a FlagSet.
func addSourceFlags(fs *flag.FlagSet, f *sourceFlags) {
	fs.BoolVar(&f.include, "include-source", false, "also render the untranslated source")
	fs.StringVar(&f.lang, "source-lang", "", "source language code (default \"es\")")
}

// parseTranslateFlags parses translate command flags and returns positional args.
func parseTranslateFlags(args []string) (*translateFlags, []string, error) {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	f := &translateFlags{}

	fs.StringSliceVarP(&f.langs, "langs", "l", nil, "target language codes (e.g. en,fr,ar,zh)")
	fs.StringVarP(&f.provider, "provider", "p", "", "translation provider: auto, deepl, azure")
	fs.StringVar(&f.headerImage, "header-image", "", "banner image path or URL for document headers")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel languages (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "whole-run timeout (e.g. 5m)")

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addSourceFlags(fs, &f.source)

	fs.Usage = func() { printTranslateUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
