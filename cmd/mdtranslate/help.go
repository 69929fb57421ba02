package main

import (
	"fmt"
	"io"
)

func printUsage(w io.Writer) {
	fmt.Fprint(w, `mdtranslate translates Markdown documents and renders styled output.

Usage:
  mdtranslate translate <input.md> [flags]
  mdtranslate languages
  mdtranslate version
  mdtranslate help

Run 'mdtranslate translate --help' for translate flags.
`)
}

func printTranslateUsage(w io.Writer) {
	fmt.Fprint(w, `Translate a Markdown file and render each language as a document.

Usage:
  mdtranslate translate <input.md> [flags]

Flags:
  -l, --langs strings      target language codes (e.g. en,fr,ar,zh)
  -p, --provider string    translation provider: auto, deepl, azure
  -o, --output string      output destination: local, cloud, both
      --out-dir string     local output directory (default "translated")
      --no-docx            skip DOCX output
      --no-pdf             skip PDF conversion
      --include-source     also render the untranslated source
      --source-lang string source language code (default "es")
      --header-image string banner image path or URL for document headers
  -w, --workers int        parallel languages (0 = auto)
  -t, --timeout string     whole-run timeout (e.g. 5m)
  -c, --config string      config file name or path
  -q, --quiet              only show errors
  -v, --verbose            show detailed progress

Environment:
  DEEPL_API_KEY            DeepL API key (":fx" suffix selects the free host)
  AZURE_TRANSLATOR_KEY     Azure Translator key
  AZURE_TRANSLATOR_REGION  Azure resource region
  GOOGLE_CREDENTIALS_FILE  OAuth client secret (default secrets/credentials.json)
  GOOGLE_TOKEN_FILE        persisted OAuth token (default secrets/token.json)
  GDRIVE_FOLDER_ID         Drive parent folder for published documents

A .env file in the working directory is loaded when present.

Exit codes:
  0  everything succeeded
  1  nothing succeeded
  2  invalid usage or configuration
  3  input file unreadable
  5  some artifacts failed
`)
}
