package main

import (
	"fmt"
	"io"

	mdtranslate "github.com/alnah/go-mdtranslate"
)

// runLanguages prints the supported target languages.
func runLanguages(w io.Writer) error {
	fmt.Fprintln(w, "Supported languages:")
	for _, code := range mdtranslate.KnownLanguageCodes() {
		target, err := mdtranslate.ResolveTarget(code)
		if err != nil {
			return err
		}
		dir := ""
		if target.IsRTL() {
			dir = " (right-to-left)"
		}
		fmt.Fprintf(w, "  %-6s %s%s\n", target.Code, target.Name, dir)
	}
	return nil
}
