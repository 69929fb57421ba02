package main

import (
	"testing"

	"github.com/alnah/go-mdtranslate/internal/config"
)

func TestParseTranslateFlags(t *testing.T) {
	f, pos, err := parseTranslateFlags([]string{
		"notes.md",
		"--langs", "en,fr,ar",
		"--provider", "deepl",
		"--output", "both",
		"--out-dir", "out",
		"--include-source",
		"--header-image", "banner.png",
		"-w", "2",
		"-v",
	})
	if err != nil {
		t.Fatalf("parseTranslateFlags() error = %v", err)
	}
	if len(pos) != 1 || pos[0] != "notes.md" {
		t.Errorf("positional args = %v", pos)
	}
	if len(f.langs) != 3 || f.langs[2] != "ar" {
		t.Errorf("langs = %v", f.langs)
	}
	if f.provider != "deepl" || f.output.mode != "both" || f.output.dir != "out" {
		t.Errorf("flags = %+v", f)
	}
	if !f.source.include || f.headerImage != "banner.png" || f.workers != 2 || !f.common.verbose {
		t.Errorf("flags = %+v", f)
	}
}

func TestMergeFlagsOutputModes(t *testing.T) {
	tests := []struct {
		mode      string
		wantCloud bool
		wantDocx  bool
	}{
		{"local", false, true},
		{"cloud", true, false},
		{"both", true, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run("mode "+tt.mode, func(t *testing.T) {
			cfg := config.DefaultConfig()
			mergeFlags(cfg, &translateFlags{output: outputFlags{mode: tt.mode}})
			if cfg.Output.Cloud != tt.wantCloud || cfg.Output.Docx != tt.wantDocx {
				t.Errorf("mode %q: cloud=%v docx=%v, want cloud=%v docx=%v",
					tt.mode, cfg.Output.Cloud, cfg.Output.Docx, tt.wantCloud, tt.wantDocx)
			}
		})
	}
}

func TestMergeFlagsOverridesConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Languages = []string{"de"}
	cfg.Provider = "azure"

	mergeFlags(cfg, &translateFlags{
		langs:    []string{"fr", "ar"},
		provider: "deepl",
		output:   outputFlags{dir: "elsewhere", noPDF: true},
	})

	if len(cfg.Languages) != 2 || cfg.Languages[0] != "fr" {
		t.Errorf("languages = %v", cfg.Languages)
	}
	if cfg.Provider != "deepl" || cfg.Output.Dir != "elsewhere" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Output.PDF {
		t.Error("--no-pdf should disable PDF output")
	}
}
