package main

import (
	"fmt"
	"os"
	"testing"

	mdtranslate "github.com/alnah/go-mdtranslate"
	"github.com/alnah/go-mdtranslate/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"partial failure", ErrPartialFailure, ExitPartial},
		{"wrapped partial failure", fmt.Errorf("run: %w", ErrPartialFailure), ExitPartial},
		{"all failed", ErrRunFailed, ExitGeneral},
		{"missing input", ErrNoInput, ExitIO},
		{"unreadable markdown", fmt.Errorf("%w: x.md", ErrReadMarkdown), ExitIO},
		{"file not found", os.ErrNotExist, ExitIO},
		{"unknown command", ErrUnknownCommand, ExitUsage},
		{"bad output mode", ErrInvalidOutput, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"empty markdown", mdtranslate.ErrEmptyMarkdown, ExitUsage},
		{"unknown language", mdtranslate.ErrUnknownLanguage, ExitUsage},
		{"no providers", mdtranslate.ErrNoProviders, ExitUsage},
		{"segmentation failure", fmt.Errorf("%w: fence", mdtranslate.ErrSegmentation), ExitUsage},
		{"cloud auth", mdtranslate.ErrCloudAuth, ExitUsage},
		{"unexpected error", fmt.Errorf("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
