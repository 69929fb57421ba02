package mdtranslate

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ArtifactStatus is the outcome of producing one artifact.
type ArtifactStatus string

const (
	StatusSuccess ArtifactStatus = "success"
	StatusFailed  ArtifactStatus = "failed"
	StatusSkipped ArtifactStatus = "skipped"
)

// Artifact names the kind of output a report entry refers to.
type Artifact string

const (
	ArtifactMarkdown Artifact = "markdown"
	ArtifactDOCX     Artifact = "docx"
	ArtifactPDF      Artifact = "pdf"
	ArtifactCloud    Artifact = "cloud"
)

// ReportEntry records the outcome of one artifact for one language.
type ReportEntry struct {
	Lang     string
	Artifact Artifact
	Status   ArtifactStatus
	Path     string // local path or cloud document URL, when produced
	Provider string // translation provider that served this language
	Fallback bool   // true when a fallback provider served it
	Reason   string // failure or skip explanation
}

// Report collects per-language, per-artifact outcomes for a pipeline run.
// Appends are safe for concurrent use.
type Report struct {
	mu      sync.Mutex
	entries []ReportEntry
}

func (r *Report) add(e ReportEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

// Entries returns the recorded outcomes sorted by language, then artifact.
func (r *Report) Entries() []ReportEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ReportEntry, len(r.entries))
	copy(out, r.entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Lang != out[j].Lang {
			return out[i].Lang < out[j].Lang
		}
		return out[i].Artifact < out[j].Artifact
	})
	return out
}

// AllFailed reports whether no artifact succeeded at all.
func (r *Report) AllFailed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.Status == StatusSuccess {
			return false
		}
	}
	return len(r.entries) > 0
}

// HasFailures reports whether any artifact failed.
func (r *Report) HasFailures() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.Status == StatusFailed {
			return true
		}
	}
	return false
}

// ExitCode maps the run outcome to a process exit code: 0 when everything
// succeeded, 1 when nothing did, 5 when some artifacts failed.
func (r *Report) ExitCode() int {
	switch {
	case r.AllFailed():
		return 1
	case r.HasFailures():
		return 5
	default:
		return 0
	}
}

// Summary renders a human-readable table of outcomes, one line per entry.
func (r *Report) Summary() string {
	var sb strings.Builder
	for _, e := range r.Entries() {
		fmt.Fprintf(&sb, "%-6s %-8s %-8s", e.Lang, e.Artifact, e.Status)
		switch {
		case e.Status == StatusSuccess && e.Path != "":
			sb.WriteString(" " + e.Path)
		case e.Reason != "":
			sb.WriteString(" " + e.Reason)
		}
		if e.Fallback {
			sb.WriteString(" (fallback: " + e.Provider + ")")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
