package mdtranslate

import (
	"fmt"
	"regexp"
	"strings"
)

// SegmentKind classifies a segment as pass-through syntax or translatable text.
type SegmentKind int

const (
	// SegmentLiteral is syntax or markup passed through unchanged: code
	// fences, inline code, markers, URLs, structural whitespace.
	SegmentLiteral SegmentKind = iota
	// SegmentTranslatable is a run of natural-language text sent to a
	// translation provider.
	SegmentTranslatable
)

// Segment is a contiguous unit of the source document. Translatable segments
// carry a stable position index, unique and monotonically increasing within
// the document; literal segments have Index -1.
type Segment struct {
	Kind  SegmentKind
	Text  string
	Index int
}

// SegmentedDocument is the ordered segmentation of one Markdown document.
// Concatenating all segments in order reconstructs the original text
// byte-for-byte. One instance is re-walked, never re-parsed, for each target
// language, so segmentation is identical across languages.
type SegmentedDocument struct {
	segments []Segment
	count    int
}

// Segments returns the ordered segments.
func (d *SegmentedDocument) Segments() []Segment { return d.segments }

// Count returns the number of translatable segments.
func (d *SegmentedDocument) Count() int { return d.count }

// Texts returns the translatable texts in position-index order.
func (d *SegmentedDocument) Texts() []string {
	texts := make([]string, 0, d.count)
	for _, seg := range d.segments {
		if seg.Kind == SegmentTranslatable {
			texts = append(texts, seg.Text)
		}
	}
	return texts
}

// Reassemble substitutes translated text at each recorded position, leaving
// every literal segment untouched. A missing position index is an
// ErrReassembly: the provider returned fewer segments than were sent.
func (d *SegmentedDocument) Reassemble(translations map[int]string) (string, error) {
	var b strings.Builder
	for _, seg := range d.segments {
		if seg.Kind == SegmentLiteral {
			b.WriteString(seg.Text)
			continue
		}
		translated, ok := translations[seg.Index]
		if !ok {
			return "", fmt.Errorf("%w: missing translation for segment %d", ErrReassembly, seg.Index)
		}
		b.WriteString(translated)
	}
	return b.String(), nil
}

// Line classification patterns, applied in order. Mirrors the structural
// vocabulary of the rendered output: headings, list items, quotes, tables.
var (
	fenceRe      = regexp.MustCompile("^[ \t]{0,3}(```+|~~~+)")
	hrRe         = regexp.MustCompile(`^[ \t]*(-{3,}|\*{3,}|_{3,})[ \t]*$`)
	headingRe    = regexp.MustCompile(`^(#{1,6}[ \t]+)(.*)$`)
	bulletRe     = regexp.MustCompile(`^([ \t]*[-*+][ \t]+)(.*)$`)
	numberRe     = regexp.MustCompile(`^([ \t]*\d+[.)][ \t]+)(.*)$`)
	alphaRe      = regexp.MustCompile(`^([ \t]*[A-Za-z][.)][ \t]+)(.*)$`)
	blockquoteRe = regexp.MustCompile(`^([ \t]*>[ \t]?)(.*)$`)
	tableRowRe   = regexp.MustCompile(`^[ \t]*\|.*\|[ \t]*$`)
	tableSepRe   = regexp.MustCompile(`^[ \t]*\|[ \t\-:|]+\|[ \t]*$`)
)

// Inline syntax inside a translatable span. Alternation order matters:
// code spans and bold before italic, images before links.
var inlineRe = regexp.MustCompile(
	"(`[^`]+`)" + // 1: code span, fully literal
		`|(\*\*\*)(.+?)(\*\*\*)` + // 2,3,4: bold italic
		`|(\*\*)(.+?)(\*\*)` + // 5,6,7: bold
		`|(\*)([^*]+)(\*)` + // 8,9,10: italic
		`|(!\[)([^\]]*)(\]\([^)]*\))` + // 11,12,13: image
		`|(\[)([^\]]*)(\]\([^)]*\))`, // 14,15,16: link, text may be empty
)

// segmenter accumulates segments while scanning the document.
type segmenter struct {
	segments []Segment
	next     int
}

func (s *segmenter) literal(text string) {
	if text == "" {
		return
	}
	// Merge adjacent literals to keep the segment list compact.
	if n := len(s.segments); n > 0 && s.segments[n-1].Kind == SegmentLiteral {
		s.segments[n-1].Text += text
		return
	}
	s.segments = append(s.segments, Segment{Kind: SegmentLiteral, Text: text, Index: -1})
}

func (s *segmenter) translatable(text string) {
	s.segments = append(s.segments, Segment{Kind: SegmentTranslatable, Text: text, Index: s.next})
	s.next++
}

// SegmentMarkdown splits a Markdown document into an ordered sequence of
// literal and translatable segments. The document is rejected with a
// segmentation error before any translation call when it is malformed
// (unterminated code fence, unbalanced link brackets).
func SegmentMarkdown(text string) (*SegmentedDocument, error) {
	if text == "" {
		return nil, ErrEmptyMarkdown
	}

	s := &segmenter{}
	inFence := false
	fenceMarker := ""

	for _, line := range splitKeepEndings(text) {
		body, ending := splitLineEnding(line)

		if inFence {
			s.literal(line)
			if m := fenceRe.FindStringSubmatch(body); m != nil && strings.HasPrefix(m[1], fenceMarker) {
				inFence = false
			}
			continue
		}
		if m := fenceRe.FindStringSubmatch(body); m != nil {
			inFence = true
			fenceMarker = m[1][:3]
			s.literal(line)
			continue
		}

		if strings.TrimSpace(body) == "" || hrRe.MatchString(body) || tableSepRe.MatchString(body) {
			s.literal(line)
			continue
		}

		switch {
		case headingRe.MatchString(body):
			m := headingRe.FindStringSubmatch(body)
			s.literal(m[1])
			if err := s.inlineSpan(m[2]); err != nil {
				return nil, err
			}
		case bulletRe.MatchString(body):
			m := bulletRe.FindStringSubmatch(body)
			s.literal(m[1])
			if err := s.inlineSpan(m[2]); err != nil {
				return nil, err
			}
		case numberRe.MatchString(body):
			m := numberRe.FindStringSubmatch(body)
			s.literal(m[1])
			if err := s.inlineSpan(m[2]); err != nil {
				return nil, err
			}
		case alphaRe.MatchString(body):
			m := alphaRe.FindStringSubmatch(body)
			s.literal(m[1])
			if err := s.inlineSpan(m[2]); err != nil {
				return nil, err
			}
		case blockquoteRe.MatchString(body):
			m := blockquoteRe.FindStringSubmatch(body)
			s.literal(m[1])
			if err := s.inlineSpan(m[2]); err != nil {
				return nil, err
			}
		case tableRowRe.MatchString(body):
			if err := s.tableRow(body); err != nil {
				return nil, err
			}
		default:
			if err := s.inlineSpan(body); err != nil {
				return nil, err
			}
		}
		s.literal(ending)
	}

	if inFence {
		return nil, fmt.Errorf("%w: %w", ErrSegmentation, ErrUnterminatedFence)
	}

	return &SegmentedDocument{segments: s.segments, count: s.next}, nil
}

// inlineSpan segments one run of text: syntax markers and code spans become
// literals, human-readable text becomes translatable segments.
func (s *segmenter) inlineSpan(text string) error {
	rest := text
	for rest != "" {
		loc := inlineRe.FindStringSubmatchIndex(rest)
		if loc == nil {
			return s.plainText(rest)
		}
		if err := s.plainText(rest[:loc[0]]); err != nil {
			return err
		}

		m := rest[loc[0]:loc[1]]
		groups := inlineRe.FindStringSubmatch(rest)
		switch {
		case groups[1] != "": // code span
			s.literal(m)
		case groups[2] != "": // bold italic
			s.literal(groups[2])
			s.translatable(groups[3])
			s.literal(groups[4])
		case groups[5] != "": // bold
			s.literal(groups[5])
			s.translatable(groups[6])
			s.literal(groups[7])
		case groups[8] != "": // italic
			s.literal(groups[8])
			s.translatable(groups[9])
			s.literal(groups[10])
		case groups[11] != "": // image: alt translatable, URL literal
			s.literal(groups[11])
			if groups[12] != "" {
				s.translatable(groups[12])
			}
			s.literal(groups[13])
		default: // link: text translatable, URL literal
			s.literal(groups[14])
			if groups[15] != "" {
				s.translatable(groups[15])
			}
			s.literal(groups[16])
		}
		rest = rest[loc[1]:]
	}
	return nil
}

// plainText emits text that matched no inline syntax. Whitespace-only runs
// stay literal; anything that still looks like half a link is rejected.
func (s *segmenter) plainText(text string) error {
	if text == "" {
		return nil
	}
	if strings.Contains(text, "](") {
		return fmt.Errorf("%w: %w near %q", ErrSegmentation, ErrUnbalancedBrackets, truncate(text, 40))
	}
	if strings.TrimSpace(text) == "" {
		s.literal(text)
		return nil
	}
	s.translatable(text)
	return nil
}

// tableRow segments a pipe-delimited row: pipes and cell padding are literal,
// cell text is translatable.
func (s *segmenter) tableRow(line string) error {
	rest := line
	for {
		pipe := strings.IndexByte(rest, '|')
		if pipe < 0 {
			break
		}
		s.literal(rest[:pipe+1])
		rest = rest[pipe+1:]

		next := strings.IndexByte(rest, '|')
		if next < 0 {
			break
		}
		cell := rest[:next]
		trimmed := strings.TrimSpace(cell)
		if trimmed == "" {
			s.literal(cell)
		} else {
			lead := cell[:strings.Index(cell, trimmed)]
			trail := cell[len(lead)+len(trimmed):]
			s.literal(lead)
			if err := s.inlineSpan(trimmed); err != nil {
				return err
			}
			s.literal(trail)
		}
		rest = rest[next:]
	}
	s.literal(rest)
	return nil
}

// splitKeepEndings splits text into lines, each retaining its terminator.
func splitKeepEndings(text string) []string {
	var lines []string
	for len(text) > 0 {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i+1])
		text = text[i+1:]
	}
	return lines
}

// splitLineEnding separates a line's content from its terminator.
func splitLineEnding(line string) (body, ending string) {
	if strings.HasSuffix(line, "\r\n") {
		return line[:len(line)-2], "\r\n"
	}
	if strings.HasSuffix(line, "\n") {
		return line[:len(line)-1], "\n"
	}
	return line, ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
