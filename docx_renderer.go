package mdtranslate

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
)

// Half-point font sizes for document elements.
const (
	titleSize = "40" // 20pt
	bodySize  = "24" // 12pt
	codeSize  = "20" // 10pt
)

// headingSizes maps heading level to half-point size, clamped at the deepest.
var headingSizes = [...]string{"36", "32", "28", "26", "24", "24"}

const codeShadeFill = "E7E7E7"
const quoteColor = "666666"

// DocxRenderer writes a render job as a DOCX document. Styling follows an
// academic layout: serif body, sized bold headings, indented lists, shaded
// code lines. RTL languages get right alignment with mirrored list labels.
type DocxRenderer struct{}

// NewDocxRenderer creates the default local document writer.
func NewDocxRenderer() *DocxRenderer { return &DocxRenderer{} }

// Render produces the DOCX file contents for one translated document.
func (r *DocxRenderer) Render(job RenderJob) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	if job.HeaderImage != "" {
		if _, err := os.Stat(job.HeaderImage); err == nil {
			para := w.AddParagraph()
			para.Justification("center")
			if _, err := para.AddInlineDrawingFrom(job.HeaderImage); err != nil {
				return nil, fmt.Errorf("%w: header image: %v", ErrRender, err)
			}
		}
	}

	for _, b := range job.Blocks {
		if err := writeBlock(w, b, job.Target); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

func writeBlock(w *docx.Docx, b Block, target LanguageTarget) error {
	rtl := target.IsRTL()

	switch b.Kind {
	case BlockTitle:
		para := w.AddParagraph()
		para.Justification("center")
		for _, s := range b.Spans {
			styleRun(para.AddText(s.Text).Size(titleSize).Bold(), s, target)
		}

	case BlockHeading:
		para := w.AddParagraph()
		if rtl {
			para.Justification("end")
		}
		size := headingSizes[clampHeading(b.Level)-1]
		for _, s := range b.Spans {
			styleRun(para.AddText(s.Text).Size(size).Bold(), s, target)
		}

	case BlockBody, BlockBullet, BlockNumber, BlockAlpha:
		para := w.AddParagraph()
		prefix := ""
		if rtl {
			para.Justification("end")
		} else if b.Level > 0 {
			prefix = strings.Repeat("\t", b.Level)
		}
		if label := listLabel(b, rtl); label != "" && !rtl {
			prefix += label
		}
		if prefix != "" {
			para.AddText(prefix).Size(bodySize)
		}
		writeSpans(para, b.Spans, target)
		// RTL list labels trail the text so they sit on the visual left
		// of a right-aligned paragraph.
		if label := listLabel(b, rtl); label != "" && rtl {
			para.AddText(label).Size(bodySize)
		}

	case BlockQuote:
		para := w.AddParagraph()
		if rtl {
			para.Justification("end")
		} else {
			para.AddText("\t").Size(bodySize)
		}
		for _, s := range b.Spans {
			styleRun(para.AddText(s.Text).Size(bodySize).Italic().Color(quoteColor), s, target)
		}

	case BlockCode:
		for _, line := range b.Lines {
			para := w.AddParagraph()
			if line == "" {
				line = " "
			}
			para.AddText(line).Size(codeSize).
				Font(monospaceFont, "", monospaceFont, "").
				Shade("clear", "auto", codeShadeFill)
		}

	case BlockRule:
		para := w.AddParagraph()
		para.Justification("center")
		para.AddText(strings.Repeat("—", 12)).Color(quoteColor)

	case BlockTable:
		return writeTable(w, b, target)
	}
	return nil
}

// writeSpans emits one run per styled span; links become hyperlink runs.
func writeSpans(para *docx.Paragraph, spans []InlineSpan, target LanguageTarget) {
	for _, s := range spans {
		if s.LinkURL != "" {
			// Hyperlink runs take go-docx's link styling; bold or italic
			// on link text does not carry into the hyperlink run.
			para.AddLink(s.Text, s.LinkURL)
			continue
		}
		run := para.AddText(s.Text).Size(bodySize)
		if s.Bold {
			run = run.Bold()
		}
		if s.Italic {
			run = run.Italic()
		}
		if s.Code {
			run = run.Font(monospaceFont, "", monospaceFont, "").
				Shade("clear", "auto", codeShadeFill)
			continue
		}
		applyFont(run, target)
	}
}

// styleRun layers span styling onto an already-sized run.
func styleRun(run *docx.Run, s InlineSpan, target LanguageTarget) {
	if s.Bold {
		run = run.Bold()
	}
	if s.Italic {
		run = run.Italic()
	}
	applyFont(run, target)
}

// applyFont sets the language's body font. Chinese keeps a Latin serif for
// ASCII with a CJK east-Asian face; Arabic script uses its own face.
func applyFont(run *docx.Run, target LanguageTarget) {
	switch {
	case target.CJK:
		run.Font(defaultFont, cjkFont, defaultFont, "eastAsia")
	case target.IsRTL():
		run.Font(target.Font, "", target.Font, "")
	default:
		run.Font(target.Font, "", target.Font, "")
	}
}

// listLabel renders the marker for list-like blocks.
func listLabel(b Block, rtl bool) string {
	switch b.Kind {
	case BlockBullet:
		if rtl {
			return " •"
		}
		return "• "
	case BlockNumber:
		if rtl {
			return " ." + strconv.Itoa(b.Ordinal)
		}
		return strconv.Itoa(b.Ordinal) + ". "
	case BlockAlpha:
		if rtl {
			return " " + b.Label
		}
		return b.Label + " "
	}
	return ""
}

func writeTable(w *docx.Docx, b Block, target LanguageTarget) error {
	if len(b.Rows) == 0 {
		return nil
	}
	cols := 0
	for _, row := range b.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	tbl := w.AddTable(len(b.Rows), cols, 0, nil)
	for i, row := range b.Rows {
		for j, cell := range row {
			para := tbl.TableRows[i].TableCells[j].AddParagraph()
			if target.IsRTL() {
				para.Justification("end")
			}
			run := para.AddText(cell).Size(bodySize)
			if i == 0 {
				run = run.Bold()
			}
			applyFont(run, target)
		}
	}
	return nil
}

// clampHeading bounds a heading level to the styles we size.
func clampHeading(level int) int {
	if level < 1 {
		return 1
	}
	if level > len(headingSizes) {
		return len(headingSizes)
	}
	return level
}
