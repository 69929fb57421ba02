package mdtranslate

import (
	"strings"
	"unicode/utf16"

	"google.golang.org/api/docs/v1"
)

// Bullet presets for CreateParagraphBullets.
const (
	bulletPresetDisc    = "BULLET_DISC_CIRCLE_SQUARE"
	bulletPresetDecimal = "NUMBERED_DECIMAL_ALPHA_ROMAN"
)

// namedHeadingStyles maps heading level to the Docs named style, clamped at
// the deepest available style.
var namedHeadingStyles = [...]string{
	"HEADING_1", "HEADING_2", "HEADING_3", "HEADING_4", "HEADING_5", "HEADING_6",
}

// docRequestBuilder accumulates batchUpdate requests while tracking the
// insertion cursor. Docs API indexes count UTF-16 code units, not bytes.
type docRequestBuilder struct {
	reqs  []*docs.Request
	index int64
}

// buildDocRequests turns a render job's blocks into the batchUpdate request
// list that populates an empty document body. Pure function, no network.
func buildDocRequests(job RenderJob) []*docs.Request {
	b := &docRequestBuilder{index: 1}
	for _, block := range job.Blocks {
		b.block(block, job.Target)
	}
	return b.reqs
}

// u16len returns the string length in UTF-16 code units.
func u16len(s string) int64 {
	return int64(len(utf16.Encode([]rune(s))))
}

func (b *docRequestBuilder) insertParagraph(text string) (start, end int64) {
	start = b.index
	b.reqs = append(b.reqs, &docs.Request{
		InsertText: &docs.InsertTextRequest{
			Text:     text + "\n",
			Location: &docs.Location{Index: b.index},
		},
	})
	b.index += u16len(text) + 1
	return start, start + u16len(text)
}

func (b *docRequestBuilder) paragraphStyle(start, end int64, style *docs.ParagraphStyle, fields string) {
	b.reqs = append(b.reqs, &docs.Request{
		UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
			Range:          &docs.Range{StartIndex: start, EndIndex: end + 1},
			ParagraphStyle: style,
			Fields:         fields,
		},
	})
}

func (b *docRequestBuilder) textStyle(start, end int64, style *docs.TextStyle, fields string) {
	if end <= start {
		return
	}
	b.reqs = append(b.reqs, &docs.Request{
		UpdateTextStyle: &docs.UpdateTextStyleRequest{
			Range:     &docs.Range{StartIndex: start, EndIndex: end},
			TextStyle: style,
			Fields:    fields,
		},
	})
}

// rtlStyle returns the paragraph style fields for right-to-left scripts.
func rtlStyle() (*docs.ParagraphStyle, string) {
	return &docs.ParagraphStyle{
		Direction: "RIGHT_TO_LEFT",
		Alignment: "END",
	}, "direction,alignment"
}

func (b *docRequestBuilder) block(block Block, target LanguageTarget) {
	rtl := target.IsRTL()

	switch block.Kind {
	case BlockTitle:
		start, end := b.insertParagraph(block.PlainText())
		b.paragraphStyle(start, end, &docs.ParagraphStyle{NamedStyleType: "TITLE"}, "namedStyleType")
		if rtl {
			style, fields := rtlStyle()
			b.paragraphStyle(start, end, style, fields)
		}

	case BlockHeading:
		start, end := b.insertParagraph(block.PlainText())
		named := namedHeadingStyles[clampHeading(block.Level)-1]
		b.paragraphStyle(start, end, &docs.ParagraphStyle{NamedStyleType: named}, "namedStyleType")
		if rtl {
			style, fields := rtlStyle()
			b.paragraphStyle(start, end, style, fields)
		}

	case BlockBody:
		start, end := b.styledParagraph(block.Spans)
		if rtl {
			style, fields := rtlStyle()
			b.paragraphStyle(start, end, style, fields)
		}

	case BlockBullet, BlockNumber:
		// Leading tabs set the bullet nesting level; CreateParagraphBullets
		// consumes them.
		prefix := strings.Repeat("\t", block.Level)
		start, end := b.styledParagraphPrefixed(prefix, block.Spans)
		preset := bulletPresetDisc
		if block.Kind == BlockNumber {
			preset = bulletPresetDecimal
		}
		b.reqs = append(b.reqs, &docs.Request{
			CreateParagraphBullets: &docs.CreateParagraphBulletsRequest{
				Range:        &docs.Range{StartIndex: start, EndIndex: end + 1},
				BulletPreset: preset,
			},
		})
		if rtl {
			style, fields := rtlStyle()
			b.paragraphStyle(start, end, style, fields)
		}

	case BlockAlpha:
		spans := append([]InlineSpan{{Text: block.Label + " "}}, block.Spans...)
		start, end := b.styledParagraph(spans)
		if rtl {
			style, fields := rtlStyle()
			b.paragraphStyle(start, end, style, fields)
		}

	case BlockQuote:
		start, end := b.styledParagraph(block.Spans)
		b.paragraphStyle(start, end, &docs.ParagraphStyle{
			IndentStart: &docs.Dimension{Magnitude: 36, Unit: "PT"},
		}, "indentStart")
		b.textStyle(start, end, &docs.TextStyle{
			Italic: true,
			ForegroundColor: &docs.OptionalColor{Color: &docs.Color{
				RgbColor: &docs.RgbColor{Red: 0.4, Green: 0.4, Blue: 0.4},
			}},
		}, "italic,foregroundColor")
		if rtl {
			style, fields := rtlStyle()
			b.paragraphStyle(start, end, style, fields)
		}

	case BlockCode:
		for _, line := range block.Lines {
			start, end := b.insertParagraph(line)
			b.textStyle(start, end, &docs.TextStyle{
				WeightedFontFamily: &docs.WeightedFontFamily{FontFamily: monospaceFont},
				BackgroundColor: &docs.OptionalColor{Color: &docs.Color{
					RgbColor: &docs.RgbColor{Red: 0.93, Green: 0.93, Blue: 0.93},
				}},
			}, "weightedFontFamily,backgroundColor")
		}

	case BlockRule:
		start, end := b.insertParagraph(strings.Repeat("—", 12))
		b.paragraphStyle(start, end, &docs.ParagraphStyle{Alignment: "CENTER"}, "alignment")

	case BlockTable:
		// The Docs API has no cheap table construction; rows degrade to
		// pipe-separated text lines.
		for i, row := range block.Rows {
			start, end := b.insertParagraph(strings.Join(row, " | "))
			if i == 0 {
				b.textStyle(start, end, &docs.TextStyle{Bold: true}, "bold")
			}
			if rtl {
				style, fields := rtlStyle()
				b.paragraphStyle(start, end, style, fields)
			}
		}
	}
}

// styledParagraph inserts the spans as one paragraph and layers inline
// styling over each span's range.
func (b *docRequestBuilder) styledParagraph(spans []InlineSpan) (start, end int64) {
	return b.styledParagraphPrefixed("", spans)
}

func (b *docRequestBuilder) styledParagraphPrefixed(prefix string, spans []InlineSpan) (start, end int64) {
	var sb strings.Builder
	sb.WriteString(prefix)
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	start, end = b.insertParagraph(sb.String())

	cursor := start + u16len(prefix)
	for _, s := range spans {
		next := cursor + u16len(s.Text)
		style, fields := spanStyleRequest(s)
		if fields != "" {
			b.textStyle(cursor, next, style, fields)
		}
		cursor = next
	}
	return start, end
}

// spanStyleRequest maps an inline span to a Docs text style and field mask.
func spanStyleRequest(s InlineSpan) (*docs.TextStyle, string) {
	style := &docs.TextStyle{}
	var fields []string
	if s.Bold {
		style.Bold = true
		fields = append(fields, "bold")
	}
	if s.Italic {
		style.Italic = true
		fields = append(fields, "italic")
	}
	if s.Code {
		style.WeightedFontFamily = &docs.WeightedFontFamily{FontFamily: monospaceFont}
		fields = append(fields, "weightedFontFamily")
	}
	if s.LinkURL != "" {
		style.Link = &docs.Link{Url: s.LinkURL}
		fields = append(fields, "link")
	}
	return style, strings.Join(fields, ",")
}
