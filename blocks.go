package mdtranslate

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// BlockKind identifies a structural element of the parsed document.
type BlockKind int

const (
	BlockTitle   BlockKind = iota // first level-1 heading
	BlockHeading                  // any other heading
	BlockBody                     // plain paragraph
	BlockBullet                   // unordered list item
	BlockNumber                   // ordered list item
	BlockAlpha                    // manual alphabetic item: "A)" / "b."
	BlockQuote                    // blockquote paragraph
	BlockCode                     // fenced or indented code block
	BlockTable                    // GFM table
	BlockRule                     // thematic break
)

// InlineSpan is a styled run of text within a block.
type InlineSpan struct {
	Text    string
	Bold    bool
	Italic  bool
	Code    bool
	LinkURL string
}

// Block is one structural element of a parsed Markdown document. Both the
// local DOCX writer and the cloud request builder consume this form, so the
// two renderers map the same structure.
type Block struct {
	Kind    BlockKind
	Level   int          // heading level, or list nesting depth (0-based)
	Ordinal int          // 1-based ordinal for numbered items
	Label   string       // manual label for alphabetic items, e.g. "A)"
	Spans   []InlineSpan // inline content
	Lines   []string     // code block lines, verbatim
	Rows    [][]string   // table rows; Rows[0] is the header
}

// PlainText flattens the block's spans to unstyled text.
func (b Block) PlainText() string {
	var sb strings.Builder
	for _, s := range b.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// blockMarkdown is the shared goldmark instance for block parsing. GFM
// enables tables and strikethrough.
var blockMarkdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ParseBlocks parses per-language Markdown into the renderer block model.
func ParseBlocks(markdown string) ([]Block, error) {
	if markdown == "" {
		return nil, ErrEmptyMarkdown
	}
	src := []byte(markdown)
	root := blockMarkdown.Parser().Parse(text.NewReader(src))

	p := &blockParser{src: src}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		p.block(n, 0)
	}
	return p.blocks, nil
}

type blockParser struct {
	src      []byte
	blocks   []Block
	sawTitle bool
}

func (p *blockParser) block(n ast.Node, depth int) {
	switch node := n.(type) {
	case *ast.Heading:
		b := Block{Kind: BlockHeading, Level: node.Level, Spans: p.inlines(node, spanStyle{})}
		if node.Level == 1 && !p.sawTitle {
			b.Kind = BlockTitle
			p.sawTitle = true
		}
		p.blocks = append(p.blocks, b)

	case *ast.Paragraph, *ast.TextBlock:
		spans := p.inlines(n, spanStyle{})
		p.blocks = append(p.blocks, classifyParagraph(spans, depth))

	case *ast.List:
		p.list(node, depth)

	case *ast.FencedCodeBlock:
		p.blocks = append(p.blocks, Block{Kind: BlockCode, Lines: p.blockLines(node)})

	case *ast.CodeBlock:
		p.blocks = append(p.blocks, Block{Kind: BlockCode, Lines: p.blockLines(node)})

	case *ast.Blockquote:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			spans := p.inlines(c, spanStyle{})
			if len(spans) > 0 {
				p.blocks = append(p.blocks, Block{Kind: BlockQuote, Spans: spans})
			}
		}

	case *ast.ThematicBreak:
		p.blocks = append(p.blocks, Block{Kind: BlockRule})

	case *extast.Table:
		p.blocks = append(p.blocks, p.table(node))

	default:
		// Unhandled block types (raw HTML, definitions) degrade to body text.
		spans := p.inlines(n, spanStyle{})
		if len(spans) > 0 {
			p.blocks = append(p.blocks, Block{Kind: BlockBody, Spans: spans})
		}
	}
}

// classifyParagraph spots manual alphabetic items ("A) text", "b. text")
// that Markdown parsers treat as plain paragraphs.
func classifyParagraph(spans []InlineSpan, depth int) Block {
	if len(spans) > 0 && !spans[0].Code {
		t := spans[0].Text
		if len(t) >= 3 && isASCIILetter(t[0]) && (t[1] == ')' || t[1] == '.') && t[2] == ' ' {
			label := t[:2]
			rest := strings.TrimLeft(t[2:], " ")
			trimmed := append([]InlineSpan{}, spans...)
			trimmed[0].Text = rest
			return Block{Kind: BlockAlpha, Label: label, Level: depth, Spans: trimmed}
		}
	}
	return Block{Kind: BlockBody, Level: depth, Spans: spans}
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func (p *blockParser) list(l *ast.List, depth int) {
	ordinal := 1
	if l.IsOrdered() && l.Start > 0 {
		ordinal = l.Start
	}
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		first := true
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch child := c.(type) {
			case *ast.List:
				p.list(child, depth+1)
			case *ast.TextBlock, *ast.Paragraph:
				spans := p.inlines(child, spanStyle{})
				if first {
					b := Block{Kind: BlockBullet, Level: depth, Spans: spans}
					if l.IsOrdered() {
						b.Kind = BlockNumber
						b.Ordinal = ordinal
					}
					p.blocks = append(p.blocks, b)
					first = false
				} else {
					// Continuation paragraph inside a list item keeps
					// the item's indent level.
					p.blocks = append(p.blocks, Block{Kind: BlockBody, Level: depth + 1, Spans: spans})
				}
			default:
				p.block(child, depth+1)
			}
		}
		if l.IsOrdered() {
			ordinal++
		}
	}
}

func (p *blockParser) table(t *extast.Table) Block {
	var rows [][]string
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		var cells []string
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, p.flatText(c))
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return Block{Kind: BlockTable, Rows: rows}
}

func (p *blockParser) blockLines(n ast.Node) []string {
	lines := n.Lines()
	out := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		out = append(out, strings.TrimRight(string(seg.Value(p.src)), "\n"))
	}
	return out
}

// spanStyle tracks inherited inline styling while walking nested inlines.
type spanStyle struct {
	bold    bool
	italic  bool
	code    bool
	linkURL string
}

// inlines flattens a node's inline children into styled spans.
func (p *blockParser) inlines(n ast.Node, style spanStyle) []InlineSpan {
	var spans []InlineSpan
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			txt := string(node.Segment.Value(p.src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				txt += " "
			}
			spans = appendSpan(spans, txt, style)
		case *ast.String:
			spans = appendSpan(spans, string(node.Value), style)
		case *ast.Emphasis:
			nested := style
			if node.Level >= 2 {
				nested.bold = true
			} else {
				nested.italic = true
			}
			spans = append(spans, p.inlines(node, nested)...)
		case *ast.CodeSpan:
			nested := style
			nested.code = true
			spans = appendSpan(spans, p.flatText(node), nested)
		case *ast.Link:
			nested := style
			nested.linkURL = string(node.Destination)
			spans = append(spans, p.inlines(node, nested)...)
		case *ast.Image:
			// Keep alt text; the image itself is not embedded mid-paragraph.
			spans = appendSpan(spans, p.flatText(node), style)
		case *ast.AutoLink:
			u := string(node.URL(p.src))
			nested := style
			nested.linkURL = u
			spans = appendSpan(spans, u, nested)
		case *extast.Strikethrough:
			spans = append(spans, p.inlines(node, style)...)
		default:
			spans = append(spans, p.inlines(c, style)...)
		}
	}
	return spans
}

func appendSpan(spans []InlineSpan, txt string, style spanStyle) []InlineSpan {
	if txt == "" {
		return spans
	}
	return append(spans, InlineSpan{
		Text:    txt,
		Bold:    style.bold,
		Italic:  style.italic,
		Code:    style.code,
		LinkURL: style.linkURL,
	})
}

// flatText flattens a node's inline content to plain text.
func (p *blockParser) flatText(n ast.Node) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(p.src))
		case *ast.String:
			sb.Write(node.Value)
		default:
			sb.WriteString(p.flatText(c))
		}
	}
	return sb.String()
}
