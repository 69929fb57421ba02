package mdtranslate

import (
	"testing"

	"google.golang.org/api/docs/v1"
)

func buildFor(t *testing.T, doc, lang string) []*docs.Request {
	t.Helper()
	return buildDocRequests(renderJobFor(t, doc, lang))
}

func firstInsert(reqs []*docs.Request) *docs.InsertTextRequest {
	for _, r := range reqs {
		if r.InsertText != nil {
			return r.InsertText
		}
	}
	return nil
}

func TestBuildDocRequestsTitleAndHeadings(t *testing.T) {
	reqs := buildFor(t, "# Main\n\n## Sub\n", "fr")

	ins := firstInsert(reqs)
	if ins == nil || ins.Text != "Main\n" || ins.Location.Index != 1 {
		t.Fatalf("first insert = %+v, want Main at index 1", ins)
	}

	var named []string
	for _, r := range reqs {
		if r.UpdateParagraphStyle != nil && r.UpdateParagraphStyle.ParagraphStyle.NamedStyleType != "" {
			named = append(named, r.UpdateParagraphStyle.ParagraphStyle.NamedStyleType)
		}
	}
	if len(named) != 2 || named[0] != "TITLE" || named[1] != "HEADING_2" {
		t.Errorf("named styles = %v, want [TITLE HEADING_2]", named)
	}
}

func TestBuildDocRequestsCursorAdvances(t *testing.T) {
	reqs := buildFor(t, "one\n\ntwo\n", "fr")

	var inserts []*docs.InsertTextRequest
	for _, r := range reqs {
		if r.InsertText != nil {
			inserts = append(inserts, r.InsertText)
		}
	}
	if len(inserts) != 2 {
		t.Fatalf("got %d inserts, want 2", len(inserts))
	}
	// "one\n" is 4 UTF-16 units, so the second paragraph starts at 5.
	if inserts[1].Location.Index != 5 {
		t.Errorf("second insert index = %d, want 5", inserts[1].Location.Index)
	}
}

func TestBuildDocRequestsCursorCountsUTF16(t *testing.T) {
	reqs := buildFor(t, "漢字 😀\n\nnext\n", "zh")

	var inserts []*docs.InsertTextRequest
	for _, r := range reqs {
		if r.InsertText != nil {
			inserts = append(inserts, r.InsertText)
		}
	}
	if len(inserts) != 2 {
		t.Fatalf("got %d inserts, want 2", len(inserts))
	}
	// 漢字 = 2 units, space = 1, 😀 = 2 (surrogate pair), newline = 1.
	if inserts[1].Location.Index != 7 {
		t.Errorf("second insert index = %d, want 7", inserts[1].Location.Index)
	}
}

func TestBuildDocRequestsBullets(t *testing.T) {
	reqs := buildFor(t, "- flat\n  - nested\n\n1. numbered\n", "fr")

	var presets []string
	var nestedTabs bool
	for _, r := range reqs {
		if r.CreateParagraphBullets != nil {
			presets = append(presets, r.CreateParagraphBullets.BulletPreset)
		}
		if r.InsertText != nil && r.InsertText.Text == "\tnested\n" {
			nestedTabs = true
		}
	}
	want := []string{bulletPresetDisc, bulletPresetDisc, bulletPresetDecimal}
	if len(presets) != len(want) {
		t.Fatalf("presets = %v, want %v", presets, want)
	}
	for i := range want {
		if presets[i] != want[i] {
			t.Errorf("preset %d = %s, want %s", i, presets[i], want[i])
		}
	}
	if !nestedTabs {
		t.Error("nested item should carry a leading tab for its bullet level")
	}
}

func TestBuildDocRequestsRTLDirection(t *testing.T) {
	reqs := buildFor(t, "# عنوان\n\nفقرة\n\n- بند\n", "ar")

	rtlCount := 0
	for _, r := range reqs {
		if r.UpdateParagraphStyle != nil && r.UpdateParagraphStyle.ParagraphStyle.Direction == "RIGHT_TO_LEFT" {
			rtlCount++
		}
	}
	if rtlCount != 3 {
		t.Errorf("got %d RIGHT_TO_LEFT paragraph styles, want 3 (title, body, bullet)", rtlCount)
	}
}

func TestBuildDocRequestsInlineStyles(t *testing.T) {
	reqs := buildFor(t, "plain **bold** [link](https://example.com)\n", "fr")

	var boldRange *docs.Range
	var linkURL string
	for _, r := range reqs {
		if r.UpdateTextStyle == nil {
			continue
		}
		if r.UpdateTextStyle.TextStyle.Bold {
			boldRange = r.UpdateTextStyle.Range
		}
		if l := r.UpdateTextStyle.TextStyle.Link; l != nil {
			linkURL = l.Url
		}
	}
	if boldRange == nil {
		t.Fatal("no bold style request")
	}
	// Text is "plain bold link\n" starting at 1; "bold" spans [7, 11).
	if boldRange.StartIndex != 7 || boldRange.EndIndex != 11 {
		t.Errorf("bold range = [%d, %d), want [7, 11)", boldRange.StartIndex, boldRange.EndIndex)
	}
	if linkURL != "https://example.com" {
		t.Errorf("link url = %q", linkURL)
	}
}

func TestBuildDocRequestsTableDegradesToText(t *testing.T) {
	reqs := buildFor(t, "| A | B |\n|---|---|\n| 1 | 2 |\n", "fr")

	var texts []string
	for _, r := range reqs {
		if r.InsertText != nil {
			texts = append(texts, r.InsertText.Text)
		}
	}
	if len(texts) != 2 || texts[0] != "A | B\n" || texts[1] != "1 | 2\n" {
		t.Errorf("table rows = %q, want pipe-joined lines", texts)
	}
}
