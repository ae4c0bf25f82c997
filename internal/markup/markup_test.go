// ABOUTME: Tests for the markup span pipeline
// ABOUTME: Verifies the whitelist, HTML flattening and span merging

package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_PlainText(t *testing.T) {
	lines := Render("just some text")

	require.Len(t, lines, 1)
	require.Len(t, lines[0], 1)
	assert.Equal(t, Span{Kind: KindPlain, Text: "just some text"}, lines[0][0])
}

func TestRender_Bold(t *testing.T) {
	lines := Render("this is **important** stuff")

	require.Len(t, lines, 1)
	require.Len(t, lines[0], 3)
	assert.Equal(t, Span{Kind: KindPlain, Text: "this is "}, lines[0][0])
	assert.Equal(t, Span{Kind: KindBold, Text: "important"}, lines[0][1])
	assert.Equal(t, Span{Kind: KindPlain, Text: " stuff"}, lines[0][2])
}

func TestRender_InlineCode(t *testing.T) {
	lines := Render("run `go test` now")

	require.Len(t, lines, 1)
	require.Len(t, lines[0], 3)
	assert.Equal(t, Span{Kind: KindCode, Text: "go test"}, lines[0][1])
}

func TestRender_Link(t *testing.T) {
	lines := Render("see [the docs](https://example.com/docs) here")

	require.Len(t, lines, 1)
	require.Len(t, lines[0], 3)
	assert.Equal(t, Span{Kind: KindLink, Text: "the docs", Href: "https://example.com/docs"}, lines[0][1])
}

func TestRender_JavascriptHrefDegradesToPlain(t *testing.T) {
	lines := Render("click [here](javascript:alert(1))")

	require.Len(t, lines, 1)
	for _, span := range lines[0] {
		assert.NotEqual(t, KindLink, span.Kind, "javascript: destinations are not links")
	}
}

func TestRender_RawHTMLFlattensToText(t *testing.T) {
	lines := Render("hello <script>alert(1)</script> world")

	require.Len(t, lines, 1)
	var all string
	for _, span := range lines[0] {
		assert.Equal(t, KindPlain, span.Kind, "html yields no structured spans")
		all += span.Text
	}
	assert.Contains(t, all, "<script>", "the literal text is preserved, not interpreted")
}

func TestRender_SingleEmphasisIsNotWhitelisted(t *testing.T) {
	lines := Render("some *emphasis* here")

	require.Len(t, lines, 1)
	for _, span := range lines[0] {
		assert.NotEqual(t, KindBold, span.Kind)
	}
}

func TestRender_BoldInsideSentenceMerges(t *testing.T) {
	lines := Render("a **b** c **d** e")

	require.Len(t, lines, 1)
	kinds := make([]SpanKind, 0, len(lines[0]))
	for _, span := range lines[0] {
		kinds = append(kinds, span.Kind)
	}
	assert.Equal(t, []SpanKind{KindPlain, KindBold, KindPlain, KindBold, KindPlain}, kinds)
}

func TestRender_MultipleLines(t *testing.T) {
	lines := Render("first line\n\nthird line")

	require.Len(t, lines, 3)
	assert.NotEmpty(t, lines[0])
	assert.Empty(t, lines[1], "blank input line renders as an empty line")
	assert.NotEmpty(t, lines[2])
}

func TestRender_MixedMarkupOnOneLine(t *testing.T) {
	lines := Render("**bold** then `code` then [link](https://x.test)")

	require.Len(t, lines, 1)
	var kinds []SpanKind
	for _, span := range lines[0] {
		kinds = append(kinds, span.Kind)
	}
	assert.Contains(t, kinds, KindBold)
	assert.Contains(t, kinds, KindCode)
	assert.Contains(t, kinds, KindLink)
}

func TestRender_EmptyInput(t *testing.T) {
	lines := Render("")

	require.Len(t, lines, 1)
	assert.Empty(t, lines[0])
}
