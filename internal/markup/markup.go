// ABOUTME: Inline markup to structured span conversion using goldmark
// ABOUTME: Whitelists bold, inline code and links; everything else flattens to plain text

package markup

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"
)

// SpanKind identifies how a span should be rendered.
type SpanKind string

const (
	KindPlain SpanKind = "plain"
	KindBold  SpanKind = "bold"
	KindCode  SpanKind = "code"
	KindLink  SpanKind = "link"
)

// Span is one run of text with a single rendering treatment. Href is
// set only for KindLink.
type Span struct {
	Kind SpanKind
	Text string
	Href string
}

// Line is the rendered form of one input line. An empty Line is a blank
// line.
type Line []Span

var md = goldmark.New()

// Render converts message text into lines of whitelisted spans. Input
// is parsed as inline markdown, line by line; only bold, inline code
// and links survive as structure. Raw HTML and any other construct
// flatten to their literal or plain text, so the output never carries
// markup for the presentation layer to interpolate.
func Render(text string) []Line {
	rawLines := strings.Split(text, "\n")
	out := make([]Line, 0, len(rawLines))
	for _, raw := range rawLines {
		out = append(out, renderLine([]byte(raw)))
	}
	return out
}

func renderLine(src []byte) Line {
	if len(strings.TrimSpace(string(src))) == 0 {
		return Line{}
	}
	doc := md.Parser().Parse(gtext.NewReader(src))

	var line Line
	var walk func(n ast.Node, kind SpanKind)
	walk = func(n ast.Node, kind SpanKind) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				line = append(line, Span{Kind: kind, Text: string(t.Segment.Value(src))})
			case *ast.String:
				line = append(line, Span{Kind: kind, Text: string(t.Value)})
			case *ast.CodeSpan:
				line = append(line, Span{Kind: KindCode, Text: textOf(t, src)})
			case *ast.Emphasis:
				// Strong (**x**) is whitelisted; single emphasis is not
				// and renders as plain text.
				if t.Level >= 2 {
					walk(t, KindBold)
				} else {
					walk(t, kind)
				}
			case *ast.Link:
				href := string(t.Destination)
				label := textOf(t, src)
				if label == "" {
					label = href
				}
				if safeHref(href) {
					line = append(line, Span{Kind: KindLink, Text: label, Href: href})
				} else {
					line = append(line, Span{Kind: kind, Text: label})
				}
			case *ast.AutoLink:
				href := string(t.URL(src))
				if safeHref(href) {
					line = append(line, Span{Kind: KindLink, Text: string(t.Label(src)), Href: href})
				} else {
					line = append(line, Span{Kind: kind, Text: string(t.Label(src))})
				}
			case *ast.Image:
				// Images are not whitelisted; keep the alt text.
				line = append(line, Span{Kind: kind, Text: textOf(t, src)})
			case *ast.RawHTML:
				// HTML never passes through as markup, only as literal text.
				line = append(line, Span{Kind: kind, Text: segmentsOf(t.Segments, src)})
			default:
				walk(c, kind)
			}
		}
	}
	walk(doc, KindPlain)
	return merge(line)
}

// textOf collects the literal text beneath a node.
func textOf(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func segmentsOf(segs *gtext.Segments, src []byte) string {
	var b strings.Builder
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}

// safeHref admits only http(s) destinations. javascript: and friends
// degrade to plain text.
func safeHref(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// merge joins adjacent spans of the same kind and drops empty ones.
func merge(line Line) Line {
	out := make(Line, 0, len(line))
	for _, s := range line {
		if s.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Kind == s.Kind && out[n-1].Href == s.Href {
			out[n-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return out
}
