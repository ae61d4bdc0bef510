package content

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/rpupo63/portfolio-site-backend/models"
)

// CompiledDocument is the renderable output of a document body: the HTML and
// an index of its headings for table-of-contents rendering.
type CompiledDocument struct {
	HTML     string
	Headings []models.Heading
}

// Compiler turns raw markdown into HTML where every heading carries a unique
// fragment-safe ID and links to its own fragment, and fenced code blocks are
// syntax-highlighted by their declared language. Compilation is pure: the same
// input always yields the same output.
type Compiler struct {
	md goldmark.Markdown
}

func NewCompiler() *Compiler {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(&blockRenderer{}, 100)),
		),
	)
	return &Compiler{md: md}
}

// Compile parses and renders a document body. Malformed fenced-block syntax
// degrades to plain preformatted output rather than failing the document.
func (c *Compiler) Compile(body string) (*CompiledDocument, error) {
	source := []byte(body)

	// Fresh ID state per document so anchors are deterministic and unique
	// within it.
	pctx := parser.NewContext(parser.WithIDs(newAnchorIDs()))
	doc := c.md.Parser().Parse(text.NewReader(source), parser.WithContext(pctx))

	var buf bytes.Buffer
	if err := c.md.Renderer().Render(&buf, source, doc); err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}

	return &CompiledDocument{
		HTML:     buf.String(),
		Headings: collectHeadings(doc, source),
	}, nil
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases text and collapses non-alphanumeric runs into single
// hyphens, producing a URL-fragment-safe identifier.
func Slugify(text string) string {
	slug := nonAlphanumeric.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(slug, "-")
}

// anchorIDs implements parser.IDs with slug-based identifiers. Colliding
// headings are disambiguated with numeric suffixes: "usage", "usage-2", ...
type anchorIDs struct {
	used map[string]bool
}

func newAnchorIDs() parser.IDs {
	return &anchorIDs{used: make(map[string]bool)}
}

func (ids *anchorIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	slug := Slugify(string(value))
	if slug == "" {
		slug = "section"
	}
	if !ids.used[slug] {
		ids.used[slug] = true
		return []byte(slug)
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", slug, i)
		if !ids.used[candidate] {
			ids.used[candidate] = true
			return []byte(candidate)
		}
	}
}

func (ids *anchorIDs) Put(value []byte) {
	ids.used[string(value)] = true
}

// blockRenderer overrides heading and fenced-code rendering; everything else
// falls through to goldmark's default HTML renderer.
type blockRenderer struct{}

func (r *blockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

// renderHeading wraps the heading's inline content in an anchor pointing at
// the heading's own fragment, so every heading is a clickable permalink.
func (r *blockRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	id := headingID(n)

	if entering {
		fmt.Fprintf(w, "<h%d", n.Level)
		if id != "" {
			fmt.Fprintf(w, ` id="%s"`, id)
		}
		w.WriteString(">")
		if id != "" {
			fmt.Fprintf(w, `<a class="heading-anchor" href="#%s">`, id)
		}
	} else {
		if id != "" {
			w.WriteString("</a>")
		}
		fmt.Fprintf(w, "</h%d>\n", n.Level)
	}
	return ast.WalkContinue, nil
}

func (r *blockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		code.Write(segment.Value(source))
	}

	writeCodeBlock(w, string(n.Language(source)), code.String())
	return ast.WalkSkipChildren, nil
}

var codeStyle = styles.Get("github")

// writeCodeBlock emits a chroma-highlighted block for the declared language.
// Unknown languages, tokenizer failures, and formatter failures all degrade to
// a plain escaped <pre><code> block.
func writeCodeBlock(w util.BufWriter, lang, code string) {
	lexer := lexers.Get(lang)
	if lang == "" || lexer == nil {
		writePlainCode(w, lang, code)
		return
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		writePlainCode(w, lang, code)
		return
	}

	// Format into a scratch buffer first: a mid-stream formatter failure must
	// not leave half a block in the response.
	var highlighted bytes.Buffer
	formatter := chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.WithPreWrapper(preWrapper{lang: lang}),
	)
	if err := formatter.Format(&highlighted, codeStyle, iterator); err != nil {
		writePlainCode(w, lang, code)
		return
	}
	w.Write(highlighted.Bytes())
}

func writePlainCode(w util.BufWriter, lang, code string) {
	w.WriteString("<pre><code")
	if lang != "" {
		fmt.Fprintf(w, ` class="language-%s"`, html.EscapeString(lang))
	}
	w.WriteString(">")
	w.WriteString(html.EscapeString(code))
	w.WriteString("</code></pre>\n")
}

// preWrapper tags the highlighted block with its language so clients can
// style or label it.
type preWrapper struct {
	lang string
}

func (p preWrapper) Start(code bool, styleAttr string) string {
	if p.lang != "" {
		return fmt.Sprintf(`<pre class="chroma" data-language="%s"><code>`, html.EscapeString(p.lang))
	}
	return `<pre class="chroma"><code>`
}

func (p preWrapper) End(code bool) string {
	return "</code></pre>\n"
}

func collectHeadings(doc ast.Node, source []byte) []models.Heading {
	var headings []models.Heading
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		headings = append(headings, models.Heading{
			ID:    headingID(h),
			Text:  nodeText(h, source),
			Level: h.Level,
		})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

func headingID(n *ast.Heading) string {
	attr, ok := n.AttributeString("id")
	if !ok {
		return ""
	}
	switch v := attr.(type) {
	case []byte:
		return string(v)
	case string:
		return v
	}
	return ""
}

// nodeText flattens a node's inline text content, ignoring markup.
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
