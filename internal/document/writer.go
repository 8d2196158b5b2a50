package document

import (
	"os"
	"path/filepath"
	"strings"

	"pdf-ocr/internal/models"

	"github.com/fumiama/go-docx"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

const docTitle = "PDF OCR Result"

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
	blockRule
)

// block is one renderable unit extracted from the OCR markdown.
type block struct {
	kind  blockKind
	level int // heading level, 1-6
	text  string
}

// OutputName derives the document file name for an input PDF path.
func OutputName(inputPath string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + models.OutputSuffix
}

// Write renders the combined OCR markdown into a .docx file at path. The
// document opens with a fixed title heading; markdown headings keep their
// levels and thematic breaks become centered separator lines.
func Write(markdown, path string) error {
	doc := docx.New().WithDefaultTheme()

	title := doc.AddParagraph()
	title.AddText(docTitle).Size("32").Bold()

	for _, b := range parseBlocks(markdown) {
		switch b.kind {
		case blockHeading:
			p := doc.AddParagraph()
			p.AddText(b.text).Size(headingSize(b.level)).Bold()
		case blockRule:
			p := doc.AddParagraph().Justification("center")
			p.AddText("* * *")
		default:
			// One paragraph per source line, matching plain OCR text flow.
			for _, line := range strings.Split(b.text, "\n") {
				doc.AddParagraph().AddText(line)
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = doc.WriteTo(f)
	return err
}

func headingSize(level int) string {
	switch level {
	case 1:
		return "30"
	case 2:
		return "28"
	case 3:
		return "26"
	default:
		return "24"
	}
}

// parseBlocks walks the goldmark AST of the markdown and flattens it into
// headings, paragraphs and rules. Lists, quotes and code blocks degrade to
// plain paragraphs; OCR output rarely needs more structure than that.
func parseBlocks(markdown string) []block {
	src := []byte(markdown)
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader(src))

	var blocks []block
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		blocks = appendNode(blocks, n, src)
	}
	return blocks
}

func appendNode(blocks []block, n ast.Node, src []byte) []block {
	switch t := n.(type) {
	case *ast.Heading:
		blocks = append(blocks, block{kind: blockHeading, level: t.Level, text: nodeText(t, src)})
	case *ast.ThematicBreak:
		blocks = append(blocks, block{kind: blockRule})
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if txt := rawLines(n, src); txt != "" {
			blocks = append(blocks, block{kind: blockParagraph, text: txt})
		}
	case *ast.List:
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			if txt := nodeText(item, src); txt != "" {
				blocks = append(blocks, block{kind: blockParagraph, text: "- " + txt})
			}
		}
	case *ast.Blockquote:
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			blocks = appendNode(blocks, child, src)
		}
	default:
		if txt := nodeText(n, src); txt != "" {
			blocks = append(blocks, block{kind: blockParagraph, text: txt})
		}
	}
	return blocks
}

// nodeText collects the plain text of all inline descendants.
func nodeText(n ast.Node, src []byte) string {
	var sb strings.Builder
	ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := node.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

// rawLines returns the verbatim source lines of a code block.
func rawLines(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return strings.TrimRight(sb.String(), "\n")
}
