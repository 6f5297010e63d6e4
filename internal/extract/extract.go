// Package extract turns raw document bytes into plain text, dispatching
// on the filename extension.
package extract

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Format is the closed set of decoding strategies.
type Format int

const (
	FormatUnknown Format = iota
	FormatPlain
	FormatMarkdown
	FormatPDF
)

var plainExtensions = map[string]struct{}{
	".txt": {}, ".csv": {}, ".tsv": {}, ".json": {}, ".yaml": {}, ".yml": {},
	".toml": {}, ".ini": {}, ".log": {}, ".go": {}, ".py": {}, ".js": {},
	".ts": {}, ".java": {}, ".c": {}, ".h": {}, ".rs": {}, ".sh": {},
	".sql": {}, ".html": {}, ".htm": {}, ".xml": {},
}

// DetectFormat classifies a filename by its extension. Anything not
// recognized decodes as plain UTF-8 text.
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case ext == ".pdf":
		return FormatPDF
	case ext == ".md" || ext == ".markdown":
		return FormatMarkdown
	default:
		if _, ok := plainExtensions[ext]; ok {
			return FormatPlain
		}
		return FormatUnknown
	}
}

// Extract converts document bytes into plain text. The PDF path is
// best-effort: when the structured parse fails the raw bytes are decoded
// as UTF-8 instead, and the caller decides by the resulting length
// whether the document is usable.
func Extract(data []byte, filename string) (string, error) {
	switch DetectFormat(filename) {
	case FormatPDF:
		if text, err := extractPDF(data); err == nil {
			return text, nil
		}
		return decodeUTF8(data), nil
	case FormatMarkdown:
		if text := extractMarkdown(data); text != "" {
			return text, nil
		}
		return decodeUTF8(data), nil
	default:
		return decodeUTF8(data), nil
	}
}

func extractPDF(data []byte) (text string, err error) {
	// The pdf library panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = io.ErrUnexpectedEOF
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// extractMarkdown walks the goldmark AST and joins the text content of
// the block nodes, dropping markup.
func extractMarkdown(data []byte) string {
	md := goldmark.New()
	reader := text.NewReader(data)
	doc := md.Parser().Parse(reader)

	var parts []string
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		if fenced, ok := node.(*ast.FencedCodeBlock); ok {
			var code strings.Builder
			for i := 0; i < fenced.Lines().Len(); i++ {
				line := fenced.Lines().At(i)
				code.Write(line.Value(data))
			}
			if s := strings.TrimSpace(code.String()); s != "" {
				parts = append(parts, s)
			}
			continue
		}
		if txt := nodeText(node, data); txt != "" {
			parts = append(parts, txt)
		}
	}
	return strings.Join(parts, "\n\n")
}

func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if node.Kind() == ast.KindText {
			sb.Write(node.(*ast.Text).Segment.Value(source))
			sb.WriteByte(' ')
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

func decodeUTF8(data []byte) string {
	return strings.ToValidUTF8(string(data), "�")
}
