package local

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/lessonbridge/doc-extractor/internal/domain"
	"github.com/lessonbridge/doc-extractor/pkg/textx"
)

// extractDOCX opens the document from memory and flattens the WordprocessingML
// body to plain text. Paragraph and break boundaries become newlines.
func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDocxFailure, err)
	}
	defer func() { _ = doc.Close() }()

	content := doc.Editable().GetContent()
	text, err := flattenDocumentXML(content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDocxFailure, err)
	}
	return textx.StripControl(text), nil
}

// flattenDocumentXML walks document.xml tokens, keeping character data and
// turning w:p / w:br ends into newlines.
func flattenDocumentXML(raw string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(raw))
	var b strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if b.Len() > 0 {
					b.WriteString("\n")
				}
			}
		}
	}
	return b.String(), nil
}
