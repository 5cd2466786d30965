package local

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lessonbridge/doc-extractor/internal/domain"
)

// buildDocx assembles a minimal WordprocessingML package in memory. The
// docx library requires word/document.xml and its relationship part.
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body bytes.Buffer
	for _, p := range paragraphs {
		fmt.Fprintf(&body, "<w:p><w:r><w:t>%s</w:t></w:r></w:p>", p)
	}
	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body.String() + `</w:body></w:document>`
	rels := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`
	contentTypes := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`</Types>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"[Content_Types].xml":          contentTypes,
		"word/document.xml":            document,
		"word/_rels/document.xml.rels": rels,
	} {
		f, err := zw.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// buildPDF assembles a single-page PDF with an uncompressed content stream
// and a standard Helvetica font, computing the cross-reference offsets while
// writing.
func buildPDF(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	offsets := make([]int, 6)
	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}
	buf.WriteString("%PDF-1.4\n")
	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	writeObj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>")
	writeObj(4, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	stream := fmt.Sprintf("BT /F1 24 Tf 72 720 Td (%s) Tj ET", text)
	writeObj(5, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	xref := buf.Len()
	buf.WriteString("xref\n0 6\n0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xref)
	return buf.Bytes()
}

func TestExtract_DOCX(t *testing.T) {
	data := buildDocx(t, "Accommodations for reading", "Extended time on tests")
	got, err := New().Extract(context.Background(), "plan.docx", data)
	require.NoError(t, err)
	require.Contains(t, got, "Accommodations for reading")
	require.Contains(t, got, "Extended time on tests")
}

func TestExtract_DOCX_UppercaseExtension(t *testing.T) {
	data := buildDocx(t, "hello")
	got, err := New().Extract(context.Background(), "PLAN.DOCX", data)
	require.NoError(t, err)
	require.Contains(t, got, "hello")
}

func TestExtract_DOCX_Malformed(t *testing.T) {
	_, err := New().Extract(context.Background(), "plan.docx", []byte("not a zip archive"))
	require.ErrorIs(t, err, domain.ErrDocxFailure)
}

func TestExtract_DOCX_WhitespaceOnly(t *testing.T) {
	data := buildDocx(t, "   ")
	got, err := New().Extract(context.Background(), "plan.docx", data)
	require.NoError(t, err)
	require.NotEmpty(t, got) // raw whitespace survives; the usecase decides
	require.Empty(t, bytes.TrimSpace([]byte(got)))
}

func TestExtract_PDF(t *testing.T) {
	data := buildPDF(t, "Hello World")
	got, err := New().Extract(context.Background(), "iep.pdf", data)
	require.NoError(t, err)
	require.Contains(t, got, "Hello World")
}

func TestExtract_PDF_Malformed(t *testing.T) {
	_, err := New().Extract(context.Background(), "iep.pdf", []byte("%PDF-1.7 garbage"))
	require.ErrorIs(t, err, domain.ErrPdfFailure)
}

func TestExtract_UnsupportedExtension(t *testing.T) {
	for _, name := range []string{"notes.txt", "legacy.doc", "image.png", "noext"} {
		_, err := New().Extract(context.Background(), name, []byte("whatever"))
		require.ErrorIs(t, err, domain.ErrUnsupportedType, "filename %q", name)
	}
}

func TestExtract_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Extract(ctx, "plan.docx", buildDocx(t, "x"))
	require.ErrorIs(t, err, context.Canceled)
}
