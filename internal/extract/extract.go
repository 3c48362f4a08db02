package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format is the document kind a payload is read as.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
	FormatText Format = "text"
)

// ErrNoText is returned when a document decodes but carries no readable text.
var ErrNoText = errors.New("no readable text")

// Error reports a failed extraction; Message is safe to show to end users.
type Error struct {
	Format Format
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Format, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Message is the user-facing description of the failure.
func (e *Error) Message() string {
	switch e.Format {
	case FormatPDF:
		return "Error: Could not extract text from the provided PDF file."
	case FormatDOCX:
		return "Error: Could not extract text from the provided DOCX file."
	case FormatHTML:
		return "Error: Could not extract text from the provided HTML file."
	default:
		return "Error: Could not extract text from the provided file."
	}
}

// DetectFormat picks a format from the file extension, sniffing the payload when
// the extension says nothing useful.
func DetectFormat(fileName string, data []byte) Format {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), ".")) {
	case "pdf":
		return FormatPDF
	case "docx":
		return FormatDOCX
	case "html", "htm":
		return FormatHTML
	case "txt", "md", "text":
		return FormatText
	}
	switch {
	case bytes.HasPrefix(data, []byte("%PDF-")):
		return FormatPDF
	case isDOCXArchive(data):
		return FormatDOCX
	}
	return FormatText
}

// TextFromBytes extracts plain text from an in-memory upload.
func TextFromBytes(ctx context.Context, data []byte, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	format := DetectFormat(fileName, data)
	var (
		text string
		err  error
	)
	switch format {
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
		if err != nil && utf8.Valid(data) && !isZip(data) {
			// a .docx that is really plain text
			text, err = string(data), nil
		}
	case FormatHTML:
		text, err = extractHTML(data)
	default:
		text, err = extractPlain(data)
	}
	if err != nil {
		return "", &Error{Format: format, Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" && format != FormatText {
		return "", &Error{Format: format, Err: ErrNoText}
	}
	return text, nil
}

func extractPDF(data []byte) (text string, err error) {
	defer func() {
		// the pdf reader panics on some malformed xref tables
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("malformed pdf: %v", rec)
		}
	}()
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err == nil {
		defer doc.Close()
		if content := doc.Editable().GetContent(); content != "" {
			return stripDocxXML(content), nil
		}
	}
	return extractDOCXFromZip(data)
}

// extractDOCXFromZip reads word/document.xml directly for archives the docx
// package refuses, such as ones written with backslash paths.
func extractDOCXFromZip(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return stripDocxXML(string(raw)), nil
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteString("\t")
			}
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func extractHTML(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("html is not valid utf-8")
	}
	md, err := htmltomarkdown.ConvertString(string(data))
	if err != nil {
		return "", err
	}
	return md, nil
}

func extractPlain(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return "", errors.New("payload is not valid utf-8")
	}
	return string(data), nil
}

func isZip(data []byte) bool {
	return bytes.HasPrefix(data, []byte("PK\x03\x04"))
}

func isDOCXArchive(data []byte) bool {
	if !isZip(data) {
		return false
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return true
		}
	}
	return false
}
