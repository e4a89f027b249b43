package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	// ErrUnsupportedFormat is returned for uploads that are neither PDF nor DOCX.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrExtractionFailure is returned when a parser cannot produce text.
	ErrExtractionFailure = errors.New("extraction failure")
)

// DocumentType is the closed set of formats the loader understands.
type DocumentType int

const (
	TypeUnknown DocumentType = iota
	TypePDF
	TypeDOCX
)

func (t DocumentType) String() string {
	switch t {
	case TypePDF:
		return "pdf"
	case TypeDOCX:
		return "docx"
	default:
		return "unknown"
	}
}

// Document is an uploaded résumé held in memory for one request.
type Document struct {
	Data     []byte
	MimeType string
	FileName string
}

// ResolveType maps the declared MIME type onto a DocumentType. Generic
// declarations fall back to content sniffing and then the file extension.
func ResolveType(mimeType string, fileName string, data []byte) (DocumentType, error) {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	switch clean {
	case MimePDF:
		return TypePDF, nil
	case MimeDOCX:
		return TypeDOCX, nil
	case "", "application/octet-stream", "application/zip":
		if t := sniff(data); t != TypeUnknown {
			return t, nil
		}
		if t := fromExtension(fileName); t != TypeUnknown && clean != "application/zip" {
			return t, nil
		}
	}
	if clean == "" {
		clean = "unknown"
	}
	return TypeUnknown, fmt.Errorf("%w: %s", ErrUnsupportedFormat, clean)
}

// ExtractText resolves the document type and pulls plain text out of it.
func ExtractText(ctx context.Context, doc Document) (string, DocumentType, error) {
	if err := ctx.Err(); err != nil {
		return "", TypeUnknown, err
	}
	docType, err := ResolveType(doc.MimeType, doc.FileName, doc.Data)
	if err != nil {
		return "", TypeUnknown, err
	}

	var text string
	switch docType {
	case TypePDF:
		text, err = guard(func() (string, error) { return extractPDF(doc.Data) })
	case TypeDOCX:
		text, err = guard(func() (string, error) { return extractDOCX(doc.Data) })
	default:
		return "", TypeUnknown, fmt.Errorf("%w: %s", ErrUnsupportedFormat, docType)
	}
	if err != nil {
		return "", docType, fmt.Errorf("%w: %s: %v", ErrExtractionFailure, docType, err)
	}
	return text, docType, nil
}

// guard turns a parser panic on malformed input into an error.
func guard(fn func() (string, error)) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("parser panic: %v", rec)
		}
	}()
	return fn()
}

func extractPDF(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty pdf data")
	}
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
	replaceDoc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer replaceDoc.Close()

	return stripDocxXML(replaceDoc.Editable().GetContent())
}

// stripDocxXML flattens WordprocessingML into text with one line per paragraph.
func stripDocxXML(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteString("\t")
			}
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				buf.WriteString("\n")
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

func sniff(data []byte) DocumentType {
	if len(data) == 0 {
		return TypeUnknown
	}
	detected := mimetype.Detect(data)
	switch {
	case detected.Is(MimePDF):
		return TypePDF
	case detected.Is(MimeDOCX):
		return TypeDOCX
	default:
		return TypeUnknown
	}
}

func fromExtension(fileName string) DocumentType {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return TypePDF
	case ".docx":
		return TypeDOCX
	default:
		return TypeUnknown
	}
}
