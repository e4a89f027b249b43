package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"resume-matcher/internal/extract/extracttest"
)

func TestExtractTextDOCX(t *testing.T) {
	data := extracttest.DOCX("Jane Doe", "Contact: jane@example.com", "Worked as a data engineer for 5 years.")

	text, docType, err := ExtractText(context.Background(), Document{Data: data, MimeType: MimeDOCX, FileName: "cv.docx"})
	if err != nil {
		t.Fatalf("extract docx: %v", err)
	}
	if docType != TypeDOCX {
		t.Fatalf("expected docx, got %s", docType)
	}
	want := "Jane Doe\nContact: jane@example.com\nWorked as a data engineer for 5 years."
	if text != want {
		t.Fatalf("unexpected text:\n%q\nwant\n%q", text, want)
	}
}

func TestExtractTextPDF(t *testing.T) {
	data := extracttest.PDF("Jane Doe", "Skills: Python, AWS")

	text, docType, err := ExtractText(context.Background(), Document{Data: data, MimeType: MimePDF, FileName: "cv.pdf"})
	if err != nil {
		t.Fatalf("extract pdf: %v", err)
	}
	if docType != TypePDF {
		t.Fatalf("expected pdf, got %s", docType)
	}
	for _, want := range []string{"Jane Doe", "Python"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in extracted text, got %q", want, text)
		}
	}
}

func TestExtractTextUnsupportedFormat(t *testing.T) {
	_, _, err := ExtractText(context.Background(), Document{Data: []byte("hello"), MimeType: "text/plain", FileName: "hello.txt"})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if !strings.Contains(err.Error(), "text/plain") {
		t.Fatalf("expected declared type in error, got %v", err)
	}
}

func TestExtractTextCorruptPDF(t *testing.T) {
	_, docType, err := ExtractText(context.Background(), Document{Data: []byte("%PDF-1.4\nnot really a pdf"), MimeType: MimePDF, FileName: "broken.pdf"})
	if !errors.Is(err, ErrExtractionFailure) {
		t.Fatalf("expected ErrExtractionFailure, got %v", err)
	}
	if docType != TypePDF {
		t.Fatalf("expected resolved type pdf, got %s", docType)
	}
}

func TestExtractTextCorruptDOCX(t *testing.T) {
	_, _, err := ExtractText(context.Background(), Document{Data: []byte("PK not a zip"), MimeType: MimeDOCX, FileName: "broken.docx"})
	if !errors.Is(err, ErrExtractionFailure) {
		t.Fatalf("expected ErrExtractionFailure, got %v", err)
	}
}

func TestExtractTextCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := ExtractText(ctx, Document{Data: extracttest.DOCX("x"), MimeType: MimeDOCX})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestResolveType(t *testing.T) {
	docxData := extracttest.DOCX("hello")
	pdfData := extracttest.PDF("hello")

	cases := []struct {
		name     string
		mime     string
		fileName string
		data     []byte
		want     DocumentType
		wantErr  bool
	}{
		{name: "declared_pdf", mime: "application/pdf", fileName: "a.bin", data: []byte("x"), want: TypePDF},
		{name: "declared_docx_with_params", mime: MimeDOCX + "; charset=binary", fileName: "a", data: nil, want: TypeDOCX},
		{name: "octet_stream_sniffs_pdf", mime: "application/octet-stream", fileName: "upload", data: pdfData, want: TypePDF},
		{name: "zip_sniffs_docx", mime: "application/zip", fileName: "cv.docx", data: docxData, want: TypeDOCX},
		{name: "empty_mime_uses_extension", mime: "", fileName: "CV.PDF", data: []byte("??"), want: TypePDF},
		{name: "plain_text_rejected", mime: "text/plain", fileName: "cv.pdf", data: pdfData, wantErr: true},
		{name: "legacy_word_rejected", mime: "application/msword", fileName: "cv.doc", data: []byte("x"), wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveType(tc.mime, tc.fileName, tc.data)
			if tc.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestResolveTypeRealZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = ResolveType("application/zip", "notes.zip", buf.Bytes())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if !strings.Contains(err.Error(), "application/zip") {
		t.Fatalf("unexpected error: %v", err)
	}
}
