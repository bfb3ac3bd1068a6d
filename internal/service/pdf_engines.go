package service

import (
	"bytes"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

// fitzSource reads pages through MuPDF
type fitzSource struct {
	doc *fitz.Document
}

func openFitzSource(pdfBytes []byte) (pageSource, error) {
	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		return nil, err
	}
	return &fitzSource{doc: doc}, nil
}

func (s *fitzSource) NumPage() int {
	return s.doc.NumPage()
}

func (s *fitzSource) PageText(index int) (string, error) {
	return s.doc.Text(index)
}

func (s *fitzSource) Close() error {
	return s.doc.Close()
}

// ledongthucSource is the pure-Go fallback; it needs no cgo.
type ledongthucSource struct {
	reader *pdf.Reader
}

func openLedongthucSource(pdfBytes []byte) (pageSource, error) {
	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return nil, err
	}
	return &ledongthucSource{reader: reader}, nil
}

func (s *ledongthucSource) NumPage() int {
	return s.reader.NumPage()
}

// PageText maps the zero-based index onto the library's one-based pages
func (s *ledongthucSource) PageText(index int) (string, error) {
	page := s.reader.Page(index + 1)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

func (s *ledongthucSource) Close() error {
	return nil
}
