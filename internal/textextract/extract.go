// Package textextract turns uploaded résumé documents into plain text.
package textextract

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePlain = "text/plain"
	MimePDF   = "application/pdf"
	MimeDocx  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeDoc   = "application/msword"
)

var (
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrUnreadableDocument = errors.New("unreadable document")
)

// extensions maps every accepted file extension to its content type.
var extensions = map[string]string{
	".pdf":  MimePDF,
	".docx": MimeDocx,
	".doc":  MimeDoc,
}

// Supported reports whether FromFile accepts the file name's extension.
func Supported(name string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// MimeFor returns the content type for an accepted file name.
func MimeFor(name string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	mime, ok := extensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return mime, nil
}

// FromFile extracts text choosing the decoder by file extension.
// Both .docx and .doc go through the Word (OOXML) reader.
func FromFile(name string, data []byte) (string, error) {
	mime, err := MimeFor(name)
	if err != nil {
		return "", err
	}
	return FromMime(mime, data)
}

// FromMime extracts text choosing the decoder by content type.
func FromMime(mime string, data []byte) (string, error) {
	switch mime {
	case MimePlain:
		return string(data), nil

	case MimePDF:
		return extractPDFText(data)

	case MimeDocx, MimeDoc:
		return extractDocxText(data)

	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mime)
	}
}

func extractPDFText(data []byte) (text string, err error) {
	// the pdf package panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: pdf: %v", ErrUnreadableDocument, r)
		}
	}()

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: pdf: %v", ErrUnreadableDocument, err)
	}
	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: pdf page %d: %v", ErrUnreadableDocument, i, err)
		}
		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: docx: %v", ErrUnreadableDocument, err)
	}
	defer doc.Close()

	return documentXMLToText(doc.Editable().GetContent()), nil
}

var (
	paragraphEnd = regexp.MustCompile(`</w:p>|<w:br[^>]*/>|<w:cr[^>]*/>`)
	tabMarker    = regexp.MustCompile(`<w:tab[^>]*/>`)
	xmlTag       = regexp.MustCompile(`<[^>]+>`)
)

// documentXMLToText flattens word/document.xml into one line per paragraph.
func documentXMLToText(xml string) string {
	xml = paragraphEnd.ReplaceAllString(xml, "\n")
	xml = tabMarker.ReplaceAllString(xml, "\t")
	xml = xmlTag.ReplaceAllString(xml, "")
	return html.UnescapeString(xml)
}
