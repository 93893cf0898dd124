package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// %PDF magic followed by filler so mimetype has enough bytes to sniff.
func pdfBytes() []byte {
	return []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
}

func TestNewAttachment_PDF(t *testing.T) {
	a, err := NewAttachment("a1", "essay.pdf", pdfBytes())
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", a.MediaType)
	assert.Equal(t, "essay.pdf", a.Filename)
}

func TestNewAttachment_PlainText(t *testing.T) {
	a, err := NewAttachment("a1", "essay.txt", []byte("The mitochondria is the powerhouse of the cell.\n"))
	require.NoError(t, err)
	assert.Equal(t, "text/plain", a.MediaType)
}

func TestNewAttachment_LegacyDoc(t *testing.T) {
	// OLE compound file header used by legacy .doc files.
	header := []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	data := append(header, make([]byte, 512)...)

	a, err := NewAttachment("a1", "essay.doc", data)
	require.NoError(t, err)
	assert.Equal(t, "application/msword", a.MediaType)
}

func TestNewAttachment_UnsupportedTypes(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		data     []byte
	}{
		{"png image", "essay.png", []byte("\x89PNG\r\n\x1a\n0000000000")},
		{"zip archive", "essay.zip", []byte("PK\x03\x04obviously not a docx")},
		{"html", "essay.html", []byte("<!DOCTYPE html><html><body>hi</body></html>")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := NewAttachment("a1", tc.filename, tc.data)
			assert.Error(t, err)
			assert.Nil(t, a)
		})
	}
}

func TestNewAttachment_Empty(t *testing.T) {
	a, err := NewAttachment("a1", "essay.pdf", nil)
	assert.Error(t, err)
	assert.Nil(t, a)
}

func TestDetectMediaType_StripsCharset(t *testing.T) {
	mt := DetectMediaType("notes.txt", []byte("plain utf-8 text\n"))
	assert.Equal(t, "text/plain", mt)
}
