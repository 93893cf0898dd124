package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Attachment is the document selected for grading: an opaque payload plus
// its declared media type. Held in memory until submission, discarded on
// workflow reset.
type Attachment struct {
	ID        string
	Filename  string
	MediaType string
	Data      []byte
}

// DetectMediaType determines the media type of a document from its content,
// falling back to the file extension for formats content sniffing cannot
// separate (.doc and .txt payloads with unusual encodings).
func DetectMediaType(filename string, data []byte) string {
	mt := mimetype.Detect(data)
	base := baseMediaType(mt.String())
	if AllowedMediaTypes[base] {
		return base
	}
	// mimetype reports plain text under charset-specific subtypes and some
	// legacy .doc files as generic OLE storage; the extension settles it.
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		if mt.Is("text/plain") || strings.HasPrefix(base, "text/") {
			return "text/plain"
		}
	case ".doc":
		if mt.Is("application/x-ole-storage") {
			return "application/msword"
		}
	}
	return base
}

// NewAttachment builds an Attachment from a file's name and content,
// detecting and validating the media type.
func NewAttachment(id, filename string, data []byte) (*Attachment, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("attachment %q is empty", filename)
	}
	mediaType := DetectMediaType(filename, data)
	if !AllowedMediaTypes[mediaType] {
		return nil, fmt.Errorf("unsupported file type %q (accepted: PDF, DOC, DOCX, plain text)", mediaType)
	}
	return &Attachment{
		ID:        id,
		Filename:  filename,
		MediaType: mediaType,
		Data:      data,
	}, nil
}

func baseMediaType(s string) string {
	if i := strings.Index(s, ";"); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
