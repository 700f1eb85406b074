package domain

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// IndexingStatus is the knowledge-base processing state of an uploaded file.
type IndexingStatus string

const (
	IndexingCompleted IndexingStatus = "completed"
	IndexingWaiting   IndexingStatus = "waiting"
	IndexingIndexing  IndexingStatus = "indexing"
	IndexingError     IndexingStatus = "error"
)

// Label returns the display text for the indexing state; unknown states are
// shown verbatim.
func (s IndexingStatus) Label() string {
	switch s {
	case IndexingCompleted:
		return "Completed"
	case IndexingWaiting:
		return "Waiting"
	case IndexingIndexing:
		return "Indexing"
	case IndexingError:
		return "Error"
	case "":
		return "unknown"
	default:
		return string(s)
	}
}

// InProgress reports whether the file is still being processed.
func (s IndexingStatus) InProgress() bool {
	return s == IndexingWaiting || s == IndexingIndexing
}

// KnowledgeFile is a document stored in the knowledge base.
type KnowledgeFile struct {
	ID             string
	Name           string
	Extension      string
	Size           int64
	CreatedAt      Timestamp
	IndexingStatus IndexingStatus
}

// Icon returns the glyph for the file's type.
func (f KnowledgeFile) Icon() string {
	return FileIcon(f.Extension)
}

// FileIcon maps a file extension onto its list glyph.
func FileIcon(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "pdf":
		return "📄"
	case "doc", "docx":
		return "📝"
	case "md":
		return "📋"
	default:
		return "📁"
	}
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatFileSize renders a byte count in base-1024 units with at most two
// decimals, e.g. "1.5 KB". Zero renders as "0 Bytes".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	value := float64(bytes) / math.Pow(1024, float64(i))
	return humanize.FtoaWithDigits(value, 2) + " " + sizeUnits[i]
}

// UploadableDocument reports whether a path has an extension the test case
// generator accepts.
func UploadableDocument(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range []string{".pdf", ".docx", ".md"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// BatchNameFromPath names a generated batch after its source document:
// the base name without extension.
func BatchNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
