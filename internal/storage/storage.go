package storage

import (
	"context"
	"io"
)

// Uploader archives raw transcripts. Archival is best-effort and sits
// behind the worker pool; the entry pipeline never blocks on it.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}
