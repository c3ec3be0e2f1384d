// Package storage puts uploaded media into a public bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BlobStore stores an object and returns its public URL.
type BlobStore interface {
	Put(ctx context.Context, object Object) (string, error)
}

// Object is a single upload. Size may be -1 when unknown.
type Object struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ObjectName builds "<unix-millis>-<random><ext>" from the client file name.
func ObjectName(original string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(original))
	if len(ext) > 10 {
		ext = ""
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), random, ext)
}
