// Package imagehost forwards user images to the configured third-party host
// and returns the public URL stored on courts and arena profiles.
package imagehost

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"quadras/web/internal/utils"

	"github.com/google/uuid"
)

var (
	ErrDisabled = errors.New("image uploads are disabled")
	ErrNotImage = errors.New("file is not an image")
	ErrTooLarge = errors.New("file too large")
)

func IsErrDisabled(err error) bool { return errors.Is(err, ErrDisabled) }
func IsErrNotImage(err error) bool { return errors.Is(err, ErrNotImage) }
func IsErrTooLarge(err error) bool { return errors.Is(err, ErrTooLarge) }

// File is one image read from the upload form.
type File struct {
	Name        string // object name, see ObjectName
	ContentType string
	Size        int64
	Body        io.Reader
}

type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
}

// Sniff checks the leading bytes of an upload and returns its image content
// type. Declared headers are not trusted.
func Sniff(head []byte) (string, error) {
	ct := http.DetectContentType(head)
	if !strings.HasPrefix(ct, "image/") {
		return "", ErrNotImage
	}
	return ct, nil
}

// ObjectName builds "uploads/<uuid>-<slug>.<ext>" from the client file name.
func ObjectName(filename, contentType string) string {
	ext := strings.ToLower(path.Ext(filename))
	base := strings.TrimSuffix(path.Base(strings.ReplaceAll(filename, "\\", "/")), path.Ext(filename))
	if ext == "" || len(ext) > 6 {
		ext = extFor(contentType)
	}
	s := utils.Slugify(base)
	if s == "" {
		s = "imagem"
	}
	if len(s) > 40 {
		s = strings.Trim(s[:40], "-")
	}
	return "uploads/" + uuid.NewString() + "-" + s + ext
}

func extFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".img"
}
