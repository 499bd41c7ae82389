package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"quadras/web/internal/httpjson"
	"quadras/web/internal/imagehost"
	"quadras/web/internal/logging"
)

// formOverhead is the room left for multipart boundaries and headers.
const formOverhead = 64 << 10

type Uploads struct {
	uploader imagehost.Uploader
	maxBytes int64
}

func NewUploads(uploader imagehost.Uploader, maxBytes int64) *Uploads {
	return &Uploads{uploader: uploader, maxBytes: maxBytes}
}

type uploadResp struct {
	URL         string `json:"url"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Upload accepts one image in the multipart field "file" and forwards it to
// the image host.
func (h *Uploads) Upload(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		httpjson.Error(w, http.StatusNotImplemented, imagehost.ErrDisabled.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+formOverhead)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			httpjson.Error(w, http.StatusRequestEntityTooLarge, imagehost.ErrTooLarge.Error())
			return
		}
		httpjson.Error(w, http.StatusBadRequest, "multipart form expected")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	f, hdr, err := r.FormFile("file")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "file is required")
		return
	}
	defer f.Close()

	if hdr.Size > h.maxBytes {
		httpjson.Error(w, http.StatusRequestEntityTooLarge, imagehost.ErrTooLarge.Error())
		return
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		httpjson.Error(w, http.StatusBadRequest, "failed to read file")
		return
	}
	head = head[:n]
	ct, err := imagehost.Sniff(head)
	if err != nil {
		httpjson.Error(w, http.StatusUnsupportedMediaType, err.Error())
		return
	}

	file := imagehost.File{
		Name:        imagehost.ObjectName(hdr.Filename, ct),
		ContentType: ct,
		Size:        hdr.Size,
		Body:        io.MultiReader(bytes.NewReader(head), f),
	}
	url, err := h.uploader.Upload(r.Context(), file)
	if err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "image upload failed",
			"object", file.Name, "size", file.Size, "error", err)
		httpjson.Upstream(w, http.StatusBadGateway, "Não foi possível enviar a imagem. Tente novamente.")
		return
	}

	logging.FromContext(r.Context()).InfoContext(r.Context(), "image uploaded", "object", file.Name, "size", file.Size)
	httpjson.Write(w, http.StatusCreated, uploadResp{URL: url, Name: file.Name, ContentType: ct, Size: hdr.Size})
}
