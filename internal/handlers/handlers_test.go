package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quadras/web/internal/imagehost"
	"quadras/web/internal/payment"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var png = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 600)...)

type fakeUploader struct {
	got  imagehost.File
	body []byte
	err  error
}

func (f *fakeUploader) Upload(_ context.Context, file imagehost.File) (string, error) {
	f.got = file
	f.body, _ = io.ReadAll(file.Body)
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.test/" + file.Name, nil
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, _ = part.Write(content)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadForwardsImage(t *testing.T) {
	up := &fakeUploader{}
	h := NewUploads(up, 1<<20)

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartRequest(t, "file", "Minha Quadra.png", png))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", up.got.ContentType)
	assert.True(t, strings.HasPrefix(up.got.Name, "uploads/"))
	assert.True(t, strings.HasSuffix(up.got.Name, "-minha-quadra.png"))
	assert.Equal(t, png, up.body, "sniffed bytes are sent too")
	assert.Contains(t, rec.Body.String(), "https://cdn.test/uploads/")
}

func TestUploadRejects(t *testing.T) {
	tests := []struct {
		name   string
		up     imagehost.Uploader
		max    int64
		req    func(t *testing.T) *http.Request
		status int
	}{
		{
			name:   "disabled",
			up:     nil,
			max:    1 << 20,
			req:    func(t *testing.T) *http.Request { return multipartRequest(t, "file", "a.png", png) },
			status: http.StatusNotImplemented,
		},
		{
			name:   "missing field",
			up:     &fakeUploader{},
			max:    1 << 20,
			req:    func(t *testing.T) *http.Request { return multipartRequest(t, "foto", "a.png", png) },
			status: http.StatusBadRequest,
		},
		{
			name:   "not an image",
			up:     &fakeUploader{},
			max:    1 << 20,
			req:    func(t *testing.T) *http.Request { return multipartRequest(t, "file", "a.png", []byte("%PDF-1.7 ...")) },
			status: http.StatusUnsupportedMediaType,
		},
		{
			name:   "too large",
			up:     &fakeUploader{},
			max:    100,
			req:    func(t *testing.T) *http.Request { return multipartRequest(t, "file", "a.png", png) },
			status: http.StatusRequestEntityTooLarge,
		},
		{
			name:   "host failure",
			up:     &fakeUploader{err: errors.New("503")},
			max:    1 << 20,
			req:    func(t *testing.T) *http.Request { return multipartRequest(t, "file", "a.png", png) },
			status: http.StatusBadGateway,
		},
		{
			name: "not multipart",
			up:   &fakeUploader{},
			max:  1 << 20,
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(`{}`))
			},
			status: http.StatusBadRequest,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewUploads(tc.up, tc.max).Upload(rec, tc.req(t))
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}
}

type fakeLookup struct {
	res *payment.CheckoutResult
	err error
}

func (f fakeLookup) Lookup(context.Context, string) (*payment.CheckoutResult, error) {
	return f.res, f.err
}

func checkoutRequest(arenaID, query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/arena/"+arenaID+"/assinatura/retorno"+query, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("arenaId", arenaID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCheckoutReturn(t *testing.T) {
	ok := fakeLookup{res: &payment.CheckoutResult{SessionID: "cs_1", Status: "complete", Complete: true, ArenaID: "a1"}}

	rec := httptest.NewRecorder()
	NewCheckout(ok).Return(rec, checkoutRequest("a1", "?session_id=cs_1"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"concluido":true`)

	rec = httptest.NewRecorder()
	NewCheckout(ok).Return(rec, checkoutRequest("a2", "?session_id=cs_1"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	NewCheckout(ok).Return(rec, checkoutRequest("a1", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	NewCheckout(nil).Return(rec, checkoutRequest("a1", "?session_id=cs_1"))
	assert.Equal(t, http.StatusNotImplemented, rec.Code)

	rec = httptest.NewRecorder()
	NewCheckout(fakeLookup{err: errors.New("stripe down")}).Return(rec, checkoutRequest("a1", "?session_id=cs_1"))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
