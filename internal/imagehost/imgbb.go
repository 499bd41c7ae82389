package imagehost

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ImgBB posts images to the imgbb.com upload API.
type ImgBB struct {
	HTTP     *http.Client
	Endpoint string
	APIKey   string
}

func NewImgBB(endpoint, apiKey string) *ImgBB {
	return &ImgBB{
		HTTP:     &http.Client{Timeout: 30 * time.Second},
		Endpoint: endpoint,
		APIKey:   apiKey,
	}
}

func (c *ImgBB) Upload(ctx context.Context, f File) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("key", c.APIKey)
	name := strings.TrimSuffix(path.Base(f.Name), path.Ext(f.Name))
	_ = mw.WriteField("name", name)
	part, err := mw.CreateFormFile("image", path.Base(f.Name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f.Body); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	res := gjson.ParseBytes(body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !res.Get("success").Bool() {
		msg := res.Get("error.message").String()
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return "", fmt.Errorf("imgbb upload failed: %s: %s", resp.Status, msg)
	}

	url := res.Get("data.url").String()
	if url == "" {
		url = res.Get("data.display_url").String()
	}
	if url == "" {
		return "", fmt.Errorf("imgbb upload failed: no url in response")
	}
	return url, nil
}
