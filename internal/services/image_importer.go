package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ImageStore persists image bytes under a key.
type ImageStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
}

const maxImageBytes = 20 << 20

var errImageTooLarge = errors.New("image too large")

// ImageImporter downloads remote images into an ImageStore.
type ImageImporter struct {
	client   *http.Client
	store    ImageStore
	maxBytes int64
}

// NewImageImporter creates an importer whose downloads time out after timeout.
func NewImageImporter(store ImageStore, timeout time.Duration) *ImageImporter {
	return &ImageImporter{
		client:   &http.Client{Timeout: timeout},
		store:    store,
		maxBytes: maxImageBytes,
	}
}

// Import fetches rawURL and stores it under products/<uuid>_<file name>.
func (i *ImageImporter) Import(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid image url %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	key := "products/" + uuid.NewString() + "_" + imageName(u)
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(key))
	}

	size := resp.ContentLength
	if size > i.maxBytes {
		return "", fmt.Errorf("%w: %d bytes", errImageTooLarge, size)
	}
	body := &cappedReader{r: io.LimitReader(resp.Body, i.maxBytes+1), limit: i.maxBytes}
	if err := i.store.Put(ctx, key, body, size, contentType); err != nil {
		if body.exceeded() {
			i.discard(ctx, key)
			return "", fmt.Errorf("%w: more than %d bytes", errImageTooLarge, i.maxBytes)
		}
		return "", err
	}
	if body.exceeded() {
		i.discard(ctx, key)
		return "", fmt.Errorf("%w: more than %d bytes", errImageTooLarge, i.maxBytes)
	}
	return key, nil
}

// discard removes a partially written object.
func (i *ImageImporter) discard(ctx context.Context, key string) {
	if err := i.store.Remove(ctx, key); err != nil {
		logrus.WithField("key", key).WithError(err).Warn("Failed to remove partial image")
	}
}

// cappedReader fails once more than limit bytes have been read.
type cappedReader struct {
	r     io.Reader
	limit int64
	read  int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.read += int64(n)
	if c.exceeded() {
		return n, errImageTooLarge
	}
	return n, err
}

func (c *cappedReader) exceeded() bool {
	return c.read > c.limit
}

func imageName(u *url.URL) string {
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "image"
	}
	return strings.ReplaceAll(name, " ", "_")
}
