package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/utils"
)

// maxDownloadBytes caps how much of a generated image we will pull down.
const maxDownloadBytes = 32 << 20

// Downloader fetches a generated image from the provider-hosted URL.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

type httpDownloader struct {
	client *http.Client
}

// NewHTTPDownloader returns a Downloader backed by the given client, or
// http.DefaultClient when nil.
func NewHTTPDownloader(client *http.Client) Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpDownloader{client: client}
}

func (d *httpDownloader) Download(ctx context.Context, url string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}

	response, err := d.client.Do(request)
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download failed with status %d", response.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(response.Body, maxDownloadBytes))
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}
	return data, nil
}
