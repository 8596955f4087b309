package loader

import (
	"context"
	"io"
	"net/http"
	"time"

	generr "github.com/goliatone/go-schemagen/pkg/errors"
)

// loadHTTP fetches a remote document. The per-request timeout caps the whole
// fetch, body read included.
func loadHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	if client == nil {
		return nil, generr.New(generr.CodeDocumentNotFound,
			"openapi loader: no http client configured for url sources")
	}
	if url == "" {
		return nil, generr.New(generr.CodeDocumentNotFound,
			"openapi loader: url is required")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, generr.Wrap(generr.CodeDocumentNotFound,
			"openapi loader: build request for "+url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, generr.Wrap(generr.CodeDocumentNotFound,
			"openapi loader: fetch "+url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, generr.Newf(generr.CodeDocumentNotFound,
			"openapi loader: fetch %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, generr.Wrap(generr.CodeDocumentNotFound,
			"openapi loader: read response from "+url, err)
	}
	return data, nil
}
