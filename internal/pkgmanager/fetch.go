// ABOUTME: Remote fetch collaborator: manifest text and source files over HTTP
// ABOUTME: Files land via temp file + rename on an afero filesystem

package pkgmanager

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	chttp "github.com/tjk/clib-package/internal/http"
	"github.com/tjk/clib-package/internal/log"
)

// maxManifestSize bounds how much of a manifest response is read.
const maxManifestSize = 4 << 20

// Fetcher retrieves remote package content.
type Fetcher interface {
	// FetchText returns the body of url.
	FetchText(ctx context.Context, url string) ([]byte, error)
	// FetchFile downloads url into dest, replacing any existing file.
	FetchFile(ctx context.Context, url, dest string) error
}

// HTTPFetcher implements Fetcher with an http.Client and writes files to FS.
type HTTPFetcher struct {
	Client *http.Client
	FS     afero.Fs
}

// NewHTTPFetcher returns a fetcher using the hardened client from internal/http.
// A nil fs means the OS filesystem.
func NewHTTPFetcher(client *http.Client, fs afero.Fs) *HTTPFetcher {
	if client == nil {
		client = chttp.SecureHTTPClient(chttp.DefaultTimeout)
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &HTTPFetcher{Client: client, FS: fs}
}

// FetchText issues a GET and returns the body of a 200 response. Bodies larger
// than maxManifestSize are rejected rather than truncated.
func (f *HTTPFetcher) FetchText(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxManifestSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	if len(body) > maxManifestSize {
		return nil, fmt.Errorf("%s: response exceeds %d bytes", url, maxManifestSize)
	}
	return body, nil
}

// FetchFile streams a 200 response into a temp file next to dest, then renames it.
func (f *HTTPFetcher) FetchFile(ctx context.Context, url, dest string) error {
	resp, err := f.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tmp, err := afero.TempFile(f.FS, filepath.Dir(dest), "."+filepath.Base(dest)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", dest, err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		f.FS.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		f.FS.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", dest, err)
	}
	if err := f.FS.Rename(tmpName, dest); err != nil {
		f.FS.Remove(tmpName)
		return fmt.Errorf("renaming %s: %w", dest, err)
	}
	if err := f.FS.Chmod(dest, 0o644); err != nil && !os.IsNotExist(err) {
		log.Debug("chmod %s: %v", dest, err)
	}
	return nil
}

func (f *HTTPFetcher) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	log.Debug("GET %s", url)
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		resp.Body.Close()
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}
	return resp, nil
}
