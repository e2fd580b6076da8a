// ABOUTME: Test helpers: an in-process package host and an installer wired to it
// ABOUTME: Files are served by URL path; request counts verify fetch behavior

package pkgmanager

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/spf13/afero"
)

// registry serves raw files by path, like raw.github.com/<author>/<name>/<ref>/<file>.
type registry struct {
	mu    sync.Mutex
	files map[string]string
	hits  map[string]int
}

func newRegistry(files map[string]string) *registry {
	if files == nil {
		files = map[string]string{}
	}
	return &registry{files: files, hits: map[string]int{}}
}

func (r *registry) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	r.hits[req.URL.Path]++
	body, ok := r.files[req.URL.Path]
	r.mu.Unlock()

	if !ok {
		http.NotFound(w, req)
		return
	}
	w.Write([]byte(body))
}

func (r *registry) count(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits[path]
}

type testEnv struct {
	reg *registry
	srv *httptest.Server
	fs  afero.Fs

	loader    *Loader
	installer *Installer
}

func newTestEnv(t *testing.T, files map[string]string, jobs int) *testEnv {
	t.Helper()
	return newTestEnvFS(t, files, jobs, afero.NewMemMapFs())
}

func newTestEnvFS(t *testing.T, files map[string]string, jobs int, fs afero.Fs) *testEnv {
	t.Helper()

	reg := newRegistry(files)
	srv := httptest.NewServer(reg)
	t.Cleanup(srv.Close)

	res, err := NewResolver(srv.URL)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	fetcher := NewHTTPFetcher(srv.Client(), fs)
	loader := NewLoader(StdDefaults(), res, fetcher)

	return &testEnv{
		reg:       reg,
		srv:       srv,
		fs:        fs,
		loader:    loader,
		installer: NewInstaller(loader, fetcher, fs, jobs),
	}
}

func (e *testEnv) readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := afero.ReadFile(e.fs, path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func (e *testEnv) exists(t *testing.T, path string) bool {
	t.Helper()
	ok, err := afero.Exists(e.fs, path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	return ok
}
