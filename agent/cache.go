package agent

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DefaultCacheVersion names the cache folder of this release.
const DefaultCacheVersion = "aurora-trip-v2"

// OfflineCache is an http.RoundTripper keeping the last successful response
// of every request on disk. The network is always tried first, the stored
// response is only served when it fails.
type OfflineCache struct {
	dir  string
	base http.RoundTripper
	log  *zap.Logger
}

// OpenCache opens the cache "<root>/<version>" and deletes the folders of
// any other version in root.
func OpenCache(root, version string, base http.RoundTripper, log *zap.Logger) (*OfflineCache, error) {
	if base == nil {
		base = http.DefaultTransport
	}
	if log == nil {
		log = zap.NewNop()
	}
	dir := filepath.Join(root, version)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create cache %q: %w", dir, err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("could not list caches in %q: %w", root, err)
	}
	for _, e := range entries {
		if e.IsDir() && e.Name() != version {
			log.Debug("deleting old cache", zap.String("version", e.Name()))
			if err := os.RemoveAll(filepath.Join(root, e.Name())); err != nil {
				log.Warn("cannot delete old cache", zap.String("version", e.Name()), zap.Error(err))
			}
		}
	}
	return &OfflineCache{dir: dir, base: base, log: log}, nil
}

// Client returns an http client using the cache.
func (c *OfflineCache) Client() *http.Client { return &http.Client{Transport: c} }

func (c *OfflineCache) RoundTrip(req *http.Request) (*http.Response, error) {
	key, err := c.key(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		cached, cerr := c.get(key, req)
		if cerr != nil {
			return nil, err
		}
		c.log.Warn("network failed, serving the cached response", zap.String("url", req.URL.Redacted()), zap.Error(err))
		return cached, nil
	}
	c.log.Debug("http", zap.String("method", req.Method), zap.String("host", req.URL.Host), zap.String("path", req.URL.Path), zap.String("status", resp.Status))
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache
	if err := c.put(key, resp); err != nil {
		c.log.Warn("cache write err (ignored)", zap.Error(err))
	}
	return resp, nil
}

// key identifies a request by method, URL and body. The body is read and
// restored.
func (c *OfflineCache) key(req *http.Request) (string, error) {
	h := sha1.New()
	fmt.Fprintf(h, "%s %s\n", req.Method, req.URL.String())
	if req.Body != nil && req.Body != http.NoBody {
		body, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return "", fmt.Errorf("cannot read request body: %w", err)
		}
		h.Write(body)
		req.Body = io.NopCloser(bytes.NewReader(body))
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// get retrieves a cached response from disk
func (c *OfflineCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// put stores a response to disk cache
func (c *OfflineCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0644)
}
