// Package download fetches the CTD bulk-export files into the local data
// directory. Files that are already present are kept unless a forced
// refresh is requested; transient failures are retried with exponential
// backoff.
package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/schollz/progressbar/v3"

	"ctdload/internal/core"
)

// maxRetries bounds the per-file retry loop.
const maxRetries = 4

// URLs returns the download URL of every source file the registry
// declares, in registration order.
func URLs(baseURL string, reg *core.Registry) []string {
	specs := reg.All()
	urls := make([]string, 0, len(specs))
	for _, spec := range specs {
		urls = append(urls, baseURL+spec.FileName)
	}
	return urls
}

// Downloader fetches export files over HTTP.
type Downloader struct {
	client  *resty.Client
	dataDir string
	log     *slog.Logger
	// progress disables the terminal progress bar when false, used by
	// tests and non-interactive runs.
	progress bool
}

// New creates a Downloader writing into dataDir.
func New(dataDir string, log *slog.Logger) *Downloader {
	if log == nil {
		log = slog.Default()
	}
	return &Downloader{
		client:   resty.New().SetDoNotParseResponse(true),
		dataDir:  dataDir,
		log:      log,
		progress: true,
	}
}

// Fetch implements core.Fetcher.
func (d *Downloader) Fetch(ctx context.Context, urls []string, force bool) error {
	if err := os.MkdirAll(d.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	for _, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("parse url %q: %w", raw, err)
		}
		name := path.Base(u.Path)
		dest := filepath.Join(d.dataDir, name)

		if !force {
			if _, err := os.Stat(dest); err == nil {
				d.log.Debug("file already present, skipping download", "file", name)
				continue
			}
		}

		op := func() error { return d.fetchOne(ctx, raw, dest) }
		b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
		if err := backoff.Retry(op, b); err != nil {
			return fmt.Errorf("download %s: %w", raw, err)
		}
		d.log.Info("file downloaded", "file", name)
	}
	return nil
}

// fetchOne streams one URL to dest, via a temp file so an interrupted
// download never looks like a complete one.
func (d *Downloader) fetchOne(ctx context.Context, rawURL, dest string) error {
	resp, err := d.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return err
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		err := fmt.Errorf("unexpected status %s", resp.Status())
		if resp.StatusCode() >= 400 && resp.StatusCode() < 500 {
			return backoff.Permanent(err)
		}
		return err
	}

	tmp := dest + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return backoff.Permanent(err)
	}

	var w io.Writer = f
	if d.progress {
		bar := progressbar.DefaultBytes(resp.RawResponse.ContentLength, "downloading "+filepath.Base(dest))
		w = io.MultiWriter(f, bar)
	}

	if _, err := io.Copy(w, body); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dest)
}
