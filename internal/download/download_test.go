package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"sync/atomic"
	"testing"

	"ctdload/internal/core"
)

func newTestDownloader(dir string) *Downloader {
	d := New(dir, nil)
	d.progress = false
	return d
}

func TestURLs(t *testing.T) {
	reg := core.NewRegistry()
	reg.Register(core.TableSpec{Name: "chemical", FileName: "CTD_chemicals.tsv.gz"})
	reg.Register(core.TableSpec{Name: "action", FileName: "CTD_chem_gene_ixn_types.tsv"})

	got := URLs("http://ctdbase.org/reports/", reg)
	want := []string{
		"http://ctdbase.org/reports/CTD_chemicals.tsv.gz",
		"http://ctdbase.org/reports/CTD_chem_gene_ixn_types.tsv",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("URLs() = %v, want %v", got, want)
	}
}

func TestFetchWritesFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("payload for " + r.URL.Path))
	}))
	defer srv.Close()

	dir := t.TempDir()
	d := newTestDownloader(dir)
	if err := d.Fetch(context.Background(), []string{srv.URL + "/exports/data.tsv"}, false); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "data.tsv"))
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(data) != "payload for /exports/data.tsv" {
		t.Errorf("content = %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "data.tsv.part")); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestFetchSkipsExistingUnlessForced(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Write([]byte("fresh"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "data.tsv"), []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	d := newTestDownloader(dir)
	if err := d.Fetch(context.Background(), []string{srv.URL + "/data.tsv"}, false); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if hits.Load() != 0 {
		t.Errorf("server hit %d times for an existing file", hits.Load())
	}

	if err := d.Fetch(context.Background(), []string{srv.URL + "/data.tsv"}, true); err != nil {
		t.Fatalf("forced Fetch: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("server hits = %d, want 1 after force", hits.Load())
	}
	data, _ := os.ReadFile(filepath.Join(dir, "data.tsv"))
	if string(data) != "fresh" {
		t.Errorf("content = %q, want re-downloaded payload", data)
	}
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	d := newTestDownloader(t.TempDir())
	if err := d.Fetch(context.Background(), []string{srv.URL + "/missing.tsv"}, false); err == nil {
		t.Fatal("Fetch = nil error, want 404 failure")
	}
	if hits.Load() != 1 {
		t.Errorf("server hits = %d, want no retries on 4xx", hits.Load())
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("eventually"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	d := newTestDownloader(dir)
	if err := d.Fetch(context.Background(), []string{srv.URL + "/data.tsv"}, false); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if hits.Load() != 3 {
		t.Errorf("server hits = %d, want 3", hits.Load())
	}
	data, _ := os.ReadFile(filepath.Join(dir, "data.tsv"))
	if string(data) != "eventually" {
		t.Errorf("content = %q", data)
	}
}
