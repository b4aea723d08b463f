package core

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

// DefaultChunkSize is the row count of one in-memory chunk.
var DefaultChunkSize = 1_000_000

// OpenSource opens a CTD export file, transparently decompressing
// gzip-compressed sources.
func OpenSource(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	zr, err := pgzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open gzip %s: %w", path, err)
	}
	return &gzipFile{zr: zr, f: f}, nil
}

type gzipFile struct {
	zr *pgzip.Reader
	f  *os.File
}

func (g *gzipFile) Read(p []byte) (int, error) { return g.zr.Read(p) }

func (g *gzipFile) Close() error {
	err := g.zr.Close()
	if cerr := g.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// ChunkReader streams the data rows of a source file in row-count-bounded
// chunks. Comment lines are skipped; the absolute row ordinal is threaded
// across chunk boundaries so surrogate keys stay stable regardless of the
// chunk size. Not safe for concurrent use.
type ChunkReader struct {
	rc      io.ReadCloser
	cr      *csv.Reader
	size    int
	ordinal int64
}

// NewChunkReader opens path for chunked reading. size rows per chunk;
// size <= 0 falls back to DefaultChunkSize.
func NewChunkReader(path string, size int) (*ChunkReader, error) {
	if size <= 0 {
		size = DefaultChunkSize
	}
	rc, err := OpenSource(path)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(bufio.NewReaderSize(rc, 256*1024))
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return &ChunkReader{rc: rc, cr: cr, size: size}, nil
}

// Next returns the next chunk, or io.EOF once the file is exhausted.
func (r *ChunkReader) Next() (Chunk, error) {
	start := r.ordinal
	rows := make([][]string, 0, min(r.size, 4096))
	for len(rows) < r.size {
		rec, err := r.cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Chunk{}, err
		}
		rows = append(rows, rec)
		r.ordinal++
	}
	if len(rows) == 0 {
		return Chunk{}, io.EOF
	}
	return Chunk{Start: start, Rows: rows}, nil
}

// Close closes the underlying file.
func (r *ChunkReader) Close() error { return r.rc.Close() }
