package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"os"
)

var (
	// ErrSourceUnavailable means a required input could not be read. Fatal to
	// the load step; no partial snapshot is returned.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrSchemaMismatch means an expected column is absent after header
	// normalization.
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// Source is one tabular input. Fingerprint identifies the current version of
// the source so the snapshot cache can tell whether a reload is needed.
type Source interface {
	Name() string
	Open() (io.ReadCloser, error)
	Fingerprint() (string, error)
}

// ChannelSource pairs a marketing source with the channel its rows belong to.
type ChannelSource struct {
	Channel string
	Source  Source
}

type FileSource struct {
	name string
	path string
}

func NewFileSource(name, path string) FileSource {
	return FileSource{name: name, path: path}
}

func (s FileSource) Name() string { return s.name }

func (s FileSource) Open() (io.ReadCloser, error) { return os.Open(s.path) }

func (s FileSource) Fingerprint() (string, error) {
	st, err := os.Stat(s.path)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", s.name, ErrSourceUnavailable, err)
	}
	return fmt.Sprintf("%s|%d|%d", s.path, st.Size(), st.ModTime().UnixNano()), nil
}

// StaticSource serves a fixed byte slice. Used by tests and embedded sample
// data; its fingerprint is content-derived so edits invalidate the cache.
type StaticSource struct {
	name string
	data []byte
}

func NewStaticSource(name string, data []byte) StaticSource {
	return StaticSource{name: name, data: data}
}

func (s StaticSource) Name() string { return s.name }

func (s StaticSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.data)), nil
}

func (s StaticSource) Fingerprint() (string, error) {
	h := fnv.New64a()
	h.Write(s.data)
	return fmt.Sprintf("%s|%x", s.name, h.Sum64()), nil
}
