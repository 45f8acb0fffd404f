package kml

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// fileSource identifies on-disk KML documents.
type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// fsSource references a path within an fs.FS.
type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

// urlSource references an HTTP/HTTPS endpoint.
type urlSource struct {
	raw string
}

func (s urlSource) Location() string {
	return s.raw
}

func (s urlSource) Kind() SourceKind {
	return SourceKindURL
}

// SourceFromURL parses the supplied URL string and returns a Source. It panics
// if the URL is invalid to surface configuration mistakes early.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("kml: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("kml: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}

// bytesSource carries an in-memory document, typically for tests or callers
// that already hold the payload.
type bytesSource struct {
	name string
	data []byte
}

func (s bytesSource) Location() string {
	return s.name
}

func (s bytesSource) Kind() SourceKind {
	return SourceKindBytes
}

// Bytes returns a defensive copy of the in-memory payload.
func (s bytesSource) Bytes() []byte {
	return append([]byte(nil), s.data...)
}

// SourceFromBytes wraps an in-memory KML payload under a display name.
func SourceFromBytes(name string, data []byte) Source {
	return bytesSource{name: name, data: append([]byte(nil), data...)}
}
