package kmlscene

import (
	internalLoader "github.com/goliatone/go-kmlscene/internal/kml/loader"
	pkgkml "github.com/goliatone/go-kmlscene/pkg/kml"
)

// NewLoader constructs a loader using the internal implementation while
// keeping the concrete type hidden from consumers.
func NewLoader(options ...pkgkml.LoaderOption) pkgkml.Loader {
	cfg := pkgkml.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// ParseDocument parses raw KML bytes into a Document bound to the supplied
// source, for callers that already hold the payload.
func ParseDocument(src pkgkml.Source, data []byte) (pkgkml.Document, error) {
	return pkgkml.ParseDocument(src, data)
}
