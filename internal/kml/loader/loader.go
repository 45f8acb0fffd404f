package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	pkgkml "github.com/goliatone/go-kmlscene/pkg/kml"
)

// Loader implements pkgkml.Loader by delegating to file, fs.FS, HTTP, or
// in-memory strategies. Construction helpers live in the top-level kmlscene
// package.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
	maxSize   int64
}

// Ensure the implementation satisfies the public interface.
var _ pkgkml.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgkml.LoaderOptions) pkgkml.Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
		maxSize:   options.MaxSize,
	}
}

// Load fetches a document from the provided source, parses it, and wraps the
// node tree in a Document.
func (l *Loader) Load(ctx context.Context, src pkgkml.Source) (pkgkml.Document, error) {
	if src == nil {
		return pkgkml.Document{}, errors.New("kml loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case pkgkml.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case pkgkml.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case pkgkml.SourceKindURL:
		if !l.allowHTTP {
			return pkgkml.Document{}, errors.New("kml loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	case pkgkml.SourceKindBytes:
		data, err = loadBytes(ctx, src)
	default:
		err = errors.New("kml loader: unsupported source kind")
	}
	if err != nil {
		return pkgkml.Document{}, err
	}

	if l.maxSize > 0 && int64(len(data)) > l.maxSize {
		return pkgkml.Document{}, fmt.Errorf("kml loader: document %s exceeds %d bytes", src.Location(), l.maxSize)
	}

	return pkgkml.ParseDocument(src, data)
}
