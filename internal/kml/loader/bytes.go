package loader

import (
	"context"
	"errors"

	pkgkml "github.com/goliatone/go-kmlscene/pkg/kml"
)

type byteser interface {
	Bytes() []byte
}

func loadBytes(ctx context.Context, src pkgkml.Source) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	holder, ok := src.(byteser)
	if !ok {
		return nil, errors.New("kml loader: bytes source does not expose its payload")
	}
	return holder.Bytes(), nil
}
