package in

import (
	"context"
	"io"

	transferdto "stringlog/internal/modules/transfer/dto"
)

type Usecase interface {
	ExportJSON(ctx context.Context, w io.Writer) (transferdto.Summary, error)
	// ImportJSON replaces sessions, songs and goals with the snapshot read from r.
	// A snapshot that fails validation leaves stored data untouched.
	ImportJSON(ctx context.Context, r io.Reader) (transferdto.Summary, error)
	ExportCSV(ctx context.Context, kind string, w io.Writer) (int, error)
	// Clear removes every session, song and goal and reports how many went.
	Clear(ctx context.Context) (transferdto.Summary, error)
}
