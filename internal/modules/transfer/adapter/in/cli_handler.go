package in

import (
	"context"
	"io"

	transferdto "stringlog/internal/modules/transfer/dto"
	transferin "stringlog/internal/modules/transfer/port/in"
)

type CLIHandler struct {
	usecase transferin.Usecase
}

func NewCLIHandler(usecase transferin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ExportJSON(ctx context.Context, w io.Writer) (transferdto.Summary, error) {
	return h.usecase.ExportJSON(ctx, w)
}

func (h CLIHandler) ExportCSV(ctx context.Context, kind string, w io.Writer) (int, error) {
	return h.usecase.ExportCSV(ctx, kind, w)
}

func (h CLIHandler) Clear(ctx context.Context) (transferdto.Summary, error) {
	return h.usecase.Clear(ctx)
}

func (h CLIHandler) Import(ctx context.Context, r io.Reader) (transferdto.Summary, error) {
	return h.usecase.ImportJSON(ctx, r)
}
