package in

import (
	"context"

	statsdto "stringlog/internal/modules/stats/dto"
	statsin "stringlog/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Summary(ctx context.Context, weeks int) (statsdto.Summary, error) {
	return h.usecase.Summary(ctx, statsdto.SummaryInput{Weeks: weeks})
}
