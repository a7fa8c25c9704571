package in

import (
	"context"

	"stringlog/internal/modules/stats/dto"
)

type Usecase interface {
	Summary(ctx context.Context, input dto.SummaryInput) (dto.Summary, error)
}
