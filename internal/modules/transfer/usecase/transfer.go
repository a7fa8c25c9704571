package usecase

import (
	"context"
	"fmt"
	"io"

	"stringlog/internal/modules/transfer/domain"
	transferdto "stringlog/internal/modules/transfer/dto"
	transferin "stringlog/internal/modules/transfer/port/in"
	"stringlog/internal/modules/transfer/service"
	apperrors "stringlog/internal/platform/errors"
	"stringlog/internal/platform/tx"
)

type Interactor struct {
	svc *service.TransferService
	tx  tx.Manager
}

func NewInteractor(svc *service.TransferService, txm tx.Manager) transferin.Usecase {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &Interactor{svc: svc, tx: txm}
}

func (i *Interactor) ExportJSON(ctx context.Context, w io.Writer) (transferdto.Summary, error) {
	var snapshot domain.Snapshot
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		snapshot, err = i.svc.WriteJSON(ctx, w)
		return err
	})
	if err != nil {
		return transferdto.Summary{}, err
	}
	return summary(snapshot), nil
}

func (i *Interactor) ImportJSON(ctx context.Context, r io.Reader) (transferdto.Summary, error) {
	snapshot, err := i.svc.ReadJSON(r)
	if err != nil {
		return transferdto.Summary{}, err
	}
	err = i.tx.Within(ctx, func(ctx context.Context) error {
		return i.svc.Restore(ctx, snapshot)
	})
	if err != nil {
		return transferdto.Summary{}, err
	}
	return summary(snapshot), nil
}

func (i *Interactor) Clear(ctx context.Context) (transferdto.Summary, error) {
	var previous domain.Snapshot
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		previous, err = i.svc.Clear(ctx)
		return err
	})
	if err != nil {
		return transferdto.Summary{}, err
	}
	return summary(previous), nil
}

func (i *Interactor) ExportCSV(ctx context.Context, kind string, w io.Writer) (int, error) {
	parsed, err := domain.ParseKind(kind)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return i.svc.WriteCSV(ctx, parsed, w)
}

func summary(snapshot domain.Snapshot) transferdto.Summary {
	return transferdto.Summary{
		Sessions:   len(snapshot.Sessions),
		Songs:      len(snapshot.Songs),
		Goals:      len(snapshot.Goals),
		ExportedAt: snapshot.ExportedAt.Time,
	}
}
