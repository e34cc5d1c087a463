package usecase

import (
	"context"
	"time"

	"github.com/itsyanis/1Day1Quote/internal/domain"
	"github.com/itsyanis/1Day1Quote/internal/validate"
)

func asSourceError(op string, err error) error {
	if err == nil || domain.KindOf(err) != "" {
		return err
	}
	return domain.Network(op, err)
}

func fetchQuote(ctx context.Context, src domain.QuoteSource, timeout time.Duration, f validate.Fields) (domain.Quote, error) {
	sctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := src.Random(sctx)
	if err != nil {
		return domain.Quote{}, asSourceError("fetch quote from "+src.Name(), err)
	}
	return validate.Quote(raw, f)
}
