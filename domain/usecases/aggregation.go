package usecases

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/predicate"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/repositories"
	"github.com/ZanzyTHEbar/firedragon-ledger/domain/specifications"
)

// Totals are the sums over a listing. The carry-over entry counts like any other row.
type Totals struct {
	Income      int64 `json:"income"`
	Expenditure int64 `json:"expenditure"`
}

// Balance is what the listing adds up to
func (t Totals) Balance() int64 {
	return t.Income + t.Expenditure
}

// ComputeTotals sums strictly positive amounts into Income and the rest into Expenditure
func ComputeTotals(entries []models.Entry) Totals {
	var totals Totals
	for _, entry := range entries {
		if amount := entry.EntryAmount(); amount > 0 {
			totals.Income += amount
		} else {
			totals.Expenditure += amount
		}
	}
	return totals
}

// CombineRest folds the three carry-over sub-sums. A transfer is stored once,
// on its source account, so the destination side has to invert it.
func CombineRest(normal, transferSource, transferDestination int64) int64 {
	return normal + transferSource - transferDestination
}

// restCalculator runs the three carry-over sums of an account concurrently
type restCalculator struct {
	transactions repositories.TransactionRepository
}

func (c restCalculator) compute(ctx context.Context, account *models.Account, cutoff time.Time) (int64, error) {
	scopes := specifications.ForRest(account, cutoff)

	var normal, source, destination int64
	g, gctx := errgroup.WithContext(ctx)

	sum := func(p predicate.Predicate, into *int64) func() error {
		return func() error {
			// A missing sum counts as zero
			value, _, err := c.transactions.SumAmount(gctx, p)
			if err != nil {
				return err
			}
			*into = value
			return nil
		}
	}

	g.Go(sum(scopes.Normal, &normal))
	g.Go(sum(scopes.TransferSource, &source))
	g.Go(sum(scopes.TransferDestination, &destination))

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return CombineRest(normal, source, destination), nil
}
