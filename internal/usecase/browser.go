// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-licenses/internal/domain"
	"github.com/naka-gawa/github-licenses/internal/gateway"
)

// Browser loads repository lists through a gateway.
type Browser struct {
	fetcher gateway.Fetcher
	logger  *slog.Logger
}

// NewBrowser creates a new Browser instance.
func NewBrowser(fetcher gateway.Fetcher, logger *slog.Logger) *Browser {
	return &Browser{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Load performs req and always returns a Result, even if the fetcher panics,
// so that the caller can leave the loading phase.
func (b *Browser) Load(ctx context.Context, req Request) (res Result) {
	res.Request = req
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("fetch panicked", "account", req.Account, "panic", r)
			res.Repositories = nil
			res.Err = &gateway.FetchError{Account: req.Account, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	repos, err := b.fetcher.FetchRepositories(ctx, req.Account)
	if err != nil {
		res.Err = err
		return res
	}
	if repos == nil {
		repos = []domain.Repository{}
	}
	res.Repositories = repos
	b.logger.Info("repositories loaded", "account", req.Account, "seq", req.Seq, "count", len(repos))
	return res
}

// Report fetches every account concurrently, one request each, and derives
// a report per account in input order.
func (b *Browser) Report(ctx context.Context, accounts []string, filter domain.Filter) ([]*domain.Report, error) {
	b.logger.Debug("Usecase: starting report", "accounts", len(accounts))

	reports := make([]*domain.Report, len(accounts))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, account := range accounts {
		eg.Go(func() error {
			res := b.Load(egCtx, Request{Account: account, Seq: uint64(i + 1)})
			if res.Err != nil {
				return fmt.Errorf("%s: %w", account, res.Err)
			}
			if !domain.HasLanguage(res.Repositories, filter.Language) {
				b.logger.Warn("language not present, showing all", "account", account, "language", filter.Language)
				f := filter
				f.Language = domain.AllLanguages
				reports[i] = domain.NewReport(account, res.Repositories, f)
				return nil
			}
			reports[i] = domain.NewReport(account, res.Repositories, filter)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	b.logger.Debug("Usecase: report complete")
	return reports, nil
}
