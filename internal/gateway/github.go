// Package gateway provides a gateway to the GitHub REST API,
// abstracting away the underlying client.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"

	"github.com/naka-gawa/github-licenses/internal/domain"
)

// DefaultTimeout bounds a single repository listing request.
const DefaultTimeout = 30 * time.Second

// FailureMessage is what users see for any fetch failure.
const FailureMessage = "Failed to fetch repositories"

// ErrFetch is matched by every error returned from FetchRepositories.
var ErrFetch = errors.New("failed to fetch repositories")

// FetchError is the single failure kind of the gateway. Its message is the same
// for unknown accounts, unreachable hosts and malformed payloads.
type FetchError struct {
	Account string
	Err     error
}

func (e *FetchError) Error() string { return ErrFetch.Error() }

func (e *FetchError) Unwrap() []error { return []error{ErrFetch, e.Err} }

// UserMessage returns the message shown for err.
func UserMessage(err error) string {
	if errors.Is(err, ErrFetch) {
		return FailureMessage
	}
	return err.Error()
}

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchRepositories(ctx context.Context, account string) ([]domain.Repository, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient *github.Client
	logger     *slog.Logger
}

type options struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures NewGitHubGateway.
type Option func(*options)

// WithBaseURL points the client at another API root, such as a GitHub Enterprise host.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithHTTPClient replaces the HTTP client. Its Timeout is left untouched.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// Requests are unauthenticated.
func NewGitHubGateway(logger *slog.Logger, opts ...Option) (*GitHubGateway, error) {
	o := options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}
	restClient := github.NewClient(httpClient)
	if o.baseURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(o.baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid API URL %q: %w", o.baseURL, err)
		}
		restClient.BaseURL = baseURL
	}
	return &GitHubGateway{
		restClient: restClient,
		logger:     logger,
	}, nil
}

// FetchRepositories issues exactly one request for the repositories of account.
// Only the first page the API returns is used.
func (g *GitHubGateway) FetchRepositories(ctx context.Context, account string) ([]domain.Repository, error) {
	g.logger.Debug("fetching repositories", "account", account)
	start := time.Now()
	repos, resp, err := g.restClient.Repositories.ListByUser(ctx, account, nil)
	if err != nil {
		attrs := []any{"account", account, "err", err}
		if resp != nil {
			attrs = append(attrs, "status", resp.StatusCode)
		}
		g.logger.Warn("repository listing failed", attrs...)
		return nil, &FetchError{Account: account, Err: err}
	}

	result := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		result = append(result, toDomain(r))
	}
	g.logger.Debug("fetched repositories", "account", account, "count", len(result), "elapsed", time.Since(start))
	return result, nil
}

func toDomain(r *github.Repository) domain.Repository {
	repo := domain.Repository{
		ID:        r.GetID(),
		Name:      r.GetName(),
		Language:  r.GetLanguage(),
		UpdatedAt: r.GetUpdatedAt().Time,
	}
	if l := r.GetLicense(); l != nil {
		repo.License = &domain.License{Key: l.GetKey(), Name: l.GetName()}
	}
	return repo
}
