// Package jobinfo resolves a job request into a JobPosting, either by
// fetching and parsing a posting URL or by passing manual fields through.
package jobinfo

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/coverletter-agent/internal/fetch"
	"github.com/jonathan/coverletter-agent/internal/types"
)

// PageFetcher retrieves the HTML of a posting page. It exists so tests can
// observe and fake the single outbound request URL mode performs.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// Resolver resolves job requests. Manual requests never touch the network.
type Resolver struct {
	fetcher  PageFetcher
	validate *validator.Validate
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFetcher replaces the default HTTP page fetcher.
func WithFetcher(f PageFetcher) Option {
	return func(r *Resolver) { r.fetcher = f }
}

// NewResolver creates a Resolver. By default URL mode fetches over plain
// HTTP with a headless-browser fallback when useBrowser is set.
func NewResolver(useBrowser bool, opts ...Option) *Resolver {
	r := &Resolver{
		fetcher:  &httpFetcher{useBrowser: useBrowser},
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve turns a request into an immutable JobPosting.
// URL mode performs exactly one outbound fetch and fails with *FetchError
// if the page is unreachable or the fields cannot be located. No retries.
func (r *Resolver) Resolve(ctx context.Context, req types.JobRequest) (*types.JobPosting, error) {
	if req.Manual() {
		return r.resolveManual(req)
	}
	return r.resolveURL(ctx, req.URL)
}

func (r *Resolver) resolveManual(req types.JobRequest) (*types.JobPosting, error) {
	if err := r.validate.Struct(&req); err != nil {
		return nil, &ValidationError{Field: firstFailedField(err)}
	}
	// Re-check after trimming: validator accepts whitespace-only values
	for field, value := range map[string]string{
		"job_title":       req.Title,
		"company_name":    req.Company,
		"job_description": req.Description,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, &ValidationError{Field: field}
		}
	}

	return &types.JobPosting{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		Source:      types.SourceManual,
	}, nil
}

func (r *Resolver) resolveURL(ctx context.Context, url string) (*types.JobPosting, error) {
	html, err := r.fetcher.FetchPage(ctx, url)
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, &FetchError{URL: url, Message: "page unreachable", Cause: err}
	}

	posting, err := ExtractPosting(html)
	if err != nil {
		return nil, &FetchError{URL: url, Message: "could not locate job fields", Cause: err}
	}
	posting.Source = types.SourceURL
	posting.URL = url

	log.Printf("Resolved job: %s at %s", posting.Title, posting.Company)
	return posting, nil
}

func firstFailedField(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return strings.ToLower(errs[0].Field())
	}
	return "job fields"
}

// httpFetcher is the default PageFetcher: one plain HTTP fetch, optionally
// re-rendered in a headless browser when the page looks JS-only.
type httpFetcher struct {
	useBrowser bool
}

func (f *httpFetcher) FetchPage(ctx context.Context, url string) (string, error) {
	result, err := fetch.Page(ctx, url, nil)
	if err != nil {
		return "", &FetchError{URL: url, Message: "page unreachable", Cause: err}
	}

	if f.useBrowser {
		text, terr := fetch.MainText(result.HTML, fetch.DescriptionSelectors())
		if terr == nil && fetch.NeedsBrowser(text) {
			html, berr := fetch.RenderedHTML(ctx, url, 30*time.Second, false)
			if berr == nil {
				return html, nil
			}
			log.Printf("Browser fallback failed for %s: %v", url, berr)
		}
	}

	return result.HTML, nil
}
