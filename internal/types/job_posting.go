// Package types defines the shared data model for the cover letter pipeline.
package types

import "fmt"

// SourceKind identifies how a job posting was obtained
type SourceKind string

const (
	// SourceURL means the posting was fetched and parsed from a URL
	SourceURL SourceKind = "url"
	// SourceManual means the posting fields were supplied by the user
	SourceManual SourceKind = "manual"
)

// JobPosting holds the resolved details of a target job.
// A JobPosting is immutable once created by the resolver.
type JobPosting struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Description string     `json:"description"`
	Source      SourceKind `json:"source"`
	URL         string     `json:"url,omitempty"`
}

// Validate checks that the posting carries the fields downstream stages need
func (j *JobPosting) Validate() error {
	if j.Title == "" {
		return fmt.Errorf("job posting: title is required")
	}
	if j.Company == "" {
		return fmt.Errorf("job posting: company is required")
	}
	if j.Source != SourceURL && j.Source != SourceManual {
		return fmt.Errorf("job posting: unknown source %q", j.Source)
	}
	return nil
}

// JobRequest is the inbound description of a job: either a URL to resolve,
// or the manual (title, company, description) triple. Never both.
type JobRequest struct {
	URL         string `json:"job_url,omitempty"`
	Title       string `json:"job_title,omitempty" validate:"required_without=URL"`
	Company     string `json:"company_name,omitempty" validate:"required_without=URL"`
	Description string `json:"job_description,omitempty" validate:"required_without=URL"`
}

// Manual reports whether the request should be resolved without a fetch
func (r *JobRequest) Manual() bool {
	return r.URL == ""
}

// Validate checks that the request is resolvable in exactly one mode
func (r *JobRequest) Validate() error {
	if r.URL != "" {
		return nil
	}
	if r.Title == "" || r.Company == "" || r.Description == "" {
		return fmt.Errorf("job request: provide a job URL or all of title, company and description")
	}
	return nil
}
