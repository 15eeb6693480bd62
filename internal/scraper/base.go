// Define interfaces for all discovery sources
// Ensure consistency

package scraper

import (
	"context"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// Recruiter is one discovered recruiter profile. URL is the canonical
// profile URL (tracking params stripped) and serves as the dedup key.
type Recruiter struct {
	URL            string
	Name           string
	Title          string
	Company        string
	Headline       string
	About          string
	RelevanceScore float64
}

// Job is one discovered job posting, keyed by its canonical URL.
type Job struct {
	URL         string
	Title       string
	Company     string
	Location    string
	Description string
	PostedDate  string
	EasyApply   bool
	MatchScore  float64
}

//RecruiterSource finds recruiter profiles on a platform
type RecruiterSource interface {
	SearchRecruiters(ctx context.Context, page playwright.Page) ([]Recruiter, error)
	Name() string
}

//JobSource finds job postings on a platform
type JobSource interface {
	SearchJobs(ctx context.Context, page playwright.Page) ([]Job, error)
	JobDetails(ctx context.Context, page playwright.Page, jobURL string) (Job, error)
	Name() string
}

// CanonicalURL strips query parameters from a discovered link.
// LinkedIn URLs carry dynamic tracking params (?refId=..., ?trackingId=...)
// which make the same target appear as different URLs; removing them
// yields the stable key the ledger dedups on.
func CanonicalURL(raw string) string {
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimSuffix(raw, "/")
}
