package linkedin

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"go-linkedin-copilot/internal/browser"
	"go-linkedin-copilot/internal/scraper"
)

// SearchJobs runs a job search per configured keyword and collects
// canonical job URLs with titles and companies from the result cards.
// Descriptions come later from JobDetails, one page per job.
func (s *Source) SearchJobs(ctx context.Context, page playwright.Page) ([]scraper.Job, error) {
	var jobs []scraper.Job
	seen := mapset.NewSet[string]()

	//warm up on the feed first, straight-to-search looks robotic
	if _, err := page.Goto("https://www.linkedin.com/feed/", playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return nil, fmt.Errorf("failed to load linkedin feed: %w", err)
	}
	browser.RandomDelay(2000, 4000)
	browser.MouseJiggle(page)

	for _, keyword := range s.cfg.Search.JobKeywords {
		if err := ctx.Err(); err != nil {
			return jobs, err
		}
		s.log.Info("🔑 searching jobs", zap.String("keyword", keyword))

		searchURL := fmt.Sprintf(
			"https://www.linkedin.com/jobs/search/?keywords=%s&f_AL=true",
			url.QueryEscape(keyword))
		if _, err := page.Goto(searchURL, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
			Timeout:   playwright.Float(30000),
		}); err != nil {
			s.log.Warn("failed to load job search page", zap.Error(err))
			continue
		}

		if _, err := page.WaitForSelector("li.scaffold-layout__list-item, .job-card-container", playwright.PageWaitForSelectorOptions{
			Timeout: playwright.Float(15000),
		}); err != nil {
			s.log.Warn("job list not found or empty", zap.String("keyword", keyword))
			continue
		}
		browser.RandomDelay(2000, 3000)
		browser.HumanScroll(page)

		items, err := page.Locator("li.scaffold-layout__list-item, li.jobs-search-results__list-item").All()
		if err != nil {
			s.log.Warn("error finding job items", zap.Error(err))
			continue
		}

		for _, item := range items {
			j, err := extractJobCard(item)
			if err != nil {
				continue
			}
			if seen.Add(j.URL) {
				jobs = append(jobs, j)
			}
			if len(jobs) >= s.cfg.Search.MaxJobs {
				break
			}
		}
		browser.RandomDelay(2000, 4000)
	}

	s.log.Info("✅ job search finished", zap.Int("unique", len(jobs)))
	return jobs, nil
}

func extractJobCard(item playwright.Locator) (scraper.Job, error) {
	link := item.Locator("a.job-card-container__link").First()
	href, err := link.GetAttribute("href")
	if err != nil || href == "" {
		return scraper.Job{}, fmt.Errorf("no job link")
	}
	if !strings.HasPrefix(href, "http") {
		href = "https://www.linkedin.com" + href
	}

	j := scraper.Job{URL: scraper.CanonicalURL(href)}
	if title, err := link.TextContent(); err == nil {
		j.Title = strings.TrimSpace(title)
	}
	if company, err := item.Locator(".artdeco-entity-lockup__subtitle").First().TextContent(); err == nil {
		j.Company = strings.TrimSpace(company)
	}
	if location, err := item.Locator(".job-card-container__metadata-wrapper li").First().TextContent(); err == nil {
		j.Location = strings.TrimSpace(location)
	}
	return j, nil
}

// JobDetails opens the job page and fills in description, posted date
// and whether Easy Apply is available.
func (s *Source) JobDetails(ctx context.Context, page playwright.Page, jobURL string) (scraper.Job, error) {
	if err := ctx.Err(); err != nil {
		return scraper.Job{}, err
	}

	if _, err := page.Goto(jobURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return scraper.Job{}, fmt.Errorf("failed to load job page: %w", err)
	}

	//wait for content and fail fast
	if _, err := page.WaitForSelector(".job-details-jobs-unified-top-card__job-title, .jobs-details__main-content", playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(5000),
	}); err != nil {
		return scraper.Job{}, fmt.Errorf("job details not found")
	}
	browser.SimulateReading(page, 1, 3)

	j := scraper.Job{URL: scraper.CanonicalURL(jobURL)}

	if title, err := page.Locator(".job-details-jobs-unified-top-card__job-title").First().TextContent(); err == nil {
		j.Title = strings.TrimSpace(title)
	}
	if company, err := page.Locator(".job-details-jobs-unified-top-card__company-name").First().TextContent(); err == nil {
		j.Company = strings.TrimSpace(company)
	}
	if desc, err := page.Locator(".jobs-description__content, #job-details").First().TextContent(); err == nil {
		j.Description = strings.TrimSpace(desc)
	}
	if posted, err := page.Locator(".job-details-jobs-unified-top-card__primary-description-container span").First().TextContent(); err == nil {
		j.PostedDate = strings.TrimSpace(posted)
	}

	if count, err := page.Locator("button.jobs-apply-button").Count(); err == nil && count > 0 {
		if label, err := page.Locator("button.jobs-apply-button").First().TextContent(); err == nil {
			j.EasyApply = strings.Contains(label, "Easy Apply")
		}
	}

	return j, nil
}
