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
	"go-linkedin-copilot/internal/config"
	"go-linkedin-copilot/internal/scraper"
)

// Source implements recruiter and job discovery on LinkedIn. Selectors
// are glue over the current markup and are expected to rot.
type Source struct {
	cfg *config.Config
	log *zap.Logger
}

func NewSource(cfg *config.Config, log *zap.Logger) *Source {
	return &Source{cfg: cfg, log: log}
}

func (s *Source) Name() string {
	return "LinkedIn"
}

// SearchRecruiters runs a people search for each configured keyword and
// returns unique recruiter profiles, canonical URLs only.
func (s *Source) SearchRecruiters(ctx context.Context, page playwright.Page) ([]scraper.Recruiter, error) {
	var recruiters []scraper.Recruiter
	seen := mapset.NewSet[string]()

	for _, keyword := range s.cfg.Search.RecruiterKeywords {
		if err := ctx.Err(); err != nil {
			return recruiters, err
		}
		s.log.Info("🔑 searching recruiters", zap.String("keyword", keyword))

		found, err := s.searchPeople(page, keyword)
		if err != nil {
			s.log.Warn("recruiter search failed for keyword",
				zap.String("keyword", keyword), zap.Error(err))
			continue
		}

		for _, r := range found {
			if seen.Add(r.URL) {
				recruiters = append(recruiters, r)
			}
		}
		browser.RandomDelay(2000, 4000)
	}

	s.log.Info("✅ recruiter search finished", zap.Int("unique", len(recruiters)))
	return recruiters, nil
}

func (s *Source) searchPeople(page playwright.Page, keyword string) ([]scraper.Recruiter, error) {
	searchURL := fmt.Sprintf(
		"https://www.linkedin.com/search/results/people/?keywords=%s",
		url.QueryEscape(keyword))

	if _, err := page.Goto(searchURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return nil, fmt.Errorf("failed to load people search: %w", err)
	}

	if browser.HasCaptcha(page) {
		return nil, fmt.Errorf("captcha detected, manual intervention required")
	}

	if _, err := page.WaitForSelector("li.reusable-search__result-container, .search-results-container", playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(15000),
	}); err != nil {
		return nil, fmt.Errorf("search results not found")
	}
	browser.RandomDelay(1500, 3000)
	browser.HumanScroll(page)

	cards, err := page.Locator("li.reusable-search__result-container").All()
	if err != nil {
		return nil, fmt.Errorf("error finding result cards: %w", err)
	}

	var recruiters []scraper.Recruiter
	for _, card := range cards {
		r, err := extractRecruiter(card)
		if err != nil {
			continue
		}
		recruiters = append(recruiters, r)
	}
	return recruiters, nil
}

func extractRecruiter(card playwright.Locator) (scraper.Recruiter, error) {
	link := card.Locator(`a[href*="/in/"]`).First()
	href, err := link.GetAttribute("href")
	if err != nil || href == "" {
		return scraper.Recruiter{}, fmt.Errorf("no profile link")
	}
	if !strings.HasPrefix(href, "http") {
		href = "https://www.linkedin.com" + href
	}

	r := scraper.Recruiter{URL: scraper.CanonicalURL(href)}

	if name, err := card.Locator(".entity-result__title-text span[aria-hidden=true]").First().TextContent(); err == nil {
		r.Name = strings.TrimSpace(name)
	}
	if headline, err := card.Locator(".entity-result__primary-subtitle").First().TextContent(); err == nil {
		r.Headline = strings.TrimSpace(headline)
		r.Title, r.Company = splitHeadline(r.Headline)
	}
	return r, nil
}

// splitHeadline pulls title and company out of "Technical Recruiter at Acme".
func splitHeadline(headline string) (title, company string) {
	for _, sep := range []string{" at ", " @ ", " | "} {
		if i := strings.Index(headline, sep); i >= 0 {
			return strings.TrimSpace(headline[:i]), strings.TrimSpace(headline[i+len(sep):])
		}
	}
	return headline, ""
}
