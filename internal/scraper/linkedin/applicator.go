package linkedin

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"go-linkedin-copilot/internal/browser"
)

// maxEasyApplySteps bounds the multi-page Easy Apply wizard; past this
// the form wants input we cannot answer and the attempt is abandoned.
const maxEasyApplySteps = 5

// Apply runs the Easy Apply flow on a job page. Only Easy Apply is
// supported: external application sites are out of reach. If the wizard
// asks questions beyond the prefilled ones, the application is discarded
// (not submitted half-filled) and an error is returned so nothing gets
// recorded.
func (s *Source) Apply(ctx context.Context, page playwright.Page, jobURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.log.Info("📄 opening job to apply", zap.String("url", jobURL))

	if _, err := page.Goto(jobURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return fmt.Errorf("failed to load job page: %w", err)
	}
	browser.SimulateReading(page, 1, 3)

	applyButton := "button.jobs-apply-button"
	if count, err := page.Locator(applyButton).Count(); err != nil || count == 0 {
		return fmt.Errorf("could not find apply button")
	}
	if err := browser.HumanClick(page, applyButton); err != nil {
		return fmt.Errorf("failed to open apply dialog: %w", err)
	}
	browser.RandomDelay(1500, 2500)

	for step := 0; step < maxEasyApplySteps; step++ {
		//submit wins over next/review when present
		if count, err := page.Locator(`button[aria-label="Submit application"]`).Count(); err == nil && count > 0 {
			if err := browser.HumanClick(page, `button[aria-label="Submit application"]`); err != nil {
				return fmt.Errorf("failed to submit application: %w", err)
			}
			browser.RandomDelay(2000, 3000)
			s.log.Info("✅ application submitted", zap.String("url", jobURL))
			return nil
		}

		advanced := false
		for _, sel := range []string{
			`button[aria-label="Continue to next step"]`,
			`button[aria-label="Review your application"]`,
		} {
			if count, err := page.Locator(sel).Count(); err == nil && count > 0 {
				if err := browser.HumanClick(page, sel); err != nil {
					return fmt.Errorf("failed to advance apply wizard: %w", err)
				}
				browser.RandomDelay(1000, 2000)
				advanced = true
				break
			}
		}
		if !advanced {
			break
		}
	}

	//abandon cleanly so a half-filled form is never submitted
	if count, err := page.Locator(`button[aria-label="Dismiss"]`).Count(); err == nil && count > 0 {
		_ = browser.HumanClick(page, `button[aria-label="Dismiss"]`)
		if count, err := page.Locator(`button:has-text("Discard")`).Count(); err == nil && count > 0 {
			_ = browser.HumanClick(page, `button:has-text("Discard")`)
		}
	}
	return fmt.Errorf("easy apply wizard requires answers beyond the prefilled steps")
}
