package browser

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// IsLoggedIn navigates to the feed and checks for the signed-in nav bar.
func IsLoggedIn(page playwright.Page) bool {
	if _, err := page.Goto("https://www.linkedin.com/feed/", playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return false
	}
	_, err := page.WaitForSelector("#global-nav", playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(10000),
	})
	return err == nil
}

// Login performs the credential flow with human-like typing. A CAPTCHA or
// checkpoint page is reported as an error; it needs manual handling.
func Login(page playwright.Page, email, password string) error {
	if _, err := page.Goto("https://www.linkedin.com/login", playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return fmt.Errorf("failed to load login page: %w", err)
	}
	RandomDelay(1000, 2000)

	if err := HumanType(page, "#username", email); err != nil {
		return fmt.Errorf("failed to enter email: %w", err)
	}
	RandomDelay(300, 800)
	if err := HumanType(page, "#password", password); err != nil {
		return fmt.Errorf("failed to enter password: %w", err)
	}
	RandomDelay(300, 800)

	if err := HumanClick(page, "button[type=submit]"); err != nil {
		return fmt.Errorf("failed to submit login form: %w", err)
	}

	if HasCaptcha(page) {
		return fmt.Errorf("captcha or checkpoint encountered, complete it manually and rerun")
	}

	if _, err := page.WaitForSelector("#global-nav", playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(20000),
	}); err != nil {
		return fmt.Errorf("login verification failed - global nav not found")
	}
	return nil
}

// HasCaptcha detects LinkedIn's captcha/checkpoint interstitials.
func HasCaptcha(page playwright.Page) bool {
	count, err := page.Locator(`iframe[title*="captcha"]`).Count()
	if err == nil && count > 0 {
		return true
	}
	url := page.URL()
	return strings.Contains(url, "/checkpoint/") || strings.Contains(url, "/captcha")
}
