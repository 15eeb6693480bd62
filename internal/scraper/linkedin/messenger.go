package linkedin

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"go-linkedin-copilot/internal/browser"
)

// SendMessage navigates to the recruiter profile, opens the compose box
// and types the message like a human would. This is the delegated side
// effect the authorization gate wraps; approval has already happened by
// the time this runs.
func (s *Source) SendMessage(ctx context.Context, page playwright.Page, profileURL, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.log.Info("✉️ opening profile to send message", zap.String("url", profileURL))

	if _, err := page.Goto(profileURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	browser.SimulateReading(page, 1, 2)

	if browser.HasCaptcha(page) {
		return fmt.Errorf("captcha detected, cannot send message")
	}

	//the button label varies between "Message" and a compose link
	msgButton := `button:has-text("Message")`
	if count, err := page.Locator(msgButton).Count(); err != nil || count == 0 {
		msgButton = `a[href*="/messaging/compose"]`
		if count, err := page.Locator(msgButton).Count(); err != nil || count == 0 {
			return fmt.Errorf("could not find Message button")
		}
	}
	if err := browser.HumanClick(page, msgButton); err != nil {
		return fmt.Errorf("failed to open compose box: %w", err)
	}
	browser.RandomDelay(1000, 2000)

	msgBox := ".msg-form__contenteditable"
	if count, err := page.Locator(msgBox).Count(); err != nil || count == 0 {
		msgBox = `[role="textbox"]`
		if count, err := page.Locator(msgBox).Count(); err != nil || count == 0 {
			return fmt.Errorf("could not find message input box")
		}
	}
	if err := browser.HumanType(page, msgBox, message); err != nil {
		return fmt.Errorf("failed to type message: %w", err)
	}
	browser.RandomDelay(1000, 2000)

	sendButton := `button[aria-label="Send"]`
	if count, err := page.Locator(sendButton).Count(); err != nil || count == 0 {
		sendButton = `button:has-text("Send")`
		if count, err := page.Locator(sendButton).Count(); err != nil || count == 0 {
			return fmt.Errorf("could not find Send button")
		}
	}
	if err := browser.HumanClick(page, sendButton); err != nil {
		return fmt.Errorf("failed to click send: %w", err)
	}
	browser.RandomDelay(2000, 3000)

	s.log.Info("✅ message sent", zap.String("url", profileURL))
	return nil
}
