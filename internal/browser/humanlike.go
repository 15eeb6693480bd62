package browser

import (
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

// RandomDelay waits for a random duration between min and max milliseconds
func RandomDelay(min, max int) {
	if min >= max {
		time.Sleep(time.Duration(min) * time.Millisecond)
		return
	}
	duration := rand.Intn(max-min+1) + min
	time.Sleep(time.Duration(duration) * time.Millisecond)
}

// HumanType clicks the field and types with per-keystroke jitter plus the
// occasional longer pause, like someone thinking mid-sentence.
func HumanType(page playwright.Page, selector, text string) error {
	field := page.Locator(selector)
	if err := field.Click(); err != nil {
		return err
	}
	RandomDelay(200, 500)

	for _, ch := range text {
		if err := page.Keyboard().Type(string(ch)); err != nil {
			return err
		}
		RandomDelay(50, 150)
		if rand.Float64() < 0.1 {
			RandomDelay(300, 800)
		}
	}
	return nil
}

// HumanClick moves the mouse to a random point inside the element before
// clicking, instead of the dead-center click bots produce.
func HumanClick(page playwright.Page, selector string) error {
	el := page.Locator(selector).First()

	box, err := el.BoundingBox()
	if err == nil && box != nil {
		x := box.X + box.Width*(0.2+rand.Float64()*0.6)
		y := box.Y + box.Height*(0.2+rand.Float64()*0.6)
		if err := page.Mouse().Move(x, y); err != nil {
			return err
		}
		RandomDelay(100, 300)
	}

	if err := el.Click(); err != nil {
		return err
	}
	RandomDelay(500, 1500)
	return nil
}

// HumanScroll simulates human-like scrolling behavior
func HumanScroll(page playwright.Page) error {
	// Scroll down in steps
	for i := 0; i < 5; i++ {
		if _, err := page.Evaluate("window.scrollBy(0, window.innerHeight / 2)"); err != nil {
			return err
		}
		RandomDelay(500, 1500)
	}
	// Scroll back up a bit (random behavior)
	if _, err := page.Evaluate("window.scrollBy(0, -200)"); err != nil {
		return err
	}
	return nil
}

// MouseJiggle simulates random mouse movements to prevent idle detection
func MouseJiggle(page playwright.Page) error {
	viewportSize := page.ViewportSize()
	if viewportSize == nil {
		return nil
	}
	for i := 0; i < 3; i++ {
		x := rand.Intn(viewportSize.Width)
		y := rand.Intn(viewportSize.Height)
		if err := page.Mouse().Move(float64(x), float64(y)); err != nil {
			return err
		}
		RandomDelay(100, 300)
	}
	return nil
}

// SimulateReading idles on the page for a few seconds with light
// scrolling, approximating someone actually reading it.
func SimulateReading(page playwright.Page, minSeconds, maxSeconds int) {
	RandomDelay(minSeconds*1000, maxSeconds*1000)
	if rand.Float64() < 0.5 {
		page.Mouse().Wheel(0, float64(rand.Intn(400)+200))
		RandomDelay(500, 1500)
	}
}
