package apply

import (
	"time"

	"autocareer/internal/browser"

	"github.com/playwright-community/playwright-go"
)

// NewPlaywrightSessionFactory adapts the shared browser manager to the
// executor's session contract. Every call opens a fresh isolated context.
func NewPlaywrightSessionFactory(m *browser.Manager, navTimeout, fillTimeout time.Duration) SessionFactory {
	return func() (Session, error) {
		ctx, page, err := m.NewSession()
		if err != nil {
			return nil, err
		}
		return &pwSession{
			ctx: ctx,
			page: &pwPage{
				page:        page,
				navTimeout:  navTimeout,
				fillTimeout: fillTimeout,
			},
		}, nil
	}
}

type pwSession struct {
	ctx  playwright.BrowserContext
	page *pwPage
}

func (s *pwSession) Page() Page { return s.page }

func (s *pwSession) Close() {
	s.ctx.Close()
}

type pwPage struct {
	page        playwright.Page
	navTimeout  time.Duration
	fillTimeout time.Duration
}

func (p *pwPage) Goto(url string) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(p.navTimeout.Milliseconds())),
	})
	return err
}

func (p *pwPage) Exists(selector string) (bool, error) {
	count, err := p.page.Locator(selector).Count()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (p *pwPage) Fill(selector, value string) error {
	locator := p.page.Locator(selector).First()

	if err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(p.fillTimeout.Milliseconds())),
	}); err != nil {
		return err
	}

	if err := locator.Clear(); err != nil {
		return err
	}
	return locator.Fill(value)
}

func (p *pwPage) Value(selector string) (string, error) {
	return p.page.Locator(selector).First().InputValue()
}

func (p *pwPage) Click(selector string) error {
	return p.page.Locator(selector).First().Click()
}

func (p *pwPage) Screenshot(path string) error {
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}
