package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Manager owns the shared browser process. Each application attempt gets its
// own browsing context from NewSession; contexts are never shared between
// attempts.
type Manager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cookies []playwright.OptionalCookie
}

func NewManager(headless bool) (*Manager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch chromium browser: %w", err)
	}

	return &Manager{pw: pw, browser: browser}, nil
}

// SetCookies seeds every new session with the given cookies, for portals
// that require an authenticated session.
func (m *Manager) SetCookies(cookies []playwright.OptionalCookie) {
	m.cookies = cookies
}

// NewSession opens an isolated browsing context with one page.
func (m *Manager) NewSession() (playwright.BrowserContext, playwright.Page, error) {
	ctx, err := m.browser.NewContext()
	if err != nil {
		return nil, nil, fmt.Errorf("could not create browser context: %w", err)
	}

	if len(m.cookies) > 0 {
		if err := ctx.AddCookies(m.cookies); err != nil {
			ctx.Close()
			return nil, nil, fmt.Errorf("could not add cookies: %w", err)
		}
	}

	page, err := ctx.NewPage()
	if err != nil {
		ctx.Close()
		return nil, nil, fmt.Errorf("could not create page: %w", err)
	}

	return ctx, page, nil
}

func (m *Manager) Close() error {
	if m.browser != nil {
		if err := m.browser.Close(); err != nil {
			return err
		}
	}
	if m.pw != nil {
		return m.pw.Stop()
	}
	return nil
}
