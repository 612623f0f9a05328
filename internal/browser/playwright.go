package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

const (
	viewportWidth  = 1920
	viewportHeight = 1080
)

// Manager owns the single playwright instance and the single headless
// browser. One Manager per service scope; pages are per-query.
type Manager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

func NewManager(headless bool) (*Manager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		// Sandbox flags for containerized environments.
		Args: []string{"--no-sandbox", "--disable-setuid-sandbox"},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}

	return &Manager{pw: pw, browser: browser}, nil
}

// NewPage opens a fresh tab sized to the fixed viewport.
func (m *Manager) NewPage() (Page, error) {
	p, err := m.browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	if err := p.SetViewportSize(viewportWidth, viewportHeight); err != nil {
		p.Close()
		return nil, fmt.Errorf("could not set viewport: %w", err)
	}
	return &playwrightPage{page: p}, nil
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

// playwrightPage adapts playwright.Page to the driver Page interface.
type playwrightPage struct {
	page playwright.Page
}

func ms(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

func waitUntil(state LoadState) *playwright.WaitUntilState {
	switch state {
	case LoadStateDomContentLoaded:
		return playwright.WaitUntilStateDomcontentloaded
	case LoadStateNetworkIdle:
		return playwright.WaitUntilStateNetworkidle
	default:
		return playwright.WaitUntilStateLoad
	}
}

func loadState(state LoadState) *playwright.LoadState {
	switch state {
	case LoadStateDomContentLoaded:
		return playwright.LoadStateDomcontentloaded
	case LoadStateNetworkIdle:
		return playwright.LoadStateNetworkidle
	default:
		return playwright.LoadStateLoad
	}
}

func (p *playwrightPage) Goto(url string, opts GotoOptions) error {
	pwOpts := playwright.PageGotoOptions{}
	if opts.WaitUntil != "" {
		pwOpts.WaitUntil = waitUntil(opts.WaitUntil)
	}
	if opts.Timeout > 0 {
		pwOpts.Timeout = ms(opts.Timeout)
	}
	_, err := p.page.Goto(url, pwOpts)
	return err
}

func (p *playwrightPage) Click(selector string) error {
	return p.page.Click(selector)
}

func (p *playwrightPage) Fill(selector, value string) error {
	return p.page.Fill(selector, value)
}

func (p *playwrightPage) WaitForSelector(selector string, opts WaitOptions) (Element, error) {
	pwOpts := playwright.PageWaitForSelectorOptions{}
	if opts.Timeout > 0 {
		pwOpts.Timeout = ms(opts.Timeout)
	}
	if opts.Visible {
		pwOpts.State = playwright.WaitForSelectorStateVisible
	}
	handle, err := p.page.WaitForSelector(selector, pwOpts)
	if err != nil {
		return nil, err
	}
	if handle == nil {
		return nil, nil
	}
	return &playwrightElement{handle: handle}, nil
}

func (p *playwrightPage) WaitForLoadState(state LoadState, timeout time.Duration) error {
	pwOpts := playwright.PageWaitForLoadStateOptions{State: loadState(state)}
	if timeout > 0 {
		pwOpts.Timeout = ms(timeout)
	}
	return p.page.WaitForLoadState(pwOpts)
}

func (p *playwrightPage) WaitForTimeout(d time.Duration) {
	p.page.WaitForTimeout(float64(d.Milliseconds()))
}

func (p *playwrightPage) QuerySelector(selector string) (Element, error) {
	handle, err := p.page.QuerySelector(selector)
	if err != nil || handle == nil {
		return nil, err
	}
	return &playwrightElement{handle: handle}, nil
}

func (p *playwrightPage) QuerySelectorAll(selector string) ([]Element, error) {
	handles, err := p.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	elements := make([]Element, 0, len(handles))
	for _, h := range handles {
		elements = append(elements, &playwrightElement{handle: h})
	}
	return elements, nil
}

func (p *playwrightPage) Evaluate(script string) (any, error) {
	return p.page.Evaluate(script)
}

func (p *playwrightPage) Content() (string, error) {
	return p.page.Content()
}

func (p *playwrightPage) Screenshot(path string) error {
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

func (p *playwrightPage) Close() error {
	return p.page.Close()
}

// playwrightElement adapts playwright.ElementHandle.
type playwrightElement struct {
	handle playwright.ElementHandle
}

func (e *playwrightElement) Click() error {
	return e.handle.Click()
}

func (e *playwrightElement) InnerText() (string, error) {
	return e.handle.InnerText()
}

func (e *playwrightElement) GetAttribute(name string) (string, error) {
	return e.handle.GetAttribute(name)
}

func (e *playwrightElement) QuerySelector(selector string) (Element, error) {
	handle, err := e.handle.QuerySelector(selector)
	if err != nil || handle == nil {
		return nil, err
	}
	return &playwrightElement{handle: handle}, nil
}

func (e *playwrightElement) QuerySelectorAll(selector string) ([]Element, error) {
	handles, err := e.handle.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	elements := make([]Element, 0, len(handles))
	for _, h := range handles {
		elements = append(elements, &playwrightElement{handle: h})
	}
	return elements, nil
}
