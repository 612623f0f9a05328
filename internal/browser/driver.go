// Narrow view over the automation engine.
// The navigation pipeline talks to these interfaces only, so it can be
// exercised against a fake without a real browser.

package browser

import "time"

// LoadState mirrors the engine's page load states.
type LoadState string

const (
	LoadStateLoad             LoadState = "load"
	LoadStateDomContentLoaded LoadState = "domcontentloaded"
	LoadStateNetworkIdle      LoadState = "networkidle"
)

type GotoOptions struct {
	WaitUntil LoadState
	Timeout   time.Duration
}

type WaitOptions struct {
	Timeout time.Duration
	// Visible requires the element to be attached AND visible.
	Visible bool
}

// Element is one rendered element handle.
// QuerySelector returns (nil, nil) when no element matches.
type Element interface {
	Click() error
	InnerText() (string, error)
	GetAttribute(name string) (string, error)
	QuerySelector(selector string) (Element, error)
	QuerySelectorAll(selector string) ([]Element, error)
}

// Page is one browser tab. A Page is owned by exactly one in-flight
// query and must not be shared across concurrent queries.
type Page interface {
	Goto(url string, opts GotoOptions) error
	Click(selector string) error
	Fill(selector, value string) error
	WaitForSelector(selector string, opts WaitOptions) (Element, error)
	WaitForLoadState(state LoadState, timeout time.Duration) error
	// WaitForTimeout is a fixed settle delay, for widgets with no usable
	// completion signal.
	WaitForTimeout(d time.Duration)
	QuerySelector(selector string) (Element, error)
	QuerySelectorAll(selector string) ([]Element, error)
	Evaluate(script string) (any, error)
	Content() (string, error)
	Screenshot(path string) error
	Close() error
}

// Session hands out pages under one shared browser instance.
type Session interface {
	NewPage() (Page, error)
	Close() error
}
