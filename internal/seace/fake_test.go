package seace

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"go-seace-automation/internal/browser"
)

// fakeSession and fakePage stand in for the automation engine so the
// pipeline can run without a real browser.

type fakeSession struct {
	page    *fakePage
	pageErr error
	opened  int
}

func (s *fakeSession) NewPage() (browser.Page, error) {
	if s.pageErr != nil {
		return nil, s.pageErr
	}
	s.opened++
	return s.page, nil
}

func (s *fakeSession) Close() error {
	return nil
}

type fakePage struct {
	// gotoErrs is consumed one per Goto call; exhaustion means success
	gotoErrs  []error
	gotoCalls int

	clickErr  map[string]error
	fillErr   map[string]error
	filled    map[string]string
	waitErr   map[string]error
	waitElems map[string]*fakeElement
	elems     map[string]*fakeElement

	evalFn       func(script string) (any, error)
	content      string
	contentErr   error
	loadStateErr error

	screenshots []string
	closed      bool
}

func newFakePage() *fakePage {
	return &fakePage{
		clickErr:  map[string]error{},
		fillErr:   map[string]error{},
		filled:    map[string]string{},
		waitErr:   map[string]error{},
		waitElems: map[string]*fakeElement{},
		elems:     map[string]*fakeElement{},
	}
}

func (p *fakePage) Goto(url string, opts browser.GotoOptions) error {
	p.gotoCalls++
	if len(p.gotoErrs) > 0 {
		err := p.gotoErrs[0]
		p.gotoErrs = p.gotoErrs[1:]
		return err
	}
	return nil
}

func (p *fakePage) Click(selector string) error {
	return p.clickErr[selector]
}

func (p *fakePage) Fill(selector, value string) error {
	if err := p.fillErr[selector]; err != nil {
		return err
	}
	p.filled[selector] = value
	return nil
}

func (p *fakePage) WaitForSelector(selector string, opts browser.WaitOptions) (browser.Element, error) {
	if err := p.waitErr[selector]; err != nil {
		return nil, err
	}
	if el, ok := p.waitElems[selector]; ok {
		return el, nil
	}
	return &fakeElement{}, nil
}

func (p *fakePage) WaitForLoadState(state browser.LoadState, timeout time.Duration) error {
	return p.loadStateErr
}

func (p *fakePage) WaitForTimeout(d time.Duration) {}

func (p *fakePage) QuerySelector(selector string) (browser.Element, error) {
	if el, ok := p.elems[selector]; ok {
		return el, nil
	}
	return nil, nil
}

func (p *fakePage) QuerySelectorAll(selector string) ([]browser.Element, error) {
	return nil, nil
}

func (p *fakePage) Evaluate(script string) (any, error) {
	if p.evalFn != nil {
		return p.evalFn(script)
	}
	return true, nil
}

func (p *fakePage) Content() (string, error) {
	if p.contentErr != nil {
		return "", p.contentErr
	}
	return p.content, nil
}

func (p *fakePage) Screenshot(path string) error {
	p.screenshots = append(p.screenshots, path)
	return nil
}

func (p *fakePage) Close() error {
	p.closed = true
	return nil
}

type fakeElement struct {
	text        string
	attrs       map[string]string
	children    map[string]browser.Element
	childrenAll map[string][]browser.Element
	clickErr    error
	clicked     bool
}

func (e *fakeElement) Click() error {
	if e.clickErr != nil {
		return e.clickErr
	}
	e.clicked = true
	return nil
}

func (e *fakeElement) InnerText() (string, error) {
	return e.text, nil
}

func (e *fakeElement) GetAttribute(name string) (string, error) {
	return e.attrs[name], nil
}

func (e *fakeElement) QuerySelector(selector string) (browser.Element, error) {
	if el, ok := e.children[selector]; ok {
		return el, nil
	}
	return nil, nil
}

func (e *fakeElement) QuerySelectorAll(selector string) ([]browser.Element, error) {
	return e.childrenAll[selector], nil
}

// etapaRow builds one well-formed cronograma row.
func etapaRow(etapa, inicio, fin string) *fakeElement {
	cell := func(text string) *fakeElement {
		return &fakeElement{children: map[string]browser.Element{
			selCeldaOutput: &fakeElement{text: text},
		}}
	}
	return &fakeElement{childrenAll: map[string][]browser.Element{
		"td": {cell(etapa), cell(inicio), cell(fin)},
	}}
}

// pipelinePage returns a page scripted for a fully successful query:
// search form present, one results row with action icons, cronograma
// with two rows, member link present, contract number in the markup.
func pipelinePage() *fakePage {
	page := newFakePage()

	page.waitElems[selUltimaFila] = &fakeElement{children: map[string]browser.Element{
		selIconoHistorial: &fakeElement{},
	}}

	page.waitElems[selTablaCronograma] = &fakeElement{childrenAll: map[string][]browser.Element{
		"tr": {
			etapaRow("Convocatoria", "01/02/2023", "03/02/2023"),
			etapaRow("Buena Pro", "10/02/2023", "10/02/2023"),
		},
	}}

	page.content = `<html><body><span>Contrato N° AB-123/2024</span></body></html>`
	return page
}

func testService(session browser.Session) *Service {
	return &Service{
		session:         session,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		baseURL:         "https://portal.test/buscador",
		esperaReintento: time.Millisecond,
	}
}

var errTimeout = errors.New("timeout 30000ms exceeded")
