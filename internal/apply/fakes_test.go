package apply

import (
	"errors"
	"sync"
)

// fakePage is a scripted Page. Selectors listed in present exist; fills are
// recorded and read back verbatim unless overridden via values.
type fakePage struct {
	mu sync.Mutex

	present map[string]bool
	values  map[string]string // read-back override per selector

	gotoErr   error
	fillErr   error
	clickErr  error
	shotErr   error
	existsErr map[string]error

	gotoURLs    []string
	fills       map[string]string
	clicks      []string
	screenshots []string
}

func newFakePage(present ...string) *fakePage {
	p := &fakePage{
		present: make(map[string]bool),
		values:  make(map[string]string),
		fills:   make(map[string]string),
	}
	for _, sel := range present {
		p.present[sel] = true
	}
	return p
}

func (p *fakePage) Goto(url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gotoURLs = append(p.gotoURLs, url)
	return p.gotoErr
}

func (p *fakePage) Exists(selector string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err, ok := p.existsErr[selector]; ok {
		return false, err
	}
	return p.present[selector], nil
}

func (p *fakePage) Fill(selector, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fillErr != nil {
		return p.fillErr
	}
	p.fills[selector] = value
	return nil
}

func (p *fakePage) Value(selector string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.values[selector]; ok {
		return v, nil
	}
	return p.fills[selector], nil
}

func (p *fakePage) Click(selector string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clicks = append(p.clicks, selector)
	return p.clickErr
}

func (p *fakePage) Screenshot(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.shotErr != nil {
		return p.shotErr
	}
	p.screenshots = append(p.screenshots, path)
	return nil
}

type fakeSession struct {
	page   *fakePage
	closed bool
}

func (s *fakeSession) Page() Page { return s.page }
func (s *fakeSession) Close()     { s.closed = true }

func fakeFactory(page *fakePage) (SessionFactory, *fakeSession) {
	session := &fakeSession{page: page}
	return func() (Session, error) { return session, nil }, session
}

func failingFactory() SessionFactory {
	return func() (Session, error) { return nil, errors.New("browser not installed") }
}
