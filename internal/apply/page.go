package apply

// Page is the browser surface the executor drives. Implementations wrap a
// real browser page; tests substitute a scripted fake.
type Page interface {
	//Goto navigates and waits for the DOM to be loaded
	Goto(url string) error

	//Exists reports whether any element currently matches the selector
	Exists(selector string) (bool, error)

	//Fill waits for the first match to be visible, clears it and sets value
	Fill(selector, value string) error

	//Value reads back the current value of the first match
	Value(selector string) (string, error)

	//Click activates the first match
	Click(selector string) error

	//Screenshot captures the full page to path
	Screenshot(path string) error
}

// Session is one isolated browsing context owning a single page. Sessions
// are never shared between attempts; form state and cookies must not leak
// between jobs.
type Session interface {
	Page() Page
	Close()
}

// SessionFactory opens a fresh isolated session per application attempt.
type SessionFactory func() (Session, error)
