package portal

import "context"

// ResourceType is a network resource type as chrome classifies it.
type ResourceType string

const (
	ResourceFont       ResourceType = "Font"
	ResourceImage      ResourceType = "Image"
	ResourceStylesheet ResourceType = "Stylesheet"
)

// Browser opens isolated browser sessions.
//
// note: fault injection point
type Browser interface {
	// Open creates a new session with its own cookies and storage, the caller
	// must always Close it.
	Open(ctx context.Context) (Session, error)
}

// Session is a single page in an isolated browser context.
type Session interface {
	// Block aborts every request of the given resource types, all other
	// requests are untouched.
	Block(ctx context.Context, types ...ResourceType) error
	// Navigate loads url and waits for the load event.
	Navigate(ctx context.Context, url string) error
	// ClickText clicks the first element matching tag whose text contains
	// text, waiting for it to appear.
	ClickText(ctx context.Context, tag, text string) error
	// Click clicks the element matching selector, waiting for it to appear.
	Click(ctx context.Context, selector string) error
	// Fill replaces the value of the input matching selector.
	Fill(ctx context.Context, selector, value string) error
	// WaitFor blocks until an element matching selector is in the DOM.
	WaitFor(ctx context.Context, selector string) error
	// Text returns the trimmed text of the element matching selector.
	Text(ctx context.Context, selector string) (string, error)
	// Screenshot returns a png of the viewport or of the whole page.
	Screenshot(ctx context.Context, fullPage bool) ([]byte, error)
	// HTML returns a serialized snapshot of the current document.
	HTML(ctx context.Context) (string, error)
	// Close releases every resource held by the session.
	Close() error
}
