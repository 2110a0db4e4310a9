package tryon

import "context"

// Result is the normalized output of one try-on backend. Exactly one of the
// two fields is set: remote backends hand back a URL, local ones hand back
// the image payload itself.
type Result struct {
	ImageRef  string
	ImageData []byte
}

// Provider describes one backend in the fallback chain: an availability
// predicate (usually a credential check) and an invoke function taking the
// person and garment image references. Adding or removing a backend is a
// change to the provider list, not to the orchestrator's control flow.
type Provider struct {
	Name      string
	Available func() bool
	Invoke    func(ctx context.Context, humanRef, garmentRef string) (*Result, error)
}

// Attempt records the outcome of one provider in a try-on run.
type Attempt struct {
	Provider    string `json:"provider"`
	Status      string `json:"status"` // "succeeded", "failed" or "skipped"
	ErrorReason string `json:"error_reason,omitempty"`
}

const (
	attemptSucceeded = "succeeded"
	attemptFailed    = "failed"
	attemptSkipped   = "skipped"
)
