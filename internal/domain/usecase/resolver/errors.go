package resolver

import "fmt"

// ErrorKind tags a failed resolution.
type ErrorKind int

const (
	EmptyInput ErrorKind = iota + 1
	NotFound
	ProviderError
)

func (k ErrorKind) String() string {
	switch k {
	case EmptyInput:
		return "EmptyInput"
	case NotFound:
		return "NotFound"
	case ProviderError:
		return "ProviderError"
	default:
		return "Unknown"
	}
}

// ResolutionError is the terminal failure of a resolution.
// StatusCode is only meaningful for ProviderError; 0 means no HTTP answer.
type ResolutionError struct {
	Kind       ErrorKind
	StatusCode int
	Query      string
	Attempts   int
	Err        error
}

// Sentinels for errors.Is. They compare by Kind only.
var (
	ErrEmptyInput    = &ResolutionError{Kind: EmptyInput}
	ErrNotFound      = &ResolutionError{Kind: NotFound}
	ErrProviderError = &ResolutionError{Kind: ProviderError}
)

func (e *ResolutionError) Error() string {
	switch e.Kind {
	case EmptyInput:
		return "resolve city: empty input"
	case NotFound:
		return fmt.Sprintf("resolve city: not found after %d attempts", e.Attempts)
	default:
		if e.Err != nil {
			return fmt.Sprintf("resolve city: provider error %d for query %q: %v", e.StatusCode, e.Query, e.Err)
		}
		return fmt.Sprintf("resolve city: provider error %d for query %q", e.StatusCode, e.Query)
	}
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

func (e *ResolutionError) Is(target error) bool {
	t, ok := target.(*ResolutionError)
	return ok && t.Kind == e.Kind
}

// IsAuthFailure reports a provider rejection of our credentials.
func (e *ResolutionError) IsAuthFailure() bool {
	return e.Kind == ProviderError && e.StatusCode == 401
}
