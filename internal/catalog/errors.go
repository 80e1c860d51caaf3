package catalog

import "fmt"

// ErrorKind classifies why a load failed.
type ErrorKind string

const (
	KindFetch  ErrorKind = "fetch"
	KindParse  ErrorKind = "parse"
	KindSchema ErrorKind = "schema"
)

// LoadError is returned by Loader.Load for every failure.
type LoadError struct {
	Kind   ErrorKind
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog: %s %s: %v", e.Kind, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SchemaError points at the first record that failed validation.
type SchemaError struct {
	List  string // "projects" or "extraPages"
	Index int
	Field string
	Rule  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s[%d].%s failed %q", e.List, e.Index, e.Field, e.Rule)
}

// StatusError reports a non-success HTTP response from a remote source.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}
