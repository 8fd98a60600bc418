package models

import "fmt"

// DocumentReadError reports a document that could not be parsed. The whole
// document fails; no partial pages are returned.
type DocumentReadError struct {
	Filename string
	Err      error
}

func (e *DocumentReadError) Error() string {
	return fmt.Sprintf("read document %s: %v", e.Filename, e.Err)
}

func (e *DocumentReadError) Unwrap() error { return e.Err }

// EmptyInputError is returned when an index build is requested with no chunks.
type EmptyInputError struct {
	Provider string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("no chunks to index for provider %q", e.Provider)
}

// IndexNotFoundError is returned when loading an index that was never built.
type IndexNotFoundError struct {
	Provider string
	Path     string
}

func (e *IndexNotFoundError) Error() string {
	return fmt.Sprintf("vector index for provider %q not found: %s does not exist", e.Provider, e.Path)
}

// UnknownProviderError is returned for a provider name outside the supported set.
type UnknownProviderError struct {
	Name string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider: %q", e.Name)
}

// InvalidRequestError marks a malformed client request, e.g. an empty question.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string { return e.Reason }
