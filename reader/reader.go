// Package reader defines the interface for decoding on-disk tensor artifacts
// into the in-memory model.
package reader

import "github.com/sonnes/tensorview/core"

// Reader decodes a tensor artifact.
type Reader interface {
	// ReadFile decodes the artifact at path. Implementations open and close
	// the file within the call and keep no state between calls.
	ReadFile(path string) (*core.Artifact, error)
}
