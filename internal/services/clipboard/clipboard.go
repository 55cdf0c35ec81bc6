// Package clipboard provides access to the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a clipboard service implementation.
func NewService() *Service {
	return &Service{}
}

// Copy writes text to the system clipboard. Platforms without a clipboard
// integration report an error instead of failing silently.
func (service *Service) Copy(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard is not supported on this platform")
	}
	return clipboard.WriteAll(text)
}

var _ Copier = (*Service)(nil)
