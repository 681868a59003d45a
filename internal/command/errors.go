package command

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameters reports degenerate input; the factory stays usable
	ErrInvalidParameters = errors.New("invalid parameters")
	// ErrConcurrentMutation rejects a call overlapping another mutation of
	// the same factory
	ErrConcurrentMutation = errors.New("concurrent mutation")
	// ErrFactoryClosed is returned by any call after Commit or Cancel
	ErrFactoryClosed = errors.New("factory closed")
	// ErrPickerBusy rejects a picking session started while another runs
	ErrPickerBusy = errors.New("object picker already running")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameters, fmt.Sprintf(format, args...))
}
