// Package chunker provides sentinel errors for strategy selection.
package chunker

import "errors"

// ErrUnknownStrategy is returned when a strategy name is neither auto nor one
// of the registered strategies. Unknown names are never silently downgraded
// to the default strategy.
var ErrUnknownStrategy = errors.New("unknown chunking strategy")
