package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrStaleOpportunity   = errors.New("opportunity not found or stale")
	ErrLiveDisabled       = errors.New("live execution is disabled")
	ErrInsufficientQuotes = errors.New("fewer than two quotes collected")
	ErrUnsupportedChain   = errors.New("unsupported chain")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrNoRoute            = errors.New("no route for pair")
	ErrContextDone        = errors.New("context cancelled")
)
