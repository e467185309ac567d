package domain

import "context"

// SignalBus is a lightweight pub/sub channel between the scanner, the
// execution service, and the WebSocket hub. Subscribe returns a channel that
// is closed when ctx is cancelled; Publish never blocks on slow subscribers.
type SignalBus interface {
	Publish(ctx context.Context, channel string, data []byte) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
}

// Well-known bus channels.
const (
	ChannelOpportunities = "opportunities"
	ChannelTrades        = "trades"
	ChannelStatus        = "status"
)
