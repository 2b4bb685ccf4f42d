package production

import (
	"github.com/comalice/calcx"
)

// PublishedAction bundles a dispatched action with the snapshot it produced.
type PublishedAction struct {
	Seq      uint64
	Action   calcx.Action
	Snapshot calcx.Snapshot
}

// ChannelPublisher is a calcx.Observer that forwards every action on a
// channel. Sends never block; when the buffer is full the action is dropped
// and counted.
type ChannelPublisher struct {
	ch      chan<- PublishedAction
	seq     uint64
	dropped uint64
}

// NewChannelPublisher creates a publisher writing to ch.
func NewChannelPublisher(ch chan<- PublishedAction) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Observe(a calcx.Action, snap calcx.Snapshot) {
	p.seq++
	select {
	case p.ch <- PublishedAction{Seq: p.seq, Action: a, Snapshot: snap}:
	default:
		p.dropped++
	}
}

// Dropped returns how many actions were discarded on a full channel.
func (p *ChannelPublisher) Dropped() uint64 {
	return p.dropped
}
