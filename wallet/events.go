package wallet

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// EventKind enumerates the session-lifecycle notifications delivered to
// subscribers.
type EventKind uint8

const (
	EventConnected EventKind = iota
	EventDisconnected
	EventAccountSwitched
	EventChainChanged
	EventAuthorizationRejected
)

// String returns a human-readable event name.
func (k EventKind) String() string {
	switch k {
	case EventConnected:
		return "walletConnected"
	case EventDisconnected:
		return "walletDisconnected"
	case EventAccountSwitched:
		return "accountSwitched"
	case EventChainChanged:
		return "chainChanged"
	case EventAuthorizationRejected:
		return "authorizationRejected"
	default:
		return "unknown"
	}
}

// Event is one session-lifecycle notification. Only the fields relevant to
// the kind are set.
type Event struct {
	Kind    EventKind
	Session Session        // snapshot, set for EventConnected
	Address common.Address // set for EventAccountSwitched
	ChainID *big.Int       // set for EventChainChanged
	Err     error          // set for EventAuthorizationRejected
}

// subscribers is an explicit listener registry. Dispatch is best-effort and
// isolated per listener: one listener's panic must not suppress delivery to
// the others.
type subscribers struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Event)
	log  log.Logger
}

func newSubscribers(logger log.Logger) *subscribers {
	return &subscribers{subs: make(map[int]func(Event)), log: logger}
}

func (s *subscribers) add(fn func(Event)) (remove func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *subscribers) dispatch(ev Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		s.deliver(fn, ev)
	}
}

func (s *subscribers) deliver(fn func(Event), ev Event) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Session event listener failed", "event", ev.Kind, "err", r)
		}
	}()
	fn(ev)
}
