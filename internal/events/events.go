// Package events delivers game notifications to subscribers.
package events

import (
	"sync"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// Kind identifies a notification. The set is closed.
type Kind int

const (
	GameChanged      Kind = iota // The board or the captured pieces changed
	PlayerChanged                // The side to move or a player name changed
	Checkmate                    // The side to move has been mated
	PromotionPending             // A pawn waits on its last rank for a choice
)

var kindNames = [...]string{"game", "player", "checkmate", "promotion"}

// String returns the short name used on the wire, e.g. "checkmate".
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Kinds lists every event kind.
func Kinds() []Kind {
	return []Kind{GameChanged, PlayerChanged, Checkmate, PromotionPending}
}

// Event is one notification. Side is the side to move when it was published.
type Event struct {
	Kind Kind
	Side chess.Side
}

// Handler receives events. Handlers run synchronously on the publishing
// goroutine and must not subscribe or unsubscribe from inside the call.
type Handler func(Event)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus fans events out to the handlers subscribed to their kind.
// It is safe for concurrent use.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[Kind][]subscription
}

// NewBus returns a bus with no subscribers.
func NewBus() *Bus {
	return &Bus{subs: make(map[Kind][]subscription)}
}

// Subscribe registers h for events of kind k and returns a function that
// removes it again. Calling the returned function more than once is harmless.
func (b *Bus) Subscribe(k Kind, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs[k] = append(b.subs[k], subscription{id: id, handler: h})

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(k, id) })
	}
}

// SubscribeAll registers h for every kind.
func (b *Bus) SubscribeAll(h Handler) func() {
	var cancels []func()
	for _, k := range Kinds() {
		cancels = append(cancels, b.Subscribe(k, h))
	}
	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}

func (b *Bus) unsubscribe(k Kind, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[k]
	for i, s := range subs {
		if s.id == id {
			b.subs[k] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish calls every handler subscribed to e.Kind in subscription order.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	subs := b.subs[e.Kind]
	b.mu.RUnlock()
	for _, s := range subs {
		s.handler(e)
	}
}

// Len returns the number of handlers subscribed to k.
func (b *Bus) Len(k Kind) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[k])
}
