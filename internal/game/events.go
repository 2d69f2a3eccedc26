package game

// EventKind tags the notifications the engine emits for things a
// surface may want to announce or animate but that are not themselves
// state transitions.
type EventKind string

const (
	// EventShoeReplaced fires when a fresh shuffled shoe is swapped in
	// before a deal. Surfaces usually pause here to mimic the table.
	EventShoeReplaced EventKind = "shoe_replaced"
	// EventDealerDraw fires for every card the dealer pulls.
	EventDealerDraw EventKind = "dealer_draw"
	// EventRoundSettled fires once every hand carries an outcome.
	EventRoundSettled EventKind = "round_settled"
)

type Event struct {
	Kind   EventKind `json:"kind"`
	Detail string    `json:"detail,omitempty"`
}

// EventFunc observes engine events. Handlers run synchronously on the
// calling goroutine and must not call back into the Game.
type EventFunc func(Event)
