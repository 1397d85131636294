package bot

// DefaultLedgerCap bounds how many used source ids are remembered.
const DefaultLedgerCap = 100

// Ledger is a bounded FIFO set of source ids already turned into posts.
// It lives for the process only: a restart forgets all prior dedup state,
// which is an accepted limitation rather than something to work around.
type Ledger struct {
	capacity int
	order    []string
	seen     map[string]struct{}
}

func NewLedger(capacity int) *Ledger {
	if capacity <= 0 {
		capacity = DefaultLedgerCap
	}
	return &Ledger{
		capacity: capacity,
		seen:     make(map[string]struct{}),
	}
}

func (l *Ledger) Contains(id string) bool {
	_, ok := l.seen[id]
	return ok
}

// Add inserts id, evicting the oldest entry once the cap is exceeded.
func (l *Ledger) Add(id string) {
	if id == "" {
		return
	}
	if _, ok := l.seen[id]; ok {
		return
	}

	l.seen[id] = struct{}{}
	l.order = append(l.order, id)

	if len(l.order) > l.capacity {
		oldest := l.order[0]
		l.order = l.order[1:]
		delete(l.seen, oldest)
	}
}

func (l *Ledger) Len() int {
	return len(l.order)
}
