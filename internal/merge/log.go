package merge

// Action names the decision recorded for one key.
type Action string

const (
	Added             Action = "added"
	Overwritten       Action = "overwritten"
	RecursivelyMerged Action = "recursively-merged"
	ArrayMerged       Action = "array-merged"
	Protected         Action = "protected"
)

// Entry is one audit record. Old and New are short summaries, not values.
type Entry struct {
	Key    string
	Action Action
	Source string
	Old    string
	New    string
}

// Log is an append-only audit trail shared by every step of one run.
// A nil *Log discards entries.
type Log struct {
	entries []Entry
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{}
}

func (l *Log) add(key string, action Action, source, oldValue, newValue string) {
	if l == nil {
		return
	}
	l.entries = append(l.entries, Entry{
		Key:    key,
		Action: action,
		Source: source,
		Old:    oldValue,
		New:    newValue,
	})
}

// Entries returns a copy of the recorded entries in processing order.
func (l *Log) Entries() []Entry {
	if l == nil {
		return nil
	}
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Count returns how many entries carry the given action.
func (l *Log) Count(action Action) int {
	if l == nil {
		return 0
	}
	n := 0
	for _, e := range l.entries {
		if e.Action == action {
			n++
		}
	}
	return n
}
