package trace

import "time"

// Kind tells span boundaries from instant marks and pulses.
type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindMark
	KindPulse
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindMark:
		return "mark"
	case KindPulse:
		return "pulse"
	}
	return "unknown"
}

// NoOffset marks an event without a cursor offset.
const NoOffset = -1

// Event is one recorded occurrence. Module and Generation name the module
// version the work ran against, Offset the cursor of a request.
type Event struct {
	Time       time.Time
	Kind       Kind
	Scope      Scope
	Span       uint64
	Parent     uint64
	Name       string
	Detail     string
	Module     string
	Generation uint64
	Offset     int64
	Elapsed    time.Duration
	Attrs      map[string]string
}
