package source

import (
	"fmt"
)

// Span is a half-open byte range inside one module.
type Span struct {
	Module ModuleID
	Start  uint32 // inclusive, in bytes
	End    uint32 // exclusive, in bytes
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.Module, s.Start, s.End)
}

// Contains reports whether off lies inside the span. The end offset is
// included so a cursor placed right after the last byte still counts.
func (s Span) Contains(off uint32) bool {
	return off >= s.Start && off <= s.End
}

// Inside reports whether s is nested within other.
func (s Span) Inside(other Span) bool {
	return s.Module == other.Module && s.Start >= other.Start && s.End <= other.End
}

func (s Span) Cover(other Span) Span {
	if s.Module != other.Module {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

func (s Span) ShiftRight(n uint32) Span {
	return Span{
		Module: s.Module,
		Start:  s.Start + n,
		End:    s.End + n,
	}
}
