package trace

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Format is the encoding of a Writer.
type Format uint8

const (
	FormatAuto Format = iota
	FormatText
	FormatNDJSON
)

// ParseFormat reads a --trace-format value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

var processStart = time.Now()

func encode(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return encodeJSON(ev)
	}
	return encodeText(ev)
}

type jsonEvent struct {
	Time       string            `json:"time"`
	Kind       string            `json:"kind"`
	Scope      string            `json:"scope"`
	Span       uint64            `json:"span,omitempty"`
	Parent     uint64            `json:"parent,omitempty"`
	Name       string            `json:"name"`
	Detail     string            `json:"detail,omitempty"`
	Module     string            `json:"module,omitempty"`
	Generation uint64            `json:"generation,omitempty"`
	Offset     *int64            `json:"offset,omitempty"`
	ElapsedUS  int64             `json:"elapsed_us,omitempty"`
	Attrs      map[string]string `json:"attrs,omitempty"`
}

func encodeJSON(ev *Event) []byte {
	out := jsonEvent{
		Time:       ev.Time.Format(time.RFC3339Nano),
		Kind:       ev.Kind.String(),
		Scope:      ev.Scope.String(),
		Span:       ev.Span,
		Parent:     ev.Parent,
		Name:       ev.Name,
		Detail:     ev.Detail,
		Module:     ev.Module,
		Generation: ev.Generation,
		ElapsedUS:  ev.Elapsed.Microseconds(),
		Attrs:      ev.Attrs,
	}
	if ev.Offset != NoOffset {
		off := ev.Offset
		out.Offset = &off
	}
	data, err := json.Marshal(out)
	if err != nil {
		return []byte(fmt.Sprintf("{\"error\":%q}\n", err.Error()))
	}
	return append(data, '\n')
}

var kindArrows = map[Kind]string{
	KindBegin: "→ ",
	KindEnd:   "← ",
	KindMark:  "• ",
	KindPulse: "♡ ",
}

// encodeText renders
// "[elapsed] <indent><arrow> name module#gen @offset (detail) took {k=v}".
func encodeText(ev *Event) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%9.3fms] ", float64(ev.Time.Sub(processStart).Microseconds())/1000)
	if ev.Scope > 0 {
		sb.WriteString(strings.Repeat("  ", int(ev.Scope)-1))
	}
	sb.WriteString(kindArrows[ev.Kind])
	sb.WriteString(ev.Name)
	if ev.Module != "" {
		sb.WriteByte(' ')
		sb.WriteString(ev.Module)
		if ev.Generation != 0 {
			sb.WriteByte('#')
			sb.WriteString(strconv.FormatUint(ev.Generation, 10))
		}
	}
	if ev.Offset != NoOffset {
		sb.WriteString(" @")
		sb.WriteString(strconv.FormatInt(ev.Offset, 10))
	}
	if ev.Detail != "" {
		sb.WriteString(" (")
		sb.WriteString(ev.Detail)
		sb.WriteByte(')')
	}
	if ev.Kind == KindEnd {
		sb.WriteByte(' ')
		sb.WriteString(ev.Elapsed.Round(time.Microsecond).String())
	}
	if len(ev.Attrs) > 0 {
		keys := make([]string, 0, len(ev.Attrs))
		for k := range ev.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteByte('=')
			sb.WriteString(ev.Attrs[k])
		}
		sb.WriteByte('}')
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}
