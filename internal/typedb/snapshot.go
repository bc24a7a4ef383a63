package typedb

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"asls/internal/source"
)

// Snapshot is the position-independent contribution of one module. Two
// parses of the same text produce identical encodings.
type Snapshot struct {
	Module source.ModuleID `msgpack:"module"`
	Types  []SnapshotType  `msgpack:"types"`
}

type SnapshotType struct {
	Name           string             `msgpack:"name"`
	Flags          []string           `msgpack:"flags"`
	Super          string             `msgpack:"super,omitempty"`
	Siblings       []string           `msgpack:"siblings,omitempty"`
	TemplateParams []string           `msgpack:"params,omitempty"`
	Doc            string             `msgpack:"doc,omitempty"`
	Methods        []SnapshotMethod   `msgpack:"methods,omitempty"`
	Properties     []SnapshotProperty `msgpack:"properties,omitempty"`
}

type SnapshotMethod struct {
	ID        MethodID `msgpack:"id"`
	Signature string   `msgpack:"sig"`
	Flags     []string `msgpack:"flags,omitempty"`
	Doc       string   `msgpack:"doc,omitempty"`
}

type SnapshotProperty struct {
	Name  string   `msgpack:"name"`
	Type  string   `msgpack:"type"`
	Value string   `msgpack:"value,omitempty"`
	Flags []string `msgpack:"flags,omitempty"`
	Doc   string   `msgpack:"doc,omitempty"`
}

// Snapshot collects what module contributed, in deterministic order.
func (db *DB) Snapshot(module source.ModuleID) *Snapshot {
	snap := &Snapshot{Module: module}
	for _, t := range db.TypesInModule(module) {
		st := SnapshotType{
			Name:           t.Name,
			Flags:          t.Flags.Strings(),
			Super:          t.Super,
			Siblings:       t.Siblings,
			TemplateParams: t.TemplateParams,
		}
		if t.Module == module {
			st.Doc = t.Doc
		}
		for _, m := range t.Methods {
			if m.Module != module {
				continue
			}
			st.Methods = append(st.Methods, SnapshotMethod{
				ID:        m.ID,
				Signature: m.Signature(),
				Flags:     m.Flags.Strings(),
				Doc:       m.Doc,
			})
		}
		for _, p := range t.Properties {
			if p.Module != module {
				continue
			}
			st.Properties = append(st.Properties, SnapshotProperty{
				Name:  p.Name,
				Type:  p.Type,
				Value: p.Value,
				Flags: p.Flags.Strings(),
				Doc:   p.Doc,
			})
		}
		snap.Types = append(snap.Types, st)
	}
	return snap
}

// Encode serializes the snapshot with msgpack.
func (s *Snapshot) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encode snapshot of module %d: %w", s.Module, err)
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot reads a snapshot produced by Encode.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}

// Digest is the SHA-256 of the encoded snapshot.
func (s *Snapshot) Digest() ([32]byte, error) {
	data, err := s.Encode()
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(data), nil
}
