package lspconv

import (
	"net/url"
	"path/filepath"
	"strings"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"asls/internal/complete"
	"asls/internal/source"
	"asls/internal/workspace"
)

// Converter maps module offsets through the texts held by a FileSet.
type Converter struct {
	files *source.FileSet
}

func New(files *source.FileSet) *Converter {
	return &Converter{files: files}
}

// URI returns the file URI of a module, or "" for an unknown one.
func (c *Converter) URI(id source.ModuleID) protocol.DocumentURI {
	f := c.files.Get(id)
	if f == nil {
		return ""
	}
	return uri.File(f.Path)
}

// Module resolves a file URI to a module.
func (c *Converter) Module(u protocol.DocumentURI) (source.ModuleID, bool) {
	if !strings.HasPrefix(string(u), uri.FileScheme+"://") {
		return source.NoModule, false
	}
	if _, err := url.ParseRequestURI(string(u)); err != nil {
		return source.NoModule, false
	}
	path := u.Filename()
	if f, ok := c.files.GetByPath(path); ok {
		return f.ID, true
	}
	for _, id := range c.files.IDs() {
		f := c.files.Get(id)
		if f == nil {
			continue
		}
		if abs, err := filepath.Abs(f.Path); err == nil && abs == path {
			return id, true
		}
	}
	return source.NoModule, false
}

// Offset converts a protocol position in a module to a byte offset.
func (c *Converter) Offset(id source.ModuleID, pos protocol.Position) uint32 {
	return offsetForPosition(c.files.Get(id), pos)
}

// Position converts a byte offset in a module to a protocol position.
func (c *Converter) Position(id source.ModuleID, off uint32) protocol.Position {
	return positionForOffset(c.files.Get(id), off)
}

func (c *Converter) Range(span source.Span) protocol.Range {
	f := c.files.Get(span.Module)
	return protocol.Range{
		Start: positionForOffset(f, span.Start),
		End:   positionForOffset(f, span.End),
	}
}

func (c *Converter) Location(span source.Span) protocol.Location {
	return protocol.Location{URI: c.URI(span.Module), Range: c.Range(span)}
}

// Locations converts declaration spans, dropping spans of unknown modules.
func (c *Converter) Locations(spans []source.Span) []protocol.Location {
	out := make([]protocol.Location, 0, len(spans))
	for _, s := range spans {
		if c.files.Get(s.Module) == nil {
			continue
		}
		out = append(out, c.Location(s))
	}
	return out
}

// References converts occurrences; the declaration is kept only when
// includeDecl is set.
func (c *Converter) References(occ []workspace.Occurrence, includeDecl bool) []protocol.Location {
	out := make([]protocol.Location, 0, len(occ))
	for _, o := range occ {
		if o.Declaration && !includeDecl {
			continue
		}
		out = append(out, c.Location(o.Span))
	}
	return out
}

// WorkspaceEdit groups rename edits by document.
func (c *Converter) WorkspaceEdit(edits []workspace.Edit) *protocol.WorkspaceEdit {
	changes := make(map[protocol.DocumentURI][]protocol.TextEdit)
	for _, e := range edits {
		u := c.URI(e.Span.Module)
		if u == "" {
			continue
		}
		changes[u] = append(changes[u], protocol.TextEdit{Range: c.Range(e.Span), NewText: e.NewText})
	}
	return &protocol.WorkspaceEdit{Changes: changes}
}

var itemKinds = map[complete.ItemKind]protocol.CompletionItemKind{
	complete.ItemText:        protocol.CompletionItemKindText,
	complete.ItemVariable:    protocol.CompletionItemKindVariable,
	complete.ItemField:       protocol.CompletionItemKindField,
	complete.ItemProperty:    protocol.CompletionItemKindProperty,
	complete.ItemMethod:      protocol.CompletionItemKindMethod,
	complete.ItemFunction:    protocol.CompletionItemKindFunction,
	complete.ItemConstructor: protocol.CompletionItemKindConstructor,
	complete.ItemClass:       protocol.CompletionItemKindClass,
	complete.ItemStruct:      protocol.CompletionItemKindStruct,
	complete.ItemEnum:        protocol.CompletionItemKindEnum,
	complete.ItemEnumMember:  protocol.CompletionItemKindEnumMember,
	complete.ItemConstant:    protocol.CompletionItemKindConstant,
	complete.ItemNamespace:   protocol.CompletionItemKindModule,
	complete.ItemModule:      protocol.CompletionItemKindModule,
	complete.ItemEvent:       protocol.CompletionItemKindEvent,
	complete.ItemKeyword:     protocol.CompletionItemKindKeyword,
	complete.ItemSpecifier:   protocol.CompletionItemKindProperty,
}

// ItemKind maps a completion item kind to its protocol value.
func ItemKind(k complete.ItemKind) protocol.CompletionItemKind {
	if pk, ok := itemKinds[k]; ok {
		return pk
	}
	return protocol.CompletionItemKindText
}

// CompletionList converts ranked items. Every list is complete; clients
// re-query on each keystroke.
func CompletionList(items []complete.Item) *protocol.CompletionList {
	out := &protocol.CompletionList{Items: make([]protocol.CompletionItem, 0, len(items))}
	for _, it := range items {
		ci := protocol.CompletionItem{
			Label:      it.Label,
			Kind:       ItemKind(it.Kind),
			Detail:     it.Detail,
			SortText:   it.SortText,
			InsertText: it.InsertText,
			Preselect:  it.Preselect,
		}
		if it.Doc != "" {
			ci.Documentation = protocol.MarkupContent{Kind: protocol.PlainText, Value: it.Doc}
		}
		out.Items = append(out.Items, ci)
	}
	return out
}

// Hover renders the declaration as a code block followed by its doc.
func (c *Converter) Hover(h *complete.Hover) *protocol.Hover {
	if h == nil {
		return nil
	}
	head, doc, _ := strings.Cut(h.Text, "\n\n")
	value := "```angelscript\n" + head + "\n```"
	if doc != "" {
		value += "\n\n" + doc
	}
	rng := c.Range(h.Span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.Markdown, Value: value},
		Range:    &rng,
	}
}

func SignatureHelp(h *complete.SignatureHelp) *protocol.SignatureHelp {
	if h == nil {
		return nil
	}
	out := &protocol.SignatureHelp{
		ActiveSignature: safeUint32(h.Active),
		ActiveParameter: safeUint32(h.ActiveParam),
		Signatures:      make([]protocol.SignatureInformation, 0, len(h.Signatures)),
	}
	for _, s := range h.Signatures {
		info := protocol.SignatureInformation{Label: s.Label}
		if s.Doc != "" {
			info.Documentation = protocol.MarkupContent{Kind: protocol.PlainText, Value: s.Doc}
		}
		for _, p := range s.Params {
			info.Parameters = append(info.Parameters, protocol.ParameterInformation{Label: p})
		}
		out.Signatures = append(out.Signatures, info)
	}
	return out
}
