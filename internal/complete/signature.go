package complete

import (
	"fmt"
	"slices"

	"asls/internal/ast"
	"asls/internal/parser"
	"asls/internal/source"
	"asls/internal/token"
	"asls/internal/typedb"
	"asls/internal/workspace"
)

// SignatureHelp lists the overloads of the call around the cursor.
type SignatureHelp struct {
	Signatures []SignatureInfo
	// Active is the best scoring overload, ActiveParam the parameter the
	// cursor is in.
	Active      int
	ActiveParam int
}

type SignatureInfo struct {
	Label  string
	Doc    string
	Params []string
}

// candidate is an overload of a call. ucs marks a free function called
// through unified call syntax, whose first parameter is the receiver.
type candidate struct {
	m   *typedb.Method
	ucs bool
}

func (c candidate) params() []typedb.Arg {
	if c.ucs && len(c.m.Args) > 0 {
		return c.m.Args[1:]
	}
	return c.m.Args
}

func (c candidate) required() int {
	n := c.m.RequiredArgs()
	if c.ucs && n > 0 {
		n--
	}
	return n
}

func (c candidate) label() string {
	if !c.ucs {
		return c.m.Signature()
	}
	m := *c.m
	m.Args = c.params()
	return m.Signature()
}

func wrap(ms []*typedb.Method) []candidate {
	out := make([]candidate, 0, len(ms))
	for _, m := range ms {
		out = append(out, candidate{m: m})
	}
	return out
}

// Signature returns the overloads of the call enclosing offset, or nil.
func (r *Resolver) Signature(module source.ModuleID, offset uint32) *SignatureHelp {
	span := r.span("signature", module, offset)
	var out *SignatureHelp
	r.ws.Read(func(v workspace.View) {
		res := r.resolve(v, module, offset)
		if res == nil || res.tree.Ignore.CursorInside(offset) {
			return
		}
		out = res.signature()
	})
	if out == nil {
		span.End("none")
	} else {
		span.End(fmt.Sprintf("%d overloads", len(out.Signatures)))
	}
	return out
}

func (r *resolution) signature() *SignatureHelp {
	call := r.enclosingCall()
	if call == nil {
		return nil
	}
	cands := r.callCandidates(call)
	if len(cands) == 0 {
		return nil
	}
	help := &SignatureHelp{Signatures: make([]SignatureInfo, 0, len(cands))}
	for _, c := range cands {
		info := SignatureInfo{Label: c.label(), Doc: r.opts.Docs(c.m.Doc, c.m)}
		for _, a := range c.params() {
			info.Params = append(info.Params, a.Label())
		}
		help.Signatures = append(help.Signatures, info)
	}
	help.Active = max(r.bestCandidate(cands, call.Args), 0)
	help.ActiveParam = activeParam(cands[help.Active].params(), call.Args)
	return help
}

// enclosingCall finds the innermost unclosed call around the cursor,
// skipping control headers and specifier lists.
func (r *resolution) enclosingCall() *ast.Call {
	stmt := r.ctx.StatementStart
	end := r.off
	for {
		lp, ok := openParen(r.text, r.tree.Ignore, stmt, end)
		if !ok {
			return nil
		}
		callee, _ := identBefore(r.text, lp)
		_, keyword := token.LookupKeyword(callee)
		_, macro := specifiers[callee]
		if callee != "" && !macro && (!keyword || callee == "Super" || callee == "this") {
			if call := r.callAt(stmt, lp); call != nil {
				return call
			}
		}
		end = lp
	}
}

// callAt parses the candidates ending at the cursor and returns the call
// whose argument list opens at lp.
func (r *resolution) callAt(stmt, lp uint32) *ast.Call {
	for _, sp := range splitPoints(r.text, r.tree.Ignore, stmt, lp) {
		cand := r.text[sp:r.off]
		var node ast.Node
		if st, ok := parser.ParseStatement(cand, sp); ok {
			node = st
		} else if x, ok := parser.ParseExpression(cand, sp); ok {
			node = x
		} else {
			continue
		}
		var found *ast.Call
		ast.Inspect(node, func(n ast.Node) bool {
			if c, ok := n.(*ast.Call); ok && c.Lparen == lp {
				found = c
				return false
			}
			return found == nil
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// callCandidates resolves the overloads a call may target.
func (r *resolution) callCandidates(call *ast.Call) []candidate {
	switch fn := call.Fn.(type) {
	case *ast.Ident:
		if r.findLocal(fn.Name) == nil {
			if t := r.db.GetType(fn.Name); t != nil && !t.IsNamespace() {
				return wrap(t.Constructors())
			}
		}
		return wrap(r.scopeMethods(fn.Name))
	case *ast.Member:
		base := r.typeOf(fn.Left)
		if base.t == nil {
			return nil
		}
		out := wrap(r.db.FindMethods(base.t, fn.Name))
		for _, m := range r.ucsFunctions(base.t) {
			if m.Name == fn.Name {
				out = append(out, candidate{m: m, ucs: true})
			}
		}
		return out
	case *ast.NamespaceAccess:
		target := r.scopeRef(fn.Left)
		if target == nil {
			return nil
		}
		if ms := r.db.FindMethods(target, fn.Name); len(ms) > 0 {
			return wrap(ms)
		}
		if t := r.scopeRef(fn); t != nil && !t.IsNamespace() {
			return wrap(t.Constructors())
		}
	case *ast.TypeName:
		if t := r.db.GetType(fn.Type.TypeName()); t != nil {
			return wrap(t.Constructors())
		}
	}
	return nil
}

// scopeMethods finds free and member functions visible by name.
func (r *resolution) scopeMethods(name string) []*typedb.Method {
	var out []*typedb.Method
	if ut := r.usingType(); ut != nil {
		out = append(out, r.db.FindMethods(ut, name)...)
	}
	for _, ns := range r.namespaceChain() {
		for _, m := range r.db.FindMethods(ns, name) {
			if !slices.Contains(out, m) {
				out = append(out, m)
			}
		}
	}
	return out
}

// ucsFunctions lists the free functions of the namespace chain callable as
// members of recv.
func (r *resolution) ucsFunctions(recv *typedb.Type) []*typedb.Method {
	var out []*typedb.Method
	for _, ns := range r.namespaceChain() {
		for _, m := range ns.Methods {
			if !r.opts.UnifiedCallSyntax && !m.Flags.Has(typedb.MemberMixin) {
				continue
			}
			if len(m.Args) == 0 {
				continue
			}
			if r.db.InheritsFrom(recv.Name, r.canonical(m.Args[0].Type)) {
				out = append(out, m)
			}
		}
	}
	return out
}

func (r *resolution) bestCandidate(cands []candidate, args []ast.Arg) int {
	best, bestScore := -1, 0
	for i, c := range cands {
		s := r.score(c, args)
		if best < 0 || s > bestScore {
			best, bestScore = i, s
		}
	}
	return best
}

// score rates how well args fit an overload: argument count first, then
// named arguments, then positional type compatibility.
func (r *resolution) score(c candidate, args []ast.Arg) int {
	params := c.params()
	arity, n := len(args), len(args)
	if n > 0 && args[n-1].Value == nil && args[n-1].Name == "" {
		// the argument being typed counts for arity only
		n--
	}
	score := 0
	if arity > len(params) {
		score -= 10 * (arity - len(params))
	} else {
		score += 2
		if arity >= c.required() {
			score++
		}
	}
	used := make(map[int]bool, len(args))
	positional := true
	for i, a := range args[:n] {
		if a.Name != "" {
			positional = false
			j := paramIndex(params, a.Name)
			switch {
			case j < 0, used[j]:
				score -= 5
			default:
				used[j] = true
				score += 2
			}
			continue
		}
		if !positional || i >= len(params) {
			continue
		}
		used[i] = true
		score += r.compat(r.typeOf(a.Value).name, r.canonical(params[i].Type))
	}
	return score
}

var numericRank = map[string]int{
	"int8": 1, "uint8": 1,
	"int16": 2, "uint16": 2,
	"int": 3, "int32": 3, "uint": 3, "uint32": 3,
	"int64": 4, "uint64": 4,
	"float": 5, "float32": 5,
	"float64": 6, "double": 6,
}

// compat scores an argument type against a parameter type: exact beats
// derived, derived beats numeric widening, unrelated known types lose.
func (r *resolution) compat(arg, param string) int {
	switch {
	case arg == "" || param == "":
		return 0
	case arg == param:
		return 3
	case r.db.InheritsFrom(arg, param):
		return 2
	}
	from, ok1 := numericRank[arg]
	to, ok2 := numericRank[param]
	if ok1 && ok2 && from < to {
		return 1
	}
	return -2
}

func paramIndex(params []typedb.Arg, name string) int {
	for i, p := range params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func activeParam(params []typedb.Arg, args []ast.Arg) int {
	if len(args) == 0 {
		return 0
	}
	last := args[len(args)-1]
	idx := len(args) - 1
	if last.Name != "" {
		if j := paramIndex(params, last.Name); j >= 0 {
			return j
		}
	}
	if len(params) > 0 && idx >= len(params) {
		idx = len(params) - 1
	}
	return idx
}

// paramType is the type expected by the argument being typed in call.
func (r *resolution) paramType(call *ast.Call) string {
	cands := r.callCandidates(call)
	i := r.bestCandidate(cands, call.Args)
	if i < 0 {
		return ""
	}
	params := cands[i].params()
	idx := activeParam(params, call.Args)
	if idx >= len(params) {
		return ""
	}
	return r.canonical(params[idx].Type)
}
