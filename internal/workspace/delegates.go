package workspace

import (
	"asls/internal/scope"
	"asls/internal/typedb"
)

// delegate synthesizes the type behind a delegate or event declaration.
// Single-bind delegates execute one bound function; events broadcast to
// every bound function.
func (r *registrar) delegate(d scope.Delegate) {
	flags := typedb.TypeDelegate
	if d.Event {
		flags = typedb.TypeEvent
	}
	t := typedb.NewType(d.Name, flags, r.mod.ID)
	t.Doc = d.Doc
	t.Decl = r.span(d.NamePos, d.Name)

	sig := r.method(d.Sig, d.Doc)
	ret := sig.Return
	if ret == "" {
		ret = "void"
	}
	add := func(name, returns string, mf typedb.MemberFlags, args ...typedb.Arg) {
		t.Methods = append(t.Methods, &typedb.Method{
			Name:   name,
			Return: returns,
			Args:   args,
			Flags:  mf,
			Module: r.mod.ID,
			Decl:   t.Decl,
		})
	}
	object := typedb.Arg{Name: "Object", Type: "UObject"}
	function := typedb.Arg{Name: "FunctionName", Type: "FName"}
	if d.Event {
		add("Broadcast", "void", 0, sig.Args...)
		add("AddUFunction", "void", 0, object, function)
		add("Unbind", "void", 0, object, function)
		add("UnbindObject", "void", 0, object)
	} else {
		add("Execute", ret, typedb.MemberConst, sig.Args...)
		add("ExecuteIfBound", "void", typedb.MemberConst, sig.Args...)
		add("BindUFunction", "void", 0, object, function)
	}
	add("IsBound", "bool", typedb.MemberConst)
	add("Clear", "void", 0)

	r.db.AddType(t)
}
