package scope

import (
	"asls/internal/ast"
	"asls/internal/token"
)

// Kind enumerates scope categories.
type Kind uint8

const (
	KindGlobal Kind = iota
	KindNamespace
	KindClass
	KindStruct
	KindFunction
	KindConstructor
	KindEnum
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindGlobal:
		return "global"
	case KindNamespace:
		return "namespace"
	case KindClass:
		return "class"
	case KindStruct:
		return "struct"
	case KindFunction:
		return "function"
	case KindConstructor:
		return "constructor"
	case KindEnum:
		return "enum"
	default:
		return "other"
	}
}

// IsType reports whether the scope declares a class or struct.
func (k Kind) IsType() bool { return k == KindClass || k == KindStruct }

// IsFunction reports whether the scope is a function or constructor body.
func (k Kind) IsFunction() bool { return k == KindFunction || k == KindConstructor }

// VarFlags describe where and how a variable was declared.
type VarFlags uint16

const (
	VarArgument VarFlags = 1 << iota
	VarMember
	VarGlobal
	VarLocal
	VarLoop
	VarPrivate
	VarProtected
	VarConst
)

func (f VarFlags) Has(flag VarFlags) bool { return f&flag != 0 }

// Variable is a declared variable, member, argument or loop variable.
type Variable struct {
	Name string
	// Type is the declared type as written, qualifiers included.
	Type    string
	TypeRef *ast.TypeRef
	Doc     string
	NamePos uint32
	Flags   VarFlags
	// Default is the argument default value as written.
	Default    string
	Specifiers []ast.Specifier
	// Init is the initializer of a declared variable, Range the range
	// expression of a for-each variable.
	Init    ast.Expr
	HasInit bool
	Range   ast.Expr
}

// Delegate is a delegate or event declaration found at global scope.
type Delegate struct {
	Name    string
	Event   bool
	Sig     *ast.FuncDecl
	Doc     string
	NamePos uint32
}

// EnumValue is one entry of an enum body.
type EnumValue struct {
	Name    string
	Value   string
	Doc     string
	NamePos uint32
}

// Import is an "import A.B;" statement.
type Import struct {
	Module  string
	PathPos uint32
	Start   uint32
	End     uint32
}

// Statement is a non-brace span between scope boundaries or terminators.
// Node is nil when the text did not parse as a statement.
type Statement struct {
	Start uint32
	End   uint32
	Node  ast.Stmt
}

// Span is a raw unscoped range of a scope interior.
type Span struct {
	Start uint32
	End   uint32
}

// Scope is a braced region of a module.
type Scope struct {
	ID     ID
	Kind   Kind
	Parent ID
	// Children are source-ordered and strictly nested in Range().
	Children []ID

	// DeclStart is where the declaration text begins, Start is right after
	// '{' and End is the offset of '}' or the text length when unclosed.
	DeclStart uint32
	Start     uint32
	End       uint32
	Closed    bool

	DeclText    string
	CleanedDecl string
	// Name is the typename for class/struct/namespace/enum scopes and the
	// function name for function scopes.
	Name       string
	Header     ast.Stmt
	Specifiers []ast.Specifier
	Doc        string
	// Control is the leading keyword of control-flow blocks.
	Control token.Kind
	// Discriminant is the switch expression of a switch block.
	Discriminant ast.Expr

	Vars       []Variable
	Delegates  []Delegate
	EnumValues []EnumValue
	Unscoped   []Span
	Statements []Statement
	Defaults   []Statement
}

// Range returns [DeclStart, End+1).
func (s *Scope) Range() (start, end uint32) {
	return s.DeclStart, s.End + 1
}

// Contains reports whether off is inside the braces of s.
func (s *Scope) Contains(off uint32) bool {
	return off >= s.Start && off <= s.End
}

// Func returns the function header of a function or constructor scope.
func (s *Scope) Func() *ast.FuncDecl {
	if fn, ok := s.Header.(*ast.FuncDecl); ok {
		return fn
	}
	return nil
}

// Class returns the header of a class, struct or namespace scope.
func (s *Scope) Class() *ast.ClassDecl {
	if cd, ok := s.Header.(*ast.ClassDecl); ok {
		return cd
	}
	return nil
}

// InConstruction reports whether code in this scope runs while the owning
// object is being constructed: constructors and default statements.
func (s *Scope) InConstruction() bool {
	return s.Kind == KindConstructor
}
