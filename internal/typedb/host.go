package typedb

import (
	"fmt"
	"strings"

	"asls/internal/source"
)

// HostDecl declares an engine type. It is the YAML shape of host type files.
type HostDecl struct {
	Name       string         `yaml:"name"`
	Kind       string         `yaml:"kind"` // class, struct, enum, namespace, primitive
	Super      string         `yaml:"super,omitempty"`
	Siblings   []string       `yaml:"siblings,omitempty"`
	Params     []string       `yaml:"params,omitempty"`
	Doc        string         `yaml:"doc,omitempty"`
	Methods    []HostMethod   `yaml:"methods,omitempty"`
	Properties []HostProperty `yaml:"properties,omitempty"`
	Values     []string       `yaml:"values,omitempty"`
}

type HostMethod struct {
	Name   string    `yaml:"name"`
	Return string    `yaml:"return,omitempty"`
	Args   []HostArg `yaml:"args,omitempty"`
	Flags  []string  `yaml:"flags,omitempty"`
	Doc    string    `yaml:"doc,omitempty"`
}

type HostArg struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Default string `yaml:"default,omitempty"`
}

type HostProperty struct {
	Name  string   `yaml:"name"`
	Type  string   `yaml:"type"`
	Flags []string `yaml:"flags,omitempty"`
	Doc   string   `yaml:"doc,omitempty"`
}

// Primitives are always registered by AddBuiltins.
var Primitives = []string{
	"void", "bool",
	"int", "int8", "int16", "int32", "int64",
	"uint", "uint8", "uint16", "uint32", "uint64",
	"float", "float32", "float64", "double",
}

// AddBuiltins registers primitive types and the generic containers every
// script sees.
func (db *DB) AddBuiltins() error {
	decls := make([]HostDecl, 0, len(Primitives)+4)
	for _, p := range Primitives {
		decls = append(decls, HostDecl{Name: p, Kind: "primitive"})
	}
	decls = append(decls,
		HostDecl{Name: "FString", Kind: "struct", Doc: "Engine string.", Methods: []HostMethod{
			{Name: "Len", Return: "int", Flags: []string{"const"}},
			{Name: "IsEmpty", Return: "bool", Flags: []string{"const"}},
			{Name: "Contains", Return: "bool", Args: []HostArg{{Name: "SubStr", Type: "const FString&in"}}, Flags: []string{"const"}},
		}},
		HostDecl{Name: "FName", Kind: "struct", Methods: []HostMethod{
			{Name: "ToString", Return: "FString", Flags: []string{"const"}},
			{Name: "IsNone", Return: "bool", Flags: []string{"const"}},
		}},
		HostDecl{Name: "TArray", Kind: "struct", Params: []string{"T"}, Methods: []HostMethod{
			{Name: "Add", Args: []HostArg{{Name: "Item", Type: "const T&in"}}, Return: "void"},
			{Name: "Num", Return: "int", Flags: []string{"const"}},
			{Name: "Last", Return: "T&"},
			{Name: "Contains", Return: "bool", Args: []HostArg{{Name: "Item", Type: "const T&in"}}, Flags: []string{"const"}},
			{Name: "Empty", Return: "void"},
		}},
		HostDecl{Name: "TMap", Kind: "struct", Params: []string{"K", "V"}, Methods: []HostMethod{
			{Name: "Add", Return: "void", Args: []HostArg{{Name: "Key", Type: "const K&in"}, {Name: "Value", Type: "const V&in"}}},
			{Name: "Find", Return: "bool", Args: []HostArg{{Name: "Key", Type: "const K&in"}, {Name: "OutValue", Type: "V&out"}}, Flags: []string{"const"}},
			{Name: "Num", Return: "int", Flags: []string{"const"}},
		}},
	)
	return db.AddHostTypes(decls)
}

// AddHostTypes registers engine declarations. Namespaces merge with script
// contributions; a name already taken by another type is an error.
func (db *DB) AddHostTypes(decls []HostDecl) error {
	for _, d := range decls {
		t, err := hostType(d)
		if err != nil {
			return err
		}
		if t.IsNamespace() {
			db.MergeNamespaceToDB(t, false)
			continue
		}
		if _, ok := db.AddType(t); !ok {
			return fmt.Errorf("host type %q: %w", d.Name, ErrDuplicateType)
		}
	}
	return nil
}

func hostType(d HostDecl) (*Type, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("host type without a name: %w", ErrInvalidHostDecl)
	}
	var flags TypeFlags
	switch strings.ToLower(d.Kind) {
	case "", "class":
		flags = TypeClass
	case "struct":
		flags = TypeStruct
	case "enum":
		flags = TypeEnum
	case "namespace":
		flags = TypeNamespace
	case "primitive":
		flags = TypePrimitive
	default:
		return nil, fmt.Errorf("host type %q: unknown kind %q: %w", d.Name, d.Kind, ErrInvalidHostDecl)
	}
	flags |= TypeHost
	if len(d.Params) > 0 {
		flags |= TypeTemplate
	}
	t := NewType(d.Name, flags, source.NoModule)
	t.HostSuper = d.Super
	t.Siblings = d.Siblings
	t.TemplateParams = d.Params
	t.Doc = d.Doc
	for _, hm := range d.Methods {
		mf, err := hostFlags(d.Name, hm.Flags)
		if err != nil {
			return nil, err
		}
		m := &Method{Name: hm.Name, Return: hm.Return, Flags: mf, Doc: hm.Doc}
		if hm.Name == d.Name {
			m.Flags |= MemberConstructor
			m.Return = ""
		}
		for _, a := range hm.Args {
			m.Args = append(m.Args, Arg(a))
		}
		t.Methods = append(t.Methods, m)
	}
	for _, hp := range d.Properties {
		pf, err := hostFlags(d.Name, hp.Flags)
		if err != nil {
			return nil, err
		}
		t.Properties = append(t.Properties, &Property{Name: hp.Name, Type: hp.Type, Flags: pf, Doc: hp.Doc})
	}
	for i, v := range d.Values {
		t.Properties = append(t.Properties, &Property{
			Name:  v,
			Type:  d.Name,
			Value: fmt.Sprint(i),
			Flags: MemberEnumValue | MemberConst | MemberStatic,
		})
	}
	return t, nil
}

func hostFlags(owner string, labels []string) (MemberFlags, error) {
	var flags MemberFlags
	for _, l := range labels {
		f, ok := ParseMemberFlag(strings.ToLower(l))
		if !ok {
			return 0, fmt.Errorf("host type %q: unknown member flag %q: %w", owner, l, ErrInvalidHostDecl)
		}
		flags |= f
	}
	return flags, nil
}
