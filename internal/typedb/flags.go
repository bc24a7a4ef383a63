package typedb

// TypeFlags classify a type entry.
type TypeFlags uint16

const (
	TypeClass TypeFlags = 1 << iota
	TypeStruct
	TypeEnum
	TypeNamespace
	TypeTemplate
	TypeDelegate
	TypeEvent
	// TypeHost marks engine-declared types; they are never removed with a module.
	TypeHost
	TypePrimitive
	// TypeInstance marks a cached template instantiation.
	TypeInstance
)

func (f TypeFlags) Has(flag TypeFlags) bool { return f&flag != 0 }

// Strings returns textual flag labels.
func (f TypeFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	for _, e := range typeFlagNames {
		if f&e.flag != 0 {
			labels = append(labels, e.name)
		}
	}
	return labels
}

var typeFlagNames = []struct {
	flag TypeFlags
	name string
}{
	{TypeClass, "class"},
	{TypeStruct, "struct"},
	{TypeEnum, "enum"},
	{TypeNamespace, "namespace"},
	{TypeTemplate, "template"},
	{TypeDelegate, "delegate"},
	{TypeEvent, "event"},
	{TypeHost, "host"},
	{TypePrimitive, "primitive"},
	{TypeInstance, "instance"},
}

// MemberFlags describe methods and properties.
type MemberFlags uint16

const (
	MemberPrivate MemberFlags = 1 << iota
	MemberProtected
	MemberConst
	MemberStatic
	// MemberAccessor marks a Get/Set function declared with "property".
	MemberAccessor
	// MemberEditOnly members are only reachable from construction contexts.
	MemberEditOnly
	// MemberNoEdit members are hidden in construction contexts.
	MemberNoEdit
	MemberOverride
	MemberBlueprintEvent
	MemberConstructor
	MemberEnumValue
	MemberFinal
	// MemberMixin functions are callable on their first argument.
	MemberMixin
)

func (f MemberFlags) Has(flag MemberFlags) bool { return f&flag != 0 }

// Strings returns textual flag labels.
func (f MemberFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	for _, e := range memberFlagNames {
		if f&e.flag != 0 {
			labels = append(labels, e.name)
		}
	}
	return labels
}

var memberFlagNames = []struct {
	flag MemberFlags
	name string
}{
	{MemberPrivate, "private"},
	{MemberProtected, "protected"},
	{MemberConst, "const"},
	{MemberStatic, "static"},
	{MemberAccessor, "property"},
	{MemberEditOnly, "edit_only"},
	{MemberNoEdit, "no_edit"},
	{MemberOverride, "override"},
	{MemberBlueprintEvent, "blueprint_event"},
	{MemberConstructor, "constructor"},
	{MemberEnumValue, "enum_value"},
	{MemberFinal, "final"},
	{MemberMixin, "mixin"},
}

// ParseMemberFlag maps a label from Strings back to its flag.
func ParseMemberFlag(label string) (MemberFlags, bool) {
	for _, e := range memberFlagNames {
		if e.name == label {
			return e.flag, true
		}
	}
	return 0, false
}
