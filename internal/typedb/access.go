package typedb

// AccessContext describes the code requesting a member.
type AccessContext struct {
	// Using is the enclosing type of the requesting code, empty outside
	// any type.
	Using string
	// Construction is set inside constructors and default statements.
	Construction bool
}

// IsVisible reports whether sym may be used from ctx. Private and protected
// members need a using type equal to or derived from the owner; edit-only
// members need a construction context and no-edit members need its absence.
func (db *DB) IsVisible(sym Symbol, ctx AccessContext) bool {
	flags := sym.SymbolFlags()
	if flags&(MemberPrivate|MemberProtected) != 0 {
		owner := db.Lookup(sym.SymbolOwner())
		if owner == nil || ctx.Using == "" {
			return false
		}
		if !db.InheritsFrom(ctx.Using, owner.Name) && !db.extends(ctx.Using, owner) {
			return false
		}
	}
	if flags.Has(MemberEditOnly) && !ctx.Construction {
		return false
	}
	if flags.Has(MemberNoEdit) && ctx.Construction {
		return false
	}
	return true
}

// extends reports whether owner is reached from the using type through
// sibling links, e.g. a namespace extending a class.
func (db *DB) extends(using string, owner *Type) bool {
	t := db.GetType(using)
	if t == nil {
		return false
	}
	found := false
	db.walk(t, func(t *Type, _ int) bool {
		if t.ID == owner.ID {
			found = true
			return false
		}
		return true
	})
	return found
}
