package typedb

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"fortio.org/safecast"

	"asls/internal/source"
)

// DB is one workspace's type registry. Tests create independent instances.
type DB struct {
	// mu guards the tables below; GetType inserts instantiations while other
	// readers may be active.
	mu          sync.RWMutex
	types       []*Type // index is TypeID, 0 is unused, removed entries are nil
	typesByName map[string]TypeID
	nsByName    map[string]TypeID
	byModule    map[source.ModuleID]map[TypeID]struct{}
	instancesOf map[string][]string // template name -> cached spellings
	root        TypeID
	// shadowed holds script declarations that lost a name to an earlier
	// one, in registration order. The first is promoted when the owner
	// goes away.
	shadowed map[string][]*Type

	// instMu serializes template instantiation.
	instMu sync.Mutex

	// methodIDs remembers ids per module so re-registration keeps them.
	methodIDs map[source.ModuleID]map[string]MethodID
}

// Stats summarizes the registry contents.
type Stats struct {
	Types      int
	Namespaces int
	Instances  int
	Methods    int
	Properties int
}

// New returns a DB holding only the root namespace.
func New() *DB {
	db := &DB{
		types:       []*Type{nil},
		typesByName: make(map[string]TypeID, 256),
		nsByName:    make(map[string]TypeID, 32),
		byModule:    make(map[source.ModuleID]map[TypeID]struct{}),
		instancesOf: make(map[string][]string),
		shadowed:    make(map[string][]*Type),
		methodIDs:   make(map[source.ModuleID]map[string]MethodID),
	}
	root := NewType("", TypeNamespace|TypeHost, source.NoModule)
	db.root = db.insert(root)
	return db
}

// Root returns the root namespace holding global functions and variables.
func (db *DB) Root() *Type {
	return db.Lookup(db.root)
}

// Lookup returns the type for id, or nil.
func (db *DB) Lookup(id TypeID) *Type {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if int(id) >= len(db.types) {
		return nil
	}
	return db.types[id]
}

// GetType returns the type or enum named name. Generic spellings such as
// "TArray<int>" are instantiated on first use and cached.
func (db *DB) GetType(name string) *Type {
	if t := db.byName(name); t != nil {
		return t
	}
	if !strings.ContainsRune(name, '<') {
		return nil
	}
	return db.instantiate(name)
}

// GetNamespace returns the namespace named name ("A::B" for nested ones).
func (db *DB) GetNamespace(name string) *Type {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if id, ok := db.nsByName[name]; ok {
		return db.types[id]
	}
	return nil
}

// GetTypeOrNamespace prefers the type when both exist.
func (db *DB) GetTypeOrNamespace(name string) *Type {
	if t := db.GetType(name); t != nil {
		return t
	}
	return db.GetNamespace(name)
}

func (db *DB) byName(name string) *Type {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if id, ok := db.typesByName[name]; ok {
		return db.types[id]
	}
	return nil
}

// AddType registers t and returns its id. Namespaces are merged into an
// existing namespace of the same name. ok is false when another type
// already uses the name; a script type is then kept aside and takes the
// name over once the current owner's module drops it.
func (db *DB) AddType(t *Type) (TypeID, bool) {
	if t.IsNamespace() {
		return db.MergeNamespaceToDB(t, true), true
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, dup := db.typesByName[t.Name]; dup {
		if t.Module.IsValid() {
			db.shadowed[t.Name] = append(db.shadowed[t.Name], t)
		}
		return NoTypeID, false
	}
	return db.insert(t), true
}

// ShadowedInModule returns the declarations of module that are waiting
// for a name held by another declaration, sorted by name.
func (db *DB) ShadowedInModule(module source.ModuleID) []*Type {
	db.mu.RLock()
	defer db.mu.RUnlock()
	var out []*Type
	for _, list := range db.shadowed {
		for _, t := range list {
			if t.Module == module {
				out = append(out, t)
			}
		}
	}
	sortTypes(out)
	return out
}

// insert stores t under a fresh id. Callers hold mu or own db exclusively.
func (db *DB) insert(t *Type) TypeID {
	n, err := safecast.Conv[uint32](len(db.types))
	if err != nil {
		panic(fmt.Errorf("type table overflow: %w", err))
	}
	t.ID = TypeID(n)
	db.types = append(db.types, t)
	if t.IsNamespace() {
		db.nsByName[t.Name] = t.ID
	} else {
		db.typesByName[t.Name] = t.ID
	}
	if t.Module.IsValid() {
		t.addContributor(t.Module)
	}
	for _, m := range t.Contributors {
		db.track(m, t.ID)
	}
	t.setOwner()
	db.assignMethodIDs(t)
	t.reindex()
	return t.ID
}

func (db *DB) track(module source.ModuleID, id TypeID) {
	ids := db.byModule[module]
	if ids == nil {
		ids = make(map[TypeID]struct{})
		db.byModule[module] = ids
	}
	ids[id] = struct{}{}
}

// RemoveTypesInModule drops everything module contributed. Types owned only
// by module disappear together with their cached instantiations; shared
// types and namespaces lose the module's members.
func (db *DB) RemoveTypesInModule(module source.ModuleID) {
	if !module.IsValid() {
		return
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	db.dropShadowed(module)
	var freed []string
	for id := range db.byModule[module] {
		t := db.types[id]
		if t == nil {
			continue
		}
		t.dropMembers(module)
		t.removeContributor(module)
		if len(t.Contributors) == 0 && !t.Flags.Has(TypeHost) {
			db.remove(t)
			if !t.IsNamespace() {
				freed = append(freed, t.Name)
			}
			continue
		}
		t.reindex()
	}
	delete(db.byModule, module)
	sort.Strings(freed)
	for _, name := range freed {
		db.promote(name)
	}
}

func (db *DB) dropShadowed(module source.ModuleID) {
	for name, list := range db.shadowed {
		kept := list[:0]
		for _, t := range list {
			if t.Module != module {
				kept = append(kept, t)
			}
		}
		clear(list[len(kept):])
		if len(kept) == 0 {
			delete(db.shadowed, name)
			continue
		}
		db.shadowed[name] = kept
	}
}

// promote installs the oldest waiting declaration of name.
func (db *DB) promote(name string) {
	list := db.shadowed[name]
	if len(list) == 0 {
		return
	}
	if _, taken := db.typesByName[name]; taken {
		return
	}
	if len(list) == 1 {
		delete(db.shadowed, name)
	} else {
		db.shadowed[name] = list[1:]
	}
	db.insert(list[0])
}

// ForgetModule drops remembered method ids of a module that left the
// workspace for good.
func (db *DB) ForgetModule(module source.ModuleID) {
	db.RemoveTypesInModule(module)
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.methodIDs, module)
}

func (db *DB) remove(t *Type) {
	names := db.typesByName
	if t.IsNamespace() {
		names = db.nsByName
	}
	if names[t.Name] == t.ID {
		delete(names, t.Name)
	}
	db.types[t.ID] = nil
	db.dropInstances(t.Name)
}

func (db *DB) dropInstances(template string) {
	for _, spelling := range db.instancesOf[template] {
		if id, ok := db.typesByName[spelling]; ok {
			db.types[id] = nil
			delete(db.typesByName, spelling)
		}
	}
	delete(db.instancesOf, template)
}

// assignMethodIDs gives every method without an id either the id it had
// when its module last registered the same owner/name/signature/occurrence,
// or a fresh one.
func (db *DB) assignMethodIDs(t *Type) {
	seen := make(map[string]int)
	for _, m := range t.Methods {
		key := t.Name + "|" + m.signatureKey()
		seenKey := strconv.FormatUint(uint64(m.Module), 10) + "|" + key
		occurrence := seen[seenKey]
		seen[seenKey]++
		if m.ID != 0 {
			continue
		}
		key += "|" + strconv.Itoa(occurrence)
		ids := db.methodIDs[m.Module]
		if ids == nil {
			ids = make(map[string]MethodID)
			db.methodIDs[m.Module] = ids
		}
		id, ok := ids[key]
		if !ok {
			id = nextMethodID()
			ids[key] = id
		}
		m.ID = id
	}
}

// TypesInModule returns the types module contributed to, sorted by name.
func (db *DB) TypesInModule(module source.ModuleID) []*Type {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]*Type, 0, len(db.byModule[module]))
	for id := range db.byModule[module] {
		if t := db.types[id]; t != nil {
			out = append(out, t)
		}
	}
	sortTypes(out)
	return out
}

// TypesWithPrefix lists named types and namespaces (instantiations and the
// root excluded) whose name starts with prefix, ignoring case.
func (db *DB) TypesWithPrefix(prefix string) []*Type {
	db.mu.RLock()
	defer db.mu.RUnlock()
	var out []*Type
	for _, t := range db.types {
		if t == nil || t.Name == "" || t.Flags.Has(TypeInstance) {
			continue
		}
		if HasFoldedPrefix(t.Name, prefix) {
			out = append(out, t)
		}
	}
	sortTypes(out)
	return out
}

// Stats counts the live entries.
func (db *DB) Stats() Stats {
	db.mu.RLock()
	defer db.mu.RUnlock()
	var st Stats
	for _, t := range db.types {
		switch {
		case t == nil:
			continue
		case t.IsNamespace():
			st.Namespaces++
		case t.Flags.Has(TypeInstance):
			st.Instances++
		default:
			st.Types++
		}
		st.Methods += len(t.Methods)
		st.Properties += len(t.Properties)
	}
	return st
}

func sortTypes(ts []*Type) {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].Name != ts[j].Name {
			return ts[i].Name < ts[j].Name
		}
		return !ts[i].IsNamespace() && ts[j].IsNamespace()
	})
}
