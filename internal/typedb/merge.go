package typedb

import "slices"

// MergeNamespaceToDB folds fragment into the namespace (or sibling-extended
// type) of the same name, creating it when missing. With removeOldMethods
// the members previously contributed by fragment.Module are replaced.
// Merging an identical fragment twice leaves the entry unchanged.
func (db *DB) MergeNamespaceToDB(fragment *Type, removeOldMethods bool) TypeID {
	db.mu.Lock()
	defer db.mu.Unlock()

	names := db.typesByName
	if fragment.IsNamespace() {
		names = db.nsByName
	}
	id, ok := names[fragment.Name]
	if !ok {
		return db.insert(fragment)
	}
	existing := db.types[id]
	module := fragment.Module
	if removeOldMethods {
		existing.dropMembers(module)
	}

	methods, props := len(existing.Methods), len(existing.Properties)
	for _, m := range fragment.Methods {
		if existing.hasMethod(m, methods) {
			continue
		}
		m.Owner = existing.ID
		existing.Methods = append(existing.Methods, m)
	}
	for _, p := range fragment.Properties {
		if existing.hasProperty(p, props) {
			continue
		}
		p.Owner = existing.ID
		existing.Properties = append(existing.Properties, p)
	}
	for _, s := range fragment.Siblings {
		if !slices.Contains(existing.Siblings, s) {
			existing.Siblings = append(existing.Siblings, s)
		}
	}
	if existing.Doc == "" {
		existing.Doc = fragment.Doc
	}
	if module.IsValid() {
		existing.addContributor(module)
		db.track(module, existing.ID)
	}
	db.assignMethodIDs(existing)
	existing.reindex()
	return existing.ID
}
