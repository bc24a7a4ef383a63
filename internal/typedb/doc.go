// Package typedb is the registry of script and host types, namespaces,
// methods and properties. It resolves inheritance, sibling extension and
// lazy template instantiation, and answers exact and prefix symbol queries.
//
// Mutations (AddType, MergeNamespaceToDB, RemoveTypesInModule, AddHostTypes)
// must not run concurrently with queries; the workspace serializes them.
// GetType may instantiate templates while other readers are active.
package typedb
