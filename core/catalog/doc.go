// Package catalog holds the in-memory library catalog: the entity records
// (authors, books, borrowers, loans), the Library store that keys them by id,
// and the read-only query and derivation logic computed over them.
//
// The store is populated once at load time and is read-only afterwards; no
// update or delete operations exist and no locking is needed.
package catalog
