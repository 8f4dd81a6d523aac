package memory

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"ordering/domain/shared"
)

// checkWrite applies the rules every table enforces on Save:
// inserts must not collide, updates must carry the stored version.
func checkWrite[T any](table map[string]T, entity, id string, isNew bool, version int, versionOf func(T) int) error {
	existing, exists := table[id]
	if isNew {
		if exists {
			return fmt.Errorf("%s %s already exists", entity, id)
		}
		return nil
	}
	if !exists {
		return shared.NewNotFoundError(entity, id)
	}
	if versionOf(existing) != version {
		return shared.NewConcurrentModificationError(entity, id)
	}
	return nil
}

// checkUniqueName mirrors the unique index on the name column
func checkUniqueName[T any](table map[string]T, entity, id, name string, nameOf func(T) string) error {
	for otherID, row := range table {
		if otherID != id && nameOf(row) == name {
			return shared.NewConflictError(entity, "a "+entity+" named '"+name+"' already exists")
		}
	}
	return nil
}

// findByName scans for an exact, case-sensitive match
func findByName[T any](table map[string]T, name string, nameOf func(T) string) (T, bool) {
	for _, row := range table {
		if nameOf(row) == name {
			return row, true
		}
	}
	var zero T
	return zero, false
}

// rowsByCreation returns rows ordered by creation time then id, oldest first
func rowsByCreation[T any](table map[string]T, keep func(T) bool, createdOf func(T) time.Time, idOf func(T) string) []T {
	rows := make([]T, 0, len(table))
	for _, row := range table {
		if keep == nil || keep(row) {
			rows = append(rows, row)
		}
	}
	slices.SortFunc(rows, func(a, b T) int {
		if c := createdOf(a).Compare(createdOf(b)); c != 0 {
			return c
		}
		return cmp.Compare(idOf(a), idOf(b))
	})
	return rows
}
