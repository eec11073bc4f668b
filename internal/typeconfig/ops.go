package typeconfig

import (
	"fmt"
	"slices"

	"bkl/internal/pattern"
)

// Sorted returns the types ordered ascending by Order. The sort is stable,
// so types sharing an order keep their stored relative position. The input
// config is not modified.
func Sorted(cfg TypeConfig) []TypeDefinition {
	out := make([]TypeDefinition, len(cfg.Types))
	copy(out, cfg.Types)

	slices.SortStableFunc(out, func(a, b TypeDefinition) int {
		return a.Order - b.Order
	})

	return out
}

// Add appends a new type. The order is assigned as max existing + 1
// regardless of def.Order, and a palette color is picked when def.Color is
// empty. Re-adding a tombstoned id clears its tombstone ("un-delete").
// Fails with ErrInvalidTypeID or ErrTypeExists.
func Add(cfg TypeConfig, def TypeDefinition) (TypeConfig, error) {
	if !pattern.TypeCode.MatchString(def.ID) {
		return TypeConfig{}, fmt.Errorf("add type %q: %w", def.ID, ErrInvalidTypeID)
	}

	if cfg.find(def.ID) >= 0 {
		return TypeConfig{}, fmt.Errorf("add type %q: %w", def.ID, ErrTypeExists)
	}

	out := cfg.Clone()

	def.Order = out.maxOrder() + 1
	if def.Label == "" {
		def.Label = labelFromCode(def.ID)
	}

	if def.Color == "" {
		def.Color = autoPalette[len(out.Types)%len(autoPalette)]
	}

	out.Types = append(out.Types, def)
	out.DeletedTypes = slices.DeleteFunc(out.DeletedTypes, func(d string) bool {
		return d == def.ID
	})

	return out, nil
}

// Remove deletes a type and records its id on the tombstone list so later
// detection passes cannot resurrect it. Remaining types keep their order
// values; gaps are fine, sorting is always by relative order. Fails with
// ErrTypeNotFound or ErrLastType.
func Remove(cfg TypeConfig, id string) (TypeConfig, error) {
	idx := cfg.find(id)
	if idx < 0 {
		return TypeConfig{}, fmt.Errorf("remove type %q: %w", id, ErrTypeNotFound)
	}

	if len(cfg.Types) == 1 {
		return TypeConfig{}, fmt.Errorf("remove type %q: %w", id, ErrLastType)
	}

	out := cfg.Clone()
	out.Types = append(out.Types[:idx], out.Types[idx+1:]...)

	if !out.isDeleted(id) {
		out.DeletedTypes = append(out.DeletedTypes, id)
	}

	return out, nil
}

// Patch holds optional field updates for Update. Nil fields are left
// untouched. The id itself is immutable through this path.
type Patch struct {
	Label   *string
	Color   *string
	Order   *int
	Visible *bool
}

// Update shallow-merges a patch onto the type with the given id.
// Fails with ErrTypeNotFound.
func Update(cfg TypeConfig, id string, patch Patch) (TypeConfig, error) {
	idx := cfg.find(id)
	if idx < 0 {
		return TypeConfig{}, fmt.Errorf("update type %q: %w", id, ErrTypeNotFound)
	}

	out := cfg.Clone()
	def := &out.Types[idx]

	if patch.Label != nil {
		def.Label = *patch.Label
	}

	if patch.Color != nil {
		def.Color = *patch.Color
	}

	if patch.Order != nil {
		def.Order = *patch.Order
	}

	if patch.Visible != nil {
		def.Visible = *patch.Visible
	}

	return out, nil
}

// Reorder moves the element at fromIndex of the order-sorted view to
// toIndex, then renumbers every type to its new index (contiguous 0..n-1).
// The full renumber is deliberate and differs from Remove, which preserves
// gaps. Fails with ErrBadIndex.
func Reorder(cfg TypeConfig, fromIndex, toIndex int) (TypeConfig, error) {
	sorted := Sorted(cfg)

	if fromIndex < 0 || fromIndex >= len(sorted) || toIndex < 0 || toIndex >= len(sorted) {
		return TypeConfig{}, fmt.Errorf("reorder %d -> %d: %w", fromIndex, toIndex, ErrBadIndex)
	}

	moved := sorted[fromIndex]
	sorted = append(sorted[:fromIndex], sorted[fromIndex+1:]...)
	sorted = slices.Insert(sorted, toIndex, moved)

	for i := range sorted {
		sorted[i].Order = i
	}

	out := cfg.Clone()
	out.Types = sorted

	return out, nil
}
