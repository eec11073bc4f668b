// Package typeconfig owns the dynamic item-type model of a backlog project:
// the type definitions that drive kanban columns, their detection from raw
// markdown, and the tombstone-aware merge that reconciles detected types with
// user customization.
//
// Every operation in this package is a pure function over value types: inputs
// are never mutated, mutators return a new TypeConfig. This keeps concurrent
// callers safe and makes change detection a deep-equality check. The one
// obligation left to the host is read-modify-write serialization: detection
// plus merge must run against the currently stored config, one reconciliation
// in flight per project.
package typeconfig

// SchemaVersion is the current TypeConfig schema version, stored alongside the
// config for future migrations.
const SchemaVersion = 1

// TypeDefinition is one user-visible ticket category.
type TypeDefinition struct {
	// ID is the short uppercase code used as the prefix of item identifiers
	// (BUG-001). Unique within a TypeConfig.
	ID string `json:"id"`
	// Label is the display name, editable independently from ID.
	Label string `json:"label"`
	// Color is the display color as a hex string.
	Color string `json:"color"`
	// Order is the column rank. Gaps are permitted; only relative order counts.
	Order int `json:"order"`
	// Visible excludes the type from kanban rendering when false. Hidden
	// types stay in storage.
	Visible bool `json:"visible"`
}

// TypeConfig is the full type configuration owned by one project.
type TypeConfig struct {
	Types []TypeDefinition `json:"types"`
	// DeletedTypes is a tombstone list: ids the user removed explicitly.
	// Detection never resurrects a tombstoned type; only AddType clears it.
	DeletedTypes []string `json:"deletedTypes"`
	Version      int      `json:"version"`
}

// Clone returns a deep copy. All mutators go through Clone so the input
// config is never aliased by the result.
func (c TypeConfig) Clone() TypeConfig {
	out := TypeConfig{Version: c.Version}
	if c.Types != nil {
		out.Types = make([]TypeDefinition, len(c.Types))
		copy(out.Types, c.Types)
	}

	if c.DeletedTypes != nil {
		out.DeletedTypes = make([]string, len(c.DeletedTypes))
		copy(out.DeletedTypes, c.DeletedTypes)
	}

	return out
}

// find returns the index of the type with the given id, or -1.
func (c TypeConfig) find(id string) int {
	for i, t := range c.Types {
		if t.ID == id {
			return i
		}
	}

	return -1
}

// isDeleted reports whether id is tombstoned.
func (c TypeConfig) isDeleted(id string) bool {
	for _, d := range c.DeletedTypes {
		if d == id {
			return true
		}
	}

	return false
}

// maxOrder returns the highest order among types, or -1 when empty.
func (c TypeConfig) maxOrder() int {
	max := -1
	for _, t := range c.Types {
		if t.Order > max {
			max = t.Order
		}
	}

	return max
}

// Built-in type codes.
const (
	TypeBug       = "BUG"
	TypeShortTerm = "CT"
	TypeMidTerm   = "MT"
	TypeLongTerm  = "LT"
)

// legacyTypes maps the built-in codes to their canonical label and color.
// A legacy type created by detection gets these instead of an auto color.
var legacyTypes = map[string]TypeDefinition{
	TypeBug:       {ID: TypeBug, Label: "Bugs", Color: "#ef4444"},
	TypeShortTerm: {ID: TypeShortTerm, Label: "Court Terme", Color: "#3b82f6"},
	TypeMidTerm:   {ID: TypeMidTerm, Label: "Moyen Terme", Color: "#f59e0b"},
	TypeLongTerm:  {ID: TypeLongTerm, Label: "Long Terme", Color: "#8b5cf6"},
}

// autoPalette supplies deterministic colors for detected custom types,
// cycling by the number of types already present.
var autoPalette = []string{
	"#10b981", // emerald
	"#06b6d4", // cyan
	"#ec4899", // pink
	"#f97316", // orange
	"#6366f1", // indigo
	"#84cc16", // lime
	"#14b8a6", // teal
	"#a855f7", // purple
}

// Default returns the configuration a project starts with when it has no
// stored config: the four built-in types, no tombstones.
func Default() TypeConfig {
	return TypeConfig{
		Types: []TypeDefinition{
			{ID: TypeBug, Label: "Bugs", Color: "#ef4444", Order: 0, Visible: true},
			{ID: TypeShortTerm, Label: "Court Terme", Color: "#3b82f6", Order: 1, Visible: true},
			{ID: TypeMidTerm, Label: "Moyen Terme", Color: "#f59e0b", Order: 2, Visible: true},
			{ID: TypeLongTerm, Label: "Long Terme", Color: "#8b5cf6", Order: 3, Visible: true},
		},
		DeletedTypes: []string{},
		Version:      SchemaVersion,
	}
}
