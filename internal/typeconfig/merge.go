package typeconfig

import "strings"

// Merge reconciles a freshly detected type list with the stored config.
// stored may be nil (first run), in which case the default config is the
// base. The result is a new config; inputs are never mutated.
//
// Rules, in order:
//
//   - a detected code on the tombstone list is skipped;
//   - a detected code already in the config keeps every stored field
//     untouched (label, color, visible, order) — detection never clobbers
//     user customization or renumbers columns;
//   - a new code is appended with order = max existing + 1 (monotonically
//     increasing across one pass), visible, and either its canonical
//     built-in label/color or a deterministic palette color;
//   - tombstones and version pass through unchanged.
//
// Merge is idempotent: merging the same detection list twice yields a
// deeply equal config.
func Merge(stored *TypeConfig, detected []string) TypeConfig {
	var out TypeConfig
	if stored == nil {
		out = Default()
	} else {
		out = stored.Clone()
	}

	nextOrder := out.maxOrder() + 1

	for _, code := range detected {
		if out.isDeleted(code) || out.find(code) >= 0 {
			continue
		}

		def := TypeDefinition{
			ID:      code,
			Label:   labelFromCode(code),
			Color:   autoPalette[len(out.Types)%len(autoPalette)],
			Order:   nextOrder,
			Visible: true,
		}

		if legacy, ok := legacyTypes[code]; ok {
			def.Label = legacy.Label
			def.Color = legacy.Color
		}

		out.Types = append(out.Types, def)
		nextOrder++
	}

	return out
}

// labelFromCode derives a readable default label from a detected code:
// underscores back to spaces, title case ("CUSTOM_TYPE" -> "Custom Type").
// The user can rename it afterwards without affecting the id.
func labelFromCode(code string) string {
	words := strings.Split(strings.ReplaceAll(code, "_", " "), " ")
	for i, w := range words {
		runes := []rune(w)
		if len(runes) == 0 {
			continue
		}

		words[i] = strings.ToUpper(string(runes[:1])) + strings.ToLower(string(runes[1:]))
	}

	return strings.Join(words, " ")
}
