package typeconfig

import (
	"strings"

	"bkl/internal/pattern"
)

// sectionAliases maps known section titles to type codes, for documents that
// predate the <!-- Type: --> markers. Keys are uppercase. The bare code "BUG"
// is deliberately absent: only the plural "BUGS" is a known alias, so a title
// like "BUG V5" falls through to the custom-type path instead of collapsing
// into the built-in BUG type.
var sectionAliases = map[string]string{
	"BUGS":        TypeBug,
	"COURT TERME": TypeShortTerm,
	"MOYEN TERME": TypeMidTerm,
	"LONG TERME":  TypeLongTerm,
}

// aliasBoundary lists the separators allowed after an alias in a boundary
// match. "BUGS (Hotfix)" resolves to BUG; "BUGFIX" does not. The set is
// fixed: space, tab, '(', '-', ':'.
const aliasBoundary = " \t(-:"

// DetectTypes returns the type codes evidenced by a markdown document, from
// three independent signals in decreasing strength:
//
//  1. item-header ids ("### BUG-001 | ..."), always trusted;
//  2. "<!-- Type: XXX -->" comments embedded by the generator, so that a
//     still-empty section is detectable;
//  3. section titles, resolved through the known-alias table, then a
//     boundary match, then promoted to a brand-new custom code when the
//     title is well formed. Legend, conventions and table-of-contents
//     titles never contribute.
//
// The result is deduplicated in discovery order. Detection is total: any
// input yields a (possibly empty) list, never an error.
func DetectTypes(markdown string) []string {
	var (
		seen  = map[string]bool{}
		codes []string
	)

	add := func(code string) {
		if code == "" || seen[code] {
			return
		}

		seen[code] = true
		codes = append(codes, code)
	}

	for _, m := range pattern.ItemHeader.FindAllStringSubmatch(markdown, -1) {
		add(m[1])
	}

	for _, m := range pattern.TypeComment.FindAllStringSubmatch(markdown, -1) {
		add(m[1])
	}

	for _, m := range pattern.SectionHeader.FindAllStringSubmatch(markdown, -1) {
		add(typeFromSectionTitle(m[2]))
	}

	return codes
}

// typeFromSectionTitle resolves one section title to a type code, or ""
// when the title carries no type signal. Resolution order: exact alias,
// boundary alias, custom code. Malformed titles are silently ignored.
func typeFromSectionTitle(title string) string {
	// Inline markers belong to signal 2, not to the title text.
	title = strings.TrimSpace(pattern.TypeComment.ReplaceAllString(title, ""))
	if title == "" {
		return ""
	}

	if pattern.IsRawSectionTitle(title) || pattern.IsTOCTitle(title) {
		return ""
	}

	upper := strings.ToUpper(title)

	if code, ok := sectionAliases[upper]; ok {
		return code
	}

	for alias, code := range sectionAliases {
		if rest, ok := strings.CutPrefix(upper, alias); ok &&
			rest != "" && strings.ContainsRune(aliasBoundary, rune(rest[0])) {
			return code
		}
	}

	if !pattern.CustomTitle.MatchString(title) {
		return ""
	}

	return strings.ReplaceAll(upper, " ", "_")
}
