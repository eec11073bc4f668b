// Package pattern is the single source of truth for the lexical grammar of a
// backlog document. Every construct the parser or the type registry recognizes
// is defined here as a compiled regular expression, so that tolerance rules
// (anchoring, case-insensitivity, CRLF handling) live in exactly one place.
//
// The grammar is intentionally line-oriented:
//
//	## 2. COURT TERME            section header (optional "N. " ordinal)
//	### BUG-001 | Title          item header
//	### BUG-005 à 007 | Title    table-group header (ID range)
//	**Sévérité:** P1             metadata line
//	- [x] done thing             checkbox line
//	> En tant qu'utilisateur...  user-story blockquote
//	![alt](backlog-assets/screenshots/f.png)
//
// All document-scanning patterns are compiled in multiline mode and accept an
// optional trailing \r so both LF and CRLF input match without preprocessing.
package pattern

import (
	"regexp"
	"strings"
)

var (
	// SectionHeader matches a "##" heading. Group 1 is the optional numeric
	// ordinal (from a leading "N. "), group 2 the remaining title text.
	SectionHeader = regexp.MustCompile(`(?m)^##[ \t]+(?:(\d+)\.[ \t]*)?(.*?)[ \t]*\r?$`)

	// ItemHeader matches a "###" item heading. Groups: 1 type code, 2 item
	// number, 3 optional range end ("BUG-005 à 007" form, marking a
	// table-group), 4 title.
	ItemHeader = regexp.MustCompile(`(?m)^###[ \t]+([A-Z][A-Z0-9_]*)-(\d+)(?:[ \t]+[àa][ \t]+(\d+))?[ \t]*\|[ \t]*(.*?)[ \t]*\r?$`)

	// TypeComment matches the HTML marker the generator embeds after each
	// section heading so empty sections stay detectable. Group 1 is the code.
	TypeComment = regexp.MustCompile(`<!--[ \t]*Type:[ \t]*([A-Z][A-Z0-9_]*)[ \t]*-->`)

	// Metadata matches a "**Key:** value" line. Group 1 is the key (which may
	// contain accents and an optional French space before the colon), group 2
	// the inline value, possibly empty for list headings.
	Metadata = regexp.MustCompile(`(?m)^\*\*([^*]+?)[ \t]*:[ \t]*\*\*[ \t]*(.*?)[ \t]*\r?$`)

	// Checkbox matches "- [ ]" / "- [x]" lines, x case-insensitive.
	// Group 1 is the check mark, group 2 the text.
	Checkbox = regexp.MustCompile(`(?m)^[-*][ \t]+\[([ xX])\][ \t]*(.*?)[ \t]*\r?$`)

	// ListItem matches a plain "- text" bullet. Checkbox must be tried first.
	ListItem = regexp.MustCompile(`(?m)^[-*][ \t]+(.*?)[ \t]*\r?$`)

	// Blockquote matches a "> text" line. Group 1 is the quoted text.
	Blockquote = regexp.MustCompile(`(?m)^>[ \t]?(.*?)[ \t]*\r?$`)

	// Screenshot matches a markdown link or image whose target lives under
	// backlog-assets/screenshots/. Group 1 is the alt/label text, group 2 the
	// filename relative to the screenshots directory.
	Screenshot = regexp.MustCompile(`!?\[([^\]]*)\]\((?:\./)?backlog-assets/screenshots/([^)]+)\)`)

	// ScreenshotStamp extracts a capture timestamp embedded in a screenshot
	// filename, e.g. "capture_2024-03-12_14-33-07.png".
	ScreenshotStamp = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})[_T](\d{2}-\d{2}-\d{2})`)

	// TableRow matches a markdown table line. Group 1 is the inner cell text.
	TableRow = regexp.MustCompile(`(?m)^\|(.+)\|[ \t]*\r?$`)

	// TableSeparator matches the |---|---| rule under a table header row.
	TableSeparator = regexp.MustCompile(`(?m)^\|[ \t:|-]+\|[ \t]*\r?$`)

	// TypeCode is the shape of a valid item-type identifier (BUG, CT,
	// CUSTOM_TYPE). Used both when parsing item headers and when validating
	// user-supplied ids.
	TypeCode = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

	// Severity is the P0 (critical) to P4 (cosmetic) severity code.
	Severity = regexp.MustCompile(`^P[0-4]$`)

	// CustomTitle is the charset a section title must satisfy to become a
	// brand-new custom type code: letters (accents included), digits, space,
	// underscore, hyphen. Anything else (emoji, punctuation) is ignored by
	// type detection.
	CustomTitle = regexp.MustCompile(`^[\p{L}\p{N} _-]+$`)

	// LeadingEmoji captures a single emoji (plus optional variation selector)
	// at the start of an item title.
	LeadingEmoji = regexp.MustCompile(`^([\x{1F000}-\x{1FAFF}\x{2600}-\x{27BF}\x{2B00}-\x{2BFF}][\x{FE0F}]?)[ \t]*`)
)

// rawSectionKeywords are matched case-insensitively as substrings against
// section titles. A matching section is preserved verbatim and never parsed
// into items.
var rawSectionKeywords = []string{
	"ROADMAP",
	"LÉGENDE",
	"CONVENTIONS",
	"SÉVÉRITÉ",
	"PRIORITÉ",
}

// tocKeywords identify the table-of-contents section, which is excluded from
// section-title type detection alongside the raw-section keywords.
var tocKeywords = []string{
	"TABLE DES MATIÈRES",
	"SOMMAIRE",
	"TABLE OF CONTENTS",
}

// IsRawSectionTitle reports whether a section title names one of the opaque
// reference sections (legend, roadmap, conventions, ...). The match is a
// case-insensitive substring test against a fixed keyword list.
func IsRawSectionTitle(title string) bool {
	upper := strings.ToUpper(title)
	for _, kw := range rawSectionKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}

	return false
}

// IsTOCTitle reports whether a section title names the table of contents.
func IsTOCTitle(title string) bool {
	upper := strings.ToUpper(title)
	for _, kw := range tocKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}

	return false
}
