// Package backlog models a backlog markdown document as structured data, and
// converts between the two representations: Parse turns raw markdown into a
// Backlog tree, Generate emits a well-formed document from type definitions.
//
// A parse result is a snapshot: callers flatten it into row storage and
// never mutate the tree in place. Each item keeps its verbatim source slice
// so untouched items round-trip byte-identically.
package backlog

import "time"

// Backlog is a whole parsed document.
type Backlog struct {
	// Header is the preamble before the first "##" heading, verbatim.
	Header string
	// TableOfContents is the TOC section, verbatim, including its heading.
	TableOfContents string
	Sections        []Section
	// Footer is reserved for trailing content outside any section. With the
	// current grammar sections run to EOF, so it stays empty on parse.
	Footer string
}

// Section is one "##"-level heading block.
type Section struct {
	// ID is the display ordinal from a "N. " title prefix, 0 when absent.
	ID int
	// Title is the heading text without the ordinal prefix.
	Title string
	// RawHeader is the verbatim heading line.
	RawHeader string
	// Entries is the discriminated union list of the section body.
	Entries []Entry
}

// Entry is the tagged union of the three shapes a section body can hold:
// *Item, *TableGroup, or *RawSection. The interface is sealed so a type
// switch over these three cases is exhaustive.
type Entry interface {
	entry()
}

// Criterion is one acceptance-criteria checkbox.
type Criterion struct {
	Text    string
	Checked bool
}

// Screenshot is a reference to a captured image under
// backlog-assets/screenshots/.
type Screenshot struct {
	File string
	Alt  string
	// Taken is parsed from a timestamp embedded in the filename; zero when
	// the filename carries none.
	Taken time.Time
}

// Item is one ticket.
type Item struct {
	// ID is "{TYPE}-{number}", e.g. BUG-001.
	ID string
	// Type references a TypeDefinition id. Soft reference: not validated at
	// parse time.
	Type   string
	Number int

	Title     string
	Emoji     string
	Component string
	// Severity is P0..P4 when recognized.
	Severity string
	// Priority is Haute, Moyenne or Faible when recognized.
	Priority string
	// Effort is XS, S, M, L or XL when recognized.
	Effort string

	Description  string
	UserStory    string
	Specs        []string
	Reproduction []string
	Criteria     []Criterion
	Dependencies []string
	Constraints  []string
	Screens      []string
	Screenshots  []Screenshot

	// Overflow keeps recognized-item lines that matched no field, so
	// malformed input is bucketed instead of dropped.
	Overflow []string

	// RawMarkdown is the verbatim source slice for the item, header line
	// included. Items whose structured fields were not edited re-emit this
	// byte-identically.
	RawMarkdown string
	// SectionIndex is the encounter order within the owning section.
	SectionIndex int
}

// TableGroup is a compact multi-item block introduced by a ranged header
// ("### BUG-005 à 007 | ...") followed by a markdown table.
type TableGroup struct {
	Type    string
	FromNum int
	ToNum   int
	Title   string

	// Columns holds the table header cells; Rows the data rows, separator
	// excluded.
	Columns []string
	Rows    [][]string
	// Items are the compact items derived from rows whose first cell is a
	// well-formed "TYPE-NNN" id.
	Items []Item

	RawMarkdown  string
	SectionIndex int
}

// RawSection is an opaque block preserved verbatim and never interpreted as
// items: legend, roadmap and conventions sections, and any stray content the
// parser refuses to guess about.
type RawSection struct {
	Title        string
	Content      string
	SectionIndex int
}

func (*Item) entry()       {}
func (*TableGroup) entry() {}
func (*RawSection) entry() {}
