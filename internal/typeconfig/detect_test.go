package typeconfig_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bkl/internal/typeconfig"
)

// Contract: item-header ids are the strongest signal and always contribute.
func Test_DetectTypes_ReturnsCodes_When_ItemHeadersPresent(t *testing.T) {
	t.Parallel()

	doc := strings.Join([]string{
		"### BUG-001 | Login crash",
		"",
		"### CT-002 | Quick win",
		"",
		"### BUG-003 | Duplicate code, single detection",
	}, "\n")

	got := typeconfig.DetectTypes(doc)

	want := []string{"BUG", "CT"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("detected types mismatch (-want +got):\n%s", diff)
	}
}

// Contract: type comments detect a type even when its section has no items.
func Test_DetectTypes_ReturnsCode_When_SectionEmptyButMarked(t *testing.T) {
	t.Parallel()

	doc := strings.Join([]string{
		"## 1. FEATURES",
		"<!-- Type: FEAT -->",
		"",
		"(rien pour l'instant)",
	}, "\n")

	got := typeconfig.DetectTypes(doc)

	if len(got) == 0 || got[0] != "FEAT" {
		t.Fatalf("want FEAT from type comment, got %v", got)
	}
}

func Test_DetectTypes_ResolvesSectionTitles_When_NoStrongerSignal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		title string
		want  []string
	}{
		{name: "exact alias", title: "## 1. BUGS", want: []string{"BUG"}},
		{name: "exact alias lowercased", title: "## 2. Court Terme", want: []string{"CT"}},
		{name: "boundary alias paren", title: "## 1. BUGS (Hotfix)", want: []string{"BUG"}},
		{name: "boundary alias dash", title: "## 1. MOYEN TERME-V2", want: []string{"MT"}},
		{name: "boundary alias colon", title: "## 1. LONG TERME: vision", want: []string{"LT"}},
		{name: "no boundary no match", title: "## 1. BUGSFIX", want: []string{"BUGSFIX"}},
		// "BUG" is not an alias, only "BUGS" is. A singular title becomes a
		// distinct custom type instead of collapsing into the built-in.
		{name: "singular bug is custom", title: "## 1. BUG V5", want: []string{"BUG_V5"}},
		{name: "custom title", title: "## 3. Idées Archivées", want: []string{"IDÉES_ARCHIVÉES"}},
		{name: "unnumbered section", title: "## Backlog Divers", want: []string{"BACKLOG_DIVERS"}},
		{name: "legend excluded", title: "## 5. LÉGENDE", want: nil},
		{name: "conventions excluded", title: "## 6. Conventions", want: nil},
		{name: "toc excluded", title: "## TABLE DES MATIÈRES", want: nil},
		{name: "roadmap excluded", title: "## ROADMAP 2026", want: nil},
		{name: "punctuation rejected", title: "## 7. What? No!", want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc := tc
			t.Parallel()

			got := typeconfig.DetectTypes(tc.title + "\n")

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("title %q (-want +got):\n%s", tc.title, diff)
			}
		})
	}
}

// Contract: a full document yields each code once, in discovery order by
// signal strength (item ids, then markers, then titles).
func Test_DetectTypes_DeduplicatesAcrossSignals_When_DocumentMixed(t *testing.T) {
	t.Parallel()

	doc := strings.Join([]string{
		"# 📋 BACKLOG — demo",
		"",
		"## TABLE DES MATIÈRES",
		"1. [BUGS](#bugs)",
		"",
		"## 1. BUGS",
		"<!-- Type: BUG -->",
		"",
		"### BUG-001 | Crash au login",
		"",
		"## 2. COURT TERME",
		"<!-- Type: CT -->",
		"",
		"## 3. Custom Type",
		"",
		"### CUSTOM-001 | Premier item custom",
		"",
		"## 4. LÉGENDE",
	}, "\n")

	got := typeconfig.DetectTypes(doc)

	want := []string{"BUG", "CUSTOM", "CT", "CUSTOM_TYPE"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("detected types mismatch (-want +got):\n%s", diff)
	}
}

func Test_DetectTypes_ReturnsEmpty_When_NoSignal(t *testing.T) {
	t.Parallel()

	for _, doc := range []string{"", "plain prose\n", "# Title only\n\nno sections here\n"} {
		if got := typeconfig.DetectTypes(doc); len(got) != 0 {
			t.Fatalf("doc %q: want no types, got %v", doc, got)
		}
	}
}

// Contract: an inline marker inside a section title counts as signal 2 and is
// stripped before the title itself is resolved.
func Test_DetectTypes_StripsInlineMarker_When_TitleCarriesOne(t *testing.T) {
	t.Parallel()

	got := typeconfig.DetectTypes("## 1. BUGS <!-- Type: BUG -->\n")

	want := []string{"BUG"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("detected types mismatch (-want +got):\n%s", diff)
	}
}
