package pattern_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"bkl/internal/pattern"
)

func Test_SectionHeader_SplitsOrdinal_When_TitleNumbered(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		line      string
		wantNum   string
		wantTitle string
	}{
		{name: "numbered", line: "## 2. COURT TERME", wantNum: "2", wantTitle: "COURT TERME"},
		{name: "unnumbered", line: "## Divers", wantNum: "", wantTitle: "Divers"},
		{name: "crlf", line: "## 1. BUGS\r", wantNum: "1", wantTitle: "BUGS"},
		{name: "trailing space", line: "## 3. Idées  ", wantNum: "3", wantTitle: "Idées"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc := tc
			t.Parallel()

			m := pattern.SectionHeader.FindStringSubmatch(tc.line)
			if m == nil {
				t.Fatalf("no match: %q", tc.line)
			}

			if m[1] != tc.wantNum || m[2] != tc.wantTitle {
				t.Fatalf("got num=%q title=%q", m[1], m[2])
			}
		})
	}

	// "###" item headers must not match as sections.
	if pattern.SectionHeader.MatchString("### BUG-001 | X") {
		t.Fatal("item header matched as section")
	}
}

func Test_ItemHeader_CapturesRange_When_HeaderRanged(t *testing.T) {
	t.Parallel()

	single := pattern.ItemHeader.FindStringSubmatch("### BUG-001 | Crash au login")
	if single == nil || single[1] != "BUG" || single[2] != "001" || single[3] != "" {
		t.Fatalf("single: %v", single)
	}

	ranged := pattern.ItemHeader.FindStringSubmatch("### CT-005 à 007 | Petits travaux")
	if ranged == nil || ranged[2] != "005" || ranged[3] != "007" || ranged[4] != "Petits travaux" {
		t.Fatalf("ranged: %v", ranged)
	}

	// ASCII "a" works where the accent was lost.
	if pattern.ItemHeader.FindStringSubmatch("### CT-005 a 007 | X") == nil {
		t.Fatal("ascii range separator rejected")
	}

	for _, bad := range []string{
		"### bug-001 | lowercase type",
		"### BUG001 | no dash",
		"### BUG-001 no pipe",
		"## BUG-001 | wrong level",
	} {
		if pattern.ItemHeader.MatchString(bad) {
			t.Fatalf("should not match: %q", bad)
		}
	}
}

func Test_Metadata_CapturesKeyValue_When_FrenchPunctuation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		line      string
		wantKey   string
		wantValue string
	}{
		{line: "**Sévérité:** P1", wantKey: "Sévérité", wantValue: "P1"},
		{line: "**Sévérité :** P1", wantKey: "Sévérité", wantValue: "P1"},
		{line: "**Critères d'acceptation:**", wantKey: "Critères d'acceptation", wantValue: ""},
		{line: "**Effort:** M\r", wantKey: "Effort", wantValue: "M"},
	}

	for _, tc := range cases {
		m := pattern.Metadata.FindStringSubmatch(tc.line)
		if m == nil {
			t.Fatalf("no match: %q", tc.line)
		}

		if m[1] != tc.wantKey || m[2] != tc.wantValue {
			t.Fatalf("line %q: got key=%q value=%q", tc.line, m[1], m[2])
		}
	}

	// Plain bold text is not metadata.
	if pattern.Metadata.MatchString("**juste du gras**") {
		t.Fatal("bold text matched as metadata")
	}
}

func Test_Checkbox_DistinguishesState_When_MarkVaries(t *testing.T) {
	t.Parallel()

	m := pattern.Checkbox.FindStringSubmatch("- [x] fait")
	if m == nil || m[1] != "x" || m[2] != "fait" {
		t.Fatalf("checked: %v", m)
	}

	m = pattern.Checkbox.FindStringSubmatch("* [ ] à faire")
	if m == nil || m[1] != " " {
		t.Fatalf("unchecked star bullet: %v", m)
	}

	// A plain bullet is a list item, not a checkbox.
	if pattern.Checkbox.MatchString("- [lien](http://example.com)") {
		t.Fatal("markdown link matched as checkbox")
	}
}

func Test_Screenshot_ExtractsFile_When_PathUnderAssets(t *testing.T) {
	t.Parallel()

	m := pattern.Screenshot.FindStringSubmatch("![avant](./backlog-assets/screenshots/capture_2026-01-10_09-15-30.png)")
	if m == nil || m[1] != "avant" || m[2] != "capture_2026-01-10_09-15-30.png" {
		t.Fatalf("image form: %v", m)
	}

	// Plain link form, without the leading "./".
	m = pattern.Screenshot.FindStringSubmatch("[écran](backlog-assets/screenshots/s.png)")
	if m == nil || m[2] != "s.png" {
		t.Fatalf("link form: %v", m)
	}

	if pattern.Screenshot.MatchString("![x](images/autre.png)") {
		t.Fatal("foreign path matched")
	}

	sm := pattern.ScreenshotStamp.FindStringSubmatch("capture_2026-01-10_09-15-30.png")
	want := []string{"2026-01-10_09-15-30", "2026-01-10", "09-15-30"}
	if diff := cmp.Diff(want, sm); diff != "" {
		t.Fatalf("stamp (-want +got):\n%s", diff)
	}
}

func Test_TableRow_SkipsSeparator_When_RowsScanned(t *testing.T) {
	t.Parallel()

	if !pattern.TableRow.MatchString("| a | b |") {
		t.Fatal("data row rejected")
	}

	sep := "|----|:---:|"
	if !pattern.TableRow.MatchString(sep) || !pattern.TableSeparator.MatchString(sep) {
		t.Fatal("separator must match both patterns")
	}

	if pattern.TableSeparator.MatchString("| a | b |") {
		t.Fatal("data row matched as separator")
	}
}

func Test_TitleClassifiers_MatchKeywords_When_CaseAndContextVary(t *testing.T) {
	t.Parallel()

	for _, title := range []string{"LÉGENDE", "légende", "Roadmap 2026", "Sévérité & Priorité"} {
		if !pattern.IsRawSectionTitle(title) {
			t.Fatalf("raw title not recognized: %q", title)
		}
	}

	if pattern.IsRawSectionTitle("BUGS") {
		t.Fatal("BUGS is not a raw section")
	}

	for _, title := range []string{"TABLE DES MATIÈRES", "Sommaire", "Table of Contents"} {
		if !pattern.IsTOCTitle(title) {
			t.Fatalf("toc title not recognized: %q", title)
		}
	}

	if pattern.IsTOCTitle("COURT TERME") {
		t.Fatal("COURT TERME is not a toc title")
	}
}

func Test_TypeCode_Validates_When_ShapeChecked(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"BUG", "CT", "CUSTOM_TYPE", "A1"} {
		if !pattern.TypeCode.MatchString(ok) {
			t.Fatalf("valid code rejected: %q", ok)
		}
	}

	for _, bad := range []string{"", "bug", "1BUG", "_X", "BUG-1", "É"} {
		if pattern.TypeCode.MatchString(bad) {
			t.Fatalf("invalid code accepted: %q", bad)
		}
	}
}

func Test_LeadingEmoji_SplitsPrefix_When_TitleDecorated(t *testing.T) {
	t.Parallel()

	m := pattern.LeadingEmoji.FindStringSubmatch("🔥 Crash au login")
	if m == nil || m[1] != "🔥" {
		t.Fatalf("emoji: %v", m)
	}

	// Variation selector stays attached to the emoji.
	m = pattern.LeadingEmoji.FindStringSubmatch("⚠️ Attention")
	if m == nil || m[1] != "⚠️" {
		t.Fatalf("variation selector: %v", m)
	}

	if pattern.LeadingEmoji.MatchString("Crash au login") {
		t.Fatal("plain title matched")
	}
}
