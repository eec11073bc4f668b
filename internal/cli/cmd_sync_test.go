package cli

import (
	"strings"
	"testing"
)

func Test_Sync_Fails_When_BacklogFileMissing(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	stderr := cli.MustFail("sync")
	AssertContains(t, stderr, "backlog file not found")
}

func Test_Sync_ImportsItems_When_FileHandEdited(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	cli.WriteBacklog(strings.Join([]string{
		"# 📋 BACKLOG — demo",
		"",
		"## 1. BUGS",
		"",
		"### BUG-001 | Crash au login",
		"",
		"**Sévérité:** P1",
		"",
		"## 2. Custom Type",
		"",
		"### CUSTOM_TYPE-001 | Premier",
		"",
	}, "\n"))

	stdout := cli.MustRun("sync")
	AssertContains(t, stdout, "synced 2 sections, 2 items")

	ls := cli.MustRun("ls")
	AssertContains(t, ls, "BUG-001")
	AssertContains(t, ls, "CUSTOM_TYPE-001")

	// The hand-written section became a new type behind the built-ins.
	types := cli.MustRun("types")
	AssertContains(t, types, "CUSTOM_TYPE")
	AssertContains(t, types, "Custom Type")
}

// Contract: sync is idempotent; a second run with no file changes leaves the
// type set and item rows identical.
func Test_Sync_IsIdempotent_When_RunTwice(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	cli.MustRun("init", "demo")

	first := cli.MustRun("sync")
	second := cli.MustRun("sync")

	if first != second {
		t.Fatalf("sync output changed:\nfirst:  %s\nsecond: %s", first, second)
	}
}

// Contract: a removed type stays removed across syncs even while its section
// is still present in the markdown file. The stale section triggers a warning
// and a non-zero exit so scripted callers notice.
func Test_Sync_RespectsTombstone_When_TypeRemoved(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	cli.MustRun("init", "demo")
	cli.MustRun("types", "rm", "MT")

	stdout, stderr, code := cli.Run("sync")
	if code != 1 {
		t.Fatalf("exit code: %d", code)
	}

	AssertContains(t, stdout, "synced")
	AssertContains(t, stderr, "warning: type MT was deleted")

	types := cli.MustRun("types")
	AssertNotContains(t, types, "Moyen Terme")
	AssertContains(t, types, "tombstoned: [MT]")
}

func Test_Sync_KeepsCustomization_When_LabelEdited(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	cli.MustRun("init", "demo")
	cli.MustRun("types", "set", "BUG", "--label", "Anomalies", "--color", "#000000")

	cli.MustRun("sync")

	types := cli.MustRun("types")
	AssertContains(t, types, "Anomalies")
	AssertContains(t, types, "#000000")
	AssertNotContains(t, types, "#ef4444")
}
