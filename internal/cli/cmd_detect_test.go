package cli

import (
	"strings"
	"testing"
)

func Test_Detect_PrintsCodes_When_FilePresent(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	cli.WriteBacklog(strings.Join([]string{
		"## 1. BUGS",
		"",
		"### BUG-001 | X",
		"",
		"## 2. Idées Archivées",
		"",
		"## 3. LÉGENDE",
		"",
	}, "\n"))

	stdout := cli.MustRun("detect")

	want := "BUG\nIDÉES_ARCHIVÉES"
	if stdout != want {
		t.Fatalf("detect output:\n%s", stdout)
	}
}

// Contract: detect is a dry run; it never creates the store.
func Test_Detect_LeavesStoreUntouched_When_Run(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	cli.WriteBacklog("## 1. BUGS\n")
	cli.MustRun("detect")

	// A later sync starting from a clean store still merges onto defaults.
	cli.MustRun("sync")

	types := cli.MustRun("types")
	AssertContains(t, types, "Moyen Terme")
}

func Test_Detect_Fails_When_FileMissing(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	stderr := cli.MustFail("detect")
	AssertContains(t, stderr, "backlog file not found")
}
