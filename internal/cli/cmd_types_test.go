package cli

import (
	"strings"
	"testing"
)

func Test_Types_ListsDefaults_When_StoreEmpty(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	stdout := cli.MustRun("types")

	lines := strings.Split(stdout, "\n")
	if len(lines) != 5 {
		t.Fatalf("want header plus 4 types, got:\n%s", stdout)
	}

	AssertContains(t, lines[0], "ORDER")
	AssertContains(t, lines[1], "BUG")
	AssertContains(t, lines[4], "Long Terme")
}

func Test_TypesAdd_PersistsType_When_IDValid(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	stdout := cli.MustRun("types", "add", "IDEAS", "--label", "Idées", "--color", "#123456")
	AssertContains(t, stdout, "added IDEAS")

	types := cli.MustRun("types")
	AssertContains(t, types, "Idées")
	AssertContains(t, types, "#123456")

	stderr := cli.MustFail("types", "add", "IDEAS")
	AssertContains(t, stderr, "already exists")

	stderr = cli.MustFail("types", "add", "lowercase")
	AssertContains(t, stderr, "must match")
}

func Test_TypesRm_Tombstones_When_TypeExists(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	stdout := cli.MustRun("types", "rm", "CT")
	AssertContains(t, stdout, "removed CT (tombstoned)")

	types := cli.MustRun("types")
	AssertNotContains(t, types, "Court Terme")
	AssertContains(t, types, "tombstoned: [CT]")

	// Re-adding clears the tombstone.
	cli.MustRun("types", "add", "CT")
	types = cli.MustRun("types")
	AssertNotContains(t, types, "tombstoned")

	stderr := cli.MustFail("types", "rm", "NOPE")
	AssertContains(t, stderr, "not found")
}

func Test_TypesSet_UpdatesFields_When_FlagsGiven(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	cli.MustRun("types", "set", "BUG", "--label", "Anomalies", "--visible", "false")

	types := cli.MustRun("types")
	AssertContains(t, types, "Anomalies")
	AssertContains(t, types, "false")

	stderr := cli.MustFail("types", "set", "BUG", "--visible", "maybe")
	AssertContains(t, stderr, "--visible")
}

func Test_TypesMv_Renumbers_When_IndexesValid(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	stdout := cli.MustRun("types", "mv", "0", "3")
	AssertContains(t, stdout, "moved 0 -> 3")

	types := cli.MustRun("types")

	lines := strings.Split(types, "\n")
	AssertContains(t, lines[1], "CT")
	AssertContains(t, lines[4], "BUG")

	stderr := cli.MustFail("types", "mv", "0", "9")
	AssertContains(t, stderr, "index")

	stderr = cli.MustFail("types", "mv", "0")
	AssertContains(t, stderr, "two indexes")
}

func Test_Types_Fails_When_ActionUnknown(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	stderr := cli.MustFail("types", "explode")
	AssertContains(t, stderr, "unknown types action")
}
