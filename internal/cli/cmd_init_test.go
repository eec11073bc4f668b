package cli

import (
	"path/filepath"
	"testing"
)

func Test_Init_CreatesBacklogAndStore_When_ProjectEmpty(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	stdout := cli.MustRun("init", "demo")
	AssertContains(t, stdout, "initialized")
	AssertContains(t, stdout, "4 types")

	content := cli.ReadBacklog()
	AssertContains(t, content, "# 📋 BACKLOG — demo")
	AssertContains(t, content, "## TABLE DES MATIÈRES")
	AssertContains(t, content, "<!-- Type: BUG -->")
	AssertContains(t, content, "<!-- Type: LT -->")
	AssertContains(t, content, "LÉGENDE")

	// The store is seeded alongside the markdown file.
	types := cli.MustRun("types")
	AssertContains(t, types, "BUG")
	AssertContains(t, types, "Court Terme")
}

func Test_Init_UsesDirectoryName_When_NoNameGiven(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	cli.MustRun("init")

	AssertContains(t, cli.ReadBacklog(), "# 📋 BACKLOG — "+filepath.Base(cli.Dir))
}

func Test_Init_Fails_When_BacklogExists(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	cli.MustRun("init", "demo")

	stderr := cli.MustFail("init", "demo")
	AssertContains(t, stderr, "already exists")

	// --force overwrites.
	cli.MustRun("init", "demo2", "--force")
	AssertContains(t, cli.ReadBacklog(), "demo2")
}

func Test_Init_HonorsCustomFile_When_FileFlagGiven(t *testing.T) {
	t.Parallel()

	cli := NewCLI(t)

	cli.MustRun("--file", "notes.md", "init", "demo")

	if _, _, code := cli.Run("--file", "notes.md", "detect"); code != 0 {
		t.Fatal("detect should find the custom file")
	}

	// The default path was never written.
	_, _, code := cli.Run("detect")
	if code == 0 {
		t.Fatal("detect should fail on the default path")
	}
}
