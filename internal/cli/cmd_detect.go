package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"bkl/internal/typeconfig"
)

// DetectCmd returns the detect command, a dry-run view of type detection.
func DetectCmd(p *Project) *Command {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "detect",
		Short: "Print the type codes detected in the backlog file",
		Long: "Print the type codes the backlog file evidences (item ids, type\n" +
			"markers, section titles), one per line, without touching the store.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execDetect(o, p)
		},
	}
}

func execDetect(o *IO, p *Project) error {
	data, err := os.ReadFile(p.BacklogPath) //nolint:gosec // path derives from config
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", p.BacklogPath, errNoBacklogFile)
	}

	if err != nil {
		return fmt.Errorf("read %s: %w", p.BacklogPath, err)
	}

	for _, code := range typeconfig.DetectTypes(string(data)) {
		o.Println(code)
	}

	return nil
}
