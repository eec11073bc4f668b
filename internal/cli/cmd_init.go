package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"

	"bkl/internal/backlog"
	"bkl/internal/store"
	"bkl/internal/typeconfig"
)

var errBacklogExists = errors.New("backlog file already exists (use --force to overwrite)")

// InitCmd returns the init command.
func InitCmd(p *Project) *Command {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.Bool("force", false, "Overwrite an existing backlog file")

	return &Command{
		Flags: fs,
		Usage: "init [name] [flags]",
		Short: "Create a new backlog project",
		Long: "Create a new backlog project: generates the markdown document with the\n" +
			"default type sections, and seeds the store. The name defaults to the\n" +
			"working directory name.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execInit(ctx, o, p, fs, args)
		},
	}
}

func execInit(ctx context.Context, o *IO, p *Project, fs *flag.FlagSet, args []string) error {
	name := projectName(p, args)

	force, _ := fs.GetBool("force")

	_, statErr := os.Stat(p.BacklogPath)
	if statErr == nil && !force {
		return fmt.Errorf("%s: %w", p.BacklogPath, errBacklogExists)
	}

	cfg := typeconfig.Default()

	doc := backlog.Generate(typeconfig.Sorted(cfg), backlog.GenerateOptions{
		ProjectName: name,
		Now:         time.Now(),
	})

	err := atomic.WriteFile(p.BacklogPath, strings.NewReader(doc))
	if err != nil {
		return fmt.Errorf("write %s: %w", p.BacklogPath, err)
	}

	st, err := store.Open(ctx, p.DataDir)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	err = st.EnsureProject(ctx, name)
	if err != nil {
		return err
	}

	err = st.SaveTypeConfig(ctx, cfg)
	if err != nil {
		return err
	}

	_, err = st.ImportBacklog(ctx, backlog.Parse(doc))
	if err != nil {
		return err
	}

	o.Printf("initialized %s (%d types)\n", p.BacklogPath, len(cfg.Types))

	return nil
}

// projectName picks the project name: first positional argument, else the
// working directory base name.
func projectName(p *Project, args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}

	return filepath.Base(p.WorkDir)
}
