package cli

import (
	"context"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"

	"bkl/internal/backlog"
	"bkl/internal/store"
	"bkl/internal/typeconfig"
)

// ExportCmd returns the export command.
func ExportCmd(p *Project) *Command {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.StringP("output", "o", "", "Write to a file instead of stdout")

	return &Command{
		Flags: fs,
		Usage: "export [flags]",
		Short: "Regenerate a full backlog document from the stored types",
		Long: "Regenerate a well-formed backlog document from the stored type\n" +
			"configuration: preamble, table of contents, one section per type with\n" +
			"its type marker, and the legend block.",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			return execExport(ctx, o, p, fs)
		},
	}
}

func execExport(ctx context.Context, o *IO, p *Project, fs *flag.FlagSet) error {
	st, err := store.Open(ctx, p.DataDir)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	stored, err := st.LoadTypeConfig(ctx)
	if err != nil {
		return err
	}

	cfg := typeconfig.Default()
	if stored != nil {
		cfg = *stored
	}

	name, err := st.ProjectName(ctx)
	if err != nil {
		return err
	}

	if name == "" {
		name = projectName(p, nil)
	}

	doc := backlog.Generate(typeconfig.Sorted(cfg), backlog.GenerateOptions{
		ProjectName: name,
		Now:         time.Now(),
	})

	output, _ := fs.GetString("output")
	if output == "" {
		o.Printf("%s", doc)
		return nil
	}

	path := absPath(p.WorkDir, output)

	err = atomic.WriteFile(path, strings.NewReader(doc))
	if err != nil {
		return err
	}

	o.Println("exported", path)

	return nil
}
