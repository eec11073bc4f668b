package cli

import (
	"context"
	"errors"
	"strings"

	flag "github.com/spf13/pflag"

	"bkl/internal/store"
)

var errItemIDRequired = errors.New("item id is required")

// ShowCmd returns the show command.
func ShowCmd(p *Project) *Command {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "show <id>",
		Short: "Print an item's verbatim markdown",
		Long:  "Print the verbatim markdown of one item, exactly as it appears in the backlog file.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execShow(ctx, o, p, args)
		},
	}
}

func execShow(ctx context.Context, o *IO, p *Project, args []string) error {
	if len(args) == 0 {
		return errItemIDRequired
	}

	st, err := store.Open(ctx, p.DataDir)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	item, err := st.GetItem(ctx, args[0])
	if err != nil {
		return err
	}

	o.Printf("%s", item.RawMarkdown)

	if !strings.HasSuffix(item.RawMarkdown, "\n") {
		o.Println()
	}

	return nil
}
