package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	flag "github.com/spf13/pflag"

	"bkl/internal/store"
	"bkl/internal/typeconfig"
)

var (
	errTypeIDRequired = errors.New("type id is required")
	errMvIndexes      = errors.New("mv requires two indexes: <from> <to>")
	errUnknownAction  = errors.New("unknown types action (expected ls|add|rm|set|mv)")
)

// TypesCmd returns the types command with its subactions.
func TypesCmd(p *Project) *Command {
	fs := flag.NewFlagSet("types", flag.ContinueOnError)
	fs.String("label", "", "Display label")
	fs.String("color", "", "Display color (hex)")
	fs.String("visible", "", "Visibility (true|false)")
	fs.Bool("hidden", false, "Create the type hidden (add only)")

	return &Command{
		Flags: fs,
		Usage: "types [ls|add|rm|set|mv] [flags]",
		Short: "Inspect and edit the type configuration",
		Long: "Without arguments, lists the types sorted by column order.\n\n" +
			"  types add <id> [--label --color --hidden]   add a type (un-deletes a tombstone)\n" +
			"  types rm <id>                               remove a type (tombstones it)\n" +
			"  types set <id> [--label --color --visible]  update a type; the id is immutable\n" +
			"  types mv <from> <to>                        move within the sorted view, renumbering",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execTypes(ctx, o, p, fs, args)
		},
	}
}

func execTypes(ctx context.Context, o *IO, p *Project, fs *flag.FlagSet, args []string) error {
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

	action := "ls"
	if len(args) > 0 {
		action = args[0]
		args = args[1:]
	}

	switch action {
	case "ls":
		printTypes(o, cfg)
		return nil
	case "add":
		return typesAdd(ctx, o, st, cfg, fs, args)
	case "rm":
		return typesRemove(ctx, o, st, cfg, args)
	case "set":
		return typesSet(ctx, o, st, cfg, fs, args)
	case "mv":
		return typesMove(ctx, o, st, cfg, args)
	default:
		return fmt.Errorf("%q: %w", action, errUnknownAction)
	}
}

func printTypes(o *IO, cfg typeconfig.TypeConfig) {
	rows := [][]string{{"ORDER", "ID", "LABEL", "COLOR", "VISIBLE"}}

	for _, t := range typeconfig.Sorted(cfg) {
		rows = append(rows, []string{
			strconv.Itoa(t.Order), t.ID, t.Label, t.Color, strconv.FormatBool(t.Visible),
		})
	}

	printTable(o, rows)

	if len(cfg.DeletedTypes) > 0 {
		o.Println()
		o.Println("tombstoned:", cfg.DeletedTypes)
	}
}

func typesAdd(ctx context.Context, o *IO, st *store.Store, cfg typeconfig.TypeConfig, fs *flag.FlagSet, args []string) error {
	if len(args) == 0 {
		return errTypeIDRequired
	}

	label, _ := fs.GetString("label")
	color, _ := fs.GetString("color")
	hidden, _ := fs.GetBool("hidden")

	next, err := typeconfig.Add(cfg, typeconfig.TypeDefinition{
		ID:      args[0],
		Label:   label,
		Color:   color,
		Visible: !hidden,
	})
	if err != nil {
		return err
	}

	err = st.SaveTypeConfig(ctx, next)
	if err != nil {
		return err
	}

	o.Println("added", args[0])

	return nil
}

func typesRemove(ctx context.Context, o *IO, st *store.Store, cfg typeconfig.TypeConfig, args []string) error {
	if len(args) == 0 {
		return errTypeIDRequired
	}

	next, err := typeconfig.Remove(cfg, args[0])
	if err != nil {
		return err
	}

	err = st.SaveTypeConfig(ctx, next)
	if err != nil {
		return err
	}

	o.Println("removed", args[0], "(tombstoned)")

	return nil
}

func typesSet(ctx context.Context, o *IO, st *store.Store, cfg typeconfig.TypeConfig, fs *flag.FlagSet, args []string) error {
	if len(args) == 0 {
		return errTypeIDRequired
	}

	var patch typeconfig.Patch

	if fs.Changed("label") {
		label, _ := fs.GetString("label")
		patch.Label = &label
	}

	if fs.Changed("color") {
		color, _ := fs.GetString("color")
		patch.Color = &color
	}

	if fs.Changed("visible") {
		raw, _ := fs.GetString("visible")

		visible, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("--visible: %w", err)
		}

		patch.Visible = &visible
	}

	next, err := typeconfig.Update(cfg, args[0], patch)
	if err != nil {
		return err
	}

	err = st.SaveTypeConfig(ctx, next)
	if err != nil {
		return err
	}

	o.Println("updated", args[0])

	return nil
}

func typesMove(ctx context.Context, o *IO, st *store.Store, cfg typeconfig.TypeConfig, args []string) error {
	if len(args) < 2 {
		return errMvIndexes
	}

	from, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("<from>: %w", err)
	}

	to, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("<to>: %w", err)
	}

	next, err := typeconfig.Reorder(cfg, from, to)
	if err != nil {
		return err
	}

	err = st.SaveTypeConfig(ctx, next)
	if err != nil {
		return err
	}

	o.Printf("moved %d -> %d\n", from, to)

	return nil
}
