package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	flag "github.com/spf13/pflag"

	"bkl/internal/store"
)

const defaultLsLimit = 100

// LsCmd returns the ls command.
func LsCmd(p *Project) *Command {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.String("type", "", "Filter by type code (e.g. BUG)")
	fs.String("severity", "", "Filter by severity (P0-P4)")
	fs.String("priority", "", "Filter by priority (Haute|Moyenne|Faible)")
	fs.Int("section", -1, "Filter by section ordinal")
	fs.Int("limit", defaultLsLimit, "Maximum items to show")
	fs.Int("offset", 0, "Skip first N items")

	return &Command{
		Flags: fs,
		Usage: "ls [flags]",
		Short: "List imported items",
		Long:  "List items from the store in document order. Run 'bkl sync' first.",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			return execLs(ctx, o, p, fs)
		},
	}
}

func execLs(ctx context.Context, o *IO, p *Project, fs *flag.FlagSet) error {
	limit, _ := fs.GetInt("limit")
	if limit < 0 {
		return errors.New("--limit must be non-negative")
	}

	offset, _ := fs.GetInt("offset")
	if offset < 0 {
		return errors.New("--offset must be non-negative")
	}

	typeCode, _ := fs.GetString("type")
	severity, _ := fs.GetString("severity")
	priority, _ := fs.GetString("priority")
	section, _ := fs.GetInt("section")

	opts := store.QueryOptions{
		Type:     typeCode,
		Severity: severity,
		Priority: priority,
		Limit:    limit,
		Offset:   offset,
	}
	if fs.Changed("section") {
		opts.Section = section
		opts.SectionSet = true
	}

	st, err := store.Open(ctx, p.DataDir)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	items, err := st.QueryItems(ctx, &opts)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		return nil
	}

	rows := [][]string{{"ID", "TYPE", "SEV", "PRIO", "TITLE", "CRITERIA", "SECTION"}}

	for _, item := range items {
		title := item.Title
		if item.Emoji != "" {
			title = item.Emoji + " " + title
		}

		criteria := ""
		if item.CriteriaTotal > 0 {
			criteria = fmt.Sprintf("%d/%d", item.CriteriaDone, item.CriteriaTotal)
		}

		rows = append(rows, []string{
			item.ID, item.Type, item.Severity, item.Priority, title, criteria,
			strconv.Itoa(item.SectionOrdinal) + " " + item.SectionTitle,
		})
	}

	printTable(o, rows)

	return nil
}
