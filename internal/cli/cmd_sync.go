package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"bkl/internal/backlog"
	"bkl/internal/store"
	"bkl/internal/typeconfig"
)

var errNoBacklogFile = errors.New("backlog file not found (run 'bkl init' first)")

// SyncCmd returns the sync command: the reconciliation path that runs on
// project open or after the markdown file changed.
func SyncCmd(p *Project) *Command {
	fs := flag.NewFlagSet("sync", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "sync",
		Short: "Reconcile the markdown file with the store",
		Long: "Parse the backlog file, detect item types, merge them with the stored\n" +
			"type configuration (user customization and tombstones win), persist the\n" +
			"result and re-import all items. Concurrent syncs are serialized through\n" +
			"a project lock.",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			return execSync(ctx, o, p)
		},
	}
}

func execSync(ctx context.Context, o *IO, p *Project) error {
	lock, err := acquireProjectLock(p.DataDir)
	if err != nil {
		return err
	}
	defer lock.release()

	data, err := os.ReadFile(p.BacklogPath) //nolint:gosec // path derives from config
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", p.BacklogPath, errNoBacklogFile)
	}

	if err != nil {
		return fmt.Errorf("read %s: %w", p.BacklogPath, err)
	}

	src := string(data)
	doc := backlog.Parse(src)
	detected := typeconfig.DetectTypes(src)

	st, err := store.Open(ctx, p.DataDir)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	stored, err := st.LoadTypeConfig(ctx)
	if err != nil {
		return err
	}

	merged := typeconfig.Merge(stored, detected)

	err = st.EnsureProject(ctx, projectName(p, nil))
	if err != nil {
		return err
	}

	err = st.SaveTypeConfig(ctx, merged)
	if err != nil {
		return err
	}

	stats, err := st.ImportBacklog(ctx, doc)
	if err != nil {
		return err
	}

	// A detected code missing from the merged config was tombstoned by the
	// user; its section is still in the file and deserves a heads-up.
	for _, code := range detected {
		if !hasType(merged, code) {
			o.Warn(fmt.Sprintf("type %s was deleted; its section is ignored (restore with 'bkl types add %s')", code, code))
		}
	}

	o.Printf("synced %d sections, %d items (%d from tables, %d raw blocks), %d types (%d detected)\n",
		stats.Sections, stats.Items+stats.TableItems, stats.TableItems, stats.RawSections,
		len(merged.Types), len(detected))

	return nil
}

func hasType(cfg typeconfig.TypeConfig, id string) bool {
	for _, t := range cfg.Types {
		if t.ID == id {
			return true
		}
	}

	return false
}
