package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Project bundles the resolved configuration a command operates on.
type Project struct {
	WorkDir string
	Config  Config
	Sources ConfigSources
	// BacklogPath is the absolute path of the markdown document.
	BacklogPath string
	// DataDir is the absolute path of the store/lock directory.
	DataDir string
}

// globalFlags are parsed before the command name.
type globalFlags struct {
	workDir    string
	configPath string
	file       string
	dataDir    string
	remaining  []string
}

var errFlagNeedsValue = errors.New("flag requires a value")

// Run is the main entry point. Returns the process exit code.
func Run(_ io.Reader, out, errOut io.Writer, args []string, env map[string]string, sig chan os.Signal) int {
	o := NewIO(out, errOut)

	if len(args) < 2 {
		printUsage(o)
		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		o.ErrPrintln("error:", err)
		return 1
	}

	workDir := flags.workDir
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			o.ErrPrintln("error: cannot get working directory:", err)
			return 1
		}
	}

	overrides := Config{BacklogFile: flags.file, DataDir: flags.dataDir}

	cfg, sources, err := LoadConfig(workDir, flags.configPath, overrides, env)
	if err != nil {
		o.ErrPrintln("error:", err)
		return 1
	}

	project := &Project{
		WorkDir:     workDir,
		Config:      cfg,
		Sources:     sources,
		BacklogPath: absPath(workDir, cfg.BacklogFile),
		DataDir:     absPath(workDir, cfg.DataDir),
	}

	if len(flags.remaining) == 0 {
		printUsage(o)
		return 0
	}

	name := flags.remaining[0]
	if name == "-h" || name == "--help" || name == "help" {
		printUsage(o)
		return 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sig != nil {
		go func() {
			<-sig
			cancel()
		}()
	}

	for _, cmd := range commands(project) {
		if cmd.Name() == name {
			return cmd.Run(ctx, o, flags.remaining[1:])
		}
	}

	o.ErrPrintln("error: unknown command:", name)
	printUsage(o)

	return 1
}

// commands builds the command set for one resolved project.
func commands(p *Project) []*Command {
	return []*Command{
		InitCmd(p),
		SyncCmd(p),
		DetectCmd(p),
		TypesCmd(p),
		LsCmd(p),
		ShowCmd(p),
		ExportCmd(p),
		PrintConfigCmd(p),
	}
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		arg := args[idx]

		var target *string

		switch arg {
		case "--cwd":
			target = &flags.workDir
		case "--config":
			target = &flags.configPath
		case "--file":
			target = &flags.file
		case "--data-dir":
			target = &flags.dataDir
		default:
			flags.remaining = args[idx:]
			return flags, nil
		}

		if idx+1 >= len(args) {
			return globalFlags{}, fmt.Errorf("%w: %s", errFlagNeedsValue, arg)
		}

		*target = args[idx+1]
		idx += 2
	}

	return flags, nil
}

func absPath(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(workDir, path)
}

func printUsage(o *IO) {
	o.Println("bkl - backlog markdown manager")
	o.Println()
	o.Println("Usage: bkl [global flags] <command> [flags]")
	o.Println()
	o.Println("Global flags:")
	o.Println("  --cwd <dir>        Working directory (default: current)")
	o.Println("  --config <path>    Explicit config file")
	o.Println("  --file <path>      Backlog markdown file (default: backlog.md)")
	o.Println("  --data-dir <dir>   Store directory (default: .bkl)")
	o.Println()
	o.Println("Commands:")

	for _, cmd := range commands(&Project{}) {
		o.Println(cmd.HelpLine())
	}

	o.Println()
	o.Println("Run 'bkl <command> --help' for command details.")
}
