package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(p *Project) *Command {
	fs := flag.NewFlagSet("print-config", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "print-config",
		Short: "Print the effective configuration and its sources",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			o.Println("backlog_file:", p.Config.BacklogFile)
			o.Println("data_dir:", p.Config.DataDir)
			o.Println("backlog_path:", p.BacklogPath)
			o.Println("data_path:", p.DataDir)

			if p.Sources.Global != "" {
				o.Println("global_config:", p.Sources.Global)
			}

			if p.Sources.Project != "" {
				o.Println("project_config:", p.Sources.Project)
			}

			return nil
		},
	}
}
