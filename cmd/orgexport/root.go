package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/kingrea/orgexport/internal/config"
	"github.com/kingrea/orgexport/internal/export"
	"github.com/kingrea/orgexport/internal/logbook"
	"github.com/kingrea/orgexport/internal/prompt"
	"github.com/kingrea/orgexport/internal/report"
)

const promptQuestion = "Whose reports should be exported? (one or more emails)"

type globalOptions struct {
	configPath string
	input      string
	outputDir  string
	delimiter  string
	verbose    bool
}

type exportOptions struct {
	singleLayer bool
	sortColumns bool
}

func newRootCmd() *cobra.Command {
	var global globalOptions
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "orgexport [EMAIL...]",
		Short: "Export everyone who reports to the given managers",
		Long: `orgexport reads an employee roster, links every employee to the manager
named in their "reports to" column and writes a file containing the requested
managers plus everyone below them.

One email writes <Full_Name>.csv. Several emails write a single merged file
named after all of them. Unknown emails are reported and skipped.

Example:
  orgexport charlie.wilson@fakecompany.com
  orgexport --single-layer jason.patterson@fakecompany.com
  orgexport --input roster.csv a@example.com b@example.com`,
		// Positional arguments are target emails, not subcommand names.
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, global, opts, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&global.configPath, "config", "c", config.FileName, "path to the orgexport config file")
	pf.StringVarP(&global.input, "input", "i", "", "roster file, relative to the config directory (overrides config)")
	pf.StringVarP(&global.outputDir, "out-dir", "o", "", "directory for exported files, relative to the config directory (overrides config)")
	pf.StringVar(&global.delimiter, "delimiter", "", "field separator (overrides config)")
	pf.BoolVarP(&global.verbose, "verbose", "v", false, "print the roster summary and load warnings")

	cmd.Flags().BoolVarP(&opts.singleLayer, "single-layer", "s", false, "export direct reports only")
	cmd.Flags().BoolVar(&opts.sortColumns, "sort-columns", false, "write columns alphabetically instead of in roster order")

	cmd.AddCommand(
		newInitCmd(),
		newShowCmd(&global),
		newTreeCmd(&global),
		newStatsCmd(&global),
		newLogCmd(&global),
	)
	return cmd
}

func loadConfig(global globalOptions) (*config.Config, error) {
	cfg, err := config.Load(global.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Override(global.input, global.outputDir, global.delimiter); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSession loads config, journal and roster. A journal that cannot be
// opened is reported but does not stop the run.
func openSession(cmd *cobra.Command, global globalOptions) (*export.Session, error) {
	cfg, err := loadConfig(global)
	if err != nil {
		return nil, err
	}
	book, err := logbook.New(cfg.LogPath())
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), report.Warning(err.Error()))
		book = nil
	}
	session, err := export.Open(cfg, book)
	if err != nil {
		return nil, err
	}
	if global.verbose {
		fmt.Fprintln(cmd.OutOrStdout(), report.Summary(session.Directory, session.Cycles))
		for _, w := range session.Warnings {
			fmt.Fprintln(cmd.ErrOrStderr(), report.Warning(w.String()))
		}
	}
	for _, cycle := range session.Cycles {
		fmt.Fprintln(cmd.ErrOrStderr(), report.Warning("reporting loop: "+export.CycleString(cycle)))
	}
	return session, nil
}

func runExport(cmd *cobra.Command, global globalOptions, opts exportOptions, args []string) error {
	session, err := openSession(cmd, global)
	if err != nil {
		return err
	}
	emails := args
	if len(emails) == 0 {
		line, err := askTargets(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		emails = export.ParseTargets(line)
	}

	result, err := session.Exporter().Export(emails, session.Options(opts.singleLayer, opts.sortColumns))
	for _, miss := range result.Misses {
		fmt.Fprintln(cmd.ErrOrStderr(), report.Missed(miss.Email))
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), report.Written(result.Path, len(result.Records)))
	return nil
}

// askTargets blocks for one line of input, using the interactive prompt when
// attached to a terminal.
func askTargets(in io.Reader, out io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return prompt.Ask(in, out, promptQuestion)
	}
	line, err := prompt.ReadLine(in, out, promptQuestion)
	if errors.Is(err, prompt.ErrCancelled) {
		return "", fmt.Errorf("no emails given: %w", err)
	}
	return line, err
}
