package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kingrea/orgexport/internal/config"
	"github.com/kingrea/orgexport/internal/directory"
	"github.com/kingrea/orgexport/internal/export"
	"github.com/kingrea/orgexport/internal/logbook"
	"github.com/kingrea/orgexport/internal/report"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [DIR]",
		Short: "Write a default orgexport.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			path, created, err := config.Init(dir)
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
			return nil
		},
	}
}

func newShowCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show EMAIL...",
		Short: "Print the roster card for each employee",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd, *global)
			if err != nil {
				return err
			}
			found := 0
			for _, email := range args {
				emp, ok := session.Directory.Find(email)
				if !ok {
					fmt.Fprintln(cmd.ErrOrStderr(), report.Missed(email))
					continue
				}
				found++
				fmt.Fprintln(cmd.OutOrStdout(), report.Card(session.Directory, emp))
			}
			if found == 0 {
				return export.ErrNoTargets
			}
			return nil
		},
	}
}

func newTreeCmd(global *globalOptions) *cobra.Command {
	var depth int
	cmd := &cobra.Command{
		Use:   "tree [EMAIL]",
		Short: "Print the reporting tree below an employee, or below every top-level employee",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd, *global)
			if err != nil {
				return err
			}
			var roots []*directory.Employee
			if len(args) == 1 {
				emp, ok := session.Directory.Find(args[0])
				if !ok {
					return fmt.Errorf("%s: %w", args[0], export.ErrNotFound)
				}
				roots = append(roots, emp)
			} else {
				roots = session.Directory.Roots()
			}
			for _, emp := range roots {
				fmt.Fprintln(cmd.OutOrStdout(), report.Tree(emp, depth))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "levels to print below the root (0 for all)")
	return cmd
}

func newStatsCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd, *global)
			if err != nil {
				return err
			}
			if !global.verbose {
				fmt.Fprintln(cmd.OutOrStdout(), report.Summary(session.Directory, session.Cycles))
			}
			return nil
		},
	}
}

func newLogCmd(global *globalOptions) *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the most recent journal entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*global)
			if err != nil {
				return err
			}
			if _, err := os.Stat(cfg.LogPath()); os.IsNotExist(err) {
				fmt.Fprintf(cmd.OutOrStdout(), "no journal at %s yet\n", filepath.Clean(cfg.LogPath()))
				return nil
			}
			book, err := logbook.New(cfg.LogPath())
			if err != nil {
				return err
			}
			tail, total := book.Tail(lines)
			for _, line := range tail {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			if total > len(tail) {
				fmt.Fprintf(cmd.OutOrStdout(), "(%d of %d entries)\n", len(tail), total)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "number of entries to show")
	return cmd
}
