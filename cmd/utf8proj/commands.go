package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/alanbld/utf8proj/internal/diagnostic"
	"github.com/alanbld/utf8proj/internal/domain"
	"github.com/alanbld/utf8proj/internal/engine"
)

// newRootCmd creates the top-level "utf8proj" command and registers every
// subcommand against eng, grounded on the teacher's NewRootCmd/App wiring
// shape (internal/cli/root.go) with the TUI App struct replaced by a bare
// *engine.Engine, since there is no shell or dashboard to hold state for.
func newRootCmd(eng *engine.Engine) *cobra.Command {
	var projectPath string

	root := &cobra.Command{
		Use:   "utf8proj",
		Short: "Critical-path project scheduling engine",
	}
	root.PersistentFlags().StringVar(&projectPath, "project", "", "path to a project JSON file (required)")
	_ = root.MarkPersistentFlagRequired("project")

	root.AddCommand(
		newScheduleCmd(eng, &projectPath),
		newLevelCmd(eng, &projectPath),
		newBaselineCmd(eng, &projectPath),
	)
	return root
}

func newScheduleCmd(eng *engine.Engine, projectPath *string) *cobra.Command {
	var levelingFlag string
	var maxDelayFactor float64
	var asOf string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the forward/backward CPM pass and print the resulting schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := loadProject(*projectPath)
			if err != nil {
				return err
			}

			opts := engine.ScheduleOptions{MaxDelayFactor: maxDelayFactor}
			if levelingFlag != "" {
				mode, err := parseLevelingMode(levelingFlag)
				if err != nil {
					return err
				}
				opts.Leveling = mode
			}
			if asOf != "" {
				t, err := time.Parse("2006-01-02", asOf)
				if err != nil {
					return fmt.Errorf("parsing --as-of %q: %w", asOf, err)
				}
				opts.AsOf = &t
			}

			bundle, err := eng.Schedule(context.Background(), project, opts)
			if err != nil {
				return err
			}
			printScheduleBundle(bundle)
			return nil
		},
	}

	cmd.Flags().StringVar(&levelingFlag, "leveling", "", "resource leveling mode: warn, auto, or error (default warn)")
	cmd.Flags().Float64Var(&maxDelayFactor, "max-delay-factor", 0, "cap on leveling delay as a multiple of a task's effective duration")
	cmd.Flags().StringVar(&asOf, "as-of", "", "status date override (YYYY-MM-DD)")

	return cmd
}

func newLevelCmd(eng *engine.Engine, projectPath *string) *cobra.Command {
	var maxDelayFactor float64

	cmd := &cobra.Command{
		Use:   "level",
		Short: "Schedule, then resolve resource over-allocation by delaying lower-priority tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := loadProject(*projectPath)
			if err != nil {
				return err
			}

			ctx := context.Background()
			base, err := eng.Schedule(ctx, project, engine.ScheduleOptions{})
			if err != nil {
				return err
			}

			bundle, err := eng.Level(ctx, project, base, engine.ScheduleOptions{MaxDelayFactor: maxDelayFactor})
			if err != nil {
				return err
			}
			printScheduleBundle(bundle)
			return nil
		},
	}

	cmd.Flags().Float64Var(&maxDelayFactor, "max-delay-factor", 0, "cap on leveling delay as a multiple of a task's effective duration")
	return cmd
}

func newBaselineCmd(eng *engine.Engine, projectPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage immutable baseline snapshots",
	}
	cmd.AddCommand(
		newBaselineSaveCmd(eng, projectPath),
		newBaselineListCmd(eng, projectPath),
		newBaselineShowCmd(eng, projectPath),
		newBaselineRemoveCmd(eng, projectPath),
		newBaselineCompareCmd(eng, projectPath),
	)
	return cmd
}

func newBaselineSaveCmd(eng *engine.Engine, projectPath *string) *cobra.Command {
	var description, parent string

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Schedule the project and save a named baseline of its leaf early-dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := loadProject(*projectPath)
			if err != nil {
				return err
			}

			ctx := context.Background()
			bundle, err := eng.Schedule(ctx, project, engine.ScheduleOptions{})
			if err != nil {
				return err
			}

			var descPtr, parentPtr *string
			if cmd.Flags().Changed("description") {
				descPtr = &description
			}
			if cmd.Flags().Changed("parent") {
				parentPtr = &parent
			}

			if err := eng.SaveBaseline(ctx, project, bundle, args[0], descPtr, parentPtr); err != nil {
				return err
			}
			fmt.Printf("saved baseline %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "free-text description")
	cmd.Flags().StringVar(&parent, "parent", "", "name of the baseline this one supersedes")
	return cmd
}

func newBaselineListCmd(eng *engine.Engine, projectPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every baseline saved for this project",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := loadProject(*projectPath)
			if err != nil {
				return err
			}
			summaries, err := eng.ListBaselines(context.Background(), project)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSAVED\tDESCRIPTION\tPARENT")
			for _, s := range summaries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Name, s.Saved.Format(time.RFC3339), derefStr(s.Description), derefStr(s.Parent))
			}
			return w.Flush()
		},
	}
}

func newBaselineShowCmd(eng *engine.Engine, projectPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one baseline's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := loadProject(*projectPath)
			if err != nil {
				return err
			}
			summaries, err := eng.ListBaselines(context.Background(), project)
			if err != nil {
				return err
			}
			for _, s := range summaries {
				if s.Name == args[0] {
					fmt.Printf("name:        %s\n", s.Name)
					fmt.Printf("saved:       %s\n", s.Saved.Format(time.RFC3339))
					fmt.Printf("description: %s\n", derefStr(s.Description))
					fmt.Printf("parent:      %s\n", derefStr(s.Parent))
					return nil
				}
			}
			return diagnostic.NewPolicyError(diagnostic.CodeBaselineNotFound, fmt.Sprintf("no baseline named %q", args[0]))
		},
	}
}

func newBaselineRemoveCmd(eng *engine.Engine, projectPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a baseline by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := loadProject(*projectPath)
			if err != nil {
				return err
			}
			if err := eng.RemoveBaseline(context.Background(), project, args[0]); err != nil {
				return err
			}
			fmt.Printf("removed baseline %q\n", args[0])
			return nil
		},
	}
}

func newBaselineCompareCmd(eng *engine.Engine, projectPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <name>",
		Short: "Schedule the project and compare it against a saved baseline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := loadProject(*projectPath)
			if err != nil {
				return err
			}
			ctx := context.Background()
			bundle, err := eng.Schedule(ctx, project, engine.ScheduleOptions{})
			if err != nil {
				return err
			}
			cmpBundle, err := eng.Compare(ctx, project, bundle, args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
			fmt.Fprintln(w, "TASK\tSTATUS\tSTART Δ\tFINISH Δ")
			for _, v := range cmpBundle.Variances {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.FQID, v.Status, derefDays(v.StartVarianceDays), derefDays(v.FinishVarianceDays))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("\nproject finish variance: %d calendar day(s)\n", cmpBundle.Summary.ProjectVarianceDays)
			return nil
		},
	}
}

func printScheduleBundle(bundle *engine.ScheduleBundle) {
	fqids := make([]string, 0, len(bundle.Tasks))
	for fqid := range bundle.Tasks {
		fqids = append(fqids, fqid)
	}
	sort.Strings(fqids)

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "TASK\tEARLY START\tEARLY FINISH\tTOTAL FLOAT\tCRITICAL")
	for _, fqid := range fqids {
		s := bundle.Tasks[fqid]
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%t\n",
			fqid, s.EarlyStart.Format("2006-01-02"), s.EarlyFinish.Format("2006-01-02"), s.TotalFloat, s.IsCritical)
	}
	w.Flush()

	fmt.Printf("\nproject: %s -> %s\n", bundle.ProjectStart.Format("2006-01-02"), bundle.ProjectFinish.Format("2006-01-02"))
	fmt.Printf("critical path: %v\n", bundle.CriticalPath)

	if len(bundle.Diagnostics) > 0 {
		fmt.Println("\ndiagnostics:")
		for _, d := range bundle.Diagnostics {
			fmt.Printf("  [%s] %s %s: %s\n", d.Severity, d.Code, d.TaskID, d.Message)
		}
	}
}

func parseLevelingMode(raw string) (domain.LevelingMode, error) {
	switch domain.LevelingMode(raw) {
	case domain.LevelingWarn, domain.LevelingAuto, domain.LevelingError:
		return domain.LevelingMode(raw), nil
	default:
		return "", fmt.Errorf("invalid --leveling %q: expected warn, auto, or error", raw)
	}
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefDays(n *int) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprintf("%+d", *n)
}
