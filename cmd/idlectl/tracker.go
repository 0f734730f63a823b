package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Settle pending progress and show the account summary",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, s *session, out io.Writer, _ []string) error {
			report, err := s.engine.Accrue(ctx)
			if err != nil {
				return err
			}
			printReport(out, report)

			sum, err := s.stats.Summary(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s", sum.PlayerName)
			if sum.EquippedTitle != "" {
				fmt.Fprintf(out, " the %s", sum.EquippedTitle)
			}
			fmt.Fprintf(out, " (%s mode)\n", sum.Mode)
			fmt.Fprintf(out, "Coins: %d\n", sum.Coins)
			fmt.Fprintf(out, "Total level: %d  Total xp: %.0f  Hours: %.2f\n", sum.TotalLevel, sum.TotalXP, sum.HoursTrained)
			fmt.Fprintf(out, "Skills unlocked: %d  Maxed: %d  Tasks done: %d\n", sum.UnlockedSkills, sum.MaxedSkills, sum.CompletedTasks)

			st, err := s.engine.Snapshot(ctx)
			if err != nil {
				return err
			}
			printActive(out, st.ActiveAction, s.engine.Now())
			return nil
		}),
	}
}

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <skill> <action>",
		Short: "Start an action, settling the previous one",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(ctx context.Context, s *session, out io.Writer, args []string) error {
			report, err := s.engine.StartAction(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			printReport(out, report)
			fmt.Fprintf(out, "Started %s / %s\n", args[0], args[1])
			return nil
		}),
	}
}

func newToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <skill> <action>",
		Short: "Stop the action if it is running, otherwise start it",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(ctx context.Context, s *session, out io.Writer, args []string) error {
			running, report, err := s.engine.ToggleAction(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			printReport(out, report)
			if running {
				fmt.Fprintf(out, "Started %s / %s\n", args[0], args[1])
			} else {
				fmt.Fprintln(out, "Stopped")
			}
			return nil
		}),
	}
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Settle and stop the active action",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, s *session, out io.Writer, _ []string) error {
			report, err := s.engine.StopAction(ctx)
			if err != nil {
				return err
			}
			printReport(out, report)
			fmt.Fprintln(out, "Stopped")
			return nil
		}),
	}
}

func newManualCmd() *cobra.Command {
	var minutes, hours float64

	cmd := &cobra.Command{
		Use:   "manual <skill>",
		Short: "Credit time spent on a skill outside the tracker",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, s *session, out io.Writer, args []string) error {
			if (minutes > 0) == (hours > 0) {
				return errors.New("give exactly one of --minutes or --hours")
			}
			if minutes > 0 {
				hours = minutes / 60
			}
			report, err := s.engine.ManualEntryHours(ctx, args[0], hours)
			if err != nil {
				return err
			}
			printReport(out, report)
			return nil
		}),
	}
	cmd.Flags().Float64Var(&minutes, "minutes", 0, "minutes to credit")
	cmd.Flags().Float64Var(&hours, "hours", 0, "hours to credit")
	cmd.MarkFlagsMutuallyExclusive("minutes", "hours")
	return cmd
}

func newTaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "task <skill> <task>",
		Short: "Claim a one-time task",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(ctx context.Context, s *session, out io.Writer, args []string) error {
			report, err := s.engine.CompleteTask(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			printReport(out, report)
			fmt.Fprintf(out, "Completed task %s\n", args[1])
			return nil
		}),
	}
}
