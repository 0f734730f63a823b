package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/osse101/IdleTracker_Go/internal/profile"
	"github.com/osse101/IdleTracker_Go/internal/stats"
)

func newTitlesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "titles",
		Short: "List the titles in the shop",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, s *session, out io.Writer, _ []string) error {
			listings, err := s.economy.ListTitles(ctx)
			if err != nil {
				return err
			}
			for _, l := range listings {
				marker := " "
				switch {
				case l.Equipped:
					marker = "*"
				case l.Owned:
					marker = "+"
				}
				fmt.Fprintf(out, "%s %-16s %-24s %6d coins  requirement met: %s\n",
					marker, l.ID, l.Name, l.Cost, yesNo(l.RequirementMet))
			}
			return nil
		}),
	}
}

func newBuyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <title>",
		Short: "Buy a title",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, s *session, out io.Writer, args []string) error {
			title, err := s.economy.BuyTitle(ctx, args[0])
			if err != nil {
				return err
			}
			balance, err := s.economy.Balance(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Purchased the title: %s (%d coins left)\n", title.Name, balance)
			return nil
		}),
	}
}

func newEquipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "equip <title>",
		Short: "Equip an owned title",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, s *session, out io.Writer, args []string) error {
			title, err := s.economy.EquipTitle(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Equipped %s\n", title.Name)
			return nil
		}),
	}
}

func newSkillsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skills",
		Short: "List skills with their level and progress",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, s *session, out io.Writer, _ []string) error {
			views, err := s.stats.Skills(ctx)
			if err != nil {
				return err
			}
			for _, v := range views {
				state := "locked"
				switch {
				case v.Training:
					state = "training"
				case v.Unlocked:
					state = "unlocked"
				}
				fmt.Fprintf(out, "%-14s lvl %2d  %5.1f%%  %-10s %s\n",
					v.ID, v.Progress.Level, v.Progress.Percent, state, v.Display)
			}
			return nil
		}),
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [skill]",
		Short: "Show stat counters for one skill or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(func(ctx context.Context, s *session, out io.Writer, args []string) error {
			selection := stats.SkillAll
			if len(args) == 1 {
				selection = args[0]
			}
			view, err := s.stats.Stats(ctx, selection)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, view.Header)
			for _, e := range view.Entries {
				fmt.Fprintf(out, "  %-28s %d\n", e.Name, e.Value)
			}
			return nil
		}),
	}
}

func newUnlockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlock <skill>",
		Short: "Unlock a skill",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, s *session, out io.Writer, args []string) error {
			unlocked, err := s.profile.UnlockSkill(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Unlocked: %s\n", strings.Join(unlocked, ", "))
			return nil
		}),
	}
}

func newLockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lock <skill>",
		Short: "Lock a skill",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, s *session, out io.Writer, args []string) error {
			unlocked, err := s.profile.LockSkill(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Unlocked: %s\n", strings.Join(unlocked, ", "))
			return nil
		}),
	}
}

func newSettingsCmd() *cobra.Command {
	var (
		name, background, position                 string
		duration                                   int
		hardMode, darkMode, showHours, sortByLevel bool
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show settings, or change them with flags",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = run(func(ctx context.Context, s *session, out io.Writer, _ []string) error {
		var patch profile.SettingsPatch
		flags := cmd.Flags()
		if flags.Changed("name") {
			patch.PlayerName = &name
		}
		if flags.Changed("background") {
			patch.BackgroundImage = &background
		}
		if flags.Changed("notification-position") {
			patch.NotificationPosition = &position
		}
		if flags.Changed("notification-duration") {
			patch.NotificationDuration = &duration
		}
		if flags.Changed("hard-mode") {
			patch.HardMode = &hardMode
		}
		if flags.Changed("dark-mode") {
			patch.UseDarkMode = &darkMode
		}
		if flags.Changed("show-hours") {
			patch.ShowHoursInsteadOfXP = &showHours
		}
		if flags.Changed("sort-by-level") {
			patch.SkillSortByLevel = &sortByLevel
		}

		current := s.profile.Settings(ctx)
		if !patch.Empty() {
			updated, err := s.profile.UpdateSettings(ctx, patch)
			if err != nil {
				return err
			}
			current = *updated
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(current)
	})

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "player name")
	f.StringVar(&background, "background", "", "background image key")
	f.StringVar(&position, "notification-position", "", "bottom-left, bottom-center or bottom-right")
	f.IntVar(&duration, "notification-duration", 0, "notification duration in ms (2000, 3000 or 5000)")
	f.BoolVar(&hardMode, "hard-mode", false, "use the hard xp rate")
	f.BoolVar(&darkMode, "dark-mode", false, "use the dark theme")
	f.BoolVar(&showHours, "show-hours", false, "show hours instead of xp")
	f.BoolVar(&sortByLevel, "sort-by-level", false, "sort skills by level")
	return cmd
}

func newGroupCmd() *cobra.Command {
	group := &cobra.Command{
		Use:   "group",
		Short: "Manage skill groups",
	}

	group.AddCommand(
		&cobra.Command{
			Use:   "create <name>",
			Short: "Create an empty group",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, s *session, out io.Writer, args []string) error {
				if err := s.profile.CreateGroup(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out, "Created group %s\n", args[0])
				return nil
			}),
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Delete a group, ungrouping its skills",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, s *session, out io.Writer, args []string) error {
				if err := s.profile.DeleteGroup(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted group %s\n", args[0])
				return nil
			}),
		},
		&cobra.Command{
			Use:   "assign <skill> [group]",
			Short: "Move a skill into a group, or out of all groups",
			Args:  cobra.RangeArgs(1, 2),
			RunE: run(func(ctx context.Context, s *session, out io.Writer, args []string) error {
				target := ""
				if len(args) == 2 {
					target = args[1]
				}
				if err := s.profile.AssignSkill(ctx, args[0], target); err != nil {
					return err
				}
				fmt.Fprintln(out, "Skill assigned")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "toggle <name>",
			Short: "Collapse or expand a group",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, s *session, out io.Writer, args []string) error {
				collapsed, err := s.profile.ToggleGroupCollapsed(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s collapsed: %s\n", args[0], yesNo(collapsed))
				return nil
			}),
		},
	)
	return group
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the save to a file, or to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(func(ctx context.Context, s *session, out io.Writer, args []string) error {
			data, err := s.profile.Export(ctx)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				_, err = out.Write(append(data, '\n'))
				return err
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved to %s\n", args[0])
			return nil
		}),
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the save with an exported file",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, s *session, out io.Writer, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if _, err := s.profile.Import(ctx, data); err != nil {
				return err
			}
			fmt.Fprintln(out, "Game Loaded Successfully!")
			return nil
		}),
	}
}

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all progress",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, s *session, out io.Writer, _ []string) error {
			if !yes {
				return errors.New("reset erases all progress; pass --yes to confirm")
			}
			if err := s.profile.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, "Progress reset")
			return nil
		}),
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
