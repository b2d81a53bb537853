package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/ehrlich-b/nameswipe/internal/profile"
	"github.com/spf13/cobra"
)

func profileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage name and pronoun profiles",
	}
	cmd.AddCommand(
		profileAddCmd(a),
		profileListCmd(a),
		profileShowCmd(a),
		profileUseCmd(a),
		profileFavoriteCmd(a),
		profileRmCmd(a),
	)
	return cmd
}

func profileAddCmd(a *app) *cobra.Command {
	var favorite bool
	cmd := &cobra.Command{
		Use:   "add <name> <subjective/objective/possessive>",
		Short: "Create a profile, e.g. add Alex they/them/their",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := profile.New(args[0], args[1])
			if err != nil {
				return err
			}
			p.Favorite = favorite
			if err := a.store.CreateProfile(&p); err != nil {
				return err
			}
			cur, err := a.store.Current()
			if err != nil {
				return err
			}
			if cur == nil {
				if err := a.store.SetCurrent(p.ID); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) %s\n", p.Name, p.PronounChain(), shortID(p.ID))
			return nil
		},
	}
	cmd.Flags().BoolVar(&favorite, "favorite", false, "mark as favorite")
	return cmd
}

func profileListCmd(a *app) *cobra.Command {
	var favorites bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := a.store.ListProfiles()
			if err != nil {
				return err
			}
			cur, err := a.store.Current()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(profiles) == 0 {
				fmt.Fprintln(out, "no profiles yet: nameswipe profile add <name> <pronouns>")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "\tID\tNAME\tPRONOUNS\tSWIPES\tRATIO\tCREATED")
			for _, p := range profiles {
				if favorites && !p.Favorite {
					continue
				}
				mark := ""
				if cur != nil && cur.ID == p.ID {
					mark = "*"
				}
				if p.Favorite {
					mark += "★"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t+%d/-%d\t%d%%\t%s\n",
					mark, shortID(p.ID), p.Name, p.PronounChain(),
					p.PositiveSwipes, p.NegativeSwipes, p.SwipeRatio(), humanize.Time(p.CreatedAt))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&favorites, "favorites", false, "only show favorites")
	return cmd
}

func profileShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [profile]",
		Short: "Show a profile and its history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p *profile.Profile
			var err error
			if len(args) == 1 {
				p, err = a.findProfile(args[0])
			} else {
				p, err = a.profile()
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)  id %s\n", p.Name, p.PronounChain(), p.ID)
			fmt.Fprintf(out, "favorite: %t  created %s\n", p.Favorite, humanize.Time(p.CreatedAt))
			fmt.Fprintf(out, "swipes: %s positive, %s negative, ratio %d%%\n",
				humanize.Comma(int64(p.PositiveSwipes)), humanize.Comma(int64(p.NegativeSwipes)), p.SwipeRatio())
			for _, s := range p.Accepted {
				fmt.Fprintf(out, "  + %s\n", s)
			}
			for _, s := range p.Rejected {
				fmt.Fprintf(out, "  - %s\n", s)
			}
			return nil
		},
	}
}

func profileUseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use <profile>",
		Short: "Make a profile the current one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.findProfile(args[0])
			if err != nil {
				return err
			}
			if err := a.store.SetCurrent(p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "now using %s (%s)\n", p.Name, p.PronounChain())
			return nil
		},
	}
}

func profileFavoriteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "favorite <profile>",
		Aliases: []string{"fav"},
		Short:   "Toggle a profile's favorite mark",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.findProfile(args[0])
			if err != nil {
				return err
			}
			toggled := p.ToggleFavorite()
			if err := a.store.SetFavorite(toggled.ID, toggled.Favorite); err != nil {
				return err
			}
			state := "no longer a favorite"
			if toggled.Favorite {
				state = "marked favorite"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", toggled.Name, state)
			return nil
		},
	}
}

func profileRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <profile>",
		Short: "Delete a profile and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.findProfile(args[0])
			if err != nil {
				return err
			}
			if err := a.store.DeleteProfile(p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s (%s)\n", p.Name, p.PronounChain())
			return nil
		},
	}
}
