package main

import (
	"fmt"

	"github.com/ehrlich-b/nameswipe/internal/pronoun"
	"github.com/spf13/cobra"
)

func samplesCmd(a *app) *cobra.Command {
	var context string
	var plural bool
	var render bool
	cmd := &cobra.Command{
		Use:   "samples",
		Short: "List sample contexts, or the samples in one context",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if context == "" {
				for _, name := range a.lib.ContextNames() {
					mark := " "
					if name == a.lib.Resolve(a.cfg.Samples.Context) {
						mark = "*"
					}
					fmt.Fprintf(out, "%s %-14s %d samples\n", mark, name, len(a.lib.Pool(name, false)))
				}
				return nil
			}

			resolved := a.lib.Resolve(context)
			if !a.lib.Has(context) {
				fmt.Fprintf(cmd.ErrOrStderr(), "unknown context %q, showing %s\n", context, resolved)
			}
			if !render {
				for _, s := range a.lib.Pool(resolved, plural) {
					fmt.Fprintln(out, s)
				}
				return nil
			}
			p, err := a.profile()
			if err != nil {
				return err
			}
			for _, s := range a.lib.Pool(resolved, p.Plural()) {
				fmt.Fprintln(out, pronoun.Render(s, *p))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&context, "context", "c", "", "context to list")
	cmd.Flags().BoolVar(&plural, "plural", false, "show plural verb forms")
	cmd.Flags().BoolVar(&render, "render", false, "fill in the current profile's name and pronouns")
	return cmd
}
