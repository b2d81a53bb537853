package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/ehrlich-b/nameswipe/internal/logger"
	"github.com/ehrlich-b/nameswipe/internal/profile"
	"github.com/ehrlich-b/nameswipe/internal/pronoun"
	"github.com/ehrlich-b/nameswipe/internal/selector"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// nextSample picks the next template for p and remembers it as pending.
// Templates in skip are left out unless nothing else remains.
func (a *app) nextSample(p *profile.Profile, context string, skip map[string]bool) (selector.Result, error) {
	if context == "" {
		context = a.cfg.Samples.Context
	}
	sel, err := a.selector()
	if err != nil {
		return selector.Result{}, err
	}
	pool := a.lib.Pool(context, p.Plural())
	if len(skip) > 0 {
		rest := slices.DeleteFunc(slices.Clone(pool), func(s string) bool { return skip[s] })
		if len(rest) > 0 {
			pool = rest
		}
	}
	res, err := sel.Select(*p, pool)
	if err != nil {
		return selector.Result{}, fmt.Errorf("select sample: %w", err)
	}
	if err := a.store.SetPending(p.ID, res.Sample); err != nil {
		return selector.Result{}, err
	}
	return res, nil
}

// judge records the verdict and clears the pending sample.
func (a *app) judge(p *profile.Profile, sample string, accepted bool) (*profile.Profile, error) {
	updated, err := a.store.RecordJudgement(p.ID, sample, accepted)
	if err != nil {
		return nil, err
	}
	if err := a.store.ClearPending(p.ID); err != nil {
		return nil, err
	}
	logger.Info("judged sample", "profile", p.Name, "accepted", accepted, "ratio", updated.SwipeRatio())
	return updated, nil
}

func nextCmd(a *app) *cobra.Command {
	var context string
	var explain bool
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next sample for the current profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.profile()
			if err != nil {
				return err
			}
			res, err := a.nextSample(p, context, nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, pronoun.Render(res.Sample, *p))
			if explain {
				fmt.Fprintf(out, "(%s, scored %d, neutrality %.4f)\n", res.Outcome, res.Scored, res.Neutrality)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&context, "context", "c", "", "sample context (casual, academic, professional)")
	cmd.Flags().BoolVar(&explain, "explain", false, "print how the sample was chosen")
	return cmd
}

func judgeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "judge",
		Short: "Accept or reject the last sample shown",
	}
	for _, verdict := range []struct {
		use      string
		aliases  []string
		accepted bool
	}{
		{"accept", []string{"yes", "y"}, true},
		{"reject", []string{"no", "n"}, false},
	} {
		cmd.AddCommand(&cobra.Command{
			Use:     verdict.use + " [sample]",
			Aliases: verdict.aliases,
			Short:   verdict.use + " the pending sample, or the given template",
			Args:    cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := a.profile()
				if err != nil {
					return err
				}
				var sample string
				if len(args) == 1 {
					sample = args[0]
				} else {
					sample, err = a.store.Pending(p.ID)
					if err != nil {
						return err
					}
				}
				if sample == "" {
					return fmt.Errorf("nothing to judge: run 'nameswipe next' first")
				}
				updated, err := a.judge(p, sample, verdict.accepted)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%sed: %s (ratio %d%%)\n",
					strings.TrimSuffix(verdict.use, "e"), pronoun.Render(sample, *p), updated.SwipeRatio())
				return nil
			},
		})
	}
	return cmd
}

func trialCmd(a *app) *cobra.Command {
	var context string
	var rounds int
	cmd := &cobra.Command{
		Use:   "trial",
		Short: "Swipe through samples interactively",
		Long:  "Shows samples one at a time. Press y to accept, n to reject, s to skip and q to quit.",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.profile()
			if err != nil {
				return err
			}
			return a.runTrial(cmd.OutOrStdout(), p, context, rounds)
		},
	}
	cmd.Flags().StringVarP(&context, "context", "c", "", "sample context (casual, academic, professional)")
	cmd.Flags().IntVarP(&rounds, "rounds", "n", 0, "stop after this many samples (0: until q)")
	return cmd
}

func (a *app) runTrial(out io.Writer, p *profile.Profile, context string, rounds int) error {
	eol := "\n"
	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		oldState, err := term.MakeRaw(fd)
		if err == nil {
			defer term.Restore(fd, oldState)
			eol = "\r\n"
		}
	}
	keys := bufio.NewReader(a.in)
	skipped := make(map[string]bool)

	fmt.Fprintf(out, "trying %s (%s): y accept, n reject, s skip, q quit%s", p.Name, p.PronounChain(), eol)
	for shown := 0; rounds <= 0 || shown < rounds; shown++ {
		res, err := a.nextSample(p, context, skipped)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s%s> ", pronoun.Render(res.Sample, *p), eol)

		key, err := readKey(keys)
		if err == io.EOF {
			fmt.Fprint(out, eol)
			break
		}
		if err != nil {
			return err
		}
		switch key {
		case 'y', 'n':
			updated, err := a.judge(p, res.Sample, key == 'y')
			if err != nil {
				return err
			}
			p = updated
			fmt.Fprintf(out, "%c%s", key, eol)
		case 's':
			skipped[res.Sample] = true
			fmt.Fprintf(out, "skipped%s", eol)
		case 'q':
			fmt.Fprint(out, eol)
			return a.summary(out, p, eol)
		}
	}
	return a.summary(out, p, eol)
}

func (a *app) summary(out io.Writer, p *profile.Profile, eol string) error {
	fmt.Fprintf(out, "%s: +%d/-%d, ratio %d%%%s", p.Name, p.PositiveSwipes, p.NegativeSwipes, p.SwipeRatio(), eol)
	return nil
}

// readKey returns the next trial command, skipping keys that are not one.
// Ctrl-C and Ctrl-D quit.
func readKey(r *bufio.Reader) (rune, error) {
	for {
		c, _, err := r.ReadRune()
		if err != nil {
			return 0, err
		}
		switch c {
		case 'y', 'Y':
			return 'y', nil
		case 'n', 'N':
			return 'n', nil
		case 's', 'S', ' ':
			return 's', nil
		case 'q', 'Q', 3, 4:
			return 'q', nil
		}
	}
}
