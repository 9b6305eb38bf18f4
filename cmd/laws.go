package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/glossopoeia/settype/compiler/laws"
	"github.com/pkg/errors"
	"github.com/rjNemo/underscore"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newLawsCmd(a *app) *cobra.Command {
	var names []string
	var list bool

	cmd := &cobra.Command{
		Use:   "laws",
		Short: "Check the algebraic laws on random types",
		Long: `Generate random types and check that union, intersection, difference and
the subset relation obey their algebraic laws. Failures print the law and the
generated types it failed for.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				for _, law := range laws.All {
					fmt.Fprintln(a.out, law.Name)
				}
				return nil
			}
			flags := cmd.Flags()
			if flags.Changed("seed") {
				a.cfg.Laws.Seed, _ = flags.GetInt64("seed")
			}
			if flags.Changed("iterations") {
				a.cfg.Laws.Iterations, _ = flags.GetInt("iterations")
			}
			if err := a.cfg.validate(); err != nil {
				return err
			}
			selected, err := selectLaws(names)
			if err != nil {
				return err
			}
			return a.checkLaws(selected)
		},
	}
	cmd.Flags().Int64("seed", 0, "random seed (default from config)")
	cmd.Flags().Int("iterations", 0, "number of random triples of types (default from config)")
	cmd.Flags().StringSliceVar(&names, "law", nil, "check only the named laws")
	cmd.Flags().BoolVar(&list, "list", false, "list the laws and exit")
	return cmd
}

func selectLaws(names []string) ([]laws.Law, error) {
	if len(names) == 0 {
		return laws.All, nil
	}
	res := []laws.Law{}
	for _, name := range names {
		law, err := underscore.Find(laws.All, func(l laws.Law) bool { return l.Name == name })
		if err != nil {
			return nil, errors.Errorf("unknown law %q", name)
		}
		res = append(res, law)
	}
	return res, nil
}

func (a *app) checkLaws(selected []laws.Law) error {
	cfg := a.cfg.Laws
	a.log.WithFields(logrus.Fields{
		"seed":       cfg.Seed,
		"iterations": cfg.Iterations,
		"laws":       len(selected),
	}).Info("checking laws")

	failures := laws.CheckLaws(laws.NewGenerator(cfg.Seed), cfg.Iterations, selected)
	for _, f := range failures {
		fmt.Fprintln(a.out, color.RedString("FAIL"), f.Error())
	}
	if len(failures) > 0 {
		return errors.Errorf("%d law checks failed with seed %d", len(failures), cfg.Seed)
	}
	fmt.Fprintln(a.out, color.GreenString("ok"), fmt.Sprintf("%d laws held for %d iterations with seed %d", len(selected), cfg.Iterations, cfg.Seed))
	return nil
}
