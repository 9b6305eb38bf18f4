package cmd

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/glossopoeia/settype/compiler/ranges"
	"github.com/glossopoeia/settype/compiler/typedoc"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func newEvalCmd(a *app) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "eval <document.yaml>...",
		Short: "Evaluate the operations of type documents",
		Long: `Declare the structs and named types of each document, then evaluate its
operations in order and print their results. Each document has its own scope.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if err := a.evalFile(path, dump); err != nil {
					return err
				}
			}
			a.logStats()
			return nil
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "dump the structure of each result")
	return cmd
}

func (a *app) evalFile(path string, dump bool) error {
	doc, err := typedoc.Load(path)
	if err != nil {
		return err
	}
	a.log.WithField("path", path).Debugf("evaluating %d ops", len(doc.Ops))

	// descriptor ids restart with every document's registry
	a.alg.Purge()
	results, err := typedoc.NewEnv(a.alg).Run(doc)
	for _, res := range results {
		printResult(a.out, res)
		if dump {
			dumpConfig.Fdump(a.out, res.Value)
		}
	}
	return errors.WithMessage(err, path)
}

func printResult(w io.Writer, res typedoc.Result) {
	if res.Op == "" {
		fmt.Fprintln(w, color.CyanString("%v", res.Value))
		return
	}
	fmt.Fprintf(w, "%s = %s\n", res.Call(), colorValue(res.Value))
}

func colorValue(v any) string {
	switch vt := v.(type) {
	case bool:
		if vt {
			return color.GreenString("true")
		}
		return color.RedString("false")
	case ranges.Truth:
		switch vt {
		case ranges.DefinitelyTrue:
			return color.GreenString(vt.String())
		case ranges.DefinitelyFalse:
			return color.RedString(vt.String())
		default:
			return color.YellowString(vt.String())
		}
	default:
		return color.CyanString("%v", v)
	}
}
