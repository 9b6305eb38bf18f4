package cmd

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/glossopoeia/settype/compiler/memo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// State shared by the subcommands, set up from the config file and the flags
// before any of them runs.
type app struct {
	cfg Config
	log *logrus.Logger
	alg *memo.Algebra
	out io.Writer
}

// Build the settype command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	var cfgFile string

	root := &cobra.Command{
		Use:   "settype",
		Short: "Evaluate and check a structural set-type algebra",
		Long: `settype evaluates unions, intersections, differences and relations
between structural set types: numbers, strings and struct instances.

Types and operations are written as YAML documents, checked against the
algebraic laws of the set operations, or explored interactively.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("log-level") {
				cfg.LogLevel, _ = flags.GetString("log-level")
			}
			if flags.Changed("cache-size") {
				cfg.CacheSize, _ = flags.GetInt("cache-size")
			}
			if flags.Changed("no-color") {
				noColor, _ := flags.GetBool("no-color")
				cfg.Color = !noColor
			}
			if err := cfg.validate(); err != nil {
				return err
			}
			return a.setup(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./"+DefaultConfigFile+" if present)")
	flags.String("log-level", "", "log level: trace, debug, info, warn or error")
	flags.Int("cache-size", 0, "number of results the evaluation cache holds")
	flags.Bool("no-color", false, "disable coloured output")

	root.AddCommand(newEvalCmd(a), newLawsCmd(a), newReplCmd(a))
	return root
}

func (a *app) setup(cfg Config, out io.Writer, errOut io.Writer) error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := logrus.New()
	log.SetOutput(errOut)
	log.SetLevel(level)

	alg, err := memo.New(cfg.CacheSize, log)
	if err != nil {
		return err
	}
	if !cfg.Color {
		color.NoColor = true
	}

	a.cfg, a.log, a.alg, a.out = cfg, log, alg, out
	log.WithField("cache_size", cfg.CacheSize).Debug("settype configured")
	return nil
}

func (a *app) logStats() {
	stats := a.alg.Stats()
	a.log.WithFields(logrus.Fields{
		"hits":   stats.Hits,
		"misses": stats.Misses,
		"size":   stats.Size,
	}).Info("evaluation cache")
}

// Run the command line. This is called by main.main() and only needs to
// happen once.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
