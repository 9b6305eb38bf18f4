package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/glossopoeia/settype/compiler/typedoc"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	replPrompt = "settype> "
	replHelp   = `Enter a type expression or an operation as one line of YAML:
  {union: [1, 2]}
  {subset: [{int: [0, 3]}, number]}

Commands:
  :help                Show this help
  :quit / :exit        Exit the REPL
  :let <name> <expr>   Bind a name to the type of an expression
  :load <file>         Declare the structs and types of a document and run its ops
  :names               List the bound names
  :stats               Show the evaluation cache statistics
`
)

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Evaluate types interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRepl()
		},
	}
}

// An interactive session: one scope that lines are evaluated in.
type session struct {
	app *app
	env *typedoc.Env
	out io.Writer
}

func (a *app) newSession() *session {
	return &session{app: a, env: typedoc.NewEnv(a.alg), out: a.out}
}

func (a *app) runRepl() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(a.cfg.History); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	fmt.Fprintln(a.out, "settype REPL. Type :help for commands, Ctrl+D to exit.")
	s := a.newSession()
	for {
		line, err := ln.Prompt(replPrompt)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			// io.EOF on Ctrl+D
			fmt.Fprintln(a.out)
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		if quit := s.handle(line); quit {
			break
		}
	}

	if a.cfg.History == "" {
		return nil
	}
	f, err := os.Create(a.cfg.History)
	if err != nil {
		a.log.WithError(err).Warn("could not save history")
		return nil
	}
	defer f.Close()
	_, err = ln.WriteHistory(f)
	return errors.Wrap(err, "saving history")
}

// Evaluate one line, reporting whether the session should end.
func (s *session) handle(line string) bool {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ":") {
		res, err := s.env.EvalString(line)
		if err != nil {
			s.fail(err)
			return false
		}
		printResult(s.out, res)
		return false
	}

	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch cmd {
	case ":quit", ":exit":
		return true
	case ":help":
		fmt.Fprint(s.out, replHelp)
	case ":let":
		name, src, _ := strings.Cut(rest, " ")
		if name == "" || strings.TrimSpace(src) == "" {
			s.fail(errors.New("usage: :let <name> <expr>"))
			return false
		}
		t, err := s.env.ExprString(src)
		if err == nil {
			err = s.env.Bind(name, t)
		}
		if err != nil {
			s.fail(err)
			return false
		}
		fmt.Fprintf(s.out, "%s = %s\n", name, color.CyanString("%v", t))
	case ":load":
		s.load(rest)
	case ":names":
		for _, name := range s.env.Names() {
			t, _ := s.env.Lookup(name)
			fmt.Fprintf(s.out, "%s = %v\n", name, t)
		}
	case ":stats":
		stats := s.app.alg.Stats()
		fmt.Fprintf(s.out, "hits: %d, misses: %d, cached: %d\n", stats.Hits, stats.Misses, stats.Size)
	default:
		s.fail(errors.Errorf("unknown command %s, try :help", cmd))
	}
	return false
}

func (s *session) load(path string) {
	doc, err := typedoc.Load(path)
	if err != nil {
		s.fail(err)
		return
	}
	results, err := s.env.Run(doc)
	for _, res := range results {
		printResult(s.out, res)
	}
	if err != nil {
		s.fail(errors.WithMessage(err, path))
	}
}

func (s *session) fail(err error) {
	fmt.Fprintln(s.out, color.RedString("error:"), err)
}
