package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bsearch/internal/placeholder"
	"github.com/pdiddy/bsearch/internal/prompt"
	"github.com/pdiddy/bsearch/internal/render"
	"github.com/pdiddy/bsearch/internal/search"
	"github.com/pdiddy/bsearch/internal/session"
	"github.com/pdiddy/bsearch/pkg/types"
)

const banner = "B-SEARCH NODE · powered by Wikipedia"

const shellHelp = `Type a query and press Enter to search.
  :sort relevance|date|wordcount   reorder the current results
  :history                         list recent queries
  :recall <n>  or  !<n>            search recent query n again
  :clear                           clear the recent-query history
  :topics                          list topic shortcuts
  :topic <n>                       search topic n
  :fact                            show a fun fact
  :help                            show this help
  :quit                            leave the shell`

// factTimeout bounds the decorative fact request so it cannot delay the prompt.
const factTimeout = 5 * time.Second

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive search session",
	Long: `Shell keeps one search session open: results stay in memory and can be
re-sorted, and the last queries are kept in a short history that can be
recalled. Nothing is saved when the shell exits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd.Context(), current, os.Stdin, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

type factSource interface {
	Fetch(ctx context.Context) string
}

// shell interprets input lines against one session.
type shell struct {
	sess  *session.Session
	facts factSource
	out   io.Writer
	fact  string
}

func runShell(ctx context.Context, a *app, in *os.File, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sess := session.New(a.searcher, a.cfg.Session, a.log)
	go sess.Run(ctx)

	sh := &shell{sess: sess, facts: a.facts, out: out}
	sh.fact = sh.fetchFact(ctx)

	fmt.Fprintln(out, banner)
	fmt.Fprintln(out)
	if err := sh.show(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out)

	reader, restore := prompt.New(in, out, "> ")
	defer restore()
	if ed, ok := reader.(*prompt.Editor); ok {
		anim := placeholder.NewAnimator(a.cfg.Placeholder)
		tk := placeholder.NewTicker(anim, func(text string) {
			ed.ShowPlaceholder(placeholder.Prompt(text))
		})
		ed.OnInput = tk.SetInput
		go tk.Run(ctx)
	}

	for {
		line, err := readLine(ctx, reader)
		if errors.Is(err, io.EOF) || errors.Is(err, prompt.ErrInterrupted) || errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return err
		}

		quit, err := sh.handle(ctx, line)
		if err != nil && ctx.Err() != nil {
			// Interrupted while a search was in flight.
			return nil
		}
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// readLine lets ctx cancellation interrupt a blocked read.
func readLine(ctx context.Context, r prompt.LineReader) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := r.ReadLine()
		ch <- result{line, err}
	}()
	select {
	case res := <-ch:
		return res.line, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// handle runs one input line. It reports quit for :quit and returns an
// error only when the session can no longer be used.
func (sh *shell) handle(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}

	if strings.HasPrefix(line, "!") {
		return false, sh.recall(ctx, strings.TrimPrefix(line, "!"))
	}
	if !strings.HasPrefix(line, ":") {
		return false, sh.search(ctx, line)
	}

	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "q", "quit", "exit":
		return true, nil
	case "help", "?":
		fmt.Fprintln(sh.out, shellHelp)
	case "sort":
		mode, err := types.ParseSortMode(arg)
		if err != nil {
			fmt.Fprintln(sh.out, err)
			return false, nil
		}
		if err := sh.sess.SetSort(ctx, mode); err != nil {
			return false, err
		}
		return false, sh.show(ctx)
	case "history":
		return false, sh.history(ctx)
	case "recall":
		return false, sh.recall(ctx, arg)
	case "clear":
		if err := sh.sess.ClearHistory(ctx); err != nil {
			return false, err
		}
		fmt.Fprintln(sh.out, "history cleared")
	case "topics":
		render.Idle(sh.out, render.IdleInfo{})
	case "topic":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > len(render.Topics) {
			fmt.Fprintf(sh.out, "pick a topic between 1 and %d\n", len(render.Topics))
			return false, nil
		}
		return false, sh.search(ctx, strings.ToLower(render.Topics[n-1]))
	case "fact":
		sh.fact = sh.fetchFact(ctx)
		fmt.Fprintf(sh.out, "%s\n%s\n", render.FactHeading, sh.fact)
	default:
		fmt.Fprintf(sh.out, "unknown command :%s (try :help)\n", name)
	}
	return false, nil
}

func (sh *shell) search(ctx context.Context, query string) error {
	ticket, err := sh.sess.Submit(ctx, query)
	if errors.Is(err, search.ErrEmptyQuery) {
		return nil
	}
	if err != nil {
		return err
	}
	return sh.await(ctx, ticket)
}

func (sh *shell) recall(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		fmt.Fprintf(sh.out, "not a history number: %q\n", arg)
		return nil
	}
	ticket, err := sh.sess.Recall(ctx, n-1)
	if errors.Is(err, session.ErrNoSuchEntry) {
		fmt.Fprintf(sh.out, "no recent query #%d\n", n)
		return nil
	}
	if err != nil {
		return err
	}
	return sh.await(ctx, ticket)
}

func (sh *shell) await(ctx context.Context, ticket *session.Ticket) error {
	fmt.Fprintln(sh.out, render.LoadingText)
	snap, err := ticket.Wait(ctx)
	if err != nil {
		return err
	}
	render.Snapshot(sh.out, snap, render.IdleInfo{Fact: sh.fact})
	return nil
}

func (sh *shell) history(ctx context.Context) error {
	snap, err := sh.sess.Snapshot(ctx)
	if err != nil {
		return err
	}
	if len(snap.History) == 0 {
		fmt.Fprintln(sh.out, "no recent queries")
		return nil
	}
	for i, q := range snap.History {
		fmt.Fprintf(sh.out, "%2d  %s\n", i+1, q)
	}
	return nil
}

func (sh *shell) show(ctx context.Context) error {
	snap, err := sh.sess.Snapshot(ctx)
	if err != nil {
		return err
	}
	render.Snapshot(sh.out, snap, render.IdleInfo{Fact: sh.fact})
	return nil
}

func (sh *shell) fetchFact(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, factTimeout)
	defer cancel()
	return sh.facts.Fetch(ctx)
}
