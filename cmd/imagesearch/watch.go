// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/imagesearch/internal/detail"
	"github.com/pdiddy/imagesearch/internal/search"
	"github.com/pdiddy/imagesearch/pkg/types"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Read search terms from stdin and print every state change",
	Long: `Watch searches for the default term, then treats each line read from stdin
as a new search. A new line supersedes a search still in flight. Every state
change is printed as it is published.

Commands:
  :open N   print the details of result N of the current results
  :quit     exit`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Bool("list", false, "print the result table after each successful search")
	watchCmd.Flags().Bool("no-init", false, "do not search for the default term at startup")

	rootCmd.AddCommand(watchCmd)
}

// syncWriter serializes writes from the state printer and the input loop.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func runWatch(cmd *cobra.Command, args []string) error {
	list, _ := cmd.Flags().GetBool("list")
	noInit, _ := cmd.Flags().GetBool("no-init")

	ctrl := newController(loadConfig(viper.GetViper()))
	out := &syncWriter{w: cmd.OutOrStdout()}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	printed := make(chan struct{})
	states := ctrl.Watch(ctx)
	go func() {
		defer close(printed)
		for st := range states {
			printState(st, list, out)
		}
	}()

	if !noInit {
		ctrl.Initialize()
	}
	err := readCommands(ctx, ctrl, cmd.InOrStdin(), out, cmd.ErrOrStderr())

	ctrl.Close()
	<-printed
	return err
}

func printState(st types.SearchState, list bool, w io.Writer) {
	var buf strings.Builder
	search.FormatState(st, &buf)
	if list && st.Status == types.StatusSuccess {
		search.FormatTable(st.Data, &buf)
	}
	io.WriteString(w, buf.String())
}

// readCommands runs until stdin is exhausted, :quit is read or ctx is done.
func readCommands(ctx context.Context, ctrl *search.Controller, in io.Reader, out, errw io.Writer) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("reading input: %w", err)
					}
				default:
				}
				return nil
			}
			if quit := handleLine(ctrl, line, out, errw); quit {
				return nil
			}
		}
	}
}

// handleLine applies one input line and reports whether to stop.
func handleLine(ctrl *search.Controller, line string, out, errw io.Writer) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == ":quit" || trimmed == ":q":
		return true
	case strings.HasPrefix(trimmed, ":open"):
		openItem(ctrl, strings.TrimSpace(strings.TrimPrefix(trimmed, ":open")), out, errw)
	default:
		ctrl.Search(trimmed)
	}
	return false
}

func openItem(ctrl *search.Controller, arg string, out, errw io.Writer) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		fmt.Fprintf(errw, "warning: :open needs a result number, got %q\n", arg)
		return
	}
	st := ctrl.CurrentState()
	if st.Status != types.StatusSuccess {
		fmt.Fprintf(errw, "warning: no results to open (current state: %s)\n", st.Status)
		return
	}
	if n > len(st.Data) {
		fmt.Fprintf(errw, "warning: result %d out of range: %d results\n", n, len(st.Data))
		return
	}
	var buf strings.Builder
	detail.Render(detail.NewView(ctrl.Select(st.Data[n-1])), &buf)
	io.WriteString(out, buf.String())
}
