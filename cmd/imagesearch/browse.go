// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/imagesearch/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse search results in an interactive terminal UI",
	Long: `Browse opens a full-screen browser. It starts with the default term; every
edit of the search bar issues a new search. Use the arrow keys to move through
results and enter to show an item's details. Logs are only written when
--log-file is given.`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if path, _ := cmd.Flags().GetString("log-file"); path == "" {
		// stderr belongs to the UI.
		logOutput = io.Discard
	}

	ctrl := newController(loadConfig(viper.GetViper()))
	defer ctrl.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	states := ctrl.Watch(ctx)
	ctrl.Initialize()

	p := tea.NewProgram(tui.New(ctrl, states), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
