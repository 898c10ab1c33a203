// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the imagesearch CLI. It is the
// presentation side of the client: it issues searches on the controller and
// renders the states it publishes.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/imagesearch/internal/feed"
)

// version is set at build time via ldflags.
var version = "dev"

// logOutput receives component logs; it stays io.Discard unless --verbose
// or --log-file is given.
var logOutput io.Writer = io.Discard

// logFile is the file opened for --log-file, closed by execute.
var logFile *os.File

// rootCmd is the base command for the imagesearch CLI.
var rootCmd = &cobra.Command{
	Use:   "imagesearch",
	Short: "Search the public photo feed by tag",
	Long: `imagesearch queries the public photo feed for a free-text tag and shows the
matching images. Use "search" for a one-shot query, "watch" to type queries
line by line, or "browse" for an interactive terminal browser.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("log-file")
		verbose, _ := cmd.Flags().GetBool("verbose")
		switch {
		case path != "":
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			logFile = f
			logOutput = f
		case verbose:
			logOutput = os.Stderr
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./imagesearch.yaml or ~/.config/imagesearch/config.yaml)")
	pf.BoolP("verbose", "v", false, "log requests to stderr")
	pf.String("log-file", "", "append logs to this file instead of stderr")
	pf.String("base-url", "", fmt.Sprintf("feed endpoint (default %s)", feed.DefaultBaseURL()))
	pf.Duration("timeout", 0, "HTTP request timeout (default 30s)")
	pf.Float64("rate-limit", 0, "maximum feed requests per second (0 = unlimited)")
	pf.String("default-term", "", "term searched at startup by watch and browse (default \"Porcupine\")")

	viper.BindPFlag("feed.base_url", pf.Lookup("base-url"))
	viper.BindPFlag("feed.timeout", pf.Lookup("timeout"))
	viper.BindPFlag("feed.rate_limit", pf.Lookup("rate-limit"))
	viper.BindPFlag("search.default_term", pf.Lookup("default-term"))

	viper.SetDefault("feed.timeout", defaultTimeout)
	viper.SetDefault("feed.user_agent", defaultUserAgent)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("imagesearch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "imagesearch"))
		}
	}

	viper.SetEnvPrefix("IMAGESEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger(prefix string) *log.Logger {
	return log.New(logOutput, prefix, log.LstdFlags|log.Lmicroseconds)
}

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "imagesearch/0.1"
)

// execute runs the command tree and closes the log file whether or not the
// command succeeded.
func execute(ctx context.Context) error {
	defer closeLogFile()
	return rootCmd.ExecuteContext(ctx)
}

func closeLogFile() {
	if logFile == nil {
		return
	}
	logFile.Close()
	logFile = nil
	logOutput = io.Discard
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := execute(ctx); err != nil {
		os.Exit(1)
	}
}
