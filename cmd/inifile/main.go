// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// inifile is a command-line tool for reading and editing INI configuration
// files.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/textcfg/inifile"
	"zombiezen.com/go/log"
)

func main() {
	initLog(false)
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Errorf(context.Background(), "%v", err)
		os.Exit(1)
	}
}

// app holds the flags shared by every subcommand.
type app struct {
	path  string
	debug bool
}

func newRootCmd() *cobra.Command {
	a := new(app)
	cmd := &cobra.Command{
		Use:   "inifile",
		Short: "Read and edit INI configuration files",
		Long: `inifile reads and edits key/value configuration stored in the INI
text format. Edits rewrite the file through a temporary file, preserving
comments, blank lines, and unrelated entries.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLog(a.debug)
		},
	}
	cmd.PersistentFlags().StringVarP(&a.path, "file", "f", os.Getenv("INIFILE"), "path to the INI file (defaults to $INIFILE)")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "show debug output")
	cmd.AddCommand(
		newGetCmd(a),
		newSetCmd(a),
		newDelCmd(a),
		newSectionsCmd(a),
		newKeysCmd(a),
		newExportCmd(a),
	)
	return cmd
}

func (a *app) store() (*inifile.Store, error) {
	if a.path == "" {
		return nil, errors.New("no file given (use --file or set INIFILE)")
	}
	return inifile.New(a.path)
}

func initLog(showDebug bool) {
	minLevel := log.Info
	if showDebug {
		minLevel = log.Debug
	}
	log.SetDefault(&log.LevelFilter{
		Min:    minLevel,
		Output: log.New(os.Stderr, "inifile: ", 0, nil),
	})
}
