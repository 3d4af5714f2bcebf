// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"zombiezen.com/go/log"
)

func newGetCmd(a *app) *cobra.Command {
	var (
		def string
		raw bool
	)
	cmd := &cobra.Command{
		Use:   "get SECTION KEY",
		Short: "Print the value of a key",
		Long: `Print the value stored under SECTION and KEY. Use an empty SECTION
("") for keys that appear before any section header.

Without --default, a missing key is an error. With --default, the default
value is printed instead and the command succeeds.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.store()
			if err != nil {
				return err
			}
			v, ok := st.Lookup(args[0], args[1])
			if !ok {
				if !cmd.Flags().Changed("default") {
					return fmt.Errorf("%s: [%s] %s: not found", st.Path(), args[0], args[1])
				}
				log.Debugf(cmd.Context(), "[%s] %s not found, using default", args[0], args[1])
				v = def
			}
			if raw && !term.IsTerminal(int(os.Stdout.Fd())) {
				// Exact bytes for command substitution.
				fmt.Fprint(cmd.OutOrStdout(), v)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
	cmd.Flags().StringVar(&def, "default", "", "value to print when the key is absent")
	cmd.Flags().BoolVar(&raw, "raw", false, "omit the trailing newline when stdout is not a terminal")
	return cmd
}

func newSectionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List section names, one per line, in file order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.store()
			if err != nil {
				return err
			}
			for _, name := range st.Sections() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newKeysCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keys SECTION",
		Short: "List the keys of a section, one per line, in file order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.store()
			if err != nil {
				return err
			}
			for _, key := range st.Keys(args[0]) {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}
}
