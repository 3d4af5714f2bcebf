// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/textcfg/inifile/ini"
	"github.com/textcfg/inifile/retry"
	"zombiezen.com/go/log"
)

const retryTimeout = 10 * time.Second

func newSetCmd(a *app) *cobra.Command {
	var doRetry bool
	cmd := &cobra.Command{
		Use:   "set SECTION KEY VALUE",
		Short: "Store a value, creating the section and key as needed",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The library panics on malformed names, a contract for
			// programmer misuse. Argv is end-user data, so screen it here
			// and report an ordinary error.
			if !ini.IsValidSection(args[0]) {
				return fmt.Errorf("invalid section name %q", args[0])
			}
			if !ini.IsValidKey(args[1]) {
				return fmt.Errorf("invalid key %q", args[1])
			}
			if !ini.IsValidValue(args[2]) {
				return fmt.Errorf("invalid value %q: must be a single line", args[2])
			}
			st, err := a.store()
			if err != nil {
				return err
			}
			write := func() error {
				return st.SetString(args[0], args[1], args[2])
			}
			if err := runWrite(cmd.Context(), "rewriting "+st.Path(), doRetry, write); err != nil {
				return err
			}
			log.Debugf(cmd.Context(), "set [%s] %s in %s", args[0], args[1], st.Path())
			return nil
		},
	}
	cmd.Flags().BoolVar(&doRetry, "retry", false, "retry the rewrite with backoff if it fails")
	return cmd
}

func newDelCmd(a *app) *cobra.Command {
	var doRetry bool
	cmd := &cobra.Command{
		Use:   "del SECTION [KEY]",
		Short: "Delete a key, or a whole section when KEY is omitted",
		Long: `Delete the key stored under SECTION and KEY. When KEY is omitted, the
whole section is deleted: its header and everything under it. Deleting
something that does not exist is not an error.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.store()
			if err != nil {
				return err
			}
			write := func() error {
				if len(args) == 2 {
					return st.RemoveKey(args[0], args[1])
				}
				return st.RemoveSection(args[0])
			}
			return runWrite(cmd.Context(), "rewriting "+st.Path(), doRetry, write)
		},
	}
	cmd.Flags().BoolVar(&doRetry, "retry", false, "retry the rewrite with backoff if it fails")
	return cmd
}

// runWrite performs one write, or keeps retrying it with exponential backoff
// until retryTimeout when retrying is requested. The store itself never
// retries; contending with other writers is this caller's job.
func runWrite(ctx context.Context, operation string, doRetry bool, write func() error) error {
	if !doRetry {
		return write()
	}
	ctx, cancel := context.WithTimeout(ctx, retryTimeout)
	defer cancel()
	strategy := &retry.Exponential{
		Base: 50 * time.Millisecond,
		Max:  time.Second,
	}
	return retry.Do(ctx, operation, strategy, write)
}
