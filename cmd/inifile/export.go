// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newExportCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump the whole file to stdout",
		Long: `Dump the whole file to stdout. The ini format reproduces the file as
stored. The yaml format nests each section's keys under its name; keys
outside any section appear under the empty name. When a key repeats within
a section, the first value wins, matching lookup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.store()
			if err != nil {
				return err
			}
			f, err := st.Load()
			if err != nil {
				return err
			}
			switch format {
			case "ini":
				text, err := f.MarshalText()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(text)
				return err
			case "yaml":
				doc := make(map[string]map[string]string)
				sections := append([]string{""}, f.Sections()...)
				for _, name := range sections {
					for _, key := range f.Keys(name) {
						if doc[name] == nil {
							doc[name] = make(map[string]string)
						}
						if _, dup := doc[name][key]; !dup {
							doc[name][key] = f.Get(name, key)
						}
					}
				}
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				if err := enc.Encode(doc); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q (want ini or yaml)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "ini", "output format: ini or yaml")
	return cmd
}
