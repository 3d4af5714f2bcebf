// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

// runCommand builds a fresh root command, runs it with the given arguments,
// and returns whatever it printed to stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTestFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ini")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestGetCommand(t *testing.T) {
	path := writeTestFile(t, "[s]\nk=v\n")

	out, err := runCommand(t, "--file", path, "get", "s", "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out != "v\n" {
		t.Errorf("get printed %q; want \"v\\n\"", out)
	}

	// Without --default, a missing key is an error.
	if _, err := runCommand(t, "--file", path, "get", "s", "missing"); err == nil {
		t.Error("get of a missing key did not return an error")
	} else if !strings.Contains(err.Error(), "not found") {
		t.Errorf("get of a missing key returned %v; want a not-found error", err)
	}

	out, err = runCommand(t, "--file", path, "get", "--default", "d", "s", "missing")
	if err != nil {
		t.Fatalf("get --default: %v", err)
	}
	if out != "d\n" {
		t.Errorf("get --default printed %q; want \"d\\n\"", out)
	}
}

func TestSetCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.ini")
	if _, err := runCommand(t, "--file", path, "set", "s", "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if diff := cmp.Diff("[s]\nk=v\n", readTestFile(t, path)); diff != "" {
		t.Errorf("file after set (-want +got):\n%s", diff)
	}
}

func TestSetCommandRejectsBadInput(t *testing.T) {
	path := writeTestFile(t, "[s]\nk=v\n")
	before := readTestFile(t, path)
	tests := []struct {
		name string
		args []string
	}{
		{name: "DelimiterInKey", args: []string{"set", "s", "bad=key", "v"}},
		{name: "ColonInKey", args: []string{"set", "s", "bad:key", "v"}},
		{name: "EmptyKey", args: []string{"set", "s", "", "v"}},
		{name: "NewlineInValue", args: []string{"set", "s", "k", "a\nb"}},
		{name: "BracketInSection", args: []string{"set", "a]b", "k", "v"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			args := append([]string{"--file", path}, test.args...)
			if _, err := runCommand(t, args...); err == nil {
				t.Errorf("set %q did not return an error", test.args)
			}
			if got := readTestFile(t, path); got != before {
				t.Errorf("file changed by a rejected set:\n%q", got)
			}
		})
	}
}

func TestDelCommand(t *testing.T) {
	path := writeTestFile(t, "[s]\na=1\nb=2\n[t]\nx=9\n")

	if _, err := runCommand(t, "--file", path, "del", "s", "a"); err != nil {
		t.Fatalf("del key: %v", err)
	}
	if diff := cmp.Diff("[s]\nb=2\n[t]\nx=9\n", readTestFile(t, path)); diff != "" {
		t.Errorf("file after del key (-want +got):\n%s", diff)
	}

	// Omitting the key deletes the whole section.
	if _, err := runCommand(t, "--file", path, "del", "t"); err != nil {
		t.Fatalf("del section: %v", err)
	}
	if diff := cmp.Diff("[s]\nb=2\n", readTestFile(t, path)); diff != "" {
		t.Errorf("file after del section (-want +got):\n%s", diff)
	}

	// Deleting something that does not exist is not an error.
	if _, err := runCommand(t, "--file", path, "del", "s", "missing"); err != nil {
		t.Errorf("del of a missing key: %v", err)
	}
}

func TestSectionsAndKeysCommands(t *testing.T) {
	path := writeTestFile(t, "g=0\n[A]\na1=1\na2=2\n[B]\nb=1\n")

	out, err := runCommand(t, "--file", path, "sections")
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	if out != "A\nB\n" {
		t.Errorf("sections printed %q; want \"A\\nB\\n\"", out)
	}

	out, err = runCommand(t, "--file", path, "keys", "A")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if out != "a1\na2\n" {
		t.Errorf("keys A printed %q; want \"a1\\na2\\n\"", out)
	}

	// The empty section name lists keys before any header.
	out, err = runCommand(t, "--file", path, "keys", "")
	if err != nil {
		t.Fatalf("keys \"\": %v", err)
	}
	if out != "g\n" {
		t.Errorf("keys \"\" printed %q; want \"g\\n\"", out)
	}
}

func TestExportINI(t *testing.T) {
	const source = "; comment\ng=0\n[s]\nk=v\n"
	path := writeTestFile(t, source)
	out, err := runCommand(t, "--file", path, "export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if diff := cmp.Diff(source, out); diff != "" {
		t.Errorf("export printed (-want +got):\n%s", diff)
	}
}

func TestExportYAML(t *testing.T) {
	path := writeTestFile(t, "g=0\n[s]\nk=first\nk=second\n[t]\nx=1\n")
	out, err := runCommand(t, "--file", path, "export", "--format", "yaml")
	if err != nil {
		t.Fatalf("export --format yaml: %v", err)
	}
	var got map[string]map[string]string
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("export output is not YAML: %v\n%s", err, out)
	}
	want := map[string]map[string]string{
		"": {"g": "0"},
		// The first value wins, matching lookup.
		"s": {"k": "first"},
		"t": {"x": "1"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("export --format yaml (-want +got):\n%s", diff)
	}

	if _, err := runCommand(t, "--file", path, "export", "--format", "bogus"); err == nil {
		t.Error("export --format bogus did not return an error")
	}
}

func TestFileFromEnv(t *testing.T) {
	path := writeTestFile(t, "[s]\nk=v\n")
	t.Setenv("INIFILE", path)
	out, err := runCommand(t, "get", "s", "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out != "v\n" {
		t.Errorf("get printed %q; want \"v\\n\"", out)
	}
}

func TestNoFile(t *testing.T) {
	t.Setenv("INIFILE", "")
	if _, err := runCommand(t, "get", "s", "k"); err == nil {
		t.Error("get without a file did not return an error")
	} else if !strings.Contains(err.Error(), "no file") {
		t.Errorf("get without a file returned %v; want a no-file error", err)
	}
}
