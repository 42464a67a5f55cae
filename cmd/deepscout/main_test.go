package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand_PrintsVersionInfo(t *testing.T) {
	cmd := newVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	cmd.Run(cmd, nil)

	out := buf.String()
	if !strings.Contains(out, "deepscout version") {
		t.Errorf("version output = %q, should contain 'deepscout version'", out)
	}
}

func TestRootCommand_HasServeAndVersion(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "version"} {
		if !names[want] {
			t.Errorf("root command is missing the %q subcommand", want)
		}
	}
}
