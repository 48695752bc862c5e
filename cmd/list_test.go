package cmd

import (
	"testing"
)

func TestListCommandFlagsExist(t *testing.T) {
	flags := listCmd.Flags()
	if flags.Lookup("quiet") == nil {
		t.Error("expected --quiet flag to exist")
	}
	if flags.Lookup("format") == nil {
		t.Error("expected --format flag to exist")
	}
}

func TestListCommandTakesNoArgs(t *testing.T) {
	if err := listCmd.Args(listCmd, []string{}); err != nil {
		t.Errorf("unexpected error with no args: %v", err)
	}
	if err := listCmd.Args(listCmd, []string{"extra"}); err == nil {
		t.Error("expected error with unexpected args")
	}
}

func TestListCommandAliases(t *testing.T) {
	want := map[string]bool{"ls": true, "ps": true}
	for _, alias := range listCmd.Aliases {
		delete(want, alias)
	}
	if len(want) != 0 {
		t.Errorf("missing aliases: %v", want)
	}
}

func TestRootCommandRegistration(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"list", "kill", "inspect", "pick", "version", "completion"} {
		if !names[name] {
			t.Errorf("expected %q to be registered on the root command", name)
		}
	}
}
