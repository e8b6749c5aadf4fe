package cli

import "testing"

func TestCommandWiring(t *testing.T) {
	tests := []struct {
		name string
		use  string
	}{
		{"generate", newGenerateCmd().Use},
		{"place", newPlaceCmd().Use},
		{"route", newRouteCmd().Use},
		{"nets", newNetsCmd().Use},
		{"drc", newDRCCmd().Use},
		{"cache", newCacheCmd().Use},
		{"runs", newRunsCmd().Use},
		{"completion", newCompletionCmd().Use},
	}
	for _, tt := range tests {
		if tt.use == "" {
			t.Errorf("%s command has no Use line", tt.name)
		}
	}
}

func TestGenerateFlagDefaults(t *testing.T) {
	cmd := newGenerateCmd()

	if got := cmd.Flags().Lookup("out").DefValue; got != "layout.json" {
		t.Errorf("--out default = %q, want layout.json", got)
	}
	if got := cmd.Flags().Lookup("method").DefValue; got != "anneal" {
		t.Errorf("--method default = %q, want anneal", got)
	}
	if got := cmd.Flags().Lookup("seed").DefValue; got != "42" {
		t.Errorf("--seed default = %q, want 42", got)
	}
	for _, name := range []string{"layers", "rules", "skip-drc", "refresh", "no-cache", "cache", "svg", "archive"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("generate is missing the --%s flag", name)
		}
	}
}

func TestCacheSubcommands(t *testing.T) {
	cmd := newCacheCmd()
	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	want := map[string]bool{"clear": false, "path": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, found := range want {
		if !found {
			t.Errorf("cache is missing the %q subcommand", n)
		}
	}
}

func TestRunsSubcommands(t *testing.T) {
	cmd := newRunsCmd()
	want := map[string]bool{"list": false, "show": false, "delete": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for n, found := range want {
		if !found {
			t.Errorf("runs is missing the %q subcommand", n)
		}
	}
	if cmd.PersistentFlags().Lookup("archive") == nil {
		t.Error("runs is missing the --archive flag")
	}
}
