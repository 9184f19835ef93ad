package cli

import (
	"testing"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	for _, want := range []string{"review", "build", "import", "watch", "samples", "datasets", "instances", "config", "version"} {
		if !names[want] {
			t.Errorf("root command missing subcommand %q", want)
		}
	}
}

func TestVersionOutput(t *testing.T) {
	// version vars are set via ldflags; in tests they have their defaults
	if version != "dev" {
		t.Errorf("expected default version %q, got %q", "dev", version)
	}
}

func TestBuildFilters(t *testing.T) {
	tagA := "0b4ef64c-81cb-4c5c-b1a1-2c9ad02c6f3a"
	tagB := "6f2075da-7e58-4f5f-9a64-588a9b1a3c01"
	tagC := "e2c4f9d1-35ab-4d9e-8c50-1f7c2b9d80aa"
	filterTags = []string{tagA + ", " + tagB, tagC}
	defer func() { filterTags = nil }()

	p, err := buildFilters()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.TagFilter) != 2 {
		t.Fatalf("expected 2 tag groups, got %d", len(p.TagFilter))
	}
	if len(p.TagFilter[0]) != 2 || p.TagFilter[0][0] != tagA || p.TagFilter[0][1] != tagB {
		t.Errorf("unexpected first group: %v", p.TagFilter[0])
	}
	if len(p.TagFilter[1]) != 1 || p.TagFilter[1][0] != tagC {
		t.Errorf("unexpected second group: %v", p.TagFilter[1])
	}
}

func TestBuildFiltersRejectsTagNames(t *testing.T) {
	filterTags = []string{"person,car"}
	defer func() { filterTags = nil }()

	if _, err := buildFilters(); err == nil {
		t.Error("expected error for non-uuid tag ids")
	}
}

func TestBuildSamplingConfigTargets(t *testing.T) {
	buildMode = "class_targets"
	buildTargets = []string{"person=100", "car=50"}
	defer func() {
		buildMode = "all"
		buildTargets = nil
	}()

	cfg, err := buildSamplingConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ClassTargets["person"] != 100 || cfg.ClassTargets["car"] != 50 {
		t.Errorf("unexpected targets: %v", cfg.ClassTargets)
	}
}

func TestBuildSamplingConfigBadTarget(t *testing.T) {
	buildMode = "class_targets"
	buildTargets = []string{"person"}
	defer func() {
		buildMode = "all"
		buildTargets = nil
	}()

	if _, err := buildSamplingConfig(); err == nil {
		t.Error("expected error for target without =count")
	}
}
