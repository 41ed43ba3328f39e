package cmd

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestSetYAMLValuePreservesComments(t *testing.T) {
	source := `# term-diff configuration
render:
  # 0 means auto-detect
  width: 0
  colors: auto
`
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(source), &root); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if err := setYAMLValue(&root, []string{"render", "colors"}, "never"); err != nil {
		t.Fatalf("setYAMLValue: %v", err)
	}

	out, err := yaml.Marshal(&root)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	text := string(out)

	if !strings.Contains(text, "colors: never") {
		t.Errorf("value not updated:\n%s", text)
	}
	if !strings.Contains(text, "# 0 means auto-detect") {
		t.Errorf("comment lost:\n%s", text)
	}
}

func TestSetYAMLValueCreatesPath(t *testing.T) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte("render:\n  width: 0\n"), &root); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if err := setYAMLValue(&root, []string{"theme", "added"}, "#b8bb26"); err != nil {
		t.Fatalf("setYAMLValue: %v", err)
	}

	got, err := getYAMLValue(&root, []string{"theme", "added"})
	if err != nil {
		t.Fatalf("getYAMLValue: %v", err)
	}
	if got != "#b8bb26" {
		t.Errorf("got %q, want %q", got, "#b8bb26")
	}
}

func TestGetYAMLValueMissingKey(t *testing.T) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte("render:\n  width: 0\n"), &root); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if _, err := getYAMLValue(&root, []string{"render", "nope"}); err == nil {
		t.Error("expected error for missing key")
	}
	if _, err := getYAMLValue(&root, []string{"render"}); err == nil {
		t.Error("expected error for non-scalar value")
	}
}

func TestFilterPrefix(t *testing.T) {
	got := filterPrefix(configKeys, "render.max")
	want := []string{"render.max_rows", "render.max_rows_per_line", "render.max_span_chars"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}
