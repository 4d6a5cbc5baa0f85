package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/albumgrid/pkg/config"
	"github.com/matzehuels/albumgrid/pkg/errors"
	"github.com/matzehuels/albumgrid/pkg/grid"
)

const testItemsJSON = `{"items": [
  {"id": "portrait", "aspect_ratio": 0.6},
  {"id": "left", "aspect_ratio": 1},
  {"id": "right", "aspect_ratio": 1}
]}`

// newTestCLI isolates the CLI from the user's config and cache directories.
func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(configEnv, "")
	var buf bytes.Buffer
	return New(&buf, log.InfoLevel)
}

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newTestCLI(t).RootCommand()
	want := []string{"layout", "groups", "edit", "serve", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestLayoutCommand(t *testing.T) {
	c := newTestCLI(t)
	input := writeFile(t, "items.json", testItemsJSON)
	output := filepath.Join(t.TempDir(), "layout.json")

	root := c.RootCommand()
	root.SetArgs([]string{"layout", input, "-o", output, "--no-cache", "-q"})
	if err := root.Execute(); err != nil {
		t.Fatalf("layout: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var l grid.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if l.Len() != 3 || l.Plan().Rule != grid.RuleTrioLeftColumn {
		t.Errorf("layout = %d positions, plan %s", l.Len(), l.Plan())
	}
}

func TestLayoutCommandTooManyItems(t *testing.T) {
	c := newTestCLI(t)
	input := writeFile(t, "items.json", testItemsJSON)
	cfg := writeFile(t, "config.toml", "[album]\nmax_group_size = 2\n")

	root := c.RootCommand()
	root.SetArgs([]string{"layout", input, "--config", cfg, "--no-cache"})
	err := root.Execute()
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestGroupsCommand(t *testing.T) {
	c := newTestCLI(t)
	input := writeFile(t, "items.json", testItemsJSON)

	root := c.RootCommand()
	root.SetArgs([]string{"groups", input, "--max-group-size", "2"})
	if err := root.Execute(); err != nil {
		t.Fatalf("groups: %v", err)
	}

	data, err := os.ReadFile(defaultOutput(input, "groups"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var doc struct {
		Groups []json.RawMessage `json:"groups"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(doc.Groups) != 2 {
		t.Errorf("got %d groups, want 2", len(doc.Groups))
	}
}

func TestConfigFlag(t *testing.T) {
	c := newTestCLI(t)
	cfg := writeFile(t, "config.toml", "[cache]\nbackend = \"memory\"\n\n[server]\naddr = \":9090\"\n")

	root := c.RootCommand()
	root.SetArgs([]string{"cache", "path", "--config", cfg})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if c.Config.Cache.Backend != config.BackendMemory || c.Config.Server.Addr != ":9090" {
		t.Errorf("config not loaded: %+v", c.Config)
	}
}

func TestConfigEnv(t *testing.T) {
	c := newTestCLI(t)
	t.Setenv(configEnv, writeFile(t, "config.toml", "[album]\nmax_group_size = 4\n"))

	if err := c.loadConfig(); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if c.Config.Album.MaxGroupSize != 4 {
		t.Errorf("MaxGroupSize = %d, want 4", c.Config.Album.MaxGroupSize)
	}
}

func TestInvalidConfig(t *testing.T) {
	c := newTestCLI(t)
	cfg := writeFile(t, "config.toml", "[cache]\nbackend = \"tape\"\n")

	root := c.RootCommand()
	root.SetArgs([]string{"cache", "path", "--config", cfg})
	if err := root.Execute(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestNewCacheBackends(t *testing.T) {
	c := newTestCLI(t)
	ctx := t.Context()

	tests := []struct {
		backend string
		noCache bool
		want    string
	}{
		{config.BackendFile, false, "*cache.FileCache"},
		{config.BackendMemory, false, "*cache.MemoryCache"},
		{config.BackendNone, false, "*cache.NullCache"},
		{config.BackendMemory, true, "*cache.NullCache"},
	}
	for _, tt := range tests {
		c.Config.Cache.Backend = tt.backend
		got, err := c.newCache(ctx, tt.noCache)
		if err != nil {
			t.Fatalf("newCache(%s): %v", tt.backend, err)
		}
		if name := typeName(got); name != tt.want {
			t.Errorf("newCache(%s, %v) = %s, want %s", tt.backend, tt.noCache, name, tt.want)
		}
		got.Close()
	}
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
