package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robalobadob/bingo/internal/catalog"
	"github.com/robalobadob/bingo/internal/urlstate"
)

// cleanEnv points content loading at the built-in catalog.
func cleanEnv(t *testing.T) {
	for _, k := range []string{"CATALOG_DB", "CATALOG_FILE", "SPRITES_FILE"} {
		t.Setenv(k, "")
	}
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	genSeed, genGridSize, genCategories, genNames, genJSON = "", urlstate.DefaultGridSize, catalog.AllCategories, nil, false
	genURL = ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestHashPrintsDraws(t *testing.T) {
	out, err := run(t, "hash", "--seed", "bingo", "-n", "3")
	if err != nil {
		t.Fatal(err)
	}
	if want := "913297902\n4183017032\n611388725\n"; out != want {
		t.Fatalf("out = %q, want %q", out, want)
	}
}

func TestHashRejectsNegativeCount(t *testing.T) {
	if _, err := run(t, "hash", "-s", "x", "-n", "-1"); err == nil {
		t.Fatal("expected error")
	}
}

func genJSONOut(t *testing.T, args ...string) genOutput {
	t.Helper()
	out, err := run(t, append([]string{"gen", "--json"}, args...)...)
	if err != nil {
		t.Fatalf("gen %v: %v", args, err)
	}
	var g genOutput
	if err := json.Unmarshal([]byte(out), &g); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	return g
}

func TestGenIsDeterministic(t *testing.T) {
	cleanEnv(t)
	a := genJSONOut(t, "-s", "abc123", "-g", "3")
	b := genJSONOut(t, "-s", "abc123", "-g", "3")
	if len(a.Cells) != 3 || len(a.Cells[0]) != 3 {
		t.Fatalf("cells = %v", a.Cells)
	}
	for r := range a.Cells {
		for c := range a.Cells[r] {
			if a.Cells[r][c] != b.Cells[r][c] {
				t.Fatalf("cell (%d,%d) differs: %q vs %q", r, c, a.Cells[r][c], b.Cells[r][c])
			}
		}
	}
	if a.ShareURL != "http://localhost:5175/?seed=abc123&gridSize=3&categories=-1" {
		t.Fatalf("shareUrl = %q", a.ShareURL)
	}
}

func TestGenCategoryNames(t *testing.T) {
	cleanEnv(t)
	g := genJSONOut(t, "-s", "abc123", "-g", "3", "--category", "Birds")
	if g.Config.Categories != 1 {
		t.Fatalf("mask = %d", g.Config.Categories)
	}
	if _, err := run(t, "gen", "-s", "abc123", "--category", "Dragons"); err == nil ||
		!strings.Contains(err.Error(), "Dragons") {
		t.Fatalf("err = %v", err)
	}
}

func TestGenErrors(t *testing.T) {
	cleanEnv(t)
	if _, err := run(t, "gen", "-s", "not-ok"); err == nil {
		t.Fatal("expected invalid seed error")
	}
	if _, err := run(t, "gen", "-s", "abc", "-g", "9"); err == nil {
		t.Fatal("expected grid size error")
	}
	// Weather alone has too few items for 3x3.
	if _, err := run(t, "gen", "-s", "abc", "-g", "3", "--category", "Weather"); err == nil ||
		!strings.Contains(err.Error(), "have 6, need 9") {
		t.Fatalf("err = %v", err)
	}
}

func TestGenFromShareURL(t *testing.T) {
	cleanEnv(t)
	want := genJSONOut(t, "-s", "abc123", "-g", "4", "-c", "3", "--base-url", "https://bingo.example/")
	got := genJSONOut(t, "--url", "https://bingo.example/?seed=abc123&gridSize=4&categories=3")
	if got.Config != want.Config || got.ShareURL != want.ShareURL {
		t.Fatalf("config = %+v %q, want %+v %q", got.Config, got.ShareURL, want.Config, want.ShareURL)
	}
	for r := range want.Cells {
		for c := range want.Cells[r] {
			if got.Cells[r][c] != want.Cells[r][c] {
				t.Fatalf("cell (%d,%d) = %q, want %q", r, c, got.Cells[r][c], want.Cells[r][c])
			}
		}
	}

	// a mask wider than 32 bits falls back to every category
	wide := genJSONOut(t, "--url", "https://bingo.example/?seed=abc123&gridSize=4&categories=1099511627776")
	if wide.Config.Categories != catalog.AllCategories {
		t.Fatalf("wide mask = %d", wide.Config.Categories)
	}
}

func TestGenTable(t *testing.T) {
	cleanEnv(t)
	out, err := run(t, "gen", "-s", "abc123", "-g", "4")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// 4 rows, blank line, share URL
	if len(lines) != 6 || !strings.HasPrefix(lines[5], "http://localhost:5175/?seed=abc123&gridSize=4") {
		t.Fatalf("out = %q", out)
	}
}

func TestCatalogImportThenGen(t *testing.T) {
	cleanEnv(t)
	want := genJSONOut(t, "-s", "4fzyo82mvyr", "-g", "5")

	db := filepath.Join(t.TempDir(), "data", "catalog.db")
	if _, err := run(t, "catalog", "import", "--db", db, "--from", ""); err != nil {
		t.Fatalf("import: %v", err)
	}

	t.Setenv("CATALOG_DB", db)
	got := genJSONOut(t, "-s", "4fzyo82mvyr", "-g", "5")
	for r := range want.Cells {
		for c := range want.Cells[r] {
			if got.Cells[r][c] != want.Cells[r][c] {
				t.Fatalf("sqlite catalog grid differs at (%d,%d): %q vs %q", r, c, got.Cells[r][c], want.Cells[r][c])
			}
		}
	}
}
