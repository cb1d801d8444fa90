package config

import "testing"

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "BINGO_SECRET", "DEFAULT_GRID_SIZE", "CATALOG_DB"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	if c.Port != "5175" || c.LogLevel != "info" || c.Secret != DevSecret || c.DefaultGridSize != 5 {
		t.Fatalf("defaults = %+v", c)
	}
	if c.CatalogDB != "" {
		t.Fatalf("CatalogDB = %q", c.CatalogDB)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DEFAULT_GRID_SIZE", "4")
	t.Setenv("CATALOG_FILE", "/tmp/c.json")
	c := FromEnv()
	if c.Port != "9000" || c.DefaultGridSize != 4 || c.CatalogFile != "/tmp/c.json" {
		t.Fatalf("overrides = %+v", c)
	}
	t.Setenv("DEFAULT_GRID_SIZE", "big")
	if FromEnv().DefaultGridSize != 5 {
		t.Fatal("non-numeric DEFAULT_GRID_SIZE should fall back")
	}
}
