package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConvertWithPickRule(t *testing.T) {
	env := setupCLITestEnv(t)
	env.addBook(t, "Title - 1", 3)
	env.addBook(t, "Title - 1 - Fix", 3)
	env.addBook(t, "Title - 2", 4)

	out, err := runCLI(t, env.configPath,
		"convert", env.scansDir, "-n", "-p", "fix", "--name", "Title")
	if err != nil {
		t.Fatalf("convert: %v\n%s", err, out)
	}
	requireContains(t, out, "2 of 2 catalogues converted")

	for _, name := range []string{"Title1.cbz", "Title2.cbz"} {
		if _, err := os.Stat(filepath.Join(env.outDir, name)); err != nil {
			t.Fatalf("missing archive %s: %v", name, err)
		}
	}

	// The journal recorded the run.
	out, err = runCLI(t, env.configPath, "history")
	if err != nil {
		t.Fatalf("history: %v\n%s", err, out)
	}
	requireContains(t, out, "completed")
	requireContains(t, out, "2/2")
}

func TestConvertAmbiguousFailsNonInteractive(t *testing.T) {
	env := setupCLITestEnv(t)
	env.addBook(t, "Title - 1", 3)
	env.addBook(t, "Title - 1 - Fix", 3)

	out, err := runCLI(t, env.configPath,
		"convert", env.scansDir, "-n", "--name", "Title")
	if err == nil {
		t.Fatalf("convert should fail on ambiguity\n%s", out)
	}
	if !strings.Contains(err.Error(), "no applicable pick rule") {
		t.Fatalf("err = %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(env.outDir, "Title1.cbz")); !os.IsNotExist(statErr) {
		t.Fatal("archive written despite ambiguity")
	}
}

func TestConvertDryRunWritesNothing(t *testing.T) {
	env := setupCLITestEnv(t)
	env.addBook(t, "Title - 3", 2)

	out, err := runCLI(t, env.configPath,
		"convert", env.scansDir, "-n", "--dry-run", "--name", "Title")
	if err != nil {
		t.Fatalf("convert: %v\n%s", err, out)
	}
	requireContains(t, out, "would convert")

	if _, err := os.Stat(env.outDir); !os.IsNotExist(err) {
		t.Fatal("dry run created the output directory")
	}
	if _, err := os.Stat(filepath.Join(env.baseDir, "journal.db")); !os.IsNotExist(err) {
		t.Fatal("dry run touched the journal")
	}
}

func TestConvertSkipsExistingWithoutForce(t *testing.T) {
	env := setupCLITestEnv(t)
	env.addBook(t, "Title - 5", 2)
	if err := os.MkdirAll(env.outDir, 0o755); err != nil {
		t.Fatalf("mkdir out: %v", err)
	}
	if err := os.WriteFile(filepath.Join(env.outDir, "Title5.cbz"), []byte("old"), 0o644); err != nil {
		t.Fatalf("seed archive: %v", err)
	}

	out, err := runCLI(t, env.configPath,
		"convert", env.scansDir, "-n", "--name", "Title")
	if err != nil {
		t.Fatalf("convert: %v\n%s", err, out)
	}
	requireContains(t, out, "skipped")
	body, err := os.ReadFile(filepath.Join(env.outDir, "Title5.cbz"))
	if err != nil || string(body) != "old" {
		t.Fatalf("existing archive replaced: %q %v", body, err)
	}

	out, err = runCLI(t, env.configPath,
		"convert", env.scansDir, "-n", "--name", "Title", "--force")
	if err != nil {
		t.Fatalf("forced convert: %v\n%s", err, out)
	}
	body, err = os.ReadFile(filepath.Join(env.outDir, "Title5.cbz"))
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	if string(body) == "old" {
		t.Fatal("force did not overwrite the archive")
	}
}

func TestConvertTitleConflictNeedsName(t *testing.T) {
	env := setupCLITestEnv(t)
	env.addBook(t, "Alpha - 1", 2)
	env.addBook(t, "Beta - 2", 2)

	_, err := runCLI(t, env.configPath, "convert", env.scansDir, "-n")
	if err == nil || !strings.Contains(err.Error(), "--name") {
		t.Fatalf("err = %v, want title conflict", err)
	}
}

func TestConvertIncludeFiltersCatalogues(t *testing.T) {
	env := setupCLITestEnv(t)
	env.addBook(t, "Title - 1", 2)
	env.addBook(t, "Title - 2", 2)
	env.addBook(t, "Title - 3", 2)

	out, err := runCLI(t, env.configPath,
		"convert", env.scansDir, "-n", "--name", "Title", "--include", "2..=3")
	if err != nil {
		t.Fatalf("convert: %v\n%s", err, out)
	}
	if _, err := os.Stat(filepath.Join(env.outDir, "Title1.cbz")); !os.IsNotExist(err) {
		t.Fatal("excluded catalogue was converted")
	}
	for _, name := range []string{"Title2.cbz", "Title3.cbz"} {
		if _, err := os.Stat(filepath.Join(env.outDir, name)); err != nil {
			t.Fatalf("missing archive %s: %v", name, err)
		}
	}
}

func TestConvertRejectsBadMangaValue(t *testing.T) {
	env := setupCLITestEnv(t)
	env.addBook(t, "Title - 1", 1)

	_, err := runCLI(t, env.configPath,
		"convert", env.scansDir, "-n", "--name", "Title", "--manga", "maybe")
	if err == nil || !strings.Contains(err.Error(), "manga") {
		t.Fatalf("err = %v, want manga validation error", err)
	}
}

func TestConfigShowPrintsResolvedConfig(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env.configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[paths]")
	requireContains(t, out, env.outDir)
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(env.baseDir, "fresh", "config.toml")
	out, err := runCLI(t, env.configPath, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	out, err = runCLI(t, env.configPath, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}
