package main

import (
	"strconv"
	"testing"

	"github.com/debresearch/licensetrend/internal/config"
)

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "licensetrend" {
			t.Errorf("expected use 'licensetrend', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has max-packages flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("max-packages")
		if flag == nil {
			t.Fatal("expected max-packages flag")
		}
		if flag.DefValue != strconv.Itoa(config.DefaultMaxPackages) {
			t.Errorf("expected default %d, got %q", config.DefaultMaxPackages, flag.DefValue)
		}
	})

	t.Run("has max-licenses flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("max-licenses")
		if flag == nil {
			t.Fatal("expected max-licenses flag")
		}
		if flag.DefValue != strconv.Itoa(config.DefaultMaxLicenses) {
			t.Errorf("expected default %d, got %q", config.DefaultMaxLicenses, flag.DefValue)
		}
	})

	t.Run("has debug flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("debug")
		if flag == nil {
			t.Fatal("expected debug flag")
		}
		if flag.Shorthand != "d" {
			t.Errorf("expected shorthand 'd', got %q", flag.Shorthand)
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("has output-dir flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output-dir")
		if flag == nil {
			t.Fatal("expected output-dir flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
		if flag.DefValue != "." {
			t.Errorf("expected default '.', got %q", flag.DefValue)
		}
	})

	t.Run("has config flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("config")
		if flag == nil {
			t.Fatal("expected config flag")
		}
		if flag.Shorthand != "c" {
			t.Errorf("expected shorthand 'c', got %q", flag.Shorthand)
		}
	})

	t.Run("has markdown flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("markdown")
		if flag == nil {
			t.Fatal("expected markdown flag")
		}
		if flag.Shorthand != "m" {
			t.Errorf("expected shorthand 'm', got %q", flag.Shorthand)
		}
	})

	t.Run("has cache-dir flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("cache-dir") == nil {
			t.Fatal("expected cache-dir flag")
		}
	})

	t.Run("has version subcommand", func(t *testing.T) {
		t.Parallel()
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Use == "version" {
				found = true
			}
		}
		if !found {
			t.Error("expected version subcommand")
		}
	})

	t.Run("silences usage and errors", func(t *testing.T) {
		t.Parallel()
		if !cmd.SilenceUsage {
			t.Error("expected SilenceUsage to be true")
		}
		if !cmd.SilenceErrors {
			t.Error("expected SilenceErrors to be true")
		}
	})
}

// TestBuildConfig tests flag and config-file merging.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		if err := cmd.ParseFlags([]string{}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.MaxPackages != config.DefaultMaxPackages {
			t.Errorf("MaxPackages = %d, want %d", cfg.MaxPackages, config.DefaultMaxPackages)
		}
		if cfg.Debug {
			t.Error("Debug = true, want false")
		}
		if cfg.OutputDir != "." {
			t.Errorf("OutputDir = %q, want '.'", cfg.OutputDir)
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		args := []string{
			"--max-packages", "50",
			"--max-licenses", "5",
			"--debug",
			"--output-dir", "/tmp/out",
			"--markdown",
		}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.MaxPackages != 50 {
			t.Errorf("MaxPackages = %d, want 50", cfg.MaxPackages)
		}
		if cfg.MaxLicenses != 5 {
			t.Errorf("MaxLicenses = %d, want 5", cfg.MaxLicenses)
		}
		if !cfg.Debug {
			t.Error("Debug = false, want true")
		}
		if cfg.OutputDir != "/tmp/out" {
			t.Errorf("OutputDir = %q, want '/tmp/out'", cfg.OutputDir)
		}
		if !cfg.MarkdownReport {
			t.Error("MarkdownReport = false, want true")
		}
	})

	t.Run("missing explicit config file", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		if err := cmd.ParseFlags([]string{"--config", "/nonexistent/config.yml"}); err != nil {
			t.Fatal(err)
		}

		if _, err := buildConfig(cmd); err == nil {
			t.Error("buildConfig() error = nil, want an error for a missing explicit config file")
		}
	})
}
