package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/cattree/internal/config"
	"github.com/temirov/cattree/internal/utils"
)

// localConfigurationContent is the YAML written to the working directory.
const localConfigurationContent = `generate:
  exclude_pattern: "_test\\.go$"
  max_lines: 40
  compact: true
  tokens:
    enabled: true
    model: gpt-4o
`

func TestLoadApplicationConfigurationReadsLocalFile(t *testing.T) {
	workingDirectory := t.TempDir()
	configurationPath := filepath.Join(workingDirectory, utils.ConfigFileName)
	if writeError := os.WriteFile(configurationPath, []byte(localConfigurationContent), 0o600); writeError != nil {
		t.Fatalf("failed to write %s: %v", configurationPath, writeError)
	}

	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
	})
	if loadError != nil {
		t.Fatalf("unexpected load error: %v", loadError)
	}

	generateConfiguration := applicationConfiguration.Generate
	if generateConfiguration.ExcludePattern != `_test\.go$` {
		t.Fatalf("expected exclude pattern from file, got %q", generateConfiguration.ExcludePattern)
	}
	if generateConfiguration.MaxLines == nil || *generateConfiguration.MaxLines != 40 {
		t.Fatalf("expected max lines 40, got %v", generateConfiguration.MaxLines)
	}
	if generateConfiguration.Compact == nil || !*generateConfiguration.Compact {
		t.Fatalf("expected compact true, got %v", generateConfiguration.Compact)
	}
	if generateConfiguration.Tokens.Enabled == nil || !*generateConfiguration.Tokens.Enabled {
		t.Fatalf("expected tokens enabled, got %v", generateConfiguration.Tokens.Enabled)
	}
	if generateConfiguration.Tokens.Model != "gpt-4o" {
		t.Fatalf("expected model gpt-4o, got %q", generateConfiguration.Tokens.Model)
	}
}

func TestLoadApplicationConfigurationMissingFileIsNotAnError(t *testing.T) {
	workingDirectory := t.TempDir()

	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
	})
	if loadError != nil {
		t.Fatalf("unexpected load error: %v", loadError)
	}
	if applicationConfiguration.Generate.ExcludePattern != "" {
		t.Fatalf("expected the zero configuration, got %q", applicationConfiguration.Generate.ExcludePattern)
	}
}

func TestMergePrefersOverlayValues(t *testing.T) {
	baseMaxLines := 10
	overlayMaxLines := 25
	baseCompact := false

	base := config.ApplicationConfiguration{
		Generate: config.GenerateConfiguration{
			ExcludePattern: "base",
			MaxLines:       &baseMaxLines,
			Compact:        &baseCompact,
		},
	}
	overlay := config.ApplicationConfiguration{
		Generate: config.GenerateConfiguration{
			ExcludePattern: "overlay",
			MaxLines:       &overlayMaxLines,
		},
	}

	merged := base.Merge(overlay)
	if merged.Generate.ExcludePattern != "overlay" {
		t.Fatalf("expected overlay exclude pattern, got %q", merged.Generate.ExcludePattern)
	}
	if merged.Generate.MaxLines == nil || *merged.Generate.MaxLines != overlayMaxLines {
		t.Fatalf("expected overlay max lines, got %v", merged.Generate.MaxLines)
	}
	if merged.Generate.Compact == nil || *merged.Generate.Compact != baseCompact {
		t.Fatalf("expected the base compact value to survive, got %v", merged.Generate.Compact)
	}
}
