package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/cattree/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds flag defaults loaded from configuration files.
type ApplicationConfiguration struct {
	Generate GenerateConfiguration `mapstructure:"generate"`
}

// GenerateConfiguration defines file-supplied defaults for the generate command.
type GenerateConfiguration struct {
	IncludePattern string             `mapstructure:"include_pattern"`
	ExcludePattern string             `mapstructure:"exclude_pattern"`
	UseGitignore   *bool              `mapstructure:"use_gitignore"`
	MaxLines       *int               `mapstructure:"max_lines"`
	Compact        *bool              `mapstructure:"compact"`
	Clipboard      *bool              `mapstructure:"clipboard"`
	Tokens         TokenConfiguration `mapstructure:"tokens"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// LoadApplicationConfiguration loads configuration from the global file in
// the user's home directory and the local file in the working directory.
// Local values override global ones; flags override both at the CLI layer.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfiguration, loadError := loadConfigurationFromPath(globalPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfiguration)
	}

	localPath := options.ExplicitFilePath
	if localPath == "" {
		localPath = filepath.Join(workingDirectory, utils.ConfigFileName)
	} else if !filepath.IsAbs(localPath) {
		localPath = filepath.Join(workingDirectory, localPath)
	}
	localConfiguration, loadError := loadConfigurationFromPath(localPath)
	if loadError != nil {
		return ApplicationConfiguration{}, loadError
	}
	merged = merged.Merge(localConfiguration)

	return merged, nil
}

// Merge overlays the provided configuration onto the receiver. Values set in
// overlay win; unset pointers and empty strings fall through.
func (configuration ApplicationConfiguration) Merge(overlay ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	if overlay.Generate.IncludePattern != "" {
		result.Generate.IncludePattern = overlay.Generate.IncludePattern
	}
	if overlay.Generate.ExcludePattern != "" {
		result.Generate.ExcludePattern = overlay.Generate.ExcludePattern
	}
	if overlay.Generate.UseGitignore != nil {
		result.Generate.UseGitignore = overlay.Generate.UseGitignore
	}
	if overlay.Generate.MaxLines != nil {
		result.Generate.MaxLines = overlay.Generate.MaxLines
	}
	if overlay.Generate.Compact != nil {
		result.Generate.Compact = overlay.Generate.Compact
	}
	if overlay.Generate.Clipboard != nil {
		result.Generate.Clipboard = overlay.Generate.Clipboard
	}
	if overlay.Generate.Tokens.Enabled != nil {
		result.Generate.Tokens.Enabled = overlay.Generate.Tokens.Enabled
	}
	if overlay.Generate.Tokens.Model != "" {
		result.Generate.Tokens.Model = overlay.Generate.Tokens.Model
	}
	return result
}

// loadConfigurationFromPath reads one YAML configuration file. A missing
// file is not an error and yields the zero configuration.
func loadConfigurationFromPath(configurationPath string) (ApplicationConfiguration, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigFile(configurationPath)
	viperInstance.SetConfigType("yaml")
	if readError := viperInstance.ReadInConfig(); readError != nil {
		var notFoundError viper.ConfigFileNotFoundError
		if errors.As(readError, &notFoundError) || os.IsNotExist(readError) {
			return ApplicationConfiguration{}, nil
		}
		var pathError *os.PathError
		if errors.As(readError, &pathError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("read configuration %s: %w", configurationPath, readError)
	}
	var configuration ApplicationConfiguration
	if unmarshalError := viperInstance.Unmarshal(&configuration); unmarshalError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("parse configuration %s: %w", configurationPath, unmarshalError)
	}
	return configuration, nil
}
