// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/cattree/internal/config"
	"github.com/temirov/cattree/internal/filter"
	"github.com/temirov/cattree/internal/render"
	"github.com/temirov/cattree/internal/services/clipboard"
	"github.com/temirov/cattree/internal/tokenizer"
	"github.com/temirov/cattree/internal/traverse"
	"github.com/temirov/cattree/internal/utils"
)

const (
	includePatternFlagName = "include-pattern"
	excludePatternFlagName = "exclude-pattern"
	onlyPathFlagName       = "only"
	noGitignoreFlagName    = "no-gitignore"
	maxLinesFlagName       = "max-lines"
	compactFlagName        = "compact-code"
	tokensFlagName         = "tokens"
	modelFlagName          = "model"
	copyFlagName           = "copy"
	versionFlagName        = "version"
	versionTemplate        = "cattree version: %s\n"
	defaultPath            = "."
	rootUse                = "cattree"
	rootShortDescription   = "cattree command line interface"
	rootLongDescription    = `cattree renders a directory subtree as a textual tree diagram annotated
with each file's content, after applying extension, blacklist, regex,
only-paths, and gitignore-derived filtering.`
	versionFlagDescription = "display application version"
	generateUse            = "generate [path]"
	generateAlias          = "g"
	generateShort          = "render a directory tree with file contents (" + generateAlias + ")"

	// generateLongDescription provides detailed help for the generate command.
	generateLongDescription = `Render the tree diagram and content blocks for a directory.
Filtering combines the fixed extension allow-list, the fixed name blacklist,
user include/exclude regular expressions, an explicit only-paths set, and
exclusion rules from every .gitignore found under the root.`
	// generateUsageExample demonstrates generate command usage.
	generateUsageExample = `  # Render the current directory, two lines per file
  cattree generate -m 2 .

  # Restrict output to selected paths
  cattree generate --only src/main.py --only docs .

  # Exclude tests and copy the result to the clipboard
  cattree generate -e "_test\.go$" --copy .`

	includePatternDescription = "regex pattern selecting files or directories to include"
	excludePatternDescription = "regex pattern selecting files or directories to exclude"
	onlyPathDescription       = "literal root-relative path to keep (repeatable; supersedes include pattern)"
	noGitignoreDescription    = "do not derive exclusions from .gitignore files"
	maxLinesDescription       = "maximum number of content lines per file"
	compactDescription        = "collapse whitespace runs in file content"
	tokensDescription         = "include token counts"
	modelDescription          = "tokenizer model to use for token counting"
	copyDescription           = "copy the rendered output to the clipboard"

	warningClipboardFormat    = "failed to copy output to clipboard: %v"
	warningTraversalFormat    = "some directories could not be listed: %v"
	warningConfigurationLoad  = "failed to load application configuration: %v"
	defaultTokenizerModelName = "gpt-4o"
)

// Execute runs the cattree application.
func Execute(loggerInstance *zap.Logger) error {
	rootCommand := createRootCommand(loggerInstance)
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(loggerInstance *zap.Logger) *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(createGenerateCommand(loggerInstance))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// generateOptions stores flag values for the generate command.
type generateOptions struct {
	includePattern   string
	excludePattern   string
	onlyPaths        []string
	disableGitignore bool
	maxLines         int
	compact          bool
	tokensEnabled    bool
	tokenModel       string
	copyToClipboard  bool
}

// createGenerateCommand returns the generate subcommand.
func createGenerateCommand(loggerInstance *zap.Logger) *cobra.Command {
	var options generateOptions
	options.tokenModel = defaultTokenizerModelName

	generateCommand := &cobra.Command{
		Use:     generateUse,
		Aliases: []string{generateAlias},
		Short:   generateShort,
		Long:    generateLongDescription,
		Example: generateUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			rootDirectoryPath := defaultPath
			if len(arguments) == 1 {
				rootDirectoryPath = arguments[0]
			}
			applyConfigurationDefaults(command, &options, loggerInstance)
			return runGenerate(command, rootDirectoryPath, options, loggerInstance)
		},
	}

	generateCommand.Flags().StringVarP(&options.includePattern, includePatternFlagName, "i", "", includePatternDescription)
	generateCommand.Flags().StringVarP(&options.excludePattern, excludePatternFlagName, "e", "", excludePatternDescription)
	generateCommand.Flags().StringArrayVar(&options.onlyPaths, onlyPathFlagName, nil, onlyPathDescription)
	generateCommand.Flags().BoolVar(&options.disableGitignore, noGitignoreFlagName, false, noGitignoreDescription)
	generateCommand.Flags().IntVarP(&options.maxLines, maxLinesFlagName, "m", 0, maxLinesDescription)
	generateCommand.Flags().BoolVarP(&options.compact, compactFlagName, "c", false, compactDescription)
	generateCommand.Flags().BoolVar(&options.tokensEnabled, tokensFlagName, false, tokensDescription)
	generateCommand.Flags().StringVar(&options.tokenModel, modelFlagName, defaultTokenizerModelName, modelDescription)
	generateCommand.Flags().BoolVar(&options.copyToClipboard, copyFlagName, false, copyDescription)
	return generateCommand
}

// applyConfigurationDefaults overlays file-supplied defaults onto flags the
// user did not set on the command line. Flags always win over file values.
func applyConfigurationDefaults(command *cobra.Command, options *generateOptions, loggerInstance *zap.Logger) {
	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{})
	if loadError != nil {
		if loggerInstance != nil {
			loggerInstance.Warn(fmt.Sprintf(warningConfigurationLoad, loadError))
		}
		return
	}
	generateConfiguration := applicationConfiguration.Generate

	flagSet := command.Flags()
	if !flagSet.Changed(includePatternFlagName) && generateConfiguration.IncludePattern != utils.EmptyString {
		options.includePattern = generateConfiguration.IncludePattern
	}
	if !flagSet.Changed(excludePatternFlagName) && generateConfiguration.ExcludePattern != utils.EmptyString {
		options.excludePattern = generateConfiguration.ExcludePattern
	}
	if !flagSet.Changed(noGitignoreFlagName) && generateConfiguration.UseGitignore != nil {
		options.disableGitignore = !*generateConfiguration.UseGitignore
	}
	if !flagSet.Changed(maxLinesFlagName) && generateConfiguration.MaxLines != nil {
		options.maxLines = *generateConfiguration.MaxLines
	}
	if !flagSet.Changed(compactFlagName) && generateConfiguration.Compact != nil {
		options.compact = *generateConfiguration.Compact
	}
	if !flagSet.Changed(copyFlagName) && generateConfiguration.Clipboard != nil {
		options.copyToClipboard = *generateConfiguration.Clipboard
	}
	if !flagSet.Changed(tokensFlagName) && generateConfiguration.Tokens.Enabled != nil {
		options.tokensEnabled = *generateConfiguration.Tokens.Enabled
	}
	if !flagSet.Changed(modelFlagName) && generateConfiguration.Tokens.Model != utils.EmptyString {
		options.tokenModel = generateConfiguration.Tokens.Model
	}
}

// runGenerate executes one generate invocation end to end: filter assembly,
// traversal, rendering, and output.
func runGenerate(command *cobra.Command, rootDirectoryPath string, options generateOptions, loggerInstance *zap.Logger) error {
	filterConfig, configurationError := config.NewFilterConfig(rootDirectoryPath, config.Options{
		IncludePattern: options.includePattern,
		ExcludePattern: options.excludePattern,
		OnlyPaths:      options.onlyPaths,
		UseGitignore:   !options.disableGitignore,
		MaxLines:       options.maxLines,
		Compact:        options.compact,
	})
	if configurationError != nil {
		return configurationError
	}

	pathFilter := filter.NewPathFilter(rootDirectoryPath, filterConfig, filter.DefaultRuleTables())

	walker, walkError := traverse.Walk(rootDirectoryPath, pathFilter)
	if walkError != nil {
		return walkError
	}
	entries := walker.Drain()
	if traversalError := walker.Err(); traversalError != nil && loggerInstance != nil {
		loggerInstance.Warn(fmt.Sprintf(warningTraversalFormat, traversalError))
	}

	renderOptions := render.Options{
		MaxLines: filterConfig.MaxLines,
		Compact:  filterConfig.Compact,
	}
	if options.tokensEnabled {
		tokenCounter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: options.tokenModel})
		if counterError != nil {
			return counterError
		}
		renderOptions.TokenCounter = tokenCounter
		renderOptions.TokenModel = resolvedModel
	}

	renderedOutput, renderError := render.Render(entries, rootDirectoryPath, renderOptions)
	fmt.Fprintln(command.OutOrStdout(), renderedOutput)

	if options.copyToClipboard {
		clipboardService := clipboard.NewService()
		if copyError := clipboardService.Copy(renderedOutput); copyError != nil && loggerInstance != nil {
			loggerInstance.Warn(fmt.Sprintf(warningClipboardFormat, copyError))
		}
	}

	return renderError
}
