// Package config assembles the per-invocation filter configuration and the
// application configuration loaded from global and local .cattree.yaml files.
package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/temirov/cattree/internal/gitignore"
	"github.com/temirov/cattree/internal/utils"
)

const (
	// errorInvalidIncludePatternFormat reports an include regex that does not compile.
	errorInvalidIncludePatternFormat = "invalid include pattern %q: %w"
	// errorInvalidExcludePatternFormat reports an exclude regex that does not compile.
	errorInvalidExcludePatternFormat = "invalid exclude pattern %q: %w"
	// errorInvalidMaxLinesFormat reports a non-positive line cap.
	errorInvalidMaxLinesFormat = "max lines must be positive, got %d"

	alternationSeparator = "|"
	pathSeparator        = "/"
	currentDirectoryDot  = "."
)

// Options captures the raw invocation inputs before compilation.
type Options struct {
	IncludePattern string
	ExcludePattern string
	OnlyPaths      []string
	UseGitignore   bool
	MaxLines       int
	Compact        bool
}

// FilterConfig is the compiled, read-only configuration consulted by the
// path filter and the renderer. It is constructed once per invocation and
// never mutated afterwards.
type FilterConfig struct {
	IncludePattern *regexp.Regexp
	ExcludePattern *regexp.Regexp
	OnlyPaths      []string
	UseGitignore   bool
	MaxLines       int
	Compact        bool
}

// NewFilterConfig compiles the invocation options into a FilterConfig. The
// exclude expression unions the user pattern with the gitignore-derived
// expression when gitignore support is enabled. A non-empty only-paths set
// supersedes the include pattern; the two are never both active.
func NewFilterConfig(rootDirectoryPath string, options Options) (FilterConfig, error) {
	if options.MaxLines < 0 {
		return FilterConfig{}, fmt.Errorf(errorInvalidMaxLinesFormat, options.MaxLines)
	}

	filterConfig := FilterConfig{
		UseGitignore: options.UseGitignore,
		MaxLines:     options.MaxLines,
		Compact:      options.Compact,
		OnlyPaths:    normalizeOnlyPaths(options.OnlyPaths),
	}

	if len(filterConfig.OnlyPaths) == 0 && options.IncludePattern != utils.EmptyString {
		compiledInclude, includeError := regexp.Compile(options.IncludePattern)
		if includeError != nil {
			return FilterConfig{}, fmt.Errorf(errorInvalidIncludePatternFormat, options.IncludePattern, includeError)
		}
		filterConfig.IncludePattern = compiledInclude
	}

	var excludeSources []string
	if options.ExcludePattern != utils.EmptyString {
		if _, excludeError := regexp.Compile(options.ExcludePattern); excludeError != nil {
			return FilterConfig{}, fmt.Errorf(errorInvalidExcludePatternFormat, options.ExcludePattern, excludeError)
		}
		excludeSources = append(excludeSources, options.ExcludePattern)
	}
	if options.UseGitignore {
		gitignoreExpression := gitignore.BuildExcludeExpression(rootDirectoryPath)
		if gitignoreExpression != utils.EmptyString {
			excludeSources = append(excludeSources, gitignoreExpression)
		}
	}
	if len(excludeSources) > 0 {
		combinedSource := strings.Join(excludeSources, alternationSeparator)
		compiledExclude, combineError := regexp.Compile(combinedSource)
		if combineError != nil {
			return FilterConfig{}, fmt.Errorf(errorInvalidExcludePatternFormat, combinedSource, combineError)
		}
		filterConfig.ExcludePattern = compiledExclude
	}

	return filterConfig, nil
}

// normalizeOnlyPaths converts the literal only-path entries to clean,
// forward-slash, root-relative form. Empty and duplicate entries are
// dropped; the first occurrence of each path is kept.
func normalizeOnlyPaths(onlyPaths []string) []string {
	var normalizedPaths []string
	for _, onlyPath := range onlyPaths {
		normalizedPath := utils.NormalizePathSeparators(strings.TrimSpace(onlyPath))
		normalizedPath = strings.TrimPrefix(normalizedPath, currentDirectoryDot+pathSeparator)
		normalizedPath = strings.TrimSuffix(normalizedPath, pathSeparator)
		if normalizedPath == utils.EmptyString || normalizedPath == currentDirectoryDot {
			continue
		}
		if utils.ContainsString(normalizedPaths, normalizedPath) {
			continue
		}
		normalizedPaths = append(normalizedPaths, normalizedPath)
	}
	return normalizedPaths
}
