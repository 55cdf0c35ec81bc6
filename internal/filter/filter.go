// Package filter combines the static rule tables, the only-paths set, and
// the user include/exclude patterns into one precedence-ordered accept or
// reject decision per visited path.
package filter

import (
	"path/filepath"
	"strings"

	"github.com/temirov/cattree/internal/config"
	"github.com/temirov/cattree/internal/utils"
)

const pathSeparator = "/"

// PathFilter evaluates every candidate path against the active filter
// configuration. It holds no mutable state: Accepts is a pure function of
// the candidate, the root, and the configuration captured at construction.
type PathFilter struct {
	rootDirectoryPath string
	ruleTables        RuleTables
	filterConfig      config.FilterConfig
}

// NewPathFilter constructs a PathFilter rooted at rootDirectoryPath.
func NewPathFilter(rootDirectoryPath string, filterConfig config.FilterConfig, ruleTables RuleTables) *PathFilter {
	return &PathFilter{
		rootDirectoryPath: rootDirectoryPath,
		ruleTables:        ruleTables,
		filterConfig:      filterConfig,
	}
}

// Accepts reports whether the candidate survives all active rules, applied
// in fixed precedence order: blacklist, extension allow-list (files only),
// only-paths, exclude pattern, include pattern. The first rule that rejects
// decides; an active only-paths set fully determines the outcome and the
// pattern rules are skipped.
func (pathFilter *PathFilter) Accepts(candidatePath string, isDirectory bool) bool {
	baseName := filepath.Base(candidatePath)

	for _, blacklistPattern := range pathFilter.ruleTables.Blacklist {
		if blacklistPattern.MatchString(baseName) {
			return false
		}
	}

	if !isDirectory && !pathFilter.matchesAllowList(baseName) {
		return false
	}

	relativePath := utils.RelativePathOrSelf(candidatePath, pathFilter.rootDirectoryPath)

	if len(pathFilter.filterConfig.OnlyPaths) > 0 {
		return pathFilter.matchesOnlyPaths(relativePath)
	}

	if excludePattern := pathFilter.filterConfig.ExcludePattern; excludePattern != nil {
		if excludePattern.MatchString(baseName) || excludePattern.MatchString(relativePath) {
			return false
		}
	}

	if includePattern := pathFilter.filterConfig.IncludePattern; includePattern != nil {
		if !includePattern.MatchString(baseName) && !includePattern.MatchString(relativePath) {
			return false
		}
	}

	return true
}

// matchesAllowList reports whether a file base name is admitted by the
// extension allow-list. An empty table admits everything.
func (pathFilter *PathFilter) matchesAllowList(baseName string) bool {
	if len(pathFilter.ruleTables.AllowedFileNames) == 0 {
		return true
	}
	for _, allowedPattern := range pathFilter.ruleTables.AllowedFileNames {
		if allowedPattern.MatchString(baseName) {
			return true
		}
	}
	return false
}

// matchesOnlyPaths accepts a candidate that is itself listed, is a
// descendant of a listed directory, or is an ancestor of a listed path.
// Ancestors stay visible so the hierarchy down to the selected leaves is
// preserved in the rendered tree.
func (pathFilter *PathFilter) matchesOnlyPaths(relativePath string) bool {
	for _, onlyPath := range pathFilter.filterConfig.OnlyPaths {
		if relativePath == onlyPath {
			return true
		}
		if strings.HasPrefix(relativePath, onlyPath+pathSeparator) {
			return true
		}
		if strings.HasPrefix(onlyPath, relativePath+pathSeparator) {
			return true
		}
	}
	return false
}
