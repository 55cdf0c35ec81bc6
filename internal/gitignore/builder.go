package gitignore

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/cattree/internal/utils"
)

const (
	commentPrefix        = "#"
	alternationSeparator = "|"
)

// BuildExcludeExpression discovers every file named .gitignore under
// rootDirectoryPath, compiles each pattern line, and joins the resulting
// fragments with alternation. Discovery is best-effort: unreadable files and
// directories are silently skipped, and .git directories are not descended
// into. An empty result set yields the empty string, which callers must
// treat as "matches nothing".
func BuildExcludeExpression(rootDirectoryPath string) string {
	var regexFragments []string

	walkFunction := func(currentPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if directoryEntry.IsDir() {
			if directoryEntry.Name() == utils.GitDirectoryName {
				return filepath.SkipDir
			}
			return nil
		}
		if directoryEntry.Name() != utils.GitIgnoreFileName {
			return nil
		}
		for _, patternLine := range readPatternLines(currentPath) {
			compiledPattern := CompilePattern(patternLine)
			if compiledPattern == nil {
				continue
			}
			regexFragments = append(regexFragments, compiledPattern.RegexSource)
		}
		return nil
	}

	_ = filepath.WalkDir(rootDirectoryPath, walkFunction)

	return strings.Join(utils.DeduplicatePatterns(regexFragments), alternationSeparator)
}

// readPatternLines returns the non-empty, non-comment lines of the ignore
// file at ignoreFilePath in source order. Unreadable files yield no lines.
func readPatternLines(ignoreFilePath string) []string {
	fileHandle, openError := os.Open(ignoreFilePath)
	if openError != nil {
		return nil
	}
	defer fileHandle.Close()

	var patternLines []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		patternLines = append(patternLines, trimmedLine)
	}
	if scanner.Err() != nil {
		return patternLines
	}
	return patternLines
}
