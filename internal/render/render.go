// Package render assembles the final tree diagram and the per-file content
// blocks from a fully drained traversal sequence.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/temirov/cattree/internal/tokenizer"
	"github.com/temirov/cattree/internal/traverse"
	"github.com/temirov/cattree/internal/utils"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	indentUnit          = "    "
	separatorLine       = "----------------------------------------"

	// contentReaderConcurrency caps parallel content reads. Reading is the
	// only safe parallel axis: filter decisions and entry ordering are fixed
	// before any content is touched.
	contentReaderConcurrency = 8

	// tokenAnnotationFormat annotates a content header with its token count.
	tokenAnnotationFormat = "%s (%d tokens)"
	// summaryFormat reports aggregate file, size, and token figures.
	summaryFormat = "%d files, %s, %d tokens (%s)"
)

// Options control content slicing, compaction, and the optional token
// accounting of the rendered files.
type Options struct {
	MaxLines     int
	Compact      bool
	TokenCounter tokenizer.Counter
	TokenModel   string
}

// Render builds the tree text followed by the joined content blocks. The
// entry sequence must already be fully drained: last-sibling connectors can
// only be established once every sibling is known. The returned error is the
// first file that could not be decoded as text; the output is complete
// either way, with an inline marker in the failed file's block.
func Render(entries []traverse.Entry, rootDirectoryPath string, options Options) (string, error) {
	treeLines := buildTreeLines(entries, rootDirectoryPath)

	fileEntries := selectFileEntries(entries)
	contentBlocks := make([]contentBlock, len(fileEntries))

	readGroup := new(errgroup.Group)
	readGroup.SetLimit(contentReaderConcurrency)
	for entryIndex, fileEntry := range fileEntries {
		readGroup.Go(func() error {
			contentBlocks[entryIndex] = buildContentBlock(fileEntry.Path, rootDirectoryPath, options)
			return nil
		})
	}
	_ = readGroup.Wait()

	var outputBuilder strings.Builder
	outputBuilder.WriteString(strings.Join(treeLines, "\n"))
	outputBuilder.WriteString("\n")

	var firstContentError error
	renderedBlocks := make([]string, 0, len(contentBlocks))
	for _, block := range contentBlocks {
		renderedBlocks = append(renderedBlocks, block.text)
		if block.readError != nil && firstContentError == nil {
			firstContentError = block.readError
		}
	}
	outputBuilder.WriteString(strings.Join(renderedBlocks, "\n"+separatorLine+"\n"))

	if options.TokenCounter != nil {
		outputBuilder.WriteString("\n" + separatorLine + "\n")
		outputBuilder.WriteString(buildSummaryLine(contentBlocks, options.TokenModel))
		outputBuilder.WriteString("\n")
	}

	return outputBuilder.String(), firstContentError
}

// buildTreeLines renders the root base name as the tree label followed by
// one line per non-root entry: depth-1 indent units, a connector, the base
// name. The last sibling at each level gets the distinct closing connector.
func buildTreeLines(entries []traverse.Entry, rootDirectoryPath string) []string {
	treeLines := []string{filepath.Base(rootDirectoryPath)}
	for entryIndex, entry := range entries {
		if entry.Depth == 0 {
			continue
		}
		connector := treeBranchConnector
		if isLastSibling(entries, entryIndex) {
			connector = treeLastConnector
		}
		treeLines = append(treeLines, strings.Repeat(indentUnit, entry.Depth-1)+connector+filepath.Base(entry.Path))
	}
	return treeLines
}

// isLastSibling reports whether no later entry shares the depth of the entry
// at entryIndex before the traversal returns to a shallower level.
func isLastSibling(entries []traverse.Entry, entryIndex int) bool {
	currentDepth := entries[entryIndex].Depth
	for followingIndex := entryIndex + 1; followingIndex < len(entries); followingIndex++ {
		followingDepth := entries[followingIndex].Depth
		if followingDepth < currentDepth {
			return true
		}
		if followingDepth == currentDepth {
			return false
		}
	}
	return true
}

// selectFileEntries returns the non-root entries that are regular files.
// Entries that cannot be inspected are kept so their content block carries
// the inline error marker instead of disappearing from the output.
func selectFileEntries(entries []traverse.Entry) []traverse.Entry {
	var fileEntries []traverse.Entry
	for _, entry := range entries {
		if entry.Depth == 0 {
			continue
		}
		entryInformation, statError := os.Stat(entry.Path)
		if statError == nil && entryInformation.IsDir() {
			continue
		}
		fileEntries = append(fileEntries, entry)
	}
	return fileEntries
}

// buildSummaryLine aggregates file count, byte size, and token totals across
// the rendered content blocks.
func buildSummaryLine(contentBlocks []contentBlock, tokenModel string) string {
	var totalFiles int
	var totalBytes int64
	var totalTokens int
	for _, block := range contentBlocks {
		totalFiles++
		totalBytes += block.sizeBytes
		totalTokens += block.tokens
	}
	return fmt.Sprintf(summaryFormat, totalFiles, utils.FormatFileSize(totalBytes), totalTokens, tokenModel)
}
