package render

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/temirov/cattree/internal/tokenizer"
	"github.com/temirov/cattree/internal/utils"
)

const (
	// truncationMarker terminates a content block cut at the line cap.
	truncationMarker = "..."
	// readErrorFormat is the inline marker for a file that cannot be decoded.
	readErrorFormat = "[Error reading file: %v]"
	// errorUndecodableContent describes binary or otherwise undecodable data.
	errorUndecodableContent = "binary or undecodable content"
)

// whitespaceRunPattern matches any run of whitespace for compaction.
var whitespaceRunPattern = regexp.MustCompile(`\s+`)

// contentBlock is one rendered file section together with the figures the
// summary aggregates.
type contentBlock struct {
	text      string
	sizeBytes int64
	tokens    int
	readError error
}

// buildContentBlock reads one file and assembles its content block: the
// root-relative path header, then the content capped at the configured line
// limit and optionally whitespace-compacted. A leading-bytes sniff rejects
// obviously binary files before the full read; the full content is checked
// again because binary data can start past the sniff window. Read or decode
// failures yield the inline error marker and never abort the surrounding
// render.
func buildContentBlock(filePath string, rootDirectoryPath string, options Options) contentBlock {
	relativePath := utils.RelativePathOrSelf(filePath, rootDirectoryPath)

	var fileBytes []byte
	var readError error
	if utils.IsFileBinary(filePath) {
		readError = errors.New(errorUndecodableContent)
	} else {
		fileBytes, readError = os.ReadFile(filePath)
		if readError == nil && utils.IsBinary(fileBytes) {
			readError = errors.New(errorUndecodableContent)
		}
	}
	if readError != nil {
		markerLine := fmt.Sprintf(readErrorFormat, readError)
		return contentBlock{
			text:      relativePath + "\n" + markerLine,
			readError: fmt.Errorf("reading %s: %w", relativePath, readError),
		}
	}

	headerLine := relativePath
	var countedTokens int
	if options.TokenCounter != nil {
		countResult, countError := tokenizer.CountBytes(options.TokenCounter, fileBytes)
		if countError == nil && countResult.Counted {
			countedTokens = countResult.Tokens
			headerLine = fmt.Sprintf(tokenAnnotationFormat, relativePath, countedTokens)
		}
	}

	bodyLines := sliceContentLines(string(fileBytes), options.MaxLines, options.Compact)

	return contentBlock{
		text:      headerLine + "\n" + strings.Join(bodyLines, "\n"),
		sizeBytes: int64(len(fileBytes)),
		tokens:    countedTokens,
	}
}

// sliceContentLines splits content into lines, applies the line cap with the
// truncation marker, and compacts whitespace when requested.
func sliceContentLines(content string, maxLines int, compact bool) []string {
	trimmedContent := strings.TrimSuffix(content, "\n")
	contentLines := strings.Split(trimmedContent, "\n")

	if maxLines > 0 && len(contentLines) > maxLines {
		contentLines = append(contentLines[:maxLines:maxLines], truncationMarker)
	}

	if compact {
		for lineIndex, contentLine := range contentLines {
			collapsedLine := whitespaceRunPattern.ReplaceAllString(contentLine, " ")
			contentLines[lineIndex] = strings.TrimSpace(collapsedLine)
		}
	}

	return contentLines
}
