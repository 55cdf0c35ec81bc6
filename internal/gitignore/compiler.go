// Package gitignore compiles gitignore-style glob patterns into regular
// expression fragments and unions every .gitignore found under a root into
// one combined exclusion expression.
//
// The translation is a deliberate approximation of gitignore semantics: all
// discovered files are flattened into a single root-relative expression, and
// negation patterns are not supported.
package gitignore

import (
	"regexp"
	"strings"
)

const (
	rootAnchorPrefix     = "/"
	directorySuffix      = "/"
	escapedDoubleStar    = `\*\*`
	escapedSingleStar    = `\*`
	escapedQuestionMark  = `\?`
	anySequence          = ".*"
	segmentSequence      = "[^/]*"
	segmentSingleChar    = "[^/]"
	anySegmentPrefix     = "(?:^|.*/)"
	optionalDescendants  = "(?:/.*)?"
	expressionTerminator = "$"
	rootAnchor           = "^"
)

// CompiledPattern is the compiled form of one gitignore glob line.
type CompiledPattern struct {
	RegexSource    string
	AnchoredToRoot bool
	DirectoryOnly  bool
}

// CompilePattern converts one gitignore-style glob into a regular expression
// fragment matched against root-relative, slash-separated paths. Patterns
// that would exclude everything ("*" or "**" alone) compile to nil and are
// dropped by the caller.
func CompilePattern(pattern string) *CompiledPattern {
	trimmedPattern := strings.TrimSpace(pattern)
	if isMeaninglessPattern(trimmedPattern) {
		return nil
	}

	directoryOnly := strings.HasSuffix(trimmedPattern, directorySuffix)
	trimmedPattern = strings.TrimSuffix(trimmedPattern, directorySuffix)

	anchoredToRoot := strings.HasPrefix(trimmedPattern, rootAnchorPrefix)
	trimmedPattern = strings.TrimPrefix(trimmedPattern, rootAnchorPrefix)

	if isMeaninglessPattern(trimmedPattern) {
		return nil
	}

	// Escape regex metacharacters first so the glob rewrites below cannot be
	// corrupted by literal text, then reintroduce glob semantics widest
	// construct first.
	escapedPattern := regexp.QuoteMeta(trimmedPattern)
	expressionBody := strings.ReplaceAll(escapedPattern, escapedDoubleStar, anySequence)
	expressionBody = strings.ReplaceAll(expressionBody, escapedSingleStar, segmentSequence)
	expressionBody = strings.ReplaceAll(expressionBody, escapedQuestionMark, segmentSingleChar)

	var regexSource string
	switch {
	case anchoredToRoot && directoryOnly:
		regexSource = rootAnchor + expressionBody + optionalDescendants + expressionTerminator
	case anchoredToRoot:
		regexSource = rootAnchor + expressionBody + expressionTerminator
	case directoryOnly:
		regexSource = anySegmentPrefix + expressionBody + optionalDescendants + expressionTerminator
	default:
		regexSource = anySegmentPrefix + expressionBody + expressionTerminator
	}

	return &CompiledPattern{
		RegexSource:    regexSource,
		AnchoredToRoot: anchoredToRoot,
		DirectoryOnly:  directoryOnly,
	}
}

// isMeaninglessPattern reports whether a pattern carries no exclusion value:
// empty lines and the bare wildcards that would exclude every path.
func isMeaninglessPattern(pattern string) bool {
	return pattern == "" || pattern == "*" || pattern == "**"
}
