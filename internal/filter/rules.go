package filter

import "regexp"

// RuleTables carries the static pattern tables applied before any
// user-supplied filtering. They are injected rather than read from package
// globals so tests can substitute their own tables.
type RuleTables struct {
	// Blacklist rejects a candidate unconditionally when its base name
	// matches any entry.
	Blacklist []*regexp.Regexp
	// AllowedFileNames admits a regular file only when its base name matches
	// at least one entry. Directories are exempt so they stay traversable.
	AllowedFileNames []*regexp.Regexp
}

// DefaultRuleTables returns the stock tables: hidden dot-names and
// build-artifact cache directories are blacklisted, and the allow-list
// admits common source and documentation file extensions plus a handful of
// well-known extensionless build files.
func DefaultRuleTables() RuleTables {
	return RuleTables{
		Blacklist: []*regexp.Regexp{
			regexp.MustCompile(`^\..+$`),
			regexp.MustCompile(`^__pycache__$`),
			regexp.MustCompile(`^node_modules$`),
		},
		AllowedFileNames: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\.(py|go|js|jsx|ts|tsx|java|kt|c|h|cc|cpp|hpp|rs|rb|php|swift|scala|sh|bash|sql|proto|html|css|scss|md|rst|txt|ya?ml|json|toml|cfg|ini|xml|csv)$`),
			regexp.MustCompile(`^(Makefile|Dockerfile|LICENSE|README)$`),
		},
	}
}
