package pathfilter

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Directories that never contain hand-written route code. Matched by exact
// name only: short tokens like "out" or "dist" must not swallow "routes",
// "checkout", or "distribution".
var defaultExcludeDirs = []string{
	"node_modules", "bower_components", "vendor",
	"dist", "build", "out", ".next", ".nuxt", ".output",
	".git", ".svn", ".hg",
	"coverage", ".nyc_output",
	".idea", ".vscode", ".cache",
	"public", "static", "assets",
	"__pycache__", "tmp",
}

// Matched as substrings so variants like "node_modules.bak" stay excluded.
// Only unambiguous multi-word names belong here.
var excludeDirSubstrings = []string{
	"node_modules", "bower_components", "__pycache__",
}

// Filenames that mark build/lint/package configuration, not application code.
var defaultExcludeFiles = map[string]bool{
	"package.json":         true,
	"package-lock.json":    true,
	"tsconfig.json":        true,
	"jsconfig.json":        true,
	"webpack.config.js":    true,
	"rollup.config.js":     true,
	"vite.config.js":       true,
	"vite.config.ts":       true,
	"babel.config.js":      true,
	"jest.config.js":       true,
	"jest.config.ts":       true,
	"vitest.config.ts":     true,
	"karma.conf.js":        true,
	"gulpfile.js":          true,
	"gruntfile.js":         true,
	"eslint.config.js":     true,
	".eslintrc.js":         true,
	"prettier.config.js":   true,
	"commitlint.config.js": true,
}

var testFilePattern = regexp.MustCompile(`(?i)(^|[._-])(test|spec)\.[a-z]+$|\.(test|spec)\.[a-z]+$`)

// DefaultMaxFileSize bounds how large a file the pipeline will read.
const DefaultMaxFileSize = 2 * 1024 * 1024

// Filter decides which directory entries the walker descends into or keeps.
type Filter struct {
	extensions   map[string]bool
	excludeDirs  []string
	excludeFiles map[string]bool
	maxFileSize  int64
}

// Options configures a Filter. Zero values fall back to defaults.
type Options struct {
	Extensions      []string
	ExcludeDirs     []string
	ExcludePatterns []string
	MaxFileSize     int64
}

// New builds a Filter from options, filling unset fields with defaults.
func New(opts Options) *Filter {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = []string{".js", ".ts", ".mjs"}
	}
	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		extSet[strings.ToLower(e)] = true
	}

	dirs := make([]string, 0, len(defaultExcludeDirs)+len(opts.ExcludeDirs))
	for _, d := range defaultExcludeDirs {
		dirs = append(dirs, strings.ToLower(d))
	}
	for _, d := range opts.ExcludeDirs {
		dirs = append(dirs, strings.ToLower(d))
	}

	files := make(map[string]bool, len(defaultExcludeFiles)+len(opts.ExcludePatterns))
	for f := range defaultExcludeFiles {
		files[f] = true
	}
	for _, f := range opts.ExcludePatterns {
		files[strings.ToLower(f)] = true
	}

	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	return &Filter{
		extensions:   extSet,
		excludeDirs:  dirs,
		excludeFiles: files,
		maxFileSize:  maxSize,
	}
}

// AcceptDir reports whether the walker should descend into the directory.
// Exclusion names match case-insensitively and exactly; the substring list
// additionally catches variants like "node_modules.bak".
func (f *Filter) AcceptDir(name string) bool {
	lower := strings.ToLower(name)
	for _, d := range f.excludeDirs {
		if lower == d {
			return false
		}
	}
	for _, s := range excludeDirSubstrings {
		if strings.Contains(lower, s) {
			return false
		}
	}
	return true
}

// AcceptFile reports whether a file should become a scan candidate.
func (f *Filter) AcceptFile(path string, size int64) bool {
	base := strings.ToLower(filepath.Base(path))

	ext := filepath.Ext(base)
	if !f.extensions[ext] {
		return false
	}
	if f.excludeFiles[base] {
		return false
	}
	if testFilePattern.MatchString(base) {
		return false
	}
	if size > f.maxFileSize {
		return false
	}
	return true
}
