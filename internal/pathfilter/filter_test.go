package pathfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcceptDir(t *testing.T) {
	f := New(Options{})

	tests := []struct {
		name string
		dir  string
		want bool
	}{
		{"regular source dir", "src", true},
		{"routes dir", "routes", true},
		{"about dir", "about", true},
		{"checkout dir", "checkout", true},
		{"layout dir", "layout", true},
		{"distribution dir", "distribution", true},
		{"output dir", "output", true},
		{"node_modules", "node_modules", false},
		{"node_modules uppercase", "NODE_MODULES", false},
		{"node_modules variant", "node_modules.bak", false},
		{"dist", "dist", false},
		{"out", "out", false},
		{"tmp", "tmp", false},
		{"git metadata", ".git", false},
		{"coverage", "coverage", false},
		{"nested next build", ".next", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.AcceptDir(tt.dir))
		})
	}
}

func TestAcceptDirCustomExclusions(t *testing.T) {
	f := New(Options{ExcludeDirs: []string{"generated"}})
	assert.False(t, f.AcceptDir("generated"))
	assert.False(t, f.AcceptDir("Generated"))
	assert.True(t, f.AcceptDir("src"))
}

func TestAcceptFile(t *testing.T) {
	f := New(Options{})

	tests := []struct {
		name string
		path string
		size int64
		want bool
	}{
		{"plain js", "src/routes.js", 100, true},
		{"typescript", "src/users.ts", 100, true},
		{"esm module", "src/index.mjs", 100, true},
		{"wrong extension", "src/readme.md", 100, false},
		{"no extension", "src/Makefile", 100, false},
		{"test suffix", "src/users.test.js", 100, false},
		{"spec suffix", "src/users.spec.ts", 100, false},
		{"underscore test", "src/users_test.js", 100, false},
		{"manifest", "package.json", 100, false},
		{"webpack config", "webpack.config.js", 100, false},
		{"oversized", "src/bundle.js", DefaultMaxFileSize + 1, false},
		{"at size limit", "src/routes.js", DefaultMaxFileSize, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.AcceptFile(tt.path, tt.size))
		})
	}
}

func TestAcceptFileCustomExtensions(t *testing.T) {
	f := New(Options{Extensions: []string{"jsx", ".tsx"}})
	assert.True(t, f.AcceptFile("src/App.jsx", 10))
	assert.True(t, f.AcceptFile("src/App.tsx", 10))
	assert.False(t, f.AcceptFile("src/app.js", 10))
}

func TestAcceptFileCustomMaxSize(t *testing.T) {
	f := New(Options{MaxFileSize: 512})
	assert.True(t, f.AcceptFile("src/small.js", 512))
	assert.False(t, f.AcceptFile("src/big.js", 513))
}
