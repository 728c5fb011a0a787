package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routelens/routelens/internal/config"
	"github.com/routelens/routelens/internal/synthesizer"
	"github.com/routelens/routelens/pkg/types"
)

const usersSource = `
const express = require('express');
const router = express.Router();

// Lists every registered user
router.get('/users', (req, res) => {
  res.json(users);
});

router.post('/users', async (req, res) => {
  res.status(201).json(await createUser(req.body));
});

router.get('/users/:id', (req, res) => {
  res.json(findUser(req.params.id));
});

module.exports = router;
`

const healthSource = `
const express = require('express');
const app = express();

app.get('/health', (req, res) => res.json({ ok: true }));
`

const utilSource = `
function slugify(s) {
  return s.toLowerCase().replace(/\s+/g, '-');
}
module.exports = { slugify };
`

func fixtureProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"routes/users.js":         usersSource,
		"app.js":                  healthSource,
		"lib/util.js":             utilSource,
		"node_modules/x/index.js": "module.exports = {}",
		"routes/users.test.js":    "describe('users', () => {})",
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestRunEndToEnd(t *testing.T) {
	cfg := config.Default(fixtureProject(t))
	result, err := New(cfg, synthesizer.New()).Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 4, result.Stats.TotalRoutes)
	assert.Equal(t, []string{"express"}, result.Stats.FrameworksDetected)
	assert.Equal(t, 2, result.Stats.FilesWithRoutes)

	doc := result.Document
	require.NotNil(t, doc)
	assert.Equal(t, 4, doc.TotalRoutes)
	assert.Contains(t, doc.Paths, "/users")
	assert.Contains(t, doc.Paths, "/users/{id}")
	assert.Contains(t, doc.Paths, "/health")

	users := doc.Paths["/users"]
	require.NotNil(t, users.Get)
	require.NotNil(t, users.Post)
	assert.Equal(t, "List users", users.Get.Summary)
	assert.Equal(t, "Lists every registered user", users.Get.Description)

	assert.Equal(t, []string{"express"}, doc.FrameworksDetected)
	assert.Equal(t, 3, doc.HTTPMethodCounts[types.MethodGet])
	assert.Equal(t, 1, doc.HTTPMethodCounts[types.MethodPost])
}

func TestRunInvalidRoot(t *testing.T) {
	cfg := config.Default(filepath.Join(t.TempDir(), "missing"))
	_, err := New(cfg, synthesizer.New()).Run(context.Background())
	assert.ErrorIs(t, err, config.ErrInvalidRoot)
}

func TestRunEmptyProject(t *testing.T) {
	cfg := config.Default(t.TempDir())
	result, err := New(cfg, synthesizer.New()).Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, result.Stats.TotalRoutes)
	require.NotNil(t, result.Document)
	assert.Empty(t, result.Document.Paths)
	assert.Equal(t, "3.0.3", result.Document.OpenAPI)
}

func TestRunIdempotentOutput(t *testing.T) {
	cfg := config.Default(fixtureProject(t))

	first, err := New(cfg, synthesizer.New()).Run(context.Background())
	require.NoError(t, err)
	second, err := New(cfg, synthesizer.New()).Run(context.Background())
	require.NoError(t, err)

	out1, err := first.Document.Encode("json")
	require.NoError(t, err)
	out2, err := second.Document.Encode("json")
	require.NoError(t, err)
	assert.Equal(t, string(out1), string(out2))
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.Default(fixtureProject(t))
	_, err := New(cfg, synthesizer.New()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
