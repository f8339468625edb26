package cadsentinel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/cadsentinel/ai"
)

func openTestDatabase(t *testing.T) *Database {
	t.Helper()

	db, err := NewDatabase("", WithInMemory(), WithMode(ai.ModeLocal))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDatabaseInMemory(t *testing.T) {
	db := openTestDatabase(t)

	assert.Equal(t, ai.ModeLocal, db.ProviderMode())
	assert.NotNil(t, db.VersionRepository())
	assert.NotNil(t, db.EntityRepository())
	assert.NotNil(t, db.SummaryRepository())
	assert.NotNil(t, db.ChunkRepository())
	assert.NotNil(t, db.FileArtifactRepository())
}

func TestDatabaseConstructors(t *testing.T) {
	db := openTestDatabase(t)

	assert.NotNil(t, db.NewIngestionPipeline())

	searcher, err := db.NewSearcher()
	require.NoError(t, err)
	assert.NotNil(t, searcher)

	assembler, err := db.NewAssembler()
	require.NoError(t, err)
	assert.NotNil(t, assembler)

	var buf bytes.Buffer
	reembedder, err := db.NewReembedder(nil, &buf)
	require.NoError(t, err)
	assert.NotNil(t, reembedder)
}

func TestDatabaseProviderSwitch(t *testing.T) {
	db := openTestDatabase(t)

	err := db.UseProvider(ai.Mode("bogus"))
	assert.ErrorIs(t, err, ai.ErrUnknownMode)
	assert.Equal(t, ai.ModeLocal, db.ProviderMode())

	require.NoError(t, db.UseProvider(ai.ModeLocal))
	assert.Equal(t, ai.ModeLocal, db.ProviderMode())
}

func TestDatabaseConfigOverrides(t *testing.T) {
	local := ai.NewConfig(ai.ModeLocal,
		ai.WithHost("http://localhost:8080"),
		ai.WithEmbeddingModel("nomic-embed-text"),
	)

	db, err := NewDatabase("", WithInMemory(), WithMode(ai.ModeLocal), WithLocalConfig(local))
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, ai.ModeLocal, db.ProviderMode())
}
