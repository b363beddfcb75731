package startup

import (
	"testing"

	"github.com/SlpAus/mini-cup-backend/internal/country"
	"github.com/SlpAus/mini-cup-backend/internal/game"
	"github.com/SlpAus/mini-cup-backend/internal/platform/database/dbtest"
	"github.com/SlpAus/mini-cup-backend/internal/platform/metadata"
	"github.com/SlpAus/mini-cup-backend/internal/team"
	"github.com/SlpAus/mini-cup-backend/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeApplicationMigratesEverything(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, InitializeApplication(db))
	// 重复执行不应出错
	require.NoError(t, InitializeApplication(db))

	for _, model := range []any{
		&metadata.Metadata{}, &country.Country{}, &team.Team{},
		&game.GameSession{}, &game.Goal{}, &user.User{},
	} {
		assert.True(t, db.Migrator().HasTable(model), "%T", model)
	}
}
