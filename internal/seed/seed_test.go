package seed

import (
	"context"
	"testing"

	"github.com/SlpAus/mini-cup-backend/internal/country"
	"github.com/SlpAus/mini-cup-backend/internal/platform/database/dbtest"
	"github.com/SlpAus/mini-cup-backend/internal/platform/validation"
	"github.com/SlpAus/mini-cup-backend/internal/team"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdmins struct {
	emails map[string]bool
}

func (f *fakeAdmins) EnsureAdmin(_ context.Context, _, email, _ string) (bool, error) {
	if f.emails[email] {
		return false, nil
	}
	f.emails[email] = true
	return true, nil
}

func TestRunIsIdempotent(t *testing.T) {
	db := dbtest.New(t, &country.Country{}, &team.Team{})
	admins := &fakeAdmins{emails: map[string]bool{}}

	res, err := Run(context.Background(), db, admins, DefaultAdmin)
	require.NoError(t, err)
	assert.Equal(t, Result{Countries: 6, Teams: 32, AdminCreated: true}, res)

	res, err = Run(context.Background(), db, admins, DefaultAdmin)
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)

	var n int64
	require.NoError(t, db.Model(&team.Team{}).Count(&n).Error)
	assert.Equal(t, int64(32), n)
}

func TestSeedTeamsReferenceSeedCountries(t *testing.T) {
	known := map[string]bool{}
	for _, c := range countries {
		assert.True(t, validation.IsSlug(c.id), c.id)
		known[c.id] = true
	}
	seen := map[string]bool{}
	for _, tm := range teams {
		assert.True(t, known[tm.country], tm.id)
		assert.True(t, validation.IsSlug(tm.id), tm.id)
		assert.False(t, seen[tm.id], "重复的队伍 %s", tm.id)
		seen[tm.id] = true
	}
}

func TestSeedDenormalizesCountry(t *testing.T) {
	db := dbtest.New(t, &country.Country{}, &team.Team{})
	_, err := Run(context.Background(), db, &fakeAdmins{emails: map[string]bool{}}, DefaultAdmin)
	require.NoError(t, err)

	var tm team.Team
	require.NoError(t, db.Where("team_id = ?", "eng1").First(&tm).Error)
	assert.Equal(t, "England", tm.CountryName)
	assert.Equal(t, englandFlag, tm.Flag)
	assert.Zero(t, tm.Goals)
}
