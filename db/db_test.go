package db

import (
	"context"
	"testing"

	"github.com/getAlby/lnpaywall/db/migrations"
	"github.com/getAlby/lnpaywall/db/models"
	"github.com/getAlby/lnpaywall/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/migrate"
)

func TestOpenRejectsUnknownScheme(t *testing.T) {
	_, err := Open(&service.Config{DatabaseUri: "mysql://localhost/paywall"})
	assert.Error(t, err)
}

func TestOpenSqliteAndMigrate(t *testing.T) {
	ctx := context.Background()
	dbConn, err := Open(&service.Config{DatabaseUri: "file::memory:?cache=shared"})
	require.NoError(t, err)
	defer dbConn.Close()

	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	require.NoError(t, migrator.Init(ctx))
	_, err = migrator.Migrate(ctx)
	require.NoError(t, err)

	payment := &models.Payment{
		ID:           "a6d0e0b4-4d7e-4a1e-9b7e-8c8b0c1f6a11",
		Request:      "lnbcrt1",
		Hash:         "00",
		ResourceType: "post",
		ResourceID:   "p1",
	}
	_, err = dbConn.NewInsert().Model(payment).Exec(ctx)
	require.NoError(t, err)

	// request is unique
	duplicate := *payment
	duplicate.ID = "c0a1b2c3-0000-4000-8000-000000000000"
	_, err = dbConn.NewInsert().Model(&duplicate).Exec(ctx)
	assert.Error(t, err)
}
