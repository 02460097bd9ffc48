package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vishnukbarath/sharedtodo/config"
	"github.com/vishnukbarath/sharedtodo/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory SQLite database with the real
// schema. The DSN is derived from the test name so parallel tests never
// share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Email: email, Name: strings.Split(email, "@")[0]}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func newPairingFixture(t *testing.T, db *gorm.DB) (*CoupleService, *ActivityService) {
	t.Helper()
	activity := NewActivityService(db, nil)
	return NewCoupleService(db, activity), activity
}
