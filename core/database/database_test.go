package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "source_manager",
			Driver:         DriverMySQL,
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported")
		assert.Nil(t, db)
	})

	t.Run("SQLite", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: "file:connect_test?mode=memory&cache=shared"})
		assert.NoError(t, err)
		assert.NotNil(t, db)
	})
}
