package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ChatExchange{}, &InsightRecord{}))
	return db
}

func TestChatExchangePersistence(t *testing.T) {
	db := testDB(t)

	userID := "7f1c9c4e-0000-4000-8000-000000000001"
	exchange := &ChatExchange{
		UserID:    &userID,
		RequestID: "req-1",
		Sport:     "nba",
		Question:  "How did the Hawks do yesterday?",
		Answer:    "The Celtics beat the Hawks 118-112.",
		ToolTrace: datatypes.JSON(`[{"tool":"get_scoreboard","ok":true}]`),
		Model:     "fake-model",
		LatencyMs: 1200,
	}
	require.NoError(t, db.Create(exchange).Error)
	assert.NotZero(t, exchange.ID)
	assert.False(t, exchange.CreatedAt.IsZero())

	var loaded ChatExchange
	require.NoError(t, db.First(&loaded, exchange.ID).Error)
	assert.Equal(t, exchange.Question, loaded.Question)
	assert.Equal(t, &userID, loaded.UserID)
	assert.JSONEq(t, `[{"tool":"get_scoreboard","ok":true}]`, string(loaded.ToolTrace))
}

func TestChatExchangeAnonymousUser(t *testing.T) {
	db := testDB(t)

	exchange := &ChatExchange{RequestID: "req-2", Question: "nba scores"}
	require.NoError(t, db.Create(exchange).Error)

	var loaded ChatExchange
	require.NoError(t, db.First(&loaded, exchange.ID).Error)
	assert.Nil(t, loaded.UserID)
}

func TestInsightRecordPersistence(t *testing.T) {
	db := testDB(t)

	record := &InsightRecord{
		Sport:    "nfl",
		Subject:  "Player A vs Player B",
		Analysis: "Player A has the edge in PPR formats.",
		Inputs:   datatypes.JSON(`{"edge_ppr":"Player A by 2.10 points per game"}`),
		Fallback: true,
	}
	require.NoError(t, db.Create(record).Error)

	var loaded InsightRecord
	require.NoError(t, db.Where("sport = ?", "nfl").First(&loaded).Error)
	assert.Equal(t, record.Subject, loaded.Subject)
	assert.True(t, loaded.Fallback)
}
