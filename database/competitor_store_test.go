// backend/database/competitor_store_test.go
package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCompetitorNew(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery("FROM competitors").
		WithArgs("Nike").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO competitors").
		WillReturnResult(sqlmock.NewResult(7, 1))

	competitor, created, err := AddCompetitor("Nike", nil)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(7), competitor.ID)
	assert.Equal(t, "Nike", competitor.PageName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCompetitorExistingIsNoOp(t *testing.T) {
	mock := setupMockDB(t)

	addedAt := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "page_name", "page_id", "added_at"}).
		AddRow(3, "Nike", "page_123", addedAt)
	mock.ExpectQuery("FROM competitors").
		WithArgs("Nike").
		WillReturnRows(rows)

	competitor, created, err := AddCompetitor("Nike", nil)
	require.NoError(t, err)
	assert.False(t, created, "registering an existing name must not insert")
	assert.Equal(t, int64(3), competitor.ID)
	require.NotNil(t, competitor.PageID)
	assert.Equal(t, "page_123", *competitor.PageID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCompetitors(t *testing.T) {
	mock := setupMockDB(t)

	addedAt := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "page_name", "page_id", "added_at"}).
		AddRow(1, "Nike", nil, addedAt).
		AddRow(2, "Adidas", "page_456", addedAt)
	mock.ExpectQuery("FROM competitors").
		WillReturnRows(rows)

	competitors, err := GetCompetitors()
	require.NoError(t, err)
	require.Len(t, competitors, 2)
	assert.Equal(t, "Nike", competitors[0].PageName)
	assert.Nil(t, competitors[0].PageID)
	require.NotNil(t, competitors[1].PageID)
	assert.Equal(t, "page_456", *competitors[1].PageID)
}
