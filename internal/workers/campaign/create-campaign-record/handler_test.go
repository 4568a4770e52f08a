package createcampaignrecord

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"campaign-workers/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func createValidInput() *Input {
	return &Input{
		UserID: "user-42",
		CampaignData: map[string]interface{}{
			"artist":            "Luna Park",
			"song":              "Night Drive",
			"trackId":           "3n3Ppam7vgaVa1iaRUc9Lp",
			"startDate":         "2026-10-01T00:00:00Z",
			"audienceTerritory": "US",
			"budget":            float64(5000),
		},
	}
}

func expectDuplicateCheck(mock sqlmock.Sqlmock, exists bool) {
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("3n3Ppam7vgaVa1iaRUc9Lp", "2026-10-01T00:00:00Z", "US").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(exists))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectDuplicateCheck(mock, false)
	mock.ExpectExec(`INSERT INTO campaigns`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	handler := NewHandler(LoadConfig(), db, createTestLogger(t))
	output, err := handler.Execute(context.Background(), createValidInput())

	require.NoError(t, err)
	assert.NotEmpty(t, output.CampaignID)
	assert.Equal(t, "active", output.CampaignStatus)
	assert.Equal(t, 0, output.Progress)
	assert.NotEmpty(t, output.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectDuplicateCheck(mock, true)

	handler := NewHandler(LoadConfig(), db, createTestLogger(t))
	output, err := handler.Execute(context.Background(), createValidInput())

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateCampaign)
	assert.Nil(t, output)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_InsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectDuplicateCheck(mock, false)
	mock.ExpectExec(`INSERT INTO campaigns`).
		WillReturnError(errors.New("connection reset"))

	handler := NewHandler(LoadConfig(), db, createTestLogger(t))
	output, err := handler.Execute(context.Background(), createValidInput())

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrDatabaseInsertFailed)
	assert.Nil(t, output)
}

func TestHandler_Execute_DuplicateCheckFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnError(errors.New("database unavailable"))

	handler := NewHandler(LoadConfig(), db, createTestLogger(t))
	output, err := handler.Execute(context.Background(), createValidInput())

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrDatabaseInsertFailed)
	assert.Nil(t, output)
}

func TestHandler_Execute_AuditLogFailureIsNotFatal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectDuplicateCheck(mock, false)
	mock.ExpectExec(`INSERT INTO campaigns`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnError(errors.New("audit table locked"))

	handler := NewHandler(LoadConfig(), db, createTestLogger(t))
	output, err := handler.Execute(context.Background(), createValidInput())

	require.NoError(t, err, "a failed audit write must not fail the campaign")
	assert.Equal(t, "active", output.CampaignStatus)
}

// ==========================
// Edge Cases
// ==========================

func TestHandler_EdgeCases(t *testing.T) {
	handler := NewHandler(LoadConfig(), nil, createTestLogger(t))

	t.Run("nil input", func(t *testing.T) {
		output, err := handler.Execute(context.Background(), nil)
		assert.Error(t, err)
		assert.Nil(t, output)
	})

	t.Run("missing campaign data", func(t *testing.T) {
		output, err := handler.Execute(context.Background(), &Input{UserID: "user-42"})
		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrDatabaseInsertFailed)
		assert.Nil(t, output)
	})
}
