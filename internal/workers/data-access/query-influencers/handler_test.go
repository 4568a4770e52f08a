package queryinfluencers

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"campaign-workers/internal/common/logger"
	"campaign-workers/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func candidatePoolColumns() []string {
	return []string{
		"id", "handle", "display_name", "gender", "is_brand", "is_deleted",
		"verified", "price", "instagram_followers", "tiktok_followers",
		"youtube_followers", "last_location",
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_CandidatePool(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		mockQuery      func(mock sqlmock.Sqlmock)
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name: "default gender and limit",
			input: &Input{
				QueryType: string(models.QueryTypeInfluencerCandidatePool),
			},
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(candidatePoolColumns()).
					AddRow(
						int64(101), "beatsbyluna", "Luna Park", "Female", false, false, true,
						"$1,000 - $3,000", "45,000", "120,000", nil, "Los Angeles",
					).
					AddRow(
						int64(102), "mvmtsounds", "Maya Torres", "Female", false, false, false,
						"< $250", "8,900", nil, "2,100", nil,
					)
				mock.ExpectQuery(`SELECT id, handle, display_name, gender, is_brand, is_deleted, verified, price, instagram_followers, tiktok_followers, youtube_followers, last_location FROM influencer_profiles WHERE gender = \$1 AND is_brand = FALSE AND is_deleted = FALSE ORDER BY id LIMIT \$2`).
					WithArgs("Female", 100).
					WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 2, output.RowCount)
				assert.GreaterOrEqual(t, output.QueryExecutionTime, int64(0))

				candidates := output.Candidates.([]models.InfluencerProfile)
				assert.Len(t, candidates, 2)
				assert.Equal(t, int64(101), candidates[0].ID)
				assert.Equal(t, "beatsbyluna", candidates[0].Handle)
				assert.Equal(t, "$1,000 - $3,000", candidates[0].Price)
				assert.Equal(t, "120,000", *candidates[0].TikTokFollowers)
				assert.Nil(t, candidates[0].YouTubeFollowers)
				assert.Equal(t, "< $250", candidates[1].Price)
				assert.Nil(t, candidates[1].LastLocation)
			},
		},
		{
			name: "explicit gender and limit",
			input: &Input{
				QueryType: string(models.QueryTypeInfluencerCandidatePool),
				Gender:    "Male",
				Limit:     10,
			},
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(candidatePoolColumns()).
					AddRow(
						int64(201), "djrook", "Rook Daniels", "Male", false, false, true,
						"$5,000 >", nil, "890,000", "55,000", "Berlin",
					)
				mock.ExpectQuery(`SELECT id, handle, display_name, gender, is_brand, is_deleted, verified, price, instagram_followers, tiktok_followers, youtube_followers, last_location FROM influencer_profiles WHERE gender = \$1 AND is_brand = FALSE AND is_deleted = FALSE ORDER BY id LIMIT \$2`).
					WithArgs("Male", 10).
					WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 1, output.RowCount)
				candidates := output.Candidates.([]models.InfluencerProfile)
				assert.Equal(t, "Male", candidates[0].Gender)
			},
		},
		{
			name: "limit above cap is clamped",
			input: &Input{
				QueryType: string(models.QueryTypeInfluencerCandidatePool),
				Limit:     500,
			},
			mockQuery: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, handle, display_name, gender, is_brand, is_deleted, verified, price, instagram_followers, tiktok_followers, youtube_followers, last_location FROM influencer_profiles WHERE gender = \$1 AND is_brand = FALSE AND is_deleted = FALSE ORDER BY id LIMIT \$2`).
					WithArgs("Female", 100).
					WillReturnRows(sqlmock.NewRows(candidatePoolColumns()))
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 0, output.RowCount)
			},
		},
		{
			name: "empty pool is not an error",
			input: &Input{
				QueryType: string(models.QueryTypeInfluencerCandidatePool),
			},
			mockQuery: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM influencer_profiles`).
					WithArgs("Female", 100).
					WillReturnRows(sqlmock.NewRows(candidatePoolColumns()))
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 0, output.RowCount)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("failed to create mock: %v", err)
			}
			defer db.Close()

			tt.mockQuery(mock)

			handler := NewHandler(createTestConfig(), db, createTestLogger(t))
			output, err := handler.execute(context.Background(), tt.input)

			assert.NoError(t, err)
			assert.NotNil(t, output)
			assert.NoError(t, mock.ExpectationsWereMet())

			if tt.validateOutput != nil {
				tt.validateOutput(t, output)
			}
		})
	}
}

func TestHandler_Execute_ProfileByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows(candidatePoolColumns()).
		AddRow(
			int64(9007199254740993), "wavelengthkid", "Theo Marsh", "Male",
			false, false, true, "unknown", "310", nil, nil, nil,
		)
	mock.ExpectQuery(`FROM influencer_profiles WHERE id = \$1`).
		WithArgs(int64(9007199254740993)).
		WillReturnRows(rows)

	handler := NewHandler(createTestConfig(), db, createTestLogger(t))
	output, err := handler.execute(context.Background(), &Input{
		QueryType:    string(models.QueryTypeInfluencerProfile),
		InfluencerID: "9007199254740993",
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, output.RowCount)
	profile := output.Candidates.(models.InfluencerProfile)
	assert.Equal(t, int64(9007199254740993), profile.ID)
	assert.Equal(t, "9007199254740993", profile.WireID())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_QueryErrors(t *testing.T) {
	tests := []struct {
		name          string
		input         *Input
		mockQuery     func(mock sqlmock.Sqlmock)
		expectedErr   error
		errorContains string
	}{
		{
			name: "unknown query type",
			input: &Input{
				QueryType: "unknown_query",
			},
			mockQuery:     func(mock sqlmock.Sqlmock) {},
			expectedErr:   ErrInvalidQueryType,
			errorContains: "INVALID_QUERY_TYPE",
		},
		{
			name: "database error",
			input: &Input{
				QueryType: string(models.QueryTypeInfluencerCandidatePool),
			},
			mockQuery: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM influencer_profiles`).
					WithArgs("Female", 100).
					WillReturnError(errors.New("database connection failed"))
			},
			expectedErr:   ErrQueryExecutionFailed,
			errorContains: "QUERY_EXECUTION_FAILED",
		},
		{
			name: "profile not found",
			input: &Input{
				QueryType:    string(models.QueryTypeInfluencerProfile),
				InfluencerID: "42",
			},
			mockQuery: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM influencer_profiles WHERE id = \$1`).
					WithArgs(int64(42)).
					WillReturnError(sql.ErrNoRows)
			},
			expectedErr:   ErrQueryExecutionFailed,
			errorContains: "QUERY_EXECUTION_FAILED",
		},
		{
			name: "missing campaign id",
			input: &Input{
				QueryType: string(models.QueryTypeCampaignDetails),
			},
			mockQuery:     func(mock sqlmock.Sqlmock) {},
			expectedErr:   ErrQueryExecutionFailed,
			errorContains: "QUERY_EXECUTION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("failed to create mock: %v", err)
			}
			defer db.Close()

			if tt.mockQuery != nil {
				tt.mockQuery(mock)
			}

			handler := NewHandler(createTestConfig(), db, createTestLogger(t))
			output, err := handler.execute(context.Background(), tt.input)

			assert.Error(t, err)
			assert.True(t, errors.Is(err, tt.expectedErr) || errors.Is(err, ErrQueryExecutionFailed))
			assert.Contains(t, err.Error(), tt.errorContains)
			assert.Nil(t, output)
		})
	}
}

// ==========================
// Edge Cases
// ==========================

func TestHandler_EdgeCases(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, createTestLogger(t))

	t.Run("nil input", func(t *testing.T) {
		output, err := handler.execute(context.Background(), nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "input cannot be nil")
		assert.Nil(t, output)
	})

	t.Run("empty query type", func(t *testing.T) {
		output, err := handler.execute(context.Background(), &Input{})
		assert.Error(t, err)
		assert.Nil(t, output)
	})

	t.Run("non-numeric influencer id", func(t *testing.T) {
		db, _, err := sqlmock.New()
		if err != nil {
			t.Fatalf("failed to create mock: %v", err)
		}
		defer db.Close()

		handler := NewHandler(createTestConfig(), db, createTestLogger(t))
		output, err := handler.execute(context.Background(), &Input{
			QueryType:    string(models.QueryTypeInfluencerProfile),
			InfluencerID: "not-a-number",
		})
		assert.Error(t, err)
		assert.Nil(t, output)
	})
}
