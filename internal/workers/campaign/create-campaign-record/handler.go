// internal/workers/campaign/create-campaign-record/handler.go
package createcampaignrecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"campaign-workers/internal/common/logger"
	"campaign-workers/internal/common/metrics"
)

const (
	TaskType = "create-campaign-record"
)

var (
	ErrDatabaseInsertFailed = errors.New("DATABASE_INSERT_FAILED")
	ErrDuplicateCampaign    = errors.New("DUPLICATE_CAMPAIGN")
)

type Handler struct {
	config *Config
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "UNKNOWN_ERROR"
		retries := int32(0)
		if errors.Is(err, ErrDatabaseInsertFailed) {
			errorCode = "DATABASE_INSERT_FAILED"
			retries = 3
		} else if errors.Is(err, ErrDuplicateCampaign) {
			errorCode = "DUPLICATE_CAMPAIGN"
			retries = 0
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || input.CampaignData == nil {
		return nil, fmt.Errorf("%w: campaignData is required", ErrDatabaseInsertFailed)
	}

	trackID, _ := input.CampaignData["trackId"].(string)
	startDate, _ := input.CampaignData["startDate"].(string)
	territory, _ := input.CampaignData["audienceTerritory"].(string)

	// A campaign is a duplicate when the same track launches on the same day
	// in the same territory.
	var exists bool
	err := h.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM campaigns
			WHERE track_id = $1 AND start_date = $2 AND audience_territory = $3
		)`, trackID, startDate, territory).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("%w: duplicate check failed: %v", ErrDatabaseInsertFailed, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: campaign already exists for track %s on %s in %s",
			ErrDuplicateCampaign, trackID, startDate, territory)
	}

	campaignID := uuid.New().String()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	campaignDataJSON, err := json.Marshal(input.CampaignData)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal campaign data: %v", ErrDatabaseInsertFailed, err)
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO campaigns (
			id, user_id, track_id, start_date, audience_territory,
			campaign_data, status, progress, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`,
		campaignID,
		input.UserID,
		trackID,
		startDate,
		territory,
		campaignDataJSON,
		"active",
		0,
		createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert failed: %v", ErrDatabaseInsertFailed, err)
	}

	// Audit trail is best effort; a failed write never blocks the campaign.
	auditDetailsJSON, err := json.Marshal(map[string]interface{}{
		"userId":    input.UserID,
		"trackId":   trackID,
		"territory": territory,
	})
	if err != nil {
		h.logger.Warn("failed to marshal audit log details", map[string]interface{}{
			"error": err,
		})
		auditDetailsJSON = []byte("{}")
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"campaign_created",
		"campaign",
		campaignID,
		auditDetailsJSON,
		createdAt,
	)
	if err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":      err,
			"campaignId": campaignID,
		})
	}

	h.logger.Info("campaign record created", map[string]interface{}{
		"campaignId": campaignID,
		"userId":     input.UserID,
		"trackId":    trackID,
		"territory":  territory,
	})

	return &Output{
		CampaignID:     campaignID,
		CampaignStatus: "active",
		Progress:       0,
		CreatedAt:      createdAt,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	} else {
		h.logger.Info("job completed successfully", map[string]interface{}{
			"jobKey": job.Key,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
		"retries":      retries,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
