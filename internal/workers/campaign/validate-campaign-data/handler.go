// internal/workers/campaign/validate-campaign-data/handler.go
package validatecampaigndata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"

	"campaign-workers/internal/common/logger"
	"campaign-workers/internal/common/metrics"
)

const (
	TaskType = "validate-campaign-data"
)

var (
	ErrCampaignValidationFailed = errors.New("CAMPAIGN_VALIDATION_FAILED")
)

type Handler struct {
	config *Config
	schema *gojsonschema.Schema
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(campaignSchema))
	if err != nil {
		panic(fmt.Sprintf("campaign schema does not compile: %v", err))
	}
	return &Handler{
		config: config,
		schema: schema,
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
		h.failJob(client, job, "PARSE_ERROR", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "CAMPAIGN_VALIDATION_FAILED", err.Error())
		return
	}

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
		h.logger.Error("failed to complete job", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil || input.CampaignData == nil {
		return nil, fmt.Errorf("%w: campaignData is required", ErrCampaignValidationFailed)
	}

	result, err := h.schema.Validate(gojsonschema.NewGoLoader(input.CampaignData))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCampaignValidationFailed, err)
	}

	var validationErrors []ValidationError
	for _, desc := range result.Errors() {
		validationErrors = append(validationErrors, ValidationError{
			Field:   desc.Field(),
			Code:    strings.ToUpper(desc.Type()),
			Message: desc.Description(),
		})
	}

	validationErrors = append(validationErrors, h.validateStartDate(input.CampaignData)...)

	isValid := len(validationErrors) == 0
	h.logger.Info("validation completed", map[string]interface{}{
		"isValid":    isValid,
		"errorCount": len(validationErrors),
	})

	if validationErrors == nil {
		validationErrors = []ValidationError{}
	}

	// An invalid campaign is a regular outcome, not a job failure. The
	// process branches on isValid and the field-level errors travel with it.
	output := &Output{
		IsValid:          isValid,
		ValidationErrors: validationErrors,
	}
	if isValid {
		output.ValidatedData = input.CampaignData
	}
	return output, nil
}

// validateStartDate does the checks json-schema format validation leaves
// loose: the date must parse as RFC3339 and not lie in the past.
func (h *Handler) validateStartDate(data map[string]interface{}) []ValidationError {
	raw, ok := data["startDate"].(string)
	if !ok || raw == "" {
		return nil
	}

	startDate, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return []ValidationError{{
			Field:   "startDate",
			Code:    "INVALID_FORMAT",
			Message: "startDate must be an RFC3339 timestamp",
		}}
	}

	if startDate.Before(time.Now().Truncate(24 * time.Hour)) {
		return []ValidationError{{
			Field:   "startDate",
			Code:    "DATE_IN_PAST",
			Message: "startDate cannot be in the past",
		}}
	}

	return nil
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, _ = client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
