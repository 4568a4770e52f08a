// internal/workers/campaign/check-campaign-readiness/handler.go
package checkcampaignreadiness

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"campaign-workers/internal/common/logger"
	"campaign-workers/internal/common/metrics"
)

const (
	TaskType = "check-campaign-readiness"
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
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
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "READINESS_CHECK_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

// execute scores the partially filled campaign form. Weighting:
// basics(30%) + targeting(25%) + budget(25%) + creative(20%). Submission
// unlocks only when every required step is complete.
func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	data := input.CampaignData
	if data == nil {
		data = make(map[string]interface{})
	}

	basics, basicsMissing := h.scoreBasics(data)
	targeting, targetingMissing := h.scoreTargeting(data)
	budget, budgetMissing := h.scoreBudget(data)
	creative, creativeMissing := h.scoreCreative(data)

	finalScore := int(
		float64(basics)*0.30 +
			float64(targeting)*0.25 +
			float64(budget)*0.25 +
			float64(creative)*0.20)

	missing := []string{}
	missing = append(missing, basicsMissing...)
	missing = append(missing, targetingMissing...)
	missing = append(missing, budgetMissing...)
	missing = append(missing, creativeMissing...)

	canSubmit := finalScore >= h.config.SubmitThreshold && len(missing) == 0

	breakdown := ScoreBreakdown{
		Basics:    basics,
		Targeting: targeting,
		Budget:    budget,
		Creative:  creative,
	}

	h.logger.Info("readiness calculated", map[string]interface{}{
		"sessionId": input.SessionID,
		"score":     finalScore,
		"canSubmit": canSubmit,
		"missing":   missing,
	})

	return &Output{
		ReadinessScore: finalScore,
		CanSubmit:      canSubmit,
		MissingFields:  missing,
		ScoreBreakdown: breakdown,
	}, nil
}

func (h *Handler) scoreBasics(data map[string]interface{}) (int, []string) {
	score := 0
	var missing []string

	if h.hasString(data, "artist") {
		score += 25
	} else {
		missing = append(missing, "artist")
	}
	if h.hasString(data, "song") {
		score += 25
	} else {
		missing = append(missing, "song")
	}
	if h.hasString(data, "trackId") {
		score += 25
	} else {
		missing = append(missing, "trackId")
	}
	if h.hasString(data, "startDate") {
		score += 25
	} else {
		missing = append(missing, "startDate")
	}

	return score, missing
}

func (h *Handler) scoreTargeting(data map[string]interface{}) (int, []string) {
	score := 0
	var missing []string

	if h.hasString(data, "audienceTerritory") {
		score += 40
	} else {
		missing = append(missing, "audienceTerritory")
	}
	if h.hasString(data, "profileType") {
		score += 30
	} else {
		missing = append(missing, "profileType")
	}
	if h.hasString(data, "platform") {
		score += 30
	} else {
		missing = append(missing, "platform")
	}

	return score, missing
}

func (h *Handler) scoreBudget(data map[string]interface{}) (int, []string) {
	budget := 0.0
	if raw, ok := data["budget"]; ok {
		switch v := raw.(type) {
		case float64:
			budget = v
		case int:
			budget = float64(v)
		}
	}

	if budget > 0 {
		return 100, nil
	}
	return 0, []string{"budget"}
}

func (h *Handler) scoreCreative(data map[string]interface{}) (int, []string) {
	score := 0
	var missing []string

	if h.hasString(data, "creative") {
		score += 100
	} else {
		missing = append(missing, "creative")
	}

	return score, missing
}

func (h *Handler) hasString(data map[string]interface{}, key string) bool {
	s, ok := data[key].(string)
	return ok && s != ""
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
		h.logger.Error("failed to complete job", map[string]interface{}{
			"error": err,
		})
	}
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
