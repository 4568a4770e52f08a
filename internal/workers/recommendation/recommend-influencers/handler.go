// internal/workers/recommendation/recommend-influencers/handler.go
package recommendinfluencers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"campaign-workers/internal/common/logger"
	"campaign-workers/internal/common/metrics"
	"campaign-workers/internal/models"
)

const (
	TaskType = "recommend-influencers"

	// Eligible price bands sit inside this fraction of the campaign budget.
	budgetWindowLow  = 0.2
	budgetWindowHigh = 0.8
)

var (
	ErrRecommendationFailed = errors.New("RECOMMENDATION_FAILED")
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

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	start := time.Now()
	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "RECOMMENDATION_FAILED", err.Error())
		return
	}

	h.logger.Info("recommendation completed", map[string]interface{}{
		"poolCount":     output.PoolCount,
		"eligibleCount": output.EligibleCount,
		"returned":      len(output.Influencers),
		"durationMs":    time.Since(start).Milliseconds(),
	})

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

// execute runs the selection pipeline: drop brands and deleted profiles,
// keep candidates whose price band overlaps the budget window (profiles with
// no parseable price are kept rather than dropped), rank by reach and cut
// the shortlist to MaxResults.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrRecommendationFailed)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecommendationFailed, err)
	}

	gender := input.Gender
	if gender == "" {
		gender = h.config.DefaultGender
	}

	minPrice := input.Budget * budgetWindowLow
	maxPrice := input.Budget * budgetWindowHigh

	h.logger.Debug("selection window", map[string]interface{}{
		"region":   input.Region,
		"gender":   gender,
		"budget":   input.Budget,
		"minPrice": minPrice,
		"maxPrice": maxPrice,
	})

	eligible := make([]models.InfluencerProfile, 0, len(input.Candidates))
	for _, candidate := range input.Candidates {
		if candidate.IsBrand || candidate.IsDeleted {
			continue
		}
		priceRange := models.ParsePriceRange(candidate.Price)
		if priceRange != nil && !priceRange.Overlaps(minPrice, maxPrice) {
			continue
		}
		eligible = append(eligible, candidate)
	}

	eligibleCount := len(eligible)
	metrics.RecommendationPoolSize.Observe(float64(len(input.Candidates)))
	metrics.RecommendationEligible.Observe(float64(eligibleCount))

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].ReachScore() > eligible[j].ReachScore()
	})

	if len(eligible) > h.config.MaxResults {
		eligible = eligible[:h.config.MaxResults]
	}

	influencers := make([]RecommendedInfluencer, 0, len(eligible))
	for _, profile := range eligible {
		influencers = append(influencers, RecommendedInfluencer{
			ID:          profile.WireID(),
			Handle:      profile.Handle,
			DisplayName: profile.DisplayName,
			Gender:      profile.Gender,
			Verified:    profile.Verified,
			Price:       profile.Price,
			Reach:       profile.ReachScore(),
		})
	}

	return &Output{
		Influencers:   influencers,
		PoolCount:     len(input.Candidates),
		EligibleCount: eligibleCount,
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
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
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
