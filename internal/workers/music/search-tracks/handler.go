// internal/workers/music/search-tracks/handler.go
package searchtracks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"campaign-workers/internal/common/logger"
	"campaign-workers/internal/common/metrics"
	"campaign-workers/internal/models"
)

const (
	TaskType = "search-tracks"
)

var (
	ErrTrackSearchFailed  = errors.New("TRACK_SEARCH_FAILED")
	ErrTrackSearchTimeout = errors.New("TRACK_SEARCH_TIMEOUT")
)

// TrackSearcher is satisfied by the Spotify client.
type TrackSearcher interface {
	SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error)
}

type Handler struct {
	config   *Config
	searcher TrackSearcher
	cache    *redis.Client
	logger   logger.Logger
}

func NewHandler(config *Config, searcher TrackSearcher, cache *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		searcher: searcher,
		cache:    cache,
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		errorCode := "TRACK_SEARCH_FAILED"
		retries := int32(3)
		if errors.Is(err, ErrTrackSearchTimeout) {
			errorCode = "TRACK_SEARCH_TIMEOUT"
			retries = 2
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || input.Query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrTrackSearchFailed)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = h.config.DefaultLimit
	}

	cacheKey := fmt.Sprintf("tracks:search:%s:%d", input.Query, limit)

	if h.cache != nil {
		if cached, err := h.cache.Get(ctx, cacheKey).Result(); err == nil {
			var tracks []models.Track
			if err := json.Unmarshal([]byte(cached), &tracks); err == nil {
				h.logger.Debug("cache hit", map[string]interface{}{
					"query": input.Query,
				})
				return &Output{Tracks: tracks, Total: len(tracks), FromCache: true}, nil
			}
		}
	}

	tracks, err := h.searcher.SearchTracks(ctx, input.Query, limit)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %v", ErrTrackSearchTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTrackSearchFailed, err)
	}

	if h.cache != nil && len(tracks) > 0 {
		if payload, err := json.Marshal(tracks); err == nil {
			if err := h.cache.Set(ctx, cacheKey, payload, h.config.CacheTTL).Err(); err != nil {
				h.logger.Warn("cache write failed", map[string]interface{}{
					"error": err,
				})
			}
		}
	}

	return &Output{Tracks: tracks, Total: len(tracks), FromCache: false}, nil
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
