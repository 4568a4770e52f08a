// internal/workers/infrastructure/build-response/handler.go
package buildresponse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"

	"campaign-workers/internal/common/logger"
	"campaign-workers/internal/common/metrics"
)

const TaskType = "build-response"

// maxSafeInteger is the largest integer a float64 can hold exactly. Anything
// above it must travel as a decimal string or the far side reads a rounded id.
const maxSafeInteger = int64(1) << 53

var (
	ErrTemplateNotFound         = errors.New("TEMPLATE_NOT_FOUND")
	ErrTemplateValidationFailed = errors.New("TEMPLATE_VALIDATION_FAILED")
)

type templateCacheEntry struct {
	template *TemplateDefinition
	loadedAt time.Time
}

type Handler struct {
	config *Config
	logger logger.Logger
	cache  map[string]*templateCacheEntry
	mu     sync.RWMutex
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
		cache:  make(map[string]*templateCacheEntry),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job",
		map[string]interface{}{
			"jobKey":      job.Key,
			"workflowKey": job.ProcessInstanceKey,
		})

	input, err := decodeInput(job.Variables)
	if err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, input)
	if err != nil {
		errorCode := "RESPONSE_BUILD_ERROR"
		if errors.Is(err, ErrTemplateNotFound) {
			errorCode = "TEMPLATE_NOT_FOUND"
		} else if errors.Is(err, ErrTemplateValidationFailed) {
			errorCode = "TEMPLATE_VALIDATION_FAILED"
		}
		h.failJob(client, job, errorCode, err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

// decodeInput parses job variables with UseNumber so integer ids keep their
// full 64-bit value instead of collapsing into a rounded float64.
func decodeInput(variables string) (*Input, error) {
	dec := json.NewDecoder(strings.NewReader(variables))
	dec.UseNumber()

	var input Input
	if err := dec.Decode(&input); err != nil {
		return nil, err
	}
	return &input, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	template, err := h.loadTemplate(input.TemplateId)
	if err != nil {
		return nil, err
	}

	if err := h.validateData(template.Schema, input.Data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateValidationFailed, err)
	}

	responseData := h.substituteTemplate(template.Template, input.Data)

	if responseData == nil {
		h.logger.Error("template substitution resulted in nil root object",
			map[string]interface{}{
				"templateId": input.TemplateId,
				"requestId":  input.RequestId,
			})
		return nil, fmt.Errorf("template substitution resulted in nil root object for template ID: %s", input.TemplateId)
	}

	responseDataMap, ok := responseData.(map[string]interface{})
	if !ok {
		h.logger.Error("template substitution did not return a map for root object",
			map[string]interface{}{
				"templateId": input.TemplateId,
				"requestId":  input.RequestId,
				"resultType": fmt.Sprintf("%T", responseData),
			})
		return nil, fmt.Errorf("expected template root to be an object after substitution, got %T for template ID: %s", responseData, input.TemplateId)
	}

	responseDataMap = normalizeWireNumbers(responseDataMap).(map[string]interface{})

	metadata := ResponseMetadata{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.config.AppVersion,
	}

	payload := ResponsePayload{
		RequestId: input.RequestId,
		Status:    "success",
		Data:      responseDataMap,
		Metadata:  metadata,
	}

	return &Output{Response: payload}, nil
}

func (h *Handler) substituteTemplate(templateData interface{}, inputData map[string]interface{}) interface{} {
	if templateData == nil {
		return nil
	}

	switch v := templateData.(type) {
	case string:
		if len(v) > 4 && v[0] == '{' && v[1] == '{' && v[len(v)-2] == '}' && v[len(v)-1] == '}' {
			key := strings.TrimSpace(v[2 : len(v)-2])
			return h.lookupNestedValue(inputData, key)
		}
		return v
	case map[string]interface{}:
		result := make(map[string]interface{})
		for k, v2 := range v {
			result[k] = h.substituteTemplate(v2, inputData)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = h.substituteTemplate(item, inputData)
		}
		return result
	default:
		return v
	}
}

// normalizeWireNumbers walks the substituted payload and rewrites every
// integer that float64 cannot carry exactly into a decimal string. Smaller
// integers become float64, the usual JSON number shape.
func normalizeWireNumbers(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for k, v2 := range v {
			result[k] = normalizeWireNumbers(v2)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = normalizeWireNumbers(item)
		}
		return result
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return normalizeInt64(n)
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case int64:
		return normalizeInt64(v)
	case int:
		return normalizeInt64(int64(v))
	case int32:
		return float64(v)
	case uint64:
		if v > uint64(maxSafeInteger) {
			return strconv.FormatUint(v, 10)
		}
		return float64(v)
	case float64:
		// A float that arrived holding an oversized integer has already lost
		// precision; pass it through untouched.
		return v
	default:
		return v
	}
}

func normalizeInt64(n int64) interface{} {
	if n > maxSafeInteger || n < -maxSafeInteger {
		return strconv.FormatInt(n, 10)
	}
	return float64(n)
}

func (h *Handler) lookupNestedValue(data map[string]interface{}, key string) interface{} {
	parts := strings.Split(key, ".")
	current := interface{}(data)

	for _, part := range parts {
		currentMap, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}

		val, exists := currentMap[part]
		if !exists {
			return nil
		}

		current = val
	}

	return current
}

func (h *Handler) loadTemplate(id string) (*TemplateDefinition, error) {
	h.mu.RLock()
	if entry, ok := h.cache[id]; ok && time.Since(entry.loadedAt) < h.config.CacheTTL {
		h.mu.RUnlock()
		return entry.template, nil
	}
	h.mu.RUnlock()

	registryBytes, err := os.ReadFile(h.config.TemplateRegistry)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}

	var registry struct {
		Templates []TemplateDefinition `json:"templates"`
	}
	if err := json.Unmarshal(registryBytes, &registry); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}

	for _, t := range registry.Templates {
		if t.ID == id {
			h.mu.Lock()
			h.cache[id] = &templateCacheEntry{
				template: &t,
				loadedAt: time.Now(),
			}
			h.mu.Unlock()
			return &t, nil
		}
	}

	return nil, ErrTemplateNotFound
}

func (h *Handler) validateData(schemaMap, data map[string]interface{}) error {
	if len(schemaMap) == 0 {
		return nil
	}

	schemaLoader := gojsonschema.NewGoLoader(schemaMap)
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("data validation failed: %v", errs)
	}

	return nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{"error": err})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{"error": err})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, _ int32) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
	h.logger.Error("job failed",
		map[string]interface{}{
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
		h.logger.Error("failed to throw error", map[string]interface{}{"error": err})
	}
}
