// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"campaign-workers/internal/common/camunda"
	"campaign-workers/internal/common/config"
	"campaign-workers/internal/common/database"
	"campaign-workers/internal/common/logger"
	"campaign-workers/internal/common/observability"
	"campaign-workers/internal/common/spotify"

	// Data Access Workers (1)
	qi "campaign-workers/internal/workers/data-access/query-influencers"

	// Discovery & Recommendation Workers (2)
	si "campaign-workers/internal/workers/discovery/search-influencers"
	ri "campaign-workers/internal/workers/recommendation/recommend-influencers"

	// Campaign Workers (4)
	ccr "campaign-workers/internal/workers/campaign/check-campaign-readiness"
	cc "campaign-workers/internal/workers/campaign/create-campaign-record"
	sn "campaign-workers/internal/workers/campaign/send-notification"
	vcd "campaign-workers/internal/workers/campaign/validate-campaign-data"

	// Music Workers (1)
	st "campaign-workers/internal/workers/music/search-tracks"

	// Infrastructure Workers (1)
	br "campaign-workers/internal/workers/infrastructure/build-response"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         30 * time.Second,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		// Test the connection
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init External Service Clients ---
	spotifyClient := spotify.NewClient(
		cfg.APIs.Spotify.BaseURL,
		cfg.APIs.Spotify.TokenURL,
		cfg.APIs.Spotify.ClientID,
		cfg.APIs.Spotify.ClientSecret,
		config.GetDuration(cfg.APIs.Spotify.Timeout),
	)

	zapLog.Info("All external service clients initialized")

	// --- START: Register ALL 9 Workers ---

	// --- 1. Data Access Workers (1) ---
	if cfg.Workers[qi.TaskType].Enabled {
		handler := qi.NewHandler(
			&qi.Config{
				Timeout: config.GetDuration(cfg.Workers[qi.TaskType].Timeout),
			},
			pg.GetDB(), log,
		)
		startWorker(zeebeClient, obs,qi.TaskType, cfg.Workers[qi.TaskType], handler.Handle, zapLog)
	}

	// --- 2. Discovery & Recommendation Workers (2) ---
	if cfg.Workers[si.TaskType].Enabled {
		handler := si.NewHandler(
			&si.Config{
				Timeout:      config.GetDuration(cfg.Workers[si.TaskType].Timeout),
				DefaultIndex: "influencer_profiles",
			},
			esClient.Client, log,
		)
		startWorker(zeebeClient, obs,si.TaskType, cfg.Workers[si.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[ri.TaskType].Enabled {
		handler := ri.NewHandler(
			&ri.Config{
				Timeout:       config.GetDuration(cfg.Workers[ri.TaskType].Timeout),
				MaxResults:    20,
				DefaultGender: "Female",
			},
			log,
		)
		startWorker(zeebeClient, obs,ri.TaskType, cfg.Workers[ri.TaskType], handler.Handle, zapLog)
	}

	// --- 3. Campaign Workers (4) ---
	if cfg.Workers[vcd.TaskType].Enabled {
		handler := vcd.NewHandler(
			&vcd.Config{
				Timeout: config.GetDuration(cfg.Workers[vcd.TaskType].Timeout),
			},
			log,
		)
		startWorker(zeebeClient, obs,vcd.TaskType, cfg.Workers[vcd.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[ccr.TaskType].Enabled {
		handler := ccr.NewHandler(
			&ccr.Config{
				SubmitThreshold: 100,
			},
			log,
		)
		startWorker(zeebeClient, obs,ccr.TaskType, cfg.Workers[ccr.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[cc.TaskType].Enabled {
		handler := cc.NewHandler(
			&cc.Config{
				Timeout: config.GetDuration(cfg.Workers[cc.TaskType].Timeout),
			},
			pg.GetDB(), log,
		)
		startWorker(zeebeClient, obs,cc.TaskType, cfg.Workers[cc.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sn.TaskType].Enabled {
		handler, err := sn.NewHandler(
			&sn.Config{
				EmailEnabled: cfg.Notifications.Email.Enabled,
				SMSEnabled:   cfg.Notifications.SMS.Enabled,
				FromEmail:    cfg.Notifications.Email.FromEmail,
				AWSRegion:    cfg.Notifications.AWS.Region,
				Timeout:      config.GetDuration(cfg.Workers[sn.TaskType].Timeout),
			},
			pg.GetDB(), log,
		)
		if err != nil {
			zapLog.Fatal("failed to create send-notification handler", zap.Error(err))
		}
		startWorker(zeebeClient, obs,sn.TaskType, cfg.Workers[sn.TaskType], handler.Handle, zapLog)
	}

	// --- 4. Music Workers (1) ---
	if cfg.Workers[st.TaskType].Enabled {
		handler := st.NewHandler(
			&st.Config{
				Timeout:      config.GetDuration(cfg.Workers[st.TaskType].Timeout),
				CacheTTL:     5 * time.Minute,
				DefaultLimit: 10,
			},
			spotifyClient, redis.GetClient(), log,
		)
		startWorker(zeebeClient, obs,st.TaskType, cfg.Workers[st.TaskType], handler.Handle, zapLog)
	}

	// --- 5. Infrastructure Workers (1) ---
	if cfg.Workers[br.TaskType].Enabled {
		handler := br.NewHandler(
			&br.Config{
				TemplateRegistry: cfg.Template.RegistryPath,
				CacheTTL:         5 * time.Minute,
				AppVersion:       cfg.App.Version,
				Timeout:          config.GetDuration(cfg.Workers[br.TaskType].Timeout),
			},
			log,
		)
		startWorker(zeebeClient, obs,br.TaskType, cfg.Workers[br.TaskType], handler.Handle, zapLog)
	}

	zapLog.Info("All 9 workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	closed := make(chan error, 1)
	go func() {
		closed <- camundaClient.Close()
	}()
	select {
	case err := <-closed:
		if err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	case <-shutdownCtx.Done():
		zapLog.Error("Timed out closing Zeebe client", zap.Error(shutdownCtx.Err()))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, obs *observability.Observability, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	// Every handler invocation feeds the OTel job counter and duration
	// histogram, labelled by task type.
	wrapped := func(jobClient worker.JobClient, job entities.Job) {
		start := time.Now()
		handlerFunc(jobClient, job)
		obs.RecordJobProcessed(context.Background(), taskType)
		obs.RecordJobDuration(context.Background(), taskType, time.Since(start))
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(wrapped).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
