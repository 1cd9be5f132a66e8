// Queue worker: pops enhancement jobs from Redis, runs the pipeline, and
// reports results. Coordinator and workers share a filesystem; jobs carry
// paths and catalog names, not pixels.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"image-enhancement/internal/catalog"
	"image-enhancement/internal/imgio"
	"image-enhancement/internal/pipeline"
	"image-enhancement/internal/queue"
)

// pollRetryDelay keeps a worker from spinning hot when Redis is unreachable.
const pollRetryDelay = 2 * time.Second

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis server address")
	workerID := flag.String("id", "", "Worker ID (defaults to hostname)")
	timeout := flag.Duration("timeout", 30*time.Second, "Job poll timeout")
	catalogFile := flag.String("catalog", "", "Optional TOML file extending the preset/resolution catalogs")
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	flag.Parse()

	logger := initLogger(*debugMode)

	if *workerID == "" {
		hostname, err := os.Hostname()
		if err != nil {
			*workerID = fmt.Sprintf("worker-%d", time.Now().Unix())
		} else {
			*workerID = hostname
		}
	}

	cat := catalog.Default()
	if *catalogFile != "" {
		if err := cat.LoadFile(*catalogFile); err != nil {
			logger.WithError(err).Fatal("Failed to load catalog file")
		}
	}

	logger.WithFields(logrus.Fields{
		"worker_id": *workerID,
		"redis":     *redisAddr,
	}).Info("Worker starting")

	ctx := context.Background()
	q, err := queue.NewRedisQueue(ctx, *redisAddr)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer q.Close()

	loader := imgio.NewLoader(logger)
	pipe := pipeline.New(logger)
	processed := 0

	for {
		job, err := q.PopJob(ctx, *timeout)
		if err != nil {
			logger.WithError(err).Error("Failed to pop job")
			time.Sleep(pollRetryDelay)
			continue
		}
		if job == nil {
			logger.Debug("No job available, waiting...")
			continue
		}
		if job.Type == queue.TypeStop {
			logger.WithField("processed", processed).Info("Stop signal received, shutting down")
			break
		}
		if job.Type != queue.TypeEnhance || job.Input == "" {
			logger.WithField("type", job.Type).Warn("Skipping malformed job")
			continue
		}

		result := runJob(logger, cat, loader, pipe, job)
		result.WorkerID = *workerID
		if err := q.PushResult(ctx, result); err != nil {
			logger.WithError(err).Error("Failed to push result")
		}
		processed++
	}
}

// runJob executes one enhancement job. Failures are reported in the result
// message, never retried: every pipeline failure is structural, so retrying
// the same input is pointless.
func runJob(logger *logrus.Logger, cat *catalog.Catalog, loader *imgio.Loader, pipe *pipeline.Pipeline, job *queue.Job) *queue.Result {
	start := time.Now()
	result := &queue.Result{Input: job.Input, Output: job.Output}

	fail := func(err error) *queue.Result {
		logger.WithError(err).WithField("input", job.Input).Error("Job failed")
		result.Error = err.Error()
		result.ProcessTime = float64(time.Since(start).Microseconds()) / 1000.0
		return result
	}

	preset, err := cat.Preset(job.Preset)
	if err != nil {
		return fail(err)
	}
	target, err := cat.Resolution(job.Resolution)
	if err != nil {
		return fail(err)
	}

	src, err := loader.Load(job.Input)
	if err != nil {
		return fail(err)
	}

	enhanced, err := pipe.Enhance(src, target, preset.Settings)
	if err != nil {
		return fail(err)
	}

	if err := loader.Save(enhanced, job.Output); err != nil {
		return fail(err)
	}

	result.Width = enhanced.Width
	result.Height = enhanced.Height
	result.ProcessTime = float64(time.Since(start).Microseconds()) / 1000.0
	return result
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
