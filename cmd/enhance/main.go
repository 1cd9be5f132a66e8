// Image enhancement CLI: decodes source images, runs the enhancement
// pipeline, and encodes the results under dpi/preset-tagged names. With
// -redis it enqueues jobs for enhance-worker processes instead of running
// locally.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"image-enhancement/internal/catalog"
	"image-enhancement/internal/imgio"
	"image-enhancement/internal/pipeline"
	"image-enhancement/internal/queue"
)

func main() {
	presetName := flag.String("preset", "Balanced", "Enhancement preset name")
	resolutionName := flag.String("resolution", "Standard Web", "Resolution target name")
	outDir := flag.String("out", ".", "Output directory")
	catalogFile := flag.String("catalog", "", "Optional TOML file extending the preset/resolution catalogs")
	redisAddr := flag.String("redis", "", "Enqueue jobs to this Redis address instead of processing locally")
	stopWorkers := flag.Int("stop-workers", 0, "Send this many stop signals to queue workers and exit (requires -redis)")
	listCatalog := flag.Bool("list", false, "List available presets and resolutions and exit")
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	flag.Parse()

	logger := initLogger(*debugMode)

	cat := catalog.Default()
	if *catalogFile != "" {
		if err := cat.LoadFile(*catalogFile); err != nil {
			logger.WithError(err).Fatal("Failed to load catalog file")
		}
	}

	if *listCatalog {
		printCatalog(cat)
		return
	}

	ctx := context.Background()

	if *redisAddr != "" && *stopWorkers > 0 {
		if err := sendStopSignals(ctx, *redisAddr, *stopWorkers); err != nil {
			logger.WithError(err).Fatal("Failed to send stop signals")
		}
		logger.WithField("count", *stopWorkers).Info("Stop signals sent")
		return
	}

	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: enhance [flags] input.jpg [input2.png ...]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	preset, err := cat.Preset(*presetName)
	if err != nil {
		logger.WithError(err).Fatal("Unknown preset")
	}
	target, err := cat.Resolution(*resolutionName)
	if err != nil {
		logger.WithError(err).Fatal("Unknown resolution")
	}

	logger.WithFields(logrus.Fields{
		"preset":     preset.Name,
		"resolution": target.Name,
		"dpi":        target.DPI,
		"inputs":     len(inputs),
	}).Info("Starting image enhancement")

	if *redisAddr != "" {
		err = enqueueJobs(ctx, logger, *redisAddr, inputs, *outDir, preset, target)
	} else {
		err = processLocally(ctx, logger, inputs, *outDir, preset, target)
	}
	if err != nil {
		logger.WithError(err).Fatal("Enhancement failed")
	}
}

// processLocally enhances every input file, fanning out across files. Each
// file owns its own buffers, so the only shared state is the pipeline's
// logger.
func processLocally(ctx context.Context, logger *logrus.Logger, inputs []string, outDir string, preset catalog.Preset, target catalog.Resolution) error {
	loader := imgio.NewLoader(logger)
	pipe := pipeline.New(logger)

	g, ctx := errgroup.WithContext(ctx)
	for _, input := range inputs {
		input := input
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := loader.Load(input)
			if err != nil {
				return err
			}
			enhanced, err := pipe.Enhance(src, target, preset.Settings)
			if err != nil {
				return fmt.Errorf("enhancing %s: %w", input, err)
			}
			out := filepath.Join(outDir, imgio.OutputName(input, target, preset))
			return loader.Save(enhanced, out)
		})
	}
	return g.Wait()
}

// enqueueJobs pushes one job per input and waits for the matching results.
func enqueueJobs(ctx context.Context, logger *logrus.Logger, addr string, inputs []string, outDir string, preset catalog.Preset, target catalog.Resolution) error {
	q, err := queue.NewRedisQueue(ctx, addr)
	if err != nil {
		return err
	}
	defer q.Close()

	for _, input := range inputs {
		abs, err := filepath.Abs(input)
		if err != nil {
			return err
		}
		out, err := filepath.Abs(filepath.Join(outDir, imgio.OutputName(input, target, preset)))
		if err != nil {
			return err
		}
		job := &queue.Job{
			Type:       queue.TypeEnhance,
			Input:      abs,
			Output:     out,
			Preset:     preset.Name,
			Resolution: target.Name,
		}
		if err := q.PushJob(ctx, job); err != nil {
			return err
		}
		logger.WithField("input", abs).Info("Job enqueued")
	}

	for collected := 0; collected < len(inputs); {
		res, err := q.PopResult(ctx, 30*time.Second)
		if err != nil {
			return err
		}
		if res == nil {
			logger.Info("Waiting for workers...")
			continue
		}
		collected++
		if res.Error != "" {
			logger.WithFields(logrus.Fields{
				"input":  res.Input,
				"worker": res.WorkerID,
				"error":  res.Error,
			}).Error("Job failed")
			continue
		}
		logger.WithFields(logrus.Fields{
			"output":     res.Output,
			"width":      res.Width,
			"height":     res.Height,
			"worker":     res.WorkerID,
			"process_ms": res.ProcessTime,
		}).Info("Job completed")
	}
	return nil
}

func sendStopSignals(ctx context.Context, addr string, count int) error {
	q, err := queue.NewRedisQueue(ctx, addr)
	if err != nil {
		return err
	}
	defer q.Close()

	for i := 0; i < count; i++ {
		if err := q.PushJob(ctx, &queue.Job{Type: queue.TypeStop}); err != nil {
			return err
		}
	}
	return nil
}

func printCatalog(cat *catalog.Catalog) {
	fmt.Println("Presets:")
	for _, p := range cat.Presets() {
		fmt.Printf("  %-12s brightness=%.2f contrast=%.2f sharpness=%.1f deblur=%.1f denoise=%.1f\n",
			p.Name, p.Brightness, p.Contrast, p.Sharpness, p.Deblur, p.Denoise)
	}
	fmt.Println("Resolutions:")
	for _, r := range cat.Resolutions() {
		fmt.Printf("  %-15s %d dpi  %s\n", r.Name, r.DPI, r.Description)
	}
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
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
