package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"wine-classifier-service/internal/adapters/secondary/filestore"
	"wine-classifier-service/internal/config"
	output "wine-classifier-service/internal/core/ports/output"
	"wine-classifier-service/internal/core/services"
	"wine-classifier-service/internal/ml/dataset"
	"wine-classifier-service/internal/ml/forest"
)

const (
	flagDataset    = "dataset"
	flagModelPath  = "model-path"
	flagTestRatio  = "test-ratio"
	flagSeed       = "seed"
	flagEstimators = "estimators"
	flagMaxDepth   = "max-depth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	config.InitLogger(cfg.Logger)

	app := &cli.App{
		Name:  "train",
		Usage: "fit a random forest on the Wine dataset and write the model artifact",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagDataset,
				Usage: "path to wine.data (UCI) or an sklearn CSV; empty uses the built-in copy",
				Value: cfg.Training.DatasetPath,
			},
			&cli.StringFlag{
				Name:  flagModelPath,
				Usage: "where to write the model artifact",
				Value: cfg.Model.Path,
			},
			&cli.Float64Flag{
				Name:  flagTestRatio,
				Usage: "fraction of samples held out for evaluation",
				Value: cfg.Training.TestRatio,
			},
			&cli.Int64Flag{
				Name:  flagSeed,
				Usage: "seed for the split and the forest",
				Value: cfg.Training.Seed,
			},
			&cli.IntFlag{
				Name:  flagEstimators,
				Usage: "number of trees",
				Value: cfg.Training.Estimators,
			},
			&cli.IntFlag{
				Name:  flagMaxDepth,
				Usage: "maximum tree depth, 0 for unlimited",
				Value: cfg.Training.MaxDepth,
			},
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.WithError(err).Error("training failed")
		os.Exit(1)
	}
}

func run(cctx *cli.Context) error {
	seed := cctx.Int64(flagSeed)
	estimators := cctx.Int(flagEstimators)
	maxDepth := cctx.Int(flagMaxDepth)

	store := filestore.NewModelStore(cctx.String(flagModelPath))
	svc := services.NewTrainingService(dataset.NewLoader(), store, func() output.TrainableModel {
		return forest.New(
			forest.WithEstimators(estimators),
			forest.WithMaxDepth(maxDepth),
			forest.WithSeed(seed),
		)
	})

	report, err := svc.Train(cctx.Context, services.TrainingRequest{
		DatasetPath: cctx.String(flagDataset),
		TestRatio:   cctx.Float64(flagTestRatio),
		Seed:        seed,
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"samples":  report.Samples,
		"train":    report.TrainSamples,
		"test":     report.TestSamples,
		"accuracy": report.Accuracy,
	}).Info("training complete")
	fmt.Printf("Training complete. Test accuracy: %.4f\n", report.Accuracy)
	fmt.Printf("Model saved to %s\n", report.ModelPath)
	return nil
}
