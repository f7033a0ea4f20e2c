package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/NSafarali/Laserfarm/internal/cluster"
	"github.com/NSafarali/Laserfarm/internal/mq"
	"github.com/NSafarali/Laserfarm/internal/ops"
	"github.com/NSafarali/Laserfarm/internal/orchestrator"
	"github.com/NSafarali/Laserfarm/internal/repo"
	"github.com/NSafarali/Laserfarm/internal/scheduler"
)

// NewRunCmd создаёт команду запуска batch'а.
func NewRunCmd(logger *slog.Logger) *cobra.Command {
	var (
		workers      int
		threads      int
		processes    bool
		outFile      string
		dbURL        string
		mqURL        string
		scheduleExpr string
	)

	cmd := &cobra.Command{
		Use:   "run BATCH_FILE",
		Short: "Run a batch of pipelines on a local cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			batch, err := LoadBatch(args[0])
			if err != nil {
				return err
			}

			tasks, err := batch.Build(ops.DefaultRegistry())
			if err != nil {
				return err
			}

			mp := orchestrator.New(logger)
			if err := mp.SetTasks(tasks); err != nil {
				return err
			}

			err = mp.SetupClient(cluster.Config{
				Mode: cluster.ModeLocal,
				Local: cluster.Options{
					Workers:          workers,
					ThreadsPerWorker: threads,
					Processes:        processes,
				},
				Logger: logger,
			})
			if err != nil {
				return err
			}
			// Локальный кластер создали мы — мы его и закрываем
			defer mp.Client().Cluster().Close()

			// Опциональные sink'и результатов
			var outcomeRepo *repo.OutcomeRepo
			if dbURL != "" {
				pool, err := repo.NewPool(ctx, dbURL)
				if err != nil {
					return fmt.Errorf("connect to database: %w", err)
				}
				defer pool.Close()
				outcomeRepo = repo.NewOutcomeRepo(pool)
				logger.Info("database connected")
			}

			var publisher *mq.Publisher
			if mqURL != "" {
				conn, err := mq.NewConnection(mqURL, logger)
				if err != nil {
					return fmt.Errorf("connect to RabbitMQ: %w", err)
				}
				defer conn.Close()

				if err := mq.SetupTopology(ctx, conn); err != nil {
					logger.Warn("failed to setup topology", "error", err)
				}
				publisher = mq.NewPublisher(conn, logger)
			}

			runOnce := func(ctx context.Context) error {
				if err := mp.Run(ctx); err != nil {
					return err
				}

				if err := mp.WriteOutcome(outFile); err != nil {
					return err
				}

				outcomes := mp.Outcomes()
				if outcomeRepo != nil {
					if err := outcomeRepo.SaveBatch(ctx, mp.ID(), outcomes); err != nil {
						logger.Error("failed to persist outcomes", "error", err)
					}
				}
				if publisher != nil {
					if err := publisher.PublishPipelineOutcomes(ctx, mp.ID(), outcomes); err != nil {
						logger.Error("failed to publish outcomes", "error", err)
					}
					if err := publisher.PublishBatchCompleted(ctx, mp.ID(), outcomes); err != nil {
						logger.Error("failed to publish batch event", "error", err)
					}
				}

				if failed := len(mp.FailedPipelines()); failed > 0 {
					return fmt.Errorf("%d of %d pipelines failed", failed, len(tasks))
				}
				return nil
			}

			if scheduleExpr == "" {
				return runOnce(ctx)
			}

			// Повторный запуск по расписанию до SIGINT/SIGTERM
			repeater, err := scheduler.NewRepeater(scheduleExpr, logger, func() {
				if err := runOnce(ctx); err != nil {
					logger.Error("scheduled run failed", "error", err)
				}
			})
			if err != nil {
				return err
			}

			if err := repeater.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Number of workers (default: all CPUs)")
	cmd.Flags().IntVar(&threads, "threads-per-worker", 1, "Execution slots per worker")
	cmd.Flags().BoolVar(&processes, "processes", false, "Isolate worker scratch directories")
	cmd.Flags().StringVar(&outFile, "out", "", "Write outcome report to file (default: stdout)")
	cmd.Flags().StringVar(&dbURL, "db-url", "", "Persist outcomes to PostgreSQL (DSN)")
	cmd.Flags().StringVar(&mqURL, "mq-url", "", "Publish outcome events to RabbitMQ (URL)")
	cmd.Flags().StringVar(&scheduleExpr, "schedule", "", "Re-run the batch on a cron schedule")

	return cmd
}
