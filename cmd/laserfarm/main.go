// Laserfarm — запуск batch'ей независимых пайплайнов на пуле воркеров.
//
// Использование:
//
//	laserfarm run BATCH_FILE [flags]
//
// Batch-файл — JSON со списком пайплайнов; каждый пайплайн — метка
// и упорядоченный список операций (write_file, delay, http).
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/NSafarali/Laserfarm/internal/cli"
	"github.com/NSafarali/Laserfarm/internal/telemetry"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var metricsAddr string

	rootCmd := &cobra.Command{
		Use:           "laserfarm",
		Short:         "Laserfarm — batch pipeline runner",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if metricsAddr == "" {
				return
			}

			// /metrics + /healthz, как у остальных сервисов фермы
			mux := http.NewServeMux()
			mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			mux.Handle("/metrics", promhttp.Handler())

			go func() {
				logger.Info("metrics listening", "addr", metricsAddr)
				if err := http.ListenAndServe(metricsAddr, mux); err != nil {
					logger.Error("metrics server error", "error", err)
				}
			}()
		},
	}

	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :8083)")

	rootCmd.AddCommand(
		cli.NewRunCmd(logger),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
