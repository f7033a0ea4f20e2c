// Package telemetry настраивает structured logging (slog) и метрики
// Prometheus для всех компонентов laserfarm.
package telemetry
