// Package scheduler — повторный запуск batch'ей по cron-расписанию.
//
// Используется CLI при флаге --schedule: batch перезапускается
// по расписанию до отмены контекста (SIGINT/SIGTERM).
package scheduler
