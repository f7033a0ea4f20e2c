// Package cli — команды CLI laserfarm: загрузка batch-файла,
// запуск batch'а на локальном кластере, отчёт о результатах
// и опциональные sink'и (PostgreSQL, RabbitMQ).
package cli
