// Package orchestrator выполняет batch независимых задач на кластере.
//
// MacroPipeline отвечает за:
//   - Хранение упорядоченного списка задач (pipeline.Task)
//   - Настройку клиента кластера (внешний или локальный)
//   - Конкурентную отправку задач и сбор результатов в порядке отправки
//   - Фиксацию результата каждой задачи (ошибка одной задачи
//     не влияет на остальные и не прерывает запуск)
//   - Отчёт о результатах и выборку упавших задач
package orchestrator
