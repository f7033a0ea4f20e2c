// Package pipeline определяет контракт задачи (Task) и его базовую
// реализацию Pipeline.
//
// Pipeline — упорядоченный список именованных операций, выполняемых
// строго в порядке добавления. Первая упавшая операция завершает
// выполнение; её ошибка классифицируется и попадает в Outcome.
//
// Оркестратор зависит только от интерфейса Task и не знает,
// что именно делают операции внутри.
package pipeline
