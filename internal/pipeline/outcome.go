package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"net"
	"net/url"
)

// ErrorKind — классификация ошибки выполнения операции.
//
// Значение — одно слово без пробелов: оно используется как
// статусный токен в текстовом отчёте оркестратора.
type ErrorKind string

// Виды ошибок.
const (
	// KindNone — ошибки нет (успешное выполнение).
	KindNone ErrorKind = ""

	// KindIO — ошибка файловой системы (например, запись в каталог).
	KindIO ErrorKind = "IOError"

	// KindHTTP — сетевая или HTTP-ошибка.
	KindHTTP ErrorKind = "HTTPError"

	// KindCancelled — выполнение отменено через context.
	KindCancelled ErrorKind = "Cancelled"

	// KindPanic — операция запаниковала.
	KindPanic ErrorKind = "Panic"

	// KindOperation — прочие ошибки операций.
	KindOperation ErrorKind = "OperationError"
)

// Outcome — результат выполнения одной задачи.
type Outcome struct {
	// Label — метка задачи на момент запуска.
	Label string

	// Success — true, если все операции завершились без ошибок.
	Success bool

	// Kind — вид ошибки (KindNone при успехе).
	Kind ErrorKind

	// Detail — текст ошибки с именем упавшей операции.
	Detail string
}

// ErrorPair возвращает пару (вид, детали) для списка errors оркестратора.
func (o Outcome) ErrorPair() ErrorPair {
	if o.Success {
		return ErrorPair{}
	}
	return ErrorPair{Kind: o.Kind, Detail: o.Detail}
}

// StatusToken возвращает статусный токен для текстового отчёта:
// "Completed" при успехе, иначе вид ошибки.
func (o Outcome) StatusToken() string {
	if o.Success {
		return "Completed"
	}
	if o.Kind == KindNone {
		return string(KindOperation)
	}
	return string(o.Kind)
}

// ErrorPair — пара (вид ошибки, детали), выровненная по индексу
// со списком задач оркестратора. Нулевое значение означает успех.
type ErrorPair struct {
	Kind   ErrorKind
	Detail string
}

// IsZero возвращает true, если пара обозначает успешное выполнение.
func (p ErrorPair) IsZero() bool {
	return p.Kind == KindNone && p.Detail == ""
}

// kindedError — ошибка с явно назначенным видом.
type kindedError struct {
	kind ErrorKind
	err  error
}

func (e *kindedError) Error() string { return e.err.Error() }
func (e *kindedError) Unwrap() error { return e.err }

// WithKind оборачивает ошибку, явно назначая ей вид.
// Операции используют это, когда автоматическая классификация
// по типу ошибки не даёт нужного результата.
func WithKind(kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	return &kindedError{kind: kind, err: err}
}

// Classify определяет вид ошибки.
//
// Порядок проверок: явный вид (WithKind) → отмена контекста →
// файловая система → сеть/HTTP → KindOperation.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var kinded *kindedError
	if errors.As(err, &kinded) {
		return kinded.kind
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindCancelled
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return KindIO
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrExist) {
		return KindIO
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return KindHTTP
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindHTTP
	}

	return KindOperation
}
