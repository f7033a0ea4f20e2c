package ops

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/NSafarali/Laserfarm/internal/pipeline"
)

// WriteFileOp — операция записи текста в файл.
//
// Параметры:
//   - path (string, обязательный) — путь к файлу
//   - lines (string или []string) — строки для записи
//   - append (bool) — дописывать в конец вместо перезаписи
type WriteFileOp struct{}

// NewWriteFileOp создаёт новую WriteFileOp.
func NewWriteFileOp() *WriteFileOp {
	return &WriteFileOp{}
}

// Name возвращает имя типа операции.
func (o *WriteFileOp) Name() string {
	return "write_file"
}

// Build строит операцию записи с привязанными параметрами.
func (o *WriteFileOp) Build(params map[string]any) (pipeline.StepFunc, error) {
	path := ParamString(params, "path")
	if path == "" {
		return nil, fmt.Errorf("%w: path is required", ErrInvalidParams)
	}

	lines := ParamStrings(params, "lines")
	appendMode := ParamBool(params, "append", false)

	return func(ctx context.Context) error {
		return WriteLines(path, lines, appendMode)
	}, nil
}

// WriteLines записывает строки в файл, по одной на строку.
// При appendMode=true дописывает в конец файла.
func WriteLines(path string, lines []string, appendMode bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if appendMode {
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return err
	}

	if _, err := f.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// FileWriter собирает Pipeline из трёх операций open/write/close
// над одним файлом. Открытие каталога вместо файла падает на
// операции open — остальные операции не выполняются.
func FileWriter(path string, lines ...string) *pipeline.Pipeline {
	var f *os.File

	return pipeline.New().
		Add("open", func(ctx context.Context) error {
			var err error
			f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
			return err
		}).
		Add("write", func(ctx context.Context) error {
			_, err := f.WriteString(strings.Join(lines, "\n") + "\n")
			return err
		}).
		Add("close", func(ctx context.Context) error {
			return f.Close()
		})
}
