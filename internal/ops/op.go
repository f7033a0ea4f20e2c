package ops

import (
	"github.com/NSafarali/Laserfarm/internal/pipeline"
)

// Builder — фабрика операции одного типа.
//
// Build связывает параметры из batch-файла и возвращает готовую
// к выполнению операцию. Ошибки параметров обнаруживаются на этапе
// сборки, до запуска batch.
type Builder interface {
	// Name возвращает имя типа операции.
	Name() string

	// Build строит операцию с привязанными параметрами.
	Build(params map[string]any) (pipeline.StepFunc, error)
}

// ParamString извлекает строковое значение параметра.
func ParamString(params map[string]any, key string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// ParamFloat извлекает числовое значение параметра.
func ParamFloat(params map[string]any, key string) float64 {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		case int64:
			return float64(n)
		}
	}
	return 0
}

// ParamInt извлекает целочисленное значение параметра.
func ParamInt(params map[string]any, key string) int {
	return int(ParamFloat(params, key))
}

// ParamBool извлекает булево значение параметра.
func ParamBool(params map[string]any, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

// ParamStrings извлекает список строк.
// Одиночная строка трактуется как список из одного элемента.
func ParamStrings(params map[string]any, key string) []string {
	v, ok := params[key]
	if !ok {
		return nil
	}
	switch val := v.(type) {
	case string:
		return []string{val}
	case []string:
		return val
	case []any:
		result := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	}
	return nil
}
