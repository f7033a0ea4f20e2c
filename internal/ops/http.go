package ops

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/NSafarali/Laserfarm/internal/pipeline"
)

// Таймаут HTTP-запроса по умолчанию.
const defaultHTTPTimeout = 30 * time.Second

// HTTPOp — операция HTTP-запроса.
//
// Параметры:
//   - url (string, обязательный) — адрес запроса
//   - method (string) — HTTP-метод (default: GET)
//   - timeout_sec (number) — таймаут запроса
//   - expect_status (int) — ожидаемый код ответа (default: любой 2xx)
type HTTPOp struct {
	// Client — HTTP-клиент. Если nil, создаётся клиент с таймаутом.
	Client *http.Client
}

// NewHTTPOp создаёт новую HTTPOp.
func NewHTTPOp() *HTTPOp {
	return &HTTPOp{}
}

// Name возвращает имя типа операции.
func (o *HTTPOp) Name() string {
	return "http"
}

// Build строит операцию HTTP-запроса с привязанными параметрами.
func (o *HTTPOp) Build(params map[string]any) (pipeline.StepFunc, error) {
	url := ParamString(params, "url")
	if url == "" {
		return nil, fmt.Errorf("%w: url is required", ErrInvalidParams)
	}

	method := ParamString(params, "method")
	if method == "" {
		method = http.MethodGet
	}

	timeout := defaultHTTPTimeout
	if sec := ParamFloat(params, "timeout_sec"); sec > 0 {
		timeout = time.Duration(sec * float64(time.Second))
	}

	expectStatus := ParamInt(params, "expect_status")

	client := o.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	return func(ctx context.Context) error {
		return doRequest(ctx, client, method, url, expectStatus)
	}, nil
}

// doRequest выполняет запрос и проверяет код ответа.
// Ошибки сети и неожиданные статусы получают вид KindHTTP.
func doRequest(ctx context.Context, client *http.Client, method, url string, expectStatus int) error {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return pipeline.WithKind(pipeline.KindHTTP, err)
	}
	defer resp.Body.Close()

	// Тело не используется, но вычитываем для переиспользования соединения
	io.Copy(io.Discard, resp.Body)

	if expectStatus > 0 {
		if resp.StatusCode != expectStatus {
			return pipeline.WithKind(pipeline.KindHTTP,
				fmt.Errorf("%w: got %d, want %d", ErrHTTPStatus, resp.StatusCode, expectStatus))
		}
		return nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return pipeline.WithKind(pipeline.KindHTTP,
			fmt.Errorf("%w: %d", ErrHTTPStatus, resp.StatusCode))
	}

	return nil
}
