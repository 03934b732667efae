// =================================
// File: gmgn/transport.go
// =================================
package gmgn

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

// maxErrorBodyBytes ограничивает тело ошибки, попадающее в сообщение.
const maxErrorBodyBytes = 512

// Transport выполняет один GET и возвращает сырой JSON либо ошибку.
// Реализация владеет жизненным циклом сессии и политикой повторов.
type Transport interface {
	Get(ctx context.Context, rawURL string, params url.Values) ([]byte, error)
}

// HTTPTransport — транспорт с обходом бот-детекции: случайная браузерная
// личность на сессию, пересоздание сессии перед каждым повтором,
// фиксированная задержка между попытками.
//
// Транспорт рассчитан на строго последовательное использование; общего
// состояния между вызовами нет, кроме текущей сессии.
type HTTPTransport struct {
	settings Settings
	logger   *zap.Logger

	// newSession подменяется в тестах для подсчета пересозданий.
	newSession func(timeout time.Duration) *session
	session    *session

	lastRequest time.Time
}

func NewHTTPTransport(settings Settings, logger *zap.Logger) *HTTPTransport {
	settings = settings.withDefaults()
	t := &HTTPTransport{
		settings:   settings,
		logger:     logger.Named("transport"),
		newSession: newSession,
	}
	t.session = t.newSession(settings.Timeout)
	return t
}

// refreshSession отбрасывает текущую сессию и создает новую со свежей
// браузерной личностью и пустым cookie jar.
func (t *HTTPTransport) refreshSession() {
	t.session = t.newSession(t.settings.Timeout)
	t.logger.Debug("session refreshed", zap.String("user_agent", t.session.userAgent))
}

// Get выполняет запрос с политикой повторов: 403/429/503 и сетевые сбои
// считаются временными и повторяются на свежей сессии до MaxRetries раз;
// исчерпание повторов отдает последнюю APIError.
func (t *HTTPTransport) Get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	if err := t.pace(ctx); err != nil {
		return nil, err
	}
	defer func() { t.lastRequest = time.Now() }()

	operation := func() ([]byte, error) {
		return t.tryOnce(ctx, rawURL, params)
	}

	notify := func(err error, delay time.Duration) {
		t.logger.Warn("request failed, retrying on fresh session",
			zap.String("url", rawURL),
			zap.Duration("delay", delay),
			zap.Error(err))
		t.refreshSession()
	}

	body, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(t.settings.RequestDelay)),
		backoff.WithMaxTries(uint(t.settings.MaxRetries+1)),
		backoff.WithNotify(notify))
	if err != nil {
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			apiErr = &APIError{StatusCode: 0, Message: err.Error(), Err: err}
		}
		t.logger.Error("request failed after all retries",
			zap.String("url", rawURL),
			zap.Int("status_code", apiErr.StatusCode),
			zap.Error(err))
		return nil, apiErr
	}
	return body, nil
}

// tryOnce выполняет одну попытку и классифицирует исход: временные сбои
// возвращаются как повторяемые ошибки, остальные — как backoff.Permanent.
func (t *HTTPTransport) tryOnce(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	resp, err := t.session.get(ctx, rawURL, params)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		// Сетевые сбои и таймауты — временные.
		return nil, &APIError{StatusCode: 0, Message: "request failed: " + err.Error(), Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, &APIError{StatusCode: 0, Message: "read body: " + readErr.Error(), Err: readErr}
		}
		return body, nil
	case http.StatusForbidden, http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "cloudflare block detected"}
	default:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, backoff.Permanent(&APIError{StatusCode: resp.StatusCode, Message: string(snippet)})
	}
}

// pace выдерживает RequestDelay между последовательными вызовами Get.
func (t *HTTPTransport) pace(ctx context.Context) error {
	if t.lastRequest.IsZero() {
		return nil
	}
	wait := t.settings.RequestDelay - time.Since(t.lastRequest)
	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
