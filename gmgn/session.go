// =================================
// File: gmgn/session.go
// =================================
package gmgn

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

// Пул user-agent строк для маскировки под обычный браузер. Cloudflare
// снимает отпечаток заголовков, поэтому каждая сессия выбирает новую
// случайную личность.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.6533.120 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.6478.185 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.6533.120 Safari/537.36 Edg/127.0.2651.105",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:128.0) Gecko/20100101 Firefox/128.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:127.0) Gecko/20100101 Firefox/127.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.6533.120 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.6478.126 Safari/537.36",
}

// session владеет одним http.Client с cookie jar и случайной браузерной
// личностью. Сессия никогда не мутируется — при сбое она целиком
// пересоздается транспортом.
type session struct {
	client    *http.Client
	userAgent string
}

func newSession(timeout time.Duration) *session {
	// Ошибка возможна только при кастомных PublicSuffixList опциях.
	jar, _ := cookiejar.New(nil)

	return &session{
		client: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		userAgent: userAgents[rand.Intn(len(userAgents))],
	}
}

// get выполняет один GET с браузерными заголовками.
func (s *session) get(ctx context.Context, rawURL string, params url.Values) (*http.Response, error) {
	target := rawURL
	if len(params) > 0 {
		target = rawURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("accept", "application/json, text/plain, */*")
	req.Header.Set("accept-language", "en-US,en;q=0.9")
	req.Header.Set("dnt", "1")
	req.Header.Set("priority", "u=1, i")
	req.Header.Set("referer", "https://gmgn.ai/?chain=sol")
	req.Header.Set("user-agent", s.userAgent)

	return s.client.Do(req)
}
