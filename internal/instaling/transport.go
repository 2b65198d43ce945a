// Package instaling implements a client for the Instaling vocabulary practice service.
package instaling

import (
	"context"
	"fmt"
	"log/slog"
	"net/http/cookiejar"
	"time"

	"github.com/avast/retry-go"
	"github.com/tidwall/gjson"
	"golang.org/x/net/publicsuffix"
	"resty.dev/v3"
)

const (
	DefaultBaseURL = "https://instaling.pl"

	loginPath            = "/teacher.php?page=teacherActions"
	dispatcherPath       = "/learning/dispatcher.php?from="
	initSessionPath      = "/ling2/server/actions/init_session.php"
	generateNextWordPath = "/ling2/server/actions/generate_next_word.php"
	audioURLPath         = "/ling2/server/actions/getAudioUrl.php"
	saveAnswerPath       = "/ling2/server/actions/save_answer.php"

	maxRedirects = 10

	// clientVersion is the client version token the service requires on every submitted answer.
	clientVersion = "C65E24B29F60B1221EC23D979C9707D2"
)

type HTTPClientOptions struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// NewHTTPClient creates the client shared by the connector and the session.
// It keeps the login cookies in its jar, so the same client must be used for every call.
func NewHTTPClient(options HTTPClientOptions) (*resty.Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
	})
	if err != nil {
		return nil, fmt.Errorf("cookiejar.New > %w", err)
	}

	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetCookieJar(jar)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects))
	if options.Timeout > 0 {
		client.SetTimeout(options.Timeout)
	}
	if options.UserAgent != "" {
		client.SetHeader("User-Agent", options.UserAgent)
	}
	return client, nil
}

type transport struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
}

type requestFunc func(request *resty.Request) (*resty.Response, error)

// send runs one request. Only idempotent requests are retried, and only for
// network errors and 5xx responses.
func (t transport) send(ctx context.Context, idempotent bool, fn requestFunc) (*resty.Response, error) {
	attempts := uint(1)
	if idempotent {
		attempts += t.maxRetryAttempts
	}

	var response *resty.Response
	err := retry.Do(
		func() error {
			res, err := fn(t.httpClient.R().SetContext(ctx))
			if err != nil {
				return fmt.Errorf("httpClient.R > %w", err)
			}
			if res.IsError() {
				err := fmt.Errorf("response error %d: %s", res.StatusCode(), res.String())
				if res.StatusCode() < 500 {
					return retry.Unrecoverable(err)
				}
				return err
			}
			response = res
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.LastErrorOnly(true),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("retrying request", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	return response, nil
}

func (t transport) postForm(ctx context.Context, path string, form map[string]string, idempotent bool) (*resty.Response, error) {
	slog.Debug("POST", "path", path)
	return t.send(ctx, idempotent, func(request *resty.Request) (*resty.Response, error) {
		return request.SetFormData(form).Post(path)
	})
}

func (t transport) get(ctx context.Context, path string, query map[string]string) (*resty.Response, error) {
	slog.Debug("GET", "path", path)
	return t.send(ctx, true, func(request *resty.Request) (*resty.Response, error) {
		return request.SetQueryParams(query).Get(path)
	})
}

// stringField reads a top level string field from a JSON body.
// A field holding anything other than a string is reported as missing.
func stringField(body string, field string) (string, bool, error) {
	if !gjson.Valid(body) {
		return "", false, fmt.Errorf("invalid JSON response: %s", body)
	}
	result := gjson.Get(body, field)
	if result.Type != gjson.String {
		return "", false, nil
	}
	return result.Str, true, nil
}
