package instaling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"resty.dev/v3"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const expiredMarker = "expired"

// sessionIDParameters are the query parameters carrying the session id, in lookup order.
var sessionIDParameters = []string{"student_id", "child_id"}

type Credentials struct {
	Username string
	Password string
}

type ConnectorConfig struct {
	Credentials      Credentials
	MaxRetryAttempts uint
	// Corrections recorded in earlier runs.
	Corrections []Word
}

// Connector logs in and starts a practice session.
// Its steps must run in order: Login, DiscoverSessionID, StartSession.
// Connect runs all of them.
type Connector struct {
	transport transport
	config    ConnectorConfig
}

func NewConnector(httpClient *resty.Client, config ConnectorConfig) *Connector {
	return &Connector{
		transport: transport{
			httpClient:       httpClient,
			maxRetryAttempts: config.MaxRetryAttempts,
		},
		config: config,
	}
}

func (connector *Connector) Connect(ctx context.Context) (*Session, error) {
	if err := connector.Login(ctx); err != nil {
		return nil, fmt.Errorf("connector.Login > %w", err)
	}
	childID, err := connector.DiscoverSessionID(ctx)
	if err != nil {
		return nil, fmt.Errorf("connector.DiscoverSessionID > %w", err)
	}
	if err := connector.StartSession(ctx, childID); err != nil {
		return nil, fmt.Errorf("connector.StartSession > %w", err)
	}

	slog.Info("practice session started", "child_id", childID)
	return NewSession(connector, childID), nil
}

// Login posts the credentials. The service answers a wrong password with a normal
// page, so a failed login only shows up in DiscoverSessionID.
func (connector *Connector) Login(ctx context.Context) error {
	credentials := connector.config.Credentials
	_, err := connector.transport.postForm(ctx, loginPath, map[string]string{
		"action":       "login",
		"from":         "",
		"log_email":    credentials.Username,
		"log_password": credentials.Password,
	}, false)
	if err != nil {
		return fmt.Errorf("transport.postForm(%s) > %w", loginPath, err)
	}
	return nil
}

// DiscoverSessionID follows the dispatcher redirects and reads the session id from the
// URL it lands on. Landing on a page about an expired session means the login failed.
func (connector *Connector) DiscoverSessionID(ctx context.Context) (string, error) {
	response, err := connector.transport.get(ctx, dispatcherPath, nil)
	if err != nil {
		return "", fmt.Errorf("transport.get(%s) > %w", dispatcherPath, err)
	}
	finalURL := response.RawResponse.Request.URL
	slog.Debug("dispatcher redirected", "url", finalURL.String())

	if strings.Contains(finalURL.String(), expiredMarker) {
		return "", ErrInvalidCredentials
	}
	return childIDFromURL(finalURL)
}

func (connector *Connector) StartSession(ctx context.Context, childID string) error {
	_, err := connector.transport.postForm(ctx, initSessionPath, map[string]string{
		"child_id": childID,
	}, true)
	if err != nil {
		return fmt.Errorf("transport.postForm(%s) > %w", initSessionPath, err)
	}
	return nil
}

// childIDFromURL reads the session id from the page the dispatcher lands on,
// https://instaling.pl/student/pages/mainPage.php?student_id=<id>.
func childIDFromURL(u *url.URL) (string, error) {
	query := u.Query()
	for _, key := range sessionIDParameters {
		if childID := query.Get(key); childID != "" {
			return childID, nil
		}
	}
	return "", fmt.Errorf("%w: no session id in %s", ErrUnexpectedURL, u.String())
}
