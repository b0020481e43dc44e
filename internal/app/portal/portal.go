// Package portal drives the legacy, server-rendered loyalty portal: it logs in, fetches the history
// and profile pages, hands them to the parser and logs out again.
package portal

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yama6a/pathe-portal/internal/app/parser"
	apperrors "github.com/yama6a/pathe-portal/internal/pkg/errors"
	"github.com/yama6a/pathe-portal/internal/pkg/http"
	"github.com/yama6a/pathe-portal/internal/pkg/model"
	"go.uber.org/zap"
)

const (
	LoginPath        = "/mijn-pathe/inloggen"
	AccountPath      = "/mijn-pathe"
	ReservationsPath = "/mijn-pathe/reserveringen"
	CardHistoryPath  = "/mijn-pathe/kaarthistorie"
	ExportPath       = "/mijn-pathe/historie/export"
	PersonalDataPath = "/mijn-pathe/gegevens"
	LogoutPath       = "/mijn-pathe/uitloggen"

	formUsername = "username"
	formPassword = "password"
)

type Credentials struct {
	Username string
	Password string
}

// Client is one portal session. It must be given an http.Client with its own cookie jar and
// must not be shared between goroutines.
type Client struct {
	httpClient  http.Client
	parser      *parser.Parser
	baseURL     string
	credentials Credentials
	logger      *zap.Logger
}

func NewClient(httpClient http.Client, p *parser.Parser, baseURL string, credentials Credentials, logger *zap.Logger) *Client {
	return &Client{
		httpClient:  httpClient,
		parser:      p,
		baseURL:     strings.TrimRight(baseURL, "/"),
		credentials: credentials,
		logger:      logger,
	}
}

// Login opens the login page for its session cookies, posts the credentials and checks that the
// account page offers a logout link.
func (c *Client) Login(ctx context.Context) error {
	if _, err := c.httpClient.Fetch(ctx, c.url(LoginPath), nil); err != nil {
		return fmt.Errorf("failed to open login page: %w", err)
	}

	form := url.Values{}
	form.Set(formUsername, c.credentials.Username)
	form.Set(formPassword, c.credentials.Password)
	if _, err := c.httpClient.Post(ctx, c.url(LoginPath), form, map[string]string{"Referer": c.url(LoginPath)}); err != nil {
		return fmt.Errorf("failed to post credentials: %w", err)
	}

	account, err := c.httpClient.Fetch(ctx, c.url(AccountPath), nil)
	if err != nil {
		return fmt.Errorf("failed to open account page: %w", err)
	}

	ok, err := hasLogoutLink(account)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: user %q", apperrors.ErrLoginFailed, c.credentials.Username)
	}

	c.logger.Debug("logged in", zap.String("username", c.credentials.Username))
	return nil
}

func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.httpClient.Fetch(ctx, c.url(LogoutPath), nil); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	c.logger.Debug("logged out", zap.String("username", c.credentials.Username))
	return nil
}

func (c *Client) ReservationHistory(ctx context.Context) ([]model.HistoryItem, error) {
	html, err := c.fetchAuthenticated(ctx, ReservationsPath)
	if err != nil {
		return nil, err
	}
	return c.parser.ParseReservations(html) //nolint:wrapcheck // parser errors carry their own context
}

func (c *Client) CardHistory(ctx context.Context) ([]model.HistoryItem, error) {
	html, err := c.fetchAuthenticated(ctx, CardHistoryPath)
	if err != nil {
		return nil, err
	}
	return c.parser.ParseCardHistory(html) //nolint:wrapcheck // parser errors carry their own context
}

func (c *Client) ExportHistory(ctx context.Context) ([]model.HistoryItem, error) {
	text, err := c.httpClient.Fetch(ctx, c.url(ExportPath), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download history export: %w", err)
	}
	return c.parser.ParseExport(text), nil
}

func (c *Client) PersonalData(ctx context.Context) (model.PersonalData, error) {
	html, err := c.fetchAuthenticated(ctx, PersonalDataPath)
	if err != nil {
		return model.PersonalData{}, err
	}
	return c.parser.ParsePersonalData(html) //nolint:wrapcheck // parser errors carry their own context
}

// UpdatePersonalData posts the profile back and returns the profile as the portal shows it afterwards.
func (c *Client) UpdatePersonalData(ctx context.Context, pd *model.PersonalData) (model.PersonalData, error) {
	html, err := c.httpClient.Post(ctx, c.url(PersonalDataPath), pd.FormValues(), map[string]string{"Referer": c.url(PersonalDataPath)})
	if err != nil {
		return model.PersonalData{}, fmt.Errorf("failed to post personal data: %w", err)
	}
	return c.parser.ParsePersonalData(html) //nolint:wrapcheck // parser errors carry their own context
}

// History runs a complete session: login, reservation history, logout. A failed logout is only logged.
func (c *Client) History(ctx context.Context) ([]model.HistoryItem, error) {
	if err := c.Login(ctx); err != nil {
		return nil, err
	}
	defer func() {
		if err := c.Logout(ctx); err != nil {
			c.logger.Warn("logout failed", zap.String("username", c.credentials.Username), zap.Error(err))
		}
	}()

	return c.ReservationHistory(ctx)
}

func (c *Client) fetchAuthenticated(ctx context.Context, path string) (string, error) {
	html, err := c.httpClient.Fetch(ctx, c.url(path), nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", path, err)
	}

	if strings.Contains(html, `name="`+formPassword+`"`) && strings.Contains(html, LoginPath) {
		return "", fmt.Errorf("%w: %s redirected to the login form", apperrors.ErrNotLoggedIn, path)
	}
	return html, nil
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

func hasLogoutLink(html string) (bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false, fmt.Errorf("failed parsing account page: %w", err)
	}
	return doc.Find(`a[href*="` + LogoutPath + `"]`).Length() > 0, nil
}
