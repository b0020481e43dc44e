// Package api is a typed client for the portal's JSON API.
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/yama6a/pathe-portal/internal/pkg/errors"
	"github.com/yama6a/pathe-portal/internal/pkg/model"
	"go.uber.org/zap"
)

const (
	loginPath        = "/v1/auth/login"
	logoutPath       = "/v1/auth/logout"
	cardsPath        = "/v1/cards"
	cardPath         = "/v1/cards/{number}"
	reservationsPath = "/v1/reservations"

	clientIDHeader = "X-Client-Id"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type cardsResponse struct {
	Cards []model.Card `json:"cards"`
}

type addCardRequest struct {
	Number string `json:"number"`
}

type reservationsResponse struct {
	Reservations []model.APIReservation `json:"reservations"`
}

// Client holds at most one session at a time and is not safe for concurrent logins.
type Client struct {
	rest    *resty.Client
	logger  *zap.Logger
	session model.Session
}

// NewClient creates a client identifying itself with a fresh X-Client-Id.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader(clientIDHeader, uuid.NewString())

	return &Client{rest: rest, logger: logger}
}

// Session returns the current session; its token is empty before Login.
func (c *Client) Session() model.Session {
	return c.session
}

func (c *Client) Login(ctx context.Context, username, password string) (model.Session, error) {
	var out loginResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(loginRequest{Username: username, Password: password}).
		SetResult(&out).
		Post(loginPath)
	if err := checkResponse(resp, err); err != nil {
		return model.Session{}, fmt.Errorf("%w: %w", apperrors.ErrLoginFailed, err)
	}
	if out.Token == "" {
		return model.Session{}, fmt.Errorf("%w: empty token", apperrors.ErrLoginFailed)
	}

	c.session = c.sessionFromToken(out.Token)
	return c.session, nil
}

// sessionFromToken reads expiry and subject from the token. The signature is the server's concern.
func (c *Client) sessionFromToken(token string) model.Session {
	session := model.Session{Token: token}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		c.logger.Warn("session token is not a readable jwt", zap.Error(err))
		return session
	}

	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		session.ExpiresAt = exp.Time
	}
	if sub, err := parsed.Claims.GetSubject(); err == nil {
		session.UserID = sub
	}
	return session
}

func (c *Client) Logout(ctx context.Context) error {
	req, err := c.authorized(ctx)
	if err != nil {
		return err
	}
	if err := checkResponse(req.Post(logoutPath)); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	c.session = model.Session{}
	return nil
}

func (c *Client) Cards(ctx context.Context) ([]model.Card, error) {
	req, err := c.authorized(ctx)
	if err != nil {
		return nil, err
	}

	var out cardsResponse
	if err := checkResponse(req.SetResult(&out).Get(cardsPath)); err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return out.Cards, nil
}

func (c *Client) AddCard(ctx context.Context, number string) error {
	normalized, err := model.NormalizeCardNumber(number)
	if err != nil {
		return err //nolint:wrapcheck // validation error carries the number
	}

	req, err := c.authorized(ctx)
	if err != nil {
		return err
	}
	if err := checkResponse(req.SetBody(addCardRequest{Number: normalized}).Post(cardsPath)); err != nil {
		return fmt.Errorf("failed to add card: %w", err)
	}
	return nil
}

func (c *Client) RemoveCard(ctx context.Context, number string) error {
	normalized, err := model.NormalizeCardNumber(number)
	if err != nil {
		return err //nolint:wrapcheck // validation error carries the number
	}

	req, err := c.authorized(ctx)
	if err != nil {
		return err
	}
	if err := checkResponse(req.SetPathParam("number", normalized).Delete(cardPath)); err != nil {
		return fmt.Errorf("failed to remove card: %w", err)
	}
	return nil
}

func (c *Client) Reservations(ctx context.Context) ([]model.APIReservation, error) {
	req, err := c.authorized(ctx)
	if err != nil {
		return nil, err
	}

	var out reservationsResponse
	if err := checkResponse(req.SetResult(&out).Get(reservationsPath)); err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return out.Reservations, nil
}

// History maps the API reservations onto history items.
func (c *Client) History(ctx context.Context) ([]model.HistoryItem, error) {
	reservations, err := c.Reservations(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]model.HistoryItem, 0, len(reservations))
	for _, r := range reservations {
		item, err := r.ToHistoryItem()
		if err != nil {
			return nil, fmt.Errorf("reservation %s: %w", r.ID, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *Client) authorized(ctx context.Context) (*resty.Request, error) {
	if c.session.Token == "" {
		return nil, apperrors.ErrNotLoggedIn
	}
	if c.session.Expired(time.Now()) {
		return nil, fmt.Errorf("%w: session expired at %s", apperrors.ErrNotLoggedIn, c.session.ExpiresAt.Format(time.RFC3339))
	}
	return c.rest.R().SetContext(ctx).SetAuthToken(c.session.Token), nil
}

func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: %d %s", apperrors.ErrAPIStatus, resp.StatusCode(), resp.String())
	}
	return nil
}
