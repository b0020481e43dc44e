package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	apperrors "github.com/yama6a/pathe-portal/internal/pkg/errors"
	"github.com/yama6a/pathe-portal/internal/pkg/model"
	"go.uber.org/zap"
)

type fakeAPI struct {
	mu        sync.Mutex
	token     string
	cards     []model.Card
	clientIDs []string
}

func newFakeAPI(t *testing.T, token string) (*fakeAPI, *httptest.Server) {
	t.Helper()

	api := &fakeAPI{
		token: token,
		cards: []model.Card{{Number: "3001234567", Type: model.CardTypeLoyalty, Balance: 120}},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		api.record(r)
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password != "s3cret!" {
			http.Error(w, `{"error":"invalid credentials"}`, http.StatusUnauthorized)
			return
		}
		writeJSON(w, loginResponse{Token: api.token})
	})
	mux.HandleFunc("POST /v1/auth/logout", api.authorized(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	mux.HandleFunc("GET /v1/cards", api.authorized(func(w http.ResponseWriter, _ *http.Request) {
		api.mu.Lock()
		defer api.mu.Unlock()
		writeJSON(w, cardsResponse{Cards: api.cards})
	}))
	mux.HandleFunc("POST /v1/cards", api.authorized(func(w http.ResponseWriter, r *http.Request) {
		var req addCardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		api.mu.Lock()
		api.cards = append(api.cards, model.Card{Number: req.Number, Type: model.CardTypeGift})
		api.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	}))
	mux.HandleFunc("DELETE /v1/cards/{number}", api.authorized(func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		defer api.mu.Unlock()
		for i, card := range api.cards {
			if card.Number == r.PathValue("number") {
				api.cards = append(api.cards[:i], api.cards[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		http.Error(w, `{"error":"unknown card"}`, http.StatusNotFound)
	}))
	mux.HandleFunc("GET /v1/reservations", api.authorized(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, reservationsResponse{Reservations: []model.APIReservation{{
			ID:       "r-1",
			ShowID:   "25",
			ShowTime: time.Date(2014, 7, 18, 19, 30, 0, 0, time.UTC),
			Cinema:   "Pathé Arena",
			Screen:   "Zaal 9",
			Movie:    "Movie A",
			Status:   model.StatusCollected,
			Tickets:  []model.Ticket{{Barcode: "111", Row: "5", Seat: "7"}, {Barcode: "112", Row: "5", Seat: "8"}},
		}}})
	}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return api, srv
}

func (a *fakeAPI) record(r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.clientIDs = append(a.clientIDs, r.Header.Get(clientIDHeader))
}

func (a *fakeAPI) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.record(r)
		if r.Header.Get("Authorization") != "Bearer "+a.token {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestClient_Login(t *testing.T) {
	t.Parallel()

	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{"sub": "user-42", "exp": expiresAt.Unix()})
	_, srv := newFakeAPI(t, token)

	client := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	session, err := client.Login(context.Background(), "moviebuff", "s3cret!")
	require.NoError(t, err)
	require.Equal(t, token, session.Token)
	require.Equal(t, "user-42", session.UserID)
	require.True(t, expiresAt.Equal(session.ExpiresAt), "ExpiresAt = %v, want %v", session.ExpiresAt, expiresAt)
	require.False(t, session.Expired(time.Now()))
}

func TestClient_Login_Failures(t *testing.T) {
	t.Parallel()

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		_, srv := newFakeAPI(t, "opaque-token")
		client := NewClient(srv.URL, 5*time.Second, zap.NewNop())

		_, err := client.Login(context.Background(), "moviebuff", "wrong")
		require.ErrorIs(t, err, apperrors.ErrLoginFailed)
		require.ErrorIs(t, err, apperrors.ErrAPIStatus)
	})

	t.Run("opaque token still yields a session", func(t *testing.T) {
		t.Parallel()
		_, srv := newFakeAPI(t, "opaque-token")
		client := NewClient(srv.URL, 5*time.Second, zap.NewNop())

		session, err := client.Login(context.Background(), "moviebuff", "s3cret!")
		require.NoError(t, err)
		require.Equal(t, "opaque-token", session.Token)
		require.True(t, session.ExpiresAt.IsZero())
	})
}

func TestClient_RequiresSession(t *testing.T) {
	t.Parallel()

	_, srv := newFakeAPI(t, "opaque-token")
	client := NewClient(srv.URL, 5*time.Second, zap.NewNop())

	_, err := client.Cards(context.Background())
	require.ErrorIs(t, err, apperrors.ErrNotLoggedIn)

	expired := signedToken(t, jwt.MapClaims{"sub": "user-42", "exp": time.Now().Add(-time.Minute).Unix()})
	_, srv = newFakeAPI(t, expired)
	client = NewClient(srv.URL, 5*time.Second, zap.NewNop())
	_, err = client.Login(context.Background(), "moviebuff", "s3cret!")
	require.NoError(t, err)

	_, err = client.Reservations(context.Background())
	require.ErrorIs(t, err, apperrors.ErrNotLoggedIn)
}

func TestClient_Cards(t *testing.T) {
	t.Parallel()

	api, srv := newFakeAPI(t, "opaque-token")
	client := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	_, err := client.Login(context.Background(), "moviebuff", "s3cret!")
	require.NoError(t, err)

	cards, err := client.Cards(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 1)
	require.Equal(t, model.CardTypeLoyalty, cards[0].Type)

	require.NoError(t, client.AddCard(context.Background(), "6001 2345 6789"))
	cards, err = client.Cards(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 2)
	require.Equal(t, "600123456789", cards[1].Number)

	require.NoError(t, client.RemoveCard(context.Background(), "3001234567"))
	err = client.RemoveCard(context.Background(), "3001234567")
	require.ErrorIs(t, err, apperrors.ErrAPIStatus)

	err = client.AddCard(context.Background(), "12ab")
	require.ErrorIs(t, err, apperrors.ErrInvalidCardNumber)

	require.NoError(t, client.Logout(context.Background()))
	require.Empty(t, client.Session().Token)

	api.mu.Lock()
	defer api.mu.Unlock()
	require.NotEmpty(t, api.clientIDs)
	_, err = uuid.Parse(api.clientIDs[0])
	require.NoError(t, err)
	for _, id := range api.clientIDs {
		require.Equal(t, api.clientIDs[0], id, "client id must be stable per client")
	}
}

func TestClient_History(t *testing.T) {
	t.Parallel()

	_, srv := newFakeAPI(t, "opaque-token")
	client := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	_, err := client.Login(context.Background(), "moviebuff", "s3cret!")
	require.NoError(t, err)

	items, err := client.History(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	require.Equal(t, "Movie A", item.Event.Title)
	require.Equal(t, model.Screen{Theater: "Pathé Arena", Room: "Zaal 9"}, item.Screen)
	require.NotNil(t, item.Reservation)
	require.Equal(t, 2, item.Reservation.TicketCount())
	require.Equal(t, model.StatusCollected, item.Reservation.Status())
	require.Equal(t, "25", item.Reservation.ShowID())
	require.Equal(t, "r-1", item.Reservation.ReservationSetID())
}
