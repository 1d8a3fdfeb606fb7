package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/K1motho/pfol/internal/models"
	"github.com/K1motho/pfol/internal/services"
	"github.com/labstack/echo/v4"
)

// stubFriendshipService returns canned values so handler tests only cover
// request decoding, auth extraction, and error-to-status mapping.
type stubFriendshipService struct {
	err     error
	request *models.FriendRequest
	profile *services.FriendProfile
	friends []models.PublicUser
}

func (s *stubFriendshipService) SendFriendRequest(ctx context.Context, actorID, targetID uint) (*models.FriendRequest, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.request != nil {
		return s.request, nil
	}
	return &models.FriendRequest{SenderID: actorID, ReceiverID: targetID, Status: models.FriendRequestStatusPending}, nil
}

func (s *stubFriendshipService) CancelFriendRequest(ctx context.Context, actorID, targetID uint) error {
	return s.err
}

func (s *stubFriendshipService) AcceptFriendRequest(ctx context.Context, actorID, senderID uint) error {
	return s.err
}

func (s *stubFriendshipService) RejectFriendRequest(ctx context.Context, actorID, senderID uint) error {
	return s.err
}

func (s *stubFriendshipService) Unfriend(ctx context.Context, actorID, targetID uint) error {
	return s.err
}

func (s *stubFriendshipService) ListFriends(ctx context.Context, actorID uint) ([]models.PublicUser, error) {
	return s.friends, s.err
}

func (s *stubFriendshipService) ListPendingRequests(ctx context.Context, actorID uint) ([]models.FriendRequestWithSender, error) {
	return nil, s.err
}

func (s *stubFriendshipService) FriendProfile(ctx context.Context, actorID, targetID uint) (*services.FriendProfile, error) {
	return s.profile, s.err
}

func (s *stubFriendshipService) FriendEvents(ctx context.Context, actorID uint) ([]models.AttendedEvent, error) {
	return nil, s.err
}

func (s *stubFriendshipService) AreFriends(ctx context.Context, userA, userB uint) (bool, error) {
	return false, s.err
}

// newTestContext builds an echo context authenticated as the given user.
func newTestContext(method, path, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID})
	}
	return c, rec
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		t.Fatal("expected an *echo.HTTPError, got nil")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected an *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func TestSendFriendRequestHandler(t *testing.T) {
	h := NewFriendshipHandler(&stubFriendshipService{})
	c, rec := newTestContext(http.MethodPost, "/friend-requests", `{"receiver_id": 2}`, 1)

	if err := h.SendFriendRequest(c); err != nil {
		t.Fatalf("SendFriendRequest: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if !strings.Contains(rec.Body.String(), `"receiver_id":2`) {
		t.Errorf("body = %s, want receiver_id 2", rec.Body.String())
	}
}

func TestSendFriendRequestHandlerUnauthenticated(t *testing.T) {
	h := NewFriendshipHandler(&stubFriendshipService{})
	c, _ := newTestContext(http.MethodPost, "/friend-requests", `{"receiver_id": 2}`, 0)

	if got := httpStatus(t, h.SendFriendRequest(c)); got != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", got, http.StatusUnauthorized)
	}
}

func TestSendFriendRequestHandlerMissingReceiver(t *testing.T) {
	h := NewFriendshipHandler(&stubFriendshipService{})
	c, _ := newTestContext(http.MethodPost, "/friend-requests", `{}`, 1)

	if got := httpStatus(t, h.SendFriendRequest(c)); got != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", got, http.StatusBadRequest)
	}
}

func TestFriendshipErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"self target", services.ErrSelfTarget, http.StatusBadRequest},
		{"user not found", services.ErrUserNotFound, http.StatusNotFound},
		{"request not found", services.ErrRequestNotFound, http.StatusNotFound},
		{"not friends", services.ErrNotFriends, http.StatusNotFound},
		{"request exists", services.ErrRequestExists, http.StatusConflict},
		{"already friends", services.ErrAlreadyFriends, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewFriendshipHandler(&stubFriendshipService{err: tc.err})
			c, _ := newTestContext(http.MethodPost, "/friend-requests", `{"receiver_id": 2}`, 1)
			if got := httpStatus(t, h.SendFriendRequest(c)); got != tc.want {
				t.Errorf("status = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestAcceptFriendRequestHandler(t *testing.T) {
	h := NewFriendshipHandler(&stubFriendshipService{})
	c, rec := newTestContext(http.MethodPost, "/friend-requests/accept", `{"sender_id": 1}`, 2)

	if err := h.AcceptFriendRequest(c); err != nil {
		t.Fatalf("AcceptFriendRequest: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestAcceptFriendRequestHandlerGone(t *testing.T) {
	h := NewFriendshipHandler(&stubFriendshipService{err: services.ErrRequestNotFound})
	c, _ := newTestContext(http.MethodPost, "/friend-requests/accept", `{"sender_id": 1}`, 2)

	if got := httpStatus(t, h.AcceptFriendRequest(c)); got != http.StatusNotFound {
		t.Errorf("status = %d, want %d", got, http.StatusNotFound)
	}
}

func TestCancelFriendRequestHandler(t *testing.T) {
	h := NewFriendshipHandler(&stubFriendshipService{})
	c, rec := newTestContext(http.MethodDelete, "/friend-requests/2", "", 1)
	c.SetParamNames("receiver_id")
	c.SetParamValues("2")

	if err := h.CancelFriendRequest(c); err != nil {
		t.Fatalf("CancelFriendRequest: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestCancelFriendRequestHandlerBadParam(t *testing.T) {
	h := NewFriendshipHandler(&stubFriendshipService{})
	c, _ := newTestContext(http.MethodDelete, "/friend-requests/abc", "", 1)
	c.SetParamNames("receiver_id")
	c.SetParamValues("abc")

	if got := httpStatus(t, h.CancelFriendRequest(c)); got != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", got, http.StatusBadRequest)
	}
}

func TestGetFriendProfileHandlerForbiddenForStrangers(t *testing.T) {
	h := NewFriendshipHandler(&stubFriendshipService{err: services.ErrNotFriends})
	c, _ := newTestContext(http.MethodGet, "/friends/2", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("2")

	if got := httpStatus(t, h.GetFriendProfile(c)); got != http.StatusForbidden {
		t.Errorf("status = %d, want %d", got, http.StatusForbidden)
	}
}

func TestGetFriendProfileHandler(t *testing.T) {
	profile := &services.FriendProfile{
		User:         models.PublicUser{ID: 2, Username: "bob"},
		MutualEvents: []models.AttendedEvent{{UserID: 2, EventID: "e2", Title: "Food Fair"}},
	}
	h := NewFriendshipHandler(&stubFriendshipService{profile: profile})
	c, rec := newTestContext(http.MethodGet, "/friends/2", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("2")

	if err := h.GetFriendProfile(c); err != nil {
		t.Fatalf("GetFriendProfile: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"mutual_events"`) {
		t.Errorf("body = %s, want mutual_events field", rec.Body.String())
	}
}

func TestDeleteFriendHandlerNotFriends(t *testing.T) {
	h := NewFriendshipHandler(&stubFriendshipService{err: services.ErrNotFriends})
	c, _ := newTestContext(http.MethodDelete, "/friends/2", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("2")

	if got := httpStatus(t, h.DeleteFriend(c)); got != http.StatusNotFound {
		t.Errorf("status = %d, want %d", got, http.StatusNotFound)
	}
}

func TestGetFriendsHandler(t *testing.T) {
	h := NewFriendshipHandler(&stubFriendshipService{
		friends: []models.PublicUser{{ID: 2, Username: "bob"}},
	})
	c, rec := newTestContext(http.MethodGet, "/friends", "", 1)

	if err := h.GetFriends(c); err != nil {
		t.Fatalf("GetFriends: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"bob"`) {
		t.Errorf("body = %s, want bob", rec.Body.String())
	}
}
