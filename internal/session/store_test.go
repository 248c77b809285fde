package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Mynor454-s/iccsa-admin/internal/models"
)

type loginStub struct {
	resp *models.LoginResponse
	err  error
}

func (s *loginStub) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	return s.resp, s.err
}

func loginResponse(token string) *models.LoginResponse {
	resp := &models.LoginResponse{Token: token}
	resp.User.Name = "Ana"
	resp.User.Email = "ana@iccsa.test"
	resp.User.Role = "ADMIN"
	return resp
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestLoginCreatesSession(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour)
	store := NewStore(&loginStub{resp: loginResponse(signedToken(t, exp))}, 12*time.Hour, "", "")

	sess, err := store.Login(context.Background(), "ana@iccsa.test", "pw")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if sess.ID == "" {
		t.Error("session id missing")
	}
	if sess.UserName != "Ana" || sess.UserRole != "ADMIN" {
		t.Errorf("identity = %s/%s, want Ana/ADMIN", sess.UserName, sess.UserRole)
	}
	// Session lifetime follows the token's exp claim, not the fallback TTL.
	if diff := sess.ExpiresAt.Sub(exp); diff < -time.Second || diff > time.Second {
		t.Errorf("ExpiresAt = %v, want token exp %v", sess.ExpiresAt, exp)
	}

	got, ok := store.Get(context.Background(), sess.ID)
	if !ok || got.Token != sess.Token {
		t.Error("session not retrievable after login")
	}
}

func TestLoginFallsBackToTTL(t *testing.T) {
	store := NewStore(&loginStub{resp: loginResponse("not-a-jwt")}, time.Hour, "", "")

	sess, err := store.Login(context.Background(), "ana@iccsa.test", "pw")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	want := time.Now().Add(time.Hour)
	if diff := sess.ExpiresAt.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Errorf("ExpiresAt = %v, want about %v", sess.ExpiresAt, want)
	}
}

func TestLoginPropagatesBackendError(t *testing.T) {
	wantErr := errors.New("invalid credentials")
	store := NewStore(&loginStub{err: wantErr}, time.Hour, "", "")

	if _, err := store.Login(context.Background(), "ana@iccsa.test", "wrong"); !errors.Is(err, wantErr) {
		t.Fatalf("Login error = %v, want %v", err, wantErr)
	}
}

func TestExpiredSessionEvicted(t *testing.T) {
	store := NewStore(&loginStub{resp: loginResponse(signedToken(t, time.Now().Add(-time.Minute)))}, time.Hour, "", "")

	sess, err := store.Login(context.Background(), "ana@iccsa.test", "pw")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	if _, ok := store.Get(context.Background(), sess.ID); ok {
		t.Error("expired session should not be returned")
	}
}

func TestLogoutFiresHooks(t *testing.T) {
	store := NewStore(&loginStub{resp: loginResponse("not-a-jwt")}, time.Hour, "", "")

	var droppedID string
	store.OnLogout(func(sessionID string) { droppedID = sessionID })

	sess, err := store.Login(context.Background(), "ana@iccsa.test", "pw")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	store.Logout(context.Background(), sess.ID)
	if droppedID != sess.ID {
		t.Errorf("hook got %q, want %q", droppedID, sess.ID)
	}
	if _, ok := store.Get(context.Background(), sess.ID); ok {
		t.Error("session survives logout")
	}

	// A second logout for the same id must not re-fire hooks.
	droppedID = ""
	store.Logout(context.Background(), sess.ID)
	if droppedID != "" {
		t.Error("hook fired for an already-removed session")
	}
}
