// Package session holds the authenticated identity and bearer credential for
// gateway sessions. Login and Logout are the only writers; everything else
// reads. Sessions are optionally persisted to Redis so a gateway restart does
// not force every operator to log in again; without Redis the store degrades
// to in-memory only.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Mynor454-s/iccsa-admin/internal/models"
)

// LoginAPI is the slice of the upstream client the store needs.
type LoginAPI interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
}

// Session is one authenticated gateway session.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	UserName  string    `json:"userName"`
	UserEmail string    `json:"userEmail"`
	UserRole  string    `json:"userRole"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session's credential is past its lifetime.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store manages sessions for the process lifetime.
type Store struct {
	auth LoginAPI
	ttl  time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session

	redis *redis.Client // nil when unavailable

	logoutMu    sync.Mutex
	logoutHooks []func(sessionID string)
}

// NewStore builds a store. redisAddr may be empty to skip persistence; a
// failing Redis ping degrades to in-memory silently apart from a log line.
func NewStore(auth LoginAPI, ttl time.Duration, redisAddr, redisPassword string) *Store {
	s := &Store{
		auth:     auth,
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}

	if redisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       0,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			slog.Warn("session persistence unavailable, using in-memory store", "error", err)
		} else {
			s.redis = client
			slog.Info("session persistence connected", "addr", redisAddr)
		}
	}

	return s
}

// OnLogout registers a hook invoked whenever a session is invalidated, so
// owners of per-session state (reconciliation controllers) can discard
// in-flight work.
func (s *Store) OnLogout(hook func(sessionID string)) {
	s.logoutMu.Lock()
	defer s.logoutMu.Unlock()
	s.logoutHooks = append(s.logoutHooks, hook)
}

// Login authenticates against the remote backend and creates a session.
func (s *Store) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:        uuid.NewString(),
		Token:     resp.Token,
		UserName:  resp.User.Name,
		UserEmail: resp.User.Email,
		UserRole:  resp.User.Role,
		ExpiresAt: tokenExpiry(resp.Token, s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.persist(ctx, sess)
	return sess, nil
}

// Get returns a live session by id, consulting Redis when the in-memory map
// misses (restore after restart). Expired sessions are evicted on access.
func (s *Store) Get(ctx context.Context, id string) (*Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok && s.redis != nil {
		raw, err := s.redis.Get(ctx, redisKey(id)).Bytes()
		if err == nil {
			var restored Session
			if json.Unmarshal(raw, &restored) == nil {
				sess, ok = &restored, true
				s.mu.Lock()
				s.sessions[id] = sess
				s.mu.Unlock()
			}
		}
	}

	if !ok {
		return nil, false
	}
	if sess.Expired() {
		s.invalidate(ctx, id)
		return nil, false
	}
	return sess, true
}

// Logout clears the session. It is the only writer besides Login.
func (s *Store) Logout(ctx context.Context, id string) {
	s.invalidate(ctx, id)
}

func (s *Store) invalidate(ctx context.Context, id string) {
	s.mu.Lock()
	_, existed := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if s.redis != nil {
		s.redis.Del(ctx, redisKey(id))
	}

	if existed {
		s.logoutMu.Lock()
		hooks := append([]func(string){}, s.logoutHooks...)
		s.logoutMu.Unlock()
		for _, hook := range hooks {
			hook(id)
		}
	}
}

func (s *Store) persist(ctx context.Context, sess *Session) {
	if s.redis == nil {
		return
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return
	}
	if err := s.redis.Set(ctx, redisKey(sess.ID), raw, ttl).Err(); err != nil {
		slog.Warn("session persist failed", "error", err)
	}
}

func redisKey(id string) string { return "session:" + id }

// tokenExpiry reads the exp claim from the backend's bearer token. The
// gateway does not hold the signing secret, so the parse is unverified; the
// claim only bounds the session lifetime, it grants nothing.
func tokenExpiry(token string, fallback time.Duration) time.Time {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return time.Now().Add(fallback)
}
