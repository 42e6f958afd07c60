package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wateringdiary/webapp/internal/db"
	"github.com/wateringdiary/webapp/internal/models"
)

const sessionCookiePurpose = "session"

var (
	errMissingSessionCookie = errors.New("missing session cookie")
	errInvalidSessionToken  = errors.New("invalid session token")
	errSessionLookupFailed  = errors.New("session lookup failed")
)

type sessionClaims struct {
	UserID int64  `json:"uid"`
	Login  string `json:"login"`
	jwt.RegisteredClaims
}

// authenticateRequest resolves the session cookie into a live session. The
// token must verify and its id must name an active row in the session store.
func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*Session, error) {
	rawCookie := strings.TrimSpace(c.Cookies(sessionCookieName))
	if rawCookie == "" {
		return nil, errMissingSessionCookie
	}

	tokenValue, err := handler.cookieCodec.open(sessionCookiePurpose, rawCookie)
	if err != nil {
		return nil, errInvalidSessionToken
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(string(tokenValue), claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	}, jwt.WithTimeFunc(handler.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, errInvalidSessionToken
	}
	if claims.UserID <= 0 || claims.ID == "" {
		return nil, errInvalidSessionToken
	}

	stored, err := handler.sessions.FindActive(c.UserContext(), claims.ID, handler.now())
	if errors.Is(err, db.ErrSessionNotFound) {
		return nil, errInvalidSessionToken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errSessionLookupFailed, err)
	}
	if stored.UserID != claims.UserID {
		return nil, errInvalidSessionToken
	}

	return &Session{
		ID:        stored.ID,
		UserID:    stored.UserID,
		Login:     stored.Login,
		ExpiresAt: stored.ExpiresAt,
	}, nil
}

// optionalSession authenticates without enforcing anything; pages that render
// for both visitors and users use it for the navigation bar.
func (handler *Handler) optionalSession(c *fiber.Ctx) *Session {
	if session, ok := currentSession(c); ok {
		return session
	}
	session, err := handler.authenticateRequest(c)
	if err != nil {
		return nil
	}
	return session
}

func (handler *Handler) issueSession(c *fiber.Ctx, userID int64, login string) (*Session, error) {
	now := handler.now()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Login:     login,
		UserAgent: truncateUserAgent(c.Get(fiber.HeaderUserAgent)),
		CreatedAt: now,
		ExpiresAt: now.Add(handler.sessionTTL),
	}
	if err := handler.sessions.Create(c.UserContext(), session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	claims := sessionClaims{
		UserID: userID,
		Login:  login,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(handler.secretKey)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	sealed, err := handler.cookieCodec.seal(sessionCookiePurpose, []byte(signed))
	if err != nil {
		return nil, err
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    sealed,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  session.ExpiresAt,
	})

	handler.logger.Info("session issued",
		zap.Int64("user_id", userID),
		zap.String("session_id", session.ID),
	)
	return &Session{ID: session.ID, UserID: userID, Login: login, ExpiresAt: session.ExpiresAt}, nil
}

func (handler *Handler) revokeSession(ctx context.Context, session *Session) {
	if session == nil {
		return
	}
	if err := handler.sessions.Revoke(ctx, session.ID, handler.now()); err != nil {
		handler.logger.Warn("revoke session failed", zap.String("session_id", session.ID), zap.Error(err))
	}
}

func (handler *Handler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

func truncateUserAgent(raw string) string {
	const maxUserAgentLength = 255
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) > maxUserAgentLength {
		return trimmed[:maxUserAgentLength]
	}
	return trimmed
}
