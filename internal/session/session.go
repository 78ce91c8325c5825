// Package session issues the anonymous session tokens that scope a shopper's
// cart and quiz progress, playing the part browser local storage plays for a
// client-only storefront.
package session

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const claimSessionID = "session_id"

var ErrInvalidToken = errors.New("invalid session token")

// Token is returned to the client, which sends it back as a Bearer token.
type Token struct {
	SessionID string    `json:"sessionId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Issuer mints signed session tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue starts a fresh session.
func (i *Issuer) Issue() (Token, error) {
	return i.IssueFor(uuid.NewString())
}

// IssueFor signs a token for an existing session id.
func (i *Issuer) IssueFor(id string) (Token, error) {
	if id == "" {
		return Token{}, ErrInvalidToken
	}
	now := i.now().UTC()
	exp := now.Add(i.ttl)

	claims := jwt.MapClaims{
		claimSessionID: id,
		"iat":          now.Unix(),
		"exp":          exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return Token{}, err
	}
	return Token{SessionID: id, Token: signed, ExpiresAt: exp}, nil
}

// Parse validates a raw token and returns its session id.
func (i *Issuer) Parse(raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	return idFromToken(tok)
}

// Renew validates raw and issues a fresh token for the same session, so a
// shopper keeps their cart past the original expiry.
func (i *Issuer) Renew(raw string) (Token, error) {
	id, err := i.Parse(raw)
	if err != nil {
		return Token{}, err
	}
	return i.IssueFor(id)
}

// Middleware rejects requests without a valid session token. Handlers behind
// it read the session with IDFromCtx.
func Middleware(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: []byte(secret),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		},
	})
}

// IDFromCtx extracts the session_id claim from the JWT stored in
// c.Locals("user") by the middleware.
func IDFromCtx(c *fiber.Ctx) (string, error) {
	tok, ok := c.Locals("user").(*jwt.Token)
	if !ok || tok == nil {
		return "", fiber.ErrUnauthorized
	}
	id, err := idFromToken(tok)
	if err != nil {
		return "", fiber.ErrUnauthorized
	}
	return id, nil
}

func idFromToken(tok *jwt.Token) (string, error) {
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	id, ok := claims[claimSessionID].(string)
	if !ok || id == "" {
		return "", ErrInvalidToken
	}
	return id, nil
}

// Handler exposes token issuing over HTTP.
type Handler struct {
	issuer *Issuer
}

func NewHandler(issuer *Issuer) *Handler {
	return &Handler{issuer: issuer}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/session", h.createSession)
	app.Post("/api/v1/session/renew", h.renewSession)
}

func (h *Handler) createSession(c *fiber.Ctx) error {
	tok, err := h.issuer.Issue()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(tok)
}

func (h *Handler) renewSession(c *fiber.Ctx) error {
	raw, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if !ok || raw == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	tok, err := h.issuer.Renew(raw)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(tok)
}
