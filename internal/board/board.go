// internal/board/board.go
//
// Client-held board tokens.
// Responsibilities:
//   - Pack a grid configuration plus its mark state into an HS256 JWT.
//   - Verify and unpack tokens sent back with each toggle.
//
// Notes:
//   - The server keeps no board state; the browser holds the latest token and
//     every toggle answers with a fresh one.
//   - The signing key is derived from the configured secret with HKDF so the
//     raw secret is never used as a MAC key directly.

package board

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"

	"github.com/robalobadob/bingo/internal/game"
	"github.com/robalobadob/bingo/internal/urlstate"
)

const (
	issuer  = "bingo"
	keyInfo = "bingo board token v1"
)

// ErrInvalidToken covers bad signatures, malformed claims and bad state.
var ErrInvalidToken = errors.New("invalid board token")

// Board is a verified token: what grid it is and how it is marked.
type Board struct {
	ID     string
	Config urlstate.Config
	State  *game.State
}

type claims struct {
	Seed       string `json:"seed"`
	GridSize   int    `json:"gs"`
	Categories int64  `json:"cat"`
	Marks      string `json:"marks"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies board tokens.
type Issuer struct {
	key []byte
	now func() time.Time
}

// NewIssuer derives the signing key from secret.
func NewIssuer(secret string) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("board: empty secret")
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return &Issuer{key: key, now: time.Now}, nil
}

// Issue signs a token for cfg with the given marks. A nil state means a fresh,
// unmarked grid. An empty id gets a new UUID.
func (i *Issuer) Issue(id string, cfg urlstate.Config, st *game.State) (string, error) {
	if st == nil {
		var err error
		if st, err = game.NewState(cfg.GridSize); err != nil {
			return "", err
		}
	}
	if st.Size() != cfg.GridSize {
		return "", fmt.Errorf("board: state size %d does not match grid size %d", st.Size(), cfg.GridSize)
	}
	if id == "" {
		id = uuid.NewString()
	}
	c := claims{
		Seed:       cfg.Seed,
		GridSize:   cfg.GridSize,
		Categories: cfg.Categories,
		Marks:      st.Encode(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       id,
			Issuer:   issuer,
			IssuedAt: jwt.NewNumericDate(i.now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.key)
}

// Parse verifies tok and rebuilds its board.
func (i *Issuer) Parse(tok string) (*Board, error) {
	var c claims
	t, err := jwt.ParseWithClaims(tok, &c, func(t *jwt.Token) (interface{}, error) {
		return i.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil || !t.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !urlstate.ValidSeed(c.Seed) {
		return nil, fmt.Errorf("%w: bad seed", ErrInvalidToken)
	}
	st, err := game.DecodeState(c.GridSize, c.Marks)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return &Board{
		ID:     c.ID,
		Config: urlstate.Config{Seed: c.Seed, GridSize: c.GridSize, Categories: c.Categories},
		State:  st,
	}, nil
}
