package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/scrypt"
)

// Supported hashing algorithms.
const (
	AlgorithmScrypt = "scrypt"
	AlgorithmBcrypt = "bcrypt"
)

const (
	DefaultScryptN = 1 << 15
	scryptR        = 8
	scryptP        = 1
	scryptKeyLen   = 32
	saltLen        = 16
	maxScryptN     = 1 << 20
	scryptPrefix   = "$scrypt$"
)

// DefaultAdminHash is the shipped credential for the password "admin".
const DefaultAdminHash = "$scrypt$n=32768,r=8,p=1$c2l0ZWNtcy1kZWZhdWx0IQ$7ebHH9ZNCqdlPx7IvsWUi1rZAYz1MQ42MD9RuI57wJM"

var (
	// ErrUnknownAlgorithm is returned for algorithms other than scrypt and bcrypt.
	ErrUnknownAlgorithm = errors.New("auth: unknown hashing algorithm")
	// ErrEmptyPassword is returned when hashing a blank password.
	ErrEmptyPassword = errors.New("auth: password is required")
)

var encoding = base64.RawStdEncoding

// Hasher produces encoded password hashes. The encoding carries the algorithm
// and its parameters so Verify needs nothing else.
type Hasher struct {
	algorithm  string
	bcryptCost int
	scryptN    int
	random     io.Reader
}

// Option configures a Hasher.
type Option func(*Hasher)

// WithAlgorithm selects scrypt or bcrypt.
func WithAlgorithm(name string) Option {
	return func(h *Hasher) {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			h.algorithm = name
		}
	}
}

// WithBcryptCost sets the bcrypt work factor.
func WithBcryptCost(cost int) Option {
	return func(h *Hasher) {
		if cost > 0 {
			h.bcryptCost = cost
		}
	}
}

// WithScryptN sets the scrypt CPU/memory cost. It must be a power of two.
func WithScryptN(n int) Option {
	return func(h *Hasher) {
		if n > 1 {
			h.scryptN = n
		}
	}
}

// WithRandom overrides the salt source.
func WithRandom(r io.Reader) Option {
	return func(h *Hasher) {
		if r != nil {
			h.random = r
		}
	}
}

// NewHasher returns a scrypt hasher unless configured otherwise.
func NewHasher(opts ...Option) *Hasher {
	h := &Hasher{
		algorithm:  AlgorithmScrypt,
		bcryptCost: bcrypt.DefaultCost,
		scryptN:    DefaultScryptN,
		random:     rand.Reader,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Algorithm reports the configured algorithm.
func (h *Hasher) Algorithm() string {
	return h.algorithm
}

// Hash encodes password with a fresh salt.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	switch h.algorithm {
	case AlgorithmScrypt:
		return h.hashScrypt(password)
	case AlgorithmBcrypt:
		hash, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
		if err != nil {
			return "", fmt.Errorf("auth: bcrypt: %w", err)
		}
		return string(hash), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, h.algorithm)
	}
}

func (h *Hasher) hashScrypt(password string) (string, error) {
	if !validScryptN(h.scryptN) {
		return "", fmt.Errorf("auth: scrypt cost %d must be a power of two up to %d", h.scryptN, maxScryptN)
	}
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(h.random, salt); err != nil {
		return "", fmt.Errorf("auth: read salt: %w", err)
	}
	key, err := scrypt.Key([]byte(password), salt, h.scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("auth: scrypt: %w", err)
	}
	return fmt.Sprintf("%sn=%d,r=%d,p=%d$%s$%s",
		scryptPrefix, h.scryptN, scryptR, scryptP,
		encoding.EncodeToString(salt), encoding.EncodeToString(key),
	), nil
}

// Verify reports whether candidate matches encoded. Empty, malformed and
// unrecognised encodings never match.
func Verify(encoded, candidate string) bool {
	switch {
	case encoded == "":
		return false
	case strings.HasPrefix(encoded, scryptPrefix):
		return verifyScrypt(encoded, candidate)
	case isBcrypt(encoded):
		return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(candidate)) == nil
	default:
		return false
	}
}

// IsEncoded reports whether value looks like a hash Verify understands.
func IsEncoded(value string) bool {
	if strings.HasPrefix(value, scryptPrefix) {
		_, _, _, ok := parseScrypt(value)
		return ok
	}
	return isBcrypt(value)
}

func verifyScrypt(encoded, candidate string) bool {
	params, salt, want, ok := parseScrypt(encoded)
	if !ok {
		return false
	}
	got, err := scrypt.Key([]byte(candidate), salt, params.n, params.r, params.p, len(want))
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(got, want) == 1
}

type scryptParams struct {
	n, r, p int
}

func parseScrypt(encoded string) (scryptParams, []byte, []byte, bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[1] != AlgorithmScrypt {
		return scryptParams{}, nil, nil, false
	}
	var params scryptParams
	if _, err := fmt.Sscanf(parts[2], "n=%d,r=%d,p=%d", &params.n, &params.r, &params.p); err != nil {
		return scryptParams{}, nil, nil, false
	}
	if !validScryptN(params.n) || params.r < 1 || params.p < 1 || params.r*params.p >= 1<<30 {
		return scryptParams{}, nil, nil, false
	}
	salt, err := encoding.DecodeString(parts[3])
	if err != nil || len(salt) == 0 {
		return scryptParams{}, nil, nil, false
	}
	key, err := encoding.DecodeString(parts[4])
	if err != nil || len(key) == 0 {
		return scryptParams{}, nil, nil, false
	}
	return params, salt, key, true
}

func validScryptN(n int) bool {
	return n > 1 && n <= maxScryptN && n&(n-1) == 0
}

func isBcrypt(encoded string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(encoded, prefix) {
			return true
		}
	}
	return false
}
