package downloadlink

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// tokenBytes is the entropy of a download token. 24 random bytes encode to a
// 32 character URL-safe string.
const tokenBytes = 24

// DownloadLink grants time-limited access to one purchased product's file.
// The token is the sole lookup key; resolving it never consumes it.
type DownloadLink struct {
	ProductID string    `json:"product_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// New mints a link for the product with a fresh token.
func New(productID string, expiresAt time.Time) DownloadLink {
	return DownloadLink{
		ProductID: productID,
		Token:     NewToken(),
		ExpiresAt: expiresAt,
	}
}

// NewToken generates an unguessable URL-safe token.
func NewToken() string {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}

	return base64.RawURLEncoding.EncodeToString(b)
}

// Expired reports whether the link is past its validity window at the given
// instant. The boundary instant itself is still valid.
func (l *DownloadLink) Expired(now time.Time) bool {
	return now.After(l.ExpiresAt)
}
