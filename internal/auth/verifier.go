package auth

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ERA5758/Paguyuban/internal/pujasera"
	"github.com/ERA5758/Paguyuban/internal/redisx"
)

// Claims hasil verifikasi bearer token oleh identity provider eksternal.
type Claims struct {
	UserID    string        `json:"userId"`
	Role      pujasera.Role `json:"role"`
	StoreID   string        `json:"storeId"`
	StoreName string        `json:"storeName,omitempty"`
}

type Verifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// HTTPVerifier memanggil endpoint introspeksi identity provider.
// Token invalid/kedaluwarsa -> ErrUnauthorized; provider down -> error apa adanya.
type HTTPVerifier struct {
	URL    string
	Client *http.Client
}

func NewHTTPVerifier(url string) *HTTPVerifier {
	return &HTTPVerifier{URL: url, Client: &http.Client{Timeout: 5 * time.Second}}
}

func (v *HTTPVerifier) Verify(ctx context.Context, token string) (Claims, error) {
	body, _ := json.Marshal(map[string]string{"token": token})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.URL, bytes.NewReader(body))
	if err != nil {
		return Claims{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.Client.Do(req)
	if err != nil {
		return Claims{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var c Claims
		if err := json.NewDecoder(resp.Body).Decode(&c); err != nil {
			return Claims{}, fmt.Errorf("decode claims: %w", err)
		}
		return c, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return Claims{}, pujasera.ErrUnauthorized
	default:
		return Claims{}, fmt.Errorf("verifikasi token: status %d", resp.StatusCode)
	}
}

// CachedVerifier menyimpan claims token yang sudah terverifikasi di Redis
// (TTL pendek) supaya tiap refresh dapur tidak bolak-balik ke provider.
type CachedVerifier struct {
	Inner Verifier
	Redis *redis.Client
}

func (v *CachedVerifier) Verify(ctx context.Context, token string) (Claims, error) {
	key := fmt.Sprintf(redisx.KeyAuthToken, tokenDigest(token))

	if b, err := v.Redis.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var c Claims
		if json.Unmarshal(b, &c) == nil {
			return c, nil
		}
	}

	c, err := v.Inner.Verify(ctx, token)
	if err != nil {
		return Claims{}, err
	}
	if b, err := json.Marshal(c); err == nil {
		_ = v.Redis.Set(ctx, key, b, redisx.TTLAuthToken).Err()
	}
	return c, nil
}

// Token mentah tidak pernah jadi key Redis.
func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
