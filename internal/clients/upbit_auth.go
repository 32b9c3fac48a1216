package clients

import (
	"crypto/sha512"
	"encoding/hex"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const queryHashAlg = "SHA512"

// upbitAuthenticator signs private requests with a per-request HS256 JWT.
type upbitAuthenticator struct {
	accessKey string
	secretKey string
}

func newUpbitAuthenticator(accessKey, secretKey string) *upbitAuthenticator {
	if accessKey == "" || secretKey == "" {
		return nil
	}
	return &upbitAuthenticator{accessKey: accessKey, secretKey: secretKey}
}

// AddAuthHeaders sets the Authorization header. query must be the exact
// parameter string sent with the request, empty when there are no parameters.
func (a *upbitAuthenticator) AddAuthHeaders(req *http.Request, query string) error {
	token, err := a.token(query)
	if err != nil {
		return errors.Wrap(err, "failed to generate JWT")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

func (a *upbitAuthenticator) token(query string) (string, error) {
	claims := jwt.MapClaims{
		"access_key": a.accessKey,
		"nonce":      uuid.NewString(),
	}
	if query != "" {
		claims["query_hash"] = queryHash(query)
		claims["query_hash_alg"] = queryHashAlg
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.secretKey))
}

func queryHash(query string) string {
	sum := sha512.Sum512([]byte(query))
	return hex.EncodeToString(sum[:])
}
