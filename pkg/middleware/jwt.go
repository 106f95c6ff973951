package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// jwtIssuer はこのサービスが発行・受理するトークンのissuer。
const jwtIssuer = "roombook"

// contextKeyEmail はGinコンテキストに認証済みメールアドレスを格納するキー。
const contextKeyEmail = "email"

// JWTClaims はJWTトークンのクレーム。
type JWTClaims struct {
	jwt.RegisteredClaims
	// Email は利用者のメールアドレス。
	Email string `json:"email"`
}

// GenerateJWT はHS256で署名したトークンを生成する。
// subjectには利用者の識別子、ttlには有効期間を指定する。
func GenerateJWT(secret, subject, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("JWTトークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// JWTAuth はBearerトークンを検証するGinミドルウェアを返す。
// HS256以外の署名方式と、このサービス以外が発行したトークンは拒否する。
func JWTAuth(secret string) gin.HandlerFunc {
	keyFunc := func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("未対応の署名方式です")
		}
		return []byte(secret), nil
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorizationヘッダーが必要です"})
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Bearer トークン形式が不正です"})
			return
		}

		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc, jwt.WithIssuer(jwtIssuer))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "トークンが無効です"})
			return
		}

		c.Set(contextKeyEmail, claims.Email)
		c.Next()
	}
}

// GetEmail はJWTAuthが検証したトークンのメールアドレスを返す。
func GetEmail(c *gin.Context) string {
	return c.GetString(contextKeyEmail)
}
