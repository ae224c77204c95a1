package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims inclui os claims padrão mais os campos da aplicação. A autenticação em
// si (usuários, licenças, planos) vive em outro serviço; aqui só se valida o
// token e se extrai o tenant.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
}

// Generate gera um token HS256 com userID e companyID. Usado por tooling de
// desenvolvimento e testes.
func Generate(secret, userID, companyID, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vazio")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    userID,
		CompanyID: companyID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida o token e devolve userID e companyID. Erro para token inválido,
// expirado ou com assinatura incorreta.
func Parse(secret, tokenString string) (userID, companyID string, err error) {
	if secret == "" {
		return "", "", fmt.Errorf("jwt: secret vazio")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("claims inválidos")
	}
	return claims.UserID, claims.CompanyID, nil
}
