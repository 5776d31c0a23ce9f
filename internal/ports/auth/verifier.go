package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
// La resolución de identidad es siempre externa al timeline.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
