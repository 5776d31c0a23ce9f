package workspace

import (
	"context"
	"errors"
)

// ErrNoWorkspace indica que el usuario todavía no tiene workspace.
// No es una falla: el timeline responde vacío (estado tenant-nuevo).
var ErrNoWorkspace = errors.New("no workspace for user")

type Workspace struct {
	ID   string
	Name string
}

// Resolver mapea usuario → workspace. La resolución de tenant vive en
// otro servicio; acá solo se consume.
type Resolver interface {
	ResolveForUser(ctx context.Context, userID string) (Workspace, error)
}
