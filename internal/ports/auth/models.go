package auth

// Claims es la información extraída del token por el IdP.
// WorkspaceID puede venir vacío si el token no lo trae; en ese caso se
// resuelve vía ports/workspace.
type Claims struct {
	UserID      string
	Email       string
	WorkspaceID string
}
