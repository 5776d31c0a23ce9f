package records

import "context"

// Readers: puertos de solo lectura hacia los módulos CRUD.
// Cada query va scopeada por workspace; el timeline nunca escribe.

type ActivityFilter struct {
	ContactID string
}

type DealFilter struct {
	ContactID string
	DealID    string
}

type ContactFilter struct {
	ContactID string

	// Limit acota los contactos más recientes (created_at DESC).
	// 0 = usar el default del adapter.
	Limit int
}

type ActivityReader interface {
	ListByWorkspace(ctx context.Context, workspaceID string, f ActivityFilter) ([]Activity, error)
}

type DealReader interface {
	ListByWorkspace(ctx context.Context, workspaceID string, f DealFilter) ([]Deal, error)
}

type TaskReader interface {
	ListByWorkspace(ctx context.Context, workspaceID string) ([]Task, error)
}

type ContactReader interface {
	ListByWorkspace(ctx context.Context, workspaceID string, f ContactFilter) ([]Contact, error)
}

type CampaignReader interface {
	ListByWorkspace(ctx context.Context, workspaceID string) ([]Campaign, error)
}

// UserDirectory resuelve identidades de owners en batch (un solo lookup
// por agregación, nunca uno por evento).
type UserDirectory interface {
	ListByIDs(ctx context.Context, workspaceID string, ids []string) ([]User, error)
}
