package records

import "time"

// Los modelos de este paquete son lecturas crudas de los módulos CRUD del CRM
// (actividades, deals, tareas, contactos, campañas). El timeline solo los
// consume; el ciclo de vida de cada registro vive en su propio servicio.

type Activity struct {
	ID          string
	WorkspaceID string

	Type        ActivityType
	Title       string
	Description string

	ContactID string
	DealID    string
	OwnerID   string

	// Fecha declarada de la actividad. Puede venir vacía; en ese caso
	// se usa CreatedAt como instante del evento.
	Date      *time.Time
	CreatedAt time.Time
}

type Deal struct {
	ID          string
	WorkspaceID string

	Title  string
	Status DealStatus

	// Amount puede no estar cargado todavía (deal en borrador).
	Amount *float64

	StageID   string
	StageName string

	// LossReason solo aplica cuando Status == lost.
	LossReason string

	ContactID string
	OwnerID   string

	CloseDate *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Task struct {
	ID          string
	WorkspaceID string

	Title   string
	Status  TaskStatus
	OwnerID string

	DueDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Contact struct {
	ID          string
	WorkspaceID string

	Name       string
	Email      string
	LeadSource string
	OwnerID    string

	CreatedAt time.Time
}

type Campaign struct {
	ID          string
	WorkspaceID string

	Name     string
	Platform string
	Status   CampaignStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// User es la identidad mínima que necesita el enriquecimiento de owners.
type User struct {
	ID       string
	FullName string
	Email    string
}
