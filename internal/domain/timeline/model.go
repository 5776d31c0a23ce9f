package timeline

import (
	"strings"
	"time"
)

// Event es la vista canónica de "algo pasó" derivada de un registro CRM.
// No se persiste nunca: se recalcula en cada agregación y desaparece
// cuando el registro de origen deja de cumplir su regla de derivación.
type Event struct {
	// ID determinístico: <event_type>_<source_id>[_<sub>].
	// El sufijo sub evita colisiones cuando un mismo registro
	// produce más de un evento (ej: stage actual de un deal).
	ID string

	Type      EventType
	Timestamp time.Time

	Title   string
	Summary string

	OwnerID   string
	OwnerName string

	ContactID   string
	ContactName string

	DealID    string
	DealTitle string

	TaskID    string
	TaskTitle string

	CampaignID   string
	CampaignName string

	Platform string
	Value    float64
	Metadata map[string]string

	Source Source
}

// Group es un bucket de fecha ya ordenado (más reciente primero).
type Group struct {
	Label  string
	Events []Event
}

// Result es la salida completa de una agregación: la secuencia global
// ordenada + la vista agrupada para presentación.
type Result struct {
	Events []Event
	Groups []Group
}

func eventID(t EventType, sourceID string, sub ...string) string {
	parts := append([]string{string(t), sourceID}, sub...)
	return strings.Join(parts, "_")
}
