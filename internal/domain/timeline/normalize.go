package timeline

import (
	"sort"

	"crm-timeline/internal/domain/records"
)

// Normalización: funciones puras y totales de registro crudo → eventos.
// Nunca fallan con input bien formado; los sub-tipos desconocidos caen
// en un default documentado en vez de descartarse.

// maxContactRecords acota cuántos contactos entran a la normalización.
// Es un límite duro de performance (workspaces con decenas de miles de
// contactos), no un bug silencioso: se toman los 500 más recientes.
const maxContactRecords = 500

// defaultLossReason se usa cuando un deal perdido no registró motivo.
const defaultLossReason = "Sin motivo registrado"

var activityEventTypes = map[records.ActivityType]EventType{
	records.ActivityTypeCall:    EventTypeCallCompleted,
	records.ActivityTypeEmail:   EventTypeMessageSent,
	records.ActivityTypeMessage: EventTypeMessageReceived,
	records.ActivityTypeMeeting: EventTypeMeetingHeld,
	records.ActivityTypeNote:    EventTypeNoteAdded,
}

// NormalizeActivity produce exactamente un evento por actividad.
func NormalizeActivity(a records.Activity) []Event {
	t, ok := activityEventTypes[a.Type]
	if !ok {
		t = EventTypeActivityCompleted
	}

	ts := a.CreatedAt
	if a.Date != nil && !a.Date.IsZero() {
		ts = *a.Date
	}

	return []Event{{
		ID:        eventID(t, a.ID),
		Type:      t,
		Timestamp: ts,
		Title:     a.Title,
		Summary:   a.Description,
		OwnerID:   a.OwnerID,
		ContactID: a.ContactID,
		DealID:    a.DealID,
		Source:    SourceActivities,
	}}
}

// NormalizeDeal produce de uno a tres eventos por deal:
//  1. deal_created siempre.
//  2. deal_won / deal_lost según status, con close_date como instante
//     (o updated_at si no hay close_date).
//  3. deal_stage_changed si el deal tiene stage asignado.
//
// Limitación conocida: el origen solo guarda el stage ACTUAL, no el
// historial de transiciones, así que se emite a lo sumo un evento de
// stage por deal aunque haya habido varias transiciones reales.
func NormalizeDeal(d records.Deal) []Event {
	amount := 0.0
	if d.Amount != nil {
		amount = *d.Amount
	}

	out := []Event{{
		ID:        eventID(EventTypeDealCreated, d.ID),
		Type:      EventTypeDealCreated,
		Timestamp: d.CreatedAt,
		Title:     d.Title,
		OwnerID:   d.OwnerID,
		ContactID: d.ContactID,
		DealID:    d.ID,
		DealTitle: d.Title,
		Value:     amount,
		Source:    SourceDeals,
	}}

	closedAt := d.UpdatedAt
	if d.CloseDate != nil && !d.CloseDate.IsZero() {
		closedAt = *d.CloseDate
	}

	switch d.Status {
	case records.DealStatusWon:
		out = append(out, Event{
			ID:        eventID(EventTypeDealWon, d.ID),
			Type:      EventTypeDealWon,
			Timestamp: closedAt,
			Title:     d.Title,
			OwnerID:   d.OwnerID,
			ContactID: d.ContactID,
			DealID:    d.ID,
			DealTitle: d.Title,
			Value:     amount,
			Source:    SourceDeals,
		})
	case records.DealStatusLost:
		reason := d.LossReason
		if reason == "" {
			reason = defaultLossReason
		}
		out = append(out, Event{
			ID:        eventID(EventTypeDealLost, d.ID),
			Type:      EventTypeDealLost,
			Timestamp: closedAt,
			Title:     d.Title,
			Summary:   reason,
			OwnerID:   d.OwnerID,
			ContactID: d.ContactID,
			DealID:    d.ID,
			DealTitle: d.Title,
			Source:    SourceDeals,
		})
	}

	if d.StageID != "" {
		out = append(out, Event{
			ID:        eventID(EventTypeDealStageChanged, d.ID, d.StageID),
			Type:      EventTypeDealStageChanged,
			Timestamp: d.UpdatedAt,
			Title:     d.Title,
			OwnerID:   d.OwnerID,
			ContactID: d.ContactID,
			DealID:    d.ID,
			DealTitle: d.Title,
			Metadata:  map[string]string{"stage_name": d.StageName},
			Source:    SourceDeals,
		})
	}

	return out
}

// NormalizeTask produce task_created siempre y task_completed si la
// tarea está done.
func NormalizeTask(t records.Task) []Event {
	out := []Event{{
		ID:        eventID(EventTypeTaskCreated, t.ID),
		Type:      EventTypeTaskCreated,
		Timestamp: t.CreatedAt,
		Title:     t.Title,
		OwnerID:   t.OwnerID,
		TaskID:    t.ID,
		TaskTitle: t.Title,
		Source:    SourceTasks,
	}}

	if t.Status == records.TaskStatusDone {
		out = append(out, Event{
			ID:        eventID(EventTypeTaskCompleted, t.ID),
			Type:      EventTypeTaskCompleted,
			Timestamp: t.UpdatedAt,
			Title:     t.Title,
			OwnerID:   t.OwnerID,
			TaskID:    t.ID,
			TaskTitle: t.Title,
			Source:    SourceTasks,
		})
	}

	return out
}

// NormalizeContacts mapea contactos a customer_created, acotando el
// input a los maxContactRecords más recientes ANTES de mapear.
func NormalizeContacts(cs []records.Contact) []Event {
	if len(cs) > maxContactRecords {
		sorted := make([]records.Contact, len(cs))
		copy(sorted, cs)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
		cs = sorted[:maxContactRecords]
	}

	out := make([]Event, 0, len(cs))
	for _, c := range cs {
		out = append(out, Event{
			ID:          eventID(EventTypeCustomerCreated, c.ID),
			Type:        EventTypeCustomerCreated,
			Timestamp:   c.CreatedAt,
			Title:       c.Name,
			Summary:     c.LeadSource,
			OwnerID:     c.OwnerID,
			ContactID:   c.ID,
			ContactName: c.Name,
			Source:      SourceContacts,
		})
	}
	return out
}

// NormalizeCampaign emite campaign_clicked solo para campañas activas o
// completadas. Es un stand-in simplificado de analytics por click reales,
// que quedan fuera de alcance del timeline.
func NormalizeCampaign(c records.Campaign) []Event {
	if c.Status != records.CampaignStatusActive && c.Status != records.CampaignStatusCompleted {
		return nil
	}

	ts := c.CreatedAt
	if !c.UpdatedAt.IsZero() {
		ts = c.UpdatedAt
	}

	return []Event{{
		ID:           eventID(EventTypeCampaignClicked, c.ID),
		Type:         EventTypeCampaignClicked,
		Timestamp:    ts,
		Title:        c.Name,
		CampaignID:   c.ID,
		CampaignName: c.Name,
		Platform:     c.Platform,
		Source:       SourceCampaigns,
	}}
}

// sortEventsDesc ordena por timestamp descendente (más reciente primero).
// Sort estable: empates conservan el orden fijo de concatenación por
// fuente, que es determinístico pero sin significado semántico.
func sortEventsDesc(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
}
