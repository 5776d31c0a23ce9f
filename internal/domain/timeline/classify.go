package timeline

import "strings"

// Matches decide si un tipo de evento pertenece a la categoría.
// Las reglas por substring son intencionales: "deals" agarra deal_created,
// deal_won, deal_lost y deal_stage_changed sin enumerar cada tipo.
func (c Category) Matches(t EventType) bool {
	s := string(t)
	switch c {
	case CategoryAll, "":
		return true
	case CategoryCustomers:
		return t == EventTypeCustomerCreated || t == EventTypeLeadSourceDetected
	case CategoryActivities:
		return strings.Contains(s, "activity") ||
			strings.Contains(s, "call") ||
			strings.Contains(s, "meeting")
	case CategoryMessages:
		return strings.Contains(s, "message")
	case CategoryDeals:
		return strings.Contains(s, "deal")
	case CategoryTasks:
		return strings.Contains(s, "task")
	case CategoryCampaigns:
		return strings.Contains(s, "campaign")
	case CategoryNotes:
		return t == EventTypeNoteAdded
	default:
		return false
	}
}

// FilterByCategory filtra preservando el orden relativo de los
// sobrevivientes (no re-ordena).
func FilterByCategory(events []Event, c Category) []Event {
	if c == CategoryAll || c == "" {
		return events
	}

	out := make([]Event, 0, len(events))
	for _, e := range events {
		if c.Matches(e.Type) {
			out = append(out, e)
		}
	}
	return out
}
