package timeline

import (
	"testing"
	"time"
)

func TestCategory_Matches(t *testing.T) {
	cases := []struct {
		cat  Category
		typ  EventType
		want bool
	}{
		{CategoryAll, EventTypeDealWon, true},
		{CategoryAll, EventTypeNoteAdded, true},
		{CategoryCustomers, EventTypeCustomerCreated, true},
		{CategoryCustomers, EventTypeLeadSourceDetected, true},
		{CategoryCustomers, EventTypeDealCreated, false},
		{CategoryActivities, EventTypeActivityCompleted, true},
		{CategoryActivities, EventTypeCallCompleted, true},
		{CategoryActivities, EventTypeCallLogged, true},
		{CategoryActivities, EventTypeMeetingHeld, true},
		{CategoryActivities, EventTypeMessageSent, false},
		{CategoryMessages, EventTypeMessageSent, true},
		{CategoryMessages, EventTypeMessageReceived, true},
		{CategoryDeals, EventTypeDealStageChanged, true},
		{CategoryDeals, EventTypeTaskCreated, false},
		{CategoryTasks, EventTypeTaskCompleted, true},
		{CategoryCampaigns, EventTypeCampaignClicked, true},
		{CategoryCampaigns, EventTypeCampaignViewed, true},
		{CategoryNotes, EventTypeNoteAdded, true},
		{CategoryNotes, EventTypeMessageSent, false},
	}

	for _, c := range cases {
		if got := c.cat.Matches(c.typ); got != c.want {
			t.Errorf("category %q vs %q: expected %v, got %v", c.cat, c.typ, c.want, got)
		}
	}
}

func TestFilterByCategory_KeepsRelativeOrder(t *testing.T) {
	ts := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	// 3 eventos de deals, 2 de tareas, 1 nota, intercalados
	events := []Event{
		{ID: "deal_created_d1", Type: EventTypeDealCreated, Timestamp: ts},
		{ID: "task_created_t1", Type: EventTypeTaskCreated, Timestamp: ts},
		{ID: "deal_won_d1", Type: EventTypeDealWon, Timestamp: ts},
		{ID: "note_added_a1", Type: EventTypeNoteAdded, Timestamp: ts},
		{ID: "task_completed_t1", Type: EventTypeTaskCompleted, Timestamp: ts},
		{ID: "deal_stage_changed_d1_s1", Type: EventTypeDealStageChanged, Timestamp: ts},
	}

	got := FilterByCategory(events, CategoryDeals)
	if len(got) != 3 {
		t.Fatalf("expected 3 deal events, got %d", len(got))
	}

	wantOrder := []string{"deal_created_d1", "deal_won_d1", "deal_stage_changed_d1_s1"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestFilterByCategory_AllIsPassthrough(t *testing.T) {
	events := []Event{
		{ID: "e1", Type: EventTypeDealCreated},
		{ID: "e2", Type: EventTypeNoteAdded},
	}

	if got := FilterByCategory(events, CategoryAll); len(got) != len(events) {
		t.Fatalf("category all should keep everything, got %d", len(got))
	}
	if got := FilterByCategory(events, ""); len(got) != len(events) {
		t.Fatalf("empty category should behave like all, got %d", len(got))
	}
}
