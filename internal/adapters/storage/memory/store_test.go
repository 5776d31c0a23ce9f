package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"crm-timeline/internal/domain/records"
)

func TestContactReader_MostRecentFirstWithLimit(t *testing.T) {
	store := NewStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		store.AddContact(records.Contact{
			ID:          fmt.Sprintf("c%d", i),
			WorkspaceID: "ws-1",
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		})
	}

	got, err := store.Contacts().ListByWorkspace(context.Background(), "ws-1", records.ContactFilter{Limit: 3})
	if err != nil {
		t.Fatalf("ListByWorkspace error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 contacts, got %d", len(got))
	}
	// los más recientes, en orden descendente
	for i, want := range []string{"c9", "c8", "c7"} {
		if got[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, got[i].ID)
		}
	}
}

func TestReaders_WorkspaceIsolation(t *testing.T) {
	store := NewStore()
	now := time.Now()

	store.AddDeal(records.Deal{ID: "d1", WorkspaceID: "ws-1", CreatedAt: now, UpdatedAt: now})
	store.AddDeal(records.Deal{ID: "d2", WorkspaceID: "ws-2", CreatedAt: now, UpdatedAt: now})
	store.AddTask(records.Task{ID: "t1", WorkspaceID: "ws-2", CreatedAt: now, UpdatedAt: now})

	deals, _ := store.Deals().ListByWorkspace(context.Background(), "ws-1", records.DealFilter{})
	if len(deals) != 1 || deals[0].ID != "d1" {
		t.Fatalf("expected only ws-1 deals, got %+v", deals)
	}

	tasks, _ := store.Tasks().ListByWorkspace(context.Background(), "ws-1")
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks for ws-1, got %d", len(tasks))
	}
}

func TestDealReader_Filters(t *testing.T) {
	store := NewStore()
	now := time.Now()

	store.AddDeal(records.Deal{ID: "d1", WorkspaceID: "ws-1", ContactID: "c1", CreatedAt: now, UpdatedAt: now})
	store.AddDeal(records.Deal{ID: "d2", WorkspaceID: "ws-1", ContactID: "c2", CreatedAt: now, UpdatedAt: now})

	byContact, _ := store.Deals().ListByWorkspace(context.Background(), "ws-1", records.DealFilter{ContactID: "c2"})
	if len(byContact) != 1 || byContact[0].ID != "d2" {
		t.Fatalf("contact filter failed: %+v", byContact)
	}

	byDeal, _ := store.Deals().ListByWorkspace(context.Background(), "ws-1", records.DealFilter{DealID: "d1"})
	if len(byDeal) != 1 || byDeal[0].ID != "d1" {
		t.Fatalf("deal filter failed: %+v", byDeal)
	}
}
