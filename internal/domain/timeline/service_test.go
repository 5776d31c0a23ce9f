package timeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"crm-timeline/internal/domain/records"
	"crm-timeline/internal/platform/logger"
)

// -------------------------
// Fakes de readers
// -------------------------

type fakeActivities struct {
	items []records.Activity
	err   error
}

func (f *fakeActivities) ListByWorkspace(_ context.Context, _ string, filter records.ActivityFilter) ([]records.Activity, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]records.Activity, 0)
	for _, a := range f.items {
		if filter.ContactID != "" && a.ContactID != filter.ContactID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type fakeDeals struct {
	items []records.Deal
	err   error
}

func (f *fakeDeals) ListByWorkspace(_ context.Context, _ string, filter records.DealFilter) ([]records.Deal, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]records.Deal, 0)
	for _, d := range f.items {
		if filter.ContactID != "" && d.ContactID != filter.ContactID {
			continue
		}
		if filter.DealID != "" && d.ID != filter.DealID {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

type fakeTasks struct {
	items []records.Task
	err   error
}

func (f *fakeTasks) ListByWorkspace(_ context.Context, _ string) ([]records.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fakeContacts struct {
	items []records.Contact
	err   error
}

func (f *fakeContacts) ListByWorkspace(_ context.Context, _ string, filter records.ContactFilter) ([]records.Contact, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]records.Contact, 0)
	for _, c := range f.items {
		if filter.ContactID != "" && c.ID != filter.ContactID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

type fakeCampaigns struct {
	items []records.Campaign
	err   error
}

func (f *fakeCampaigns) ListByWorkspace(_ context.Context, _ string) ([]records.Campaign, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fakeUsers struct {
	items []records.User
	err   error
	calls int
}

func (f *fakeUsers) ListByIDs(_ context.Context, _ string, ids []string) ([]records.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	byID := make(map[string]records.User, len(f.items))
	for _, u := range f.items {
		byID[u.ID] = u
	}
	out := make([]records.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

type fixture struct {
	activities *fakeActivities
	deals      *fakeDeals
	tasks      *fakeTasks
	contacts   *fakeContacts
	campaigns  *fakeCampaigns
	users      *fakeUsers
}

func newFixture() *fixture {
	return &fixture{
		activities: &fakeActivities{},
		deals:      &fakeDeals{},
		tasks:      &fakeTasks{},
		contacts:   &fakeContacts{},
		campaigns:  &fakeCampaigns{},
		users:      &fakeUsers{},
	}
}

func (f *fixture) service() *Service {
	return NewService(Readers{
		Activities: f.activities,
		Deals:      f.deals,
		Tasks:      f.tasks,
		Contacts:   f.contacts,
		Campaigns:  f.campaigns,
		Users:      f.users,
	}, logger.Nop())
}

func day(d int, hour int) time.Time {
	return time.Date(2024, 1, d, hour, 0, 0, 0, time.UTC)
}

func seedMixed(f *fixture) {
	amount := 900.0
	closed := day(5, 0)

	f.activities.items = []records.Activity{
		{ID: "a1", Type: records.ActivityTypeCall, ContactID: "c1", OwnerID: "u1", CreatedAt: day(8, 10)},
		{ID: "a2", Type: records.ActivityTypeNote, ContactID: "c2", OwnerID: "u2", CreatedAt: day(7, 9)},
	}
	f.deals.items = []records.Deal{
		{ID: "d1", Title: "Plan Pro", Status: records.DealStatusWon, Amount: &amount, ContactID: "c1",
			OwnerID: "u1", CloseDate: &closed, CreatedAt: day(1, 0), UpdatedAt: day(5, 3)},
	}
	f.tasks.items = []records.Task{
		{ID: "t1", Title: "Llamar", Status: records.TaskStatusDone, OwnerID: "u3", CreatedAt: day(3, 8), UpdatedAt: day(6, 8)},
	}
	f.contacts.items = []records.Contact{
		{ID: "c1", Name: "Ana", OwnerID: "u1", CreatedAt: day(2, 12)},
		{ID: "c2", Name: "Bruno", CreatedAt: day(4, 12)},
	}
	f.campaigns.items = []records.Campaign{
		{ID: "cam1", Name: "Verano", Status: records.CampaignStatusActive, CreatedAt: day(1, 1), UpdatedAt: day(6, 1)},
	}
	f.users.items = []records.User{
		{ID: "u1", FullName: "Ana García", Email: "ana@acme.test"},
		{ID: "u2", Email: "bruno@acme.test"},
		{ID: "u3"},
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Build_GlobalOrderAndUniqueness(t *testing.T) {
	f := newFixture()
	seedMixed(f)

	res, err := f.service().Build(context.Background(), "ws-1", Query{Now: day(10, 12)})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if len(res.Events) == 0 {
		t.Fatal("expected events")
	}

	for i := 0; i+1 < len(res.Events); i++ {
		if res.Events[i].Timestamp.Before(res.Events[i+1].Timestamp) {
			t.Fatalf("order violated at %d: %v before %v", i,
				res.Events[i].Timestamp, res.Events[i+1].Timestamp)
		}
	}

	seen := map[string]bool{}
	for _, e := range res.Events {
		if seen[e.ID] {
			t.Fatalf("duplicate event id %q in merged sequence", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestService_Build_Idempotent(t *testing.T) {
	f := newFixture()
	seedMixed(f)
	svc := f.service()

	a, _ := svc.Build(context.Background(), "ws-1", Query{Now: day(10, 12)})
	b, _ := svc.Build(context.Background(), "ws-1", Query{Now: day(10, 12)})

	if len(a.Events) != len(b.Events) {
		t.Fatalf("event counts differ: %d vs %d", len(a.Events), len(b.Events))
	}
	for i := range a.Events {
		if a.Events[i].ID != b.Events[i].ID {
			t.Fatalf("position %d differs: %s vs %s", i, a.Events[i].ID, b.Events[i].ID)
		}
	}
}

func TestService_Build_PartialFetchFailure(t *testing.T) {
	f := newFixture()
	seedMixed(f)
	f.campaigns.err = errors.New("campaigns query timeout")

	res, err := f.service().Build(context.Background(), "ws-1", Query{Now: day(10, 12)})
	if err != nil {
		t.Fatalf("one failing source should not fail the build: %v", err)
	}

	for _, e := range res.Events {
		if e.Source == SourceCampaigns {
			t.Fatalf("failed source should contribute zero events, found %s", e.ID)
		}
	}

	// el resto de las fuentes sigue presente
	hasDeal, hasTask := false, false
	for _, e := range res.Events {
		if e.Source == SourceDeals {
			hasDeal = true
		}
		if e.Source == SourceTasks {
			hasTask = true
		}
	}
	if !hasDeal || !hasTask {
		t.Fatal("surviving sources should still contribute events")
	}
}

func TestService_Build_OwnerEnrichment(t *testing.T) {
	f := newFixture()
	seedMixed(f)

	res, err := f.service().Build(context.Background(), "ws-1", Query{Now: day(10, 12)})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	if f.users.calls != 1 {
		t.Fatalf("owner lookup must be ONE batch call, got %d", f.users.calls)
	}

	names := map[string]string{}
	for _, e := range res.Events {
		if e.OwnerID != "" {
			names[e.OwnerID] = e.OwnerName
		}
	}

	// preferencia: nombre completo > email > "Unknown"
	if names["u1"] != "Ana García" {
		t.Fatalf("u1: expected full name, got %q", names["u1"])
	}
	if names["u2"] != "bruno@acme.test" {
		t.Fatalf("u2: expected email fallback, got %q", names["u2"])
	}
	if names["u3"] != "Unknown" {
		t.Fatalf("u3: expected Unknown fallback, got %q", names["u3"])
	}
}

func TestService_Build_EnrichmentFailureIsNonFatal(t *testing.T) {
	f := newFixture()
	seedMixed(f)
	f.users.err = errors.New("directory unavailable")

	res, err := f.service().Build(context.Background(), "ws-1", Query{Now: day(10, 12)})
	if err != nil {
		t.Fatalf("enrichment failure should not fail the build: %v", err)
	}

	for _, e := range res.Events {
		if e.OwnerName != "" {
			t.Fatalf("owner_name should stay unset on enrichment failure, got %q", e.OwnerName)
		}
	}
}

func TestService_Build_EmptyWorkspaceIsEmptyView(t *testing.T) {
	f := newFixture()
	seedMixed(f)

	res, err := f.service().Build(context.Background(), "", Query{Now: day(10, 12)})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if len(res.Events) != 0 || len(res.Groups) != 0 {
		t.Fatalf("missing workspace should yield empty view, got %d events", len(res.Events))
	}
}

func TestService_Build_DealLifecycleScenario(t *testing.T) {
	f := newFixture()
	amount := 1200.0
	closed := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	f.deals.items = []records.Deal{{
		ID:        "d9",
		Title:     "Onboarding",
		Status:    records.DealStatusWon,
		Amount:    &amount,
		ContactID: "c1",
		CloseDate: &closed,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: closed,
	}}
	svc := f.service()

	res, _ := svc.Build(context.Background(), "ws-1", Query{Now: day(10, 12)})

	got := map[string]time.Time{}
	for _, e := range res.Events {
		got[e.ID] = e.Timestamp
	}
	if len(got) != 2 {
		t.Fatalf("expected exactly 2 events, got %d", len(got))
	}
	if !got["deal_created_d9"].Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("deal_created timestamp wrong: %v", got["deal_created_d9"])
	}
	if !got["deal_won_d9"].Equal(closed) {
		t.Fatalf("deal_won timestamp wrong: %v", got["deal_won_d9"])
	}

	// con un contact_id ajeno, ambos desaparecen
	other, _ := svc.Build(context.Background(), "ws-1", Query{ContactID: "c-otro", Now: day(10, 12)})
	if len(other.Events) != 0 {
		t.Fatalf("unrelated contact filter should hide the deal, got %d events", len(other.Events))
	}
}

func TestService_Build_ContactFilterScope(t *testing.T) {
	f := newFixture()
	seedMixed(f)

	res, _ := f.service().Build(context.Background(), "ws-1", Query{ContactID: "c1", Now: day(10, 12)})

	for _, e := range res.Events {
		switch e.Source {
		case SourceActivities, SourceDeals, SourceContacts:
			if e.ContactID != "c1" {
				t.Fatalf("event %s leaked through contact filter", e.ID)
			}
		case SourceTasks, SourceCampaigns:
			// tareas y campañas no honran contact_id: deben seguir presentes
		}
	}

	hasTask, hasCampaign := false, false
	for _, e := range res.Events {
		if e.Source == SourceTasks {
			hasTask = true
		}
		if e.Source == SourceCampaigns {
			hasCampaign = true
		}
	}
	if !hasTask || !hasCampaign {
		t.Fatal("tasks and campaigns ignore the contact filter and should remain")
	}
}

func TestService_Build_GroupsCoverFilteredEvents(t *testing.T) {
	f := newFixture()
	seedMixed(f)

	res, _ := f.service().Build(context.Background(), "ws-1", Query{Category: CategoryDeals, Now: day(10, 12)})

	grouped := 0
	for _, g := range res.Groups {
		grouped += len(g.Events)
	}
	if grouped != len(res.Events) {
		t.Fatalf("groups should cover the filtered set exactly: %d vs %d", grouped, len(res.Events))
	}
	for _, e := range res.Events {
		if !CategoryDeals.Matches(e.Type) {
			t.Fatalf("non-deal event %s survived the category filter", e.ID)
		}
	}
}
