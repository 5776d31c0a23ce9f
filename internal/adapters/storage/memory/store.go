// Package memory implementa los readers del timeline sobre slices en
// memoria. Se usa en modo dev (sin DB_DSN) y en tests end-to-end; los
// datos se cargan con los métodos Add*.
package memory

import (
	"context"
	"sort"
	"sync"

	"crm-timeline/internal/domain/records"
)

const defaultContactLimit = 500

type Store struct {
	mu sync.RWMutex

	activities []records.Activity
	deals      []records.Deal
	tasks      []records.Task
	contacts   []records.Contact
	campaigns  []records.Campaign
	users      map[string]records.User
}

func NewStore() *Store {
	return &Store{users: make(map[string]records.User)}
}

func (s *Store) AddActivity(a records.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = append(s.activities, a)
}

func (s *Store) AddDeal(d records.Deal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deals = append(s.deals, d)
}

func (s *Store) AddTask(t records.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, t)
}

func (s *Store) AddContact(c records.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = append(s.contacts, c)
}

func (s *Store) AddCampaign(c records.Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns = append(s.campaigns, c)
}

func (s *Store) AddUser(u records.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// Un wrapper chico por puerto: los seis readers comparten el mismo
// Store pero cada interfaz pide su propio ListByWorkspace.

func (s *Store) Activities() records.ActivityReader { return activityReader{s} }
func (s *Store) Deals() records.DealReader          { return dealReader{s} }
func (s *Store) Tasks() records.TaskReader          { return taskReader{s} }
func (s *Store) Contacts() records.ContactReader    { return contactReader{s} }
func (s *Store) Campaigns() records.CampaignReader  { return campaignReader{s} }
func (s *Store) Users() records.UserDirectory       { return userDirectory{s} }

type activityReader struct{ s *Store }

func (r activityReader) ListByWorkspace(ctx context.Context, workspaceID string, f records.ActivityFilter) ([]records.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]records.Activity, 0)
	for _, a := range r.s.activities {
		if a.WorkspaceID != workspaceID {
			continue
		}
		if f.ContactID != "" && a.ContactID != f.ContactID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type dealReader struct{ s *Store }

func (r dealReader) ListByWorkspace(ctx context.Context, workspaceID string, f records.DealFilter) ([]records.Deal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]records.Deal, 0)
	for _, d := range r.s.deals {
		if d.WorkspaceID != workspaceID {
			continue
		}
		if f.ContactID != "" && d.ContactID != f.ContactID {
			continue
		}
		if f.DealID != "" && d.ID != f.DealID {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

type taskReader struct{ s *Store }

func (r taskReader) ListByWorkspace(ctx context.Context, workspaceID string) ([]records.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]records.Task, 0)
	for _, t := range r.s.tasks {
		if t.WorkspaceID == workspaceID {
			out = append(out, t)
		}
	}
	return out, nil
}

type contactReader struct{ s *Store }

func (r contactReader) ListByWorkspace(ctx context.Context, workspaceID string, f records.ContactFilter) ([]records.Contact, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]records.Contact, 0)
	for _, c := range r.s.contacts {
		if c.WorkspaceID != workspaceID {
			continue
		}
		if f.ContactID != "" && c.ID != f.ContactID {
			continue
		}
		out = append(out, c)
	}

	// mismo contrato que el adapter de Postgres: los N más recientes
	limit := f.Limit
	if limit <= 0 {
		limit = defaultContactLimit
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

type campaignReader struct{ s *Store }

func (r campaignReader) ListByWorkspace(ctx context.Context, workspaceID string) ([]records.Campaign, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]records.Campaign, 0)
	for _, c := range r.s.campaigns {
		if c.WorkspaceID == workspaceID {
			out = append(out, c)
		}
	}
	return out, nil
}

type userDirectory struct{ s *Store }

func (r userDirectory) ListByIDs(ctx context.Context, workspaceID string, ids []string) ([]records.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]records.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}
