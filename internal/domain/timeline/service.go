package timeline

import (
	"context"
	"strings"
	"sync"
	"time"

	"crm-timeline/internal/domain/records"
	"crm-timeline/internal/platform/logger"
	"crm-timeline/internal/platform/metrics"
)

// Readers agrupa los puertos de lectura que consume la agregación.
type Readers struct {
	Activities records.ActivityReader
	Deals      records.DealReader
	Tasks      records.TaskReader
	Contacts   records.ContactReader
	Campaigns  records.CampaignReader
	Users      records.UserDirectory
}

// Service arma el timeline unificado. No guarda estado entre llamadas:
// cada Build es un pipeline puro sobre los resultados de los readers.
type Service struct {
	readers Readers
	log     logger.Logger
	now     func() time.Time
}

func NewService(readers Readers, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		readers: readers,
		log:     log,
		now:     time.Now,
	}
}

// Query son los parámetros de una agregación.
type Query struct {
	// ContactID restringe actividades, deals y contactos.
	// Tareas y campañas NO lo honran: es el comportamiento actual del
	// producto y queda como inconsistencia conocida y documentada.
	ContactID string

	// DealID restringe solo los eventos derivados de deals.
	DealID string

	Category Category

	// Now es el instante de referencia para el bucketing. Cero = reloj
	// de pared. Los tests siempre lo inyectan.
	Now time.Time
}

// orden fijo de concatenación; también desempata el sort estable.
var sourceOrder = []Source{
	SourceActivities,
	SourceDeals,
	SourceTasks,
	SourceContacts,
	SourceCampaigns,
}

type fetchResult struct {
	source Source
	events []Event
	err    error
}

// Build ejecuta la agregación completa para un workspace:
// fan-out de los cinco readers → normalización → merge + sort global →
// enriquecimiento de owners → filtro por categoría → buckets de fecha.
//
// Política de fallas: por fuente y no fatal. Un reader que falla aporta
// cero eventos, se loguea y la agregación sigue con el resto. Lo mismo
// para el lookup batch de owners. El timeline es una vista best-effort,
// no una lectura transaccional.
func (s *Service) Build(ctx context.Context, workspaceID string, q Query) (Result, error) {
	started := time.Now()
	defer func() {
		metrics.BuildDuration.Observe(time.Since(started).Seconds())
	}()

	// Workspace sin resolver = tenant nuevo sin datos: vista vacía,
	// no es un error.
	workspaceID = strings.TrimSpace(workspaceID)
	if workspaceID == "" {
		return Result{Events: []Event{}, Groups: []Group{}}, nil
	}

	now := q.Now
	if now.IsZero() {
		now = s.now()
	}

	results := s.fetchAll(ctx, workspaceID, q)

	// Join: el orden global exige esperar TODAS las fuentes antes de
	// ordenar. Concatenación en orden fijo de fuente.
	merged := make([]Event, 0)
	for _, src := range sourceOrder {
		r := results[src]
		if r.err != nil {
			s.log.Warn("source fetch failed, continuing without it", logger.Fields{
				"workspace_id": workspaceID,
				"source":       string(src),
				"error":        r.err.Error(),
			})
			metrics.SourceFailures.WithLabelValues(string(src)).Inc()
			continue
		}
		merged = append(merged, r.events...)
	}

	sortEventsDesc(merged)

	s.enrichOwners(ctx, workspaceID, merged)

	filtered := FilterByCategory(merged, q.Category)

	metrics.EventsReturned.Observe(float64(len(filtered)))

	return Result{
		Events: filtered,
		Groups: GroupByDay(filtered, now),
	}, nil
}

// fetchAll dispara los cinco readers en paralelo y junta resultados por
// fuente. Cada goroutine normaliza lo suyo (funciones puras).
func (s *Service) fetchAll(ctx context.Context, workspaceID string, q Query) map[Source]fetchResult {
	out := make(chan fetchResult, len(sourceOrder))
	var wg sync.WaitGroup

	run := func(src Source, fn func() ([]Event, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			evs, err := fn()
			out <- fetchResult{source: src, events: evs, err: err}
		}()
	}

	run(SourceActivities, func() ([]Event, error) {
		as, err := s.readers.Activities.ListByWorkspace(ctx, workspaceID, records.ActivityFilter{ContactID: q.ContactID})
		if err != nil {
			return nil, err
		}
		evs := make([]Event, 0, len(as))
		for _, a := range as {
			evs = append(evs, NormalizeActivity(a)...)
		}
		return evs, nil
	})

	run(SourceDeals, func() ([]Event, error) {
		ds, err := s.readers.Deals.ListByWorkspace(ctx, workspaceID, records.DealFilter{ContactID: q.ContactID, DealID: q.DealID})
		if err != nil {
			return nil, err
		}
		evs := make([]Event, 0, len(ds))
		for _, d := range ds {
			evs = append(evs, NormalizeDeal(d)...)
		}
		return evs, nil
	})

	run(SourceTasks, func() ([]Event, error) {
		ts, err := s.readers.Tasks.ListByWorkspace(ctx, workspaceID)
		if err != nil {
			return nil, err
		}
		evs := make([]Event, 0, len(ts))
		for _, t := range ts {
			evs = append(evs, NormalizeTask(t)...)
		}
		return evs, nil
	})

	run(SourceContacts, func() ([]Event, error) {
		cs, err := s.readers.Contacts.ListByWorkspace(ctx, workspaceID, records.ContactFilter{
			ContactID: q.ContactID,
			Limit:     maxContactRecords,
		})
		if err != nil {
			return nil, err
		}
		return NormalizeContacts(cs), nil
	})

	run(SourceCampaigns, func() ([]Event, error) {
		cs, err := s.readers.Campaigns.ListByWorkspace(ctx, workspaceID)
		if err != nil {
			return nil, err
		}
		evs := make([]Event, 0, len(cs))
		for _, c := range cs {
			evs = append(evs, NormalizeCampaign(c)...)
		}
		return evs, nil
	})

	wg.Wait()
	close(out)

	results := make(map[Source]fetchResult, len(sourceOrder))
	for r := range out {
		results[r.source] = r
	}
	return results
}

// enrichOwners resuelve nombres de owners con UN solo lookup batch.
// Si el lookup falla se loguea y owner_name queda sin setear: la
// agregación no aborta por esto.
func (s *Service) enrichOwners(ctx context.Context, workspaceID string, events []Event) {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, e := range events {
		if e.OwnerID == "" {
			continue
		}
		if _, ok := seen[e.OwnerID]; ok {
			continue
		}
		seen[e.OwnerID] = struct{}{}
		ids = append(ids, e.OwnerID)
	}
	if len(ids) == 0 {
		return
	}

	users, err := s.readers.Users.ListByIDs(ctx, workspaceID, ids)
	if err != nil {
		s.log.Warn("owner enrichment failed, leaving names unset", logger.Fields{
			"workspace_id": workspaceID,
			"owners":       len(ids),
			"error":        err.Error(),
		})
		metrics.EnrichmentFailures.Inc()
		return
	}

	names := make(map[string]string, len(users))
	for _, u := range users {
		// preferencia: nombre completo > email > "Unknown"
		switch {
		case strings.TrimSpace(u.FullName) != "":
			names[u.ID] = strings.TrimSpace(u.FullName)
		case strings.TrimSpace(u.Email) != "":
			names[u.ID] = strings.TrimSpace(u.Email)
		default:
			names[u.ID] = "Unknown"
		}
	}

	for i := range events {
		if events[i].OwnerID == "" {
			continue
		}
		if name, ok := names[events[i].OwnerID]; ok {
			events[i].OwnerName = name
		}
	}
}
