package timeline

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"crm-timeline/internal/middleware"
	"crm-timeline/internal/ports/workspace"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, wsResolver workspace.Resolver) {
	r.Get("/timeline", getTimelineHandler(svc, wsResolver))
}

// eventResponse representa un evento del timeline devuelto por la API.
type eventResponse struct {
	ID           string            `json:"id"`
	EventType    EventType         `json:"event_type"`
	Timestamp    time.Time         `json:"timestamp"`
	Title        string            `json:"title"`
	Summary      string            `json:"summary,omitempty"`
	OwnerID      string            `json:"owner_id,omitempty"`
	OwnerName    string            `json:"owner_name,omitempty"`
	ContactID    string            `json:"contact_id,omitempty"`
	ContactName  string            `json:"contact_name,omitempty"`
	DealID       string            `json:"deal_id,omitempty"`
	DealTitle    string            `json:"deal_title,omitempty"`
	TaskID       string            `json:"task_id,omitempty"`
	TaskTitle    string            `json:"task_title,omitempty"`
	CampaignID   string            `json:"campaign_id,omitempty"`
	CampaignName string            `json:"campaign_name,omitempty"`
	Platform     string            `json:"platform,omitempty"`
	Value        float64           `json:"value,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	Source       Source            `json:"source"`
}

// groupResponse es un bucket de fecha con sus eventos ya ordenados.
type groupResponse struct {
	Label  string          `json:"label"`
	Events []eventResponse `json:"events"`
}

// timelineResponse es la salida completa: secuencia global + agrupado.
type timelineResponse struct {
	Events []eventResponse `json:"events"`
	Groups []groupResponse `json:"groups"`
}

var validCategories = map[Category]bool{
	CategoryAll:        true,
	CategoryCustomers:  true,
	CategoryActivities: true,
	CategoryMessages:   true,
	CategoryDeals:      true,
	CategoryTasks:      true,
	CategoryCampaigns:  true,
	CategoryNotes:      true,
}

// getTimelineHandler godoc
// @Summary Timeline unificado del workspace
// @Description Devuelve el timeline agregado del workspace del usuario: eventos derivados de actividades, deals, tareas, contactos y campañas, ordenados por timestamp descendente y agrupados por fecha (Today / Yesterday / Last Week / fecha). Autenticación: `X-Debug-User-ID` + `X-Debug-Workspace-ID` (dev) o `Authorization: Bearer <token>` (prod). Usuario sin workspace => timeline vacío (200).
// @Tags timeline
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-Workspace-ID header string false "Solo en modo dev, ID de workspace"
// @Param Authorization header string false "Bearer token en producción"
// @Param contact_id query string false "Restringe actividades, deals y contactos a ese contacto (tareas y campañas no lo honran)"
// @Param deal_id query string false "Restringe los eventos derivados de deals a ese deal"
// @Param category query string false "all|customers|activities|messages|deals|tasks|campaigns|notes (default all)"
// @Param now query string false "Instante de referencia para los buckets (RFC3339). Default: ahora"
// @Success 200 {object} timelineResponse
// @Failure 400 {string} string "categoría o now inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 502 {string} string "workspace resolver upstream error"
// @Router /timeline [get]
func getTimelineHandler(svc *Service, wsResolver workspace.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		workspaceID := strings.TrimSpace(claims.WorkspaceID)
		if workspaceID == "" && wsResolver != nil {
			ws, err := wsResolver.ResolveForUser(r.Context(), claims.UserID)
			switch {
			case errors.Is(err, workspace.ErrNoWorkspace):
				// tenant nuevo: vista vacía, no error
				writeJSON(w, http.StatusOK, timelineResponse{
					Events: []eventResponse{},
					Groups: []groupResponse{},
				})
				return
			case err != nil:
				http.Error(w, "workspace resolution failed", http.StatusBadGateway)
				return
			default:
				workspaceID = ws.ID
			}
		}

		q, err := parseQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		res, err := svc.Build(r.Context(), workspaceID, q)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toTimelineResponse(res))
	}
}

func parseQuery(r *http.Request) (Query, error) {
	q := Query{
		ContactID: strings.TrimSpace(r.URL.Query().Get("contact_id")),
		DealID:    strings.TrimSpace(r.URL.Query().Get("deal_id")),
		Category:  CategoryAll,
	}

	if v := strings.TrimSpace(r.URL.Query().Get("category")); v != "" {
		c := Category(v)
		if !validCategories[c] {
			return Query{}, errors.New("unknown category")
		}
		q.Category = c
	}

	if v := strings.TrimSpace(r.URL.Query().Get("now")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return Query{}, errors.New("now must be RFC3339")
		}
		q.Now = t
	}

	return q, nil
}

func toEventResponse(e Event) eventResponse {
	return eventResponse{
		ID:           e.ID,
		EventType:    e.Type,
		Timestamp:    e.Timestamp,
		Title:        e.Title,
		Summary:      e.Summary,
		OwnerID:      e.OwnerID,
		OwnerName:    e.OwnerName,
		ContactID:    e.ContactID,
		ContactName:  e.ContactName,
		DealID:       e.DealID,
		DealTitle:    e.DealTitle,
		TaskID:       e.TaskID,
		TaskTitle:    e.TaskTitle,
		CampaignID:   e.CampaignID,
		CampaignName: e.CampaignName,
		Platform:     e.Platform,
		Value:        e.Value,
		Metadata:     e.Metadata,
		Source:       e.Source,
	}
}

func toTimelineResponse(res Result) timelineResponse {
	events := make([]eventResponse, 0, len(res.Events))
	for _, e := range res.Events {
		events = append(events, toEventResponse(e))
	}

	groups := make([]groupResponse, 0, len(res.Groups))
	for _, g := range res.Groups {
		evs := make([]eventResponse, 0, len(g.Events))
		for _, e := range g.Events {
			evs = append(evs, toEventResponse(e))
		}
		groups = append(groups, groupResponse{Label: g.Label, Events: evs})
	}

	return timelineResponse{Events: events, Groups: groups}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
