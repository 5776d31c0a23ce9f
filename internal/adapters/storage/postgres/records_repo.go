package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"crm-timeline/internal/domain/records"
)

// Repos de solo lectura sobre las tablas de los módulos CRUD.
// Todas las queries van scopeadas por workspace_id; acá no se escribe.

// maxContactRows es el tope duro de contactos que entran al timeline
// (los más recientes primero). Ver records.ContactFilter.Limit.
const maxContactRows = 500

type ActivitiesRepo struct {
	db *sql.DB
}

func NewActivitiesRepo(db *sql.DB) *ActivitiesRepo {
	return &ActivitiesRepo{db: db}
}

func (r *ActivitiesRepo) ListByWorkspace(ctx context.Context, workspaceID string, f records.ActivityFilter) ([]records.Activity, error) {
	workspaceID = strings.TrimSpace(workspaceID)
	if workspaceID == "" {
		return nil, nil
	}

	q := `
		SELECT id, workspace_id, type, title, description,
		       contact_id, deal_id, owner_id, date, created_at
		FROM activities
		WHERE workspace_id = $1
	`
	args := []any{workspaceID}
	if f.ContactID != "" {
		q += " AND contact_id = $2"
		args = append(args, f.ContactID)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.Activity, 0)
	for rows.Next() {
		var a records.Activity
		var typ string
		var contactID, dealID, ownerID, description sql.NullString
		var date sql.NullTime

		if err := rows.Scan(
			&a.ID, &a.WorkspaceID, &typ, &a.Title, &description,
			&contactID, &dealID, &ownerID, &date, &a.CreatedAt,
		); err != nil {
			return nil, err
		}

		a.Type = records.ActivityType(typ)
		a.Description = description.String
		a.ContactID = contactID.String
		a.DealID = dealID.String
		a.OwnerID = ownerID.String
		if date.Valid {
			t := date.Time
			a.Date = &t
		}

		out = append(out, a)
	}
	return out, rows.Err()
}

type DealsRepo struct {
	db *sql.DB
}

func NewDealsRepo(db *sql.DB) *DealsRepo {
	return &DealsRepo{db: db}
}

func (r *DealsRepo) ListByWorkspace(ctx context.Context, workspaceID string, f records.DealFilter) ([]records.Deal, error) {
	workspaceID = strings.TrimSpace(workspaceID)
	if workspaceID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT d.id, d.workspace_id, d.title, d.status, d.amount,
		       d.stage_id, COALESCE(s.name, ''), d.loss_reason,
		       d.contact_id, d.owner_id,
		       d.close_date, d.created_at, d.updated_at
		FROM deals d
		LEFT JOIN deal_stages s ON s.id = d.stage_id
		WHERE d.workspace_id = $1
	`)
	args := []any{workspaceID}
	argN := 2

	if f.ContactID != "" {
		sb.WriteString(" AND d.contact_id = $2")
		args = append(args, f.ContactID)
		argN++
	}
	if f.DealID != "" {
		sb.WriteString(fmt.Sprintf(" AND d.id = $%d", argN))
		args = append(args, f.DealID)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.Deal, 0)
	for rows.Next() {
		var d records.Deal
		var status string
		var amount sql.NullFloat64
		var stageID, stageName, lossReason, contactID, ownerID sql.NullString
		var closeDate sql.NullTime

		if err := rows.Scan(
			&d.ID, &d.WorkspaceID, &d.Title, &status, &amount,
			&stageID, &stageName, &lossReason,
			&contactID, &ownerID,
			&closeDate, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, err
		}

		d.Status = records.DealStatus(status)
		if amount.Valid {
			v := amount.Float64
			d.Amount = &v
		}
		d.StageID = stageID.String
		d.StageName = stageName.String
		d.LossReason = lossReason.String
		d.ContactID = contactID.String
		d.OwnerID = ownerID.String
		if closeDate.Valid {
			t := closeDate.Time
			d.CloseDate = &t
		}

		out = append(out, d)
	}
	return out, rows.Err()
}

type TasksRepo struct {
	db *sql.DB
}

func NewTasksRepo(db *sql.DB) *TasksRepo {
	return &TasksRepo{db: db}
}

func (r *TasksRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]records.Task, error) {
	workspaceID = strings.TrimSpace(workspaceID)
	if workspaceID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, workspace_id, title, status, owner_id,
		       due_date, created_at, updated_at
		FROM tasks
		WHERE workspace_id = $1
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.Task, 0)
	for rows.Next() {
		var t records.Task
		var status string
		var ownerID sql.NullString
		var dueDate sql.NullTime

		if err := rows.Scan(
			&t.ID, &t.WorkspaceID, &t.Title, &status, &ownerID,
			&dueDate, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}

		t.Status = records.TaskStatus(status)
		t.OwnerID = ownerID.String
		if dueDate.Valid {
			d := dueDate.Time
			t.DueDate = &d
		}

		out = append(out, t)
	}
	return out, rows.Err()
}

type ContactsRepo struct {
	db *sql.DB
}

func NewContactsRepo(db *sql.DB) *ContactsRepo {
	return &ContactsRepo{db: db}
}

func (r *ContactsRepo) ListByWorkspace(ctx context.Context, workspaceID string, f records.ContactFilter) ([]records.Contact, error) {
	workspaceID = strings.TrimSpace(workspaceID)
	if workspaceID == "" {
		return nil, nil
	}

	limit := f.Limit
	if limit <= 0 || limit > maxContactRows {
		limit = maxContactRows
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT id, workspace_id, name, email, lead_source, owner_id, created_at
		FROM contacts
		WHERE workspace_id = $1
	`)
	args := []any{workspaceID}
	argN := 2

	if f.ContactID != "" {
		sb.WriteString(" AND id = $2")
		args = append(args, f.ContactID)
		argN++
	}

	// tope duro: los N más recientes
	sb.WriteString(fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argN))
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.Contact, 0)
	for rows.Next() {
		var c records.Contact
		var email, leadSource, ownerID sql.NullString

		if err := rows.Scan(
			&c.ID, &c.WorkspaceID, &c.Name, &email, &leadSource, &ownerID, &c.CreatedAt,
		); err != nil {
			return nil, err
		}

		c.Email = email.String
		c.LeadSource = leadSource.String
		c.OwnerID = ownerID.String

		out = append(out, c)
	}
	return out, rows.Err()
}

type CampaignsRepo struct {
	db *sql.DB
}

func NewCampaignsRepo(db *sql.DB) *CampaignsRepo {
	return &CampaignsRepo{db: db}
}

func (r *CampaignsRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]records.Campaign, error) {
	workspaceID = strings.TrimSpace(workspaceID)
	if workspaceID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, workspace_id, name, platform, status, created_at, updated_at
		FROM campaigns
		WHERE workspace_id = $1
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.Campaign, 0)
	for rows.Next() {
		var c records.Campaign
		var platform sql.NullString
		var status string

		if err := rows.Scan(
			&c.ID, &c.WorkspaceID, &c.Name, &platform, &status, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}

		c.Platform = platform.String
		c.Status = records.CampaignStatus(status)

		out = append(out, c)
	}
	return out, rows.Err()
}
