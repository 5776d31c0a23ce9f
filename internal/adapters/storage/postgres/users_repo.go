package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"crm-timeline/internal/domain/records"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

// ListByIDs trae usuarios por id en UNA sola query (el enriquecimiento
// de owners depende de que esto sea un batch, no N lookups).
func (r *UsersRepo) ListByIDs(ctx context.Context, workspaceID string, ids []string) ([]records.User, error) {
	workspaceID = strings.TrimSpace(workspaceID)
	if workspaceID == "" || len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, 0, len(ids))
	args := []any{workspaceID}
	for i, id := range ids {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
		args = append(args, id)
	}

	q := `
		SELECT id, full_name, email
		FROM users
		WHERE workspace_id = $1
		  AND id IN (` + strings.Join(placeholders, ",") + `)`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.User, 0, len(ids))
	for rows.Next() {
		var u records.User
		var fullName, email sql.NullString

		if err := rows.Scan(&u.ID, &fullName, &email); err != nil {
			return nil, err
		}

		u.FullName = fullName.String
		u.Email = email.String

		out = append(out, u)
	}
	return out, rows.Err()
}
