package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rpggio/staffplan/internal/repository"
)

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// paginate appends LIMIT/OFFSET. A zero limit returns every row.
func paginate(query string, args []interface{}, limit, offset int) (string, []interface{}) {
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
		if offset > 0 {
			query += " OFFSET ?"
			args = append(args, offset)
		}
	}
	return query, args
}

// requireRow returns ErrNotFound when the statement touched no row.
func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// linkKnowledge inserts owner→knowledge rows, accepting only knowledge of
// the same tenant.
func linkKnowledge(ctx context.Context, tx *sql.Tx, table, ownerColumn, tenantID, ownerID string, ids []string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, knowledge_id)
		SELECT ?, id FROM knowledge WHERE id = ? AND tenant_id = ?
	`, table, ownerColumn)

	for _, id := range ids {
		result, err := tx.ExecContext(ctx, query, ownerID, id, tenantID)
		if err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return fmt.Errorf("failed to link knowledge: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if n == 0 {
			return repository.ErrForeignKeyViolation
		}
	}
	return nil
}

// knowledgeIDs lists the knowledge linked to one owner, ordered by name.
func knowledgeIDs(ctx context.Context, q queryer, table, ownerColumn, ownerID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT l.knowledge_id FROM %s l
		JOIN knowledge k ON k.id = l.knowledge_id
		WHERE l.%s = ?
		ORDER BY k.name
	`, table, ownerColumn)

	rows, err := q.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list knowledge links: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan knowledge link: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating knowledge links: %w", err)
	}
	return ids, nil
}

// ftsQuery turns free text into an FTS5 prefix query matching every term.
func ftsQuery(text string) string {
	terms := strings.Fields(text)
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ReplaceAll(term, `"`, "")
		if term == "" {
			continue
		}
		quoted = append(quoted, `"`+term+`"*`)
	}
	return strings.Join(quoted, " ")
}
