package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"realtydesk/internal/estate/domain/pagination"
)

// buildIDListQuery собирает запрос страницы идентификаторов с курсором
// и нечетким поиском по заданной колонке. Порядок параметров: лимит,
// курсор, строка поиска, шаблон поиска.
func buildIDListQuery(table, base, column string, args pagination.Arguments[uuid.UUID], search *string) (string, []interface{}) {
	limit := int32(args.Limit()) + 1
	params := []interface{}{limit}

	var cursorClause string
	if cursor := args.Cursor(); cursor != nil {
		params = append(params, *cursor)
		cursorClause = fmt.Sprintf("AND id %s $%d::UUID ", args.Kind().Operator(), len(params))
	}

	var searchClause, searchOrdering string
	if search != nil {
		params = append(params, *search)
		searchOrdering = fmt.Sprintf("LEVENSHTEIN(%s, $%d::VARCHAR, 1, 1, 0) %s, ",
			column, len(params), args.Kind().Order())

		params = append(params, FuzzPattern(*search))
		searchClause = fmt.Sprintf("AND LOWER(%s) SIMILAR TO LOWER($%d::VARCHAR) ", column, len(params))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT id FROM %s WHERE %s ", table, base)
	sb.WriteString(cursorClause)
	sb.WriteString(searchClause)
	fmt.Fprintf(&sb, "ORDER BY %sid %s LIMIT $1::INT4", searchOrdering, args.Kind().Order())

	return sb.String(), params
}

// queryIDPage выполняет запрос страницы идентификаторов и собирает ее
// вместе с признаком наличия следующих строк.
func queryIDPage(ctx context.Context, db Querier, sql string, params []interface{}, args pagination.Arguments[uuid.UUID]) (*pagination.Page[uuid.UUID, uuid.UUID], error) {
	rows, err := db.Query(ctx, sql, params...)
	if err != nil {
		return nil, fmt.Errorf("error querying id page: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0, args.Limit()+1)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning id page row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading id page rows: %w", err)
	}

	hasMore := len(ids) > args.Limit()
	if hasMore {
		ids = ids[:args.Limit()]
	}

	edges := make([]pagination.Edge[uuid.UUID, uuid.UUID], len(ids))
	for i, id := range ids {
		edges[i] = pagination.Edge[uuid.UUID, uuid.UUID]{Cursor: id, Node: id}
	}

	return pagination.NewPage(args, edges, hasMore), nil
}
