package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"realtydesk/internal/estate/domain/entities"
	"realtydesk/internal/estate/domain/pagination"
	"realtydesk/internal/estate/ports/repositories"
	"realtydesk/pkg/logger"
)

// PlacementRepository реализует интерфейс repositories.PlacementRepository для работы с Postgres.
type PlacementRepository struct {
	db Querier
}

// NewPlacementRepository создает новый экземпляр репозитория размещений.
func NewPlacementRepository(db Querier) repositories.PlacementRepository {
	return &PlacementRepository{db: db}
}

// List возвращает страницу размещенных объектов недвижимости вместе
// с действующими размещенными контрактами управления.
func (r *PlacementRepository) List(ctx context.Context, args pagination.Arguments[uuid.UUID], filter entities.PlacementFilter) (*pagination.Page[uuid.UUID, entities.Placement], error) {
	log := logger.Log(ctx).With(zap.String("repository", "placement"), zap.String("method", "List"))

	limit := int32(args.Limit()) + 1
	params := []interface{}{
		entities.ContractKindManagementForRent,
		entities.ContractKindManagementForSale,
		limit,
	}

	var cursorClause string
	if cursor := args.Cursor(); cursor != nil {
		params = append(params, *cursor)
		cursorClause = fmt.Sprintf("AND realty_id %s $%d::UUID ", args.Kind().Operator(), len(params))
	}

	var noRentClause, noSaleClause string
	if !filter.Rent {
		noRentClause = "AND rent_contract_id IS NULL "
	}
	if !filter.Sale {
		noSaleClause = "AND sale_contract_id IS NULL "
	}

	order := args.Kind().Order()

	var sb strings.Builder
	sb.WriteString(`
        SELECT realty_id, rent_contract_id, sale_contract_id
        FROM (SELECT id AS realty_id,
                     (SELECT id
                      FROM contracts
                      WHERE kind = $1::INT2
                        AND is_placed
                        AND terminated_at IS NULL
                        AND (expires_at IS NULL OR expires_at > NOW())
                        AND realty_id = realties.id
                      LIMIT 1) AS rent_contract_id,
                     (SELECT id
                      FROM contracts
                      WHERE kind = $2::INT2
                        AND is_placed
                        AND terminated_at IS NULL
                        AND (expires_at IS NULL OR expires_at > NOW())
                        AND realty_id = realties.id
                      LIMIT 1) AS sale_contract_id
              FROM realties) AS realty
        WHERE (rent_contract_id IS NOT NULL OR sale_contract_id IS NOT NULL)
        `)
	sb.WriteString(cursorClause)
	sb.WriteString(noRentClause)
	sb.WriteString(noSaleClause)
	fmt.Fprintf(&sb, "ORDER BY realty_id %s, rent_contract_id %s, sale_contract_id %s LIMIT $3::INT4",
		order, order, order)

	rows, err := r.db.Query(ctx, sb.String(), params...)
	if err != nil {
		log.Error(ctx, "error listing placements", zap.Error(err))
		return nil, fmt.Errorf("error listing placements: %w", err)
	}
	defer rows.Close()

	placements := make([]entities.Placement, 0, args.Limit()+1)
	for rows.Next() {
		var placement entities.Placement
		if err := rows.Scan(&placement.RealtyID, &placement.RentContractID, &placement.SaleContractID); err != nil {
			log.Error(ctx, "error scanning placement row", zap.Error(err))
			return nil, fmt.Errorf("error scanning placement row: %w", err)
		}
		placements = append(placements, placement)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error reading placement rows", zap.Error(err))
		return nil, fmt.Errorf("error reading placement rows: %w", err)
	}

	hasMore := len(placements) > args.Limit()
	if hasMore {
		placements = placements[:args.Limit()]
	}

	edges := make([]pagination.Edge[uuid.UUID, entities.Placement], len(placements))
	for i, placement := range placements {
		edges[i] = pagination.Edge[uuid.UUID, entities.Placement]{
			Cursor: placement.RealtyID,
			Node:   placement,
		}
	}

	return pagination.NewPage(args, edges, hasMore), nil
}

// TotalCount возвращает число объектов недвижимости, имеющих хотя бы
// один действующий размещенный контракт управления.
func (r *PlacementRepository) TotalCount(ctx context.Context) (int32, error) {
	log := logger.Log(ctx).With(zap.String("repository", "placement"), zap.String("method", "TotalCount"))

	query := `
        SELECT COUNT(*)::INT4
        FROM realties
        WHERE EXISTS(SELECT id
                     FROM contracts
                     WHERE kind = $1::INT2
                       AND is_placed
                       AND terminated_at IS NULL
                       AND (expires_at IS NULL OR expires_at > NOW())
                       AND realty_id = realties.id
                     LIMIT 1)
           OR EXISTS(SELECT id
                     FROM contracts
                     WHERE kind = $2::INT2
                       AND is_placed
                       AND terminated_at IS NULL
                       AND (expires_at IS NULL OR expires_at > NOW())
                       AND realty_id = realties.id
                     LIMIT 1)
    `

	var count int32
	err := r.db.QueryRow(ctx, query,
		entities.ContractKindManagementForRent,
		entities.ContractKindManagementForSale,
	).Scan(&count)
	if err != nil {
		log.Error(ctx, "error counting placements", zap.Error(err))
		return 0, fmt.Errorf("error counting placements: %w", err)
	}

	return count, nil
}
