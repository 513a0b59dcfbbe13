package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/contentloom/contentloom/internal/domain/asset"
	"github.com/contentloom/contentloom/internal/pkg/errors"
)

// AssetRepository implements asset.Repository
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *sql.DB) asset.Repository {
	return &AssetRepository{db: db}
}

// Create creates a new asset
func (r *AssetRepository) Create(ctx context.Context, a *asset.Asset) error {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	query := `
		INSERT INTO assets (team_id, kind, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		a.TeamID, string(a.Kind), a.Name, a.Description, now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create asset", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get asset ID", err)
	}

	a.ID = id
	return nil
}

// GetByID retrieves an asset owned by a team
func (r *AssetRepository) GetByID(ctx context.Context, teamID, id int64) (*asset.Asset, error) {
	query := `
		SELECT id, team_id, kind, name, description, created_at, updated_at
		FROM assets WHERE id = ? AND team_id = ?
	`

	var a asset.Asset
	var kind string
	var createdAt, updatedAt int64

	err := r.db.QueryRowContext(ctx, query, id, teamID).Scan(
		&a.ID, &a.TeamID, &kind, &a.Name, &a.Description, &createdAt, &updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Asset")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get asset", err)
	}

	a.Kind = asset.Kind(kind)
	a.CreatedAt = time.Unix(createdAt, 0)
	a.UpdatedAt = time.Unix(updatedAt, 0)

	return &a, nil
}

// List retrieves all assets of a kind for a team
func (r *AssetRepository) List(ctx context.Context, teamID int64, kind asset.Kind) ([]*asset.Asset, error) {
	query := `
		SELECT id, team_id, kind, name, description, created_at, updated_at
		FROM assets WHERE team_id = ? AND kind = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, teamID, string(kind))
	if err != nil {
		return nil, errors.DatabaseError("Failed to list assets", err)
	}
	defer rows.Close()

	var assets []*asset.Asset
	for rows.Next() {
		var a asset.Asset
		var k string
		var createdAt, updatedAt int64

		if err := rows.Scan(&a.ID, &a.TeamID, &k, &a.Name, &a.Description, &createdAt, &updatedAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan asset", err)
		}

		a.Kind = asset.Kind(k)
		a.CreatedAt = time.Unix(createdAt, 0)
		a.UpdatedAt = time.Unix(updatedAt, 0)
		assets = append(assets, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate assets", err)
	}

	return assets, nil
}

// Count returns how many assets of a kind the team currently has
func (r *AssetRepository) Count(ctx context.Context, teamID int64, kind asset.Kind) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM assets WHERE team_id = ? AND kind = ?`

	if err := r.db.QueryRowContext(ctx, query, teamID, string(kind)).Scan(&count); err != nil {
		return 0, errors.DatabaseError("Failed to count assets", err)
	}
	return count, nil
}

// Delete deletes an asset owned by a team
func (r *AssetRepository) Delete(ctx context.Context, teamID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = ? AND team_id = ?`, id, teamID)
	if err != nil {
		return errors.DatabaseError("Failed to delete asset", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to check delete result", err)
	}
	if rows == 0 {
		return errors.NotFound("Asset")
	}

	return nil
}
