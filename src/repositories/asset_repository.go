package repositories

import (
	"context"
	"errors"

	"investmanager/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAssetNotFound = errors.New("asset not found")

type AssetRepository interface {
	GetAll(ctx context.Context) ([]models.Asset, error)
	GetByID(ctx context.Context, id int) (*models.Asset, error)
	Create(ctx context.Context, asset *models.Asset) error
	Delete(ctx context.Context, id int) error
}

type assetRepo struct {
	db *pgxpool.Pool
}

func NewAssetRepository(db *pgxpool.Pool) AssetRepository {
	return &assetRepo{db: db}
}

const assetColumns = `id, name, asset_type, amount, buy_price, buy_date, created_at`

func scanAsset(row pgx.Row, asset *models.Asset) error {
	return row.Scan(&asset.ID, &asset.Name, &asset.AssetType, &asset.Amount, &asset.BuyPrice, &asset.BuyDate, &asset.CreatedAt)
}

func (r *assetRepo) GetAll(ctx context.Context) ([]models.Asset, error) {
	rows, err := r.db.Query(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := make([]models.Asset, 0)
	for rows.Next() {
		var asset models.Asset
		if err := scanAsset(rows, &asset); err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

func (r *assetRepo) GetByID(ctx context.Context, id int) (*models.Asset, error) {
	var asset models.Asset
	err := scanAsset(r.db.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id), &asset)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAssetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepo) Create(ctx context.Context, asset *models.Asset) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO assets (name, asset_type, amount, buy_price, buy_date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		asset.Name, string(asset.AssetType), asset.Amount, asset.BuyPrice, asset.BuyDate,
	).Scan(&asset.ID, &asset.CreatedAt)
}

func (r *assetRepo) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAssetNotFound
	}
	return nil
}
