package controllers

import (
	"context"

	"investmanager/src/schemas"
)

func (c *Controller) GetAllAssets(ctx context.Context) ([]schemas.AssetResponse, error) {
	assets, err := c.AssetService.ListAssets(ctx)
	if err != nil {
		return nil, err
	}
	return schemas.NewAssetsResponse(assets), nil
}

func (c *Controller) CreateAsset(ctx context.Context, request schemas.AssetRequest) (*schemas.AssetResponse, error) {
	asset, err := request.ToModel(c.Location)
	if err != nil {
		return nil, err
	}
	if err := c.AssetService.CreateAsset(ctx, asset); err != nil {
		return nil, err
	}
	response := schemas.NewAssetResponse(*asset)
	return &response, nil
}

func (c *Controller) DeleteAsset(ctx context.Context, id int) error {
	return c.AssetService.DeleteAsset(ctx, id)
}
