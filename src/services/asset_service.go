package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"investmanager/src/models"
	"investmanager/src/repositories"
	"investmanager/src/utils"

	"github.com/sirupsen/logrus"
)

const maxAssetNameLength = 50

type AssetServiceI interface {
	ListAssets(ctx context.Context) ([]models.Asset, error)
	CreateAsset(ctx context.Context, asset *models.Asset) error
	DeleteAsset(ctx context.Context, id int) error
}

type AssetService struct {
	assetRepository repositories.AssetRepository
}

func NewAssetService(assetRepository repositories.AssetRepository) *AssetService {
	return &AssetService{assetRepository: assetRepository}
}

func (s *AssetService) ListAssets(ctx context.Context) ([]models.Asset, error) {
	return s.assetRepository.GetAll(ctx)
}

// CreateAsset validates asset and stores it, filling in its id.
func (s *AssetService) CreateAsset(ctx context.Context, asset *models.Asset) error {
	if err := ValidateAsset(asset); err != nil {
		return err
	}
	if err := s.assetRepository.Create(ctx, asset); err != nil {
		return err
	}
	utils.LoggerFromContext(ctx).WithField("asset_id", asset.ID).Info("asset created")
	return nil
}

// DeleteAsset removes the asset with id, or returns repositories.ErrAssetNotFound.
func (s *AssetService) DeleteAsset(ctx context.Context, id int) error {
	asset, err := s.assetRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.assetRepository.Delete(ctx, id); err != nil {
		return err
	}
	utils.LoggerFromContext(ctx).WithFields(logrus.Fields{
		"asset_id":   asset.ID,
		"asset_type": asset.AssetType,
		"name":       asset.Name,
	}).Info("asset deleted")
	return nil
}

// ValidateAsset returns a *utils.ValidationError listing every invalid field.
func ValidateAsset(asset *models.Asset) error {
	fields := make(map[string]string)

	asset.Name = strings.TrimSpace(asset.Name)
	switch {
	case asset.Name == "":
		fields["name"] = "is required"
	case utf8.RuneCountInString(asset.Name) > maxAssetNameLength:
		fields["name"] = "must be at most 50 characters"
	}

	if !asset.AssetType.Valid() {
		fields["asset_type"] = "must be one of KRW, GOLD, USD, JPY, CNY"
	}

	switch {
	case asset.Amount.IsNegative():
		fields["amount"] = "must not be negative"
	case !asset.Amount.Equal(asset.Amount.Round(4)):
		fields["amount"] = "must have at most 4 decimal places"
	}

	switch {
	case asset.BuyPrice.IsNegative():
		fields["buy_price"] = "must not be negative"
	case !asset.BuyPrice.Equal(asset.BuyPrice.Round(2)):
		fields["buy_price"] = "must have at most 2 decimal places"
	}

	if asset.BuyDate.IsZero() {
		fields["buy_date"] = "is required"
	}

	if len(fields) > 0 {
		return &utils.ValidationError{Fields: fields}
	}
	return nil
}
