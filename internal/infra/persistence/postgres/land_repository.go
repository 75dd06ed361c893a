package postgres

import (
	"context"

	"plaza/internal/domain/entity"
	"plaza/internal/domain/repository"
	"plaza/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type landRepository struct {
	db *gorm.DB
}

// NewLandRepository is the constructor for landRepository.
func NewLandRepository(db *gorm.DB) repository.LandRepository {
	return &landRepository{db: db}
}

func (repo *landRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.LandPlot, error) {
	return repo.find(repo.db.WithContext(ctx).Preload("Owner"), id)
}

// FindByIDForUpdate takes a row lock on PostgreSQL. Owner is not preloaded so the
// lock covers land_plots only.
func (repo *landRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.LandPlot, error) {
	return repo.find(forUpdate(repo.db.WithContext(ctx)), id)
}

func (repo *landRepository) find(query *gorm.DB, id uuid.UUID) (*entity.LandPlot, error) {
	var plotM model.LandPlotModel
	if err := query.Where("id = ?", id).First(&plotM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPlotNotFound
		}

		return nil, errors.Wrap(err, "failed to find land plot")
	}

	return toLandPlotDomain(&plotM), nil
}

func (repo *landRepository) List(ctx context.Context) ([]*entity.LandPlot, error) {
	var plotMs []*model.LandPlotModel
	err := repo.db.WithContext(ctx).
		Preload("Owner").
		Order("y ASC, x ASC, name ASC").
		Find(&plotMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list land plots")
	}

	plots := make([]*entity.LandPlot, 0, len(plotMs))
	for _, m := range plotMs {
		plots = append(plots, toLandPlotDomain(m))
	}

	return plots, nil
}

// AssignOwner is the write half of the first sale; the owner_id IS NULL guard makes
// a second concurrent buyer update zero rows.
func (repo *landRepository) AssignOwner(ctx context.Context, plotID, ownerID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.LandPlotModel{}).
		Where("id = ? AND owner_id IS NULL", plotID).
		Update("owner_id", ownerID)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to assign land owner")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPlotOwnershipChanged
	}

	return nil
}

func (repo *landRepository) SetListing(ctx context.Context, plotID, ownerID uuid.UUID, forSale bool, price *int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.LandPlotModel{}).
		Where("id = ? AND owner_id = ?", plotID, ownerID).
		Updates(map[string]any{
			"is_for_sale":  forSale,
			"resale_price": price,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update land listing")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPlotOwnershipChanged
	}

	return nil
}

func (repo *landRepository) TransferOwnership(ctx context.Context, plotID, sellerID, buyerID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.LandPlotModel{}).
		Where("id = ? AND owner_id = ? AND is_for_sale = ?", plotID, sellerID, true).
		Updates(map[string]any{
			"owner_id":     buyerID,
			"is_for_sale":  false,
			"resale_price": nil,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to transfer land plot")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPlotOwnershipChanged
	}

	return nil
}

func (repo *landRepository) UpsertByName(ctx context.Context, plot *entity.LandPlot) error {
	plotM := fromLandPlotDomain(plot)
	plotM.OwnerID = nil
	plotM.IsForSale = false
	plotM.ResalePrice = nil

	err := repo.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"x", "y", "price", "building_type", "updated_at"}),
	}).Create(plotM).Error
	if err != nil {
		return errors.Wrapf(err, "failed to upsert land plot %q", plot.Name)
	}

	return nil
}
