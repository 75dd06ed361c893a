package postgres

import (
	"context"

	"plaza/internal/domain/entity"
	domainerrors "plaza/internal/domain/errors"
	"plaza/internal/domain/repository"
	"plaza/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type nodeRepository struct {
	db *gorm.DB
}

// NewNodeRepository is the constructor for nodeRepository.
func NewNodeRepository(db *gorm.DB) repository.NodeRepository {
	return &nodeRepository{db: db}
}

func (repo *nodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.DiscussionNode, error) {
	var nodeM model.DiscussionNodeModel
	err := repo.db.WithContext(ctx).
		Joins("Author").
		Where("discussion_nodes.id = ?", id).
		First(&nodeM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNodeNotFound
		}

		return nil, errors.Wrap(err, "failed to find discussion node")
	}

	return toNodeDomain(&nodeM), nil
}

// ListRoots orders by id as a tie-breaker; ids are UUIDv7 and therefore time ordered.
func (repo *nodeRepository) ListRoots(ctx context.Context) ([]*entity.DiscussionNode, error) {
	var nodeMs []*model.DiscussionNodeModel
	err := repo.db.WithContext(ctx).
		Joins("Author").
		Where("discussion_nodes.parent_id IS NULL").
		Order("discussion_nodes.created_at DESC, discussion_nodes.id DESC").
		Find(&nodeMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list root nodes")
	}

	return toNodeDomains(nodeMs), nil
}

func (repo *nodeRepository) ListChildren(ctx context.Context, parentID uuid.UUID) ([]*entity.DiscussionNode, error) {
	var nodeMs []*model.DiscussionNodeModel
	err := repo.db.WithContext(ctx).
		Joins("Author").
		Where("discussion_nodes.parent_id = ?", parentID).
		Order("discussion_nodes.created_at ASC, discussion_nodes.id ASC").
		Find(&nodeMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list child nodes")
	}

	return toNodeDomains(nodeMs), nil
}

func (repo *nodeRepository) ListAll(ctx context.Context) ([]*entity.DiscussionNode, error) {
	var nodeMs []*model.DiscussionNodeModel
	err := repo.db.WithContext(ctx).
		Joins("Author").
		Order("discussion_nodes.created_at ASC, discussion_nodes.id ASC").
		Find(&nodeMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list discussion nodes")
	}

	return toNodeDomains(nodeMs), nil
}

func (repo *nodeRepository) Create(ctx context.Context, node *entity.DiscussionNode) error {
	nodeM := fromNodeDomain(node)
	if err := repo.db.WithContext(ctx).Omit("Author", "Parent").Create(nodeM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrNodeNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create discussion node")
	}

	node.ID = nodeM.ID
	node.CreatedAt = nodeM.CreatedAt

	return nil
}
