package repository

import (
	"context"
	"errors"

	"plaza/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrNodeNotFound is returned when a discussion node does not exist.
var ErrNodeNotFound = errors.New("discussion node not found")

// NodeRepository stores the discussion forest.
type NodeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.DiscussionNode, error)

	// ListRoots returns parentless nodes newest-first.
	ListRoots(ctx context.Context) ([]*entity.DiscussionNode, error)

	// ListChildren returns direct children oldest-first.
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]*entity.DiscussionNode, error)

	// ListAll loads the whole forest with author names in one query, oldest-first.
	ListAll(ctx context.Context) ([]*entity.DiscussionNode, error)

	Create(ctx context.Context, node *entity.DiscussionNode) error
}
