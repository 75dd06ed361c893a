package usecase

import (
	"context"

	"plaza/internal/domain/entity"

	"github.com/google/uuid"
)

// NodeDetail is a node with its direct replies, oldest first.
type NodeDetail struct {
	Node     *entity.DiscussionNode
	Children []*entity.DiscussionNode
}

// CreateNodeInput defines a new post. A nil ParentID starts a thread.
type CreateNodeInput struct {
	AuthorID uuid.UUID
	ParentID *uuid.UUID
	Title    string
	Content  string
}

// CreateNodeOutput returns the stored node and the reward paid to its author.
type CreateNodeOutput struct {
	Node   *entity.DiscussionNode
	Reward int
}

// ContentUsecase is the discussion forest.
type ContentUsecase interface {
	ListRoots(ctx context.Context) ([]*entity.DiscussionNode, error)
	GetNode(ctx context.Context, id uuid.UUID) (*NodeDetail, error)
	// ResolveParent parses and loads an optional parent reference; empty input yields nil.
	ResolveParent(ctx context.Context, raw string) (*entity.DiscussionNode, error)
	CreateNode(ctx context.Context, input *CreateNodeInput) (*CreateNodeOutput, error)
	// BuildTree materialises every node under a synthetic root.
	BuildTree(ctx context.Context) (*entity.TreeNode, error)
}
