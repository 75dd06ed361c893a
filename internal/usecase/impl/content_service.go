package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"plaza/config"
	deliverycontext "plaza/internal/delivery/context"
	"plaza/internal/domain/entity"
	domainerrors "plaza/internal/domain/errors"
	"plaza/internal/domain/repository"
	"plaza/internal/domain/service"
	"plaza/internal/usecase"
	"plaza/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	maxNodeTitleLength  = 200
	treeContentPreview  = 100
	treeTimestampLayout = "2006-01-02 15:04"
)

// contentService implements the ContentUsecase interface.
type contentService struct {
	txManager  repository.TransactionManager
	nodeRepo   repository.NodeRepository
	publisher  service.EventPublisher
	nodeReward int
	location   *time.Location
	logger     *slog.Logger
}

// ContentServiceParams holds dependencies for ContentService, injected by Fx.
type ContentServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	NodeRepo  repository.NodeRepository
	Publisher service.EventPublisher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewContentService creates a new content service
func NewContentService(params ContentServiceParams) usecase.ContentUsecase {
	srv := &contentService{
		txManager: params.TxManager,
		nodeRepo:  params.NodeRepo,
		publisher: params.Publisher,
		location:  time.UTC,
		logger:    params.Logger,
	}
	if params.Config != nil && params.Config.Economy != nil {
		srv.nodeReward = params.Config.Economy.NodeReward
		srv.location = params.Config.Economy.Location()
	}

	return srv
}

func (srv *contentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *contentService) ListRoots(ctx context.Context) ([]*entity.DiscussionNode, error) {
	roots, err := srv.nodeRepo.ListRoots(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list root nodes")
	}

	return roots, nil
}

func (srv *contentService) findNode(ctx context.Context, id uuid.UUID) (*entity.DiscussionNode, error) {
	node, err := srv.nodeRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNodeNotFound) {
		return nil, domainerrors.ErrNodeNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find node")
	}

	return node, nil
}

func (srv *contentService) GetNode(ctx context.Context, id uuid.UUID) (*usecase.NodeDetail, error) {
	node, err := srv.findNode(ctx, id)
	if err != nil {
		return nil, err
	}

	children, err := srv.nodeRepo.ListChildren(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list child nodes")
	}

	return &usecase.NodeDetail{Node: node, Children: children}, nil
}

func (srv *contentService) ResolveParent(ctx context.Context, raw string) (*entity.DiscussionNode, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domainerrors.ErrNodeNotFound
	}

	return srv.findNode(ctx, id)
}

// CreateNode stores the post and pays the author's reward in one transaction.
func (srv *contentService) CreateNode(ctx context.Context, input *usecase.CreateNodeInput) (*usecase.CreateNodeOutput, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" || utf8.RuneCountInString(title) > maxNodeTitleLength {
		return nil, domainerrors.ErrValidationFailed.WithDetails("標題需為 1 到 200 個字")
	}
	if content == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("內容不可為空")
	}

	node := &entity.DiscussionNode{
		AuthorID: input.AuthorID,
		ParentID: input.ParentID,
		Title:    title,
		Content:  content,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if createErr := repoFactory.NewNodeRepository().Create(ctx, node); createErr != nil {
			if errors.Is(createErr, repository.ErrNodeNotFound) {
				return domainerrors.ErrNodeNotFound
			}

			return errors.Wrap(createErr, "failed to create node")
		}
		if srv.nodeReward <= 0 {
			return nil
		}

		return errors.Wrap(repoFactory.NewProfileRepository().Credit(ctx, input.AuthorID, srv.nodeReward), "failed to credit node reward")
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create node")
	}

	srv.log(ctx).Info("Node created",
		slog.String("nodeID", node.ID.String()),
		slog.String("authorID", input.AuthorID.String()),
		slog.Bool("root", node.IsRoot()))
	if srv.nodeReward > 0 {
		publishEvent(ctx, srv.publisher, srv.log(ctx), &entity.EconomyEvent{
			Type:      entity.EventNodeReward,
			UserID:    input.AuthorID,
			SubjectID: &node.ID,
			Amount:    srv.nodeReward,
		})
	}

	return &usecase.CreateNodeOutput{Node: node, Reward: srv.nodeReward}, nil
}

// BuildTree loads all nodes once and links them by parent id in memory. Roots come
// newest-first and children oldest-first.
func (srv *contentService) BuildTree(ctx context.Context) (*entity.TreeNode, error) {
	nodes, err := srv.nodeRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load nodes")
	}

	childrenOf := make(map[uuid.UUID][]*entity.DiscussionNode, len(nodes))
	var roots []*entity.DiscussionNode
	for _, node := range nodes {
		if node.ParentID == nil {
			roots = append(roots, node)

			continue
		}
		childrenOf[*node.ParentID] = append(childrenOf[*node.ParentID], node)
	}

	var build func(node *entity.DiscussionNode) *entity.TreeNode
	build = func(node *entity.DiscussionNode) *entity.TreeNode {
		tree := &entity.TreeNode{
			Name:      node.Title,
			ID:        node.ID.String(),
			Author:    node.AuthorName,
			CreatedAt: node.CreatedAt.In(srv.location).Format(treeTimestampLayout),
			Content:   util.TruncateRunes(node.Content, treeContentPreview, "..."),
			Children:  make([]*entity.TreeNode, 0, len(childrenOf[node.ID])),
		}
		for _, child := range childrenOf[node.ID] {
			tree.Children = append(tree.Children, build(child))
		}

		return tree
	}

	root := &entity.TreeNode{
		Name:     entity.TreeRootName,
		Children: make([]*entity.TreeNode, 0, len(roots)),
	}
	// ListAll is oldest-first; roots are shown newest-first like the world page.
	for i := len(roots) - 1; i >= 0; i-- {
		root.Children = append(root.Children, build(roots[i]))
	}

	return root, nil
}
