package impl

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"plaza/internal/domain/entity"
	domainerrors "plaza/internal/domain/errors"
	"plaza/internal/infra/persistence/postgres"
	"plaza/internal/testing/fixtures"
	"plaza/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContentService(env *serviceEnv) usecase.ContentUsecase {
	return NewContentService(ContentServiceParams{
		TxManager: env.txManager,
		NodeRepo:  postgres.NewNodeRepository(env.db),
		Publisher: env.publisher,
		Config:    env.config,
		Logger:    env.logger,
	})
}

func TestContentService_CreateNode_RewardsAuthor(t *testing.T) {
	env := newServiceEnv(t)
	srv := newTestContentService(env)
	ctx := context.Background()

	author := env.fixtures.CreateUser(t, fixtures.WithCoins(100))

	root, err := srv.CreateNode(ctx, &usecase.CreateNodeInput{
		AuthorID: author.ID,
		Title:    "  霓虹下的第一個問題  ",
		Content:  "廣場的夜晚為什麼這麼亮？",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, root.Reward)
	assert.Equal(t, "霓虹下的第一個問題", root.Node.Title)
	assert.True(t, root.Node.IsRoot())
	assert.Equal(t, 105, env.fixtures.Coins(t, author.ID))

	reply, err := srv.CreateNode(ctx, &usecase.CreateNodeInput{
		AuthorID: author.ID,
		ParentID: &root.Node.ID,
		Title:    "回覆",
		Content:  "因為全是招牌",
	})
	require.NoError(t, err)
	assert.Equal(t, root.Node.ID, *reply.Node.ParentID)
	assert.Equal(t, 110, env.fixtures.Coins(t, author.ID))
}

func TestContentService_CreateNode_Validation(t *testing.T) {
	env := newServiceEnv(t)
	srv := newTestContentService(env)
	author := env.fixtures.CreateUser(t)

	tests := []struct {
		name    string
		title   string
		content string
	}{
		{name: "empty title", title: "   ", content: "body"},
		{name: "title too long", title: strings.Repeat("字", 201), content: "body"},
		{name: "empty content", title: "title", content: "\n\t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.CreateNode(context.Background(), &usecase.CreateNodeInput{
				AuthorID: author.ID,
				Title:    tt.title,
				Content:  tt.content,
			})

			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
		})
	}
	assert.Equal(t, 100, env.fixtures.Coins(t, author.ID))
}

func TestContentService_CreateNode_UnknownParent(t *testing.T) {
	env := newServiceEnv(t)
	srv := newTestContentService(env)
	author := env.fixtures.CreateUser(t)
	missing := uuid.New()

	_, err := srv.CreateNode(context.Background(), &usecase.CreateNodeInput{
		AuthorID: author.ID,
		ParentID: &missing,
		Title:    "orphan",
		Content:  "nobody home",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrNodeNotFound))
	assert.Equal(t, 100, env.fixtures.Coins(t, author.ID))
}

func TestContentService_ResolveParent(t *testing.T) {
	env := newServiceEnv(t)
	srv := newTestContentService(env)
	ctx := context.Background()

	author := env.fixtures.CreateUser(t)
	node := env.fixtures.CreateNode(t, author, nil, "root", time.Now())

	parent, err := srv.ResolveParent(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, parent)

	parent, err = srv.ResolveParent(ctx, node.ID.String())
	require.NoError(t, err)
	assert.Equal(t, node.ID, parent.ID)

	_, err = srv.ResolveParent(ctx, "not-a-uuid")
	assert.True(t, errors.Is(err, domainerrors.ErrNodeNotFound))

	_, err = srv.ResolveParent(ctx, uuid.NewString())
	assert.True(t, errors.Is(err, domainerrors.ErrNodeNotFound))
}

func TestContentService_RootsNewestFirstChildrenOldestFirst(t *testing.T) {
	env := newServiceEnv(t)
	srv := newTestContentService(env)
	ctx := context.Background()

	author := env.fixtures.CreateUser(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := env.fixtures.CreateNode(t, author, nil, "older", base)
	newer := env.fixtures.CreateNode(t, author, nil, "newer", base.Add(time.Hour))
	first := env.fixtures.CreateNode(t, author, &older.ID, "first", base.Add(2*time.Hour))
	second := env.fixtures.CreateNode(t, author, &older.ID, "second", base.Add(3*time.Hour))

	roots, err := srv.ListRoots(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, newer.ID, roots[0].ID)
	assert.Equal(t, older.ID, roots[1].ID)

	detail, err := srv.GetNode(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, older.ID, detail.Node.ID)
	require.Len(t, detail.Children, 2)
	assert.Equal(t, first.ID, detail.Children[0].ID)
	assert.Equal(t, second.ID, detail.Children[1].ID)

	_, err = srv.GetNode(ctx, uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrNodeNotFound))
}

func TestContentService_BuildTree(t *testing.T) {
	env := newServiceEnv(t)
	srv := newTestContentService(env)

	author := env.fixtures.CreateUser(t, fixtures.WithUsername("tree_author"))
	base := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	root := env.fixtures.CreateNode(t, author, nil, "root", base)
	child := env.fixtures.CreateNode(t, author, &root.ID, "child", base.Add(time.Minute))
	env.fixtures.CreateNode(t, author, &child.ID, "grandchild", base.Add(2*time.Minute))
	env.fixtures.CreateNode(t, author, nil, "lonely", base.Add(3*time.Minute))

	long := &entity.DiscussionNode{AuthorID: author.ID, Title: "long", Content: strings.Repeat("光", 150)}
	require.NoError(t, postgres.NewNodeRepository(env.db).Create(context.Background(), long))

	tree, err := srv.BuildTree(context.Background())
	require.NoError(t, err)

	assert.Equal(t, entity.TreeRootName, tree.Name)
	assert.Empty(t, tree.ID)
	require.Len(t, tree.Children, 3)
	assert.Equal(t, []string{"long", "lonely", "root"},
		[]string{tree.Children[0].Name, tree.Children[1].Name, tree.Children[2].Name})

	rootView := tree.Children[2]
	assert.Equal(t, "root", rootView.Name)
	assert.Equal(t, root.ID.String(), rootView.ID)
	assert.Equal(t, "tree_author", rootView.Author)
	assert.Equal(t, "2026-03-01 08:30", rootView.CreatedAt)
	assert.Equal(t, "content of root", rootView.Content)
	require.Len(t, rootView.Children, 1)
	require.Len(t, rootView.Children[0].Children, 1)
	assert.Equal(t, "grandchild", rootView.Children[0].Children[0].Name)
	assert.NotNil(t, rootView.Children[0].Children[0].Children)

	var longView *entity.TreeNode
	for _, n := range tree.Children {
		if n.Name == "long" {
			longView = n
		}
	}
	require.NotNil(t, longView)
	assert.Equal(t, strings.Repeat("光", 100)+"...", longView.Content)

	raw, err := json.Marshal(tree.Children[1])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"children":[]`)
}

func TestContentService_BuildTree_Empty(t *testing.T) {
	env := newServiceEnv(t)
	srv := newTestContentService(env)

	tree, err := srv.BuildTree(context.Background())
	require.NoError(t, err)

	raw, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Universe","children":[]}`, string(raw))
}
