package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"plaza/config"
	"plaza/internal/delivery/http/flash"
	"plaza/internal/delivery/http/response"
	"plaza/internal/domain/entity"
	"plaza/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type nodeForm struct {
	ParentID string `form:"parent_id"`
	Title    string `form:"title"`
	Content  string `form:"content"`
}

type worldView struct {
	Roots []*entity.DiscussionNode
	Tree  *entity.TreeNode
}

type nodeView struct {
	Node     *entity.DiscussionNode
	Children []*entity.DiscussionNode
}

type nodeCreateView struct {
	Parent *entity.DiscussionNode
	Reward int
}

// ContentHandler serves the discussion forest.
type ContentHandler struct {
	uc     usecase.ContentUsecase
	pages  *PageResponder
	reward int
}

type ContentHandlerParams struct {
	fx.In

	Usecase usecase.ContentUsecase
	Pages   *PageResponder
	Config  *config.Config
}

func NewContentHandler(params ContentHandlerParams) *ContentHandler {
	h := &ContentHandler{
		uc:    params.Usecase,
		pages: params.Pages,
	}
	if params.Config.Economy != nil {
		h.reward = params.Config.Economy.NodeReward
	}

	return h
}

// World lists the root nodes and embeds the whole tree for the map.
func (h *ContentHandler) World(c echo.Context) error {
	ctx := c.Request().Context()

	roots, err := h.uc.ListRoots(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	tree, err := h.uc.BuildTree(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.pages.Render(c, http.StatusOK, "world", "知識宇宙", worldView{Roots: roots, Tree: tree})
}

// Tree returns the materialised forest as JSON.
func (h *ContentHandler) Tree(c echo.Context) error {
	tree, err := h.uc.BuildTree(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tree)
}

// Detail shows one node and its replies. Unknown ids go back to the world.
func (h *ContentHandler) Detail(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.pages.Redirect(c, "/world", flash.LevelError, "找不到這個節點")
	}

	detail, err := h.uc.GetNode(c.Request().Context(), id)
	if err != nil {
		return h.pages.Fail(c, err, "/world")
	}

	return h.pages.Render(c, http.StatusOK, "node", detail.Node.Title, nodeView{
		Node:     detail.Node,
		Children: detail.Children,
	})
}

// ShowCreate renders the form; the parent comes from parent_id or parent.
func (h *ContentHandler) ShowCreate(c echo.Context) error {
	parent, err := h.uc.ResolveParent(c.Request().Context(), queryParent(c))
	if err != nil {
		return h.pages.Fail(c, err, "/world")
	}

	return h.pages.Render(c, http.StatusOK, "node_create", "建立節點", nodeCreateView{Parent: parent, Reward: h.reward})
}

// Create stores the node and pays the author. The hidden parent_id field wins over the query.
func (h *ContentHandler) Create(c echo.Context) error {
	var form nodeForm
	if err := c.Bind(&form); err != nil {
		return h.pages.Redirect(c, "/node/create", flash.LevelError, "無效的節點資料")
	}

	rawParent := form.ParentID
	if rawParent == "" {
		rawParent = queryParent(c)
	}

	ctx := c.Request().Context()
	parent, err := h.uc.ResolveParent(ctx, rawParent)
	if err != nil {
		return h.pages.Fail(c, err, "/world")
	}

	input := &usecase.CreateNodeInput{
		AuthorID: currentUser(c).ID,
		Title:    form.Title,
		Content:  form.Content,
	}
	retry := "/node/create"
	if parent != nil {
		input.ParentID = &parent.ID
		retry += "?parent_id=" + url.QueryEscape(parent.ID.String())
	}

	output, err := h.uc.CreateNode(ctx, input)
	if err != nil {
		return h.pages.Fail(c, err, retry)
	}

	return h.pages.Redirect(c, "/node/"+output.Node.ID.String(), flash.LevelSuccess,
		fmt.Sprintf("節點已建立，獲得 %d 金幣", output.Reward))
}

func queryParent(c echo.Context) string {
	if raw := c.QueryParam("parent_id"); raw != "" {
		return raw
	}

	return c.QueryParam("parent")
}
