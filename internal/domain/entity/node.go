package entity

import (
	"time"

	"github.com/google/uuid"
)

// TreeRootName is the label of the synthetic node wrapping all root threads.
const TreeRootName = "Universe"

// DiscussionNode is one post of the threaded plaza forum.
// Nodes without a parent are roots.
type DiscussionNode struct {
	ID         uuid.UUID
	AuthorID   uuid.UUID
	AuthorName string
	ParentID   *uuid.UUID
	Title      string
	Content    string
	CreatedAt  time.Time
}

// IsRoot reports whether the node starts a thread.
func (n *DiscussionNode) IsRoot() bool {
	return n.ParentID == nil
}

// TreeNode is the nested view of the discussion forest consumed by the world map.
type TreeNode struct {
	Name      string      `json:"name"`
	ID        string      `json:"id,omitempty"`
	Author    string      `json:"author,omitempty"`
	CreatedAt string      `json:"created_at,omitempty"`
	Content   string      `json:"content,omitempty"`
	Children  []*TreeNode `json:"children"`
}
