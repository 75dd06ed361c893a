package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DiscussionNodeModel mirrors the 'discussion_nodes' table, a self-referencing forest.
type DiscussionNodeModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AuthorID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index"`
	Title     string     `gorm:"type:varchar(200);not null"`
	Content   string     `gorm:"type:text;not null"`
	CreatedAt time.Time  `gorm:"index"`

	Author *UserModel           `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Parent *DiscussionNodeModel `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (DiscussionNodeModel) TableName() string {
	return "discussion_nodes"
}

func (m *DiscussionNodeModel) BeforeCreate(_ *gorm.DB) error {
	id, err := newID(m.ID)
	m.ID = id

	return err
}
