package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"type:varchar(30);uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Profile         *ProfileModel         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Authentications []AuthenticationModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	RefreshTokens   []RefreshTokenModel   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) BeforeCreate(_ *gorm.DB) error {
	id, err := newID(m.ID)
	m.ID = id

	return err
}

// ProfileModel mirrors the 'profiles' table. UserID references users.id.
type ProfileModel struct {
	UserID      uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Nickname    string     `gorm:"type:varchar(50)"`
	AvatarKey   string     `gorm:"type:varchar(255)"`
	Bio         string     `gorm:"type:text"`
	Coins       int        `gorm:"not null"`
	Level       int        `gorm:"not null"`
	Experience  int        `gorm:"not null"`
	LastCheckin *time.Time `gorm:"type:date"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}
