// Package fixtures provides test data factories backed by the real repositories.
//
// Usage:
//
//	f := fixtures.New(tdb.DB)
//	user := f.CreateUser(t, fixtures.WithCoins(600))
//	plot := f.CreatePlot(t, fixtures.WithPrice(500))
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"testing"
	"time"

	"plaza/internal/domain/entity"
	"plaza/internal/infra/persistence/model"
	"plaza/internal/infra/persistence/postgres"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Factory creates test entities in the database
type Factory struct {
	db *gorm.DB
}

// New creates a new fixture factory
func New(db *gorm.DB) *Factory {
	return &Factory{db: db}
}

func randomSuffix() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)

	return hex.EncodeToString(b)
}

// ============================================================================
// User Fixtures
// ============================================================================

// UserOpts customizes user creation
type UserOpts struct {
	Username   string
	Coins      int
	Experience int
}

func WithUsername(username string) func(*UserOpts) {
	return func(o *UserOpts) { o.Username = username }
}

func WithCoins(coins int) func(*UserOpts) {
	return func(o *UserOpts) { o.Coins = coins }
}

func WithExperience(experience int) func(*UserOpts) {
	return func(o *UserOpts) { o.Experience = experience }
}

// CreateUser creates an account and its profile, 100 coins by default.
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *entity.User {
	t.Helper()

	o := &UserOpts{
		Username: "user_" + randomSuffix(),
		Coins:    100,
	}
	for _, fn := range opts {
		fn(o)
	}

	user := &entity.User{
		Username: o.Username,
		Profile: &entity.Profile{
			Coins:      o.Coins,
			Level:      entity.LevelForExperience(o.Experience),
			Experience: o.Experience,
		},
	}
	if err := postgres.NewUserRepository(f.db).Create(context.Background(), user); err != nil {
		t.Fatalf("fixtures: failed to create user: %v", err)
	}

	return user
}

// Coins reads the current balance straight from the table.
func (f *Factory) Coins(t *testing.T, userID uuid.UUID) int {
	t.Helper()

	var profile model.ProfileModel
	if err := f.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		t.Fatalf("fixtures: failed to load profile: %v", err)
	}

	return profile.Coins
}

// Profile reads the whole profile row.
func (f *Factory) Profile(t *testing.T, userID uuid.UUID) *model.ProfileModel {
	t.Helper()

	var profile model.ProfileModel
	if err := f.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		t.Fatalf("fixtures: failed to load profile: %v", err)
	}

	return &profile
}

// ============================================================================
// Catalog Fixtures
// ============================================================================

// CreateItem inserts a shop item with the given price and category.
func (f *Factory) CreateItem(t *testing.T, price int, category entity.ItemCategory) *entity.Item {
	t.Helper()

	m := &model.ItemModel{
		Name:     "item_" + randomSuffix(),
		Price:    price,
		Category: string(category),
	}
	if err := f.db.Create(m).Error; err != nil {
		t.Fatalf("fixtures: failed to create item: %v", err)
	}

	return &entity.Item{ID: m.ID, Name: m.Name, Price: m.Price, Category: category}
}

// Quantity returns the stored inventory count, 0 when no entry exists.
func (f *Factory) Quantity(t *testing.T, userID, itemID uuid.UUID) int {
	t.Helper()

	var entries []model.InventoryEntryModel
	if err := f.db.Where("user_id = ? AND item_id = ?", userID, itemID).Find(&entries).Error; err != nil {
		t.Fatalf("fixtures: failed to load inventory: %v", err)
	}
	if len(entries) > 1 {
		t.Fatalf("fixtures: %d inventory entries for one (user, item) pair", len(entries))
	}
	if len(entries) == 0 {
		return 0
	}

	return entries[0].Quantity
}

// PlotOpts customizes plot creation
type PlotOpts struct {
	Price       int
	Owner       *uuid.UUID
	ResalePrice *int
}

func WithPrice(price int) func(*PlotOpts) {
	return func(o *PlotOpts) { o.Price = price }
}

func WithOwner(ownerID uuid.UUID) func(*PlotOpts) {
	return func(o *PlotOpts) { o.Owner = &ownerID }
}

// WithResale lists the plot for resale at price. Requires WithOwner.
func WithResale(price int) func(*PlotOpts) {
	return func(o *PlotOpts) { o.ResalePrice = &price }
}

// CreatePlot inserts a land plot, unowned and priced 500 by default.
func (f *Factory) CreatePlot(t *testing.T, opts ...func(*PlotOpts)) *entity.LandPlot {
	t.Helper()

	o := &PlotOpts{Price: 500}
	for _, fn := range opts {
		fn(o)
	}

	m := &model.LandPlotModel{
		Name:         "plot_" + randomSuffix(),
		X:            10,
		Y:            20,
		OwnerID:      o.Owner,
		Price:        o.Price,
		BuildingType: string(entity.BuildingNone),
		IsForSale:    o.ResalePrice != nil,
		ResalePrice:  o.ResalePrice,
	}
	if err := f.db.Create(m).Error; err != nil {
		t.Fatalf("fixtures: failed to create plot: %v", err)
	}

	return &entity.LandPlot{
		ID:           m.ID,
		Name:         m.Name,
		X:            m.X,
		Y:            m.Y,
		OwnerID:      m.OwnerID,
		Price:        m.Price,
		BuildingType: entity.BuildingNone,
		IsForSale:    m.IsForSale,
		ResalePrice:  m.ResalePrice,
	}
}

// Plot reloads a plot row.
func (f *Factory) Plot(t *testing.T, plotID uuid.UUID) *model.LandPlotModel {
	t.Helper()

	var plot model.LandPlotModel
	if err := f.db.Where("id = ?", plotID).First(&plot).Error; err != nil {
		t.Fatalf("fixtures: failed to load plot: %v", err)
	}

	return &plot
}

// ============================================================================
// Discussion Fixtures
// ============================================================================

// CreateNode inserts a node at a fixed creation time so ordering is deterministic.
func (f *Factory) CreateNode(t *testing.T, author *entity.User, parentID *uuid.UUID, title string, createdAt time.Time) *entity.DiscussionNode {
	t.Helper()

	m := &model.DiscussionNodeModel{
		AuthorID:  author.ID,
		ParentID:  parentID,
		Title:     title,
		Content:   "content of " + title,
		CreatedAt: createdAt.UTC(),
	}
	if err := f.db.Omit("Author", "Parent").Create(m).Error; err != nil {
		t.Fatalf("fixtures: failed to create node: %v", err)
	}

	return &entity.DiscussionNode{
		ID:         m.ID,
		AuthorID:   m.AuthorID,
		AuthorName: author.Username,
		ParentID:   m.ParentID,
		Title:      m.Title,
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
	}
}
