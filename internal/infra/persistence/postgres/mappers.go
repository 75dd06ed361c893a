package postgres

import (
	"plaza/internal/domain/entity"
	"plaza/internal/infra/persistence/model"
)

func toUserDomain(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:        m.ID,
		Username:  m.Username,
		Profile:   toProfileDomain(m.Profile),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromUserDomain(user *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func toProfileDomain(m *model.ProfileModel) *entity.Profile {
	if m == nil {
		return nil
	}

	return &entity.Profile{
		UserID:      m.UserID,
		Nickname:    m.Nickname,
		AvatarKey:   m.AvatarKey,
		Bio:         m.Bio,
		Coins:       m.Coins,
		Level:       m.Level,
		Experience:  m.Experience,
		LastCheckin: m.LastCheckin,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromProfileDomain(p *entity.Profile) *model.ProfileModel {
	return &model.ProfileModel{
		UserID:      p.UserID,
		Nickname:    p.Nickname,
		AvatarKey:   p.AvatarKey,
		Bio:         p.Bio,
		Coins:       p.Coins,
		Level:       p.Level,
		Experience:  p.Experience,
		LastCheckin: p.LastCheckin,
	}
}

func toAuthenticationDomain(m *model.AuthenticationModel) *entity.Authentication {
	return &entity.Authentication{
		ID:             m.ID,
		UserID:         m.UserID,
		Provider:       m.Provider,
		ProviderUserID: m.ProviderUserID,
		PasswordHash:   m.PasswordHash,
		CreatedAt:      m.CreatedAt,
	}
}

func fromAuthenticationDomain(a *entity.Authentication) *model.AuthenticationModel {
	return &model.AuthenticationModel{
		ID:             a.ID,
		UserID:         a.UserID,
		Provider:       a.Provider,
		ProviderUserID: a.ProviderUserID,
		PasswordHash:   a.PasswordHash,
	}
}

func toRefreshTokenDomain(m *model.RefreshTokenModel) *entity.RefreshToken {
	return &entity.RefreshToken{
		ID:        m.ID,
		UserID:    m.UserID,
		TokenHash: m.TokenHash,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}

func fromRefreshTokenDomain(t *entity.RefreshToken) *model.RefreshTokenModel {
	return &model.RefreshTokenModel{
		ID:        t.ID,
		UserID:    t.UserID,
		TokenHash: t.TokenHash,
		ExpiresAt: t.ExpiresAt,
	}
}

func toItemDomain(m *model.ItemModel) *entity.Item {
	if m == nil {
		return nil
	}

	return &entity.Item{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		ImageKey:    m.ImageKey,
		EffectValue: m.EffectValue,
		Category:    entity.ItemCategory(m.Category),
		CreatedAt:   m.CreatedAt,
	}
}

func fromItemDomain(item *entity.Item) *model.ItemModel {
	return &model.ItemModel{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		ImageKey:    item.ImageKey,
		EffectValue: item.EffectValue,
		Category:    string(item.Category),
	}
}

func toInventoryDomain(m *model.InventoryEntryModel) *entity.InventoryEntry {
	return &entity.InventoryEntry{
		ID:        m.ID,
		UserID:    m.UserID,
		ItemID:    m.ItemID,
		Item:      toItemDomain(m.Item),
		Quantity:  m.Quantity,
		UpdatedAt: m.UpdatedAt,
	}
}

func toLandPlotDomain(m *model.LandPlotModel) *entity.LandPlot {
	plot := &entity.LandPlot{
		ID:           m.ID,
		Name:         m.Name,
		X:            m.X,
		Y:            m.Y,
		OwnerID:      m.OwnerID,
		Price:        m.Price,
		BuildingType: entity.BuildingType(m.BuildingType),
		IsForSale:    m.IsForSale,
		ResalePrice:  m.ResalePrice,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Owner != nil {
		plot.OwnerName = m.Owner.Username
	}

	return plot
}

func fromLandPlotDomain(p *entity.LandPlot) *model.LandPlotModel {
	buildingType := p.BuildingType
	if !buildingType.IsValid() {
		buildingType = entity.BuildingNone
	}

	return &model.LandPlotModel{
		ID:           p.ID,
		Name:         p.Name,
		X:            p.X,
		Y:            p.Y,
		OwnerID:      p.OwnerID,
		Price:        p.Price,
		BuildingType: string(buildingType),
		IsForSale:    p.IsForSale,
		ResalePrice:  p.ResalePrice,
	}
}

func toNodeDomain(m *model.DiscussionNodeModel) *entity.DiscussionNode {
	node := &entity.DiscussionNode{
		ID:        m.ID,
		AuthorID:  m.AuthorID,
		ParentID:  m.ParentID,
		Title:     m.Title,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
	if m.Author != nil {
		node.AuthorName = m.Author.Username
	}

	return node
}

func fromNodeDomain(n *entity.DiscussionNode) *model.DiscussionNodeModel {
	return &model.DiscussionNodeModel{
		ID:        n.ID,
		AuthorID:  n.AuthorID,
		ParentID:  n.ParentID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
	}
}

func toNodeDomains(models []*model.DiscussionNodeModel) []*entity.DiscussionNode {
	nodes := make([]*entity.DiscussionNode, 0, len(models))
	for _, m := range models {
		nodes = append(nodes, toNodeDomain(m))
	}

	return nodes
}
