package repository

import "context"

// TransactionManager runs economy mutations atomically. fn's repositories share one
// transaction, which commits when fn returns nil and rolls back otherwise.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the running transaction.
type RepositoryFactory interface {
	NewUserRepository() UserRepository
	NewAuthRepository() AuthRepository
	NewRefreshTokenRepository() RefreshTokenRepository
	NewProfileRepository() ProfileRepository
	NewItemRepository() ItemRepository
	NewInventoryRepository() InventoryRepository
	NewLandRepository() LandRepository
	NewNodeRepository() NodeRepository
}
