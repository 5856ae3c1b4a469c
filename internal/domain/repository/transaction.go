package repository

import "context"

// TransactionManager runs use case work inside a single database transaction.
type TransactionManager interface {
	// Execute runs fn within a transaction. A returned error or panic rolls back; otherwise it commits.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the surrounding transaction.
type RepositoryFactory interface {
	UserRepo() UserRepository
	ProfileRepo() ProfileRepository
	AuthRepo() AuthRepository
	RefreshTokenRepo() RefreshTokenRepository
	StoreRepo() StoreRepository
	MetalPriceRepo() MetalPriceRepository
}
