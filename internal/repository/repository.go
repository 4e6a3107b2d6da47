package repository

import (
	"github.com/CamiloCastellanos/drop-sub000/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User   UserRepository
	Wallet WalletRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:   NewUserRepository(db),
		Wallet: NewWalletRepository(db),
	}
}
