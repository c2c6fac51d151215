package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emberfall-games/guildhall/internal/database/postgres"
	"github.com/emberfall-games/guildhall/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	User    repository.User
	Player  repository.Player
	Catalog repository.Catalog
	Task    repository.Task
	Guild   repository.Guild
	Shop    repository.Shop
}

// InitializeRepositories creates all repository implementations on one pool.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:    postgres.NewUserRepository(dbPool),
		Player:  postgres.NewPlayerRepository(dbPool),
		Catalog: postgres.NewCatalogRepository(dbPool),
		Task:    postgres.NewTaskRepository(dbPool),
		Guild:   postgres.NewGuildRepository(dbPool),
		Shop:    postgres.NewShopRepository(dbPool),
	}
}
