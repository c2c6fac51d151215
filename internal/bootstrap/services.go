package bootstrap

import (
	"github.com/jonboulle/clockwork"

	"github.com/emberfall-games/guildhall/internal/auth"
	"github.com/emberfall-games/guildhall/internal/catalog"
	"github.com/emberfall-games/guildhall/internal/config"
	"github.com/emberfall-games/guildhall/internal/guild"
	"github.com/emberfall-games/guildhall/internal/player"
	"github.com/emberfall-games/guildhall/internal/rng"
	"github.com/emberfall-games/guildhall/internal/server"
	"github.com/emberfall-games/guildhall/internal/shop"
	"github.com/emberfall-games/guildhall/internal/task"
)

// InitializeServices wires all services onto the repositories. The real clock
// and a shared RNG are injected here so tests can substitute deterministic
// ones.
func InitializeServices(cfg *config.Config, repos *Repositories) server.Services {
	clock := clockwork.NewRealClock()
	r := rng.New()

	catalogSvc := catalog.NewService(repos.Catalog)

	return server.Services{
		Auth:    auth.NewService(repos.User, []byte(cfg.JWTSecret), clock),
		Player:  player.NewService(repos.Player, repos.User),
		Catalog: catalogSvc,
		Task:    task.NewService(repos.Task, catalogSvc, clock, r),
		Guild:   guild.NewService(repos.Guild),
		Shop:    shop.NewService(repos.Shop, catalogSvc, clock, r),
	}
}
