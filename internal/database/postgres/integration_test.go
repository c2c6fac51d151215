package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/emberfall-games/guildhall/internal/database"
	"github.com/emberfall-games/guildhall/internal/database/migrations"
	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/repository"
)

func TestRepositories_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	var pgContainer *tcpostgres.PostgresContainer
	var err error

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping integration test due to panic (likely Docker issue): %v", r)
			}
		}()
		pgContainer, err = tcpostgres.Run(ctx,
			"postgres:15-alpine",
			tcpostgres.WithDatabase("testdb"),
			tcpostgres.WithUsername("testuser"),
			tcpostgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
	}()
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	if pgContainer == nil {
		return
	}
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %v", err)
		}
	}()

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := database.NewPool(connStr, 10, 5*time.Minute, 30*time.Minute)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := migrations.Up(ctx, pool); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	users := NewUserRepository(pool)
	players := NewPlayerRepository(pool)
	catalog := NewCatalogRepository(pool)
	tasks := NewTaskRepository(pool)
	guilds := NewGuildRepository(pool)
	shops := NewShopRepository(pool)

	var alice *domain.Player

	t.Run("CreateUser", func(t *testing.T) {
		user, err := users.CreateUser(ctx, "alice", "hash")
		if err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if user.ID == 0 {
			t.Error("expected user ID to be set")
		}

		if _, err := users.CreateUser(ctx, "alice", "otherhash"); err != domain.ErrUsernameTaken {
			t.Errorf("expected ErrUsernameTaken, got %v", err)
		}

		alice, err = players.GetOrCreateByUserID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetOrCreateByUserID failed: %v", err)
		}
		if alice.Gold != 100 {
			t.Errorf("expected starting gold of 100, got %d", alice.Gold)
		}
		if alice.RankLetter != domain.TierF || alice.RankLevel != 1 {
			t.Errorf("expected rank F1, got %s%d", alice.RankLetter, alice.RankLevel)
		}
	})

	t.Run("Catalog", func(t *testing.T) {
		wood, err := catalog.GetItemByName(ctx, "Common Wood")
		if err != nil {
			t.Fatalf("GetItemByName failed: %v", err)
		}
		if wood.Kind != "material" || wood.Category != "wood" {
			t.Errorf("unexpected item data: %+v", wood)
		}

		recipes, err := catalog.ListRecipes(ctx)
		if err != nil {
			t.Fatalf("ListRecipes failed: %v", err)
		}
		if len(recipes) == 0 {
			t.Fatal("expected seeded recipes")
		}
		for _, r := range recipes {
			if len(r.Ingredients) == 0 {
				t.Errorf("recipe %d has no ingredients", r.ID)
			}
		}

		monsters, err := catalog.ListMonstersByTier(ctx, domain.TierF)
		if err != nil {
			t.Fatalf("ListMonstersByTier failed: %v", err)
		}
		if len(monsters) != 5 {
			t.Errorf("expected 5 F-tier monsters, got %d", len(monsters))
		}
	})

	t.Run("TaskLifecycle", func(t *testing.T) {
		tx, err := tasks.BeginTx(ctx)
		if err != nil {
			t.Fatalf("BeginTx failed: %v", err)
		}
		defer repository.SafeRollback(ctx, tx)

		now := time.Now().UTC().Truncate(time.Second)
		task := &domain.ActiveTask{
			PlayerID:  alice.ID,
			Type:      domain.TaskCrafting,
			TargetID:  1,
			StartTime: now,
			EndTime:   now.Add(30 * time.Second),
		}
		if err := tx.InsertTask(ctx, task); err != nil {
			t.Fatalf("InsertTask failed: %v", err)
		}
		if task.ID == 0 {
			t.Error("expected task ID to be set")
		}

		dup := &domain.ActiveTask{
			PlayerID:  alice.ID,
			Type:      domain.TaskCrafting,
			TargetID:  2,
			StartTime: now,
			EndTime:   now.Add(time.Minute),
		}
		if err := tx.InsertTask(ctx, dup); err != domain.ErrTaskAlreadyActive {
			t.Errorf("expected ErrTaskAlreadyActive, got %v", err)
		}
		if err := tx.Commit(ctx); err != nil {
			t.Fatalf("Commit failed: %v", err)
		}

		// Rollback after commit reports the closed sentinel
		if err := tx.Rollback(ctx); err != repository.ErrTxClosed {
			t.Errorf("expected ErrTxClosed, got %v", err)
		}

		// A second transaction can claim the task
		tx2, err := tasks.BeginTx(ctx)
		if err != nil {
			t.Fatalf("BeginTx failed: %v", err)
		}
		defer repository.SafeRollback(ctx, tx2)

		got, err := tx2.GetTaskForUpdate(ctx, alice.ID, domain.TaskCrafting)
		if err != nil {
			t.Fatalf("GetTaskForUpdate failed: %v", err)
		}
		if got.ID != task.ID || got.TargetID != 1 {
			t.Errorf("unexpected task: %+v", got)
		}
		if err := tx2.DeleteTask(ctx, got.ID); err != nil {
			t.Fatalf("DeleteTask failed: %v", err)
		}
		if err := tx2.Commit(ctx); err != nil {
			t.Fatalf("Commit failed: %v", err)
		}

		active, err := tasks.ListTasks(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListTasks failed: %v", err)
		}
		if len(active) != 0 {
			t.Errorf("expected no active tasks, got %d", len(active))
		}
	})

	t.Run("AdventurePayloadRoundTrip", func(t *testing.T) {
		tx, err := tasks.BeginTx(ctx)
		if err != nil {
			t.Fatalf("BeginTx failed: %v", err)
		}
		defer repository.SafeRollback(ctx, tx)

		now := time.Now().UTC().Truncate(time.Second)
		task := &domain.ActiveTask{
			PlayerID: alice.ID,
			Type:     domain.TaskAdventure,
			TargetID: 1,
			Payload: &domain.AdventurePayload{
				Tier:         domain.TierF,
				MonsterName:  "Forest Slime",
				TemplateName: "Monster Hunt",
				TemplateType: "hunt",
			},
			StartTime: now,
			EndTime:   now.Add(time.Hour),
		}
		if err := tx.InsertTask(ctx, task); err != nil {
			t.Fatalf("InsertTask failed: %v", err)
		}

		got, err := tx.GetTaskForUpdate(ctx, alice.ID, domain.TaskAdventure)
		if err != nil {
			t.Fatalf("GetTaskForUpdate failed: %v", err)
		}
		if got.Payload == nil || got.Payload.MonsterName != "Forest Slime" {
			t.Errorf("payload did not survive storage: %+v", got.Payload)
		}

		if err := tx.DeleteTask(ctx, got.ID); err != nil {
			t.Fatalf("DeleteTask failed: %v", err)
		}
		if err := tx.Commit(ctx); err != nil {
			t.Fatalf("Commit failed: %v", err)
		}
	})

	t.Run("GoldAndInventoryGuards", func(t *testing.T) {
		tx, err := tasks.BeginTx(ctx)
		if err != nil {
			t.Fatalf("BeginTx failed: %v", err)
		}
		defer repository.SafeRollback(ctx, tx)

		// Starting balance is 100; overdraw hits the CHECK constraint
		if err := tx.AdjustGold(ctx, alice.ID, -100000); err != domain.ErrInsufficientGold {
			t.Errorf("expected ErrInsufficientGold, got %v", err)
		}
		// Constraint failure aborts the transaction
		if err := tx.Rollback(ctx); err != nil {
			t.Fatalf("Rollback failed: %v", err)
		}

		tx, err = tasks.BeginTx(ctx)
		if err != nil {
			t.Fatalf("BeginTx failed: %v", err)
		}
		defer repository.SafeRollback(ctx, tx)

		wood, err := catalog.GetItemByName(ctx, "Common Wood")
		if err != nil {
			t.Fatalf("GetItemByName failed: %v", err)
		}

		if err := tx.RemoveItem(ctx, alice.ID, wood.ID, 1); err != domain.ErrInsufficientItems {
			t.Errorf("expected ErrInsufficientItems, got %v", err)
		}
		if err := tx.Rollback(ctx); err != nil {
			t.Fatalf("Rollback failed: %v", err)
		}

		tx, err = tasks.BeginTx(ctx)
		if err != nil {
			t.Fatalf("BeginTx failed: %v", err)
		}
		defer repository.SafeRollback(ctx, tx)

		if err := tx.AddItem(ctx, alice.ID, wood.ID, 5); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
		if err := tx.AddItem(ctx, alice.ID, wood.ID, 3); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
		qty, err := tx.GetItemQuantity(ctx, alice.ID, wood.ID)
		if err != nil {
			t.Fatalf("GetItemQuantity failed: %v", err)
		}
		if qty != 8 {
			t.Errorf("expected quantity 8, got %d", qty)
		}

		holdings, err := tx.GetCategoryHoldings(ctx, alice.ID, "wood", "")
		if err != nil {
			t.Fatalf("GetCategoryHoldings failed: %v", err)
		}
		if len(holdings) != 1 || holdings[0].Quantity != 8 {
			t.Errorf("unexpected holdings: %+v", holdings)
		}

		if err := tx.Commit(ctx); err != nil {
			t.Fatalf("Commit failed: %v", err)
		}
	})

	t.Run("Guilds", func(t *testing.T) {
		guild, err := guilds.CreateGuild(ctx, "Ember Watch", alice.ID)
		if err != nil {
			t.Fatalf("CreateGuild failed: %v", err)
		}
		if guild.Class != domain.GuildStartingClass {
			t.Errorf("expected starting class %d, got %d", domain.GuildStartingClass, guild.Class)
		}

		if _, err := guilds.CreateGuild(ctx, "Ember Watch", alice.ID); err != domain.ErrGuildNameTaken {
			t.Errorf("expected ErrGuildNameTaken, got %v", err)
		}
		if _, err := guilds.CreateGuild(ctx, "Second Banner", alice.ID); err != domain.ErrAlreadyInGuild {
			t.Errorf("expected ErrAlreadyInGuild, got %v", err)
		}

		got, err := guilds.GetGuildByPlayer(ctx, alice.ID)
		if err != nil {
			t.Fatalf("GetGuildByPlayer failed: %v", err)
		}
		if got.ID != guild.ID {
			t.Errorf("expected guild %d, got %d", guild.ID, got.ID)
		}

		members, err := guilds.GetGuildMembers(ctx, guild.ID)
		if err != nil {
			t.Fatalf("GetGuildMembers failed: %v", err)
		}
		if len(members) != 1 || members[0].Username != "alice" {
			t.Errorf("unexpected roster: %+v", members)
		}
	})

	t.Run("ShopStock", func(t *testing.T) {
		all, err := shops.ListShops(ctx)
		if err != nil {
			t.Fatalf("ListShops failed: %v", err)
		}
		if len(all) != 6 {
			t.Fatalf("expected 6 seeded shops, got %d", len(all))
		}

		stock, err := shops.GetStock(ctx, all[0].ID)
		if err != nil {
			t.Fatalf("GetStock failed: %v", err)
		}
		if len(stock) == 0 {
			t.Fatal("expected seeded stock")
		}

		wood, err := catalog.GetItemByName(ctx, "Common Wood")
		if err != nil {
			t.Fatalf("GetItemByName failed: %v", err)
		}

		refreshedAt := time.Now().UTC().Truncate(time.Second)
		entries := []domain.StockEntry{{ItemID: wood.ID, Quantity: 12, Price: 6}}
		if err := shops.RefreshStock(ctx, all[0].ID, entries, refreshedAt); err != nil {
			t.Fatalf("RefreshStock failed: %v", err)
		}

		stock, err = shops.GetStock(ctx, all[0].ID)
		if err != nil {
			t.Fatalf("GetStock failed: %v", err)
		}
		if len(stock) != 1 || stock[0].ItemID != wood.ID || stock[0].Quantity != 12 {
			t.Errorf("unexpected stock after refresh: %+v", stock)
		}

		shop, err := shops.GetShop(ctx, all[0].ID)
		if err != nil {
			t.Fatalf("GetShop failed: %v", err)
		}
		if !shop.LastRefresh.Equal(refreshedAt) {
			t.Errorf("expected last_refresh %v, got %v", refreshedAt, shop.LastRefresh)
		}

		tx, err := shops.BeginTx(ctx)
		if err != nil {
			t.Fatalf("BeginTx failed: %v", err)
		}
		defer repository.SafeRollback(ctx, tx)

		entry, err := tx.GetStockForUpdate(ctx, all[0].ID, wood.ID)
		if err != nil {
			t.Fatalf("GetStockForUpdate failed: %v", err)
		}
		if entry.Quantity != 12 {
			t.Errorf("expected quantity 12, got %d", entry.Quantity)
		}
		if err := tx.AdjustStock(ctx, all[0].ID, wood.ID, -12); err != nil {
			t.Fatalf("AdjustStock failed: %v", err)
		}
		if err := tx.Commit(ctx); err != nil {
			t.Fatalf("Commit failed: %v", err)
		}
	})
}
