package task

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/repository"
	"github.com/emberfall-games/guildhall/internal/rng"
)

// fakeStore is an in-memory stand-in for the Postgres repository. fakeTx
// snapshots it on BeginTx and restores the snapshot on Rollback, so failed
// operations leave no partial mutations, same as a real transaction.
type fakeStore struct {
	items     map[int64]domain.Item
	tasks     map[string]*domain.ActiveTask
	nextID    int64
	players   map[int64]domain.Player
	skills    map[string]domain.Skill
	inventory map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		items:     make(map[int64]domain.Item),
		tasks:     make(map[string]*domain.ActiveTask),
		players:   make(map[int64]domain.Player),
		skills:    make(map[string]domain.Skill),
		inventory: make(map[string]int),
	}
}

func taskKey(playerID int64, t domain.TaskType) string {
	return fmt.Sprintf("%d:%s", playerID, t)
}

func skillKey(playerID int64, t domain.SkillType) string {
	return fmt.Sprintf("%d:%s", playerID, t)
}

func invKey(playerID, itemID int64) string {
	return fmt.Sprintf("%d:%d", playerID, itemID)
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	c.nextID = s.nextID
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.tasks {
		t := *v
		c.tasks[k] = &t
	}
	for k, v := range s.players {
		c.players[k] = v
	}
	for k, v := range s.skills {
		c.skills[k] = v
	}
	for k, v := range s.inventory {
		c.inventory[k] = v
	}
	return c
}

func (s *fakeStore) restore(from *fakeStore) {
	s.items = from.items
	s.tasks = from.tasks
	s.nextID = from.nextID
	s.players = from.players
	s.skills = from.skills
	s.inventory = from.inventory
}

func (s *fakeStore) ListTasks(_ context.Context, playerID int64) ([]domain.ActiveTask, error) {
	var out []domain.ActiveTask
	for _, t := range s.tasks {
		if t.PlayerID == playerID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeStore) BeginTx(_ context.Context) (repository.Tx, error) {
	return &fakeTx{store: s, snapshot: s.clone()}, nil
}

type fakeTx struct {
	store    *fakeStore
	snapshot *fakeStore
	done     bool
}

func (tx *fakeTx) Commit(_ context.Context) error {
	tx.done = true
	return nil
}

func (tx *fakeTx) Rollback(_ context.Context) error {
	if tx.done {
		return repository.ErrTxClosed
	}
	tx.store.restore(tx.snapshot)
	tx.done = true
	return nil
}

func (tx *fakeTx) GetTaskForUpdate(_ context.Context, playerID int64, taskType domain.TaskType) (*domain.ActiveTask, error) {
	t, ok := tx.store.tasks[taskKey(playerID, taskType)]
	if !ok {
		return nil, domain.ErrNoActiveTask
	}
	cp := *t
	return &cp, nil
}

func (tx *fakeTx) InsertTask(_ context.Context, task *domain.ActiveTask) error {
	key := taskKey(task.PlayerID, task.Type)
	if _, ok := tx.store.tasks[key]; ok {
		return domain.ErrTaskAlreadyActive
	}
	tx.store.nextID++
	task.ID = tx.store.nextID
	cp := *task
	tx.store.tasks[key] = &cp
	return nil
}

func (tx *fakeTx) DeleteTask(_ context.Context, taskID int64) error {
	for k, t := range tx.store.tasks {
		if t.ID == taskID {
			delete(tx.store.tasks, k)
			return nil
		}
	}
	return domain.ErrNoActiveTask
}

func (tx *fakeTx) GetPlayerForUpdate(_ context.Context, playerID int64) (*domain.Player, error) {
	p, ok := tx.store.players[playerID]
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	return &p, nil
}

func (tx *fakeTx) UpdatePlayerProgress(_ context.Context, player *domain.Player) error {
	tx.store.players[player.ID] = *player
	return nil
}

func (tx *fakeTx) AdjustGold(_ context.Context, playerID int64, delta int) error {
	p, ok := tx.store.players[playerID]
	if !ok {
		return domain.ErrPlayerNotFound
	}
	if p.Gold+delta < 0 {
		return domain.ErrInsufficientGold
	}
	p.Gold += delta
	tx.store.players[playerID] = p
	return nil
}

func (tx *fakeTx) GetSkillForUpdate(_ context.Context, playerID int64, skillType domain.SkillType) (domain.Skill, error) {
	key := skillKey(playerID, skillType)
	if sk, ok := tx.store.skills[key]; ok {
		return sk, nil
	}
	sk := domain.Skill{PlayerID: playerID, Type: skillType, Level: 1}
	tx.store.skills[key] = sk
	return sk, nil
}

func (tx *fakeTx) UpdateSkill(_ context.Context, skill domain.Skill) error {
	tx.store.skills[skillKey(skill.PlayerID, skill.Type)] = skill
	return nil
}

func (tx *fakeTx) GetItemQuantity(_ context.Context, playerID, itemID int64) (int, error) {
	return tx.store.inventory[invKey(playerID, itemID)], nil
}

func (tx *fakeTx) GetCategoryHoldings(_ context.Context, playerID int64, category, excludeItem string) ([]domain.InventoryEntry, error) {
	var out []domain.InventoryEntry
	for id, item := range tx.store.items {
		if item.Category != category || item.Name == excludeItem {
			continue
		}
		if qty := tx.store.inventory[invKey(playerID, id)]; qty > 0 {
			out = append(out, domain.InventoryEntry{PlayerID: playerID, ItemID: id, Quantity: qty})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}

func (tx *fakeTx) AddItem(_ context.Context, playerID, itemID int64, quantity int) error {
	tx.store.inventory[invKey(playerID, itemID)] += quantity
	return nil
}

func (tx *fakeTx) RemoveItem(_ context.Context, playerID, itemID int64, quantity int) error {
	key := invKey(playerID, itemID)
	if tx.store.inventory[key] < quantity {
		return domain.ErrInsufficientItems
	}
	tx.store.inventory[key] -= quantity
	return nil
}

func (tx *fakeTx) GetGuildByPlayerForUpdate(_ context.Context, _ int64) (*domain.Guild, error) {
	return nil, domain.ErrNotInGuild
}

func (tx *fakeTx) GetGuildMembers(_ context.Context, _ int64) ([]domain.GuildMember, error) {
	return nil, nil
}

func (tx *fakeTx) UpdateGuildClass(_ context.Context, _ int64, _ int) error {
	return nil
}

func (tx *fakeTx) GetStockForUpdate(_ context.Context, _, _ int64) (*domain.StockEntry, error) {
	return nil, domain.ErrItemNotFound
}

func (tx *fakeTx) AdjustStock(_ context.Context, _, _ int64, _ int) error {
	return nil
}

func (tx *fakeTx) ReplaceShopStock(_ context.Context, _ int64, _ []domain.StockEntry, _ time.Time) error {
	return nil
}

// fakeCatalog implements catalog.Service from fixture maps.
type fakeCatalog struct {
	items     map[int64]domain.Item
	recipes   map[int64]domain.Recipe
	templates map[int64]domain.AdventureTemplate
	monsters  []domain.Monster
	materials map[domain.SkillType][]domain.Item
}

func (f *fakeCatalog) GetItem(_ context.Context, id int64) (*domain.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return &item, nil
}

func (f *fakeCatalog) GetItemByName(_ context.Context, name string) (*domain.Item, error) {
	for _, item := range f.items {
		if item.Name == name {
			return &item, nil
		}
	}
	return nil, domain.ErrItemNotFound
}

func (f *fakeCatalog) ListItems(_ context.Context) ([]domain.Item, error) {
	out := make([]domain.Item, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCatalog) GetRecipe(_ context.Context, id int64) (*domain.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	return &r, nil
}

func (f *fakeCatalog) ListRecipes(_ context.Context) ([]domain.Recipe, error) {
	out := make([]domain.Recipe, 0, len(f.recipes))
	for _, r := range f.recipes {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeCatalog) Materials(_ context.Context, category domain.SkillType) ([]domain.Item, error) {
	return f.materials[category], nil
}

func (f *fakeCatalog) DowngradePool(_ context.Context, category string, tier domain.Tier) ([]domain.Item, error) {
	below, ok := tier.Below()
	if !ok {
		return nil, nil
	}
	var out []domain.Item
	for _, item := range f.items {
		if item.Kind == domain.ItemProduct && item.Category == category && item.Tier == below {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCatalog) ListMonsters(_ context.Context) ([]domain.Monster, error) {
	return f.monsters, nil
}

func (f *fakeCatalog) MonstersByTier(_ context.Context, tier domain.Tier) ([]domain.Monster, error) {
	var out []domain.Monster
	for _, m := range f.monsters {
		if m.Tier == tier {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetTemplate(_ context.Context, id int64) (*domain.AdventureTemplate, error) {
	tpl, ok := f.templates[id]
	if !ok {
		return nil, domain.ErrTemplateNotFound
	}
	return &tpl, nil
}

func (f *fakeCatalog) ListTemplates(_ context.Context) ([]domain.AdventureTemplate, error) {
	out := make([]domain.AdventureTemplate, 0, len(f.templates))
	for _, tpl := range f.templates {
		out = append(out, tpl)
	}
	return out, nil
}

// scriptRNG replays fixed rolls and panics on exhaustion, so a test that
// consumes more randomness than scripted fails loudly.
type scriptRNG struct {
	floats []float64
	ints   []int
}

func (s *scriptRNG) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptRNG) IntN(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

// Shared fixture ids.
const (
	testPlayerID     = int64(1)
	ironIngotID      = int64(10)
	commonWoodID     = int64(11)
	ironSwordID      = int64(100)
	trainingSwordID  = int64(101)
	breadID          = int64(20)
	cookedMeatID     = int64(21)
	waterBottleID    = int64(22)
	bandageID        = int64(23)
	huntTemplateID   = int64(300)
	ironSwordRecipeID = int64(7)
)

var testBaseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testItems() map[int64]domain.Item {
	return map[int64]domain.Item{
		ironIngotID:     {ID: ironIngotID, Name: "Iron Ingot", Kind: domain.ItemMaterial, Category: domain.CategoryIngot, Tier: domain.TierD, BasePrice: 30},
		commonWoodID:    {ID: commonWoodID, Name: "Common Wood", Kind: domain.ItemMaterial, Category: string(domain.SkillWood), Tier: domain.TierF, BasePrice: 5},
		ironSwordID:     {ID: ironSwordID, Name: "Iron Sword", Kind: domain.ItemProduct, Category: domain.CategoryGear, Tier: domain.TierD, BasePrice: 120},
		trainingSwordID: {ID: trainingSwordID, Name: "Training Sword", Kind: domain.ItemProduct, Category: domain.CategoryGear, Tier: domain.TierF, BasePrice: 25},
		breadID:         {ID: breadID, Name: "Bread", Kind: domain.ItemProduct, Category: domain.CategoryFood, Tier: domain.TierF, BasePrice: 8},
		cookedMeatID:    {ID: cookedMeatID, Name: "Cooked Meat", Kind: domain.ItemProduct, Category: domain.CategoryFood, Tier: domain.TierF, BasePrice: 12},
		waterBottleID:   {ID: waterBottleID, Name: domain.ItemWaterBottle, Kind: domain.ItemProduct, Category: domain.CategoryFood, Tier: domain.TierF, BasePrice: 4},
		bandageID:       {ID: bandageID, Name: "Bandage", Kind: domain.ItemProduct, Category: domain.CategoryMedicine, Tier: domain.TierF, BasePrice: 15},
	}
}

func testCatalog() *fakeCatalog {
	items := testItems()
	return &fakeCatalog{
		items: items,
		recipes: map[int64]domain.Recipe{
			ironSwordRecipeID: {
				ID:              ironSwordRecipeID,
				ItemID:          ironSwordID,
				SkillType:       domain.SkillCrafting,
				DurationSeconds: 120,
				MinSkillLevel:   5,
				SuccessRate:     90,
				XPReward:        80,
				Ingredients: []domain.RecipeIngredient{
					{ItemID: ironIngotID, Quantity: 2},
					{ItemID: commonWoodID, Quantity: 1},
				},
			},
		},
		templates: map[int64]domain.AdventureTemplate{
			huntTemplateID: {ID: huntTemplateID, Name: "Wolf Cull", Type: "hunt"},
		},
		monsters: []domain.Monster{
			{ID: 1, Name: "Slime", Tier: domain.TierF},
			{ID: 2, Name: "Giant Rat", Tier: domain.TierF},
			{ID: 3, Name: "Dire Wolf", Tier: domain.TierD},
		},
		materials: map[domain.SkillType][]domain.Item{
			domain.SkillWood: {
				items[commonWoodID],
				{ID: 12, Name: "Stick", Kind: domain.ItemMaterial, Category: string(domain.SkillWood)},
			},
		},
	}
}

func testStore() *fakeStore {
	store := newFakeStore()
	store.items = testItems()
	store.players[testPlayerID] = domain.Player{
		ID:         testPlayerID,
		Gold:       100,
		Level:      1,
		RankLetter: domain.TierF,
		RankLevel:  1,
	}
	return store
}

func newTestService(store *fakeStore, cat *fakeCatalog, clock clockwork.Clock, r rng.RNG) Service {
	if r == nil {
		r = rng.NewSeeded(1)
	}
	return NewService(store, cat, clock, r)
}
