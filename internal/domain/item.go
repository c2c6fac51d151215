package domain

// ItemKind separates gatherable materials from craftable products.
type ItemKind string

const (
	ItemMaterial ItemKind = "material"
	ItemProduct  ItemKind = "product"
)

// Rarity is cosmetic item quality, independent of tier.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Item category names. Gathering categories match SkillType values; the rest
// group craftable products.
const (
	CategoryBasic    = "basic"
	CategoryIngot    = "ingot"
	CategoryGear     = "gear"
	CategoryFood     = "food"
	CategoryTrade    = "trade"
	CategoryMedicine = "medicine"
)

// ItemWaterBottle is the one food item that counts as water, not food, for
// adventure supplies.
const ItemWaterBottle = "Water Bottle"

// Item is immutable catalog reference data.
type Item struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Kind      ItemKind `json:"kind"`
	Category  string   `json:"category"`
	Rarity    Rarity   `json:"rarity"`
	Tier      Tier     `json:"tier"`
	Damage    int      `json:"damage"`
	StatValue int      `json:"stat_value"`
	BasePrice int      `json:"base_price"`
}

// SellPrice is what any shop pays for one unit, independent of stock state.
func (i Item) SellPrice() int {
	return i.BasePrice * 8 / 10
}

// InventoryEntry is one stack of an item in a player's inventory. Quantity is
// never negative; operations that would drive it negative fail whole.
type InventoryEntry struct {
	PlayerID int64 `json:"player_id"`
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

// InventoryItem is an inventory entry joined with its catalog item, as served
// to clients.
type InventoryItem struct {
	Item
	Quantity int `json:"quantity"`
}
