package entities

// ItemType categorizes items by their role.
type ItemType string

// Item types
const (
	ItemTypeWeapon     ItemType = "ITEM_TYPE_WEAPON"
	ItemTypeArmor      ItemType = "ITEM_TYPE_ARMOR"
	ItemTypeArtifact   ItemType = "ITEM_TYPE_ARTIFACT"
	ItemTypeRing       ItemType = "ITEM_TYPE_RING"
	ItemTypeAccessory  ItemType = "ITEM_TYPE_ACCESSORY"
	ItemTypeMaterial   ItemType = "ITEM_TYPE_MATERIAL"
	ItemTypeConsumable ItemType = "ITEM_TYPE_CONSUMABLE"
	ItemTypeRecipe     ItemType = "ITEM_TYPE_RECIPE"
	ItemTypeAdvanced   ItemType = "ITEM_TYPE_ADVANCED"
)

// ItemCategory tags an item's mechanical role at construction time.
// Categories replace name-substring heuristics for identifying resources.
type ItemCategory string

// Item categories
const (
	ItemCategoryNone           ItemCategory = ""
	ItemCategoryUpgradeStone   ItemCategory = "ITEM_CATEGORY_UPGRADE_STONE"
	ItemCategoryUpgradeBooster ItemCategory = "ITEM_CATEGORY_UPGRADE_BOOSTER"
	ItemCategoryElixir         ItemCategory = "ITEM_CATEGORY_ELIXIR"
	ItemCategoryKey            ItemCategory = "ITEM_CATEGORY_KEY"
)

// Rarity is an ordered quality tier.
type Rarity int

// Rarity tiers, ordered ascending
const (
	RarityCommon Rarity = iota
	RarityRare
	RarityLegendary
	RarityMythic
)

// String returns a human-readable rarity name.
func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityLegendary:
		return "Legendary"
	case RarityMythic:
		return "Mythic"
	default:
		return "Unknown"
	}
}

// EquipSlot is one addressable equipment position.
type EquipSlot string

// Equipment slot instances. Rings, accessories, and artifacts share a pool
// of interchangeable instances; weapons and armor have a single slot each.
const (
	EquipSlotWeapon     EquipSlot = "SLOT_WEAPON"
	EquipSlotArmor      EquipSlot = "SLOT_ARMOR"
	EquipSlotRing1      EquipSlot = "SLOT_RING_1"
	EquipSlotRing2      EquipSlot = "SLOT_RING_2"
	EquipSlotRing3      EquipSlot = "SLOT_RING_3"
	EquipSlotRing4      EquipSlot = "SLOT_RING_4"
	EquipSlotAccessory1 EquipSlot = "SLOT_ACCESSORY_1"
	EquipSlotAccessory2 EquipSlot = "SLOT_ACCESSORY_2"
	EquipSlotArtifact1  EquipSlot = "SLOT_ARTIFACT_1"
	EquipSlotArtifact2  EquipSlot = "SLOT_ARTIFACT_2"
)

// SlotGroup returns the ordered slot instances an item type may occupy.
// The order is stable: the allocator fills the first empty instance.
func SlotGroup(t ItemType) []EquipSlot {
	switch t {
	case ItemTypeWeapon:
		return []EquipSlot{EquipSlotWeapon}
	case ItemTypeArmor:
		return []EquipSlot{EquipSlotArmor}
	case ItemTypeRing:
		return []EquipSlot{EquipSlotRing1, EquipSlotRing2, EquipSlotRing3, EquipSlotRing4}
	case ItemTypeAccessory:
		return []EquipSlot{EquipSlotAccessory1, EquipSlotAccessory2}
	case ItemTypeArtifact:
		return []EquipSlot{EquipSlotArtifact1, EquipSlotArtifact2}
	default:
		return nil
	}
}

// IsEquippable reports whether items of this type can occupy a slot.
func (t ItemType) IsEquippable() bool {
	return len(SlotGroup(t)) > 0
}

// Item is an owned object in a character's inventory. Equipment contributes
// its Effect while equipped; consumables apply PermanentEffect once and are
// consumed.
type Item struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Type            ItemType     `json:"type"`
	Category        ItemCategory `json:"category,omitempty"`
	Rarity          Rarity       `json:"rarity"`
	Quantity        int          `json:"quantity"`
	Level           int          `json:"level,omitempty"`
	Effect          StatBlock    `json:"effect,omitempty"`
	PermanentEffect StatBlock    `json:"permanent_effect,omitempty"`
	IsNatal         bool         `json:"is_natal,omitempty"`
}

// Clone returns a deep copy of the item.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// Contribution returns the stat bundle the item adds while equipped.
// Natal items contribute at 1.5x.
func (i *Item) Contribution() StatBlock {
	if i.IsNatal {
		return i.Effect.Scale(1.5)
	}
	return i.Effect
}
