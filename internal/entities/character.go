// Package entities defines the data-only types the cultivation engine
// operates on. All derived values (aggregated stats, success chances) are
// computed by the engine, not here.
package entities

// Character is the aggregate root the engine mutates. The six base stat
// fields hold only table base + fixed talent/title bonuses + allocated
// attribute gains; equipment and technique bonuses are derived at read time
// and never persisted here.
type Character struct {
	ID       string `json:"id"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`

	Realm      Realm `json:"realm"`
	RealmLevel int   `json:"realm_level"`
	Exp        int   `json:"exp"`
	MaxExp     int   `json:"max_exp"`

	// Base stats (persisted, non-derived)
	Attack   int `json:"attack"`
	Defense  int `json:"defense"`
	MaxHP    int `json:"max_hp"`
	HP       int `json:"hp"`
	Spirit   int `json:"spirit"`
	Physique int `json:"physique"`
	Speed    int `json:"speed"`

	Lifespan    int `json:"lifespan"`
	MaxLifespan int `json:"max_lifespan"`

	AttributePoints int `json:"attribute_points"`
	SpiritStones    int `json:"spirit_stones"`

	TalentID          string   `json:"talent_id,omitempty"`
	CurrentTitleID    string   `json:"current_title_id,omitempty"`
	TitleIDs          []string `json:"title_ids,omitempty"`
	ActiveTechniqueID string   `json:"active_technique_id,omitempty"`

	Equipped    map[EquipSlot]string `json:"equipped,omitempty"`
	Inventory   map[string]*Item     `json:"inventory,omitempty"`
	NatalItemID string               `json:"natal_item_id,omitempty"`

	EquipCount int `json:"equip_count"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// BaseStats returns the persisted base stat fields as a block.
func (c *Character) BaseStats() StatBlock {
	return StatBlock{
		Attack:   c.Attack,
		Defense:  c.Defense,
		MaxHP:    c.MaxHP,
		Spirit:   c.Spirit,
		Physique: c.Physique,
		Speed:    c.Speed,
	}
}

// SetBaseStats writes a block back into the persisted base stat fields.
func (c *Character) SetBaseStats(b StatBlock) {
	c.Attack = b.Attack
	c.Defense = b.Defense
	c.MaxHP = b.MaxHP
	c.Spirit = b.Spirit
	c.Physique = b.Physique
	c.Speed = b.Speed
}

// Clone returns a deep copy of the character, including inventory and the
// equipment slot map. Engine transactions mutate a clone and return it.
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	out := *c
	if c.TitleIDs != nil {
		out.TitleIDs = make([]string, len(c.TitleIDs))
		copy(out.TitleIDs, c.TitleIDs)
	}
	if c.Equipped != nil {
		out.Equipped = make(map[EquipSlot]string, len(c.Equipped))
		for slot, id := range c.Equipped {
			out.Equipped[slot] = id
		}
	}
	if c.Inventory != nil {
		out.Inventory = make(map[string]*Item, len(c.Inventory))
		for id, item := range c.Inventory {
			out.Inventory[id] = item.Clone()
		}
	}
	return &out
}

// Item returns the inventory item with the given ID, or nil.
func (c *Character) Item(id string) *Item {
	if c.Inventory == nil {
		return nil
	}
	return c.Inventory[id]
}

// AddItem merges an item into the inventory, stacking quantity onto an
// existing entry with the same ID.
func (c *Character) AddItem(item *Item) {
	if c.Inventory == nil {
		c.Inventory = make(map[string]*Item)
	}
	if existing, ok := c.Inventory[item.ID]; ok {
		existing.Quantity += item.Quantity
		return
	}
	c.Inventory[item.ID] = item.Clone()
}

// RemoveItemQuantity decrements an item's quantity, pruning the entry when
// it reaches zero. Pruned items are purged from the slot map and the natal
// reference so no dangling ID survives.
func (c *Character) RemoveItemQuantity(id string, n int) {
	item := c.Item(id)
	if item == nil {
		return
	}
	item.Quantity -= n
	if item.Quantity > 0 {
		return
	}
	delete(c.Inventory, id)
	for slot, equippedID := range c.Equipped {
		if equippedID == id {
			delete(c.Equipped, slot)
		}
	}
	if c.NatalItemID == id {
		c.NatalItemID = ""
	}
}

// SlotOf returns the slot currently holding the item, if any.
func (c *Character) SlotOf(itemID string) (EquipSlot, bool) {
	for slot, id := range c.Equipped {
		if id == itemID {
			return slot, true
		}
	}
	return "", false
}

// ItemByCategory returns the first inventory item with the given category.
// Resource categories (upgrade stones, boosters) are stocked as a single
// stacking entry, so the lookup is unambiguous.
func (c *Character) ItemByCategory(cat ItemCategory) *Item {
	for _, item := range c.Inventory {
		if item.Category == cat {
			return item
		}
	}
	return nil
}
