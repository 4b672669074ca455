package entities

// Realm is a coarse cultivation tier. Realms are totally ordered; the zero
// value is the first realm.
type Realm int

// Realms, ordered ascending. RealmDaoSeeking is terminal.
const (
	RealmQiRefining Realm = iota
	RealmFoundation
	RealmGoldenCore
	RealmNascentSoul
	RealmSpiritSevering
	RealmDaoSeeking
)

// MaxRealmLevel is the highest sub-level within a realm.
const MaxRealmLevel = 9

// String returns a human-readable realm name.
func (r Realm) String() string {
	switch r {
	case RealmQiRefining:
		return "Qi Refining"
	case RealmFoundation:
		return "Foundation Establishment"
	case RealmGoldenCore:
		return "Golden Core"
	case RealmNascentSoul:
		return "Nascent Soul"
	case RealmSpiritSevering:
		return "Spirit Severing"
	case RealmDaoSeeking:
		return "Dao Seeking"
	default:
		return "Unknown"
	}
}
