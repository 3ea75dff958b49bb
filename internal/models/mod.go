package models

// Mod - каталожная деталь/модификация, переиспользуется между записями.
type Mod struct {
	BaseModel
	Brand       string  `gorm:"not null" json:"brand"`
	Category    string  `gorm:"not null" json:"category"`
	Cost        float64 `json:"cost"`
	Description string  `gorm:"type:text" json:"description"`
	Link        string  `json:"link"`
}

// EntryMod - ассоциация many-to-many записи и модификации.
type EntryMod struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	EntryID string `gorm:"not null;uniqueIndex:idx_entry_mod" json:"entryId"`
	ModID   string `gorm:"not null;uniqueIndex:idx_entry_mod" json:"modId"`

	Mod Mod `gorm:"foreignKey:ModID;constraint:OnDelete:CASCADE" json:"mod"`
}
