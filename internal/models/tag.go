package models

// Tag - свободная метка, дедуплицируется по имени и
// создается лениво при первом использовании.
type Tag struct {
	BaseModel
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

type EntryTag struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	EntryID string `gorm:"not null;uniqueIndex:idx_entry_tag" json:"entryId"`
	TagID   string `gorm:"not null;uniqueIndex:idx_entry_tag" json:"tagId"`

	Tag Tag `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"tag"`
}
