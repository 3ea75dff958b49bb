package models

import "time"

// Entry - запись о билде (car build), принадлежит одному пользователю.
type Entry struct {
	BaseModel
	UserEmail   string   `gorm:"not null;index" json:"userEmail"`
	CarMake     string   `gorm:"not null" json:"carMake"`
	CarModel    string   `gorm:"not null" json:"carModel"`
	CarYear     int      `json:"carYear"`
	CarColor    string   `json:"carColor"`
	CarTrim     string   `json:"carTrim"`
	Description string   `gorm:"type:text" json:"description"`
	Region      Region   `gorm:"type:varchar(20);index" json:"region"`
	Category    Category `gorm:"type:varchar(20);index" json:"category"`

	// Денормализованные счетчики. Каждая мутация выполняется в одной
	// транзакции с мутацией соответствующей join-таблицы.
	Upvotes      int `gorm:"default:0" json:"upvotes"`
	CommentCount int `gorm:"default:0" json:"commentCount"`
	TotalMods    int `gorm:"default:0" json:"totalMods"`

	// Relations
	Photos     []EntryPhoto  `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`
	Mods       []EntryMod    `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE" json:"-"`
	Tags       []EntryTag    `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE" json:"-"`
	UpvoteRows []EntryUpvote `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE" json:"-"`
	Comments   []Comment     `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE" json:"-"`
}

// EntryPhoto - фото билда в объектном хранилище.
// isMainPhoto поддерживается на уровне приложения: setMain снимает
// флаг с остальных фото записи в той же транзакции.
type EntryPhoto struct {
	BaseModel
	EntryID     string `gorm:"not null;index" json:"entryId"`
	S3Key       string `gorm:"not null" json:"s3Key"`
	IsMainPhoto bool   `gorm:"default:false" json:"isMainPhoto"`
}

// EntryUpvote - join-строка (entryID, userEmail).
// Наличие строки и есть источник истины для Entry.Upvotes.
type EntryUpvote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EntryID   string    `gorm:"not null;uniqueIndex:idx_entry_upvote" json:"entryId"`
	UserEmail string    `gorm:"not null;uniqueIndex:idx_entry_upvote" json:"userEmail"`
	CreatedAt time.Time `json:"createdAt"`
}

// Report - жалоба на запись.
type Report struct {
	BaseModel
	EntryID       string `gorm:"not null;index" json:"entryId"`
	ReporterEmail string `gorm:"not null" json:"reporterEmail"`
	Reason        string `gorm:"type:text;not null" json:"reason"`
	Resolved      bool   `gorm:"default:false" json:"resolved"`
}
