package models

import "time"

// Award - достижение пользователя, без ссылок на записи.
type Award struct {
	BaseModel
	UserEmail string    `gorm:"not null;index" json:"userEmail"`
	AwardType AwardType `gorm:"type:varchar(30);not null" json:"awardType"`
	AwardDate time.Time `gorm:"not null" json:"awardDate"`
}
