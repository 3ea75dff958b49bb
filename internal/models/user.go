package models

import "time"

type User struct {
	BaseModel
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	Name              string     `gorm:"not null" json:"name"`
	PasswordHash      string     `gorm:"not null" json:"-"`
	Region            Region     `gorm:"type:varchar(20)" json:"region"`
	IsVerified        bool       `gorm:"default:false" json:"isVerified"`
	IsEditor          bool       `gorm:"default:false" json:"isEditor"`
	ProfilePhotoKey   string     `json:"profilePhotoKey"`
	VerificationToken string     `json:"-"`
	ResetToken        string     `json:"-"`
	ResetTokenExp     *time.Time `json:"-"`

	// Кэш числа записей; источник истины - строки entries
	TotalEntries int `gorm:"default:0" json:"totalEntries"`

	// Relations
	Entries []Entry `gorm:"foreignKey:UserEmail;references:Email;constraint:OnDelete:CASCADE" json:"entries,omitempty"`
	Awards  []Award `gorm:"foreignKey:UserEmail;references:Email;constraint:OnDelete:CASCADE" json:"awards,omitempty"`
}
