package model

import "time"

// Profile 用户资料（身份体系在外部，这里只存展示字段）
type Profile struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	FullName  string    `json:"full_name" gorm:"type:varchar(128)"`
	Username  string    `json:"username" gorm:"type:varchar(64);uniqueIndex"`
	Role      string    `json:"role" gorm:"type:varchar(16);default:reader"`
	AvatarURL string    `json:"avatar_url" gorm:"type:varchar(500)"`
	Bio       string    `json:"bio" gorm:"type:text"`
	Website   string    `json:"website" gorm:"type:varchar(255)"`
	Twitter   string    `json:"twitter" gorm:"type:varchar(255)"`
	LinkedIn  string    `json:"linkedin" gorm:"type:varchar(255)"`
	Instagram string    `json:"instagram" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }
