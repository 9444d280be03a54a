package model

import "time"

// 通知类型
const (
	NotificationComment  = "comment"
	NotificationLike     = "like"
	NotificationFollow   = "follow"
	NotificationUnfollow = "unfollow"
	NotificationMention  = "mention"
	NotificationSave     = "save"
)

// 通知引用对象类型
const (
	ReferencePost    = "post"
	ReferenceComment = "comment"
	ReferenceUser    = "user"
)

// Notification 通知，只由扇出引擎创建
type Notification struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Type          string    `json:"type" gorm:"type:varchar(16);index"`
	Content       string    `json:"content" gorm:"type:text"`
	TargetUserID  string    `json:"target_user_id" gorm:"type:varchar(36);index:idx_notification_target;not null"`
	ReferenceID   *string   `json:"reference_id" gorm:"type:varchar(36)"`
	ReferenceType string    `json:"reference_type" gorm:"type:varchar(16)"`
	IsRead        bool      `json:"is_read" gorm:"index:idx_notification_target;default:false"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
}

func (Notification) TableName() string { return "notifications" }
