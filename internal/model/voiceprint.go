package model

import "time"

// Voiceprint — зашифрованный шаблон голоса пользователя. Один на пользователя.
type Voiceprint struct {
	ID     string `gorm:"primaryKey;type:uuid"`
	UserID int64  `gorm:"not null;uniqueIndex"` // ссылка на users.id

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	// Template — непрозрачный токен шифратора, внутри JSON-массив признаков.
	Template   string `gorm:"not null"`
	VectorSize int    `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
