package entity

import "time"

type ChatMessage struct {
	ID        int64 `gorm:"primaryKey"`
	CreatedAt time.Time

	CampaignID string
	Campaign   Campaign `gorm:"foreignKey:CampaignID"`

	Channel string

	AuthorID string
	Author   User `gorm:"foreignKey:AuthorID"`

	Content string
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
