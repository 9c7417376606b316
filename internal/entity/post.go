package entity

import "time"

type Post struct {
	Base
	AuthorID string
	Author   User `gorm:"foreignKey:AuthorID"`

	Content   []byte        `gorm:"type:longtext"`
	ImageURLs Array[string] `gorm:"type:longtext"`
	VideoURLs Array[string] `gorm:"type:longtext"`
}

type PostLike struct {
	CreatedAt time.Time

	PostID string `gorm:"primaryKey"`
	Post   Post   `gorm:"foreignKey:PostID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`
}

// PostReaction holds at most one emoji per user and post. Re-reacting
// replaces the emoji in place.
type PostReaction struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	PostID string `gorm:"primaryKey"`
	Post   Post   `gorm:"foreignKey:PostID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	Emoji string
}

type Comment struct {
	Base
	PostID string
	Post   Post `gorm:"foreignKey:PostID"`

	AuthorID string
	Author   User `gorm:"foreignKey:AuthorID"`

	Content []byte `gorm:"type:longtext"`
}
