package sqlite

import "time"

type UserModel struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"not null;uniqueIndex"`
	CreatedAt time.Time
}

func (UserModel) TableName() string { return "users" }

type AccountModel struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"not null;uniqueIndex"`
	Email     string `gorm:"not null;index"`
	CreatedAt time.Time
}

func (AccountModel) TableName() string { return "accounts" }

type FollowModel struct {
	ID         uint `gorm:"primaryKey"`
	FollowerID uint `gorm:"not null;index:idx_follow_pair,unique"`
	FollowedID uint `gorm:"not null;index:idx_follow_pair,unique"`
	CreatedAt  time.Time
}

func (FollowModel) TableName() string { return "follows" }

type PostModel struct {
	ID        uint   `gorm:"primaryKey"`
	AccountID uint   `gorm:"not null;index"`
	Content   string `gorm:"not null"`
	Likes     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
}

func (PostModel) TableName() string { return "posts" }

type CommentModel struct {
	ID        uint   `gorm:"primaryKey"`
	PostID    uint   `gorm:"not null;index"`
	AccountID uint   `gorm:"not null;index"`
	Content   string `gorm:"not null"`
	CreatedAt time.Time
}

func (CommentModel) TableName() string { return "comments" }

type LikeModel struct {
	ID        uint `gorm:"primaryKey"`
	LikerID   uint `gorm:"not null;index:idx_like_pair,unique"`
	PostID    uint `gorm:"not null;index:idx_like_pair,unique"`
	CreatedAt time.Time
}

func (LikeModel) TableName() string { return "likes" }
