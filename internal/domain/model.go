package domain

import "time"

// User is a registered identity. It is independent of any account: the
// schema in use here does not link accounts back to users, so a user row is
// nothing more than a claimed email address.
type User struct {
	ID        uint
	Email     string
	CreatedAt time.Time
}

// Account is the social-facing profile. Every social action (follow, post,
// comment, like) attaches to an account. Account emails are intentionally
// not unique; AccountsByEmail exists for exactly that reason.
type Account struct {
	ID        uint
	Username  string
	Email     string
	CreatedAt time.Time
}

// FollowEdge is directed: the follower observes the followed's content.
// At most one edge exists per ordered (follower, followed) pair.
type FollowEdge struct {
	FollowerID uint
	FollowedID uint
	CreatedAt  time.Time
}

// Post's Likes field is a maintained counter; it must always equal the
// number of LikeEdge rows referencing the post.
type Post struct {
	ID        uint
	AccountID uint
	Content   string
	Likes     int
	CreatedAt time.Time
}

type Comment struct {
	ID        uint
	PostID    uint
	AccountID uint
	Content   string
	CreatedAt time.Time
}

// LikeEdge records that an account liked a post. At most one edge exists
// per (liker, post) pair.
type LikeEdge struct {
	LikerID   uint
	PostID    uint
	CreatedAt time.Time
}

// InterestRow is one liker's aggregate over a single account's posts:
// how many of that account's posts the liker has liked.
type InterestRow struct {
	AccountID     uint
	LikerID       uint
	LikerUsername string
	Likes         int
}
