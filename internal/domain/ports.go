package domain

import "context"

// SocialRepository is the persistence port. RunAtomic hands the callback a
// repository bound to a single transaction; everything done through it
// commits or rolls back as a whole. All other methods are single-statement
// reads or writes.
type SocialRepository interface {
	RunAtomic(ctx context.Context, fn func(SocialRepository) error) error

	CreateUser(ctx context.Context, email string) (User, error)
	UserEmailTaken(ctx context.Context, email string) (bool, error)
	ListUsers(ctx context.Context) ([]User, error)

	CreateAccount(ctx context.Context, username, email string) (Account, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	AccountExists(ctx context.Context, id uint) (bool, error)
	ListAccounts(ctx context.Context) ([]Account, error)
	AccountsByEmail(ctx context.Context, email string) ([]Account, error)

	CreateFollowEdge(ctx context.Context, followerID, followedID uint) error
	DeleteFollowEdge(ctx context.Context, followerID, followedID uint) error
	HasFollowEdge(ctx context.Context, followerID, followedID uint) (bool, error)
	ListFollowEdges(ctx context.Context) ([]FollowEdge, error)

	CreatePost(ctx context.Context, accountID uint, content string) (Post, error)
	PostExists(ctx context.Context, id uint) (bool, error)
	GetPost(ctx context.Context, id uint) (Post, error)
	ListPosts(ctx context.Context) ([]Post, error)
	PostsByPopularity(ctx context.Context) ([]Post, error)
	AdjustPostLikes(ctx context.Context, postID uint, delta int) error

	CreateComment(ctx context.Context, postID, accountID uint, content string) (Comment, error)
	ListComments(ctx context.Context) ([]Comment, error)

	CreateLikeEdge(ctx context.Context, likerID, postID uint) error
	DeleteLikeEdge(ctx context.Context, likerID, postID uint) error
	HasLikeEdge(ctx context.Context, likerID, postID uint) (bool, error)
	InterestInAccount(ctx context.Context, accountID uint) ([]InterestRow, error)
}
