package sqlite

import (
	"context"
	"fmt"
	"strings"

	"emperror.dev/errors"
	"github.com/d00415697/Social-Network/internal/domain"
	"gorm.io/gorm"
)

type SocialRepository struct {
	db *gorm.DB
}

func NewSocialRepository(db *gorm.DB) *SocialRepository {
	return &SocialRepository{db: db}
}

// RunAtomic executes fn against a repository bound to one transaction.
// An error returned from fn rolls back every write made inside it.
func (r *SocialRepository) RunAtomic(ctx context.Context, fn func(domain.SocialRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SocialRepository{db: tx})
	})
}

// user

func (r *SocialRepository) CreateUser(ctx context.Context, email string) (domain.User, error) {
	m := UserModel{Email: email}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.User{}, wrapWrite("create user", err)
	}
	return domain.User{ID: m.ID, Email: m.Email, CreatedAt: m.CreatedAt}, nil
}

func (r *SocialRepository) UserEmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, wrapRead("count users by email", err)
	}
	return count > 0, nil
}

func (r *SocialRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows := make([]UserModel, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, wrapRead("list users", err)
	}
	result := make([]domain.User, 0, len(rows))
	for _, m := range rows {
		result = append(result, domain.User{ID: m.ID, Email: m.Email, CreatedAt: m.CreatedAt})
	}
	return result, nil
}

// account

func (r *SocialRepository) CreateAccount(ctx context.Context, username, email string) (domain.Account, error) {
	m := AccountModel{Username: username, Email: email}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Account{}, wrapWrite("create account", err)
	}
	return domain.Account{ID: m.ID, Username: m.Username, Email: m.Email, CreatedAt: m.CreatedAt}, nil
}

func (r *SocialRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&AccountModel{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, wrapRead("count accounts by username", err)
	}
	return count > 0, nil
}

func (r *SocialRepository) AccountExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&AccountModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, wrapRead("count accounts by id", err)
	}
	return count > 0, nil
}

func (r *SocialRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows := make([]AccountModel, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, wrapRead("list accounts", err)
	}
	return toAccounts(rows), nil
}

func (r *SocialRepository) AccountsByEmail(ctx context.Context, email string) ([]domain.Account, error) {
	rows := make([]AccountModel, 0)
	if err := r.db.WithContext(ctx).Where("email = ?", email).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, wrapRead("list accounts by email", err)
	}
	return toAccounts(rows), nil
}

func toAccounts(rows []AccountModel) []domain.Account {
	result := make([]domain.Account, 0, len(rows))
	for _, m := range rows {
		result = append(result, domain.Account{ID: m.ID, Username: m.Username, Email: m.Email, CreatedAt: m.CreatedAt})
	}
	return result
}

// follow edge

func (r *SocialRepository) CreateFollowEdge(ctx context.Context, followerID, followedID uint) error {
	m := FollowModel{FollowerID: followerID, FollowedID: followedID}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return wrapWrite("create follow edge", err)
	}
	return nil
}

func (r *SocialRepository) DeleteFollowEdge(ctx context.Context, followerID, followedID uint) error {
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&FollowModel{}).Error
	if err != nil {
		return wrapWrite("delete follow edge", err)
	}
	return nil
}

func (r *SocialRepository) HasFollowEdge(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&FollowModel{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, wrapRead("count follow edges", err)
	}
	return count > 0, nil
}

func (r *SocialRepository) ListFollowEdges(ctx context.Context) ([]domain.FollowEdge, error) {
	rows := make([]FollowModel, 0)
	if err := r.db.WithContext(ctx).Order("follower_id ASC, followed_id ASC").Find(&rows).Error; err != nil {
		return nil, wrapRead("list follow edges", err)
	}
	result := make([]domain.FollowEdge, 0, len(rows))
	for _, m := range rows {
		result = append(result, domain.FollowEdge{FollowerID: m.FollowerID, FollowedID: m.FollowedID, CreatedAt: m.CreatedAt})
	}
	return result, nil
}

// post

func (r *SocialRepository) CreatePost(ctx context.Context, accountID uint, content string) (domain.Post, error) {
	m := PostModel{AccountID: accountID, Content: content, Likes: 0}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Post{}, wrapWrite("create post", err)
	}
	return toPost(m), nil
}

func (r *SocialRepository) PostExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&PostModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, wrapRead("count posts by id", err)
	}
	return count > 0, nil
}

func (r *SocialRepository) GetPost(ctx context.Context, id uint) (domain.Post, error) {
	var m PostModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Post{}, domain.NewNotFound(domain.KindPost, id)
		}
		return domain.Post{}, wrapRead("get post", err)
	}
	return toPost(m), nil
}

func (r *SocialRepository) ListPosts(ctx context.Context) ([]domain.Post, error) {
	rows := make([]PostModel, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, wrapRead("list posts", err)
	}
	return toPosts(rows), nil
}

// PostsByPopularity orders by the maintained likes counter, ties broken by
// post id ascending so the ranking is deterministic.
func (r *SocialRepository) PostsByPopularity(ctx context.Context) ([]domain.Post, error) {
	rows := make([]PostModel, 0)
	if err := r.db.WithContext(ctx).Order("likes DESC, id ASC").Find(&rows).Error; err != nil {
		return nil, wrapRead("rank posts by likes", err)
	}
	return toPosts(rows), nil
}

func (r *SocialRepository) AdjustPostLikes(ctx context.Context, postID uint, delta int) error {
	err := r.db.WithContext(ctx).Model(&PostModel{}).
		Where("id = ?", postID).
		UpdateColumn("likes", gorm.Expr("likes + ?", delta)).Error
	if err != nil {
		return wrapWrite("adjust post likes", err)
	}
	return nil
}

func toPost(m PostModel) domain.Post {
	return domain.Post{ID: m.ID, AccountID: m.AccountID, Content: m.Content, Likes: m.Likes, CreatedAt: m.CreatedAt}
}

func toPosts(rows []PostModel) []domain.Post {
	result := make([]domain.Post, 0, len(rows))
	for _, m := range rows {
		result = append(result, toPost(m))
	}
	return result
}

// comment

func (r *SocialRepository) CreateComment(ctx context.Context, postID, accountID uint, content string) (domain.Comment, error) {
	m := CommentModel{PostID: postID, AccountID: accountID, Content: content}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Comment{}, wrapWrite("create comment", err)
	}
	return domain.Comment{ID: m.ID, PostID: m.PostID, AccountID: m.AccountID, Content: m.Content, CreatedAt: m.CreatedAt}, nil
}

func (r *SocialRepository) ListComments(ctx context.Context) ([]domain.Comment, error) {
	rows := make([]CommentModel, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, wrapRead("list comments", err)
	}
	result := make([]domain.Comment, 0, len(rows))
	for _, m := range rows {
		result = append(result, domain.Comment{ID: m.ID, PostID: m.PostID, AccountID: m.AccountID, Content: m.Content, CreatedAt: m.CreatedAt})
	}
	return result, nil
}

// like edge

func (r *SocialRepository) CreateLikeEdge(ctx context.Context, likerID, postID uint) error {
	m := LikeModel{LikerID: likerID, PostID: postID}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return wrapWrite("create like edge", err)
	}
	return nil
}

func (r *SocialRepository) DeleteLikeEdge(ctx context.Context, likerID, postID uint) error {
	err := r.db.WithContext(ctx).
		Where("liker_id = ? AND post_id = ?", likerID, postID).
		Delete(&LikeModel{}).Error
	if err != nil {
		return wrapWrite("delete like edge", err)
	}
	return nil
}

func (r *SocialRepository) HasLikeEdge(ctx context.Context, likerID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&LikeModel{}).
		Where("liker_id = ? AND post_id = ?", likerID, postID).
		Count(&count).Error
	if err != nil {
		return false, wrapRead("count like edges", err)
	}
	return count > 0, nil
}

// InterestInAccount aggregates, per liker, how many of the given account's
// posts that liker has liked. Ordered by count descending, ties broken by
// liker id ascending.
func (r *SocialRepository) InterestInAccount(ctx context.Context, accountID uint) ([]domain.InterestRow, error) {
	type row struct {
		LikerID       uint
		LikerUsername string
		Likes         int
	}

	rows := make([]row, 0)
	if err := r.db.WithContext(ctx).Raw(`
SELECT l.liker_id,
       a.username AS liker_username,
       COUNT(1) AS likes
FROM posts p
JOIN likes l ON l.post_id = p.id
JOIN accounts a ON a.id = l.liker_id
WHERE p.account_id = ?
GROUP BY l.liker_id
ORDER BY likes DESC, l.liker_id ASC
`, accountID).Scan(&rows).Error; err != nil {
		return nil, wrapRead("aggregate interest", err)
	}

	result := make([]domain.InterestRow, 0, len(rows))
	for _, m := range rows {
		result = append(result, domain.InterestRow{
			AccountID:     accountID,
			LikerID:       m.LikerID,
			LikerUsername: m.LikerUsername,
			Likes:         m.Likes,
		})
	}
	return result, nil
}

func wrapWrite(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	return &domain.StorageError{Op: op, Err: errors.WithStack(err)}
}

func wrapRead(op string, err error) error {
	return &domain.StorageError{Op: op, Err: errors.WithStack(err)}
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
