package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/d00415697/Social-Network/internal/domain"
	"github.com/rs/zerolog"
)

// Outcomes reported by the idempotent edge operations. They are not errors:
// the requested state already held (or, for the deletes, never held).

type FollowOutcome int

const (
	FollowCreated FollowOutcome = iota
	AlreadyFollowing
)

type UnfollowOutcome int

const (
	Unfollowed UnfollowOutcome = iota
	NotFollowing
)

type LikeOutcome int

const (
	Liked LikeOutcome = iota
	AlreadyLiked
)

type UnlikeOutcome int

const (
	Unliked UnlikeOutcome = iota
	NotLiked
)

// SocialService implements the mutation operations and analytics queries.
// Every mutation runs inside one atomic unit of work: guards first, writes
// after, so a guard failure never leaves a partial row behind.
type SocialService struct {
	repo domain.SocialRepository
	log  zerolog.Logger
}

func NewSocialService(repo domain.SocialRepository, log zerolog.Logger) *SocialService {
	return &SocialService{repo: repo, log: log}
}

func (s *SocialService) RegisterUser(ctx context.Context, email string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.User{}, errors.New("email is required")
	}

	var created domain.User
	err := s.repo.RunAtomic(ctx, func(tx domain.SocialRepository) error {
		taken, err := tx.UserEmailTaken(ctx, email)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("email %q already registered: %w", email, domain.ErrConflict)
		}
		created, err = tx.CreateUser(ctx, email)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}

	s.log.Info().Uint("user_id", created.ID).Str("email", email).Msg("user registered")
	return created, nil
}

func (s *SocialService) RegisterAccount(ctx context.Context, username, email string) (domain.Account, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return domain.Account{}, errors.New("username and email are required")
	}

	var created domain.Account
	err := s.repo.RunAtomic(ctx, func(tx domain.SocialRepository) error {
		taken, err := tx.UsernameTaken(ctx, username)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("username %q already taken: %w", username, domain.ErrConflict)
		}
		created, err = tx.CreateAccount(ctx, username, email)
		return err
	})
	if err != nil {
		return domain.Account{}, err
	}

	s.log.Info().Uint("account_id", created.ID).Str("username", username).Msg("account registered")
	return created, nil
}

func (s *SocialService) Follow(ctx context.Context, followerID, followedID uint) (FollowOutcome, error) {
	outcome := FollowCreated
	err := s.repo.RunAtomic(ctx, func(tx domain.SocialRepository) error {
		if err := requireAccount(ctx, tx, followerID); err != nil {
			return err
		}
		if err := requireAccount(ctx, tx, followedID); err != nil {
			return err
		}
		held, err := tx.HasFollowEdge(ctx, followerID, followedID)
		if err != nil {
			return err
		}
		if held {
			outcome = AlreadyFollowing
			return nil
		}
		return tx.CreateFollowEdge(ctx, followerID, followedID)
	})
	return outcome, err
}

func (s *SocialService) Unfollow(ctx context.Context, followerID, followedID uint) (UnfollowOutcome, error) {
	outcome := Unfollowed
	err := s.repo.RunAtomic(ctx, func(tx domain.SocialRepository) error {
		if err := requireAccount(ctx, tx, followerID); err != nil {
			return err
		}
		if err := requireAccount(ctx, tx, followedID); err != nil {
			return err
		}
		held, err := tx.HasFollowEdge(ctx, followerID, followedID)
		if err != nil {
			return err
		}
		if !held {
			outcome = NotFollowing
			return nil
		}
		return tx.DeleteFollowEdge(ctx, followerID, followedID)
	})
	return outcome, err
}

func (s *SocialService) CreatePost(ctx context.Context, accountID uint, content string) (domain.Post, error) {
	if strings.TrimSpace(content) == "" {
		return domain.Post{}, errors.New("content is required")
	}

	var created domain.Post
	err := s.repo.RunAtomic(ctx, func(tx domain.SocialRepository) error {
		if err := requireAccount(ctx, tx, accountID); err != nil {
			return err
		}
		var err error
		created, err = tx.CreatePost(ctx, accountID, content)
		return err
	})
	if err != nil {
		return domain.Post{}, err
	}

	s.log.Info().Uint("post_id", created.ID).Uint("account_id", accountID).Msg("post created")
	return created, nil
}

func (s *SocialService) CreateComment(ctx context.Context, postID, accountID uint, content string) (domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return domain.Comment{}, errors.New("content is required")
	}

	var created domain.Comment
	err := s.repo.RunAtomic(ctx, func(tx domain.SocialRepository) error {
		if err := requirePost(ctx, tx, postID); err != nil {
			return err
		}
		if err := requireAccount(ctx, tx, accountID); err != nil {
			return err
		}
		var err error
		created, err = tx.CreateComment(ctx, postID, accountID, content)
		return err
	})
	if err != nil {
		return domain.Comment{}, err
	}

	s.log.Info().Uint("comment_id", created.ID).Uint("post_id", postID).Msg("comment created")
	return created, nil
}

// Like inserts the like edge and bumps the post's likes counter in the same
// unit of work, keeping the counter equal to the edge count at all times.
func (s *SocialService) Like(ctx context.Context, postID, likerID uint) (LikeOutcome, error) {
	outcome := Liked
	err := s.repo.RunAtomic(ctx, func(tx domain.SocialRepository) error {
		if err := requirePost(ctx, tx, postID); err != nil {
			return err
		}
		if err := requireAccount(ctx, tx, likerID); err != nil {
			return err
		}
		held, err := tx.HasLikeEdge(ctx, likerID, postID)
		if err != nil {
			return err
		}
		if held {
			outcome = AlreadyLiked
			return nil
		}
		if err := tx.CreateLikeEdge(ctx, likerID, postID); err != nil {
			return err
		}
		return tx.AdjustPostLikes(ctx, postID, 1)
	})
	return outcome, err
}

func (s *SocialService) Unlike(ctx context.Context, postID, likerID uint) (UnlikeOutcome, error) {
	outcome := Unliked
	err := s.repo.RunAtomic(ctx, func(tx domain.SocialRepository) error {
		if err := requirePost(ctx, tx, postID); err != nil {
			return err
		}
		if err := requireAccount(ctx, tx, likerID); err != nil {
			return err
		}
		held, err := tx.HasLikeEdge(ctx, likerID, postID)
		if err != nil {
			return err
		}
		if !held {
			outcome = NotLiked
			return nil
		}
		if err := tx.DeleteLikeEdge(ctx, likerID, postID); err != nil {
			return err
		}
		return tx.AdjustPostLikes(ctx, postID, -1)
	})
	return outcome, err
}

// queries

func (s *SocialService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *SocialService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.repo.ListAccounts(ctx)
}

func (s *SocialService) AccountsForEmail(ctx context.Context, email string) ([]domain.Account, error) {
	return s.repo.AccountsByEmail(ctx, strings.TrimSpace(email))
}

func (s *SocialService) ListFollowEdges(ctx context.Context) ([]domain.FollowEdge, error) {
	return s.repo.ListFollowEdges(ctx)
}

func (s *SocialService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return s.repo.ListPosts(ctx)
}

func (s *SocialService) ListComments(ctx context.Context) ([]domain.Comment, error) {
	return s.repo.ListComments(ctx)
}

func (s *SocialService) GetPost(ctx context.Context, id uint) (domain.Post, error) {
	return s.repo.GetPost(ctx, id)
}

func (s *SocialService) PopularityRanking(ctx context.Context) ([]domain.Post, error) {
	return s.repo.PostsByPopularity(ctx)
}

// MutualInterest reports who engages most with the given account's posts.
// An account with no posts, or no likes on them, yields an empty result.
func (s *SocialService) MutualInterest(ctx context.Context, accountID uint) ([]domain.InterestRow, error) {
	return s.repo.InterestInAccount(ctx, accountID)
}

// integrity guards

func requireAccount(ctx context.Context, tx domain.SocialRepository, id uint) error {
	ok, err := tx.AccountExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewNotFound(domain.KindAccount, id)
	}
	return nil
}

func requirePost(ctx context.Context, tx domain.SocialRepository, id uint) error {
	ok, err := tx.PostExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewNotFound(domain.KindPost, id)
	}
	return nil
}
