package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	sqliteadapter "github.com/d00415697/Social-Network/internal/adapters/db/sqlite"
	"github.com/d00415697/Social-Network/internal/application"
	"github.com/d00415697/Social-Network/internal/domain"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "face",
		Usage: "Face, a state-of-the-art social network",
		Commands: []*cli.Command{
			createCommand(),
			deleteCommand(),
			addUserCommand(),
			addAccountCommand(),
			followCommand(),
			unfollowCommand(),
			postCommand(),
			commentCommand(),
			likeCommand(),
			unlikeCommand(),
			usersCommand(),
			accountsCommand(),
			multiCommand(),
			followsCommand(),
			postsCommand(),
			commentsCommand(),
			gossipCommand(),
			stalkerCommand(),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		exitWith(err)
	}
}

// exitWith renders an error kind as a user-facing message and sets the
// process exit status. No-op outcomes never reach here.
func exitWith(err error) {
	var notFound *domain.NotFoundError
	var storage *domain.StorageError
	switch {
	case errors.Is(err, domain.ErrNotInitialized):
		fmt.Fprintln(os.Stderr, "no database found")
	case errors.As(err, &notFound):
		fmt.Fprintln(os.Stderr, notFound.Error())
	case errors.Is(err, domain.ErrConflict):
		fmt.Fprintln(os.Stderr, err.Error())
	case errors.As(err, &storage):
		logger.Error().Err(err).Msg("storage failure")
	default:
		fmt.Fprintln(os.Stderr, err.Error())
	}
	os.Exit(1)
}

func withService(fn func(*application.SocialService) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := sqliteadapter.Open(cfg.DBPath, false)
	if err != nil {
		return err
	}
	return fn(application.NewSocialService(sqliteadapter.NewSocialRepository(db), logger))
}

func argString(c *cli.Command, i int, name string) (string, error) {
	raw := c.Args().Get(i)
	if raw == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return raw, nil
}

func argID(c *cli.Command, i int, name string) (uint, error) {
	raw, err := argString(c, i, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a numeric id, got %q", name, raw)
	}
	return uint(v), nil
}

func createCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Destroy any existing database and create a fresh one",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			fmt.Println("Welcome to Face, a state-of-the-art social network.")
			fmt.Println("Creating database.")
			if _, err := sqliteadapter.Initialize(ctx, cfg.DBPath); err != nil {
				return err
			}
			fmt.Println("database created")
			return nil
		},
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "Irreversibly delete the database",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := sqliteadapter.Teardown(cfg.DBPath); err != nil {
				return err
			}
			fmt.Println("database deleted")
			return nil
		},
	}
}

func addUserCommand() *cli.Command {
	return &cli.Command{
		Name:      "adduser",
		Usage:     "Register a user by email",
		ArgsUsage: "EMAIL",
		Action: func(ctx context.Context, c *cli.Command) error {
			email, err := argString(c, 0, "email")
			if err != nil {
				return err
			}
			return withService(func(s *application.SocialService) error {
				u, err := s.RegisterUser(ctx, email)
				if err != nil {
					return err
				}
				fmt.Printf("created user %d with email %s\n", u.ID, u.Email)
				return nil
			})
		},
	}
}

func addAccountCommand() *cli.Command {
	return &cli.Command{
		Name:      "addaccount",
		Usage:     "Register an account with a username and email",
		ArgsUsage: "USERNAME EMAIL",
		Action: func(ctx context.Context, c *cli.Command) error {
			username, err := argString(c, 0, "username")
			if err != nil {
				return err
			}
			email, err := argString(c, 1, "email")
			if err != nil {
				return err
			}
			return withService(func(s *application.SocialService) error {
				a, err := s.RegisterAccount(ctx, username, email)
				if err != nil {
					return err
				}
				fmt.Printf("created account %d with username %s for email %s\n", a.ID, a.Username, a.Email)
				return nil
			})
		},
	}
}

func followCommand() *cli.Command {
	return &cli.Command{
		Name:      "follow",
		Usage:     "Make one account follow another",
		ArgsUsage: "FOLLOWER_ID FOLLOWED_ID",
		Action: func(ctx context.Context, c *cli.Command) error {
			followerID, err := argID(c, 0, "follower id")
			if err != nil {
				return err
			}
			followedID, err := argID(c, 1, "followed id")
			if err != nil {
				return err
			}
			return withService(func(s *application.SocialService) error {
				outcome, err := s.Follow(ctx, followerID, followedID)
				if err != nil {
					return err
				}
				if outcome == application.AlreadyFollowing {
					fmt.Printf("account %d already follows account %d\n", followerID, followedID)
					return nil
				}
				fmt.Printf("account %d is now following account %d\n", followerID, followedID)
				return nil
			})
		},
	}
}

func unfollowCommand() *cli.Command {
	return &cli.Command{
		Name:      "unfollow",
		Usage:     "Remove a follow link",
		ArgsUsage: "FOLLOWER_ID FOLLOWED_ID",
		Action: func(ctx context.Context, c *cli.Command) error {
			followerID, err := argID(c, 0, "follower id")
			if err != nil {
				return err
			}
			followedID, err := argID(c, 1, "followed id")
			if err != nil {
				return err
			}
			return withService(func(s *application.SocialService) error {
				outcome, err := s.Unfollow(ctx, followerID, followedID)
				if err != nil {
					return err
				}
				if outcome == application.NotFollowing {
					fmt.Printf("account %d does not follow account %d\n", followerID, followedID)
					return nil
				}
				fmt.Printf("account %d unfollowed account %d\n", followerID, followedID)
				return nil
			})
		},
	}
}

func postCommand() *cli.Command {
	return &cli.Command{
		Name:      "post",
		Usage:     "Create a post owned by an account",
		ArgsUsage: "ACCOUNT_ID CONTENT",
		Action: func(ctx context.Context, c *cli.Command) error {
			accountID, err := argID(c, 0, "account id")
			if err != nil {
				return err
			}
			content, err := argString(c, 1, "content")
			if err != nil {
				return err
			}
			return withService(func(s *application.SocialService) error {
				p, err := s.CreatePost(ctx, accountID, content)
				if err != nil {
					return err
				}
				fmt.Printf("account %d posted %q (post %d)\n", accountID, p.Content, p.ID)
				return nil
			})
		},
	}
}

func commentCommand() *cli.Command {
	return &cli.Command{
		Name:      "comment",
		Usage:     "Comment on a post",
		ArgsUsage: "POST_ID ACCOUNT_ID CONTENT",
		Action: func(ctx context.Context, c *cli.Command) error {
			postID, err := argID(c, 0, "post id")
			if err != nil {
				return err
			}
			accountID, err := argID(c, 1, "account id")
			if err != nil {
				return err
			}
			content, err := argString(c, 2, "content")
			if err != nil {
				return err
			}
			return withService(func(s *application.SocialService) error {
				cm, err := s.CreateComment(ctx, postID, accountID, content)
				if err != nil {
					return err
				}
				fmt.Printf("account %d commented %q on post %d (comment %d)\n", accountID, cm.Content, postID, cm.ID)
				return nil
			})
		},
	}
}

func likeCommand() *cli.Command {
	return &cli.Command{
		Name:      "like",
		Usage:     "Like a post",
		ArgsUsage: "POST_ID LIKER_ID",
		Action: func(ctx context.Context, c *cli.Command) error {
			postID, err := argID(c, 0, "post id")
			if err != nil {
				return err
			}
			likerID, err := argID(c, 1, "liker id")
			if err != nil {
				return err
			}
			return withService(func(s *application.SocialService) error {
				outcome, err := s.Like(ctx, postID, likerID)
				if err != nil {
					return err
				}
				if outcome == application.AlreadyLiked {
					fmt.Printf("account %d already liked post %d\n", likerID, postID)
					return nil
				}
				p, err := s.GetPost(ctx, postID)
				if err != nil {
					return err
				}
				fmt.Printf("account %d liked post %d (likes: %d)\n", likerID, postID, p.Likes)
				return nil
			})
		},
	}
}

func unlikeCommand() *cli.Command {
	return &cli.Command{
		Name:      "unlike",
		Usage:     "Remove a like from a post",
		ArgsUsage: "POST_ID LIKER_ID",
		Action: func(ctx context.Context, c *cli.Command) error {
			postID, err := argID(c, 0, "post id")
			if err != nil {
				return err
			}
			likerID, err := argID(c, 1, "liker id")
			if err != nil {
				return err
			}
			return withService(func(s *application.SocialService) error {
				outcome, err := s.Unlike(ctx, postID, likerID)
				if err != nil {
					return err
				}
				if outcome == application.NotLiked {
					fmt.Printf("no like record found for account %d on post %d\n", likerID, postID)
					return nil
				}
				p, err := s.GetPost(ctx, postID)
				if err != nil {
					return err
				}
				fmt.Printf("account %d unliked post %d (likes: %d)\n", likerID, postID, p.Likes)
				return nil
			})
		},
	}
}

func usersCommand() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "List registered users",
		Action: func(ctx context.Context, c *cli.Command) error {
			return withService(func(s *application.SocialService) error {
				items, err := s.ListUsers(ctx)
				if err != nil {
					return err
				}
				printUsers(items)
				return nil
			})
		},
	}
}

func accountsCommand() *cli.Command {
	return &cli.Command{
		Name:  "accounts",
		Usage: "List accounts",
		Action: func(ctx context.Context, c *cli.Command) error {
			return withService(func(s *application.SocialService) error {
				items, err := s.ListAccounts(ctx)
				if err != nil {
					return err
				}
				printAccounts(items)
				return nil
			})
		},
	}
}

func multiCommand() *cli.Command {
	return &cli.Command{
		Name:      "multi",
		Usage:     "List all accounts associated with an email",
		ArgsUsage: "EMAIL",
		Action: func(ctx context.Context, c *cli.Command) error {
			email, err := argString(c, 0, "email")
			if err != nil {
				return err
			}
			return withService(func(s *application.SocialService) error {
				items, err := s.AccountsForEmail(ctx, email)
				if err != nil {
					return err
				}
				printAccounts(items)
				return nil
			})
		},
	}
}

func followsCommand() *cli.Command {
	return &cli.Command{
		Name:  "follows",
		Usage: "List all follow links",
		Action: func(ctx context.Context, c *cli.Command) error {
			return withService(func(s *application.SocialService) error {
				items, err := s.ListFollowEdges(ctx)
				if err != nil {
					return err
				}
				printFollowEdges(items)
				return nil
			})
		},
	}
}

func postsCommand() *cli.Command {
	return &cli.Command{
		Name:  "posts",
		Usage: "List all posts",
		Action: func(ctx context.Context, c *cli.Command) error {
			return withService(func(s *application.SocialService) error {
				items, err := s.ListPosts(ctx)
				if err != nil {
					return err
				}
				printPosts(items)
				return nil
			})
		},
	}
}

func commentsCommand() *cli.Command {
	return &cli.Command{
		Name:  "comments",
		Usage: "List all comments",
		Action: func(ctx context.Context, c *cli.Command) error {
			return withService(func(s *application.SocialService) error {
				items, err := s.ListComments(ctx)
				if err != nil {
					return err
				}
				printComments(items)
				return nil
			})
		},
	}
}

func gossipCommand() *cli.Command {
	return &cli.Command{
		Name:  "gossip",
		Usage: "Rank posts by likes",
		Action: func(ctx context.Context, c *cli.Command) error {
			return withService(func(s *application.SocialService) error {
				items, err := s.PopularityRanking(ctx)
				if err != nil {
					return err
				}
				printPosts(items)
				return nil
			})
		},
	}
}

func stalkerCommand() *cli.Command {
	return &cli.Command{
		Name:      "stalker",
		Usage:     "Rank who engages most with an account's posts",
		ArgsUsage: "ACCOUNT_ID",
		Action: func(ctx context.Context, c *cli.Command) error {
			accountID, err := argID(c, 0, "account id")
			if err != nil {
				return err
			}
			return withService(func(s *application.SocialService) error {
				items, err := s.MutualInterest(ctx, accountID)
				if err != nil {
					return err
				}
				printInterest(items)
				return nil
			})
		},
	}
}
