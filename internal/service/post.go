package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Murilo211205/rede-social/internal/apperror"
	"github.com/Murilo211205/rede-social/internal/model"
	"github.com/Murilo211205/rede-social/internal/repository"
	"github.com/Murilo211205/rede-social/internal/slug"
)

// Validation limits for posts and searches.
const (
	MaxTitleLength  = 200
	MinSearchLength = 2
	PostPageSize    = 10
	PostSearchLimit = 20
	UserSearchLimit = 10
)

// PostService handles post CRUD, listing, and search.
type PostService struct {
	posts  repository.PostRepository
	logger *slog.Logger
}

func NewPostService(posts repository.PostRepository, logger *slog.Logger) *PostService {
	return &PostService{posts: posts, logger: logger}
}

// PostPage is one page of posts plus its pagination envelope.
type PostPage struct {
	Posts      []model.Post     `json:"posts"`
	Pagination model.Pagination `json:"pagination"`
}

// List returns one page of posts, newest first unless sort says otherwise.
func (s *PostService) List(ctx context.Context, page int, sort string) (*PostPage, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.posts.Count(ctx)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.List(ctx, repository.ListOptions{
		Limit:  PostPageSize,
		Offset: (page - 1) * PostPageSize,
		Sort:   sort,
	})
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:      posts,
		Pagination: paginate(page, PostPageSize, total),
	}, nil
}

// ListByUser returns one page of a single user's posts.
func (s *PostService) ListByUser(ctx context.Context, userID string, page int) (*PostPage, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.posts.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.ListByUser(ctx, userID, repository.ListOptions{
		Limit:  PostPageSize,
		Offset: (page - 1) * PostPageSize,
	})
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:      posts,
		Pagination: paginate(page, PostPageSize, total),
	}, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*model.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// Create validates and stores a new post. The slug derives from the
// title; colliding slugs are retried with numbered suffixes.
func (s *PostService) Create(ctx context.Context, userID, title, content string) (*model.Post, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title", fmt.Sprintf("title must be at most %d characters", MaxTitleLength))
	}
	if content == "" {
		return nil, apperror.ValidationFailed("content", "content is required")
	}

	base := slug.Make(title)
	if base == "" {
		base = "post"
	}

	post := &model.Post{UserID: userID, Title: title, Content: content}
	_, err := createWithUniqueValue(ctx, base, repository.ConstraintPostSlug,
		func(ctx context.Context, candidate string) error {
			post.Slug = candidate
			return s.posts.Create(ctx, post)
		})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		s.logger.Error("storing post", "error", err)
		return nil, apperror.Internal("DATABASE_ERROR", "could not save the post")
	}

	s.logger.Info("post created", "post_id", post.ID, "slug", post.Slug, "user_id", userID)
	return post, nil
}

// Update rewrites a post's title and content. Only the owner may edit;
// the slug stays stable so existing links keep working.
func (s *PostService) Update(ctx context.Context, actorID, postID, title, content string) (*model.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != actorID {
		return nil, apperror.Forbidden()
	}

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title != "" {
		if len(title) > MaxTitleLength {
			return nil, apperror.ValidationFailed("title", fmt.Sprintf("title must be at most %d characters", MaxTitleLength))
		}
		post.Title = title
	}
	if content != "" {
		post.Content = content
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post. The owner or an admin may delete.
func (s *PostService) Delete(ctx context.Context, actor *model.User, postID string) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != actor.ID && !actor.IsAdmin {
		return apperror.Forbidden()
	}
	return s.posts.Delete(ctx, postID)
}

// Search finds posts matching q in title or content.
func (s *PostService) Search(ctx context.Context, q string) ([]model.Post, error) {
	q = strings.TrimSpace(q)
	if len(q) < MinSearchLength {
		return nil, apperror.ValidationFailed("q", fmt.Sprintf("search query must be at least %d characters", MinSearchLength))
	}
	return s.posts.Search(ctx, q, PostSearchLimit)
}

func paginate(page, limit, total int) model.Pagination {
	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	return model.Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
