package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"

	"github.com/Murilo211205/rede-social/internal/apperror"
	"github.com/Murilo211205/rede-social/internal/model"
	"github.com/Murilo211205/rede-social/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockUserRepo is an in-memory repository.UserRepository.
type mockUserRepo struct {
	users  map[string]*model.User
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return &repository.ConflictError{Constraint: repository.ConstraintUserUsername}
		}
		if u.Email == user.Email {
			return &repository.ConflictError{Constraint: repository.ConstraintUserEmail}
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user")
	}
	result := *u
	return &result, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user")
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user")
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return apperror.NotFound("user")
	}
	for id, u := range m.users {
		if id == user.ID {
			continue
		}
		if u.Username == user.Username {
			return &repository.ConflictError{Constraint: repository.ConstraintUserUsername}
		}
		if u.Email == user.Email {
			return &repository.ConflictError{Constraint: repository.ConstraintUserEmail}
		}
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return apperror.NotFound("user")
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) SetBanned(_ context.Context, id string, banned bool) error {
	u, ok := m.users[id]
	if !ok {
		return apperror.NotFound("user")
	}
	u.IsBanned = banned
	return nil
}

func (m *mockUserRepo) Search(_ context.Context, query string, limit int) ([]model.Profile, error) {
	result := make([]model.Profile, 0)
	for _, u := range m.users {
		if u.IsBanned {
			continue
		}
		if strings.Contains(u.Username, query) || strings.Contains(u.Email, query) {
			result = append(result, u.Profile())
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// mockPostRepo is an in-memory repository.PostRepository. createErr, when
// set, makes every Create fail with it.
type mockPostRepo struct {
	posts     map[string]*model.Post
	nextID    int
	createErr error
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{posts: make(map[string]*model.Post)}
}

func (m *mockPostRepo) Create(_ context.Context, post *model.Post) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, p := range m.posts {
		if p.Slug == post.Slug {
			return &repository.ConflictError{Constraint: repository.ConstraintPostSlug}
		}
	}
	m.nextID++
	post.ID = fmt.Sprintf("post-%d", m.nextID)
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *mockPostRepo) GetByID(_ context.Context, id string) (*model.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, apperror.NotFound("post")
	}
	result := *p
	return &result, nil
}

func (m *mockPostRepo) sorted() []model.Post {
	result := make([]model.Post, 0, len(m.posts))
	for _, p := range m.posts {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (m *mockPostRepo) List(_ context.Context, opts repository.ListOptions) ([]model.Post, error) {
	result := m.sorted()
	if opts.Offset >= len(result) {
		return []model.Post{}, nil
	}
	result = result[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(result) {
		result = result[:opts.Limit]
	}
	return result, nil
}

func (m *mockPostRepo) ListByUser(_ context.Context, userID string, opts repository.ListOptions) ([]model.Post, error) {
	result := make([]model.Post, 0)
	for _, p := range m.sorted() {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	if opts.Limit > 0 && opts.Limit < len(result) {
		result = result[:opts.Limit]
	}
	return result, nil
}

func (m *mockPostRepo) Search(_ context.Context, query string, limit int) ([]model.Post, error) {
	result := make([]model.Post, 0)
	for _, p := range m.sorted() {
		if strings.Contains(strings.ToLower(p.Title), strings.ToLower(query)) {
			result = append(result, p)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockPostRepo) Update(_ context.Context, post *model.Post) error {
	if _, ok := m.posts[post.ID]; !ok {
		return apperror.NotFound("post")
	}
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *mockPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.posts[id]; !ok {
		return apperror.NotFound("post")
	}
	delete(m.posts, id)
	return nil
}

func (m *mockPostRepo) Count(_ context.Context) (int, error) {
	return len(m.posts), nil
}

func (m *mockPostRepo) CountByUser(_ context.Context, userID string) (int, error) {
	n := 0
	for _, p := range m.posts {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *mockPostRepo) AdjustLikes(_ context.Context, id string, delta int) error {
	p, ok := m.posts[id]
	if !ok {
		return apperror.NotFound("post")
	}
	p.LikesCount += delta
	if p.LikesCount < 0 {
		p.LikesCount = 0
	}
	return nil
}

// mockCommentRepo is an in-memory repository.CommentRepository.
type mockCommentRepo struct {
	comments map[string]*model.Comment
	nextID   int
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: make(map[string]*model.Comment)}
}

func (m *mockCommentRepo) Create(_ context.Context, comment *model.Comment) error {
	m.nextID++
	comment.ID = fmt.Sprintf("comment-%d", m.nextID)
	stored := *comment
	m.comments[comment.ID] = &stored
	return nil
}

func (m *mockCommentRepo) GetByID(_ context.Context, id string) (*model.Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, apperror.NotFound("comment")
	}
	result := *c
	return &result, nil
}

func (m *mockCommentRepo) ListByPost(_ context.Context, postID string, _ string) ([]model.Comment, error) {
	result := make([]model.Comment, 0)
	for _, c := range m.comments {
		if c.PostID == postID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.comments[id]; !ok {
		return apperror.NotFound("comment")
	}
	delete(m.comments, id)
	return nil
}

func (m *mockCommentRepo) AdjustLikes(_ context.Context, id string, delta int) error {
	c, ok := m.comments[id]
	if !ok {
		return apperror.NotFound("comment")
	}
	c.LikesCount += delta
	if c.LikesCount < 0 {
		c.LikesCount = 0
	}
	return nil
}

// mockLikeRepo is an in-memory repository.LikeRepository keyed by
// user+target.
type mockLikeRepo struct {
	likes map[string]bool
}

func newMockLikeRepo() *mockLikeRepo {
	return &mockLikeRepo{likes: make(map[string]bool)}
}

func likeKey(userID string, postID, commentID *string) string {
	if postID != nil {
		return "post:" + userID + ":" + *postID
	}
	return "comment:" + userID + ":" + *commentID
}

func (m *mockLikeRepo) Create(_ context.Context, like *model.Like) error {
	key := likeKey(like.UserID, like.PostID, like.CommentID)
	if m.likes[key] {
		constraint := repository.ConstraintPostLike
		if like.CommentID != nil {
			constraint = repository.ConstraintCommentLike
		}
		return &repository.ConflictError{Constraint: constraint}
	}
	m.likes[key] = true
	return nil
}

func (m *mockLikeRepo) DeleteForPost(_ context.Context, userID, postID string) error {
	key := likeKey(userID, &postID, nil)
	if !m.likes[key] {
		return apperror.NotFound("like")
	}
	delete(m.likes, key)
	return nil
}

func (m *mockLikeRepo) DeleteForComment(_ context.Context, userID, commentID string) error {
	key := likeKey(userID, nil, &commentID)
	if !m.likes[key] {
		return apperror.NotFound("like")
	}
	delete(m.likes, key)
	return nil
}

func (m *mockLikeRepo) ExistsForPost(_ context.Context, userID, postID string) (bool, error) {
	return m.likes[likeKey(userID, &postID, nil)], nil
}

func (m *mockLikeRepo) ExistsForComment(_ context.Context, userID, commentID string) (bool, error) {
	return m.likes[likeKey(userID, nil, &commentID)], nil
}

// mockFollowRepo is an in-memory repository.FollowRepository.
type mockFollowRepo struct {
	follows map[string]bool
}

func newMockFollowRepo() *mockFollowRepo {
	return &mockFollowRepo{follows: make(map[string]bool)}
}

func followKey(followerID, followingID string) string {
	return followerID + ":" + followingID
}

func (m *mockFollowRepo) Create(_ context.Context, follow *model.Follow) error {
	key := followKey(follow.FollowerID, follow.FollowingID)
	if m.follows[key] {
		return &repository.ConflictError{Constraint: repository.ConstraintFollowPair}
	}
	m.follows[key] = true
	return nil
}

func (m *mockFollowRepo) Delete(_ context.Context, followerID, followingID string) error {
	key := followKey(followerID, followingID)
	if !m.follows[key] {
		return apperror.NotFound("follow")
	}
	delete(m.follows, key)
	return nil
}

func (m *mockFollowRepo) Exists(_ context.Context, followerID, followingID string) (bool, error) {
	return m.follows[followKey(followerID, followingID)], nil
}

func (m *mockFollowRepo) Followers(_ context.Context, userID string, _ int) ([]model.Profile, error) {
	return nil, nil
}

func (m *mockFollowRepo) Following(_ context.Context, userID string, _ int) ([]model.Profile, error) {
	return nil, nil
}

func (m *mockFollowRepo) CountFollowers(_ context.Context, userID string) (int, error) {
	n := 0
	for key := range m.follows {
		if strings.HasSuffix(key, ":"+userID) {
			n++
		}
	}
	return n, nil
}

func (m *mockFollowRepo) CountFollowing(_ context.Context, userID string) (int, error) {
	n := 0
	for key := range m.follows {
		if strings.HasPrefix(key, userID+":") {
			n++
		}
	}
	return n, nil
}

// mockNotificationRepo is an in-memory repository.NotificationRepository.
// createErr, when set, makes every Create fail with it.
type mockNotificationRepo struct {
	notifications []*model.Notification
	nextID        int
	createErr     error
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	n.ID = fmt.Sprintf("notification-%d", m.nextID)
	stored := *n
	m.notifications = append(m.notifications, &stored)
	return nil
}

func (m *mockNotificationRepo) GetByID(_ context.Context, id string) (*model.Notification, error) {
	for _, n := range m.notifications {
		if n.ID == id {
			result := *n
			return &result, nil
		}
	}
	return nil, apperror.NotFound("notification")
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, limit int) ([]model.Notification, error) {
	result := make([]model.Notification, 0)
	for _, n := range m.notifications {
		if n.UserID == userID {
			result = append(result, *n)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockNotificationRepo) CountUnread(_ context.Context, userID string) (int, error) {
	count := 0
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id string) error {
	for _, n := range m.notifications {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return apperror.NotFound("notification")
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	for _, n := range m.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) UnreadFollowExists(_ context.Context, userID, fromUserID string) (bool, error) {
	for _, n := range m.notifications {
		if n.UserID == userID && n.FromID == fromUserID && n.Type == model.NotificationFollow && !n.IsRead {
			return true, nil
		}
	}
	return false, nil
}

func createMockPost(t *testing.T, repo *mockPostRepo, userID, title string) *model.Post {
	t.Helper()
	post := &model.Post{UserID: userID, Title: title, Slug: strings.ToLower(title), Content: "content"}
	if err := repo.Create(context.Background(), post); err != nil {
		t.Fatalf("failed to create mock post: %v", err)
	}
	return post
}

func createMockComment(t *testing.T, repo *mockCommentRepo, postID, userID string) *model.Comment {
	t.Helper()
	comment := &model.Comment{PostID: postID, UserID: userID, Content: "nice"}
	if err := repo.Create(context.Background(), comment); err != nil {
		t.Fatalf("failed to create mock comment: %v", err)
	}
	return comment
}

// interface checks for the mocks
var (
	_ repository.UserRepository         = (*mockUserRepo)(nil)
	_ repository.PostRepository         = (*mockPostRepo)(nil)
	_ repository.CommentRepository      = (*mockCommentRepo)(nil)
	_ repository.LikeRepository         = (*mockLikeRepo)(nil)
	_ repository.FollowRepository       = (*mockFollowRepo)(nil)
	_ repository.NotificationRepository = (*mockNotificationRepo)(nil)
)
