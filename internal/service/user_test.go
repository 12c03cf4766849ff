package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Murilo211205/rede-social/internal/apperror"
	"github.com/Murilo211205/rede-social/internal/model"
)

type userFixture struct {
	svc   *UserService
	users *mockUserRepo
	posts *mockPostRepo
}

func newUserFixture(t *testing.T) (*userFixture, *model.User) {
	t.Helper()
	users := newMockUserRepo()
	posts := newMockPostRepo()
	f := &userFixture{
		svc:   NewUserService(users, posts, newMockFollowRepo(), testLogger()),
		users: users,
		posts: posts,
	}
	alice := &model.User{Username: "alice", Email: "alice@example.com"}
	if err := users.Create(context.Background(), alice); err != nil {
		t.Fatalf("failed to create mock user: %v", err)
	}
	return f, alice
}

func TestProfile_WithCounts(t *testing.T) {
	f, alice := newUserFixture(t)
	createMockPost(t, f.posts, alice.ID, "One")
	createMockPost(t, f.posts, alice.ID, "Two")

	view, err := f.svc.Profile(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if view.Username != "alice" {
		t.Errorf("Username = %q, want %q", view.Username, "alice")
	}
	if view.PostsCount != 2 {
		t.Errorf("PostsCount = %d, want 2", view.PostsCount)
	}
}

func TestProfile_BannedIsInvisible(t *testing.T) {
	f, alice := newUserFixture(t)
	if err := f.users.SetBanned(context.Background(), alice.ID, true); err != nil {
		t.Fatalf("SetBanned() error = %v", err)
	}

	if _, err := f.svc.Profile(context.Background(), "alice"); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Profile() for banned user error = %v, want ErrNotFound", err)
	}
}

func TestUpdateProfile_MergesFields(t *testing.T) {
	f, alice := newUserFixture(t)

	bio := "gopher"
	updated, err := f.svc.UpdateProfile(context.Background(), alice.ID, ProfileUpdate{Bio: &bio})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.Bio != "gopher" {
		t.Errorf("Bio = %q, want %q", updated.Bio, "gopher")
	}
	// untouched fields survive
	if updated.Username != "alice" || updated.Email != "alice@example.com" {
		t.Errorf("unchanged fields were modified: %+v", updated)
	}
}

func TestUpdateProfile_DuplicateUsername(t *testing.T) {
	f, alice := newUserFixture(t)
	bob := &model.User{Username: "bob", Email: "bob@example.com"}
	if err := f.users.Create(context.Background(), bob); err != nil {
		t.Fatalf("failed to create mock user: %v", err)
	}

	taken := "bob"
	_, err := f.svc.UpdateProfile(context.Background(), alice.ID, ProfileUpdate{Username: &taken})
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != "USERNAME_EXISTS" {
		t.Fatalf("UpdateProfile() error = %v, want USERNAME_EXISTS", err)
	}
}

func TestUserSearch_ExcludesBanned(t *testing.T) {
	f, alice := newUserFixture(t)
	banned := &model.User{Username: "alina", Email: "alina@example.com", IsBanned: true}
	if err := f.users.Create(context.Background(), banned); err != nil {
		t.Fatalf("failed to create mock user: %v", err)
	}

	profiles, err := f.svc.Search(context.Background(), "b")
	if err == nil {
		t.Fatal("Search() with a one-character query should fail")
	}

	profiles, err = f.svc.Search(context.Background(), "li")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(profiles) != 1 || profiles[0].Username != alice.Username {
		t.Errorf("Search() = %v, want only %q", profiles, alice.Username)
	}
}

func TestUserDelete_RequiresAdmin(t *testing.T) {
	f, alice := newUserFixture(t)
	bob := &model.User{Username: "bob", Email: "bob@example.com"}
	if err := f.users.Create(context.Background(), bob); err != nil {
		t.Fatalf("failed to create mock user: %v", err)
	}

	if err := f.svc.Delete(context.Background(), alice, bob.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("Delete() by non-admin error = %v, want ErrForbidden", err)
	}

	admin := &model.User{ID: alice.ID, IsAdmin: true}
	if err := f.svc.Delete(context.Background(), admin, bob.ID); err != nil {
		t.Fatalf("Delete() by admin error = %v", err)
	}
}

func TestUserSetBanned_SelfGuard(t *testing.T) {
	f, alice := newUserFixture(t)
	admin := &model.User{ID: alice.ID, IsAdmin: true}

	if err := f.svc.SetBanned(context.Background(), admin, alice.ID, true); !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("SetBanned() on self error = %v, want ErrValidation", err)
	}
}
