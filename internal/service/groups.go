// Package service holds the business logic between the transports and
// the store: group membership and credentials, event queries, and
// display formatting.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"lunchbot/internal/models"
	"lunchbot/internal/storage"
)

// storeTimeout caps every store call. The store contract has no
// timeout of its own, so the services apply a conservative per-call
// deadline instead.
const storeTimeout = 5 * time.Second

func storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storeTimeout)
}

// Groups resolves a user's memberships and validates group credentials.
type Groups struct {
	store storage.Store
}

// NewGroups creates a Groups directory over the given storage backend.
func NewGroups(store storage.Store) *Groups {
	return &Groups{store: store}
}

// Create makes a new group with the creator as its only member.
// Returns ErrAlreadyExists if a group with that name (after
// normalization) is already present.
//
// The existence check and the write are two separate store calls, not a
// transaction: two concurrent creates for the same name can both pass
// the check and the later write wins. Known race, accepted.
func (g *Groups) Create(ctx context.Context, name, password, creatorID string) error {
	name = models.NormalizeGroupName(name)

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	_, err := g.store.GetGroup(ctx, name)
	if err == nil {
		return ErrAlreadyExists
	}
	if !errors.Is(err, storage.ErrNotFound) {
		slog.Error("Create failed to check group", "group", name, "error", err)
		return err
	}

	if err := g.store.SetGroup(ctx, &models.Group{
		Name:     name,
		Password: password,
		Members:  []string{creatorID},
	}); err != nil {
		slog.Error("Create failed", "group", name, "error", err)
		return err
	}

	slog.Info("Group created", "group", name, "creator", creatorID)
	return nil
}

// CreateOrReplace makes a new group, silently overwriting any existing
// group of the same name. This is the conversational-flow policy; the
// API uses Create and rejects duplicates. The divergence is deliberate
// (see DESIGN.md).
func (g *Groups) CreateOrReplace(ctx context.Context, name, password, creatorID string) error {
	name = models.NormalizeGroupName(name)

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	if err := g.store.SetGroup(ctx, &models.Group{
		Name:     name,
		Password: password,
		Members:  []string{creatorID},
	}); err != nil {
		slog.Error("CreateOrReplace failed", "group", name, "error", err)
		return err
	}

	slog.Info("Group created", "group", name, "creator", creatorID)
	return nil
}

// Authenticate looks up a group and checks the password.
// Returns ErrNotFound if the group is absent, ErrUnauthorized on a
// password mismatch.
func (g *Groups) Authenticate(ctx context.Context, name, password string) (*models.Group, error) {
	name = models.NormalizeGroupName(name)

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	group, err := g.store.GetGroup(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		slog.Error("Authenticate failed to get group", "group", name, "error", err)
		return nil, err
	}

	// Plain equality on the stored plaintext, kept for parity with the
	// data already in production stores.
	if group.Password != password {
		return nil, ErrUnauthorized
	}

	return group, nil
}

// Join authenticates against the group and adds the user to its member
// set. Nothing is mutated when authentication fails; joining twice has
// the effect of joining once.
func (g *Groups) Join(ctx context.Context, name, password, userID string) error {
	group, err := g.Authenticate(ctx, name, password)
	if err != nil {
		return err
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	if err := g.store.AddMember(ctx, group.Name, userID); err != nil {
		slog.Error("Join failed to add member", "group", group.Name, "user", userID, "error", err)
		return err
	}

	slog.Info("User joined group", "group", group.Name, "user", userID)
	return nil
}

// IsMember reports whether userID belongs to the named group.
// Returns ErrNotFound if the group does not exist.
func (g *Groups) IsMember(ctx context.Context, name, userID string) (bool, error) {
	name = models.NormalizeGroupName(name)

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	group, err := g.store.GetGroup(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return false, ErrNotFound
	}
	if err != nil {
		slog.Error("IsMember failed to get group", "group", name, "error", err)
		return false, err
	}

	return group.HasMember(userID), nil
}

// MembershipsOf returns the names of every group the user belongs to,
// ordered by name.
func (g *Groups) MembershipsOf(ctx context.Context, userID string) ([]string, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	groups, err := g.store.GroupsWithMember(ctx, userID)
	if err != nil {
		slog.Error("MembershipsOf failed", "user", userID, "error", err)
		return nil, err
	}

	names := make([]string, len(groups))
	for i, grp := range groups {
		names[i] = grp.Name
	}
	return names, nil
}
