// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danielhkuo/socialnet/apperr"
	"github.com/danielhkuo/socialnet/guards"
	"github.com/danielhkuo/socialnet/models"
	"github.com/danielhkuo/socialnet/store"
)

const errAdminRequired = "Administrator privileges required"

// Groups manages groups and their memberships.
type Groups struct {
	st *store.Store
}

func NewGroups(st *store.Store) *Groups {
	return &Groups{st: st}
}

// CreateGroup inserts the group and the creator's admin membership in one
// transaction. A group never exists without its creator as admin.
func (g *Groups) CreateGroup(ctx context.Context, actorID int64, req models.CreateGroupRequest) (*models.Group, error) {
	group := &models.Group{
		Name:              req.Name,
		Description:       req.Description,
		Icon:              req.Icon,
		CoverPhoto:        req.CoverPhoto,
		Type:              req.Type,
		AllowMemberPosts:  boolOr(req.AllowMemberPosts, true),
		AllowMemberEvents: boolOr(req.AllowMemberEvents, true),
		CreatedByID:       actorID,
	}

	err := g.st.InTx(ctx, func(tx *store.Tx) error {
		if err := tx.InsertGroup(ctx, group); err != nil {
			return err
		}
		return tx.InsertMembership(ctx, &models.GroupMembership{
			GroupID:         group.ID,
			UserID:          actorID,
			IsAdmin:         true,
			CanCreateEvents: true,
		})
	})
	if err != nil {
		return nil, err
	}

	slog.Info("group created", "group_id", group.ID, "created_by", actorID)
	return group, nil
}

func (g *Groups) ListGroups(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	err := g.st.InTx(ctx, func(tx *store.Tx) error {
		var err error
		groups, err = tx.ListGroups(ctx)
		return err
	})
	return groups, err
}

func (g *Groups) GetGroup(ctx context.Context, groupID int64) (*models.GroupDetail, error) {
	var detail models.GroupDetail
	err := g.st.InTx(ctx, func(tx *store.Tx) error {
		group, err := tx.GetGroup(ctx, groupID)
		if err != nil {
			return notFound(err, "Group not found")
		}
		members, err := tx.ListMemberships(ctx, groupID)
		if err != nil {
			return err
		}
		detail = models.GroupDetail{Group: *group, Members: members}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// AddMember checks in order: actor is admin, target not yet a member,
// target user exists.
func (g *Groups) AddMember(ctx context.Context, actorID, groupID int64, req models.AddMemberRequest) (*models.GroupMembership, error) {
	m := &models.GroupMembership{
		GroupID:         groupID,
		UserID:          req.UserID,
		IsAdmin:         req.IsAdmin,
		CanCreateEvents: req.CanCreateEvents,
	}

	err := g.st.InTx(ctx, func(tx *store.Tx) error {
		if err := check(ctx, tx, guards.IsGroupAdmin, actorID, groupID, errAdminRequired); err != nil {
			return err
		}

		_, err := tx.GetMembership(ctx, groupID, req.UserID)
		if err == nil {
			return apperr.Conflict("User already member")
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err := userMustExist(ctx, tx, req.UserID); err != nil {
			return err
		}

		return conflict(tx.InsertMembership(ctx, m), "User already member")
	})
	if err != nil {
		return nil, err
	}

	slog.Info("group member added", "group_id", groupID, "user_id", req.UserID, "by", actorID)
	return m, nil
}

// UpdateMember applies the non-nil flags of req
func (g *Groups) UpdateMember(ctx context.Context, actorID, groupID, userID int64, req models.UpdateMemberRequest) (*models.GroupMembership, error) {
	var m *models.GroupMembership
	err := g.st.InTx(ctx, func(tx *store.Tx) error {
		if err := check(ctx, tx, guards.IsGroupAdmin, actorID, groupID, errAdminRequired); err != nil {
			return err
		}

		var err error
		m, err = tx.GetMembership(ctx, groupID, userID)
		if err != nil {
			return notFound(err, "Membership not found")
		}

		m.IsAdmin = boolOr(req.IsAdmin, m.IsAdmin)
		m.CanCreateEvents = boolOr(req.CanCreateEvents, m.CanCreateEvents)
		return notFound(tx.UpdateMembership(ctx, m), "Membership not found")
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (g *Groups) RemoveMember(ctx context.Context, actorID, groupID, userID int64) error {
	err := g.st.InTx(ctx, func(tx *store.Tx) error {
		if err := check(ctx, tx, guards.IsGroupAdmin, actorID, groupID, errAdminRequired); err != nil {
			return err
		}
		return notFound(tx.DeleteMembership(ctx, groupID, userID), "Membership not found")
	})
	if err != nil {
		return err
	}

	slog.Info("group member removed", "group_id", groupID, "user_id", userID, "by", actorID)
	return nil
}
