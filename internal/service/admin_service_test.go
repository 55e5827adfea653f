package service

import (
	"testing"

	"galerie-server/internal/consts"
	"galerie-server/internal/model"
)

func (e *testEnv) createUserWithRole(t *testing.T, userName string, role consts.Role) *model.User {
	t.Helper()
	user := e.createUser(t, userName)
	if err := e.stores.User.UpdateRole(user.ID, role); err != nil {
		t.Fatalf("set role for %s: %v", userName, err)
	}
	user.Role = role
	return user
}

func TestBlacklistUser_RankAndRecord(t *testing.T) {
	env := newTestEnv(t)
	admin := NewAdminService(env.stores)
	superAdmin := env.createUserWithRole(t, "super", consts.RoleSuperAdmin)
	siteAdmin := env.createUserWithRole(t, "admin", consts.RoleAdmin)
	peer := env.createUserWithRole(t, "peer", consts.RoleAdmin)
	target := env.createUser(t, "target")

	assertCode(t, admin.BlacklistUser(env.ctx(), siteAdmin.ID, siteAdmin.ID, ""), ErrorCodeForbidden)
	assertCode(t, admin.BlacklistUser(env.ctx(), siteAdmin.ID, peer.ID, ""), ErrorCodeForbidden)
	assertCode(t, admin.BlacklistUser(env.ctx(), target.ID, siteAdmin.ID, ""), ErrorCodeForbidden)

	if err := admin.BlacklistUser(env.ctx(), siteAdmin.ID, target.ID, "spam"); err != nil {
		t.Fatalf("blacklist: %v", err)
	}
	banned, err := env.stores.User.FindByID(target.ID)
	if err != nil {
		t.Fatalf("reload target: %v", err)
	}
	if !banned.IsBlackListed {
		t.Fatalf("expected the user flagged")
	}
	var ban model.BlackList
	if err := env.db.Where("user_id = ?", target.ID).First(&ban).Error; err != nil {
		t.Fatalf("ban record must exist: %v", err)
	}
	if ban.CreatedByID == nil || *ban.CreatedByID != siteAdmin.ID {
		t.Fatalf("ban must record who imposed it, got %v", ban.CreatedByID)
	}

	assertCode(t, admin.BlacklistUser(env.ctx(), superAdmin.ID, target.ID, ""), ErrorCodeAlreadyInState)
}

func TestUpdateUserRole_ReplacesNotification(t *testing.T) {
	env := newTestEnv(t)
	admin := NewAdminService(env.stores)
	superAdmin := env.createUserWithRole(t, "super", consts.RoleSuperAdmin)
	target := env.createUser(t, "target")

	assertCode(t, admin.UpdateUserRole(env.ctx(), superAdmin.ID, target.ID, consts.RoleSuperAdmin), ErrorCodeValidation)
	assertCode(t, admin.UpdateUserRole(env.ctx(), superAdmin.ID, superAdmin.ID, consts.RoleAdmin), ErrorCodeForbidden)

	if err := admin.UpdateUserRole(env.ctx(), superAdmin.ID, target.ID, consts.RoleAdmin); err != nil {
		t.Fatalf("promote: %v", err)
	}
	promoted, _ := env.stores.User.FindByID(target.ID)
	if promoted.Role != consts.RoleAdmin {
		t.Fatalf("expected admin, got %s", promoted.Role)
	}
	// An admin cannot touch a peer admin; the superAdmin demotes them.
	peer := env.createUserWithRole(t, "peer", consts.RoleAdmin)
	assertCode(t, admin.UpdateUserRole(env.ctx(), promoted.ID, peer.ID, consts.RoleUser), ErrorCodeForbidden)

	if err := admin.UpdateUserRole(env.ctx(), superAdmin.ID, target.ID, consts.RoleUser); err != nil {
		t.Fatalf("demote: %v", err)
	}
	// Only the latest change is kept.
	if n := count[model.Notification](t, env.db, "user_id = ? AND type = ?", target.ID, consts.NotificationRoleChange); n != 1 {
		t.Fatalf("expected a single role-change notification, got %d", n)
	}
	notification, err := env.stores.Notification.FindGrouped(target.ID, consts.NotificationRoleChange, nil, nil)
	if err != nil {
		t.Fatalf("load notification: %v", err)
	}
	if notification.Role != string(consts.RoleUser) {
		t.Fatalf("expected latest role user, got %s", notification.Role)
	}
}

func TestCreateBetaKey(t *testing.T) {
	env := newTestEnv(t)
	admin := NewAdminService(env.stores)
	actor := env.createUserWithRole(t, "admin", consts.RoleAdmin)

	key, err := admin.CreateBetaKey(env.ctx(), actor.ID, "friend@example.com")
	if err != nil {
		t.Fatalf("create key: %v", err)
	}
	if key.Code == "" {
		t.Fatalf("expected a generated code")
	}
	if key.CreatedByID == nil || *key.CreatedByID != actor.ID {
		t.Fatalf("key must record its creator, got %v", key.CreatedByID)
	}
	if _, err := env.stores.BetaKey.FindByCode(key.Code); err != nil {
		t.Fatalf("key must be persisted: %v", err)
	}
}
