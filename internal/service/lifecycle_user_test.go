package service

import (
	"errors"
	"testing"

	"galerie-server/internal/consts"
	"galerie-server/internal/model"

	"gorm.io/gorm"
)

func TestDeleteUser_FullCascade(t *testing.T) {
	env := newTestEnv(t)
	actor := env.createUser(t, "actor")
	other := env.createUser(t, "other")
	galerie := env.createGalerie(t, other, "g")
	env.addMember(t, galerie, actor, consts.GalerieRoleUser)

	ownFrame := env.postFrame(t, actor, galerie)
	otherFrame := env.postFrame(t, other, galerie)
	if _, err := env.lifecycle.ToggleLike(env.ctx(), actor.ID, otherFrame.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	userID := actor.ID
	if err := env.stores.Ticket.Create(&model.Ticket{UserID: &userID, Header: "help", Body: "pls"}); err != nil {
		t.Fatalf("ticket: %v", err)
	}
	if err := env.stores.Invitation.Create(&model.Invitation{
		GalerieID: galerie.ID, UserID: actor.ID, Code: "by-actor",
	}); err != nil {
		t.Fatalf("invitation: %v", err)
	}

	if err := env.lifecycle.DeleteUser(env.ctx(), actor.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if _, err := env.stores.User.FindByID(actor.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected user soft-deleted: %v", err)
	}
	if _, err := env.stores.Frame.FindByID(ownFrame.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected actor's frame destroyed: %v", err)
	}

	// The like was withdrawn and the counter decremented.
	reloaded, err := env.stores.Frame.FindByID(otherFrame.ID)
	if err != nil {
		t.Fatalf("other frame must survive: %v", err)
	}
	if reloaded.NumOfLikes != 0 {
		t.Fatalf("expected counter back to 0, got %d", reloaded.NumOfLikes)
	}
	if n := count[model.Notification](t, env.db, "user_id = ? AND type = ?", other.ID, consts.NotificationFrameLiked); n != 0 {
		t.Fatalf("expected FRAME_LIKED withdrawn, %d remain", n)
	}

	// Tickets outlive the author with the reference cleared.
	var ticket model.Ticket
	if err := env.db.First(&ticket).Error; err != nil {
		t.Fatalf("ticket must survive: %v", err)
	}
	if ticket.UserID != nil {
		t.Fatalf("ticket author must be cleared, got %v", *ticket.UserID)
	}

	if n := count[model.Invitation](t, env.db, "user_id = ?", actor.ID); n != 0 {
		t.Fatalf("actor's invitations must be destroyed, %d remain", n)
	}
	if n := count[model.Notification](t, env.db, "user_id = ?", actor.ID); n != 0 {
		t.Fatalf("actor's notifications must be destroyed, %d remain", n)
	}
	if _, err := env.stores.Galerie.FindMembership(galerie.ID, actor.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("membership must be destroyed: %v", err)
	}
}

func TestDeleteUser_CreatorArchivesOrDestroys(t *testing.T) {
	env := newTestEnv(t)
	soleCreator := env.createUser(t, "sole")
	sharedCreator := env.createUser(t, "shared")
	member := env.createUser(t, "member")

	emptyGalerie := env.createGalerie(t, soleCreator, "empty")
	sharedGalerie := env.createGalerie(t, sharedCreator, "shared")
	env.addMember(t, sharedGalerie, member, consts.GalerieRoleUser)
	if err := env.stores.Invitation.Create(&model.Invitation{
		GalerieID: sharedGalerie.ID, UserID: sharedCreator.ID, Code: "shared-inv",
	}); err != nil {
		t.Fatalf("invitation: %v", err)
	}

	// No members remain: the galerie is destroyed outright.
	if err := env.lifecycle.DeleteUser(env.ctx(), soleCreator.ID); err != nil {
		t.Fatalf("delete sole creator: %v", err)
	}
	if _, err := env.stores.Galerie.FindByID(emptyGalerie.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected empty galerie destroyed: %v", err)
	}

	// Members remain: the galerie is archived and its invitations die.
	if err := env.lifecycle.DeleteUser(env.ctx(), sharedCreator.ID); err != nil {
		t.Fatalf("delete shared creator: %v", err)
	}
	archived, err := env.stores.Galerie.FindByID(sharedGalerie.ID)
	if err != nil {
		t.Fatalf("shared galerie must survive: %v", err)
	}
	if !archived.Archived {
		t.Fatalf("expected shared galerie archived")
	}
	if n := count[model.Invitation](t, env.db, "galerie_id = ?", sharedGalerie.ID); n != 0 {
		t.Fatalf("creator's galerie invitations must be destroyed, %d remain", n)
	}
}

func TestDeleteUser_BanRecordsOutliveAdmin(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin")
	banned := env.createUser(t, "banned")

	adminID := admin.ID
	if err := env.stores.BlackList.CreateGlobalBan(&model.BlackList{
		UserID:      banned.ID,
		Reason:      "spam",
		CreatedByID: &adminID,
	}); err != nil {
		t.Fatalf("seed ban: %v", err)
	}
	// The galerie belongs to someone else; only the admin's authorship of
	// the ban goes away with their account.
	owner := env.createUser(t, "owner")
	galerie := env.createGalerie(t, owner, "g")
	if err := env.stores.BlackList.CreateGalerieBan(&model.GalerieBlackList{
		GalerieID:   galerie.ID,
		UserID:      banned.ID,
		CreatedByID: &adminID,
	}); err != nil {
		t.Fatalf("seed galerie ban: %v", err)
	}

	if err := env.lifecycle.DeleteUser(env.ctx(), admin.ID); err != nil {
		t.Fatalf("delete admin: %v", err)
	}

	var ban model.BlackList
	if err := env.db.Where("user_id = ?", banned.ID).First(&ban).Error; err != nil {
		t.Fatalf("ban must survive the admin: %v", err)
	}
	if ban.CreatedByID != nil {
		t.Fatalf("ban creator must be cleared, got %v", *ban.CreatedByID)
	}
	var galerieBan model.GalerieBlackList
	if err := env.db.Where("user_id = ?", banned.ID).First(&galerieBan).Error; err != nil {
		t.Fatalf("galerie ban must survive the admin: %v", err)
	}
	if galerieBan.CreatedByID != nil {
		t.Fatalf("galerie ban creator must be cleared, got %v", *galerieBan.CreatedByID)
	}
}

func TestDeleteUser_ReclaimsProfilePictureBlobs(t *testing.T) {
	env := newTestEnv(t)
	actor := env.createUser(t, "actor")
	profile := NewProfileService(env.stores, env.objects, testBuckets)
	picture, err := profile.SetProfilePicture(env.ctx(), actor.ID, PictureUpload{
		Original: []byte("o"), Cropped: []byte("c"), Pending: []byte("p"), Format: "png",
	})
	if err != nil {
		t.Fatalf("set profile picture: %v", err)
	}
	key := picture.OriginalImage.FileName

	if err := env.lifecycle.DeleteUser(env.ctx(), actor.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if n := count[model.ProfilePicture](t, env.db, "user_id = ?", actor.ID); n != 0 {
		t.Fatalf("profile pictures must be destroyed, %d remain", n)
	}
	for _, bucket := range []string{testBuckets.OriginalBucket, testBuckets.CroppedBucket, testBuckets.PendingBucket} {
		if !env.objects.Deleted(bucket, key) {
			t.Fatalf("expected blob %s/%s reclaimed", bucket, key)
		}
	}
}
