package service

import (
	"errors"
	"testing"
	"time"

	"galerie-server/internal/consts"
	"galerie-server/internal/model"

	"gorm.io/gorm"
)

func TestCreateGalerie_CreatorMembership(t *testing.T) {
	env := newTestEnv(t)
	creator := env.createUser(t, "creator")

	galerie, err := env.social.CreateGalerie(env.ctx(), creator.ID, "holidays", "summer 2026")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	membership, err := env.stores.Galerie.FindMembership(galerie.ID, creator.ID)
	if err != nil {
		t.Fatalf("creator membership missing: %v", err)
	}
	if membership.Role != consts.GalerieRoleCreator {
		t.Fatalf("expected creator role, got %s", membership.Role)
	}

	_, err = env.social.CreateGalerie(env.ctx(), creator.ID, "", "")
	assertCode(t, err, ErrorCodeValidation)
}

func TestCreateInvitation_AdminOrAbove(t *testing.T) {
	env := newTestEnv(t)
	creator := env.createUser(t, "creator")
	member := env.createUser(t, "member")
	galerie := env.createGalerie(t, creator, "g")
	env.addMember(t, galerie, member, consts.GalerieRoleUser)

	if _, err := env.social.CreateInvitation(env.ctx(), creator.ID, galerie.ID, nil, nil); err != nil {
		t.Fatalf("creator invitation: %v", err)
	}
	_, err := env.social.CreateInvitation(env.ctx(), member.ID, galerie.ID, nil, nil)
	assertCode(t, err, ErrorCodeForbidden)
}

func TestSubscribe_SingleUseInvitation(t *testing.T) {
	env := newTestEnv(t)
	creator := env.createUser(t, "creator")
	first := env.createUser(t, "first")
	second := env.createUser(t, "second")
	galerie := env.createGalerie(t, creator, "g")

	uses := int64(1)
	invitation, err := env.social.CreateInvitation(env.ctx(), creator.ID, galerie.ID, &uses, nil)
	if err != nil {
		t.Fatalf("create invitation: %v", err)
	}

	joined, err := env.social.SubscribeWithInvitation(env.ctx(), first.ID, invitation.Code)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if joined.ID != galerie.ID {
		t.Fatalf("subscribed to the wrong galerie")
	}

	// The single use is burnt: the row is gone and redemption fails.
	if _, err := env.stores.Invitation.FindByCode(invitation.Code); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected invitation deleted: %v", err)
	}
	_, err = env.social.SubscribeWithInvitation(env.ctx(), second.ID, invitation.Code)
	assertCode(t, err, ErrorCodeNotFound)
}

func TestSubscribe_ExpiredInvitationEvicted(t *testing.T) {
	env := newTestEnv(t)
	creator := env.createUser(t, "creator")
	joiner := env.createUser(t, "joiner")
	galerie := env.createGalerie(t, creator, "g")

	ttl := time.Nanosecond
	invitation, err := env.social.CreateInvitation(env.ctx(), creator.ID, galerie.ID, nil, &ttl)
	if err != nil {
		t.Fatalf("create invitation: %v", err)
	}

	_, err = env.social.SubscribeWithInvitation(env.ctx(), joiner.ID, invitation.Code)
	assertCode(t, err, ErrorCodeNotFound)
	// Eagerly deleted on the failed read.
	if _, err := env.stores.Invitation.FindByCode(invitation.Code); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected expired invitation evicted: %v", err)
	}
}

func TestSubscribe_BansBlockMembership(t *testing.T) {
	env := newTestEnv(t)
	creator := env.createUser(t, "creator")
	banned := env.createUser(t, "banned")
	global := env.createUser(t, "global")
	galerie := env.createGalerie(t, creator, "g")

	invitation, err := env.social.CreateInvitation(env.ctx(), creator.ID, galerie.ID, nil, nil)
	if err != nil {
		t.Fatalf("create invitation: %v", err)
	}

	if err := env.stores.BlackList.CreateGalerieBan(&model.GalerieBlackList{
		GalerieID: galerie.ID, UserID: banned.ID,
	}); err != nil {
		t.Fatalf("seed galerie ban: %v", err)
	}
	_, err = env.social.SubscribeWithInvitation(env.ctx(), banned.ID, invitation.Code)
	assertCode(t, err, ErrorCodeForbidden)

	if err := env.stores.User.SetBlackListed(global.ID, true); err != nil {
		t.Fatalf("seed global ban: %v", err)
	}
	_, err = env.social.SubscribeWithInvitation(env.ctx(), global.ID, invitation.Code)
	assertCode(t, err, ErrorCodeForbidden)

	// The ban/membership invariant held: no membership was created.
	if n := count[model.GalerieUser](t, env.db, "galerie_id = ? AND user_id IN ?", galerie.ID, []uint{banned.ID, global.ID}); n != 0 {
		t.Fatalf("expected no membership for banned users, got %d", n)
	}
}

func TestSubscribe_NotifiesExistingMembers(t *testing.T) {
	env := newTestEnv(t)
	creator := env.createUser(t, "creator")
	member := env.createUser(t, "member")
	joiner := env.createUser(t, "joiner")
	galerie := env.createGalerie(t, creator, "g")
	env.addMember(t, galerie, member, consts.GalerieRoleUser)

	invitation, err := env.social.CreateInvitation(env.ctx(), creator.ID, galerie.ID, nil, nil)
	if err != nil {
		t.Fatalf("create invitation: %v", err)
	}
	if _, err := env.social.SubscribeWithInvitation(env.ctx(), joiner.ID, invitation.Code); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	for _, recipient := range []uint{creator.ID, member.ID} {
		notification, err := env.stores.Notification.FindGrouped(recipient,
			consts.NotificationUserSubscribe, &galerie.ID, nil)
		if err != nil {
			t.Fatalf("expected USER_SUBSCRIBE for %d: %v", recipient, err)
		}
		if notification.Num != 1 {
			t.Fatalf("expected num=1, got %d", notification.Num)
		}
	}
	// The joiner does not notify themselves.
	if n := count[model.Notification](t, env.db, "user_id = ? AND type = ?", joiner.ID, consts.NotificationUserSubscribe); n != 0 {
		t.Fatalf("joiner must not be notified, got %d", n)
	}

	// Already subscribed: a second redemption reports the state.
	invitation2, _ := env.social.CreateInvitation(env.ctx(), creator.ID, galerie.ID, nil, nil)
	_, err = env.social.SubscribeWithInvitation(env.ctx(), joiner.ID, invitation2.Code)
	assertCode(t, err, ErrorCodeAlreadyInState)
}

func TestPostFrame_UploadsAndNotifies(t *testing.T) {
	env := newTestEnv(t)
	creator := env.createUser(t, "creator")
	author := env.createUser(t, "author")
	galerie := env.createGalerie(t, creator, "g")
	env.addMember(t, galerie, author, consts.GalerieRoleUser)

	frame := env.postFrame(t, author, galerie)

	loaded, err := env.stores.Frame.FindByID(frame.ID)
	if err != nil {
		t.Fatalf("load frame: %v", err)
	}
	if len(loaded.GaleriePictures) != 1 {
		t.Fatalf("expected 1 picture, got %d", len(loaded.GaleriePictures))
	}
	triplet := loaded.GaleriePictures[0]
	if triplet.OriginalImage.ID == 0 || triplet.CroppedImage.ID == 0 || triplet.PendingImage.ID == 0 {
		t.Fatalf("picture must own three image rows: %+v", triplet)
	}
	if len(env.objects.Puts) != 3 {
		t.Fatalf("expected 3 blob puts, got %d", len(env.objects.Puts))
	}

	// The author is not notified about their own frame.
	if _, err := env.stores.Notification.FindGrouped(creator.ID,
		consts.NotificationFramePosted, &galerie.ID, nil); err != nil {
		t.Fatalf("expected FRAME_POSTED for the creator: %v", err)
	}
	if n := count[model.Notification](t, env.db, "user_id = ? AND type = ?", author.ID, consts.NotificationFramePosted); n != 0 {
		t.Fatalf("author must not be notified, got %d", n)
	}
}

func TestPostFrame_NonMemberAndUploadFailure(t *testing.T) {
	env := newTestEnv(t)
	creator := env.createUser(t, "creator")
	outsider := env.createUser(t, "outsider")
	galerie := env.createGalerie(t, creator, "g")

	uploads := []PictureUpload{{
		Original: []byte("o"), Cropped: []byte("c"), Pending: []byte("p"), Format: "jpeg",
	}}

	// A non-member's blobs are cleaned up after the transaction fails.
	_, err := env.social.PostFrame(env.ctx(), outsider.ID, galerie.ID, "", uploads)
	assertCode(t, err, ErrorCodeNotFound)
	if len(env.objects.Deletes) != len(env.objects.Puts) {
		t.Fatalf("expected every uploaded blob compensated: %d puts, %d deletes",
			len(env.objects.Puts), len(env.objects.Deletes))
	}
	if n := count[model.Frame](t, env.db, "galerie_id = ?", galerie.ID); n != 0 {
		t.Fatalf("no frame row may survive a failed post, got %d", n)
	}

	_, err = env.social.PostFrame(env.ctx(), creator.ID, galerie.ID, "", nil)
	assertCode(t, err, ErrorCodeValidation)
}

func TestSetCoverPicture_SingleCurrent(t *testing.T) {
	env := newTestEnv(t)
	creator := env.createUser(t, "creator")
	galerie := env.createGalerie(t, creator, "g")
	first := env.postFrame(t, creator, galerie)
	second := env.postFrame(t, creator, galerie)

	firstLoaded, _ := env.stores.Frame.FindByID(first.ID)
	secondLoaded, _ := env.stores.Frame.FindByID(second.ID)
	firstPicture := firstLoaded.GaleriePictures[0].ID
	secondPicture := secondLoaded.GaleriePictures[0].ID

	if err := env.social.SetCoverPicture(env.ctx(), creator.ID, galerie.ID, firstPicture); err != nil {
		t.Fatalf("set first cover: %v", err)
	}
	if err := env.social.SetCoverPicture(env.ctx(), creator.ID, galerie.ID, secondPicture); err != nil {
		t.Fatalf("set second cover: %v", err)
	}

	var current []model.GaleriePicture
	if err := env.db.Where("current = ?", true).Find(&current).Error; err != nil {
		t.Fatalf("load current: %v", err)
	}
	if len(current) != 1 || current[0].ID != secondPicture {
		t.Fatalf("expected exactly the second picture current, got %+v", current)
	}
}

func TestUpdateGalerieRole_GuardedAndNotified(t *testing.T) {
	env := newTestEnv(t)
	creator := env.createUser(t, "creator")
	member := env.createUser(t, "member")
	galerie := env.createGalerie(t, creator, "g")
	env.addMember(t, galerie, member, consts.GalerieRoleUser)

	assertCode(t, env.social.UpdateGalerieRole(env.ctx(), member.ID, galerie.ID, creator.ID, consts.GalerieRoleUser), ErrorCodeForbidden)
	assertCode(t, env.social.UpdateGalerieRole(env.ctx(), creator.ID, galerie.ID, member.ID, consts.GalerieRoleCreator), ErrorCodeValidation)

	if err := env.social.UpdateGalerieRole(env.ctx(), creator.ID, galerie.ID, member.ID, consts.GalerieRoleModerator); err != nil {
		t.Fatalf("promote: %v", err)
	}
	membership, _ := env.stores.Galerie.FindMembership(galerie.ID, member.ID)
	if membership.Role != consts.GalerieRoleModerator {
		t.Fatalf("expected moderator, got %s", membership.Role)
	}

	// A second change replaces the previous notification instead of piling up.
	if err := env.social.UpdateGalerieRole(env.ctx(), creator.ID, galerie.ID, member.ID, consts.GalerieRoleAdmin); err != nil {
		t.Fatalf("promote again: %v", err)
	}
	if n := count[model.Notification](t, env.db, "user_id = ? AND type = ?", member.ID, consts.NotificationGalerieRoleChange); n != 1 {
		t.Fatalf("expected a single role-change notification, got %d", n)
	}
	notification, err := env.stores.Notification.FindGrouped(member.ID, consts.NotificationGalerieRoleChange, &galerie.ID, nil)
	if err != nil {
		t.Fatalf("load notification: %v", err)
	}
	if notification.Role != string(consts.GalerieRoleAdmin) {
		t.Fatalf("expected latest role admin, got %s", notification.Role)
	}
}
