package service

import (
	"errors"
	"testing"

	"galerie-server/internal/consts"
	"galerie-server/internal/model"

	"gorm.io/gorm"
)

func TestContribute_CreatesThenIncrements(t *testing.T) {
	env := newTestEnv(t)
	recipient := env.createUser(t, "recipient")
	galerie := env.createGalerie(t, recipient, "g")
	aggregator := NewNotificationAggregator(env.stores.Notification)
	scope := GalerieScope(galerie.ID)

	if err := aggregator.Contribute(consts.NotificationUserSubscribe, recipient.ID, scope, 101); err != nil {
		t.Fatalf("first contribute: %v", err)
	}
	notification, err := env.stores.Notification.FindGrouped(recipient.ID, consts.NotificationUserSubscribe, scope.GalerieID, nil)
	if err != nil {
		t.Fatalf("find notification: %v", err)
	}
	if notification.Num != 1 {
		t.Fatalf("expected num=1, got %d", notification.Num)
	}

	if err := aggregator.Contribute(consts.NotificationUserSubscribe, recipient.ID, scope, 102); err != nil {
		t.Fatalf("second contribute: %v", err)
	}
	notification, _ = env.stores.Notification.FindGrouped(recipient.ID, consts.NotificationUserSubscribe, scope.GalerieID, nil)
	if notification.Num != 2 {
		t.Fatalf("expected num=2, got %d", notification.Num)
	}
	if n := count[model.NotificationUserSubscribe](t, env.db, "notification_id = ?", notification.ID); n != 2 {
		t.Fatalf("expected 2 join rows, got %d", n)
	}
}

func TestWithdraw_DestroysAtOneDecrementsAbove(t *testing.T) {
	env := newTestEnv(t)
	recipient := env.createUser(t, "recipient")
	galerie := env.createGalerie(t, recipient, "g")
	aggregator := NewNotificationAggregator(env.stores.Notification)
	scope := GalerieScope(galerie.ID)

	_ = aggregator.Contribute(consts.NotificationUserSubscribe, recipient.ID, scope, 101)
	_ = aggregator.Contribute(consts.NotificationUserSubscribe, recipient.ID, scope, 102)

	// num = 2: one withdrawal leaves the notification alive at num = 1.
	if err := aggregator.Withdraw(consts.NotificationUserSubscribe, recipient.ID, scope, 101); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	notification, err := env.stores.Notification.FindGrouped(recipient.ID, consts.NotificationUserSubscribe, scope.GalerieID, nil)
	if err != nil {
		t.Fatalf("notification should survive: %v", err)
	}
	if notification.Num != 1 {
		t.Fatalf("expected num=1, got %d", notification.Num)
	}

	// num = 1: the next withdrawal destroys it, join rows included.
	if err := aggregator.Withdraw(consts.NotificationUserSubscribe, recipient.ID, scope, 102); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	_, err = env.stores.Notification.FindGrouped(recipient.ID, consts.NotificationUserSubscribe, scope.GalerieID, nil)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected notification destroyed, got: %v", err)
	}
	if n := count[model.NotificationUserSubscribe](t, env.db, "notification_id = ?", notification.ID); n != 0 {
		t.Fatalf("expected 0 join rows, got %d", n)
	}
}

func TestWithdraw_MissingNotificationIsNoop(t *testing.T) {
	env := newTestEnv(t)
	recipient := env.createUser(t, "recipient")
	galerie := env.createGalerie(t, recipient, "g")
	aggregator := NewNotificationAggregator(env.stores.Notification)

	if err := aggregator.Withdraw(consts.NotificationUserSubscribe, recipient.ID, GalerieScope(galerie.ID), 101); err != nil {
		t.Fatalf("withdraw on missing notification should be a no-op: %v", err)
	}
}

func TestWithdraw_UnmatchedContributorKeepsNum(t *testing.T) {
	env := newTestEnv(t)
	recipient := env.createUser(t, "recipient")
	galerie := env.createGalerie(t, recipient, "g")
	aggregator := NewNotificationAggregator(env.stores.Notification)
	scope := GalerieScope(galerie.ID)

	_ = aggregator.Contribute(consts.NotificationUserSubscribe, recipient.ID, scope, 101)
	_ = aggregator.Contribute(consts.NotificationUserSubscribe, recipient.ID, scope, 102)

	// A contributor that never contributed must not decrement num.
	if err := aggregator.Withdraw(consts.NotificationUserSubscribe, recipient.ID, scope, 999); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	notification, _ := env.stores.Notification.FindGrouped(recipient.ID, consts.NotificationUserSubscribe, scope.GalerieID, nil)
	if notification.Num != 2 {
		t.Fatalf("expected num unchanged at 2, got %d", notification.Num)
	}
}

func TestContributorIDs_PreviewBounded(t *testing.T) {
	env := newTestEnv(t)
	recipient := env.createUser(t, "recipient")
	galerie := env.createGalerie(t, recipient, "g")
	aggregator := NewNotificationAggregator(env.stores.Notification)
	scope := GalerieScope(galerie.ID)

	for id := uint(1); id <= 6; id++ {
		if err := aggregator.Contribute(consts.NotificationUserSubscribe, recipient.ID, scope, 100+id); err != nil {
			t.Fatalf("contribute %d: %v", id, err)
		}
	}
	notification, err := env.stores.Notification.FindGrouped(recipient.ID, consts.NotificationUserSubscribe, scope.GalerieID, nil)
	if err != nil {
		t.Fatalf("find notification: %v", err)
	}
	if notification.Num != 6 {
		t.Fatalf("expected num=6, got %d", notification.Num)
	}

	preview, err := env.stores.Notification.ContributorIDs(notification.ID, notification.Type, consts.NotificationPreviewSize)
	if err != nil {
		t.Fatalf("contributor ids: %v", err)
	}
	if len(preview) != consts.NotificationPreviewSize {
		t.Fatalf("expected preview of %d, got %d", consts.NotificationPreviewSize, len(preview))
	}
	// Newest first: the last contributor leads the preview.
	if preview[0] != 106 {
		t.Fatalf("expected newest contributor 106 first, got %d", preview[0])
	}
}
