package service

import (
	"context"
	"testing"

	"galerie-server/internal/config"
	"galerie-server/internal/consts"
	"galerie-server/internal/model"
	"galerie-server/internal/repository"
	"galerie-server/internal/storage"
	"galerie-server/internal/testutils"

	"gorm.io/gorm"
)

var testBuckets = config.StorageConfig{
	OriginalBucket: "test-original",
	CroppedBucket:  "test-cropped",
	PendingBucket:  "test-pending",
}

type testEnv struct {
	db        *gorm.DB
	stores    repository.Stores
	objects   *storage.Recorder
	lifecycle *LifecycleService
	social    *SocialService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := testutils.SetupDB(t)
	stores := repository.NewStores(gdb)
	objects := storage.NewRecorder()
	return &testEnv{
		db:        gdb,
		stores:    stores,
		objects:   objects,
		lifecycle: NewLifecycleService(stores, objects),
		social:    NewSocialService(stores, objects, testBuckets),
	}
}

func (e *testEnv) ctx() context.Context {
	return context.Background()
}

func (e *testEnv) createUser(t *testing.T, userName string) *model.User {
	t.Helper()
	user := &model.User{
		Pseudonym: userName,
		UserName:  userName,
		Email:     userName + "@example.com",
		Password:  "hashed",
		Role:      consts.RoleUser,
		Confirmed: true,
	}
	if err := e.stores.User.Create(user); err != nil {
		t.Fatalf("create user %s: %v", userName, err)
	}
	return user
}

func (e *testEnv) createGalerie(t *testing.T, creator *model.User, name string) *model.Galerie {
	t.Helper()
	galerie, err := e.social.CreateGalerie(e.ctx(), creator.ID, name, "")
	if err != nil {
		t.Fatalf("create galerie %s: %v", name, err)
	}
	return galerie
}

func (e *testEnv) addMember(t *testing.T, galerie *model.Galerie, user *model.User, role consts.GalerieRole) {
	t.Helper()
	err := e.stores.Galerie.CreateMembership(&model.GalerieUser{
		UserID:    user.ID,
		GalerieID: galerie.ID,
		Role:      role,
	})
	if err != nil {
		t.Fatalf("add member %d to galerie %d: %v", user.ID, galerie.ID, err)
	}
}

// postFrame uploads one single-picture frame through the service so the
// blob store and notification side effects are realistic.
func (e *testEnv) postFrame(t *testing.T, author *model.User, galerie *model.Galerie) *model.Frame {
	t.Helper()
	frame, err := e.social.PostFrame(e.ctx(), author.ID, galerie.ID, "a frame", []PictureUpload{
		{
			Original: []byte("original"),
			Cropped:  []byte("cropped"),
			Pending:  []byte("pending"),
			Format:   "jpeg",
			Width:    800,
			Height:   600,
		},
	})
	if err != nil {
		t.Fatalf("post frame: %v", err)
	}
	return frame
}

func count[T any](t *testing.T, gdb *gorm.DB, query string, args ...any) int64 {
	t.Helper()
	var n int64
	var zero T
	if err := gdb.Model(&zero).Where(query, args...).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func assertCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	serviceErr, ok := AsServiceError(err)
	if !ok || serviceErr.Code != code {
		t.Fatalf("expected %s error, got: %v", code, err)
	}
}
