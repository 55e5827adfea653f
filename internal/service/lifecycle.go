package service

import (
	"context"
	"errors"
	"log"

	"galerie-server/internal/consts"
	"galerie-server/internal/model"
	"galerie-server/internal/repository"
	"galerie-server/internal/storage"

	"gorm.io/gorm"
)

// LifecycleService is the referential-integrity engine. Every destructive
// or membership-changing event goes through one of its operations: the
// whole relational cascade runs in a single transaction, and blob objects
// owned by deleted image rows are reclaimed only after that transaction
// commits.
type LifecycleService struct {
	stores  repository.Stores
	objects storage.ObjectStore
	locks   *keyedMutex
}

func NewLifecycleService(stores repository.Stores, objects storage.ObjectStore) *LifecycleService {
	return &LifecycleService{
		stores:  stores,
		objects: objects,
		locks:   newKeyedMutex(),
	}
}

// blobBatch accumulates blob coordinates of image rows deleted inside a
// transaction. The batch is flushed only after the commit: rows are the
// source of truth, so a failed blob deletion is logged and swallowed
// rather than rolling anything back.
type blobBatch struct {
	refs []storage.ObjectRef
}

func (b *blobBatch) add(images ...model.Image) {
	for _, image := range images {
		b.refs = append(b.refs, storage.ObjectRef{
			Bucket: image.BucketName,
			Key:    image.FileName,
		})
	}
}

func (s *LifecycleService) flushBlobs(ctx context.Context, batch *blobBatch) {
	flushBlobs(ctx, s.objects, batch)
}

// flushBlobs reclaims blob objects after the owning transaction committed.
func flushBlobs(ctx context.Context, objects storage.ObjectStore, batch *blobBatch) {
	for _, ref := range batch.refs {
		if err := objects.Delete(ctx, ref.Bucket, ref.Key); err != nil {
			log.Printf("blob cleanup failed: bucket=%s key=%s: %v", ref.Bucket, ref.Key, err)
		}
	}
}

func notFoundErr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError(message)
	}
	return err
}

// destroyPictureTriplet deletes a galerie picture together with its three
// image rows and queues their blob objects for post-commit reclamation.
func destroyPictureTriplet(tx repository.Stores, picture *model.GaleriePicture, batch *blobBatch) error {
	imageIDs := []uint{picture.OriginalImageID, picture.CroppedImageID, picture.PendingImageID}
	if err := tx.Frame.DeletePicture(picture.ID); err != nil {
		return err
	}
	if err := tx.Image.DeleteByIDs(imageIDs); err != nil {
		return err
	}
	batch.add(picture.OriginalImage, picture.CroppedImage, picture.PendingImage)
	return nil
}

// destroyProfilePictureTriplet is the profile-picture counterpart.
func destroyProfilePictureTriplet(tx repository.Stores, picture *model.ProfilePicture, batch *blobBatch) error {
	imageIDs := []uint{picture.OriginalImageID, picture.CroppedImageID, picture.PendingImageID}
	if err := tx.ProfilePicture.Delete(picture.ID); err != nil {
		return err
	}
	if err := tx.Image.DeleteByIDs(imageIDs); err != nil {
		return err
	}
	batch.add(picture.OriginalImage, picture.CroppedImage, picture.PendingImage)
	return nil
}

// destroyFrameAndDependents deletes a frame, its picture triplets, the
// likes on it, and keeps grouped notifications consistent: the frame is
// withdrawn from FRAME_POSTED notifications and FRAME_LIKED notifications
// scoped to it are destroyed with it.
func destroyFrameAndDependents(tx repository.Stores, frame *model.Frame, batch *blobBatch) error {
	for i := range frame.GaleriePictures {
		if err := destroyPictureTriplet(tx, &frame.GaleriePictures[i], batch); err != nil {
			return err
		}
	}
	if err := tx.Like.DeleteByFrame(frame.ID); err != nil {
		return err
	}
	aggregator := NewNotificationAggregator(tx.Notification)
	if err := aggregator.WithdrawFramePosted(frame.ID); err != nil {
		return err
	}
	if err := tx.Notification.DeleteByFrameScope(frame.ID); err != nil {
		return err
	}
	return tx.Frame.Delete(frame.ID)
}

// destroyMemberContent removes everything a user contributed to one
// galerie: their frames and dependents, their likes on other members'
// frames (adjusting counters and withdrawing FRAME_LIKED notifications),
// their invitations, the notifications addressed to them for the galerie,
// and their USER_SUBSCRIBE contributions. The membership row itself is the
// caller's to delete.
func destroyMemberContent(tx repository.Stores, galerieID, userID uint, batch *blobBatch) error {
	frames, err := tx.Frame.FindByGalerieAndUser(galerieID, userID)
	if err != nil {
		return err
	}
	for i := range frames {
		if err := destroyFrameAndDependents(tx, &frames[i], batch); err != nil {
			return err
		}
	}

	aggregator := NewNotificationAggregator(tx.Notification)

	likes, err := tx.Like.FindByUserAndGalerie(userID, galerieID)
	if err != nil {
		return err
	}
	for _, like := range likes {
		frame, err := tx.Frame.FindByID(like.FrameID)
		if err != nil {
			return err
		}
		if err := tx.Like.Delete(like.ID); err != nil {
			return err
		}
		if err := tx.Frame.AdjustLikes(frame.ID, -1); err != nil {
			return err
		}
		if err := aggregator.Withdraw(consts.NotificationFrameLiked, frame.UserID,
			FrameScope(galerieID, frame.ID), userID); err != nil {
			return err
		}
	}

	if err := tx.BlackList.ClearGalerieBanCreator(galerieID, userID); err != nil {
		return err
	}
	if err := tx.Invitation.DeleteByGalerieAndUser(galerieID, userID); err != nil {
		return err
	}
	if err := tx.Notification.DeleteByRecipientAndGalerie(userID, galerieID,
		[]consts.NotificationType{
			consts.NotificationFramePosted,
			consts.NotificationUserSubscribe,
		}); err != nil {
		return err
	}
	galerieScope := galerieID
	return aggregator.WithdrawSubscriber(userID, &galerieScope)
}

// teardownGalerie destroys a galerie and every record referencing it.
// Child rows go first, the galerie row last.
func teardownGalerie(tx repository.Stores, galerieID uint, batch *blobBatch) error {
	frames, err := tx.Frame.FindByGalerie(galerieID)
	if err != nil {
		return err
	}
	for i := range frames {
		if err := destroyFrameAndDependents(tx, &frames[i], batch); err != nil {
			return err
		}
	}
	if err := tx.Invitation.DeleteByGalerie(galerieID); err != nil {
		return err
	}
	if err := tx.Galerie.DeleteMembershipsByGalerie(galerieID); err != nil {
		return err
	}
	if err := tx.BlackList.DeleteGalerieBansByGalerie(galerieID); err != nil {
		return err
	}
	if err := tx.Notification.DeleteByGalerie(galerieID, nil); err != nil {
		return err
	}
	return tx.Galerie.Delete(galerieID)
}
