package service

import (
	"context"
	"errors"

	"galerie-server/internal/consts"
	"galerie-server/internal/model"
	"galerie-server/internal/repository"

	"gorm.io/gorm"
)

// ToggleLike flips the actor's like on a frame and returns the resulting
// like count. The denormalized counter moves in the same transaction as
// the join row, and the frame author's FRAME_LIKED notification follows
// the same toggle. Serialized against the other cascades touching the
// frame's galerie.
func (s *LifecycleService) ToggleLike(ctx context.Context, actorID, frameID uint) (int64, error) {
	galerieID, err := s.frameGalerieID(frameID)
	if err != nil {
		return 0, err
	}
	unlock := s.locks.lock(galerieKey(galerieID))
	defer unlock()

	var numOfLikes int64
	err = s.stores.Transaction(func(tx repository.Stores) error {
		frame, err := tx.Frame.FindByID(frameID)
		if err != nil {
			return notFoundErr(err, "frame not found")
		}
		if _, err := tx.Galerie.FindMembership(frame.GalerieID, actorID); err != nil {
			return notFoundErr(err, "frame not found")
		}

		aggregator := NewNotificationAggregator(tx.Notification)
		scope := FrameScope(frame.GalerieID, frame.ID)

		like, err := tx.Like.Find(actorID, frameID)
		switch {
		case err == nil:
			if err := tx.Like.Delete(like.ID); err != nil {
				return err
			}
			if err := tx.Frame.AdjustLikes(frameID, -1); err != nil {
				return err
			}
			if frame.UserID != actorID {
				if err := aggregator.Withdraw(consts.NotificationFrameLiked, frame.UserID, scope, actorID); err != nil {
					return err
				}
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Like.Create(&model.Like{UserID: actorID, FrameID: frameID}); err != nil {
				return err
			}
			if err := tx.Frame.AdjustLikes(frameID, 1); err != nil {
				return err
			}
			if frame.UserID != actorID {
				if err := aggregator.Contribute(consts.NotificationFrameLiked, frame.UserID, scope, actorID); err != nil {
					return err
				}
			}
		default:
			return err
		}

		// Report the post-toggle count, not the pre-read value.
		numOfLikes, err = tx.Like.CountByFrame(frameID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return numOfLikes, nil
}

// frameGalerieID resolves the lock key before the transaction opens. The
// frame is re-read inside the transaction; a frame deleted in between
// simply reads as missing there.
func (s *LifecycleService) frameGalerieID(frameID uint) (uint, error) {
	frame, err := s.stores.Frame.FindByID(frameID)
	if err != nil {
		return 0, notFoundErr(err, "frame not found")
	}
	return frame.GalerieID, nil
}

// DeleteFrame destroys one frame with its pictures, images, blobs and
// likes. The author may always delete their own frame; other members need
// a role above plain user.
func (s *LifecycleService) DeleteFrame(ctx context.Context, actorID, frameID uint) error {
	galerieID, err := s.frameGalerieID(frameID)
	if err != nil {
		return err
	}
	unlock := s.locks.lock(galerieKey(galerieID))
	defer unlock()

	batch := &blobBatch{}
	err = s.stores.Transaction(func(tx repository.Stores) error {
		frame, err := tx.Frame.FindByID(frameID)
		if err != nil {
			return notFoundErr(err, "frame not found")
		}
		membership, err := tx.Galerie.FindMembership(frame.GalerieID, actorID)
		if err != nil {
			return notFoundErr(err, "frame not found")
		}
		if frame.UserID != actorID && membership.Role == consts.GalerieRoleUser {
			return NewForbiddenError("insufficient role to delete this frame")
		}
		return destroyFrameAndDependents(tx, frame, batch)
	})
	if err != nil {
		return err
	}

	s.flushBlobs(ctx, batch)
	return nil
}
