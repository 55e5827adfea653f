package service

import (
	"context"

	"galerie-server/internal/consts"
	"galerie-server/internal/repository"
)

// DeleteUser erases an account and everything that depends on it. Only
// self-deletion is allowed; password and confirmation-sentence checks
// happen upstream. Ban records and tickets outlive the account with their
// author reference cleared.
func (s *LifecycleService) DeleteUser(ctx context.Context, actorID uint) error {
	unlock := s.locks.lock(userKey(actorID))
	defer unlock()

	batch := &blobBatch{}
	err := s.stores.Transaction(func(tx repository.Stores) error {
		if _, err := tx.User.FindByID(actorID); err != nil {
			return notFoundErr(err, "user not found")
		}

		profilePictures, err := tx.ProfilePicture.FindByUser(actorID)
		if err != nil {
			return err
		}
		for i := range profilePictures {
			if err := destroyProfilePictureTriplet(tx, &profilePictures[i], batch); err != nil {
				return err
			}
		}

		if err := tx.Ticket.ClearAuthor(actorID); err != nil {
			return err
		}
		if err := tx.BlackList.ClearGlobalBanCreator(actorID); err != nil {
			return err
		}
		if err := tx.BlackList.ClearGalerieBanCreators(actorID); err != nil {
			return err
		}
		if err := tx.BetaKey.ClearCreator(actorID); err != nil {
			return err
		}

		// Notifications addressed to the actor go first, so the per-like
		// and per-frame withdrawals below only ever touch other users'
		// notifications.
		if err := tx.Notification.DeleteByRecipient(actorID); err != nil {
			return err
		}

		frames, err := tx.Frame.FindByUser(actorID)
		if err != nil {
			return err
		}
		for i := range frames {
			if err := destroyFrameAndDependents(tx, &frames[i], batch); err != nil {
				return err
			}
		}

		aggregator := NewNotificationAggregator(tx.Notification)
		likes, err := tx.Like.FindByUser(actorID)
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
				FrameScope(frame.GalerieID, frame.ID), actorID); err != nil {
				return err
			}
		}
		if err := aggregator.WithdrawSubscriber(actorID, nil); err != nil {
			return err
		}

		memberships, err := tx.Galerie.MembershipsByUser(actorID)
		if err != nil {
			return err
		}
		for _, membership := range memberships {
			if err := tx.Galerie.DeleteMembership(membership.ID); err != nil {
				return err
			}
			if membership.Role != consts.GalerieRoleCreator {
				continue
			}
			if err := tx.Invitation.DeleteByGalerie(membership.GalerieID); err != nil {
				return err
			}
			remaining, err := tx.Galerie.CountMemberships(membership.GalerieID)
			if err != nil {
				return err
			}
			if remaining == 0 {
				if err := teardownGalerie(tx, membership.GalerieID, batch); err != nil {
					return err
				}
			} else if err := tx.Galerie.Archive(membership.GalerieID); err != nil {
				return err
			}
		}

		if err := tx.Invitation.DeleteByUser(actorID); err != nil {
			return err
		}
		return tx.User.Delete(actorID)
	})
	if err != nil {
		return err
	}

	s.flushBlobs(ctx, batch)
	return nil
}
