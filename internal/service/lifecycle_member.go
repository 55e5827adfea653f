package service

import (
	"context"
	"errors"

	"galerie-server/internal/model"
	"galerie-server/internal/repository"

	"gorm.io/gorm"
)

// RemoveGalerieMember expels another member and erases their content
// scoped to this galerie. Role checks follow the membership policy:
// moderators remove plain users, admins remove moderators and users, the
// creator removes anyone, and the creator is never a valid target.
func (s *LifecycleService) RemoveGalerieMember(ctx context.Context, actorID, galerieID, userID uint) error {
	unlock := s.locks.lock(galerieKey(galerieID))
	defer unlock()

	batch := &blobBatch{}
	err := s.stores.Transaction(func(tx repository.Stores) error {
		if actorID == userID {
			return NewForbiddenError("cannot remove yourself, unsubscribe instead")
		}
		actor, err := tx.Galerie.FindMembership(galerieID, actorID)
		if err != nil {
			return notFoundErr(err, "galerie not found")
		}
		target, err := tx.Galerie.FindMembership(galerieID, userID)
		if err != nil {
			return notFoundErr(err, "user is not a member of this galerie")
		}
		if !CanRemove(actor.Role, target.Role) {
			return NewForbiddenError("insufficient role to remove this member")
		}

		if err := destroyMemberContent(tx, galerieID, userID, batch); err != nil {
			return err
		}
		return tx.Galerie.DeleteMembership(target.ID)
	})
	if err != nil {
		return err
	}

	s.flushBlobs(ctx, batch)
	return nil
}

// BlacklistGalerieMember expels a member and records a ban so they cannot
// come back through an invitation. A ban and a membership must never
// coexist: when a stale membership is found next to an existing ban it is
// destroyed before the error is returned.
func (s *LifecycleService) BlacklistGalerieMember(ctx context.Context, actorID, galerieID, userID uint, reason string) error {
	unlock := s.locks.lock(galerieKey(galerieID))
	defer unlock()

	batch := &blobBatch{}
	alreadyBanned := false
	err := s.stores.Transaction(func(tx repository.Stores) error {
		if actorID == userID {
			return NewForbiddenError("cannot black-list yourself")
		}
		actor, err := tx.Galerie.FindMembership(galerieID, actorID)
		if err != nil {
			return notFoundErr(err, "galerie not found")
		}

		if _, err := tx.BlackList.FindGalerieBan(galerieID, userID); err == nil {
			// Self-healing: a stale membership must not exist next to a
			// ban. Destroy it and commit; the conflict is reported after.
			alreadyBanned = true
			if stale, err := tx.Galerie.FindMembership(galerieID, userID); err == nil {
				return tx.Galerie.DeleteMembership(stale.ID)
			}
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		target, err := tx.Galerie.FindMembership(galerieID, userID)
		if err != nil {
			return notFoundErr(err, "user is not a member of this galerie")
		}
		if !CanBlacklist(actor.Role, target.Role) {
			return NewForbiddenError("insufficient role to black-list this member")
		}

		if err := tx.Galerie.DeleteMembership(target.ID); err != nil {
			return err
		}
		createdBy := actorID
		if err := tx.BlackList.CreateGalerieBan(&model.GalerieBlackList{
			GalerieID:   galerieID,
			UserID:      userID,
			Reason:      reason,
			CreatedByID: &createdBy,
		}); err != nil {
			return err
		}
		return destroyMemberContent(tx, galerieID, userID, batch)
	})
	if err != nil {
		return err
	}
	if alreadyBanned {
		return NewAlreadyInStateError("user is already black-listed from this galerie")
	}

	s.flushBlobs(ctx, batch)
	return nil
}
