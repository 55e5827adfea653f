package service

import (
	"context"
	"errors"
	"time"

	"galerie-server/internal/consts"
	"galerie-server/internal/repository"

	"gorm.io/gorm"
)

// DeleteGalerie tears a galerie down entirely. Only the creator may do
// this; everybody else leaves through UnsubscribeGalerie.
func (s *LifecycleService) DeleteGalerie(ctx context.Context, actorID, galerieID uint) error {
	unlock := s.locks.lock(galerieKey(galerieID))
	defer unlock()

	batch := &blobBatch{}
	err := s.stores.Transaction(func(tx repository.Stores) error {
		if _, err := tx.Galerie.FindByID(galerieID); err != nil {
			return notFoundErr(err, "galerie not found")
		}
		membership, err := tx.Galerie.FindMembership(galerieID, actorID)
		if err != nil {
			return notFoundErr(err, "galerie not found")
		}
		if membership.Role != consts.GalerieRoleCreator {
			return NewForbiddenError("only the creator may delete a galerie")
		}
		return teardownGalerie(tx, galerieID, batch)
	})
	if err != nil {
		return err
	}

	s.flushBlobs(ctx, batch)
	return nil
}

// UnsubscribeGalerie removes the actor's own membership. The creator
// cannot unsubscribe. When the last member leaves, the galerie and all of
// its content are destroyed; otherwise only the actor's own frames and
// likes on this galerie go.
func (s *LifecycleService) UnsubscribeGalerie(ctx context.Context, actorID, galerieID uint) error {
	unlock := s.locks.lock(galerieKey(galerieID))
	defer unlock()

	batch := &blobBatch{}
	err := s.stores.Transaction(func(tx repository.Stores) error {
		if _, err := tx.Galerie.FindByID(galerieID); err != nil {
			return notFoundErr(err, "galerie not found")
		}
		membership, err := tx.Galerie.FindMembership(galerieID, actorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewAlreadyInStateError("not subscribed to this galerie")
			}
			return err
		}
		if membership.Role == consts.GalerieRoleCreator {
			return NewForbiddenError("the creator cannot unsubscribe from their own galerie")
		}

		if err := tx.Galerie.DeleteMembership(membership.ID); err != nil {
			return err
		}
		remaining, err := tx.Galerie.CountMemberships(galerieID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			return teardownGalerie(tx, galerieID, batch)
		}
		return destroyMemberContent(tx, galerieID, actorID, batch)
	})
	if err != nil {
		return err
	}

	s.flushBlobs(ctx, batch)
	return nil
}

// ExpireInvitations deletes every invitation of the galerie whose use
// count ran out or whose validity window has elapsed. Restricted to the
// members who can create invitations. Safe to call redundantly; reads of
// invitations trigger it lazily.
func (s *LifecycleService) ExpireInvitations(ctx context.Context, actorID, galerieID uint) error {
	return s.stores.Transaction(func(tx repository.Stores) error {
		membership, err := tx.Galerie.FindMembership(galerieID, actorID)
		if err != nil {
			return notFoundErr(err, "galerie not found")
		}
		if !CanInvite(membership.Role) {
			return NewForbiddenError("insufficient role to expire invitations")
		}
		invitations, err := tx.Invitation.FindByGalerie(galerieID)
		if err != nil {
			return err
		}
		now := time.Now()
		for i := range invitations {
			if !IsExpired(&invitations[i], now) {
				continue
			}
			if err := tx.Invitation.Delete(invitations[i].ID); err != nil {
				return err
			}
		}
		return nil
	})
}
