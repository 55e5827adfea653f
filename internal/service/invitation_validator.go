package service

import (
	"time"

	"galerie-server/internal/model"
	"galerie-server/internal/repository"
)

// IsExpired reports whether an invitation can no longer be redeemed:
// its remaining-use count has run out, or its validity window has elapsed.
// Nil fields mean unlimited.
func IsExpired(invitation *model.Invitation, now time.Time) bool {
	if invitation.NumOfInvits != nil && *invitation.NumOfInvits < 1 {
		return true
	}
	if invitation.Time != nil {
		deadline := invitation.CreatedAt.Add(time.Duration(*invitation.Time))
		if !deadline.After(now) {
			return true
		}
	}
	return false
}

// ConsumeInvitation burns one use of the invitation. When the remaining
// count would drop below one the invitation row is deleted eagerly so it
// can never be redeemed again.
func ConsumeInvitation(store repository.InvitationStore, invitation *model.Invitation) error {
	if invitation.NumOfInvits == nil {
		return nil
	}
	if *invitation.NumOfInvits <= 1 {
		return store.Delete(invitation.ID)
	}
	return store.DecrementUses(invitation.ID)
}
