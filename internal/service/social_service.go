package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"galerie-server/internal/config"
	"galerie-server/internal/consts"
	"galerie-server/internal/model"
	"galerie-server/internal/repository"
	"galerie-server/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SocialService covers the creation-side flows: galeries, invitations,
// subscriptions, frames and cover pictures. Destructive paths live in
// LifecycleService.
type SocialService struct {
	stores  repository.Stores
	objects storage.ObjectStore
	buckets config.StorageConfig
}

func NewSocialService(stores repository.Stores, objects storage.ObjectStore, buckets config.StorageConfig) *SocialService {
	return &SocialService{
		stores:  stores,
		objects: objects,
		buckets: buckets,
	}
}

func (s *SocialService) CreateGalerie(ctx context.Context, actorID uint, name, description string) (*model.Galerie, error) {
	if name == "" {
		return nil, NewValidationError("galerie name is required")
	}
	galerie := &model.Galerie{Name: name, Description: description}
	err := s.stores.Transaction(func(tx repository.Stores) error {
		if err := tx.Galerie.Create(galerie); err != nil {
			return err
		}
		return tx.Galerie.CreateMembership(&model.GalerieUser{
			UserID:    actorID,
			GalerieID: galerie.ID,
			Role:      consts.GalerieRoleCreator,
		})
	})
	if err != nil {
		return nil, err
	}
	return galerie, nil
}

func (s *SocialService) CreateInvitation(ctx context.Context, actorID, galerieID uint, numOfInvits *int64, ttl *time.Duration) (*model.Invitation, error) {
	if numOfInvits != nil && *numOfInvits < 1 {
		return nil, NewValidationError("num_of_invits must be at least 1")
	}
	invitation := &model.Invitation{
		GalerieID:   galerieID,
		UserID:      actorID,
		Code:        uuid.NewString(),
		NumOfInvits: numOfInvits,
	}
	if ttl != nil {
		nanos := int64(*ttl)
		invitation.Time = &nanos
	}
	err := s.stores.Transaction(func(tx repository.Stores) error {
		membership, err := tx.Galerie.FindMembership(galerieID, actorID)
		if err != nil {
			return notFoundErr(err, "galerie not found")
		}
		if !CanInvite(membership.Role) {
			return NewForbiddenError("insufficient role to create invitations")
		}
		return tx.Invitation.Create(invitation)
	})
	if err != nil {
		return nil, err
	}
	return invitation, nil
}

// SubscribeWithInvitation redeems an invitation code. Expired invitations
// are evicted on the spot and read as missing. Black-listed users cannot
// subscribe, which keeps a ban and a membership from ever coexisting.
func (s *SocialService) SubscribeWithInvitation(ctx context.Context, actorID uint, code string) (*model.Galerie, error) {
	var galerie *model.Galerie
	err := s.stores.Transaction(func(tx repository.Stores) error {
		invitation, err := tx.Invitation.FindByCode(code)
		if err != nil {
			return notFoundErr(err, "invitation not found")
		}
		if IsExpired(invitation, time.Now()) {
			if err := tx.Invitation.Delete(invitation.ID); err != nil {
				return err
			}
			return NewNotFoundError("invitation not found")
		}

		actor, err := tx.User.FindByID(actorID)
		if err != nil {
			return notFoundErr(err, "user not found")
		}
		if actor.IsBlackListed {
			return NewForbiddenError("black-listed users cannot subscribe")
		}
		if _, err := tx.BlackList.FindGalerieBan(invitation.GalerieID, actorID); err == nil {
			return NewForbiddenError("black-listed from this galerie")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if _, err := tx.Galerie.FindMembership(invitation.GalerieID, actorID); err == nil {
			return NewAlreadyInStateError("already subscribed to this galerie")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		galerie, err = tx.Galerie.FindByID(invitation.GalerieID)
		if err != nil {
			return err
		}
		members, err := tx.Galerie.MembershipsByGalerie(invitation.GalerieID)
		if err != nil {
			return err
		}
		if err := tx.Galerie.CreateMembership(&model.GalerieUser{
			UserID:    actorID,
			GalerieID: invitation.GalerieID,
			Role:      consts.GalerieRoleUser,
		}); err != nil {
			return err
		}
		if err := ConsumeInvitation(tx.Invitation, invitation); err != nil {
			return err
		}

		aggregator := NewNotificationAggregator(tx.Notification)
		for _, member := range members {
			if err := aggregator.Contribute(consts.NotificationUserSubscribe,
				member.UserID, GalerieScope(invitation.GalerieID), actorID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return galerie, nil
}

// PictureUpload is one photo to attach to a frame. Cropping happens in the
// image pipeline upstream; the engine stores whatever renditions it gets.
type PictureUpload struct {
	Original []byte
	Cropped  []byte
	Pending  []byte
	Format   string
	Width    int
	Height   int
}

// PostFrame uploads the picture blobs first and records the rows after:
// if the transaction fails the fresh blobs are removed, mirroring how
// deletion defers blob reclamation until after commit.
func (s *SocialService) PostFrame(ctx context.Context, actorID, galerieID uint, description string, uploads []PictureUpload) (*model.Frame, error) {
	if len(uploads) == 0 {
		return nil, NewValidationError("a frame needs at least one picture")
	}

	frame := &model.Frame{
		GalerieID:   galerieID,
		UserID:      actorID,
		Description: description,
	}
	var uploaded []storage.ObjectRef
	for i, upload := range uploads {
		key := fmt.Sprintf("%s.%s", uuid.NewString(), upload.Format)
		variants := []struct {
			bucket string
			data   []byte
		}{
			{s.buckets.OriginalBucket, upload.Original},
			{s.buckets.CroppedBucket, upload.Cropped},
			{s.buckets.PendingBucket, upload.Pending},
		}
		images := make([]model.Image, 3)
		for j, variant := range variants {
			contentType := "image/" + upload.Format
			if err := s.objects.Put(ctx, variant.bucket, key, bytes.NewReader(variant.data), contentType); err != nil {
				s.removeUploaded(ctx, uploaded)
				return nil, err
			}
			uploaded = append(uploaded, storage.ObjectRef{Bucket: variant.bucket, Key: key})
			images[j] = model.Image{
				BucketName: variant.bucket,
				FileName:   key,
				Format:     upload.Format,
				Width:      upload.Width,
				Height:     upload.Height,
				Size:       int64(len(variant.data)),
			}
		}
		frame.GaleriePictures = append(frame.GaleriePictures, model.GaleriePicture{
			Index:         i,
			OriginalImage: images[0],
			CroppedImage:  images[1],
			PendingImage:  images[2],
		})
	}

	err := s.stores.Transaction(func(tx repository.Stores) error {
		if _, err := tx.Galerie.FindMembership(galerieID, actorID); err != nil {
			return notFoundErr(err, "galerie not found")
		}
		if err := tx.Frame.Create(frame); err != nil {
			return err
		}

		members, err := tx.Galerie.MembershipsByGalerie(galerieID)
		if err != nil {
			return err
		}
		aggregator := NewNotificationAggregator(tx.Notification)
		for _, member := range members {
			if member.UserID == actorID {
				continue
			}
			if err := aggregator.Contribute(consts.NotificationFramePosted,
				member.UserID, GalerieScope(galerieID), frame.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.removeUploaded(ctx, uploaded)
		return nil, err
	}
	return frame, nil
}

func (s *SocialService) removeUploaded(ctx context.Context, refs []storage.ObjectRef) {
	for _, ref := range refs {
		if err := s.objects.Delete(ctx, ref.Bucket, ref.Key); err != nil {
			log.Printf("orphaned upload cleanup failed: bucket=%s key=%s: %v", ref.Bucket, ref.Key, err)
		}
	}
}

// SetCoverPicture flags one picture as the galerie cover. At most one
// picture across the galerie may be current at a time.
func (s *SocialService) SetCoverPicture(ctx context.Context, actorID, galerieID, pictureID uint) error {
	return s.stores.Transaction(func(tx repository.Stores) error {
		membership, err := tx.Galerie.FindMembership(galerieID, actorID)
		if err != nil {
			return notFoundErr(err, "galerie not found")
		}
		if !CanInvite(membership.Role) {
			return NewForbiddenError("insufficient role to set the cover picture")
		}
		picture, err := tx.Frame.FindPictureByID(pictureID)
		if err != nil {
			return notFoundErr(err, "picture not found")
		}
		frame, err := tx.Frame.FindByID(picture.FrameID)
		if err != nil {
			return err
		}
		if frame.GalerieID != galerieID {
			return NewNotFoundError("picture not found")
		}
		if err := tx.Frame.ClearCurrentPicture(galerieID); err != nil {
			return err
		}
		if picture.Current {
			// Toggling the current cover off leaves the galerie coverless.
			return nil
		}
		return tx.Frame.SetCurrentPicture(pictureID)
	})
}

// UpdateGalerieRole promotes or demotes a member. The creator role can
// neither be granted nor taken away. A fresh GALERIE_ROLE_CHANGE
// notification replaces any previous one for the same galerie.
func (s *SocialService) UpdateGalerieRole(ctx context.Context, actorID, galerieID, userID uint, role consts.GalerieRole) error {
	if role == consts.GalerieRoleCreator {
		return NewValidationError("cannot grant the creator role")
	}
	if actorID == userID {
		return NewForbiddenError("cannot change your own role")
	}
	return s.stores.Transaction(func(tx repository.Stores) error {
		actor, err := tx.Galerie.FindMembership(galerieID, actorID)
		if err != nil {
			return notFoundErr(err, "galerie not found")
		}
		target, err := tx.Galerie.FindMembership(galerieID, userID)
		if err != nil {
			return notFoundErr(err, "user is not a member of this galerie")
		}
		if !CanChangeRole(actor.Role, target.Role) {
			return NewForbiddenError("insufficient role to change this member's role")
		}
		if err := tx.Galerie.UpdateMembershipRole(target.ID, role); err != nil {
			return err
		}

		if existing, err := tx.Notification.FindGrouped(userID,
			consts.NotificationGalerieRoleChange, &galerieID, nil); err == nil {
			if err := tx.Notification.Delete(existing.ID); err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Notification.Create(&model.Notification{
			UserID:    userID,
			Type:      consts.NotificationGalerieRoleChange,
			Num:       1,
			GalerieID: &galerieID,
			Role:      string(role),
		})
	})
}

// SubmitTicket records a support ticket. The author reference is cleared
// if the account is later deleted; the ticket itself stays.
func (s *SocialService) SubmitTicket(ctx context.Context, actorID uint, header, body string) error {
	if header == "" || body == "" {
		return NewValidationError("header and body are required")
	}
	author := actorID
	return s.stores.Ticket.Create(&model.Ticket{
		UserID: &author,
		Header: header,
		Body:   body,
	})
}
