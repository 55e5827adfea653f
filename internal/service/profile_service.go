package service

import (
	"bytes"
	"context"
	"fmt"

	"galerie-server/internal/config"
	"galerie-server/internal/model"
	"galerie-server/internal/repository"
	"galerie-server/internal/storage"

	"github.com/google/uuid"
)

// ProfileService manages profile pictures with the same triplet and
// blob rules as galerie pictures.
type ProfileService struct {
	stores  repository.Stores
	objects storage.ObjectStore
	buckets config.StorageConfig
}

func NewProfileService(stores repository.Stores, objects storage.ObjectStore, buckets config.StorageConfig) *ProfileService {
	return &ProfileService{
		stores:  stores,
		objects: objects,
		buckets: buckets,
	}
}

// SetProfilePicture uploads a new profile picture and makes it current.
// Previous pictures stay until deleted explicitly or with the account.
func (s *ProfileService) SetProfilePicture(ctx context.Context, actorID uint, upload PictureUpload) (*model.ProfilePicture, error) {
	key := fmt.Sprintf("%s.%s", uuid.NewString(), upload.Format)
	variants := []struct {
		bucket string
		data   []byte
	}{
		{s.buckets.OriginalBucket, upload.Original},
		{s.buckets.CroppedBucket, upload.Cropped},
		{s.buckets.PendingBucket, upload.Pending},
	}

	var uploaded []storage.ObjectRef
	images := make([]model.Image, 3)
	for i, variant := range variants {
		contentType := "image/" + upload.Format
		if err := s.objects.Put(ctx, variant.bucket, key, bytes.NewReader(variant.data), contentType); err != nil {
			s.removeUploaded(ctx, uploaded)
			return nil, err
		}
		uploaded = append(uploaded, storage.ObjectRef{Bucket: variant.bucket, Key: key})
		images[i] = model.Image{
			BucketName: variant.bucket,
			FileName:   key,
			Format:     upload.Format,
			Width:      upload.Width,
			Height:     upload.Height,
			Size:       int64(len(variant.data)),
		}
	}

	picture := &model.ProfilePicture{
		UserID:        actorID,
		Current:       true,
		OriginalImage: images[0],
		CroppedImage:  images[1],
		PendingImage:  images[2],
	}
	err := s.stores.Transaction(func(tx repository.Stores) error {
		if _, err := tx.User.FindByID(actorID); err != nil {
			return notFoundErr(err, "user not found")
		}
		if err := tx.ProfilePicture.ClearCurrent(actorID); err != nil {
			return err
		}
		return tx.ProfilePicture.Create(picture)
	})
	if err != nil {
		s.removeUploaded(ctx, uploaded)
		return nil, err
	}
	return picture, nil
}

// DeleteProfilePicture destroys one of the actor's profile pictures, its
// image rows and, after commit, its blobs.
func (s *ProfileService) DeleteProfilePicture(ctx context.Context, actorID, pictureID uint) error {
	batch := &blobBatch{}
	err := s.stores.Transaction(func(tx repository.Stores) error {
		picture, err := tx.ProfilePicture.FindByID(pictureID)
		if err != nil {
			return notFoundErr(err, "profile picture not found")
		}
		if picture.UserID != actorID {
			return NewNotFoundError("profile picture not found")
		}
		return destroyProfilePictureTriplet(tx, picture, batch)
	})
	if err != nil {
		return err
	}

	flushBlobs(ctx, s.objects, batch)
	return nil
}

func (s *ProfileService) removeUploaded(ctx context.Context, refs []storage.ObjectRef) {
	for _, ref := range refs {
		_ = s.objects.Delete(ctx, ref.Bucket, ref.Key)
	}
}
