package repository

import "galerie-server/internal/model"

type FrameStore interface {
	// FindByID loads the frame with its pictures and their image triplets.
	FindByID(id uint) (*model.Frame, error)
	FindByGalerie(galerieID uint) ([]model.Frame, error)
	FindByUser(userID uint) ([]model.Frame, error)
	FindByGalerieAndUser(galerieID, userID uint) ([]model.Frame, error)
	Create(frame *model.Frame) error
	Delete(id uint) error
	AdjustLikes(id uint, delta int64) error

	FindPictureByID(id uint) (*model.GaleriePicture, error)
	DeletePicture(id uint) error
	ClearCurrentPicture(galerieID uint) error
	SetCurrentPicture(id uint) error
}

type ImageStore interface {
	Create(image *model.Image) error
	DeleteByIDs(ids []uint) error
}

type LikeStore interface {
	Find(userID, frameID uint) (*model.Like, error)
	FindByUser(userID uint) ([]model.Like, error)
	FindByUserAndGalerie(userID, galerieID uint) ([]model.Like, error)
	CountByFrame(frameID uint) (int64, error)
	Create(like *model.Like) error
	Delete(id uint) error
	DeleteByFrame(frameID uint) error
}
