package repository

import (
	"galerie-server/internal/model"

	"gorm.io/gorm"
)

type FrameRepository struct {
	db *gorm.DB
}

func NewFrameRepository(db *gorm.DB) FrameStore {
	return &FrameRepository{db: db}
}

func (r *FrameRepository) withPictures() *gorm.DB {
	return r.db.
		Preload("GaleriePictures").
		Preload("GaleriePictures.OriginalImage").
		Preload("GaleriePictures.CroppedImage").
		Preload("GaleriePictures.PendingImage")
}

func (r *FrameRepository) FindByID(id uint) (*model.Frame, error) {
	var frame model.Frame
	if err := r.withPictures().First(&frame, id).Error; err != nil {
		return nil, err
	}
	return &frame, nil
}

func (r *FrameRepository) FindByGalerie(galerieID uint) ([]model.Frame, error) {
	var frames []model.Frame
	if err := r.withPictures().Where("galerie_id = ?", galerieID).
		Find(&frames).Error; err != nil {
		return nil, err
	}
	return frames, nil
}

func (r *FrameRepository) FindByUser(userID uint) ([]model.Frame, error) {
	var frames []model.Frame
	if err := r.withPictures().Where("user_id = ?", userID).
		Find(&frames).Error; err != nil {
		return nil, err
	}
	return frames, nil
}

func (r *FrameRepository) FindByGalerieAndUser(galerieID, userID uint) ([]model.Frame, error) {
	var frames []model.Frame
	if err := r.withPictures().Where("galerie_id = ? AND user_id = ?", galerieID, userID).
		Find(&frames).Error; err != nil {
		return nil, err
	}
	return frames, nil
}

func (r *FrameRepository) Create(frame *model.Frame) error {
	return r.db.Create(frame).Error
}

func (r *FrameRepository) Delete(id uint) error {
	return r.db.Delete(&model.Frame{}, id).Error
}

func (r *FrameRepository) AdjustLikes(id uint, delta int64) error {
	return r.db.Model(&model.Frame{}).Where("id = ?", id).
		UpdateColumn("num_of_likes", gorm.Expr("num_of_likes + ?", delta)).Error
}

func (r *FrameRepository) FindPictureByID(id uint) (*model.GaleriePicture, error) {
	var picture model.GaleriePicture
	if err := r.db.
		Preload("OriginalImage").Preload("CroppedImage").Preload("PendingImage").
		First(&picture, id).Error; err != nil {
		return nil, err
	}
	return &picture, nil
}

func (r *FrameRepository) DeletePicture(id uint) error {
	return r.db.Delete(&model.GaleriePicture{}, id).Error
}

func (r *FrameRepository) ClearCurrentPicture(galerieID uint) error {
	return r.db.Model(&model.GaleriePicture{}).
		Where("current = ? AND frame_id IN (?)", true,
			r.db.Model(&model.Frame{}).Select("id").Where("galerie_id = ?", galerieID)).
		Update("current", false).Error
}

func (r *FrameRepository) SetCurrentPicture(id uint) error {
	return r.db.Model(&model.GaleriePicture{}).Where("id = ?", id).
		Update("current", true).Error
}

type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageStore {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) Create(image *model.Image) error {
	return r.db.Create(image).Error
}

func (r *ImageRepository) DeleteByIDs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Where("id IN ?", ids).Delete(&model.Image{}).Error
}

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeStore {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) Find(userID, frameID uint) (*model.Like, error) {
	var like model.Like
	if err := r.db.Where("user_id = ? AND frame_id = ?", userID, frameID).
		First(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *LikeRepository) FindByUser(userID uint) ([]model.Like, error) {
	var likes []model.Like
	if err := r.db.Where("user_id = ?", userID).Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}

func (r *LikeRepository) FindByUserAndGalerie(userID, galerieID uint) ([]model.Like, error) {
	var likes []model.Like
	if err := r.db.
		Joins("JOIN frames ON frames.id = likes.frame_id").
		Where("likes.user_id = ? AND frames.galerie_id = ?", userID, galerieID).
		Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}

func (r *LikeRepository) CountByFrame(frameID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Like{}).Where("frame_id = ?", frameID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *LikeRepository) Create(like *model.Like) error {
	return r.db.Create(like).Error
}

func (r *LikeRepository) Delete(id uint) error {
	return r.db.Delete(&model.Like{}, id).Error
}

func (r *LikeRepository) DeleteByFrame(frameID uint) error {
	return r.db.Where("frame_id = ?", frameID).Delete(&model.Like{}).Error
}
