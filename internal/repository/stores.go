package repository

import "gorm.io/gorm"

// Stores bundles every entity store over one gorm handle so a whole
// cascade can run against a single transaction.
type Stores struct {
	db *gorm.DB

	User           UserStore
	ProfilePicture ProfilePictureStore
	Ticket         TicketStore
	BetaKey        BetaKeyStore
	Galerie        GalerieStore
	Frame          FrameStore
	Image          ImageStore
	Like           LikeStore
	Invitation     InvitationStore
	BlackList      BlackListStore
	Notification   NotificationStore
}

func NewStores(db *gorm.DB) Stores {
	return Stores{
		db:             db,
		User:           NewUserRepository(db),
		ProfilePicture: NewProfilePictureRepository(db),
		Ticket:         NewTicketRepository(db),
		BetaKey:        NewBetaKeyRepository(db),
		Galerie:        NewGalerieRepository(db),
		Frame:          NewFrameRepository(db),
		Image:          NewImageRepository(db),
		Like:           NewLikeRepository(db),
		Invitation:     NewInvitationRepository(db),
		BlackList:      NewBlackListRepository(db),
		Notification:   NewNotificationRepository(db),
	}
}

// Transaction runs fn against transaction-scoped stores. A non-nil error
// from fn rolls back every row change made inside it.
func (s Stores) Transaction(fn func(tx Stores) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewStores(tx))
	})
}
