package dto

type RegisterRequest struct {
	Pseudonym string `json:"pseudonym"`
	UserName  string `json:"user_name" binding:"required"`
	Email     string `json:"email"`
	Password  string `json:"password" binding:"required"`
	BetaKey   string `json:"beta_key" binding:"required"`
}

type LoginRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type DeleteAccountRequest struct {
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation" binding:"required"`
}

type CreateGalerieRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type CreateInvitationRequest struct {
	NumOfInvits *int64 `json:"num_of_invits"`
	// TTLSeconds is the validity window; null means the invitation
	// never times out.
	TTLSeconds *int64 `json:"ttl_seconds"`
}

type SubscribeRequest struct {
	Code string `json:"code" binding:"required"`
}

type UpdateGalerieRoleRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

type BlacklistMemberRequest struct {
	Reason string `json:"reason"`
}

// PictureUploadRequest carries one picture's renditions, base64-encoded.
type PictureUploadRequest struct {
	Original []byte `json:"original" binding:"required"`
	Cropped  []byte `json:"cropped" binding:"required"`
	Pending  []byte `json:"pending" binding:"required"`
	Format   string `json:"format" binding:"required"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

type PostFrameRequest struct {
	Description string                 `json:"description"`
	Pictures    []PictureUploadRequest `json:"pictures" binding:"required"`
}

type SubmitTicketRequest struct {
	Header string `json:"header" binding:"required"`
	Body   string `json:"body" binding:"required"`
}

type BlacklistUserRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

type UpdateUserRoleRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

type CreateBetaKeyRequest struct {
	Email string `json:"email"`
}
