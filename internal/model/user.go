package model

type GetMeRequest struct{}

type GetMeResponse User

type UpdateMeRequest struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

type UpdateMeResponse struct {
	User User `json:"user"`
}

type GetJoinedCampaignsRequest struct{}

type JoinedCampaign struct {
	Campaign Campaign `json:"campaign"`
	Status   string   `json:"status"`
	JoinedAt string   `json:"joined_at"`
}

type GetJoinedCampaignsResponse struct {
	Campaigns []JoinedCampaign `json:"campaigns"`
}

type GetMyTransactionsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetMyTransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
	TotalEarning float64       `json:"total_earning"`
}

// Admin operations

type GetUsersRequest struct {
	Q      string `json:"q"`
	Role   string `json:"role"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetUsersResponse struct {
	Users []User `json:"users"`
}

type UpdateUserRequest struct {
	ID         string `json:"id"`
	Role       string `json:"role"`
	IsActive   *bool  `json:"is_active"`
	IsVerified *bool  `json:"is_verified"`
}

type UpdateUserResponse struct {
	User User `json:"user"`
}

type DeleteUserRequest struct {
	ID string `json:"id"`
}

type DeleteUserResponse struct{}
