package model

type CreateTransactionRequest struct {
	UserID     string  `json:"user_id"`
	CampaignID string  `json:"campaign_id"`
	Type       string  `json:"type"`
	Amount     float64 `json:"amount"`
	Note       string  `json:"note"`
}

type CreateTransactionResponse struct {
	ID string `json:"id"`
}
