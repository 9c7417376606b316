package model

type AccessToken struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	AvatarURL  string `json:"avatar_url"`
	IsVerified bool   `json:"is_verified"`
}

type RefreshToken struct {
	Family  string
	Counter uint64
}

type ShortUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

type User struct {
	ShortUser
	Email      string            `json:"email,omitempty"`
	Role       string            `json:"role,omitempty"`
	IsActive   bool              `json:"is_active"`
	IsVerified bool              `json:"is_verified"`
	Services   map[string]string `json:"services,omitempty"`
	CreatedAt  string            `json:"created_at"`
}

type Channel struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type Campaign struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	CreatedBy string `json:"created_by"`

	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
	Rules    string `json:"rules"`

	Budget         float64 `json:"budget"`
	RewardPerKView float64 `json:"reward_per_k_view"`
	MinPayout      float64 `json:"min_payout"`
	MaxPayout      float64 `json:"max_payout"`

	Type      string `json:"type"`
	Category  string `json:"category"`
	Status    string `json:"status"`
	IsPrivate bool   `json:"is_private"`

	Channels []Channel `json:"channels"`

	ParticipantCount int64  `json:"participant_count"`
	MemberStatus     string `json:"member_status,omitempty"`
}

type Post struct {
	ID        string    `json:"id"`
	CreatedAt string    `json:"created_at"`
	Author    ShortUser `json:"author"`

	Content   string   `json:"content"`
	ImageURLs []string `json:"image_urls"`
	VideoURLs []string `json:"video_urls"`

	Likes        int64            `json:"likes"`
	Liked        bool             `json:"liked"`
	Reactions    map[string]int64 `json:"reactions"`
	CommentCount int64            `json:"comment_count"`
}

type Comment struct {
	ID        string    `json:"id"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
	PostID    string    `json:"post_id"`
	Author    ShortUser `json:"author"`
	Content   string    `json:"content"`
}

type Transaction struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"created_at"`
	UserID     string `json:"user_id"`
	CampaignID string `json:"campaign_id,omitempty"`
	Type       string `json:"type"`
	Amount     float64 `json:"amount"`
	Note       string `json:"note"`
}

type CampaignUpdate struct {
	ID         string    `json:"id"`
	CreatedAt  string    `json:"created_at"`
	CampaignID string    `json:"campaign_id"`
	Author     ShortUser `json:"author"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
}

type ChatMessage struct {
	ID         int64     `json:"id"`
	CreatedAt  string    `json:"created_at"`
	CampaignID string    `json:"campaign_id"`
	Channel    string    `json:"channel"`
	Author     ShortUser `json:"author"`
	Content    string    `json:"content"`
}
