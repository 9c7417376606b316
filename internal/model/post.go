package model

type GetPostsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetPostsResponse struct {
	Posts []Post `json:"posts"`
}

type GetPostRequest struct {
	ID            string `json:"id"`
	CommentOffset int    `json:"comment_offset"`
	CommentLimit  int    `json:"comment_limit"`
}

type GetPostResponse struct {
	Post     Post      `json:"post"`
	Comments []Comment `json:"comments"`
}

type LikePostRequest struct {
	PostID string `json:"post_id"`
}

type LikePostResponse struct {
	Liked bool `json:"liked"`
}

type ReactPostRequest struct {
	PostID string `json:"post_id"`
	Emoji  string `json:"emoji"`
}

type ReactPostResponse struct{}

type CommentPostRequest struct {
	PostID  string `json:"post_id"`
	Content string `json:"content"`
}

type CommentPostResponse struct {
	ID string `json:"id"`
}

type UpdateCommentRequest struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

type UpdateCommentResponse struct{}

type DeleteCommentRequest struct {
	ID string `json:"id"`
}

type DeleteCommentResponse struct{}

// Admin operations

type CreatePostRequest struct {
	Content   string   `json:"content"`
	ImageURLs []string `json:"image_urls"`
	VideoURLs []string `json:"video_urls"`
}

type CreatePostResponse struct {
	ID string `json:"id"`
}

type DeletePostRequest struct {
	ID string `json:"id"`
}

type DeletePostResponse struct{}
