package handlers

type PageParam struct {
	Page  string `query:"page"`
	Limit string `query:"limit"`
}

type ListCommentParam struct {
	VideoID string `path:"videoId"`
	Page    string `query:"page"`
	Limit   string `query:"limit"`
}

type AddCommentParam struct {
	VideoID string `path:"videoId"`
	Content string `form:"content" json:"content"`
}

type UpdateCommentParam struct {
	CommentID string `path:"commentId"`
	Content   string `form:"content" json:"content"`
}

type CommentIDParam struct {
	CommentID string `path:"commentId"`
}

type CreateTweetParam struct {
	Content string `form:"content" json:"content"`
}

type ListTweetParam struct {
	UserID string `path:"userId"`
	Page   string `query:"page"`
	Limit  string `query:"limit"`
}

type UpdateTweetParam struct {
	TweetID string `path:"tweetId"`
	Content string `form:"content" json:"content"`
}

type TweetIDParam struct {
	TweetID string `path:"tweetId"`
}

type VideoIDParam struct {
	VideoID string `path:"videoId"`
}
