package handlers

type ListVideosParam struct {
	Page     string `query:"page"`
	Limit    string `query:"limit"`
	Query    string `query:"query"`
	SortBy   string `query:"sortBy"`
	SortType string `query:"sortType"`
	UserID   string `query:"userId"`
}

type PublishVideoParam struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
}

type VideoIDParam struct {
	VideoID string `path:"videoId"`
}

type UpdateVideoParam struct {
	VideoID     string  `path:"videoId"`
	Title       *string `form:"title" json:"title"`
	Description *string `form:"description" json:"description"`
}
