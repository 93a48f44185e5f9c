package handlers

type RegisterParam struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	FullName string `form:"fullName" json:"fullName"`
	Password string `form:"password" json:"password"`
}

type ChannelParam struct {
	Username string `path:"username"`
}

type PageParam struct {
	Page  string `query:"page"`
	Limit string `query:"limit"`
}
