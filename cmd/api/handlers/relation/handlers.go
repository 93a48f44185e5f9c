package handlers

type ChannelParam struct {
	ChannelID string `path:"channelId"`
	Page      string `query:"page"`
	Limit     string `query:"limit"`
}

type SubscriberParam struct {
	SubscriberID string `path:"subscriberId"`
	Page         string `query:"page"`
	Limit        string `query:"limit"`
}
