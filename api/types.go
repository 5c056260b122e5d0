package api

import (
	as "github.com/pixeltube-cli/pixeltube/activitystreams"
)

type videoList struct {
	Videos []video  `json:"videos"`
	Total  as.Count `json:"total"`
}

type channelList struct {
	Channels []channel `json:"channels"`
	Total    as.Count  `json:"total"`
}

type video struct {
	ID          string   `json:"id"`
	UUID        string   `json:"uuid"`
	Title       string   `json:"title"`
	Thumbnail   string   `json:"thumbnailUrl"`
	Duration    as.Count `json:"duration"`
	Views       as.Count `json:"views"`
	PublishedAt string   `json:"publishedAt"`
	Channel     channel  `json:"channel"`
}

type channel struct {
	Username    string   `json:"username"`
	DisplayName string   `json:"displayName"`
	Avatar      string   `json:"avatarUrl"`
	Followers   as.Count `json:"followersCount"`
}
