package model

type Stats struct {
	TotalUsers   int `json:"totalUsers"`
	TotalVideos  int `json:"totalVideos"`
	RecentUsers  int `json:"recentUsers"`
	RecentVideos int `json:"recentVideos"`
}
