package models

type CheckRequest struct {
	URL string `json:"url" example:"https://www.youtube.com/watch?v=dQw4w9WgXcQ"`
}

type CheckResponse struct {
	Title     string `json:"title" example:"Rick Astley - Never Gonna Give You Up"`
	Length    int    `json:"length" example:"213"` // seconds, 0 when unknown
	Thumbnail string `json:"thumbnail" example:"https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg"`
	Available bool   `json:"available" example:"true"`
	IsShort   bool   `json:"isShort" example:"false"`
}

type DownloadRequest struct {
	URL     string `json:"url" example:"https://youtu.be/dQw4w9WgXcQ"`
	Format  string `json:"format" binding:"omitempty,oneof=audio video" example:"audio"`
	Quality string `json:"quality" example:"720p"`
	Bitrate string `json:"bitrate" binding:"omitempty,numeric" example:"192"`
}

// ErrorResponse is returned by every endpoint on failure. Available is only
// set by /check.
type ErrorResponse struct {
	Error     string `json:"error" example:"Could not extract video ID"`
	Code      string `json:"code" example:"INVALID_URL"`
	Details   string `json:"details,omitempty"`
	Available *bool  `json:"available,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type HealthResponse struct {
	Status    string            `json:"status" example:"healthy"`
	Timestamp string            `json:"timestamp"`
	Version   string            `json:"version" example:"1.0.0"`
	Services  map[string]string `json:"services,omitempty"`
}
