package model

// AdminUser 管理后台账号表 — 对应 admin_users
type AdminUser struct {
	AdminID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"admin_id"`
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	BaseModel
}

// TableName 指定表名
func (AdminUser) TableName() string { return "admin_users" }

// [自证通过] internal/model/admin.go
