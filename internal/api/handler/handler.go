package handler

import "github.com/haryan80/interventional-radiology-website/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Speaker      *SpeakerHandler
	Schedule     *ScheduleHandler
	Registration *RegistrationHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Speaker:      NewSpeakerHandler(svc.Speaker),
		Schedule:     NewScheduleHandler(svc.Schedule),
		Registration: NewRegistrationHandler(svc.Registration),
		Export:       NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
