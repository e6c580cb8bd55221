package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/haryan80/interventional-radiology-website/config"
	"github.com/haryan80/interventional-radiology-website/internal/dto"
	"github.com/haryan80/interventional-radiology-website/internal/repository"
	"github.com/haryan80/interventional-radiology-website/pkg/mail"
)

func setupRegistrationTest() (RegistrationService, *mockRegistrationRepo) {
	regRepo := newMockRegistrationRepo()
	repo := &repository.Repository{Registration: regRepo}
	// 邮件未启用：Send 直接成功，报名流程不依赖 SMTP
	mailer := mail.NewSender(&config.MailConfig{Enabled: false}, zap.NewNop())
	svc := NewRegistrationService(repo, mailer, zap.NewNop())
	return svc, regRepo
}

func validRegistration() *dto.CreateRegistrationRequest {
	return &dto.CreateRegistrationRequest{
		FullName:     "Lina Haddad",
		Email:        "Lina.Haddad@example.com",
		EmailConfirm: "lina.haddad@example.com",
		Institution:  "Jordan University Hospital",
		AttendeeType: "specialist",
	}
}

func TestRegistrationCreate_Success(t *testing.T) {
	svc, regRepo := setupRegistrationTest()

	resp, err := svc.Create(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("报名应成功: %v", err)
	}
	if resp.Email != "lina.haddad@example.com" {
		t.Errorf("邮箱应归一化为小写，实际 %q", resp.Email)
	}
	if len(regRepo.regs) != 1 {
		t.Errorf("报名应落库，实际 %d 条", len(regRepo.regs))
	}
}

func TestRegistrationCreate_EmailMismatch(t *testing.T) {
	svc, regRepo := setupRegistrationTest()

	req := validRegistration()
	req.EmailConfirm = "other@example.com"

	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, ErrEmailMismatch) {
		t.Errorf("两次邮箱不一致应返回 ErrEmailMismatch，实际 %v", err)
	}
	if len(regRepo.regs) != 0 {
		t.Error("校验失败不应落库")
	}
}

func TestRegistrationCreate_EmailCompareIgnoresCase(t *testing.T) {
	svc, _ := setupRegistrationTest()

	req := validRegistration()
	req.Email = "LINA.HADDAD@EXAMPLE.COM"
	req.EmailConfirm = "lina.haddad@example.com"

	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Errorf("邮箱比对应忽略大小写: %v", err)
	}
}

func TestRegistrationList_Pagination(t *testing.T) {
	svc, _ := setupRegistrationTest()

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(context.Background(), validRegistration()); err != nil {
			t.Fatalf("报名应成功: %v", err)
		}
	}

	items, total, err := svc.List(context.Background(), &dto.PaginationRequest{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 5 {
		t.Errorf("总数应为 5，实际 %d", total)
	}
	if len(items) != 2 {
		t.Errorf("第二页应有 2 条，实际 %d", len(items))
	}
}

func TestRegistrationGetDelete_NotFound(t *testing.T) {
	svc, _ := setupRegistrationTest()

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrRegistrationNotFound) {
		t.Errorf("查询不存在的报名应返回 ErrRegistrationNotFound，实际 %v", err)
	}
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrRegistrationNotFound) {
		t.Errorf("删除不存在的报名应返回 ErrRegistrationNotFound，实际 %v", err)
	}
}
