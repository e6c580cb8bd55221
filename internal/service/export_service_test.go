package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/haryan80/interventional-radiology-website/internal/model"
	"github.com/haryan80/interventional-radiology-website/internal/repository"
)

func TestExportRegistrations_ProducesValidWorkbook(t *testing.T) {
	regRepo := newMockRegistrationRepo()
	_ = regRepo.Create(context.Background(), &model.Registration{
		FullName:     "Lina Haddad",
		Email:        "lina@example.com",
		Institution:  "Jordan University Hospital",
		AttendeeType: "specialist",
	})
	_ = regRepo.Create(context.Background(), &model.Registration{
		FullName:     "Omar Nassar",
		Email:        "omar@example.com",
		Institution:  "KHCC",
		AttendeeType: "trainee",
	})

	svc := NewExportService(&repository.Repository{Registration: regRepo}, zap.NewNop())

	data, filename, err := svc.ExportRegistrations(context.Background())
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if !strings.HasPrefix(filename, "registrations_") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名不符: %q", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Registrations")
	if err != nil {
		t.Fatalf("读取工作表失败: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("应有表头加两条数据共 3 行，实际 %d", len(rows))
	}
	if rows[0][0] != "Full Name" || rows[0][1] != "Email" {
		t.Errorf("表头不符: %v", rows[0])
	}
	if rows[1][0] != "Lina Haddad" || rows[2][0] != "Omar Nassar" {
		t.Errorf("数据行不符: %v / %v", rows[1], rows[2])
	}
}

func TestExportRegistrations_EmptyList(t *testing.T) {
	svc := NewExportService(&repository.Repository{Registration: newMockRegistrationRepo()}, zap.NewNop())

	data, _, err := svc.ExportRegistrations(context.Background())
	if err != nil {
		t.Fatalf("空表导出也应成功: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows("Registrations")
	if len(rows) != 1 {
		t.Errorf("空表应只有表头行，实际 %d 行", len(rows))
	}
}
