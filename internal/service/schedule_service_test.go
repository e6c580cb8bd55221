package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/haryan80/interventional-radiology-website/internal/dto"
	"github.com/haryan80/interventional-radiology-website/internal/model"
	"github.com/haryan80/interventional-radiology-website/internal/repository"
)

func setupScheduleTest() (ScheduleService, *mockSpeakerRepo, *mockSessionRepo, *mockScheduleItemRepo) {
	speakerRepo := newMockSpeakerRepo()
	sessionRepo := newMockSessionRepo()
	itemRepo := newMockScheduleItemRepo()
	repo := &repository.Repository{
		Speaker:      speakerRepo,
		Session:      sessionRepo,
		ScheduleItem: itemRepo,
	}
	svc := NewScheduleService(repo, zap.NewNop())
	return svc, speakerRepo, sessionRepo, itemRepo
}

// seedTwoDaySchedule 预置两天各一场次，第一场带一条讲题和一条茶歇
func seedTwoDaySchedule(sessionRepo *mockSessionRepo) {
	day1 := time.Date(2025, 4, 18, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 4, 19, 0, 0, 0, 0, time.UTC)

	_ = sessionRepo.Create(context.Background(), &model.Session{
		Name: "First Session", Date: day1, StartTime: "10:00", EndTime: "12:00",
		Items: []model.ScheduleItem{
			{
				ItemID: "item-talk", Title: "TACE Outcomes", StartTime: "10:00", EndTime: "10:20",
				Speakers: []model.Speaker{{SpeakerID: "spk-1", Name: "Jane Doe"}},
			},
			{ItemID: "item-break", Title: "Coffee Break", StartTime: "10:20", EndTime: "10:40", IsBreak: true},
		},
	})
	_ = sessionRepo.Create(context.Background(), &model.Session{
		Name: "Second Day Session", Date: day2, StartTime: "09:00", EndTime: "11:00",
	})
}

func TestGetPublicSchedule_GroupsByDate(t *testing.T) {
	svc, _, sessionRepo, _ := setupScheduleTest()
	seedTwoDaySchedule(sessionRepo)

	days, err := svc.GetPublicSchedule(context.Background())
	if err != nil {
		t.Fatalf("查询公开日程失败: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("应按日期分成 2 组，实际 %d", len(days))
	}
	if days[0].Date != "2025-04-18" || days[1].Date != "2025-04-19" {
		t.Errorf("日期分组不符: %s / %s", days[0].Date, days[1].Date)
	}
	if days[0].DateDisplay != "Friday, April 18, 2025" {
		t.Errorf("展示日期不符: %q", days[0].DateDisplay)
	}
	if len(days[0].Sessions) != 1 || len(days[0].Sessions[0].Items) != 2 {
		t.Errorf("第一天应有 1 场次 2 日程项: %+v", days[0].Sessions)
	}
}

func TestExportICS_TalksOnlyWithTimezone(t *testing.T) {
	svc, _, sessionRepo, _ := setupScheduleTest()
	seedTwoDaySchedule(sessionRepo)

	ical, err := svc.ExportICS(context.Background())
	if err != nil {
		t.Fatalf("ICS 导出失败: %v", err)
	}

	if !strings.Contains(ical, "BEGIN:VCALENDAR") {
		t.Error("输出应为 iCalendar 文档")
	}
	if !strings.Contains(ical, "SUMMARY:TACE Outcomes") {
		t.Error("讲题应生成 VEVENT")
	}
	if strings.Contains(ical, "Coffee Break") {
		t.Error("茶歇不应生成 VEVENT")
	}
	if !strings.Contains(ical, "item-talk@khcc-conference") {
		t.Error("VEVENT UID 应由日程项 ID 派生")
	}
	if !strings.Contains(ical, "Speakers: Jane Doe") {
		t.Error("描述应包含讲者名单")
	}
	if !strings.Contains(ical, "King Hussein Cancer Center") {
		t.Error("VEVENT 应带会议地点")
	}
}

func TestSchedule_TimeColumnsReadBackWithSeconds(t *testing.T) {
	svc, _, sessionRepo, _ := setupScheduleTest()

	// TIME 列读回是 "HH:MM:SS" 文本，读路径必须能消化
	_ = sessionRepo.Create(context.Background(), &model.Session{
		Name: "First Session", Date: time.Date(2025, 4, 18, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00:00", EndTime: "12:00:00",
		Items: []model.ScheduleItem{
			{ItemID: "item-talk", Title: "TACE Outcomes", StartTime: "10:00:00", EndTime: "10:20:00"},
		},
	})

	days, err := svc.GetPublicSchedule(context.Background())
	if err != nil {
		t.Fatalf("查询公开日程失败: %v", err)
	}
	sess := days[0].Sessions[0]
	if sess.StartTime != "10:00" || sess.EndTime != "12:00" {
		t.Errorf("场次时间应裁剪为 HH:MM，实际 %s-%s", sess.StartTime, sess.EndTime)
	}
	if sess.Items[0].StartTime != "10:00" || sess.Items[0].EndTime != "10:20" {
		t.Errorf("日程项时间应裁剪为 HH:MM，实际 %s-%s", sess.Items[0].StartTime, sess.Items[0].EndTime)
	}

	ical, err := svc.ExportICS(context.Background())
	if err != nil {
		t.Fatalf("带秒时间值不应导致 ICS 导出失败: %v", err)
	}
	if !strings.Contains(ical, "SUMMARY:TACE Outcomes") {
		t.Error("讲题应生成 VEVENT")
	}
}

func TestCreateSession_NormalizesTimes(t *testing.T) {
	svc, _, sessionRepo, _ := setupScheduleTest()

	resp, err := svc.CreateSession(context.Background(), &dto.CreateSessionRequest{
		Name:      "Opening Ceremony",
		Date:      "2025-04-18",
		StartTime: "9:30 AM",
		EndTime:   "10:00",
	})
	if err != nil {
		t.Fatalf("创建场次失败: %v", err)
	}
	if resp.StartTime != "09:30" {
		t.Errorf("开始时间应归一化为 HH:MM，实际 %q", resp.StartTime)
	}
	if len(sessionRepo.sessions) != 1 {
		t.Errorf("场次应落库，实际 %d", len(sessionRepo.sessions))
	}
}

func TestCreateSession_RejectsBadDate(t *testing.T) {
	svc, _, _, _ := setupScheduleTest()

	_, err := svc.CreateSession(context.Background(), &dto.CreateSessionRequest{
		Name:      "Bad",
		Date:      "18/04/2025",
		StartTime: "10:00",
		EndTime:   "11:00",
	})
	if err == nil {
		t.Error("非法日期应被拒绝")
	}
}

func TestCreateItem_UnknownSession(t *testing.T) {
	svc, _, _, _ := setupScheduleTest()

	_, err := svc.CreateItem(context.Background(), &dto.CreateScheduleItemRequest{
		SessionID: "missing",
		Title:     "Orphan Talk",
		StartTime: "10:00",
		EndTime:   "10:20",
	})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("未知场次应返回 ErrSessionNotFound，实际 %v", err)
	}
}

func TestCreateItem_LinksSpeakers(t *testing.T) {
	svc, speakerRepo, sessionRepo, _ := setupScheduleTest()

	session := &model.Session{Name: "S", Date: time.Date(2025, 4, 18, 0, 0, 0, 0, time.UTC), StartTime: "10:00", EndTime: "12:00"}
	_ = sessionRepo.Create(context.Background(), session)
	speaker := &model.Speaker{Name: "Jane Doe"}
	_ = speakerRepo.Create(context.Background(), speaker)

	resp, err := svc.CreateItem(context.Background(), &dto.CreateScheduleItemRequest{
		SessionID:  session.SessionID,
		Title:      "Talk",
		StartTime:  "10:00",
		EndTime:    "10:20",
		SpeakerIDs: []string{speaker.SpeakerID},
	})
	if err != nil {
		t.Fatalf("创建日程项失败: %v", err)
	}
	if len(resp.Speakers) != 1 || resp.Speakers[0].Name != "Jane Doe" {
		t.Errorf("响应应带关联讲者，实际 %+v", resp.Speakers)
	}
}

func TestCreateItem_UnknownSpeaker(t *testing.T) {
	svc, _, sessionRepo, _ := setupScheduleTest()

	session := &model.Session{Name: "S", Date: time.Date(2025, 4, 18, 0, 0, 0, 0, time.UTC), StartTime: "10:00", EndTime: "12:00"}
	_ = sessionRepo.Create(context.Background(), session)

	_, err := svc.CreateItem(context.Background(), &dto.CreateScheduleItemRequest{
		SessionID:  session.SessionID,
		Title:      "Talk",
		StartTime:  "10:00",
		EndTime:    "10:20",
		SpeakerIDs: []string{"no-such-speaker"},
	})
	if !errors.Is(err, ErrSpeakerNotFound) {
		t.Errorf("未知讲者应返回 ErrSpeakerNotFound，实际 %v", err)
	}
}

func TestUpdateItem_ReplaceSpeakerSet(t *testing.T) {
	svc, speakerRepo, sessionRepo, itemRepo := setupScheduleTest()

	session := &model.Session{Name: "S", Date: time.Date(2025, 4, 18, 0, 0, 0, 0, time.UTC), StartTime: "10:00", EndTime: "12:00"}
	_ = sessionRepo.Create(context.Background(), session)
	a := &model.Speaker{Name: "A"}
	b := &model.Speaker{Name: "B"}
	_ = speakerRepo.Create(context.Background(), a)
	_ = speakerRepo.Create(context.Background(), b)

	item := &model.ScheduleItem{
		SessionID: session.SessionID, Title: "Talk", StartTime: "10:00", EndTime: "10:20",
		Speakers: []model.Speaker{*a},
	}
	_ = itemRepo.Create(context.Background(), item)

	ids := []string{b.SpeakerID}
	resp, err := svc.UpdateItem(context.Background(), item.ItemID, &dto.UpdateScheduleItemRequest{
		SpeakerIDs: &ids,
	})
	if err != nil {
		t.Fatalf("更新日程项失败: %v", err)
	}
	if len(resp.Speakers) != 1 || resp.Speakers[0].Name != "B" {
		t.Errorf("讲者集合应被整体替换，实际 %+v", resp.Speakers)
	}
}

func TestDeleteSession_NotFound(t *testing.T) {
	svc, _, _, _ := setupScheduleTest()

	if err := svc.DeleteSession(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("删除不存在的场次应返回 ErrSessionNotFound，实际 %v", err)
	}
}
