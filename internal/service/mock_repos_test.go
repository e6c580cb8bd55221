package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/haryan80/interventional-radiology-website/internal/model"
)

// ── Mock SpeakerRepository ──
//
// 用切片保持创建顺序，模拟 created_at ASC, speaker_id ASC 的稳定排序

type mockSpeakerRepo struct {
	speakers []*model.Speaker
	nextID   int
}

func newMockSpeakerRepo() *mockSpeakerRepo {
	return &mockSpeakerRepo{}
}

func (m *mockSpeakerRepo) Create(_ context.Context, speaker *model.Speaker) error {
	if speaker.SpeakerID == "" {
		m.nextID++
		speaker.SpeakerID = fmt.Sprintf("spk-%03d", m.nextID)
	}
	speaker.CreatedAt = time.Now()
	m.speakers = append(m.speakers, speaker)
	return nil
}

func (m *mockSpeakerRepo) GetByID(_ context.Context, id string) (*model.Speaker, error) {
	for _, s := range m.speakers {
		if s.SpeakerID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSpeakerRepo) FindByNameIExact(_ context.Context, name string) (*model.Speaker, error) {
	for _, s := range m.speakers {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSpeakerRepo) FindByNameIContains(_ context.Context, substr string) (*model.Speaker, error) {
	lower := strings.ToLower(substr)
	for _, s := range m.speakers {
		if strings.Contains(strings.ToLower(s.Name), lower) {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSpeakerRepo) List(_ context.Context, visibleOnly bool) ([]model.Speaker, error) {
	var result []model.Speaker
	for _, s := range m.speakers {
		if visibleOnly && !s.IsVisible {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSpeakerRepo) Update(_ context.Context, speaker *model.Speaker) error {
	for i, s := range m.speakers {
		if s.SpeakerID == speaker.SpeakerID {
			m.speakers[i] = speaker
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockSpeakerRepo) UpdateOrder(_ context.Context, id string, order int) error {
	for _, s := range m.speakers {
		if s.SpeakerID == id {
			s.DisplayOrder = order
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockSpeakerRepo) Delete(_ context.Context, id string) error {
	for i, s := range m.speakers {
		if s.SpeakerID == id {
			m.speakers = append(m.speakers[:i], m.speakers[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockSpeakerRepo) MaxDisplayOrder(_ context.Context) (int, error) {
	max := -1
	for _, s := range m.speakers {
		if s.DisplayOrder > max {
			max = s.DisplayOrder
		}
	}
	return max, nil
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions []*model.Session
	nextID   int
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{}
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.Session) error {
	if session.SessionID == "" {
		m.nextID++
		session.SessionID = fmt.Sprintf("sess-%03d", m.nextID)
	}
	m.sessions = append(m.sessions, session)
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	for _, s := range m.sessions {
		if s.SessionID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) FindByNaturalKey(_ context.Context, name string, date time.Time, startTime string) (*model.Session, error) {
	for _, s := range m.sessions {
		if s.Name == name && s.Date.Equal(date) && s.StartTime == startTime {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) List(_ context.Context) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSessionRepo) ListWithItems(_ context.Context) ([]model.Session, error) {
	return m.List(context.Background())
}

func (m *mockSessionRepo) Update(_ context.Context, session *model.Session) error {
	for i, s := range m.sessions {
		if s.SessionID == session.SessionID {
			m.sessions[i] = session
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) Delete(_ context.Context, id string) error {
	for i, s := range m.sessions {
		if s.SessionID == id {
			m.sessions = append(m.sessions[:i], m.sessions[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) DeleteAll(_ context.Context) error {
	m.sessions = nil
	return nil
}

// ── Mock ScheduleItemRepository ──

type mockScheduleItemRepo struct {
	items  []*model.ScheduleItem
	nextID int
}

func newMockScheduleItemRepo() *mockScheduleItemRepo {
	return &mockScheduleItemRepo{}
}

func (m *mockScheduleItemRepo) Create(_ context.Context, item *model.ScheduleItem) error {
	if item.ItemID == "" {
		m.nextID++
		item.ItemID = fmt.Sprintf("item-%03d", m.nextID)
	}
	m.items = append(m.items, item)
	return nil
}

func (m *mockScheduleItemRepo) GetByID(_ context.Context, id string) (*model.ScheduleItem, error) {
	for _, it := range m.items {
		if it.ItemID == id {
			return it, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleItemRepo) FindByNaturalKey(_ context.Context, sessionID, title, startTime string) (*model.ScheduleItem, error) {
	for _, it := range m.items {
		if it.SessionID == sessionID && it.Title == title && it.StartTime == startTime {
			return it, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleItemRepo) Update(_ context.Context, item *model.ScheduleItem) error {
	for i, it := range m.items {
		if it.ItemID == item.ItemID {
			m.items[i] = item
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockScheduleItemRepo) Delete(_ context.Context, id string) error {
	for i, it := range m.items {
		if it.ItemID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockScheduleItemRepo) DeleteAll(_ context.Context) error {
	m.items = nil
	return nil
}

func (m *mockScheduleItemRepo) AddSpeaker(_ context.Context, item *model.ScheduleItem, speaker *model.Speaker) error {
	for _, sp := range item.Speakers {
		if sp.SpeakerID == speaker.SpeakerID {
			return nil // 已关联时幂等
		}
	}
	item.Speakers = append(item.Speakers, *speaker)
	return nil
}

func (m *mockScheduleItemRepo) ReplaceSpeakers(_ context.Context, item *model.ScheduleItem, speakers []model.Speaker) error {
	item.Speakers = speakers
	return nil
}

func (m *mockScheduleItemRepo) ListSpeakers(_ context.Context, itemID string) ([]model.Speaker, error) {
	for _, it := range m.items {
		if it.ItemID == itemID {
			return it.Speakers, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock RegistrationRepository ──

type mockRegistrationRepo struct {
	regs   []*model.Registration
	nextID int
}

func newMockRegistrationRepo() *mockRegistrationRepo {
	return &mockRegistrationRepo{}
}

func (m *mockRegistrationRepo) Create(_ context.Context, reg *model.Registration) error {
	if reg.RegistrationID == "" {
		m.nextID++
		reg.RegistrationID = fmt.Sprintf("reg-%03d", m.nextID)
	}
	reg.CreatedAt = time.Now()
	m.regs = append(m.regs, reg)
	return nil
}

func (m *mockRegistrationRepo) GetByID(_ context.Context, id string) (*model.Registration, error) {
	for _, r := range m.regs {
		if r.RegistrationID == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRegistrationRepo) List(_ context.Context, offset, limit int) ([]model.Registration, int64, error) {
	total := int64(len(m.regs))
	if offset >= len(m.regs) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(m.regs) {
		end = len(m.regs)
	}
	var result []model.Registration
	for _, r := range m.regs[offset:end] {
		result = append(result, *r)
	}
	return result, total, nil
}

func (m *mockRegistrationRepo) ListAll(_ context.Context) ([]model.Registration, error) {
	var result []model.Registration
	for _, r := range m.regs {
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRegistrationRepo) Delete(_ context.Context, id string) error {
	for i, r := range m.regs {
		if r.RegistrationID == id {
			m.regs = append(m.regs[:i], m.regs[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock AdminRepository ──

type mockAdminRepo struct {
	admins map[string]*model.AdminUser
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{admins: make(map[string]*model.AdminUser)}
}

func (m *mockAdminRepo) Create(_ context.Context, admin *model.AdminUser) error {
	if admin.AdminID == "" {
		admin.AdminID = "admin-" + admin.Username
	}
	m.admins[admin.AdminID] = admin
	return nil
}

func (m *mockAdminRepo) GetByID(_ context.Context, id string) (*model.AdminUser, error) {
	if a, ok := m.admins[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) GetByUsername(_ context.Context, username string) (*model.AdminUser, error) {
	for _, a := range m.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
