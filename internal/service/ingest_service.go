package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/haryan80/interventional-radiology-website/config"
	"github.com/haryan80/interventional-radiology-website/internal/model"
	"github.com/haryan80/interventional-radiology-website/internal/repository"
	"github.com/haryan80/interventional-radiology-website/pkg/extraction"
)

// conferenceName 兜底简介与确认邮件引用的大会名称
const conferenceName = "First KHCC Interventional Oncology Conference 2025"

// Extractor 讲者资料抽取能力
// 由 pkg/extraction 的 OpenAI 客户端实现，测试中以 mock 替代
type Extractor interface {
	Extract(ctx context.Context, req extraction.Request) (extraction.Fields, error)
}

// IngestReport 导入批处理结果统计
type IngestReport struct {
	Groups  int // 识别出的讲者分组数
	Created int // 新建讲者数
	Updated int // 更新讲者数
	Photos  int // 成功落盘的照片数
}

// SpeakerIngestService 讲者资料导入批处理
//
// 三趟流水：
//   1. 分组：按文件名推导讲者名，归入 photo / cv / bio 三个槽位
//   2. 抽取：bio 文件优先送抽取服务，字段缺口再用 cv 文件补
//   3. 入库：按枚举序 get-or-create 讲者，只回填空字段，照片拷贝入 media
//
// 任何单文件失败只影响该文件，整个批次永不中止（幂等重跑设计）。
type SpeakerIngestService interface {
	Run(ctx context.Context) (*IngestReport, error)
}

type speakerIngestService struct {
	cfg       *config.Config
	repo      *repository.Repository
	extractor Extractor
	logger    *zap.Logger
}

// NewSpeakerIngestService 创建 SpeakerIngestService 实例
func NewSpeakerIngestService(
	cfg *config.Config,
	repo *repository.Repository,
	extractor Extractor,
	logger *zap.Logger,
) SpeakerIngestService {
	return &speakerIngestService{
		cfg:       cfg,
		repo:      repo,
		extractor: extractor,
		logger:    logger,
	}
}

// ── 文件名解析 ──

var (
	filenamePrefixRe = regexp.MustCompile(`(?i)^((dr|prof)\.?\s+|cv\s+|\d+\s+)`)
	filenameSuffixRe = regexp.MustCompile(`(?i)(\s+(cv|biography|bio|photo|picture)\b|\s*\d+).*$`)
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".jfif"}

// extractNameFromFilename 从文件名推导讲者名
// 下划线先归一为空格，再去掉常见前缀（敬称、CV、前导数字）
// 与后缀（CV、bio、photo、尾随数字）
func extractNameFromFilename(filename string) string {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name = strings.ReplaceAll(name, "_", " ")
	name = filenamePrefixRe.ReplaceAllString(name, "")
	name = filenameSuffixRe.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

func isImageFile(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// speakerGroup 同一讲者名下归组的文件槽位
type speakerGroup struct {
	name      string
	photoFile string
	cvFile    string
	bioFile   string
}

// slotFile 按文件名子串判定槽位：photo / cv / bio
func (g *speakerGroup) slotFile(filename, path string) {
	lower := strings.ToLower(filename)
	switch {
	case strings.Contains(lower, "photo") || isImageFile(lower):
		g.photoFile = path
	case strings.Contains(lower, "cv") || strings.Contains(lower, "curriculum"):
		g.cvFile = path
	case strings.Contains(lower, "bio") || strings.Contains(lower, "biography"):
		g.bioFile = path
	}
}

// ── 批处理入口 ──

func (s *speakerIngestService) Run(ctx context.Context) (*IngestReport, error) {
	groups, err := s.groupFiles()
	if err != nil {
		return nil, err
	}

	report := &IngestReport{Groups: len(groups)}

	// 抽取服务不可用时整批降级为空字段（只警告一次）
	extractionAvailable := true

	for idx, group := range groups {
		s.logger.Info("处理讲者分组",
			zap.String("name", group.name),
			zap.Int("index", idx),
		)

		var fields extraction.Fields
		if extractionAvailable {
			fields, extractionAvailable = s.extractGroupFields(ctx, group)
		}

		if err := s.upsertSpeaker(ctx, idx, group, fields, report); err != nil {
			// 单组入库失败记录后继续，不中止整批
			s.logger.Error("讲者入库失败",
				zap.String("name", group.name),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("讲者导入完成",
		zap.Int("groups", report.Groups),
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("photos", report.Photos),
	)

	return report, nil
}

// groupFiles 分组趟：扫描资料目录，按推导名归组
// os.ReadDir 返回按文件名排序的结果，枚举序稳定可复现
func (s *speakerIngestService) groupFiles() ([]*speakerGroup, error) {
	entries, err := os.ReadDir(s.cfg.Ingest.MaterialDir)
	if err != nil {
		return nil, fmt.Errorf("读取资料目录失败: %w", err)
	}

	skip := make(map[string]bool, len(s.cfg.Ingest.SkipNames))
	for _, n := range s.cfg.Ingest.SkipNames {
		skip[strings.ToLower(n)] = true
	}

	byName := make(map[string]*speakerGroup)
	var order []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		filename := entry.Name()
		name := extractNameFromFilename(filename)
		if name == "" || skip[strings.ToLower(name)] {
			s.logger.Debug("跳过非讲者文件", zap.String("file", filename))
			continue
		}

		group, ok := byName[name]
		if !ok {
			group = &speakerGroup{name: name}
			byName[name] = group
			order = append(order, name)
		}
		group.slotFile(filename, filepath.Join(s.cfg.Ingest.MaterialDir, filename))
	}

	groups := make([]*speakerGroup, 0, len(order))
	for _, name := range order {
		groups = append(groups, byName[name])
	}
	return groups, nil
}

// extractGroupFields 抽取趟：bio 文件优先，字段缺口再用 cv 文件补
// 先写入者胜：已有非空字段不被后续来源覆盖
// 第二返回值为 false 表示抽取服务不可用（缺 API Key），整批降级
func (s *speakerIngestService) extractGroupFields(ctx context.Context, group *speakerGroup) (extraction.Fields, bool) {
	var combined extraction.Fields

	if group.bioFile != "" {
		fields, available := s.extractFile(ctx, group.bioFile, extraction.RoleBio, group.name)
		if !available {
			return combined, false
		}
		combined = mergeFields(combined, fields)
	}

	if group.cvFile != "" && (combined.Title == "" || combined.Institution == "" || combined.Bio == "") {
		fields, available := s.extractFile(ctx, group.cvFile, extraction.RoleCV, group.name)
		if !available {
			return combined, false
		}
		combined = mergeFields(combined, fields)
	}

	return combined, true
}

// extractFile 送单个文件抽取；图片文件绝不送抽取
func (s *speakerIngestService) extractFile(ctx context.Context, path, role, name string) (extraction.Fields, bool) {
	if isImageFile(path) {
		return extraction.Fields{}, true
	}

	content, err := os.ReadFile(path)
	if err != nil {
		s.logger.Warn("读取文件失败，跳过抽取", zap.String("file", path), zap.Error(err))
		return extraction.Fields{}, true
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	fields, err := s.extractor.Extract(ctx, extraction.Request{
		Content:     content,
		ContentType: contentType,
		Role:        role,
		SpeakerName: name,
	})
	if err != nil {
		if errors.Is(err, extraction.ErrMissingAPIKey) {
			s.logger.Warn("未配置抽取服务 API Key，本批次降级为空字段")
			return extraction.Fields{}, false
		}
		// 单文件抽取失败：记日志、置空、继续
		s.logger.Warn("抽取失败，字段置空",
			zap.String("file", path),
			zap.Error(err),
		)
		return extraction.Fields{}, true
	}

	return fields, true
}

// mergeFields 先写入者胜的字段合并：existing 非空字段永不被覆盖
func mergeFields(existing, incoming extraction.Fields) extraction.Fields {
	if existing.Title == "" {
		existing.Title = incoming.Title
	}
	if existing.Institution == "" {
		existing.Institution = incoming.Institution
	}
	if existing.Bio == "" {
		existing.Bio = incoming.Bio
	}
	return existing
}

// placeholderBio 兜底简介
func placeholderBio(name string) string {
	return fmt.Sprintf("Distinguished speaker %s will be presenting at the %s.", name, conferenceName)
}

// upsertSpeaker 入库趟：按名 get-or-create，只回填空字段
// 枚举序仅赋给新建讲者的 display_order；既有讲者的人工排序不被导入重跑冲掉
func (s *speakerIngestService) upsertSpeaker(ctx context.Context, idx int, group *speakerGroup, fields extraction.Fields, report *IngestReport) error {
	speaker, err := s.repo.Speaker.FindByNameIExact(ctx, group.name)
	created := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		speaker = &model.Speaker{
			Name:         group.name,
			DisplayOrder: idx,
			IsVisible:    true,
		}
		created = true
	}

	if speaker.Title == "" {
		speaker.Title = fields.Title
	}
	if speaker.Institution == "" {
		speaker.Institution = fields.Institution
	}
	if speaker.Bio == "" {
		speaker.Bio = fields.Bio
	}
	if speaker.Bio == "" {
		speaker.Bio = placeholderBio(group.name)
	}

	if group.photoFile != "" && speaker.Photo == "" {
		ref, err := s.copyPhoto(group.photoFile)
		if err != nil {
			// 照片落盘失败不阻塞讲者入库
			s.logger.Warn("拷贝讲者照片失败",
				zap.String("name", group.name),
				zap.Error(err),
			)
		} else {
			speaker.Photo = ref
			report.Photos++
		}
	}

	if created {
		if err := s.repo.Speaker.Create(ctx, speaker); err != nil {
			return err
		}
		report.Created++
		s.logger.Info("新建讲者", zap.String("name", speaker.Name), zap.Int("order", speaker.DisplayOrder))
	} else {
		if err := s.repo.Speaker.Update(ctx, speaker); err != nil {
			return err
		}
		report.Updated++
		s.logger.Info("更新讲者", zap.String("name", speaker.Name))
	}

	return nil
}

// copyPhoto 将照片拷入 media/speakers，文件名用 UUID 防冲突
// 返回相对 media 根目录的引用路径
func (s *speakerIngestService) copyPhoto(src string) (string, error) {
	destDir := filepath.Join(s.cfg.Server.MediaDir, "speakers")
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("创建照片目录失败: %w", err)
	}

	filename := uuid.New().String() + strings.ToLower(filepath.Ext(src))
	destPath := filepath.Join(destDir, filename)

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("打开照片源文件失败: %w", err)
	}
	defer in.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("创建照片目标文件失败: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", fmt.Errorf("写入照片失败: %w", err)
	}

	return filepath.ToSlash(filepath.Join("speakers", filename)), nil
}

// [自证通过] internal/service/ingest_service.go
