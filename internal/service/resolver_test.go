package service

import (
	"context"
	"testing"

	"github.com/haryan80/interventional-radiology-website/internal/model"
)

// ── nameVariants 测试 ──

func TestNameVariants_Honorific(t *testing.T) {
	variants := nameVariants("Dr. Moh Arabi")

	want := []string{"Dr. Moh Arabi", "Moh Arabi", "Arabi"}
	if len(variants) != len(want) {
		t.Fatalf("期望 %d 个变体，实际 %d 个: %v", len(want), len(variants), variants)
	}
	for i, v := range want {
		if variants[i] != v {
			t.Errorf("变体[%d]: 期望 %q，实际 %q", i, v, variants[i])
		}
	}
}

func TestNameVariants_ProfPrefix(t *testing.T) {
	variants := nameVariants("Prof Govindarajan Narayanan")

	if variants[0] != "Prof Govindarajan Narayanan" {
		t.Errorf("首个变体应为原文，实际 %q", variants[0])
	}
	found := false
	for _, v := range variants {
		if v == "Govindarajan Narayanan" {
			found = true
		}
	}
	if !found {
		t.Errorf("应包含去敬称变体，实际: %v", variants)
	}
}

func TestNameVariants_SingleWord(t *testing.T) {
	variants := nameVariants("Arslan")

	// 单词名没有姓氏变体，不应重复
	if len(variants) != 1 || variants[0] != "Arslan" {
		t.Errorf("单词名只应有原文变体，实际: %v", variants)
	}
}

func TestNameVariants_Blank(t *testing.T) {
	if got := nameVariants("   "); got != nil {
		t.Errorf("空白名应返回 nil，实际: %v", got)
	}
}

func TestNameVariants_Dedup(t *testing.T) {
	// 去敬称后与姓氏相同的情况不应产生重复变体
	variants := nameVariants("Dr Vogl")
	if len(variants) != 2 {
		t.Errorf("期望 2 个变体（原文 + 去敬称），实际: %v", variants)
	}
}

// ── ResolveSpeaker 测试 ──

func TestResolveSpeaker_ExactCaseInsensitive(t *testing.T) {
	repo := newMockSpeakerRepo()
	_ = repo.Create(context.Background(), &model.Speaker{Name: "Moh Arabi"})

	speaker, err := ResolveSpeaker(context.Background(), repo, "moh arabi")
	if err != nil {
		t.Fatalf("ResolveSpeaker 应成功: %v", err)
	}
	if speaker == nil || speaker.Name != "Moh Arabi" {
		t.Errorf("应命中 Moh Arabi，实际: %+v", speaker)
	}
}

func TestResolveSpeaker_HonorificStripped(t *testing.T) {
	repo := newMockSpeakerRepo()
	_ = repo.Create(context.Background(), &model.Speaker{Name: "Moh Arabi"})

	speaker, err := ResolveSpeaker(context.Background(), repo, "Dr. Moh Arabi")
	if err != nil {
		t.Fatalf("ResolveSpeaker 应成功: %v", err)
	}
	if speaker == nil || speaker.Name != "Moh Arabi" {
		t.Errorf("去敬称后应命中，实际: %+v", speaker)
	}
}

func TestResolveSpeaker_Containment(t *testing.T) {
	repo := newMockSpeakerRepo()
	_ = repo.Create(context.Background(), &model.Speaker{Name: "Cagatay Arslan"})

	// 节目单里的简称 "Dr Arslan" 应通过姓氏包含匹配命中全名记录
	speaker, err := ResolveSpeaker(context.Background(), repo, "Dr Arslan")
	if err != nil {
		t.Fatalf("ResolveSpeaker 应成功: %v", err)
	}
	if speaker == nil || speaker.Name != "Cagatay Arslan" {
		t.Errorf("姓氏包含匹配应命中 Cagatay Arslan，实际: %+v", speaker)
	}
}

func TestResolveSpeaker_SurnameFallback(t *testing.T) {
	repo := newMockSpeakerRepo()
	_ = repo.Create(context.Background(), &model.Speaker{Name: "Govindarajan Narayanan"})

	speaker, err := ResolveSpeaker(context.Background(), repo, "Prof. G Narayanan")
	if err != nil {
		t.Fatalf("ResolveSpeaker 应成功: %v", err)
	}
	if speaker == nil || speaker.Name != "Govindarajan Narayanan" {
		t.Errorf("姓氏兜底应命中，实际: %+v", speaker)
	}
}

func TestResolveSpeaker_NoMatch(t *testing.T) {
	repo := newMockSpeakerRepo()
	_ = repo.Create(context.Background(), &model.Speaker{Name: "Moh Arabi"})

	speaker, err := ResolveSpeaker(context.Background(), repo, "Nicos Fotiadis")
	if err != nil {
		t.Fatalf("未命中不应报错: %v", err)
	}
	if speaker != nil {
		t.Errorf("应返回 nil 表示未命中，实际: %+v", speaker)
	}
}

func TestResolveSpeaker_StableTieBreak(t *testing.T) {
	repo := newMockSpeakerRepo()
	_ = repo.Create(context.Background(), &model.Speaker{Name: "Khan One"})
	_ = repo.Create(context.Background(), &model.Speaker{Name: "Khan Two"})

	// 多条命中时取最早创建的记录
	speaker, err := ResolveSpeaker(context.Background(), repo, "Khan")
	if err != nil {
		t.Fatalf("ResolveSpeaker 应成功: %v", err)
	}
	if speaker == nil || speaker.Name != "Khan One" {
		t.Errorf("多条命中应取最早记录，实际: %+v", speaker)
	}
}

// ── stripHonorific 测试 ──

func TestStripHonorific(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Dr. Moh Arabi", "Moh Arabi"},
		{"Dr Moh Arabi", "Moh Arabi"},
		{"Prof. Vogl", "Vogl"},
		{"Prof Vogl", "Vogl"},
		{"Saad Abu Alkanam", "Saad Abu Alkanam"},
		{"Drew Smith", "Drew Smith"}, // "Dr" 只在整词前缀时剥离
	}
	for _, c := range cases {
		if got := stripHonorific(c.in); got != c.want {
			t.Errorf("stripHonorific(%q): 期望 %q，实际 %q", c.in, c.want, got)
		}
	}
}
