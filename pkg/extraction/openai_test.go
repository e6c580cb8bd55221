package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/haryan80/interventional-radiology-website/config"
)

func newTestClient(url string) *Client {
	return NewClient(&config.ExtractionConfig{
		APIKey:  "test-key",
		APIURL:  url,
		Model:   "gpt-4o",
		Timeout: 5 * time.Second,
	}, zap.NewNop())
}

// chatStub 返回固定 content 的 Chat Completions 假服务
func chatStub(t *testing.T, content string, capture *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization 头不符: %q", got)
		}
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Errorf("解析请求体失败: %v", err)
			}
		}
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestExtract_ParsesStructuredFields(t *testing.T) {
	var captured chatRequest
	srv := chatStub(t, `{"title":"Professor","institution":"KHCC","bio":"A bio."}`, &captured)
	defer srv.Close()

	fields, err := newTestClient(srv.URL).Extract(context.Background(), Request{
		Content:     []byte("bio text"),
		ContentType: "text/plain",
		Role:        RoleBio,
		SpeakerName: "Jane Doe",
	})
	if err != nil {
		t.Fatalf("抽取应成功: %v", err)
	}
	if fields.Title != "Professor" || fields.Institution != "KHCC" || fields.Bio != "A bio." {
		t.Errorf("抽取字段不符: %+v", fields)
	}

	if captured.Model != "gpt-4o" {
		t.Errorf("请求 model 不符: %q", captured.Model)
	}
	if captured.ResponseFormat.Type != "json_object" {
		t.Errorf("应要求 json_object 输出，实际 %q", captured.ResponseFormat.Type)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" {
		t.Fatalf("消息结构不符: %+v", captured.Messages)
	}
	sys, _ := captured.Messages[0].Content.(string)
	if !strings.Contains(sys, "Jane Doe") {
		t.Errorf("系统提示词应包含讲者姓名: %q", sys)
	}
}

func TestExtract_FallsBackToRegexOnMalformedJSON(t *testing.T) {
	srv := chatStub(t, `Sure! Here it is: "title": "Dr.", "institution": "JUH", "bio": "Short bio"`, nil)
	defer srv.Close()

	fields, err := newTestClient(srv.URL).Extract(context.Background(), Request{
		Content:     []byte("cv text"),
		ContentType: "application/pdf",
		Role:        RoleCV,
		SpeakerName: "Jane Doe",
	})
	if err != nil {
		t.Fatalf("兜底抽取不应报错: %v", err)
	}
	if fields.Title != "Dr." || fields.Institution != "JUH" || fields.Bio != "Short bio" {
		t.Errorf("兜底字段不符: %+v", fields)
	}
}

func TestExtract_MissingAPIKey(t *testing.T) {
	client := NewClient(&config.ExtractionConfig{Timeout: time.Second}, zap.NewNop())

	_, err := client.Extract(context.Background(), Request{SpeakerName: "Jane Doe"})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("无 API Key 应返回 ErrMissingAPIKey，实际 %v", err)
	}
}

func TestExtract_HTTPErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Extract(context.Background(), Request{
		Content:     []byte("x"),
		ContentType: "text/plain",
		SpeakerName: "Jane Doe",
	})
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("非 200 响应应报错并带状态码，实际 %v", err)
	}
}

func TestSystemPrompt_VariesByRole(t *testing.T) {
	bio := systemPrompt(RoleBio, "Jane Doe")
	cv := systemPrompt(RoleCV, "Jane Doe")
	if bio == cv {
		t.Error("bio 与 cv 的提示词应不同")
	}
	if !strings.Contains(cv, "CV") {
		t.Errorf("cv 提示词应提及 CV: %q", cv)
	}
}
