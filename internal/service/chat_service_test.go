package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rwecho/AIGCPilot/internal/pkg/config"
)

func TestChatStream_PassesThrough(t *testing.T) {
	var gotAuth, gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"你好\"}}]}\n\n")
		io.WriteString(w, "data: [DONE]\n\n")
	}))
	defer upstream.Close()

	svc := NewChatService(&config.ChatConfig{
		APIKey:  "sk-test",
		BaseURL: upstream.URL,
		Model:   "deepseek-chat",
	})

	body, err := svc.Stream(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Stream失败: %v", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("读取流失败: %v", err)
	}

	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("path = %q", gotPath)
	}
	// 响应体原样透传，不做任何解析和改写
	if !strings.Contains(string(data), "data: [DONE]") {
		t.Errorf("body = %q", data)
	}
}

func TestChatStream_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":"rate limited"}`)
	}))
	defer upstream.Close()

	svc := NewChatService(&config.ChatConfig{APIKey: "sk-test", BaseURL: upstream.URL})

	_, err := svc.Stream(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}})
	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("err = %v, want *UpstreamError", err)
	}
	if upstreamErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d", upstreamErr.StatusCode)
	}
	if !strings.Contains(upstreamErr.Body, "rate limited") {
		t.Errorf("Body = %q", upstreamErr.Body)
	}
}

func TestChatStream_NotConfigured(t *testing.T) {
	svc := NewChatService(&config.ChatConfig{})

	if _, err := svc.Stream(context.Background(), nil); !errors.Is(err, ErrChatNotConfigured) {
		t.Errorf("err = %v, want ErrChatNotConfigured", err)
	}
}
