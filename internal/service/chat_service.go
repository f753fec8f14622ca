package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rwecho/AIGCPilot/internal/pkg/config"
)

// ErrChatNotConfigured 未配置上游API密钥
var ErrChatNotConfigured = errors.New("聊天服务未配置")

// UpstreamError 上游模型接口返回的错误，错误文本原样透给调用方排障
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("上游返回%d: %s", e.StatusCode, e.Body)
}

// ChatMessage 一条对话消息
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest Copilot面板的对话请求
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" binding:"required"`
}

// ChatService 聊天中转：把对话转发给OpenAI兼容的托管模型接口，
// 并把SSE响应体原样流回。客户端断开即取消上游请求，无其他副作用。
type ChatService interface {
	Stream(ctx context.Context, messages []ChatMessage) (io.ReadCloser, error)
}

type chatService struct {
	cfg    *config.ChatConfig
	client *http.Client
}

// NewChatService 创建聊天中转服务
func NewChatService(cfg *config.ChatConfig) ChatService {
	return &chatService{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.GetTimeout(),
		},
	}
}

// Stream 向上游发起流式对话，返回可逐块读取的响应体
func (s *chatService) Stream(ctx context.Context, messages []ChatMessage) (io.ReadCloser, error) {
	if s.cfg.APIKey == "" {
		return nil, ErrChatNotConfigured
	}

	payload := map[string]interface{}{
		"model":    s.cfg.Model,
		"messages": messages,
		"stream":   true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       string(errBody),
		}
	}

	return resp.Body, nil
}
