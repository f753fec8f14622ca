package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rwecho/AIGCPilot/internal/model"
	"github.com/rwecho/AIGCPilot/internal/pkg/config"
	"github.com/rwecho/AIGCPilot/internal/pkg/logger"
	"github.com/rwecho/AIGCPilot/internal/service"
)

// ChatHandler AI对话处理器，把上游的流式回复原样转给客户端
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler 创建对话处理器
func NewChatHandler(cfg *config.Config) *ChatHandler {
	return &ChatHandler{
		chatService: service.NewChatService(&cfg.Chat),
	}
}

// Stream 流式对话。客户端断开时通过请求context取消上游调用。
func (h *ChatHandler) Stream(c *gin.Context) {
	var req service.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.BadRequest("参数错误: "+err.Error()))
		return
	}

	body, err := h.chatService.Stream(c.Request.Context(), req.Messages)
	if err != nil {
		if errors.Is(err, service.ErrChatNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, model.ServerError("对话服务未配置"))
			return
		}
		var upstream *service.UpstreamError
		if errors.As(err, &upstream) {
			logger.Error("上游对话接口返回错误",
				zap.Int("status", upstream.StatusCode),
				zap.String("body", upstream.Body),
			)
			c.JSON(http.StatusInternalServerError, model.ServerError("上游服务错误: "+upstream.Body))
			return
		}
		logger.Error("调用对话接口失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ServerError("对话服务不可用"))
		return
	}
	defer body.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)

	buf := make([]byte, 4096)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			if _, werr := c.Writer.Write(buf[:n]); werr != nil {
				// 客户端断开，不再读上游
				return
			}
			c.Writer.Flush()
		}
		if err != nil {
			if err != io.EOF {
				logger.Warn("读取上游对话流中断", zap.Error(err))
			}
			return
		}
	}
}
