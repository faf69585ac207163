package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"warehouse-surveillance/be/logger"
	"warehouse-surveillance/be/models"
	"warehouse-surveillance/be/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultMaxTokens   = int32(1000)
	defaultTemperature = float32(0.7)
	defaultTopP        = float32(0.9)
)

type ChatHandler struct {
	db             *gorm.DB
	transcripts    *services.TranscriptService
	bedrock        *services.BedrockService
	defaultModelID string
	log            *logger.Logger
}

func NewChatHandler(db *gorm.DB, transcripts *services.TranscriptService, bedrock *services.BedrockService, defaultModelID string, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		db:             db,
		transcripts:    transcripts,
		bedrock:        bedrock,
		defaultModelID: defaultModelID,
		log:            log,
	}
}

type ChatRequest struct {
	UserQuery         string                    `json:"UserQuery" binding:"required"`
	ModelID           string                    `json:"modelId"`
	Conversation      []services.ChatMessage    `json:"conversation"`
	InferenceConfig   *services.InferenceConfig `json:"inferenceConfig"`
	ChatTransactionID string                    `json:"chatTransactionId"`
}

func (r *ChatRequest) inferenceConfig() services.InferenceConfig {
	cfg := services.InferenceConfig{}
	if r.InferenceConfig != nil {
		cfg = *r.InferenceConfig
	}
	if cfg.MaxTokens == nil {
		maxTokens := defaultMaxTokens
		cfg.MaxTokens = &maxTokens
	}
	if cfg.Temperature == nil {
		temperature := defaultTemperature
		cfg.Temperature = &temperature
	}
	if cfg.TopP == nil {
		topP := defaultTopP
		cfg.TopP = &topP
	}
	return cfg
}

// Chat answers a question about one video chunk: the chunk's transcript
// fragments are fetched from blob storage, merged in chunk-start order
// and fed to the model as hidden context together with the conversation
// history.
func (h *ChatHandler) Chat(c *gin.Context) {
	warehouseID := c.Param("warehouse_id")
	camID := c.Param("cam_id")
	chunkID := c.Param("chunk_id")

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.log.Info("chat request", "warehouse_id", warehouseID, "cam_id", camID, "chunk_id", chunkID)

	var chunk models.Chunk
	err := h.db.Where("warehouse_id = ? AND cam_id = ? AND chunk_id = ?", warehouseID, camID, chunkID).
		First(&chunk).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error": fmt.Sprintf("Chunk not found: warehouse_id=%s, cam_id=%s, chunk_id=%s", warehouseID, camID, chunkID),
			})
			return
		}
		h.log.Error("failed to fetch chunk", "chunk_id", chunkID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	if chunk.TranscriptsURL == nil || *chunk.TranscriptsURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("No transcript URL configured for chunk %s", chunkID),
		})
		return
	}

	container, prefix, err := services.ParseTranscriptURL(*chunk.TranscriptsURL)
	if err != nil {
		if services.IsUnsupportedBlobURL(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Unsupported blob URL format: %s", *chunk.TranscriptsURL),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	fragments, err := h.transcripts.ListTranscriptBlobs(ctx, container, prefix)
	if err != nil {
		h.log.Error("failed to list transcript fragments", "container", container, "prefix", prefix, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error: " + err.Error()})
		return
	}
	if len(fragments) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error": fmt.Sprintf("No transcript files found for chunk_id=%s", chunkID),
		})
		return
	}

	merged := h.transcripts.MergeTranscripts(ctx, container, fragments)
	h.log.Info("merged transcript fragments", "chunk_id", chunkID, "fragments", len(fragments))

	videoContext := services.BuildVideoContext(merged)
	if videoContext == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build video context from transcripts"})
		return
	}

	modelID := req.ModelID
	if modelID == "" {
		modelID = h.defaultModelID
	}
	inferenceCfg := req.inferenceConfig()

	messages := make([]services.ChatMessage, 0, len(req.Conversation)+2)
	messages = append(messages, req.Conversation...)
	messages = append(messages, services.ChatMessage{
		Role:    "user",
		Content: []services.ChatContent{{Text: req.UserQuery}},
	})

	systemPrompt := services.BuildVideoChatSystemPrompt(videoContext)
	reply, err := h.bedrock.Converse(ctx, modelID, systemPrompt, messages, inferenceCfg)
	if err != nil {
		if errors.Is(err, services.ErrEmptyModelResponse) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No response from AI model"})
			return
		}
		h.log.Error("chat inference failed", "chunk_id", chunkID, "model_id", modelID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error: " + err.Error()})
		return
	}

	messages = append(messages, services.ChatMessage{
		Role:    "assistant",
		Content: []services.ChatContent{{Text: reply}},
	})

	transactionID := req.ChatTransactionID
	if transactionID == "" {
		transactionID = strings.ReplaceAll(uuid.New().String(), "-", "")
	}

	c.JSON(http.StatusOK, gin.H{
		"conversation":      messages,
		"chatLastTime":      time.Now().Format("2006-01-02 15:04:05"),
		"chatTransactionId": transactionID,
		"modelId":           modelID,
		"inferenceConfig":   inferenceCfg,
	})
}
