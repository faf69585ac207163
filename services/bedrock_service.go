package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	appconfig "warehouse-surveillance/be/config"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

const inferenceTimeout = 60 * time.Second

// ChatContent is one text block inside a conversation message.
type ChatContent struct {
	Text string `json:"text"`
}

// ChatMessage is one turn of the conversation, role "user" or
// "assistant".
type ChatMessage struct {
	Role    string        `json:"role"`
	Content []ChatContent `json:"content"`
}

// InferenceConfig carries the sampling parameters passed through to the
// model.
type InferenceConfig struct {
	MaxTokens   *int32   `json:"maxTokens,omitempty"`
	Temperature *float32 `json:"temperature,omitempty"`
	TopP        *float32 `json:"topP,omitempty"`
}

// ErrEmptyModelResponse is returned when the model call succeeds but
// carries no assistant text.
var ErrEmptyModelResponse = errors.New("no response from AI model")

// BedrockService sends conversations to a Bedrock model via the
// Converse API. Single attempt, bounded timeout, no retries.
type BedrockService struct {
	client *bedrockruntime.Client
}

func NewBedrockService(cfg appconfig.AWSConfig) (*BedrockService, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &BedrockService{client: bedrockruntime.NewFromConfig(awsCfg)}, nil
}

// Converse sends the system prompt, history and current query to the
// model and returns the assistant's text.
func (s *BedrockService) Converse(ctx context.Context, modelID, systemPrompt string, messages []ChatMessage, cfg InferenceConfig) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, inferenceTimeout)
	defer cancel()

	brMessages := make([]brtypes.Message, 0, len(messages))
	for _, msg := range messages {
		content := make([]brtypes.ContentBlock, 0, len(msg.Content))
		for _, block := range msg.Content {
			content = append(content, &brtypes.ContentBlockMemberText{Value: block.Text})
		}
		brMessages = append(brMessages, brtypes.Message{
			Role:    brtypes.ConversationRole(msg.Role),
			Content: content,
		})
	}

	out, err := s.client.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId:  &modelID,
		Messages: brMessages,
		System: []brtypes.SystemContentBlock{
			&brtypes.SystemContentBlockMemberText{Value: systemPrompt},
		},
		InferenceConfig: &brtypes.InferenceConfiguration{
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			TopP:        cfg.TopP,
		},
	})
	if err != nil {
		return "", fmt.Errorf("model invocation failed: %w", err)
	}

	msgOut, ok := out.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok || len(msgOut.Value.Content) == 0 {
		return "", ErrEmptyModelResponse
	}
	text, ok := msgOut.Value.Content[0].(*brtypes.ContentBlockMemberText)
	if !ok || text.Value == "" {
		return "", ErrEmptyModelResponse
	}
	return text.Value, nil
}

// videoChatSystemTemplate frames the model as a live video analyst fed
// only by the merged transcript.
const videoChatSystemTemplate = `The following is a friendly conversation between a Human (H) and an AI Assistant (AI) about a Video. There is no video provided to you but only a transcript of the video. Always remember the following points when having a conversation,

- The Video information is provided to you in the ` + "`Video Context`" + ` section below. You are to only answer based on the <video_context>...</video_context> and if the answer is not available respond with "I don't know, I'm sorry the requested information is not a part of the video".

- The video transcript is a non-overlapping second by second summary provided by a video transcriber. You are to answer a user's question based on the entire transcript and keep the user's conversation history in context when answering the question.

- Remember when a human asks about a video, always assume they are talking about the <video_context>...</video_context> transcript and respond appropriately. Your job depends on this.

- The user does not know that you (the assistant) has the video context. You should never reveal this information back to the user. Your job is to make them think that you analyzing the video live. It's your secret to never talk about <video_context>...</video_context>.

- Remember never reveal to the user about video context. Always pretend that you have access to the video.

- The video context is your biggest secret. Your job depends on this.

<video_context>
{video_context}
</video_context>
`

// BuildVideoChatSystemPrompt fills the system template with the merged
// transcript context.
func BuildVideoChatSystemPrompt(videoContext string) string {
	return strings.Replace(videoChatSystemTemplate, "{video_context}", videoContext, 1)
}
