package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"SaDam/internal/config"

	openaiModel "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

type ChatModelMeta struct {
	Provider string
	Model    string
}

func NewChatModelFromConfig(ctx context.Context, conf *config.Config) (model.BaseChatModel, ChatModelMeta, error) {
	if conf == nil {
		return nil, ChatModelMeta{}, fmt.Errorf("nil config")
	}

	apiKey := strings.TrimSpace(conf.AIConfig.ChatModel.APIKey)
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	modelName := strings.TrimSpace(conf.AIConfig.ChatModel.Model)
	if modelName == "" {
		modelName = strings.TrimSpace(os.Getenv("GPT_MODEL"))
	}
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}
	baseURL := strings.TrimSpace(conf.AIConfig.ChatModel.BaseURL)
	if baseURL == "" {
		baseURL = strings.TrimSpace(os.Getenv("OPENAI_BASE_URL"))
	}

	if apiKey == "" {
		return nil, ChatModelMeta{}, fmt.Errorf("openai chat model missing apiKey")
	}

	timeout := 2 * time.Minute
	if conf.AIConfig.ChatModel.TimeoutSeconds > 0 {
		timeout = time.Duration(conf.AIConfig.ChatModel.TimeoutSeconds) * time.Second
	}

	cm, err := openaiModel.NewChatModel(ctx, &openaiModel.ChatModelConfig{
		APIKey:  apiKey,
		Model:   modelName,
		BaseURL: baseURL,
		Timeout: timeout,
	})
	if err != nil {
		return nil, ChatModelMeta{}, err
	}
	return cm, ChatModelMeta{Provider: "openai", Model: modelName}, nil
}
