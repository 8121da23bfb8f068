package portrait

import (
	"context"
	"fmt"
	"strings"
	"time"

	"SaDam/internal/config"
	"SaDam/internal/modules/consult/domain/entity"
	"SaDam/internal/modules/consult/domain/gateway"
	"SaDam/pkg/zlog"

	"github.com/go-resty/resty/v2"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

type portraitGeneratorImpl struct {
	client *openai.Client
	http   *resty.Client
	model  string
	size   string
}

func NewPortraitGenerator(conf *config.Config) gateway.PortraitGenerator {
	imageConf := conf.AIConfig.Image

	clientConf := openai.DefaultConfig(imageConf.APIKey)
	if imageConf.BaseURL != "" {
		clientConf.BaseURL = imageConf.BaseURL
	}

	modelName := imageConf.Model
	if modelName == "" {
		modelName = openai.CreateImageModelDallE3
	}
	size := imageConf.Size
	if size == "" {
		size = openai.CreateImageSize1024x1024
	}

	httpClient := resty.New()
	httpClient.SetTimeout(60 * time.Second)

	return &portraitGeneratorImpl{
		client: openai.NewClientWithConfig(clientConf),
		http:   httpClient,
		model:  modelName,
		size:   size,
	}
}

func (g *portraitGeneratorImpl) Generate(ctx context.Context, character *entity.Character) (string, error) {
	prompt := fmt.Sprintf(
		"A warm, soft portrait illustration in traditional Korean aesthetic style. %d year old Korean %s, %s. Personality: %s. Gentle lighting, hanji paper texture background, no text.",
		character.Age, genderWord(character.Gender), character.Occupation, character.Personality,
	)

	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          g.model,
		N:              1,
		Size:           g.size,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		zlog.Warn("portrait generation call failed", zap.Error(err))
		return "", fmt.Errorf("portrait generation failed")
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		zlog.Warn("portrait generation returned no image")
		return "", fmt.Errorf("portrait generation failed")
	}
	return resp.Data[0].URL, nil
}

func (g *portraitGeneratorImpl) Download(ctx context.Context, url string) ([]byte, error) {
	resp, err := g.http.R().SetContext(ctx).Get(url)
	if err != nil {
		zlog.Warn("portrait download failed", zap.Error(err))
		return nil, fmt.Errorf("portrait download failed")
	}
	if resp.StatusCode() != 200 {
		zlog.Warn("portrait download returned non-200", zap.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("portrait download failed")
	}
	return resp.Body(), nil
}

func genderWord(gender string) string {
	if strings.Contains(gender, "여") {
		return "woman"
	}
	return "man"
}
