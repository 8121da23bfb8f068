package gateway

import (
	"context"

	"SaDam/internal/modules/consult/domain/entity"
)

// FortuneGenerator 三个生成操作，传输错误和解析错误对调用方不做区分，
// 失败即"没有可用结果"
type FortuneGenerator interface {
	// GeneratePersona 生成来访客人档案（未持久化，Id 为空）
	GeneratePersona(ctx context.Context) (*entity.Character, error)
	// GenerateReply 以客人身份回复，任何非空文本都接受
	GenerateReply(ctx context.Context, character *entity.Character, history []entity.Message, userText string) (string, error)
	// GenerateReading 根据完整对话记录生成四段式解读（仅文本字段）
	GenerateReading(ctx context.Context, character *entity.Character, transcript []entity.Message) (*entity.FortuneResult, error)
}

// PortraitGenerator 头像生成，调用方必须把失败当作非致命
type PortraitGenerator interface {
	// Generate 返回生成服务端的临时图片地址
	Generate(ctx context.Context, character *entity.Character) (string, error)
	// Download 拉取临时地址的原始字节
	Download(ctx context.Context, url string) ([]byte, error)
}

// StorageBucket 对象存储桶，与关系库之间没有事务保证
type StorageBucket interface {
	// Upload 覆盖写入并返回公开访问地址
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}
