package http

import (
	"context"

	"SaDam/internal/config"
	"SaDam/internal/initial"
	consultService "SaDam/internal/modules/consult/application/service"
	"SaDam/internal/modules/consult/domain/gateway"
	"SaDam/internal/modules/consult/infrastructure/llm"
	consultPersistence "SaDam/internal/modules/consult/infrastructure/persistence"
	"SaDam/internal/modules/consult/infrastructure/portrait"
	"SaDam/internal/modules/consult/infrastructure/storage"
	consultHandler "SaDam/internal/modules/consult/interface/http"
	"SaDam/pkg/ssl"
	"SaDam/pkg/zlog"

	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var GE *gin.Engine

func init() {
	conf := config.GetConfig()

	GE = gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	GE.Use(cors.New(corsConfig))
	GE.Use(ssl.TlsHandler(conf.MainConfig.Host, conf.MainConfig.Port))

	characterRepo := consultPersistence.NewCharacterRepository(initial.GormDB)
	sessionRepo := consultPersistence.NewSessionRepository(initial.GormDB)
	messageRepo := consultPersistence.NewMessageRepository(initial.GormDB)
	fortuneRepo := consultPersistence.NewFortuneResultRepository(initial.GormDB)

	chatModel, chatMeta, err := llm.NewChatModelFromConfig(context.Background(), conf)
	if err != nil {
		zlog.Fatal("chat model init failed: " + err.Error())
	}
	generator := llm.NewFortuneGenerator(chatModel, chatMeta)

	// 头像生成是可选能力，未开启时传 nil，状态机按 skipped 处理
	var portraitGen gateway.PortraitGenerator
	var bucket gateway.StorageBucket
	if conf.AIConfig.Image.Enabled {
		portraitGen = portrait.NewPortraitGenerator(conf)
		bucket = storage.NewStorageBucket(conf)
	}

	consultSvc := consultService.NewConsultationService(
		characterRepo, sessionRepo, messageRepo, fortuneRepo,
		generator, portraitGen, bucket,
	)
	historySvc := consultService.NewHistoryService(
		characterRepo, sessionRepo, messageRepo, fortuneRepo,
	)

	consultH := consultHandler.NewConsultationHandler(consultSvc)
	historyH := consultHandler.NewHistoryHandler(historySvc)

	// 聊天页面，每次操作后整页重取状态
	GE.StaticFile("/", "web/index.html")

	GE.POST("/consult/getState", consultH.GetState)
	GE.POST("/consult/begin", consultH.Begin)
	GE.POST("/consult/sendMessage", consultH.SendMessage)
	GE.POST("/consult/end", consultH.End)
	GE.POST("/consult/reset", consultH.Reset)
	GE.POST("/history/getSessionList", historyH.GetSessionList)
	GE.POST("/history/getSessionDetail", historyH.GetSessionDetail)
}
