package main

import (
	https_server "SaDam/api/http"
	"SaDam/internal/config"
	"SaDam/pkg/zlog"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()
	zlog.Init(conf.LogConfig.LogPath)
	host := conf.MainConfig.Host
	port := conf.MainConfig.Port

	// 2. 启动 HTTP 服务
	go func() {
		addr := fmt.Sprintf("%s:%d", host, port)
		zlog.Info(fmt.Sprintf("사담(四談) 服务器正在启动，监听地址: %s", addr))
		if err := https_server.GE.Run(addr); err != nil {
			zlog.Fatal("服务器启动失败: " + err.Error())
			return
		}
	}()

	// 3. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	zlog.Info("正在关闭服务器...")
	zlog.Info("服务器已关闭")
}
