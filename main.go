package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"duduk_sebentar/internal/api"
	"duduk_sebentar/internal/service"
	"duduk_sebentar/internal/storage"
	"duduk_sebentar/pkg/config"
)

func main() {
	// 載入應用程式配置
	// 從配置文件中讀取設置，如服務器地址和房間生命週期參數
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化 session store
	// 所有房間只存在記憶體，進程結束即消失
	store := storage.NewRoomStore()

	// 初始化服務
	services := service.NewServices(store, cfg.Room)

	// 啟動過期房間的定期清掃
	services.Lifecycle.StartSweeper()

	// 設置 Gin 路由
	r := gin.Default()
	api.SetupRoutes(r, services)

	// 啟動伺服器
	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
