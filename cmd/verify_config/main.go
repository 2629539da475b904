package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/kiyensi/store-settings-service/internal/app"

	"github.com/gookit/goutil/dump"
)

func main() {
	configPath := "config/config.yaml"
	absPath, _ := filepath.Abs(configPath)
	fmt.Printf("Loading config from: %s\n", absPath)

	cfg, realpath, err := app.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	fmt.Printf("Resolved path: %s\n", realpath)

	// 生效配置全量输出，便于核对默认值填充
	dump.P(cfg)

	if cfg.Storage.Type == "" {
		log.Fatal("storage.type must not be empty")
	}
	if cfg.App.UploadUrlPath == "" {
		log.Fatal("app.upload-url-path must not be empty")
	}
	if cfg.Storage.Type == "localfs" && cfg.Storage.LocalFS.SavePath == "" {
		log.Fatal("storage.local-fs.save-path must not be empty for localfs")
	}

	fmt.Println("Config OK")
}
