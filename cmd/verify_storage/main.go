package main

import (
	"fmt"
	"log"
	"time"

	"github.com/kiyensi/store-settings-service/internal/app"
	"github.com/kiyensi/store-settings-service/pkg/storage"

	"go.uber.org/zap"
)

// 对配置中启用的存储后端做一次写入/删除往返，验证凭据和连通性
func main() {
	configPath := "config/config.yaml"

	cfg, realpath, err := app.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	fmt.Printf("Loaded config: %s\n", realpath)
	fmt.Printf("Storage type: %s\n", cfg.Storage.Type)

	lg, _ := zap.NewDevelopment()
	client, err := storage.NewClient(cfg.Storage.Unified(), lg)
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}

	key := fmt.Sprintf("verify/roundtrip-%d.txt", time.Now().Unix())
	content := []byte("storage roundtrip check")

	savedPath, err := client.SendContent(key, content, time.Now().UTC())
	if err != nil {
		log.Fatalf("SendContent failed: %v", err)
	}
	fmt.Printf("SendContent OK: %s\n", savedPath)

	if err := client.Delete(key); err != nil {
		log.Fatalf("Delete failed: %v", err)
	}
	fmt.Println("Delete OK")

	fmt.Println("Storage backend verified")
}
