package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/lxzan/gws"
)

// 手工联调脚本：对本地运行的服务完整走一遍设置读写和 logo 生命周期，
// 同时挂一个 WebSocket 连接观察 SettingsChanged 推送
const (
	baseURL = "http://127.0.0.1:9000"
	wsURL   = "ws://127.0.0.1:9000/api/settings/ws"
)

type Handler struct {
	gws.BuiltinEventHandler
	recv chan []byte
}

func (h *Handler) OnMessage(socket *gws.Conn, message *gws.Message) {
	defer message.Close()
	data := message.Data.Bytes()
	// message 在返回后会被关闭，先拷贝
	buf := make([]byte, len(data))
	copy(buf, data)
	h.recv <- buf
}

func main() {
	// 1. 连接 WS
	handler := &Handler{recv: make(chan []byte, 10)}
	u, _ := url.Parse(wsURL)
	socket, _, err := gws.NewClient(handler, &gws.ClientOption{
		Addr: u.String(),
	})
	if err != nil {
		log.Fatal("dial:", err)
	}
	go socket.ReadLoop()
	defer socket.WriteClose(1000, []byte("bye"))

	// 2. 读取当前视图
	fmt.Println("== GET /api/settings")
	getJSON("/api/settings")

	// 3. 部分更新
	fmt.Println("== POST /api/settings")
	postJSON("/api/settings", map[string]any{
		"currency_code": "EUR",
		"domain":        "http://shop.test",
	})
	waitPush(handler, "SettingsChanged")

	// 4. 上传 logo
	fmt.Println("== POST /api/settings/logo")
	uploadLogo("logo.png", []byte("\x89PNG fake image body"))
	waitPush(handler, "SettingsChanged")

	// 5. 确认视图里的 logo 地址
	fmt.Println("== GET /api/settings")
	getJSON("/api/settings")

	// 6. 删除 logo
	fmt.Println("== DELETE /api/settings/logo")
	deleteLogo()
	waitPush(handler, "SettingsChanged")
}

func getJSON(path string) {
	resp, err := http.Get(baseURL + path)
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	fmt.Println(string(body))
}

func postJSON(path string, payload map[string]any) {
	raw, _ := json.Marshal(payload)
	resp, err := http.Post(baseURL+path, "application/json", bytes.NewReader(raw))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	fmt.Println(string(body))
}

func uploadLogo(name string, content []byte) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, _ := w.CreateFormFile("file", name)
	fw.Write(content)
	w.Close()

	resp, err := http.Post(baseURL+"/api/settings/logo", w.FormDataContentType(), &buf)
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	fmt.Println(string(body))
}

func deleteLogo() {
	req, _ := http.NewRequest(http.MethodDelete, baseURL+"/api/settings/logo", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	fmt.Println(string(body))
}

func waitPush(h *Handler, action string) {
	select {
	case msg := <-h.recv:
		fmt.Printf("ws push (%s): %s\n", action, string(msg))
	case <-time.After(3 * time.Second):
		fmt.Printf("ws push (%s): timeout\n", action)
	}
}
