package app

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/kiyensi/store-settings-service/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/lxzan/gws"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	WebSocketServerPingInterval = 25
	WebSocketServerPingWait     = 40
)

// WebSocketMessage 客户端消息，格式为 "Action|{json}"
type WebSocketMessage struct {
	Type string `json:"type"`
	Data []byte `json:"data"`
}

type WebsocketServerConfig struct {
	GWSOption    gws.ServerOption
	PingInterval time.Duration
	PingWait     time.Duration
	Logger       *zap.Logger
}

// WebsocketClient 存储每个 WebSocket 连接及其相关状态
type WebsocketClient struct {
	conn   *gws.Conn
	done   chan struct{}
	Ctx    *gin.Context
	server *WebsocketServer
	SF     *singleflight.Group
}

// BindAndValid 反序列化消息体并用全局绑定引擎校验
func (c *WebsocketClient) BindAndValid(data []byte, obj any) (bool, ValidErrors) {
	var errs ValidErrors

	if err := json.Unmarshal(data, obj); err != nil {
		errs = append(errs, &ValidError{
			Key:     "body",
			Message: "Invalid message format",
		})
		return false, errs
	}

	if err := binding.Validator.ValidateStruct(obj); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			trans, transOK := c.Ctx.Value("trans").(ut.Translator)
			for _, validationErr := range validationErrors {
				msg := validationErr.Error()
				if transOK {
					msg = validationErr.Translate(trans)
				}
				errs = append(errs, &ValidError{
					Key:     validationErr.Field(),
					Message: msg,
				})
			}
		}
		return false, errs
	}
	return true, nil
}

// PingLoop 定期发送 Ping 消息，连接关闭后退出
func (c *WebsocketClient) PingLoop(pingInterval time.Duration) {
	ticker := time.NewTicker(pingInterval * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if c.conn == nil {
				return
			}
			if err := c.conn.WritePing(nil); err != nil {
				c.server.log().Error("websocket ping failed", zap.Error(err))
				return
			}
		}
	}
}

// ToResponse 将结果转换为 JSON 并发送给当前客户端
func (c *WebsocketClient) ToResponse(codeObj *code.Code, action ...string) {
	var actionType string
	if len(action) > 0 {
		actionType = action[0]
	}

	content := Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: codeObj.Lang.GetMessage(),
		Data:    codeObj.Data(),
	}
	if codeObj.HaveDetails() {
		content.Details = strings.Join(codeObj.Details(), ",")
	}

	c.send(actionType, content)
	codeObj.Reset()
}

func (c *WebsocketClient) send(actionType string, content any) {
	responseBytes, _ := json.Marshal(content)
	if actionType != "" {
		responseBytes = []byte(fmt.Sprintf(`%s|%s`, actionType, string(responseBytes)))
	}
	c.conn.WriteMessage(gws.OpcodeText, responseBytes)
}

// ------------------------------------> WebsocketServer

type ConnStorage = map[*gws.Conn]*WebsocketClient

// WebsocketServer 管理全部连接，按动作名分发消息
type WebsocketServer struct {
	handlers map[string]func(*WebsocketClient, *WebSocketMessage)
	clients  ConnStorage
	mu       sync.Mutex
	up       *gws.Upgrader
	config   *WebsocketServerConfig
}

func NewWebsocketServer(c WebsocketServerConfig) *WebsocketServer {
	if c.PingInterval == 0 {
		c.PingInterval = WebSocketServerPingInterval
	}
	if c.PingWait == 0 {
		c.PingWait = WebSocketServerPingWait
	}
	wss := WebsocketServer{
		handlers: make(map[string]func(*WebsocketClient, *WebSocketMessage)),
		clients:  make(ConnStorage),
		config:   &c,
	}
	wss.up = gws.NewUpgrader(&wss, &c.GWSOption)
	return &wss
}

func (w *WebsocketServer) log() *zap.Logger {
	if w.config.Logger != nil {
		return w.config.Logger
	}
	return zap.L()
}

// Run 返回处理 WebSocket 升级的 gin 处理函数
func (w *WebsocketServer) Run() gin.HandlerFunc {
	return func(c *gin.Context) {
		socket, err := w.up.Upgrade(c.Writer, c.Request)
		if err != nil {
			w.log().Error("websocket upgrade failed", zap.Error(err))
			return
		}
		client := &WebsocketClient{
			conn:   socket,
			done:   make(chan struct{}),
			Ctx:    c,
			server: w,
			SF:     new(singleflight.Group),
		}
		w.AddClient(client)
		go client.PingLoop(w.config.PingInterval)
		go socket.ReadLoop()
	}
}

// Use 注册动作处理函数
func (w *WebsocketServer) Use(action string, handler func(*WebsocketClient, *WebSocketMessage)) {
	w.handlers[action] = handler
}

// BroadcastResponse sends a response to every connected client. Used by
// the HTTP handlers to push refreshed settings after a mutation.
// BroadcastResponse 向所有连接广播响应
func (w *WebsocketServer) BroadcastResponse(codeObj *code.Code, action string) {
	content := Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: codeObj.Lang.GetMessage(),
		Data:    codeObj.Data(),
	}
	responseBytes, _ := json.Marshal(content)
	if action != "" {
		responseBytes = []byte(fmt.Sprintf(`%s|%s`, action, string(responseBytes)))
	}
	codeObj.Reset()

	b := gws.NewBroadcaster(gws.OpcodeText, responseBytes)
	defer b.Close()

	w.mu.Lock()
	defer w.mu.Unlock()
	for conn := range w.clients {
		_ = b.Broadcast(conn)
	}
}

// ClientCount 返回当前连接数
func (w *WebsocketServer) ClientCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.clients)
}

func (w *WebsocketServer) GetClient(conn *gws.Conn) *WebsocketClient {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clients[conn]
}

func (w *WebsocketServer) AddClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clients[c.conn] = c
}

func (w *WebsocketServer) RemoveClient(conn *gws.Conn) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.clients, conn)
}

func (w *WebsocketServer) OnOpen(conn *gws.Conn) {
	w.log().Info("websocket client connected", zap.Int("count", w.ClientCount()))
	_ = conn.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
}

func (w *WebsocketServer) OnClose(conn *gws.Conn, err error) {
	c := w.GetClient(conn)
	w.RemoveClient(conn)
	if c != nil {
		close(c.done)
	}
	w.log().Info("websocket client left", zap.Int("count", w.ClientCount()))
}

func (w *WebsocketServer) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
	_ = socket.WritePong(nil)
}

func (w *WebsocketServer) OnPong(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
}

func (w *WebsocketServer) OnMessage(conn *gws.Conn, message *gws.Message) {
	defer message.Close()
	if message.Opcode != gws.OpcodeText {
		return
	}
	if message.Data.String() == "close" {
		conn.WriteClose(1000, []byte("ClientClose"))
		return
	}

	c := w.GetClient(conn)
	if c == nil {
		return
	}

	messageStr := message.Data.String()
	index := strings.Index(messageStr, "|")

	var msg WebSocketMessage
	if index != -1 {
		msg.Type = messageStr[:index]
		msg.Data = []byte(messageStr[index+1:])
	} else {
		w.log().Error("websocket message missing action separator")
		return
	}

	handler, exists := w.handlers[msg.Type]
	if !exists {
		w.log().Error("websocket unknown action", zap.String("action", msg.Type))
		return
	}
	handler(c, &msg)
}
