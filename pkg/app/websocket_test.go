package app

import (
	"sync"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/lxzan/gws"
)

// 并发注册/注销连接后，连接表保持一致

func TestProperty_ClientRegistryConsistency(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("add then remove leaves an empty registry", prop.ForAll(
		func(clientCount int) bool {
			if clientCount <= 0 {
				return true
			}

			w := NewWebsocketServer(WebsocketServerConfig{})

			clients := make([]*WebsocketClient, clientCount)
			for i := range clients {
				clients[i] = &WebsocketClient{
					conn:   new(gws.Conn),
					done:   make(chan struct{}),
					server: w,
				}
			}

			var wg sync.WaitGroup
			for _, c := range clients {
				wg.Add(1)
				go func(c *WebsocketClient) {
					defer wg.Done()
					w.AddClient(c)
				}(c)
			}
			wg.Wait()

			if w.ClientCount() != clientCount {
				t.Logf("after add: count = %d, want %d", w.ClientCount(), clientCount)
				return false
			}

			for _, c := range clients {
				if got := w.GetClient(c.conn); got != c {
					t.Log("GetClient returned wrong client")
					return false
				}
			}

			for _, c := range clients {
				wg.Add(1)
				go func(c *WebsocketClient) {
					defer wg.Done()
					w.RemoveClient(c.conn)
				}(c)
			}
			wg.Wait()

			return w.ClientCount() == 0
		},
		gen.IntRange(1, 50),
	))

	properties.TestingRun(t)
}

func TestUse_RegistersHandler(t *testing.T) {
	w := NewWebsocketServer(WebsocketServerConfig{})

	called := false
	w.Use("SettingsGet", func(c *WebsocketClient, msg *WebSocketMessage) {
		called = true
	})

	handler, ok := w.handlers["SettingsGet"]
	if !ok {
		t.Fatal("handler not registered")
	}
	handler(nil, &WebSocketMessage{Type: "SettingsGet"})
	if !called {
		t.Error("registered handler was not invoked")
	}
}

func TestValidErrors_Accessors(t *testing.T) {
	errs := ValidErrors{
		{Key: "client", Message: "client must be a valid version"},
		{Key: "name", Message: "name is required"},
	}

	if got := errs.ErrorsToString(); got != "client must be a valid version,name is required" {
		t.Errorf("ErrorsToString() = %q", got)
	}

	m := errs.MapsToString()
	if m["client"] != "client must be a valid version" || m["name"] != "name is required" {
		t.Errorf("MapsToString() = %v", m)
	}

	if errs.Error() != errs.ErrorsToString() {
		t.Error("Error() should match ErrorsToString()")
	}
}
