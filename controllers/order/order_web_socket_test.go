package orderControllers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Murshi404/Online-store-Project/models"
)

// Dashboards connect and disconnect while payment confirmations broadcast
// from other goroutines; the client registry must survive that and every
// registered dashboard must still receive subsequent broadcasts.
func TestOrderWebSocketBroadcast(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", OrderWebSocketHandler)
	server := httptest.NewServer(r)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"

	const dashboards = 8
	conns := make([]*websocket.Conn, dashboards)
	var wg sync.WaitGroup
	for i := 0; i < dashboards; i++ {
		i := i
		wg.Add(2)
		go func() {
			defer wg.Done()
			conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
			if !assert.NoError(t, err) {
				return
			}
			conns[i] = conn
		}()
		// payments confirm while dashboards are still connecting
		go func() {
			defer wg.Done()
			BroadcastOrderPaid(models.Order{ID: uint(i + 1), IsPaid: true})
		}()
	}
	wg.Wait()

	for _, conn := range conns {
		require.NotNil(t, conn)
	}
	defer func() {
		for _, conn := range conns {
			conn.Close()
		}
	}()

	// let the handlers finish registering every connection
	time.Sleep(100 * time.Millisecond)

	BroadcastOrderPaid(models.Order{ID: 999, OrderRef: "ref-999", IsPaid: true})

	for _, conn := range conns {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var got models.Order
		for got.ID != 999 {
			_, data, err := conn.ReadMessage()
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(data, &got))
		}
		assert.True(t, got.IsPaid)
		assert.Equal(t, "ref-999", got.OrderRef)
	}
}
