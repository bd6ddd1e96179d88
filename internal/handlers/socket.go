package handlers

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"
	"github.com/pagebook-app/pagebook-backend/internal/store"
	"github.com/pagebook-app/pagebook-backend/pkg/logger"
	"github.com/pagebook-app/pagebook-backend/pkg/utils"
)

var SocketServer *socketio.Server

// Presence tracking
var (
	onlineUsers   = make(map[string]string) // userId -> socketId
	onlineUsersMu sync.RWMutex
)

// Personal store subscriptions, cancelled on disconnect
var (
	userSubs   = make(map[string]*store.Subscription) // socketId -> subscription
	userSubsMu sync.Mutex
)

// Per-entity bridges (one per thread or post room) are shared across
// sockets watching the same entity and torn down with the last leaver.
var (
	roomBridges  = make(map[string]*roomBridge) // room -> bridge
	roomBridgeMu sync.Mutex
)

type roomBridge struct {
	sub  *store.Subscription
	refs int
}

// Typing throttle: minimum interval between typing events per user
var (
	lastTypingEmit         = make(map[string]time.Time)
	lastTypingMu           sync.Mutex
	typingThrottleDuration = 3 * time.Second
)

// GetOnlineUsers returns list of online user IDs
func GetOnlineUsers() []string {
	onlineUsersMu.RLock()
	defer onlineUsersMu.RUnlock()

	users := make([]string, 0, len(onlineUsers))
	for userID := range onlineUsers {
		users = append(users, userID)
	}
	return users
}

// IsUserOnline checks if a user is online
func IsUserOnline(userID string) bool {
	onlineUsersMu.RLock()
	defer onlineUsersMu.RUnlock()
	_, exists := onlineUsers[userID]
	return exists
}

// BroadcastPresenceUpdate broadcasts user online/offline status to all clients
func BroadcastPresenceUpdate(userID string, isOnline bool) {
	if SocketServer != nil {
		SocketServer.BroadcastToRoom("/", "presence", "presence_update", map[string]interface{}{
			"userId":   userID,
			"isOnline": isOnline,
		})
	}
}

// bridgeTopic pumps a store topic into a socket room until the subscription
// is cancelled.
func bridgeTopic(server *socketio.Server, topic, room, event string) *store.Subscription {
	sub := graph.Broker().Subscribe(topic)
	go func() {
		for ev := range sub.C {
			server.BroadcastToRoom("/", room, event, ev)
		}
	}()
	return sub
}

func joinEntityRoom(server *socketio.Server, s socketio.Conn, topic, room, event string) {
	s.Join(room)

	roomBridgeMu.Lock()
	defer roomBridgeMu.Unlock()
	if b, ok := roomBridges[room]; ok {
		b.refs++
		return
	}
	roomBridges[room] = &roomBridge{sub: bridgeTopic(server, topic, room, event), refs: 1}
}

func leaveEntityRoom(s socketio.Conn, room string) {
	s.Leave(room)

	roomBridgeMu.Lock()
	defer roomBridgeMu.Unlock()
	if b, ok := roomBridges[room]; ok {
		b.refs--
		if b.refs <= 0 {
			b.sub.Cancel()
			delete(roomBridges, room)
		}
	}
}

func InitSocketServer() *socketio.Server {
	server := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&websocket.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
			&polling.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
		},
	})

	// Feed and room chat are fan-out topics; bridge them once.
	bridgeTopic(server, store.TopicPosts, "feed", "feed_event")
	bridgeTopic(server, store.TopicChat, "chat", "chat_event")

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		url := s.URL()

		token := url.Query().Get("token")
		if token == "" {
			token = url.Query().Get("auth_token") // Fallback
		}
		if token == "" {
			logger.Warn().Str("socket_id", s.ID()).Msg("Socket connection rejected: no token")
			return fmt.Errorf("authentication required")
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			logger.Warn().Str("socket_id", s.ID()).Msg("Socket connection rejected: invalid token")
			return fmt.Errorf("invalid token")
		}

		userID := claims.UserID
		s.SetContext(userID)

		onlineUsersMu.Lock()
		onlineUsers[userID] = s.ID()
		onlineUsersMu.Unlock()

		// Personal room for notifications and DM delivery
		s.Join(userID)
		s.Join("presence")

		// Pump the user's personal store topic into their room; cancelled
		// on disconnect.
		sub := bridgeTopic(server, store.TopicUser+userID, userID, "user_event")
		userSubsMu.Lock()
		userSubs[s.ID()] = sub
		userSubsMu.Unlock()

		BroadcastPresenceUpdate(userID, true)
		s.Emit("online_users", GetOnlineUsers())

		return nil
	})

	server.OnEvent("/", "join_feed", func(s socketio.Conn, _ string) {
		s.Join("feed")
	})

	server.OnEvent("/", "join_chat", func(s socketio.Conn, _ string) {
		s.Join("chat")
	})

	server.OnEvent("/", "join_thread", func(s socketio.Conn, threadID string) {
		joinEntityRoom(server, s, store.TopicThread+threadID, "thread:"+threadID, "thread_event")
	})

	server.OnEvent("/", "leave_thread", func(s socketio.Conn, threadID string) {
		leaveEntityRoom(s, "thread:"+threadID)
	})

	server.OnEvent("/", "join_post", func(s socketio.Conn, postID string) {
		joinEntityRoom(server, s, store.TopicPost+postID, "post:"+postID, "post_event")
	})

	server.OnEvent("/", "leave_post", func(s socketio.Conn, postID string) {
		leaveEntityRoom(s, "post:"+postID)
	})

	server.OnEvent("/", "typing", func(s socketio.Conn, data map[string]interface{}) {
		recipientID, _ := data["recipientId"].(string)
		if recipientID == "" {
			return
		}

		senderID, _ := s.Context().(string)
		if senderID == "" {
			return
		}

		lastTypingMu.Lock()
		lastTime, exists := lastTypingEmit[senderID]
		if exists && time.Since(lastTime) < typingThrottleDuration {
			lastTypingMu.Unlock()
			return
		}
		lastTypingEmit[senderID] = time.Now()
		lastTypingMu.Unlock()

		server.BroadcastToRoom("/", recipientID, "user_typing", map[string]interface{}{
			"userId":    senderID,
			"expiresAt": time.Now().Add(4 * time.Second).Unix(),
		})
	})

	server.OnEvent("/", "get_online_users", func(s socketio.Conn, _ string) {
		s.Emit("online_users", GetOnlineUsers())
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		// Detach the personal subscription; Cancel is idempotent.
		userSubsMu.Lock()
		if sub, ok := userSubs[s.ID()]; ok {
			sub.Cancel()
			delete(userSubs, s.ID())
		}
		userSubsMu.Unlock()

		onlineUsersMu.Lock()
		var disconnectedUserID string
		for userID, socketID := range onlineUsers {
			if socketID == s.ID() {
				disconnectedUserID = userID
				delete(onlineUsers, userID)
				break
			}
		}
		onlineUsersMu.Unlock()

		if disconnectedUserID != "" {
			BroadcastPresenceUpdate(disconnectedUserID, false)
		}
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logger.Warn().Err(e).Msg("Socket error")
	})

	go server.Serve()
	SocketServer = server
	return server
}

// SocketHandler wraps the Socket.io server for gin.
func SocketHandler(server *socketio.Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		server.ServeHTTP(c.Writer, c.Request)
	}
}
