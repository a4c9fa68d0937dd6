package ws

import (
	"encoding/json"
	"sync"

	"studypulse/internal/platform/logger"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Tutor message types
const (
	MsgProgressUpdate   MessageType = "progress_update"
	MsgEscalationRaised MessageType = "escalation_raised"
	MsgDashboardUpdate  MessageType = "dashboard_update"
)

// Student message types
const (
	MsgRatingUpdate     MessageType = "rating_update"
	MsgNudge            MessageType = "nudge"
	MsgSessionScheduled MessageType = "session_scheduled"
	MsgSessionStarted   MessageType = "session_started"
	MsgSessionEnded     MessageType = "session_ended"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections for tutors and students
type Hub struct {
	tutorConns   map[string]*Connection            // tutorID -> conn
	studentConns map[string]map[string]*Connection // studentID -> connID -> conn

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage

	log *logger.Logger
}

// Connection represents a WebSocket connection
type Connection struct {
	ID        string
	TutorID   string // empty for student connections
	StudentID string // empty for tutor connections
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	ToTutors  bool
	ToStudent string // target student, ignored when ToTutors is set
	Message   *Message
}

// NewHub creates a new WebSocket hub
func NewHub(log *logger.Logger) *Hub {
	h := &Hub{
		tutorConns:   make(map[string]*Connection),
		studentConns: make(map[string]map[string]*Connection),
		register:     make(chan *Connection),
		unregister:   make(chan *Connection),
		broadcast:    make(chan *BroadcastMessage, 256),
		log:          log,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if conn.TutorID != "" {
				h.tutorConns[conn.TutorID] = conn
				h.log.Info("tutor connected", "tutorId", conn.TutorID)
			} else {
				if h.studentConns[conn.StudentID] == nil {
					h.studentConns[conn.StudentID] = make(map[string]*Connection)
				}
				h.studentConns[conn.StudentID][conn.ID] = conn
				h.log.Info("student connected", "studentId", conn.StudentID)
			}
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conn.TutorID != "" {
				if existing, ok := h.tutorConns[conn.TutorID]; ok && existing == conn {
					delete(h.tutorConns, conn.TutorID)
					close(conn.Send)
					h.log.Info("tutor disconnected", "tutorId", conn.TutorID)
				}
			} else {
				if conns, ok := h.studentConns[conn.StudentID]; ok {
					if existing, ok := conns[conn.ID]; ok && existing == conn {
						delete(conns, conn.ID)
						close(conn.Send)
						if len(conns) == 0 {
							delete(h.studentConns, conn.StudentID)
						}
						h.log.Info("student disconnected", "studentId", conn.StudentID)
					}
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)

			if msg.ToTutors {
				for _, conn := range h.tutorConns {
					select {
					case conn.Send <- data:
					default:
						// Drop message if buffer full
					}
				}
			} else if conns, ok := h.studentConns[msg.ToStudent]; ok {
				for _, conn := range conns {
					select {
					case conn.Send <- data:
					default:
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToTutors sends a message to every connected tutor
// (implements service.Broadcaster)
func (h *Hub) BroadcastToTutors(msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		ToTutors: true,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// BroadcastToStudent sends a message to one student's connections
// (implements service.Broadcaster)
func (h *Hub) BroadcastToStudent(studentID, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		ToStudent: studentID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
