package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToStudent(studentID string, msgType string, payload interface{})
	BroadcastToTutors(msgType string, payload interface{})
}
