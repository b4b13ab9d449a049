package ws

// Hub fans payloads out to connected clients and doubles as the presence
// registry: a user is online exactly while a client is registered for them.
// Delivery is best-effort; a full or gone client simply misses the payload.
type Hub interface {
	Run()
	RegisterClient(client *UserClient)
	UnregisterClient(client *UserClient)
	SendToUser(userID string, message []byte)
	Broadcast(message []byte)
	IsOnline(userID string) bool
	Online() []string
	ClientCount() int
	SetOnClientUnregister(callback func(client *UserClient) error)
}
