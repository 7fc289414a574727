package handlers

import "firebase.google.com/go/v4/auth"

// HandlerBundle groups the handlers and shared dependencies handed to route
// registration.
type HandlerBundle struct {
	AuthClient *auth.Client

	BookingHandler   *BookingHandler
	PropertyHandler  *PropertyHandler
	ClientHandler    *ClientHandler
	MessageHandler   *MessageHandler
	DashboardHandler *DashboardHandler
	StorageHandler   *StorageHandler
}
