package http

import (
	"github.com/nyssa-notify/internal/application/relay"
	"github.com/nyssa-notify/internal/transport/stream"
	"go.uber.org/zap"
)

// RelayDeps holds what the chat relay router needs.
type RelayDeps struct {
	Relay  relay.Service
	Logger *zap.Logger
}

// DispatcherDeps holds what the dispatcher's push-mode router needs.
type DispatcherDeps struct {
	Dispatcher stream.Dispatcher
	Logger     *zap.Logger
}
