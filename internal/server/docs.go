package server

// @title venuemap API
// @version 1.0
// @description REST API for the venue market dashboard: stored snapshots, analytics,
// @description on-demand provider syncs and realtime sync events over WebSocket and SSE.
//
// @contact.name venuemap
// @contact.url https://github.com/agentstation/venuemap
//
// @license.name MIT
// @license.url https://github.com/agentstation/venuemap/blob/master/LICENSE
//
// @host localhost:8080
// @BasePath /api
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key for authentication (optional, configurable)
