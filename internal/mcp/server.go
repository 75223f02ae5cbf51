// Package mcp exposes the attendance estimator as MCP tools over stdio.
package mcp

import (
	"context"

	"attendance-mcp/internal/service"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

const serverName = "attendance-mcp"

const instructions = `Estimates how many invitees of an event will actually attend, based on RSVP counts (yes / maybe / no / no response).
Estimates are probabilistic: always report the expected value together with its standard deviation, never as a guaranteed headcount.`

// Server holds the tool handlers and the underlying MCP server.
type Server struct {
	svc    *service.Service
	server *sdk.Server
}

// NewServer creates the MCP server and registers every tool.
func NewServer(svc *service.Service, version string) *Server {
	s := &Server{svc: svc}
	s.server = sdk.NewServer(&sdk.Implementation{Name: serverName, Version: version}, &sdk.ServerOptions{
		Instructions: instructions,
	})
	s.registerTools()
	return s
}

// Run serves MCP over stdin/stdout until the client disconnects or ctx ends.
func (s *Server) Run(ctx context.Context) error {
	log.Info().Msg("MCP server listening on stdio")
	return s.server.Run(ctx, &sdk.StdioTransport{})
}

// Connect serves a single session over the given transport.
func (s *Server) Connect(ctx context.Context, t sdk.Transport) (*sdk.ServerSession, error) {
	return s.server.Connect(ctx, t, nil)
}
