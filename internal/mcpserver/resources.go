package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ListURI is the resource holding the whole collection.
const ListURI = "todos://list"

func registerResources(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		ListURI,
		"Todos",
		mcp.WithResourceDescription("Every todo in list order, with the active filter and remaining count."),
		mcp.WithMIMEType("application/json"),
	)
	srv.AddResource(resource, readList(svc))
}

func readList(svc *Service) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		uri := request.Params.URI
		if uri == "" {
			uri = ListURI
		}
		return encodeResourceJSON(uri, svc.Snapshot())
	}
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
