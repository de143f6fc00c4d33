package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Makepad-fr/todos/internal/model"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	filters := []string{string(model.FilterAll), string(model.FilterActive), string(model.FilterCompleted)}

	srv.AddTool(mcp.NewTool("list_todos",
		mcp.WithDescription("List todos, optionally through a filter. Without one the active filter applies."),
		mcp.WithString("filter",
			mcp.Description("Which todos to show."),
			mcp.Enum(filters...),
		),
	), listTodos(svc))

	srv.AddTool(mcp.NewTool("add_todo",
		mcp.WithDescription("Add an open todo at the top of the list."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Todo title. May be empty.")),
	), addTodo(svc))

	srv.AddTool(mcp.NewTool("edit_todo",
		mcp.WithDescription("Rename the todo with the given id."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Todo id.")),
		mcp.WithString("title", mcp.Required(), mcp.Description("New title.")),
	), editTodo(svc))

	srv.AddTool(mcp.NewTool("toggle_todo",
		mcp.WithDescription("Flip the completed flag of the todo with the given id."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Todo id.")),
	), toggleTodo(svc))

	srv.AddTool(mcp.NewTool("remove_todo",
		mcp.WithDescription("Delete the todo with the given id."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Todo id.")),
	), removeTodo(svc))

	srv.AddTool(mcp.NewTool("clear_completed",
		mcp.WithDescription("Delete every completed todo."),
	), clearCompleted(svc))

	srv.AddTool(mcp.NewTool("set_filter",
		mcp.WithDescription("Change the active filter."),
		mcp.WithString("filter", mcp.Required(), mcp.Enum(filters...)),
	), setFilter(svc))

	srv.AddTool(mcp.NewTool("remaining_count",
		mcp.WithDescription("Count todos that are not completed, regardless of filter."),
	), remainingCount(svc))
}

func listTodos(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var f model.Filter
		if raw := request.GetString("filter", ""); raw != "" {
			parsed, err := model.ParseFilter(raw)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			f = parsed
		}
		return toJSONResult(svc.List(f))
	}
}

func addTodo(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(svc.Add(title))
	}
}

func editTodo(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireInt("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(svc.Rename(id, title))
	}
}

func toggleTodo(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireInt("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(svc.Toggle(id))
	}
}

func removeTodo(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireInt("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(svc.Remove(id))
	}
}

func clearCompleted(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		n := svc.ClearCompleted()
		return toJSONResult(map[string]int{"removed": n, "remaining": svc.Remaining()})
	}
}

func setFilter(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := request.RequireString("filter")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		f, err := model.ParseFilter(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		svc.SetFilter(f)
		return toJSONResult(svc.List(""))
	}
}

func remainingCount(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return toJSONResult(map[string]int{"remaining": svc.Remaining()})
	}
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
