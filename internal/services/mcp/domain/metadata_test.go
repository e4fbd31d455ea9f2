package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/louisbranch/riftscout/internal/platform/requestctx"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestInvocationMiddlewareStampsToolErrors(t *testing.T) {
	var seen string
	next := func(ctx context.Context, _ string, _ mcp.Request) (mcp.Result, error) {
		seen = requestctx.InvocationIDFromContext(ctx)
		return &mcp.CallToolResult{IsError: true, Content: []mcp.Content{&mcp.TextContent{Text: "Failed to find player."}}}, nil
	}
	result, err := InvocationMiddleware(next)(context.Background(), "tools/call", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen == "" {
		t.Fatal("expected invocation id in handler context")
	}
	toolResult := result.(*mcp.CallToolResult)
	if got := toolResult.Meta[InvocationIDKey]; got != seen {
		t.Fatalf("meta invocation id = %v, want %q", got, seen)
	}
}

func TestInvocationMiddlewareReusedByHandler(t *testing.T) {
	handler := TopChampionsHandler(Deps{Riot: newFakeRiot(), Champions: newFakeCatalog()})
	var handlerID string
	next := func(ctx context.Context, _ string, _ mcp.Request) (mcp.Result, error) {
		result, _, err := handler(ctx, nil, TopChampionsInput{GameName: "Faker", TagLine: "KR1"})
		handlerID, _ = result.Meta[InvocationIDKey].(string)
		return result, err
	}
	result, err := InvocationMiddleware(next)(context.Background(), "tools/call", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.(*mcp.CallToolResult).Meta[InvocationIDKey]; handlerID == "" || got != handlerID {
		t.Fatalf("middleware id %v, handler id %q", got, handlerID)
	}
}

func TestInvocationMiddlewareSkipsOtherMethods(t *testing.T) {
	want := errors.New("boom")
	next := func(ctx context.Context, method string, _ mcp.Request) (mcp.Result, error) {
		if id := requestctx.InvocationIDFromContext(ctx); id != "" {
			t.Fatalf("unexpected invocation id %q for %s", id, method)
		}
		return nil, want
	}
	if _, err := InvocationMiddleware(next)(context.Background(), "resources/read", nil); !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}
