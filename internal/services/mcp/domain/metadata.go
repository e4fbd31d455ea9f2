package domain

import (
	"context"
	"fmt"

	"github.com/louisbranch/riftscout/internal/platform/id"
	"github.com/louisbranch/riftscout/internal/platform/otel"
	"github.com/louisbranch/riftscout/internal/platform/requestctx"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InvocationIDKey is the CallToolResult meta key carrying the invocation id.
const InvocationIDKey = "invocation_id"

// ToolCallMetadata describes one tool invocation.
type ToolCallMetadata struct {
	InvocationID string
}

// NewInvocationID generates an identifier for a tool invocation.
func NewInvocationID() (string, error) {
	return id.NewID()
}

// InvocationMiddleware assigns every tools/call an invocation id before the
// handler runs and stamps it on the result meta, so tool errors carry the id
// too.
func InvocationMiddleware(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		if method != "tools/call" {
			return next(ctx, method, req)
		}
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, fmt.Errorf("generate invocation id: %w", err)
		}
		result, err := next(requestctx.WithInvocationID(ctx, invocationID), method, req)
		if toolResult, ok := result.(*mcp.CallToolResult); ok && toolResult != nil {
			if toolResult.Meta == nil {
				toolResult.Meta = map[string]any{}
			}
			toolResult.Meta[InvocationIDKey] = invocationID
		}
		return result, err
	}
}

// CallToolResultWithMetadata builds a result carrying invocation metadata.
// A non-empty text becomes the display content; otherwise the SDK renders the
// structured output as JSON text.
func CallToolResultWithMetadata(meta ToolCallMetadata, text string) *mcp.CallToolResult {
	result := &mcp.CallToolResult{Meta: map[string]any{}}
	if meta.InvocationID != "" {
		result.Meta[InvocationIDKey] = meta.InvocationID
	}
	if text != "" {
		result.Content = []mcp.Content{&mcp.TextContent{Text: text}}
	}
	return result
}

var tracer = otel.Tracer("github.com/louisbranch/riftscout/mcp")

// toolInvocation bundles the per-call context, metadata and span.
type toolInvocation struct {
	Ctx    context.Context
	Meta   ToolCallMetadata
	cancel context.CancelFunc
	span   trace.Span
}

func newToolInvocation(ctx context.Context, tool string) (*toolInvocation, error) {
	invocationID := requestctx.InvocationIDFromContext(ctx)
	if invocationID == "" {
		var err error
		if invocationID, err = NewInvocationID(); err != nil {
			return nil, fmt.Errorf("generate invocation id: %w", err)
		}
	}
	runCtx, cancel := context.WithTimeout(requestctx.WithInvocationID(ctx, invocationID), toolCallTimeout)
	runCtx, span := tracer.Start(runCtx, "mcp.tool "+tool, trace.WithAttributes(
		attribute.String("mcp.tool", tool),
		attribute.String("mcp.invocation_id", invocationID),
	))
	return &toolInvocation{
		Ctx:    runCtx,
		Meta:   ToolCallMetadata{InvocationID: invocationID},
		cancel: cancel,
		span:   span,
	}, nil
}

// End records err on the span and releases the call context.
func (t *toolInvocation) End(err error) {
	if err != nil {
		t.span.RecordError(err)
		t.span.SetStatus(codes.Error, err.Error())
	}
	t.span.End()
	t.cancel()
}
