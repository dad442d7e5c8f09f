package anthropic

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockClient implements Client for testing.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) CreateMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MessageResponse), args.Error(1)
}

func TestResponseText(t *testing.T) {
	resp := &MessageResponse{
		Content: []ContentBlock{
			{Type: "text", Text: "hello "},
			{Type: "tool_use", Text: "ignored"},
			{Type: "text", Text: "world"},
		},
	}
	assert.Equal(t, "hello world", resp.Text())
}

func TestEstimateCost(t *testing.T) {
	usage := TokenUsage{
		InputTokens:  1_000_000,
		OutputTokens: 500_000,
	}

	cost := usage.EstimateCost("claude-sonnet-4-5-20250929")
	assert.InDelta(t, 3.00+7.50, cost, 0.001)

	assert.Zero(t, usage.EstimateCost("unknown-model"))
}

func TestEstimateCostWithCache(t *testing.T) {
	usage := TokenUsage{
		InputTokens:              100_000,
		OutputTokens:             50_000,
		CacheCreationInputTokens: 200_000,
		CacheReadInputTokens:     1_000_000,
	}

	cost := usage.EstimateCost("claude-haiku-4-5-20251001")
	want := 0.08 + 0.20 + (0.16 * 1.25) + (0.80 * 0.1)
	assert.InDelta(t, want, cost, 0.001)
}

func TestBuildCachedSystemBlocks(t *testing.T) {
	blocks := BuildCachedSystemBlocks("you are a label reader")

	require.Len(t, blocks, 1)
	assert.Equal(t, "you are a label reader", blocks[0].Text)
	require.NotNil(t, blocks[0].CacheControl)
	assert.Equal(t, "1h", blocks[0].CacheControl.TTL)
}

func TestNewDocumentMessage(t *testing.T) {
	msg := NewDocumentMessage("cGRmZGF0YQ==", "list the fields")

	assert.Equal(t, "user", msg.Role)
	require.Len(t, msg.Blocks, 2)
	assert.Equal(t, "cGRmZGF0YQ==", msg.Blocks[0].PDFBase64)
	assert.Equal(t, "list the fields", msg.Blocks[1].Text)
}

func TestToSDKMessagesBlockKinds(t *testing.T) {
	msgs := []Message{
		{Role: "user", Blocks: []Block{
			{PDFBase64: "cGRm"},
			{ImageBase64: "aW1n", ImageMediaType: "image/png"},
			{Text: "describe this"},
		}},
		NewTextMessage("assistant", "ok"),
	}

	out := toSDKMessages(msgs)

	require.Len(t, out, 2)
	require.Len(t, out[0].Content, 3)
	assert.NotNil(t, out[0].Content[0].OfDocument)
	assert.NotNil(t, out[0].Content[1].OfImage)
	assert.NotNil(t, out[0].Content[2].OfText)
	assert.Equal(t, "assistant", string(out[1].Role))
}

func TestRateLimitedPassesThrough(t *testing.T) {
	inner := &MockClient{}
	resp := &MessageResponse{ID: "msg_1"}
	inner.On("CreateMessage", mock.Anything, mock.Anything).Return(resp, nil)

	c := RateLimited(inner, 600)

	got, err := c.CreateMessage(context.Background(), MessageRequest{Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, "msg_1", got.ID)
	inner.AssertExpectations(t)
}

func TestRateLimitedCancelledContext(t *testing.T) {
	inner := &MockClient{}
	inner.On("CreateMessage", mock.Anything, mock.Anything).Return(&MessageResponse{}, nil).Once()

	// 1 request/minute; the first call spends the burst token.
	c := RateLimited(inner, 1)
	_, err := c.CreateMessage(context.Background(), MessageRequest{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = c.CreateMessage(ctx, MessageRequest{})
	assert.Error(t, err)
	inner.AssertNumberOfCalls(t, "CreateMessage", 1)
}

func TestRateLimitedDisabled(t *testing.T) {
	inner := &MockClient{}
	assert.Same(t, Client(inner), RateLimited(inner, 0))
}
