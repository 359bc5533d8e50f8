package openai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/hairgator/recipe-rag/internal/core/recipe"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const (
	// DefaultModel はデフォルトで使用するOpenAIモデル
	DefaultModel = "gpt-4o-mini"

	// DefaultTimeout はAPI呼び出しのデフォルトタイムアウト
	DefaultTimeout = 120 * time.Second

	// DefaultTemperature はレシピ生成の温度。表現の揺らぎは許しつつ
	// 手順の一貫性を保つための値。
	DefaultTemperature = 0.7

	// MaxRetries はレート制限エラー時の最大リトライ回数
	MaxRetries = 3

	// BaseBackoff はExponential Backoffの基底時間
	BaseBackoff = 2 * time.Second

	// MaxBackoff はExponential Backoffの最大待機時間
	MaxBackoff = 32 * time.Second
)

var (
	// ErrAPIKeyNotSet はAPIキーが設定されていない場合のエラー
	ErrAPIKeyNotSet = errors.New("OpenAI API key not set: please set OPENAI_API_KEY environment variable")

	// ErrMaxRetriesExceeded は最大リトライ回数を超過した場合のエラー
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)

// Client は OpenAI API を使用したレシピ生成クライアント
type Client struct {
	client      openai.Client
	model       string
	timeout     time.Duration
	temperature float64
}

// ClientOption は Client のオプション設定
type ClientOption func(*Client)

// WithModel はモデル名を上書きする
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTimeout はAPIコールのタイムアウトを上書きする
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithTemperature は生成温度を上書きする
func WithTemperature(temperature float64) ClientOption {
	return func(c *Client) {
		c.temperature = temperature
	}
}

// NewClient は新しい Client を作成する
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyNotSet
	}

	c := &Client{
		client:      openai.NewClient(option.WithAPIKey(apiKey)),
		model:       DefaultModel,
		timeout:     DefaultTimeout,
		temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ModelName はモデル名を返す
func (c *Client) ModelName() string {
	return c.model
}

// Generate はプロンプトに対する応答全文を生成する。
// レート制限エラーはExponential Backoffでリトライする。
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			if err := waitBackoff(ctx, attempt); err != nil {
				return "", err
			}
		}

		completion, err := c.client.Chat.Completions.New(ctx, c.completionParams(prompt))
		if err != nil {
			lastErr = err
			if isRateLimitError(err) {
				continue
			}
			return "", fmt.Errorf("OpenAI API call failed: %w", err)
		}

		if len(completion.Choices) == 0 {
			return "", fmt.Errorf("no completion choices returned")
		}
		return completion.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("%w: %v", ErrMaxRetriesExceeded, lastErr)
}

// GenerateStream は応答を逐次生成し、断片ごとに onFragment を呼び出す。
// ストリーミングは接続確立後の失敗をリトライできないため、
// リトライ対象はストリーム開始前のレート制限エラーのみ。
func (c *Client) GenerateStream(ctx context.Context, prompt string, onFragment func(fragment string)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stream := c.client.Chat.Completions.NewStreaming(ctx, c.completionParams(prompt))
	defer stream.Close()

	var sb strings.Builder
	acc := openai.ChatCompletionAccumulator{}
	for stream.Next() {
		chunk := stream.Current()
		acc.AddChunk(chunk)

		if len(chunk.Choices) == 0 {
			continue
		}
		fragment := chunk.Choices[0].Delta.Content
		if fragment == "" {
			continue
		}
		sb.WriteString(fragment)
		if onFragment != nil {
			onFragment(fragment)
		}
	}
	if err := stream.Err(); err != nil {
		return "", fmt.Errorf("OpenAI streaming failed: %w", err)
	}

	return sb.String(), nil
}

func (c *Client) completionParams(prompt string) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.temperature),
	}
}

func waitBackoff(ctx context.Context, attempt int) error {
	backoffDuration := time.Duration(math.Pow(2, float64(attempt-1))) * BaseBackoff
	if backoffDuration > MaxBackoff {
		backoffDuration = MaxBackoff
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(backoffDuration):
		return nil
	}
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}

	return false
}

// インターフェース実装の確認
var _ recipe.StreamingGenerator = (*Client)(nil)
