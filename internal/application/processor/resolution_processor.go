package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"go-weather/internal/domain/entity"
	"go-weather/pkg/log"
)

// ResolutionProcessor consumes resolution events and records them in the
// structured log, where they are aggregated into search statistics.
type ResolutionProcessor struct{}

func NewResolutionProcessor() *ResolutionProcessor {
	return &ResolutionProcessor{}
}

// HandleMessage implements the sqs.Handler interface
func (p *ResolutionProcessor) HandleMessage(ctx context.Context, msg *types.Message) error {
	if msg == nil || msg.Body == nil {
		return fmt.Errorf("received nil message or message body")
	}

	var event entity.ResolutionEvent
	if err := json.Unmarshal([]byte(*msg.Body), &event); err != nil {
		return fmt.Errorf("failed to unmarshal resolution event: %w", err)
	}
	if event.ID == "" || event.Outcome == "" {
		return fmt.Errorf("resolution event is missing id or outcome")
	}

	log.Info("Resolution event",
		zap.String("event_id", event.ID),
		zap.String("session_id", event.SessionID),
		zap.String("label", event.Label),
		zap.String("outcome", string(event.Outcome)),
		zap.String("matched_query", event.MatchedQuery),
		zap.Int("status_code", event.StatusCode),
		zap.Int("attempts", event.Attempts),
		zap.Time("occurred_at", event.OccurredAt),
	)
	return nil
}
