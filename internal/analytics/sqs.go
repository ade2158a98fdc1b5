package analytics

import (
	"context"
	"encoding/json"
	"time"

	"DONATION_CHECKOUT_GO/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type SendMessageAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSSink publishes each event as a JSON message.
type SQSSink struct {
	Client   SendMessageAPI
	QueueURL string
	Log      *utils.Logger
}

type queuedEvent struct {
	Event
	SentAt string `json:"sent_at"`
}

func NewSQSSink(client SendMessageAPI, queueURL string, logger *utils.Logger) *SQSSink {
	return &SQSSink{Client: client, QueueURL: queueURL, Log: logger}
}

func (s *SQSSink) Track(ctx context.Context, event Event) {
	payload, err := json.Marshal(queuedEvent{Event: event, SentAt: time.Now().UTC().Format(time.RFC3339)})
	if err != nil {
		s.Log.Error("erro_serializar_evento_analytics", map[string]interface{}{"error": err.Error(), "action": event.Action})
		return
	}

	_, err = s.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.QueueURL),
		MessageBody: aws.String(string(payload)),
	})
	if err != nil {
		s.Log.Error("erro_enviar_evento_analytics", map[string]interface{}{"error": err.Error(), "action": event.Action})
	}
}
