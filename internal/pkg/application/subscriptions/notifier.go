package subscriptions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Notifier posts change notifications to an endpoint. Notifications are queued and
// sent one at a time in the order they were reported.
type Notifier interface {
	Start() error
	Stop() error

	IndividualsChanged(ctx context.Context, change Change)
}

var tracer = otel.Tracer("veda-stub/notifier")

type action func()

type notifier struct {
	mu      sync.Mutex
	started bool

	endpoint   string
	httpClient http.Client

	queue chan action
}

func NewNotifier(ctx context.Context, endpoint string) (Notifier, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("notifier endpoint must not be empty")
	}

	return &notifier{
		endpoint: endpoint,
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		queue: make(chan action, 32),
	}, nil
}

func (n *notifier) Start() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.started {
		return fmt.Errorf("already started")
	}

	n.started = true

	go n.run()

	return nil
}

// Stop sends what is queued and then stops the notifier. Changes reported after Stop
// are dropped.
func (n *notifier) Stop() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.started {
		resultChan := make(chan bool)

		n.queue <- func() {
			// close the queue to signal the consumers that we are going out of business
			close(n.queue)
			resultChan <- true
		}

		<-resultChan
		n.started = false
	}
	return nil
}

func (n *notifier) IndividualsChanged(ctx context.Context, change Change) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.started {
		return
	}

	var err error

	logger := logging.GetFromContext(ctx)

	ctx, span := tracer.Start(
		tracing.ExtractHeaders(context.Background(), tracing.InjectHeaders(ctx)),
		"post",
		trace.WithAttributes(
			attribute.String("veda-operation", string(change.Operation)),
			attribute.Int64("veda-op-id", change.OpID),
		),
	)

	n.queue <- func() {
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		err = n.post(ctx, NewNotification(change))
		if err != nil {
			logger.Error("failed to post notification", "op_id", change.OpID, "err", err.Error())
		}
	}
}

func (n *notifier) post(ctx context.Context, notification *Notification) error {
	body, err := json.MarshalIndent(notification, "", " ")
	if err != nil {
		return fmt.Errorf("marshalling error (%w)", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("unable to create new request (%w)", err)
	}

	req.Header.Add("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request (%w)", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("notification endpoint responded with status code %d", resp.StatusCode)
	}

	return nil
}

func (n *notifier) run() {
	// repeat until the queue is closed
	for action := range n.queue {
		if action == nil {
			return
		}

		action()
	}
}
