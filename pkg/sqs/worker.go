package sqs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"go-weather/pkg/log"
)

// HandlerFunc defines a function that handles a SQS Message
type HandlerFunc func(ctx context.Context, msg *types.Message) error

// HandleMessage implements the Handler interface for HandlerFunc
func (f HandlerFunc) HandleMessage(ctx context.Context, msg *types.Message) error {
	return f(ctx, msg)
}

// Handler defines an interface that processes a SQS Message
type Handler interface {
	HandleMessage(ctx context.Context, msg *types.Message) error
}

// LogLevel represents the logging level for the Worker
type LogLevel int

const (
	// Silent sends every log line to debug
	Silent LogLevel = iota
	// ErrorLevel logs only errors
	ErrorLevel
	// InfoLevel logs informational and error messages
	InfoLevel
)

// receiveFailureThreshold is the number of consecutive receive errors that marks a worker down
const receiveFailureThreshold = 3

// WorkerConfig defines the configuration options for a Worker
type WorkerConfig struct {
	MaxNumberOfMessages int32
	WaitTimeSeconds     int32
	PoolSize            int
	LogLevel            LogLevel
	// ErrorBackoff is the pause after a failed receive
	ErrorBackoff time.Duration
}

// Worker polls and processes messages from a SQS queue
type Worker struct {
	sqsClient           SQSClient
	queueName           string
	queueURL            string
	maxNumberOfMessages int32
	waitTimeSeconds     int32
	poolSize            int
	logLevel            LogLevel
	errorBackoff        time.Duration
	handler             Handler

	running             atomic.Bool
	processed           atomic.Int64
	failed              atomic.Int64
	consecutiveFailures atomic.Int64
	lastError           atomic.Value
}

// NewWorker creates and returns a new Worker.
//
// If the provided WorkerConfig is nil or its fields are zero,
// the following defaults will be used:
//   - MaxNumberOfMessages: 10
//   - WaitTimeSeconds: 20
//   - PoolSize: 1
//   - LogLevel: Silent
//   - ErrorBackoff: 1s
//
// Validations:
//   - MaxNumberOfMessages must be between 1 and 10.
//   - WaitTimeSeconds must be between 1 and 20.
//   - PoolSize must be greater than 0.
func NewWorker(ctx context.Context, sqsClient SQSClient, queueName string, handler Handler, config *WorkerConfig) (*Worker, error) {
	var maxMessages int32 = 10
	var waitTime int32 = 20
	poolSize := 1
	logLevel := Silent
	errorBackoff := time.Second

	if config != nil {
		if config.MaxNumberOfMessages != 0 {
			maxMessages = config.MaxNumberOfMessages
		}
		if config.WaitTimeSeconds != 0 {
			waitTime = config.WaitTimeSeconds
		}
		if config.PoolSize != 0 {
			poolSize = config.PoolSize
		}
		if config.ErrorBackoff != 0 {
			errorBackoff = config.ErrorBackoff
		}
		logLevel = config.LogLevel
	}

	if maxMessages < 1 || maxMessages > 10 {
		return nil, errors.New("maxNumberOfMessages must be between 1 and 10")
	}
	if waitTime < 1 || waitTime > 20 {
		return nil, errors.New("waitTimeSeconds must be between 1 and 20")
	}
	if poolSize < 1 {
		return nil, errors.New("poolSize must be greater than 0")
	}

	queueURL, err := lookupQueueURL(ctx, sqsClient, queueName)
	if err != nil {
		return nil, fmt.Errorf("unable to get queue URL: %w", err)
	}

	return &Worker{
		sqsClient:           sqsClient,
		queueName:           queueName,
		queueURL:            queueURL,
		maxNumberOfMessages: maxMessages,
		waitTimeSeconds:     waitTime,
		poolSize:            poolSize,
		logLevel:            logLevel,
		errorBackoff:        errorBackoff,
		handler:             handler,
	}, nil
}

// Start begins polling messages and processing them concurrently.
// It spawns PoolSize pollers that keep polling until ctx is canceled,
// and blocks until all of them return.
func (w *Worker) Start(ctx context.Context) {
	var wg sync.WaitGroup

	w.running.Store(true)
	defer w.running.Store(false)

	for i := 0; i < w.poolSize; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.pollMessages(ctx)
		}()
	}

	wg.Wait()
}

// Launch marks the worker running and starts it in the background, so a health
// check right after Launch already sees it up. The returned channel is closed
// once every poller has returned.
func (w *Worker) Launch(ctx context.Context) <-chan struct{} {
	w.running.Store(true)

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Start(ctx)
	}()
	return done
}

func (w *Worker) pollMessages(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		output, err := w.sqsClient.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            &w.queueURL,
			MaxNumberOfMessages: w.maxNumberOfMessages,
			WaitTimeSeconds:     w.waitTimeSeconds,
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.consecutiveFailures.Add(1)
			w.lastError.Store(err.Error())
			w.logf(ErrorLevel, "failed to receive messages from %s: %v", w.queueName, err)

			select {
			case <-ctx.Done():
				return
			case <-time.After(w.errorBackoff):
			}
			continue
		}
		w.consecutiveFailures.Store(0)

		for i := range output.Messages {
			w.handleMessage(ctx, &output.Messages[i])
		}
	}
}

func (w *Worker) handleMessage(ctx context.Context, msg *types.Message) {
	if err := w.handler.HandleMessage(ctx, msg); err != nil {
		w.failed.Add(1)
		w.logf(ErrorLevel, "error processing message ID %s: %v", safeMessageID(msg), err)
		return
	}
	w.processed.Add(1)

	_, err := w.sqsClient.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      &w.queueURL,
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		w.logf(ErrorLevel, "failed to delete message ID %s: %v", safeMessageID(msg), err)
	} else {
		w.logf(InfoLevel, "successfully deleted message ID %s", safeMessageID(msg))
	}
}

// HealthCheck reports the worker down when it is not polling or keeps failing to receive
func (w *Worker) HealthCheck() WorkerHealth {
	running := w.running.Load()
	failures := w.consecutiveFailures.Load()

	status := StatusUp
	if !running || failures >= receiveFailureThreshold {
		status = StatusDown
	}

	lastError, _ := w.lastError.Load().(string)
	return WorkerHealth{
		Status: status,
		Details: map[string]string{
			"queue":                w.queueName,
			"running":              strconv.FormatBool(running),
			"pool_size":            strconv.Itoa(w.poolSize),
			"processed":            strconv.FormatInt(w.processed.Load(), 10),
			"failed":               strconv.FormatInt(w.failed.Load(), 10),
			"consecutive_failures": strconv.FormatInt(failures, 10),
			"last_error":           lastError,
		},
	}
}

func (w *Worker) logf(level LogLevel, format string, v ...interface{}) {
	if w.logLevel == Silent {
		log.Debugf(format, v...)
	}
	if level == ErrorLevel && (w.logLevel == ErrorLevel || w.logLevel == InfoLevel) {
		log.Errorf(format, v...)
	}
	if level == InfoLevel && w.logLevel == InfoLevel {
		log.Infof(format, v...)
	}
}

func safeMessageID(msg *types.Message) string {
	if msg == nil || msg.MessageId == nil {
		return ""
	}
	return *msg.MessageId
}
