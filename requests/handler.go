package requests

import (
	"context"
	"encoding/json"

	"github.com/sourcegraph/jsonrpc2"

	anyls "github.com/sebostien/any-ls"
	"github.com/sebostien/any-ls/health"
	"github.com/sebostien/any-ls/log"
)

// Conn is the outbound half of a JSONRPC2 connection.  *jsonrpc2.Conn
// satisfies it; tests substitute a mock.
type Conn interface {
	Call(ctx context.Context, method string, params, result interface{}, opt ...jsonrpc2.CallOption) error
	Notify(ctx context.Context, method string, params interface{}, opt ...jsonrpc2.CallOption) error
	Reply(ctx context.Context, id jsonrpc2.ID, result interface{}) error
	ReplyWithError(ctx context.Context, id jsonrpc2.ID, respErr *jsonrpc2.Error) error
	Close() error
}

// Handler implements jsonrpc2.Handler for one client connection.  Method
// dispatch and document bookkeeping run on a single queue goroutine;
// diagnostics recomputation is pushed onto separate goroutines so a slow
// external tool for one document never blocks another.
type Handler struct {
	conn     Conn
	rm       *requestMap
	store    *anyls.Store
	registry *anyls.Registry
	load     *health.Load
	log      *log.Log

	incomingQueue chan requestHandler
	outgoingQueue chan replyHandler
}

type requestHandler interface {
	preprocess(params *json.RawMessage) error
	work() error

	id() jsonrpc2.ID
	ctx() context.Context
}

type replyHandler interface {
	requestHandler
	reply() (interface{}, error)
}

// deferredReplyHandler is a replyHandler whose work continues on its own
// goroutine after work returns; it enqueues itself on the outgoing queue
// once the result is ready, instead of being enqueued by the queue loop.
// Handlers that invoke a blocking external tool use this so one slow
// document cannot stall requests for another.
type deferredReplyHandler interface {
	replyHandler
	deferredReply()
}

// NewHandler creates a new Handler serving the given provider registry.
func NewHandler(load *health.Load, registry *anyls.Registry, l *log.Log) *Handler {
	h := &Handler{
		rm:       newRequestMap(),
		store:    anyls.NewStore(registry, l),
		registry: registry,
		load:     load,
		log:      l,

		// Hopefully these queues are sufficiently deep.  Otherwise, the
		// handler will start blocking.
		incomingQueue: make(chan requestHandler, 1024),
		outgoingQueue: make(chan replyHandler, 256),
	}

	go h.processQueues()

	return h
}

// SetConnection assigns the outbound connection and routes log output
// to the client.
func (h *Handler) SetConnection(conn Conn) {
	h.conn = conn
	h.log.AssignSender(h)
}

// Handle invokes the correct method handler based on the JSONRPC2 method
func (h *Handler) Handle(ctx context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) {
	f, ok := h.rm.Lookup(req.Method)
	if !ok {
		h.log.Verbosef("Unhandled method '%s'\n", req.Method)
		return
	}

	rh := f(ctx, h, req)

	_, isReplyHandler := rh.(replyHandler)
	if req.Notif && isReplyHandler {
		h.log.Errorf("Request handler is also a reply handler, but client does not listen for replies for method '%s'\n", req.Method)
	} else if !req.Notif && !isReplyHandler {
		h.log.Errorf("Request handler is not a reply handler, but client expects a reply for method '%s'\n", req.Method)
	}

	if err := rh.preprocess(req.Params); err != nil {
		h.log.Errorf("Failed to preprocess '%s': %s\n", req.Method, err.Error())
		if !req.Notif {
			h.conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{
				Code:    jsonrpc2.CodeInvalidParams,
				Message: err.Error(),
			})
		}
		return
	}

	h.incomingQueue <- rh
}

func (h *Handler) processQueues() {
	for {
		select {
		case work := <-h.incomingQueue:
			err := work.work()
			replier, isReplyHandler := work.(replyHandler)
			if err != nil {
				h.log.Errorf("%s\n", err.Error())
				if isReplyHandler {
					h.conn.ReplyWithError(work.ctx(), work.id(), &jsonrpc2.Error{
						Code:    jsonrpc2.CodeInternalError,
						Message: err.Error(),
					})
				}
				continue
			}

			if isReplyHandler {
				if _, deferred := work.(deferredReplyHandler); !deferred {
					h.outgoingQueue <- replier
				}
			}

		case work := <-h.outgoingQueue:
			result, err := work.reply()
			if err != nil {
				h.conn.ReplyWithError(work.ctx(), work.id(), &jsonrpc2.Error{
					Code:    jsonrpc2.CodeInternalError,
					Message: err.Error(),
				})
				continue
			}

			h.conn.Reply(work.ctx(), work.id(), result)
		}
	}
}

// SendMessage implements log.Sender, so that the server can forward its
// log output to the client.
func (h *Handler) SendMessage(lvl log.Level, message string) {
	t := Error
	switch lvl {
	case log.Verbose, log.Debug:
		t = Log
	case log.Info:
		t = Info
	case log.Warn:
		t = Warning
	}

	logMessage(context.Background(), h.conn, &LogMessageParams{
		Type:    t,
		Message: message,
	})
}
