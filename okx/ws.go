package okx

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"okxflow/logger"
	"okxflow/models"
)

// Channel namespaces. Public channels need no authentication; private
// channels require a signed login before subscribing.
var publicChannels = map[string]struct{}{
	"books":               {},
	"candle1D":            {},
	"estimated-price":     {},
	"funding-rate":        {},
	"index-candle30m":     {},
	"index-tickers":       {},
	"instruments":         {},
	"mark-price":          {},
	"mark-price-candle1D": {},
	"open-interest":       {},
	"opt-summary":         {},
	"price-limit":         {},
	"status":              {},
	"tickers":             {},
	"trades":              {},
}

var privateChannels = map[string]struct{}{
	"account":              {},
	"balance_and_position": {},
	"orders":               {},
	"orders-algo":          {},
	"positions":            {},
}

// channelVisibility returns the namespace ("public" or "private") of a
// channel.
func channelVisibility(channel string) (string, error) {
	if _, ok := publicChannels[channel]; ok {
		return "public", nil
	}
	if _, ok := privateChannels[channel]; ok {
		return "private", nil
	}
	return "", &ValidationError{Kind: KindInvalidParameter, Field: "channel", Reason: "is not a known channel"}
}

type wsRequest struct {
	Op   string              `json:"op"`
	Args []map[string]string `json:"args"`
}

type wsFrame struct {
	Event string            `json:"event"`
	Code  string            `json:"code"`
	Msg   string            `json:"msg"`
	Arg   map[string]string `json:"arg"`
	Data  []json.RawMessage `json:"data"`
}

// WebsocketAPI is the raw WebSocket client. Like the REST API it holds no
// per-call state; each Subscribe opens an independent connection that the
// caller owns. Reconnect policy deliberately stays with the caller.
type WebsocketAPI struct {
	baseURL string
	creds   *Credentials
	dialer  *websocket.Dialer
	now     func() time.Time
	log     *logger.Log
}

// WsOption configures a WebsocketAPI.
type WsOption func(*WebsocketAPI)

// WsWithCredentials attaches the credential set used for private logins.
func WsWithCredentials(creds *Credentials) WsOption {
	return func(w *WebsocketAPI) { w.creds = creds }
}

// WsWithBaseURL points the client at a different WebSocket endpoint.
func WsWithBaseURL(baseURL string) WsOption {
	return func(w *WebsocketAPI) { w.baseURL = baseURL }
}

// WsWithDialer replaces the underlying dialer.
func WsWithDialer(dialer *websocket.Dialer) WsOption {
	return func(w *WebsocketAPI) { w.dialer = dialer }
}

// WsWithClock replaces the timestamp source used for login signing.
func WsWithClock(now func() time.Time) WsOption {
	return func(w *WebsocketAPI) { w.now = now }
}

// WsWithLogger replaces the logger.
func WsWithLogger(log *logger.Log) WsOption {
	return func(w *WebsocketAPI) { w.log = log }
}

// NewWebsocketAPI creates a raw WebSocket client.
func NewWebsocketAPI(opts ...WsOption) *WebsocketAPI {
	w := &WebsocketAPI{
		baseURL: DefaultWsURL,
		dialer:  &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		now:     time.Now,
		log:     logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Subscription is one live channel subscription. It is owned by the caller;
// Close releases the connection.
type Subscription struct {
	conn    *websocket.Conn
	channel string
	log     *logger.Log
}

// Subscribe opens a connection in the channel's namespace, performs the
// login handshake for private channels, and completes the subscribe
// handshake. args carries channel-specific parameters such as instId.
func (w *WebsocketAPI) Subscribe(ctx context.Context, channel string, args map[string]string) (*Subscription, error) {
	visibility, err := channelVisibility(channel)
	if err != nil {
		return nil, err
	}

	log := w.log.WithComponent("okx_ws").WithFields(logger.Fields{"channel": channel, "visibility": visibility})

	conn, resp, err := w.dialer.DialContext(ctx, w.baseURL+"/"+visibility, nil)
	if err != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return nil, err
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	if visibility == "private" {
		if err := w.login(conn); err != nil {
			conn.Close()
			return nil, err
		}
	}

	subArgs := map[string]string{"channel": channel}
	for k, v := range args {
		subArgs[k] = v
	}
	if err := conn.WriteJSON(wsRequest{Op: "subscribe", Args: []map[string]string{subArgs}}); err != nil {
		conn.Close()
		return nil, err
	}

	var frame wsFrame
	if err := conn.ReadJSON(&frame); err != nil {
		conn.Close()
		return nil, err
	}
	if frame.Event == "error" {
		conn.Close()
		return nil, &APIError{Kind: classify(frame.Code, 0), Code: frame.Code, Message: frame.Msg}
	}

	log.Info("subscribed to channel")
	return &Subscription{conn: conn, channel: channel, log: w.log}, nil
}

// login performs the private namespace handshake: the login op is signed
// with a unix-seconds timestamp over GET /users/self/verify.
func (w *WebsocketAPI) login(conn *websocket.Conn) error {
	if w.creds == nil {
		return &ValidationError{Kind: KindInvalidCredential, Field: "credentials", Reason: "are required for private channels"}
	}
	if err := conn.WriteJSON(wsRequest{Op: "login", Args: []map[string]string{w.creds.signLogin(w.now())}}); err != nil {
		return err
	}
	var frame wsFrame
	if err := conn.ReadJSON(&frame); err != nil {
		return err
	}
	if frame.Event != "login" {
		return &APIError{Kind: KindAuthentication, Code: frame.Code, Message: frame.Msg}
	}
	return nil
}

// Trades subscribes to the public trade channel for one instrument.
func (w *WebsocketAPI) Trades(ctx context.Context, instrumentID string) (*Subscription, error) {
	if instrumentID == "" {
		return nil, &ValidationError{Kind: KindInvalidParameter, Field: "instId", Reason: "is required"}
	}
	return w.Subscribe(ctx, "trades", map[string]string{"instId": instrumentID})
}

// ReadRecords blocks for the next data message and returns its entries as
// generic records. Non-data frames (acknowledgements, notifications) are
// skipped.
func (s *Subscription) ReadRecords() ([]models.Record, error) {
	for {
		var frame wsFrame
		if err := s.conn.ReadJSON(&frame); err != nil {
			return nil, err
		}
		if frame.Event == "error" {
			return nil, &APIError{Kind: classify(frame.Code, 0), Code: frame.Code, Message: frame.Msg}
		}
		if len(frame.Data) == 0 {
			continue
		}
		records := make([]models.Record, 0, len(frame.Data))
		for _, raw := range frame.Data {
			var rec models.Record
			if err := json.Unmarshal(raw, &rec); err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
		return records, nil
	}
}

// Channel returns the channel this subscription is attached to.
func (s *Subscription) Channel() string {
	return s.channel
}

// Close releases the underlying connection.
func (s *Subscription) Close() error {
	s.log.WithComponent("okx_ws").WithFields(logger.Fields{"channel": s.channel}).Info("closing channel subscription")
	return s.conn.Close()
}
