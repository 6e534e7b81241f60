package okx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"okxflow/logger"
	"okxflow/models"
)

// Default API endpoints.
const (
	DefaultRestURL = "https://www.okx.com"
	DefaultWsURL   = "wss://ws.okx.com:8443/ws/v5"
)

// API is the raw REST client: it builds, signs and sends requests and
// returns decoded but unmapped envelope data. The only state is the
// immutable credential set and the HTTP client, so one API value may be
// shared freely across goroutines. Without credentials only public
// endpoints work; with credentials every request is signed.
type API struct {
	baseURL    string
	creds      *Credentials
	httpClient *http.Client
	limiter    *rate.Limiter
	now        func() time.Time
	log        *logger.Log
}

// Option configures an API client.
type Option func(*API)

// WithCredentials attaches the credential set used to sign requests.
func WithCredentials(creds *Credentials) Option {
	return func(a *API) { a.creds = creds }
}

// WithBaseURL points the client at a different REST endpoint, for the demo
// environment or a test server.
func WithBaseURL(baseURL string) Option {
	return func(a *API) { a.baseURL = baseURL }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(a *API) { a.httpClient = client }
}

// WithUserAgent sets the User-Agent header on every request.
func WithUserAgent(agent string) Option {
	return func(a *API) {
		base := a.httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		a.httpClient.Transport = userAgentTransport{agent: agent, base: base}
	}
}

// WithRateLimit installs a client-side request limiter. Zero or negative
// values disable limiting.
func WithRateLimit(requestsPerSecond, burst int) Option {
	return func(a *API) {
		if requestsPerSecond <= 0 {
			a.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		a.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// WithClock replaces the timestamp source used for signing.
func WithClock(now func() time.Time) Option {
	return func(a *API) { a.now = now }
}

// WithLogger replaces the logger.
func WithLogger(log *logger.Log) Option {
	return func(a *API) { a.log = log }
}

// NewAPI creates a raw REST client.
func NewAPI(opts ...Option) *API {
	a := &API{
		baseURL:    DefaultRestURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
		log:        logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Do sends one built request and decodes the response envelope. The
// envelope's data entries are returned untouched; rejections of any kind
// come back as *APIError.
func (a *API) Do(ctx context.Context, req *Request) (*Envelope, error) {
	switch req.Method {
	case "GET", "POST", "DELETE":
	default:
		return nil, &ValidationError{Kind: KindInvalidRequestShape, Field: "method", Reason: "must be GET, POST or DELETE"}
	}

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	requestPath := req.RequestPath()

	var bodyReader io.Reader
	if len(req.Body) > 0 {
		bodyReader = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, a.baseURL+requestPath, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if len(req.Body) > 0 {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if a.creds != nil {
		headers, err := a.creds.SignRequest(req.Method, requestPath, string(req.Body), a.now())
		if err != nil {
			return nil, err
		}
		for k, v := range headers {
			httpReq.Header.Set(k, v)
		}
	}

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", req.Path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	reportRateLimit(a.log, resp.Header)

	env, err := decodeEnvelope(resp.StatusCode, respBody)
	if err != nil {
		a.log.WithComponent("okx_client").WithFields(logger.Fields{
			"method": req.Method,
			"path":   req.Path,
			"status": resp.StatusCode,
		}).WithError(err).Debug("request rejected")
		return nil, err
	}

	a.log.WithComponent("okx_client").WithFields(logger.Fields{
		"method":  req.Method,
		"path":    req.Path,
		"records": len(env.Data),
	}).Debug("request completed")
	return env, nil
}

func (a *API) records(ctx context.Context, req *Request) ([]models.Record, error) {
	env, err := a.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return env.Records()
}

func (a *API) rows(ctx context.Context, req *Request) ([][]string, error) {
	env, err := a.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return env.Rows()
}

// GetAccountBalance retrieves the account balance summary. Specifying
// currencies narrows the detail set.
func (a *API) GetAccountBalance(ctx context.Context, currencies ...string) ([]models.Record, error) {
	return a.records(ctx, NewAccountBalanceRequest(currencies))
}

// GetAccountPositionRisk retrieves account and position risk.
func (a *API) GetAccountPositionRisk(ctx context.Context, instType models.InstrumentType) ([]models.Record, error) {
	return a.records(ctx, NewAccountPositionRiskRequest(instType))
}

// GetPositions retrieves open positions.
func (a *API) GetPositions(ctx context.Context, instType models.InstrumentType, instrumentID string, positionIDs []string) ([]models.Record, error) {
	req, err := NewPositionsRequest(instType, instrumentID, positionIDs)
	if err != nil {
		return nil, err
	}
	return a.records(ctx, req)
}

// GetBillsDetails retrieves the account bills.
func (a *API) GetBillsDetails(ctx context.Context, query BillsQuery) ([]models.Record, error) {
	req, err := NewBillsRequest(query)
	if err != nil {
		return nil, err
	}
	return a.records(ctx, req)
}

// GetTickers retrieves the 24h summary for all instruments of a type.
func (a *API) GetTickers(ctx context.Context, instType models.InstrumentType, underlying string) ([]models.Record, error) {
	return a.records(ctx, NewTickersRequest(instType, underlying))
}

// GetTicker retrieves the 24h summary for one instrument.
func (a *API) GetTicker(ctx context.Context, instrumentID string) ([]models.Record, error) {
	req, err := NewTickerRequest(instrumentID)
	if err != nil {
		return nil, err
	}
	return a.records(ctx, req)
}

// GetIndexTickers retrieves index tickers.
func (a *API) GetIndexTickers(ctx context.Context, quoteCurrency, instrumentID string) ([]models.Record, error) {
	req, err := NewIndexTickersRequest(quoteCurrency, instrumentID)
	if err != nil {
		return nil, err
	}
	return a.records(ctx, req)
}

// GetOrderBook retrieves an instrument's order book.
func (a *API) GetOrderBook(ctx context.Context, instrumentID string, depth int) ([]models.Record, error) {
	req, err := NewOrderBookRequest(instrumentID, depth)
	if err != nil {
		return nil, err
	}
	return a.records(ctx, req)
}

// GetCandlesticks retrieves recent candlestick rows.
func (a *API) GetCandlesticks(ctx context.Context, query CandlesQuery) ([][]string, error) {
	req, err := NewCandlesRequest(query)
	if err != nil {
		return nil, err
	}
	return a.rows(ctx, req)
}

// GetCandlesticksHistory retrieves historical candlestick rows.
func (a *API) GetCandlesticksHistory(ctx context.Context, query CandlesQuery) ([][]string, error) {
	req, err := NewCandlesHistoryRequest(query)
	if err != nil {
		return nil, err
	}
	return a.rows(ctx, req)
}

// GetIndexCandlesticks retrieves index candlestick rows.
func (a *API) GetIndexCandlesticks(ctx context.Context, query CandlesQuery) ([][]string, error) {
	req, err := NewIndexCandlesRequest(query)
	if err != nil {
		return nil, err
	}
	return a.rows(ctx, req)
}

// GetMarkPriceCandlesticks retrieves mark price candlestick rows.
func (a *API) GetMarkPriceCandlesticks(ctx context.Context, query CandlesQuery) ([][]string, error) {
	req, err := NewMarkPriceCandlesRequest(query)
	if err != nil {
		return nil, err
	}
	return a.rows(ctx, req)
}

// GetTrades retrieves the recent transactions of an instrument.
func (a *API) GetTrades(ctx context.Context, instrumentID string, limit int) ([]models.Record, error) {
	req, err := NewTradesRequest(instrumentID, limit)
	if err != nil {
		return nil, err
	}
	return a.records(ctx, req)
}

// GetTotalVolume retrieves the platform's rolling 24h trading volume.
func (a *API) GetTotalVolume(ctx context.Context) ([]models.Record, error) {
	return a.records(ctx, NewPlatformVolumeRequest())
}

// GetOracle retrieves cryptographically signed on-chain prices.
func (a *API) GetOracle(ctx context.Context) ([]models.Record, error) {
	return a.records(ctx, NewOracleRequest())
}

// PlaceOrder submits one order.
func (a *API) PlaceOrder(ctx context.Context, params PlaceOrderParams) ([]models.Record, error) {
	req, err := NewPlaceOrderRequest(params)
	if err != nil {
		return nil, err
	}
	return a.records(ctx, req)
}

// CancelOrder cancels one order by order id or client order id.
func (a *API) CancelOrder(ctx context.Context, instrumentID, orderID, clientOrderID string) ([]models.Record, error) {
	req, err := NewCancelOrderRequest(instrumentID, orderID, clientOrderID)
	if err != nil {
		return nil, err
	}
	return a.records(ctx, req)
}

// GetOrderDetails retrieves one order by order id or client order id.
func (a *API) GetOrderDetails(ctx context.Context, instrumentID, orderID, clientOrderID string) ([]models.Record, error) {
	req, err := NewOrderDetailsRequest(instrumentID, orderID, clientOrderID)
	if err != nil {
		return nil, err
	}
	return a.records(ctx, req)
}

// GetPendingOrders retrieves orders that are still open.
func (a *API) GetPendingOrders(ctx context.Context, instType models.InstrumentType, instrumentID string, limit int) ([]models.Record, error) {
	req, err := NewPendingOrdersRequest(instType, instrumentID, limit)
	if err != nil {
		return nil, err
	}
	return a.records(ctx, req)
}
