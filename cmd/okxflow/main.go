package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"okxflow/config"
	"okxflow/logger"
	"okxflow/models"
	"okxflow/okx"
)

func main() {
	log := logger.GetLogger()

	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Error loading .env file")
	}

	configPath := flag.String("config", "config/config.yml", "Path to configuration file")
	instrument := flag.String("inst", "BTC-USDT", "Instrument to query")
	stream := flag.Bool("stream", false, "Stream live trades over WebSocket")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.WithError(err).Error("Failed to load configuration")
		os.Exit(1)
	}

	if err := log.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.MaxAge); err != nil {
		log.WithError(err).Error("Failed to configure logger")
		os.Exit(1)
	}

	log.WithFields(logger.Fields{
		"service": cfg.Okxflow.Name,
		"version": cfg.Okxflow.Version,
	}).Info("starting okxflow")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := []okx.Option{
		okx.WithBaseURL(cfg.API.RestURL),
		okx.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		okx.WithUserAgent(cfg.API.UserAgent),
		okx.WithRateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize),
		okx.WithLogger(log),
	}

	var creds *okx.Credentials
	if cfg.Credentials.APIKey != "" {
		creds, err = okx.NewCredentials(cfg.Credentials.APIKey, cfg.Credentials.SecretKey, cfg.Credentials.Passphrase)
		if err != nil {
			log.WithError(err).Error("Invalid credentials")
			os.Exit(1)
		}
		opts = append(opts, okx.WithCredentials(creds))
	}

	client := okx.NewClient(opts...)

	ticker, err := client.GetTicker(ctx, *instrument)
	if err != nil {
		log.WithError(err).Error("failed to fetch ticker")
		os.Exit(1)
	}
	fields := logger.Fields{"instrument": ticker.InstrumentID}
	if ticker.Last != nil {
		fields["last"] = ticker.Last.String()
	}
	log.WithFields(fields).Info("ticker")

	candles, err := client.GetCandlesticks(ctx, okx.CandlesQuery{InstrumentID: *instrument, Bar: "1m", Limit: 5})
	if err != nil {
		log.WithError(err).Error("failed to fetch candlesticks")
		os.Exit(1)
	}
	for _, c := range candles {
		fields := logger.Fields{"ts": c.Timestamp.Format(time.RFC3339)}
		if change := c.Change(); change != nil {
			fields["change"] = change.String()
		}
		log.WithFields(fields).Info("candle")
	}

	if creds != nil {
		balances, err := client.GetAccountBalance(ctx)
		if err != nil {
			log.WithError(err).Error("failed to fetch account balance")
			os.Exit(1)
		}
		for _, b := range balances {
			for _, d := range b.Details {
				fields := logger.Fields{"currency": d.Currency}
				if d.Equity != nil {
					fields["equity"] = d.Equity.String()
				}
				log.WithFields(fields).Info("balance")
			}
		}
	}

	if !*stream {
		return
	}

	wsOpts := []okx.WsOption{okx.WsWithBaseURL(cfg.API.WsURL), okx.WsWithLogger(log)}
	if creds != nil {
		wsOpts = append(wsOpts, okx.WsWithCredentials(creds))
	}
	ws := okx.NewWebsocketClient(wsOpts...)

	trades, err := ws.Trades(ctx, *instrument)
	if err != nil {
		log.WithError(err).Error("failed to subscribe to trades")
		os.Exit(1)
	}
	defer trades.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info("shutting down")
		trades.Close()
		cancel()
	}()

	for {
		trade, err := trades.Next()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.WithError(err).Error("trade stream failed")
			os.Exit(1)
		}
		logTrade(log, trade)
	}
}

func logTrade(log *logger.Log, trade *models.Trade) {
	fields := logger.Fields{
		"trade_id":   trade.TradeID,
		"instrument": trade.InstrumentID,
		"side":       string(trade.Side),
	}
	if trade.Price != nil {
		fields["price"] = trade.Price.String()
	}
	if trade.Size != nil {
		fields["size"] = trade.Size.String()
	}
	log.WithFields(fields).Info("trade")
}
