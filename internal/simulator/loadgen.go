package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	tomb "gopkg.in/tomb.v2"
)

const (
	requestTimeout = 5 * time.Second
	reportInterval = time.Second
)

// LoadGeneratorConfig configures one load run.
type LoadGeneratorConfig struct {
	GatewayURL        string
	RequestsPerSecond int
	Workers           int // defaults to 2x the request rate
}

// LoadGenerator posts generated orders to the gateway at a target rate,
// recording each outcome in the telemetry collector.
type LoadGenerator struct {
	cfg    LoadGeneratorConfig
	client *http.Client
	tel    *Telemetry
	log    zerolog.Logger
}

// NewLoadGenerator creates a load generator. The HTTP client pools enough
// connections to sustain the configured concurrency.
func NewLoadGenerator(cfg LoadGeneratorConfig, tel *Telemetry, logger zerolog.Logger) *LoadGenerator {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	if cfg.Workers <= 0 {
		cfg.Workers = cfg.RequestsPerSecond * 2
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	transport := &http.Transport{
		MaxIdleConnsPerHost: cfg.Workers,
		MaxConnsPerHost:     cfg.Workers,
		IdleConnTimeout:     2 * time.Minute,
	}
	return &LoadGenerator{
		cfg: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   requestTimeout,
		},
		tel: tel,
		log: logger.With().Str("component", "load_generator").Logger(),
	}
}

// Run generates and submits orders until the context is cancelled. A
// periodic reporter logs the telemetry window once per second.
func (lg *LoadGenerator) Run(ctx context.Context) error {
	t, ctx := tomb.WithContext(ctx)
	orders := make(chan OrderRequest)

	t.Go(func() error {
		defer close(orders)
		return lg.produce(ctx, orders)
	})

	for i := 0; i < lg.cfg.Workers; i++ {
		t.Go(func() error {
			for order := range orders {
				lg.send(ctx, order)
			}
			return nil
		})
	}

	t.Go(func() error {
		return lg.report(ctx)
	})

	lg.log.Info().
		Int("rps", lg.cfg.RequestsPerSecond).
		Int("workers", lg.cfg.Workers).
		Str("gateway", lg.cfg.GatewayURL).
		Msg("load generator running")

	return t.Wait()
}

func (lg *LoadGenerator) produce(ctx context.Context, orders chan<- OrderRequest) error {
	gen := NewGenerator(DefaultSymbol, time.Now().UnixNano())
	interval := time.Second / time.Duration(lg.cfg.RequestsPerSecond)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			select {
			case orders <- gen.Next():
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (lg *LoadGenerator) send(ctx context.Context, order OrderRequest) {
	body, err := json.Marshal(order)
	if err != nil {
		lg.tel.RecordFailure()
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, lg.cfg.GatewayURL+"/orders", bytes.NewReader(body))
	if err != nil {
		lg.tel.RecordFailure()
		return
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := lg.client.Do(req)
	latency := time.Since(start)
	if err != nil {
		lg.tel.RecordFailure()
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		lg.tel.RecordSuccess(latency)
	} else {
		lg.tel.RecordFailure()
	}
}

func (lg *LoadGenerator) report(ctx context.Context) error {
	ticker := time.NewTicker(reportInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			snap := lg.tel.SnapshotAndReset()
			lg.log.Info().
				Int64("total", snap.TotalRequests).
				Int64("success", snap.SuccessfulRequests).
				Int64("failed", snap.FailedRequests).
				Dur("avg_latency", snap.AverageLatency).
				Msg("load window")
		}
	}
}
