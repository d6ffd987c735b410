package viz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
)

// Service handles communication with the sidecar plotting application
type Service struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
	retries    int
	retryDelay time.Duration
}

// Config contains configuration for the plotting service client. Fields
// are populated from the environment by ConfigFromEnv.
type Config struct {
	BaseURL    string        `env:"GLASS_PLOT_URL" envDefault:"http://localhost:8080"`
	Timeout    time.Duration `env:"GLASS_PLOT_TIMEOUT" envDefault:"30s"`
	Retries    int           `env:"GLASS_PLOT_RETRIES" envDefault:"3"`
	RetryDelay time.Duration `env:"GLASS_PLOT_RETRY_DELAY" envDefault:"1s"`
}

// ConfigFromEnv reads the client configuration from the environment,
// falling back to the defaults above.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse plotting service config: %w", err)
	}
	return cfg, nil
}

// Response represents the response from the plotting service
type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	PlotURL   string `json:"plot_url,omitempty"`
	ViewURL   string `json:"view_url,omitempty"`
	PlotID    string `json:"plot_id,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
}

// NewService creates a new plotting service client. A nil logger falls back
// to the default logger.
func NewService(cfg Config, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger:     logger,
		retries:    cfg.Retries,
		retryDelay: cfg.RetryDelay,
	}
}

// Send posts plot data to the sidecar plotting service
func (s *Service) Send(plotData PlotData) (*Response, error) {
	jsonData, err := json.Marshal(plotData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plot data: %w", err)
	}

	url := fmt.Sprintf("%s/api/plot", s.baseURL)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "go-glass")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send HTTP request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var plotResponse Response
	if err := json.Unmarshal(respBody, &plotResponse); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &plotResponse, fmt.Errorf("HTTP request failed with status %d: %s", resp.StatusCode, plotResponse.Message)
	}

	s.logger.Debug("sent plot", "type", plotData.PlotType, "record", plotData.RecordID)
	return &plotResponse, nil
}

// SendWithRetry posts plot data, retrying transient failures with a fixed
// delay between attempts.
func (s *Service) SendWithRetry(plotData PlotData) (*Response, error) {
	var lastErr error

	for attempt := 0; attempt < s.retries; attempt++ {
		resp, err := s.Send(plotData)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		s.logger.Warn("plot send failed", "attempt", attempt+1, "err", err)

		if attempt < s.retries-1 {
			time.Sleep(s.retryDelay)
		}
	}

	return nil, fmt.Errorf("failed to send plot data after %d attempts: %w", s.retries, lastErr)
}

// CheckHealth checks if the plotting service is reachable
func (s *Service) CheckHealth() error {
	url := fmt.Sprintf("%s/health", s.baseURL)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send health check request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status %d", resp.StatusCode)
	}
	return nil
}
