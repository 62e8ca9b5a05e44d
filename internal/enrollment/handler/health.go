package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	directory "coursecloud/contracts/directory"
	"coursecloud/pkg/platform/circuit"
	"coursecloud/pkg/platform/httputil"
	"coursecloud/pkg/requestcontext"
)

const defaultProbeTimeout = 2 * time.Second

// CircuitReporter exposes breaker state per dependency.
type CircuitReporter interface {
	CircuitStates() map[string]circuit.State
}

// Probe names a dependency and the base URL of its health endpoint.
type Probe struct {
	Name    string
	BaseURL string
}

// HealthChecker probes remote dependencies concurrently.
type HealthChecker struct {
	probes   []Probe
	circuits CircuitReporter
	client   *http.Client
	timeout  time.Duration
	logger   *slog.Logger
}

// NewHealthChecker constructs a checker. circuits may be nil when the
// direct strategy is in use.
func NewHealthChecker(probes []Probe, circuits CircuitReporter, client *http.Client, logger *slog.Logger) *HealthChecker {
	if client == nil {
		client = http.DefaultClient
	}
	return &HealthChecker{
		probes:   probes,
		circuits: circuits,
		client:   client,
		timeout:  defaultProbeTimeout,
		logger:   logger,
	}
}

// Check probes every dependency and reports whether all are healthy.
func (c *HealthChecker) Check(ctx context.Context) (DependenciesResponse, bool) {
	var (
		mu      sync.Mutex
		results = make(map[string]DependencyHealth, len(c.probes))
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range c.probes {
		g.Go(func() error {
			dep := DependencyHealth{Status: "UP"}
			if err := c.probe(gctx, p); err != nil {
				dep = DependencyHealth{Status: "DOWN", Error: err.Error()}
			}
			mu.Lock()
			results[p.Name] = dep
			mu.Unlock()
			// Probe failures are reported, not propagated, so siblings finish.
			return nil
		})
	}
	_ = g.Wait()

	healthy := true
	var states map[string]circuit.State
	if c.circuits != nil {
		states = c.circuits.CircuitStates()
	}
	for name, dep := range results {
		if state, ok := states[name]; ok {
			dep.Circuit = state.String()
			if state != circuit.StateClosed {
				healthy = false
			}
		}
		if dep.Status != "UP" {
			healthy = false
		}
		results[name] = dep
	}

	status := "UP"
	if !healthy {
		status = "DEGRADED"
	}
	return DependenciesResponse{Status: status, Dependencies: results}, healthy
}

// HandleDependencies handles GET /health/dependencies.
func (c *HealthChecker) HandleDependencies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp, healthy := c.Check(ctx)
	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
		c.logger.WarnContext(ctx, "dependency health degraded",
			"request_id", requestcontext.RequestID(ctx),
			"dependencies", resp.Dependencies,
		)
	}
	httputil.WriteJSON(w, status, resp)
}

func (c *HealthChecker) probe(ctx context.Context, p Probe) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := strings.TrimRight(p.BaseURL, "/") + directory.HealthPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned %d", resp.StatusCode)
	}
	return nil
}
