package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// simulate drives a running api-server with concurrent booking and lookup
// traffic and reports throughput and latency percentiles. Handy for
// eyeballing that concurrent bookings never collide on a reference.
type SimConfig struct {
	APIBaseURL string
	Duration   time.Duration
	Workers    int
	BookRatio  float64
	GetRatio   float64
	// remainder of the ratio space is list traffic
}

type RefPool struct {
	mu   sync.RWMutex
	refs []string
}

func (p *RefPool) Add(ref string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refs = append(p.refs, ref)
}

func (p *RefPool) Random() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.refs) == 0 {
		return "", false
	}
	return p.refs[rand.Intn(len(p.refs))], true
}

func (p *RefPool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.refs)
}

type OperationMetrics struct {
	Total     int64
	Success   int64
	Rejected  int64
	Error     int64
	mu        sync.Mutex
	latencies []time.Duration
}

func (om *OperationMetrics) Record(latency time.Duration, status int) {
	atomic.AddInt64(&om.Total, 1)
	switch {
	case status >= 200 && status < 300:
		atomic.AddInt64(&om.Success, 1)
	case status == http.StatusBadRequest || status == http.StatusNotFound:
		atomic.AddInt64(&om.Rejected, 1)
	default:
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.latencies = append(om.latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, p50, p95, max time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.latencies) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]time.Duration, len(om.latencies))
	copy(sorted, om.latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum time.Duration
	for _, l := range sorted {
		sum += l
	}

	pick := func(pct int) time.Duration {
		idx := len(sorted) * pct / 100
		if idx >= len(sorted) {
			idx = len(sorted) - 1
		}
		return sorted[idx]
	}

	return sum / time.Duration(len(sorted)), pick(50), pick(95), sorted[len(sorted)-1]
}

func loadSimConfig() SimConfig {
	cfg := SimConfig{
		APIBaseURL: getEnv("SIM_API_URL", "http://localhost:8080"),
		Duration:   30 * time.Second,
		Workers:    8,
		BookRatio:  0.4,
		GetRatio:   0.4,
	}

	if v := os.Getenv("SIM_DURATION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Duration = d
		}
	}
	if v := os.Getenv("SIM_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("SIM_BOOK_RATIO"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.BookRatio = f
		}
	}
	if v := os.Getenv("SIM_GET_RATIO"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.GetRatio = f
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := loadSimConfig()
	log.Printf("simulate starting url=%s duration=%s workers=%d book=%.2f get=%.2f",
		cfg.APIBaseURL, cfg.Duration, cfg.Workers, cfg.BookRatio, cfg.GetRatio)

	gofakeit.Seed(time.Now().UnixNano())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	client := &http.Client{Timeout: 10 * time.Second}
	pool := &RefPool{}
	bookMetrics := &OperationMetrics{}
	getMetrics := &OperationMetrics{}
	listMetrics := &OperationMetrics{}
	seen := &sync.Map{}
	var duplicates int64

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				roll := rand.Float64()
				switch {
				case roll < cfg.BookRatio:
					doBook(ctx, client, cfg.APIBaseURL, pool, bookMetrics, seen, &duplicates)
				case roll < cfg.BookRatio+cfg.GetRatio:
					doGet(ctx, client, cfg.APIBaseURL, pool, getMetrics)
				default:
					doList(ctx, client, cfg.APIBaseURL, listMetrics)
				}
			}
		}()
	}
	wg.Wait()

	report("book", bookMetrics)
	report("get", getMetrics)
	report("list", listMetrics)
	log.Printf("distinct references booked: %d, duplicate references seen: %d", pool.Len(), atomic.LoadInt64(&duplicates))
	if atomic.LoadInt64(&duplicates) > 0 {
		log.Fatal("FAILURE: server handed out duplicate reference identifiers")
	}
}

func doBook(ctx context.Context, client *http.Client, baseURL string, pool *RefPool, om *OperationMetrics, seen *sync.Map, duplicates *int64) {
	payload := map[string]string{
		"patient_name":   gofakeit.Name(),
		"contact_number": "+91 " + gofakeit.Numerify("9#########"),
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/appointments", bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	om.Record(time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusCreated {
		io.Copy(io.Discard, resp.Body)
		return
	}

	var booked struct {
		ReferenceID string `json:"reference_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&booked); err != nil || booked.ReferenceID == "" {
		return
	}

	if _, loaded := seen.LoadOrStore(booked.ReferenceID, struct{}{}); loaded {
		atomic.AddInt64(duplicates, 1)
		log.Printf("duplicate reference from server: %s", booked.ReferenceID)
		return
	}
	pool.Add(booked.ReferenceID)
}

func doGet(ctx context.Context, client *http.Client, baseURL string, pool *RefPool, om *OperationMetrics) {
	ref, ok := pool.Random()
	if !ok {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/appointments/"+ref, nil)
	if err != nil {
		return
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	om.Record(time.Since(start), resp.StatusCode)
}

func doList(ctx context.Context, client *http.Client, baseURL string, om *OperationMetrics) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/appointments", nil)
	if err != nil {
		return
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	om.Record(time.Since(start), resp.StatusCode)
}

func report(name string, om *OperationMetrics) {
	avg, p50, p95, max := om.Stats()
	fmt.Printf("%-5s total=%d success=%d rejected=%d error=%d avg=%s p50=%s p95=%s max=%s\n",
		name,
		atomic.LoadInt64(&om.Total),
		atomic.LoadInt64(&om.Success),
		atomic.LoadInt64(&om.Rejected),
		atomic.LoadInt64(&om.Error),
		avg, p50, p95, max,
	)
}
