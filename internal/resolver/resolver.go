package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"DONATION_CHECKOUT_GO/internal/utils"
)

// ErrResolutionFailure means every candidate failed. It carries no per-candidate detail.
var ErrResolutionFailure = errors.New("nenhum endpoint respondeu")

const maxBodyBytes = 1 << 20

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Request struct {
	Method string
	Path   string
	Body   interface{}
}

type Response struct {
	BaseURL    string
	StatusCode int
	Body       []byte
}

func (r *Response) Decode(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// Resolver tries an ordered list of base URLs and remembers the first one that answered.
type Resolver struct {
	candidates []string
	client     Doer
	log        *utils.Logger

	mu     sync.Mutex
	winner string
}

func New(candidates []string, client Doer, logger *utils.Logger) *Resolver {
	return &Resolver{
		candidates: append([]string(nil), candidates...),
		client:     client,
		log:        logger,
	}
}

// Resolve sends req to each candidate in turn, once each, and returns the first
// 2xx response. The memoised winner, if any, goes first.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Response, error) {
	var payload []byte
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar corpo: %w", err)
		}
		payload = b
	}

	for _, base := range r.order() {
		resp, err := r.try(ctx, base, req, payload)
		if err != nil {
			r.log.Info("endpoint_candidate_falhou", map[string]interface{}{
				"base":  base,
				"path":  req.Path,
				"error": err.Error(),
			})
			continue
		}
		r.mu.Lock()
		r.winner = base
		r.mu.Unlock()
		return resp, nil
	}
	return nil, ErrResolutionFailure
}

func (r *Resolver) Winner() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.winner
}

func (r *Resolver) Reset() {
	r.mu.Lock()
	r.winner = ""
	r.mu.Unlock()
}

func (r *Resolver) order() []string {
	r.mu.Lock()
	winner := r.winner
	r.mu.Unlock()

	if winner == "" {
		return r.candidates
	}
	out := make([]string, 0, len(r.candidates))
	out = append(out, winner)
	for _, c := range r.candidates {
		if c != winner {
			out = append(out, c)
		}
	}
	return out
}

func (r *Resolver) try(ctx context.Context, base string, req Request, payload []byte) (*Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, base+req.Path, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	return &Response{BaseURL: base, StatusCode: resp.StatusCode, Body: data}, nil
}
