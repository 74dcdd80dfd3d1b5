// Package fallback chains a primary offer provider with a secondary one.
//
// The chain starts on the primary. The first failure that is not caused by
// the caller's context switches it to the secondary for the rest of the
// process; Reset switches it back.
package fallback

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/logger"
)

// configurer is implemented by providers that need credentials.
type configurer interface {
	Configured() bool
}

// Provider is a domain.OfferProvider with a one-way switch to a secondary.
// It is safe for concurrent use.
type Provider struct {
	primary   domain.OfferProvider
	secondary domain.OfferProvider
	log       *logger.Logger

	mu       sync.RWMutex
	degraded bool
	reason   string
}

// New creates a fallback chain. A primary reporting Configured() == false
// starts the chain on the secondary.
func New(primary, secondary domain.OfferProvider, log *logger.Logger) *Provider {
	if log == nil {
		log = logger.Nop()
	}
	p := &Provider{
		primary:   primary,
		secondary: secondary,
		log:       log.WithComponent("fallback"),
	}

	if c, ok := primary.(configurer); ok && !c.Configured() {
		p.switchToSecondary(domain.ErrNotConfigured)
	}
	return p
}

// Name returns the name of the provider currently answering.
func (p *Provider) Name() string {
	return p.active().Name()
}

// Degraded reports whether the chain has switched to the secondary.
func (p *Provider) Degraded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.degraded
}

// Reason returns the error that caused the switch, or "" when not degraded.
func (p *Provider) Reason() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.reason
}

// Reset puts the chain back on the primary.
func (p *Provider) Reset() {
	p.mu.Lock()
	p.degraded = false
	p.reason = ""
	p.mu.Unlock()
	p.log.Info().Str("provider", p.primary.Name()).Msg("switched back to primary provider")
}

// SearchOffers implements domain.OfferProvider.
func (p *Provider) SearchOffers(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error) {
	return run(ctx, p, func(op domain.OfferProvider) (*domain.SearchResult, error) {
		return op.SearchOffers(ctx, params)
	})
}

// SearchAirports implements domain.OfferProvider.
func (p *Provider) SearchAirports(ctx context.Context, keyword string) ([]domain.Airport, error) {
	return run(ctx, p, func(op domain.OfferProvider) ([]domain.Airport, error) {
		return op.SearchAirports(ctx, keyword)
	})
}

// run calls the active provider and, if the primary fails, switches and
// retries once on the secondary.
func run[T any](ctx context.Context, p *Provider, call func(domain.OfferProvider) (T, error)) (T, error) {
	var zero T

	if !p.Degraded() {
		result, err := call(p.primary)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			return zero, err
		}
		p.switchToSecondary(err)
	}

	result, err := call(p.secondary)
	if err != nil {
		if ctx.Err() != nil || domain.IsProviderUnavailable(err) {
			return zero, err
		}
		return zero, domain.NewProviderError(p.secondary.Name(), fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err))
	}
	return result, nil
}

func (p *Provider) switchToSecondary(cause error) {
	p.mu.Lock()
	already := p.degraded
	p.degraded = true
	if !already {
		p.reason = cause.Error()
	}
	p.mu.Unlock()

	if already {
		return
	}

	event := p.log.Warn().
		Str("from", p.primary.Name()).
		Str("to", p.secondary.Name()).
		Err(cause)
	if errors.Is(cause, domain.ErrNotConfigured) {
		event.Msg("primary provider not configured, using secondary")
		return
	}
	event.Msg("primary provider failed, switching to secondary")
}

func (p *Provider) active() domain.OfferProvider {
	if p.Degraded() {
		return p.secondary
	}
	return p.primary
}

var _ domain.OfferProvider = (*Provider)(nil)
