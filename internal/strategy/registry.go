package strategy

import (
	"sort"
	"strings"
	"sync"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/samber/lo"
)

// Factory builds a generator from a config that already has defaults applied and passed validation.
type Factory func(config Config) (SignalGenerator, error)

type registration struct {
	factory  Factory
	defaults Config
}

// Registry maps strategy types to their factories and default parameters.
type Registry struct {
	entries map[types.StrategyType]registration
	mu      sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[types.StrategyType]registration),
		mu:      sync.RWMutex{},
	}
}

// DefaultRegistry creates a registry with every built-in strategy family.
// Each call returns a fresh registry.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	builtins := []struct {
		factory  Factory
		defaults Config
	}{
		{NewMAGenerator, Config{Type: types.StrategyTypeMA, ShortPeriod: lo.ToPtr(20), SignalMode: types.SignalModeLevel}},
		{NewMACrossGenerator, Config{Type: types.StrategyTypeMACross, ShortPeriod: lo.ToPtr(5), LongPeriod: lo.ToPtr(20), SignalMode: types.SignalModeCross}},
		{NewMACDGenerator, Config{Type: types.StrategyTypeMACD, ShortPeriod: lo.ToPtr(12), LongPeriod: lo.ToPtr(26), SignalPeriod: lo.ToPtr(9), SignalMode: types.SignalModeCross}},
		{NewRSIGenerator, Config{Type: types.StrategyTypeRSI, ShortPeriod: lo.ToPtr(14), OversoldThreshold: lo.ToPtr(30.0), OverboughtThreshold: lo.ToPtr(70.0), SignalMode: types.SignalModeLevel}},
		{NewDoubleMAGenerator, Config{Type: types.StrategyTypeDoubleMA, ShortPeriod: lo.ToPtr(5), LongPeriod: lo.ToPtr(20), SignalMode: types.SignalModeCross}},
		{NewBollingerBandsGenerator, Config{Type: types.StrategyTypeBoll, ShortPeriod: lo.ToPtr(20), KMultiplier: lo.ToPtr(2.0), SignalMode: types.SignalModeCross}},
	}

	for _, builtin := range builtins {
		// Built-in types are unique, so registration cannot fail.
		_ = r.Register(builtin.defaults, builtin.factory)
	}

	return r
}

// Register adds a strategy family. defaults.Type names the family.
func (r *Registry) Register(defaults Config, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := types.StrategyType(strings.ToUpper(string(defaults.Type)))
	if name == "" {
		return errors.New(errors.ErrCodeInvalidParameter, "strategy defaults must name a type")
	}

	if _, exists := r.entries[name]; exists {
		return errors.Newf(errors.ErrCodeStrategyExists, "strategy %s already registered", name)
	}

	defaults.Type = name
	r.entries[name] = registration{factory: factory, defaults: defaults.clone()}

	return nil
}

// Resolve applies the family defaults to config and validates the result.
func (r *Registry) Resolve(config Config) (Config, error) {
	name := types.StrategyType(strings.ToUpper(string(config.Type)))

	r.mu.RLock()
	entry, exists := r.entries[name]
	r.mu.RUnlock()

	if !exists {
		return Config{}, errors.Newf(errors.ErrCodeUnsupportedStrategy, "unsupported strategy type %q", string(config.Type))
	}

	resolved := config.WithDefaults(entry.defaults)
	if err := resolved.Validate(); err != nil {
		return Config{}, err
	}

	return resolved, nil
}

// New builds a fresh generator for config. Configuration errors are returned
// as *errors.Error, never silently defaulted.
func (r *Registry) New(config Config) (SignalGenerator, error) {
	resolved, err := r.Resolve(config)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	entry := r.entries[resolved.Type]
	r.mu.RUnlock()

	g, err := entry.factory(resolved)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStrategyConfigError, err, "failed to create %s strategy", resolved.Type)
	}

	return g, nil
}

// List returns the registered strategy types in alphabetical order.
func (r *Registry) List() []types.StrategyType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]types.StrategyType, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	return names
}

// Defaults returns the default parameters of a strategy type.
func (r *Registry) Defaults(strategyType types.StrategyType) (Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.entries[types.StrategyType(strings.ToUpper(string(strategyType)))]
	if !exists {
		return Config{}, errors.Newf(errors.ErrCodeUnsupportedStrategy, "unsupported strategy type %q", string(strategyType))
	}

	return entry.defaults.clone(), nil
}

// Remove unregisters a strategy type.
func (r *Registry) Remove(strategyType types.StrategyType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[strategyType]; !exists {
		return errors.Newf(errors.ErrCodeUnsupportedStrategy, "strategy %s not registered", strategyType)
	}

	delete(r.entries, strategyType)

	return nil
}
