package authz

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
	"github.com/sirupsen/logrus"
)

// Service evaluates permission chains. Role floors are answered by a casbin
// enforcer; membership and relationship checks are pure.
type Service struct {
	cfg      Config
	enforcer *casbin.Enforcer
	logger   *logrus.Entry
	mu       sync.RWMutex
}

// NewService constructs a Service with the provided config.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()

	var logger *logrus.Entry
	if cfg.Logger != nil {
		logger = cfg.Logger.WithField("component", "authz")
	} else {
		logger = logrus.WithField("component", "authz")
	}

	var (
		enf *casbin.Enforcer
		err error
	)
	if cfg.ModelPath != "" {
		enf, err = casbin.NewEnforcer(cfg.ModelPath, fileadapter.NewAdapter(cfg.PolicyPath))
		if err != nil {
			return nil, fmt.Errorf("authz: failed to initialize enforcer: %w", err)
		}
		if err := enf.LoadPolicy(); err != nil {
			return nil, fmt.Errorf("authz: failed to load policies: %w", err)
		}
	} else {
		enf, err = builtinEnforcer()
		if err != nil {
			return nil, err
		}
	}

	return &Service{
		cfg:      cfg,
		enforcer: enf,
		logger:   logger,
	}, nil
}

func builtinEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(builtinModel)
	if err != nil {
		return nil, fmt.Errorf("authz: invalid built-in model: %w", err)
	}
	enf, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz: failed to initialize enforcer: %w", err)
	}
	for _, p := range builtinPolicies {
		if _, err := enf.AddPolicy(p[0], p[1]); err != nil {
			return nil, fmt.Errorf("authz: add policy: %w", err)
		}
	}
	for _, g := range builtinGroupings {
		if _, err := enf.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, fmt.Errorf("authz: add grouping: %w", err)
		}
	}
	return enf, nil
}

// MeetsFloor reports whether role is at least as privileged as floor.
func (s *Service) MeetsFloor(role, floor Role) (bool, error) {
	if !role.Valid() || !floor.Valid() {
		return false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	ok, err := s.enforcer.Enforce(role.subject(), floor.String())
	if err != nil {
		return false, fmt.Errorf("authz: enforce failed: %w", err)
	}
	return ok, nil
}

// AtLeast denies actors below floor. Enforcer errors deny.
func (s *Service) AtLeast(floor Role) Check {
	return func(in Input) Decision {
		ok, err := s.MeetsFloor(in.Actor.Role, floor)
		if err != nil {
			s.logger.WithError(err).Error("authz: role floor check failed")
			return Deny(ReasonEnforcerError)
		}
		if !ok {
			return Deny(ReasonBelowFloor)
		}
		return Allow()
	}
}

// Chain expands a requirement into its ordered checks: membership first,
// then the role floor or any bypass the requirement enables.
func (s *Service) Chain(req Requirement) []Check {
	alternatives := []Check{s.AtLeast(req.Floor)}
	if req.ManagerBypass {
		alternatives = append(alternatives, ManagerOfTarget())
	}
	if req.SelfBypass {
		alternatives = append(alternatives, SelfIsTarget())
	}
	return []Check{InCompany(), AnyOf(alternatives...)}
}

// Evaluate runs checks and converts the first denial into a forbidden error.
func (s *Service) Evaluate(ctx context.Context, in Input, checks ...Check) error {
	start := time.Now()
	d := Evaluate(in, checks...)
	recordDecision(d, time.Since(start))
	if d.Allowed {
		return nil
	}
	s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"actor_id":   in.Actor.ID,
		"actor_role": in.Actor.Role.String(),
		"company_id": in.CompanyID,
		"target_id":  in.TargetEmployeeID,
		"reason":     d.Reason,
	}).Warn("authz denied request")
	return forbiddenError(in, d.Reason)
}

// Authorize evaluates the full chain for req.
func (s *Service) Authorize(ctx context.Context, in Input, req Requirement) error {
	return s.Evaluate(ctx, in, s.Chain(req)...)
}

// Membership only runs the company membership check.
func (s *Service) Membership(ctx context.Context, in Input) error {
	return s.Evaluate(ctx, in, InCompany())
}

// ReloadPolicy reloads policy data from disk. The built-in policy has
// nothing to reload.
func (s *Service) ReloadPolicy(ctx context.Context) error {
	if s.cfg.PolicyPath == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("authz: reload policy failed: %w", err)
	}
	s.logger.WithContext(ctx).Info("authz policy reloaded")
	return nil
}

var (
	defaultServiceOnce sync.Once
	defaultService     *Service
	defaultServiceErr  error
)

// Use returns a singleton Service configured via environment variables.
func Use() *Service {
	defaultServiceOnce.Do(func() {
		defaultService, defaultServiceErr = NewService(DefaultConfig())
	})
	if defaultServiceErr != nil {
		panic(defaultServiceErr)
	}
	return defaultService
}
