package service

import (
	"context"
	"strings"
	"time"

	"healthsystem/pkg/apperror"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var ErrTooManyAttempts = apperror.Authentication("Too many failed login attempts, try again later").WithStatus(429)

const (
	loginAttemptsKeyPrefix = "login:attempts:"
	throttleTimeout        = 2 * time.Second
)

// incrWithWindowScript counts a failure and starts the window on the first
// one, atomically, so concurrent failures never leave a key without expiry.
var incrWithWindowScript = redis.NewScript(`
	local n = redis.call('INCR', KEYS[1])
	if n == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	return n
`)

type LoginThrottle interface {
	Allow(ctx context.Context, email string) error
	RegisterFailure(ctx context.Context, email string)
	Reset(ctx context.Context, email string)
}

// loginThrottleService limits failed logins per email. Redis failures are
// logged and let the attempt through.
type loginThrottleService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	maxAttempts int64
	window      time.Duration
}

// NewLoginThrottleService returns a throttle that never blocks when
// maxAttempts is zero.
func NewLoginThrottleService(redisClient *redis.Client, log *logrus.Logger, maxAttempts int, window time.Duration) LoginThrottle {
	return &loginThrottleService{
		redisClient: redisClient,
		log:         log,
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

func attemptsKey(email string) string {
	return loginAttemptsKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

func (s *loginThrottleService) enabled() bool {
	return s.maxAttempts > 0 && s.redisClient != nil
}

func (s *loginThrottleService) Allow(ctx context.Context, email string) error {
	if !s.enabled() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, throttleTimeout)
	defer cancel()

	n, err := s.redisClient.Get(ctx, attemptsKey(email)).Int64()
	if err != nil {
		if err != redis.Nil {
			s.log.Warnf("Login throttle unavailable: %+v", err)
		}
		return nil
	}
	if n >= s.maxAttempts {
		return ErrTooManyAttempts
	}
	return nil
}

func (s *loginThrottleService) RegisterFailure(ctx context.Context, email string) {
	if !s.enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, throttleTimeout)
	defer cancel()

	n, err := incrWithWindowScript.Run(ctx, s.redisClient, []string{attemptsKey(email)}, s.window.Milliseconds()).Int64()
	if err != nil {
		s.log.Warnf("Failed to record login failure: %+v", err)
		return
	}
	if n == s.maxAttempts {
		s.log.WithField("attempts", n).Warn("Login locked out for email")
	}
}

func (s *loginThrottleService) Reset(ctx context.Context, email string) {
	if !s.enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, throttleTimeout)
	defer cancel()

	if err := s.redisClient.Del(ctx, attemptsKey(email)).Err(); err != nil {
		s.log.Warnf("Failed to reset login attempts: %+v", err)
	}
}
