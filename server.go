package hashcache

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/redis/go-redis/v9"
	testcontainers "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const redisContainerPort nat.Port = "6379/tcp"

// RedisServerConfig controls how a backing redis server is provisioned.
type RedisServerConfig struct {
	// Addr of an already-running server to prefer over launching one.
	Addr string

	// Image used when a container has to be launched.
	Image string

	// DataDir, when set, is bind-mounted as the server's data directory so
	// entries survive container restarts.
	DataDir string

	// StartupTimeout bounds the wait for a launched container to accept
	// connections.
	StartupTimeout time.Duration
}

func (c RedisServerConfig) withDefaults() RedisServerConfig {
	if c.Addr == "" {
		c.Addr = "127.0.0.1:6379"
	}
	if c.Image == "" {
		c.Image = "redis:7-alpine"
	}
	if c.StartupTimeout <= 0 {
		c.StartupTimeout = 30 * time.Second
	}
	return c
}

// RedisServer is a lifecycle-scoped handle on a backing redis process:
// construct, Start, use Addr, Stop. It owns only what it launched; when an
// existing server answers on the configured address, Stop leaves it alone.
type RedisServer struct {
	cfg       RedisServerConfig
	addr      string
	container testcontainers.Container
}

// NewRedisServer creates an unstarted handle.
func NewRedisServer(cfg RedisServerConfig) *RedisServer {
	return &RedisServer{cfg: cfg.withDefaults()}
}

// Start probes the configured address first and adopts an already-running
// server when one answers. Otherwise it launches a redis container and
// waits for it to accept connections.
func (s *RedisServer) Start(ctx context.Context) error {
	if s.addr != "" {
		return nil
	}
	if pingRedis(ctx, s.cfg.Addr) == nil {
		s.addr = s.cfg.Addr
		return nil
	}

	req := testcontainers.ContainerRequest{
		Image:        s.cfg.Image,
		ExposedPorts: []string{string(redisContainerPort)},
		Cmd:          []string{"redis-server", "--appendonly", "yes"},
		WaitingFor:   wait.ForListeningPort(redisContainerPort).WithStartupTimeout(s.cfg.StartupTimeout),
	}
	if s.cfg.DataDir != "" {
		dataDir := s.cfg.DataDir
		req.HostConfigModifier = func(hc *container.HostConfig) {
			hc.Binds = append(hc.Binds, dataDir+":/data")
		}
	}
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return err
	}
	host, err := redisContainer.Host(ctx)
	if err != nil {
		_ = redisContainer.Terminate(ctx)
		return err
	}
	port, err := redisContainer.MappedPort(ctx, redisContainerPort)
	if err != nil {
		_ = redisContainer.Terminate(ctx)
		return err
	}
	s.container = redisContainer
	s.addr = net.JoinHostPort(host, port.Port())
	return nil
}

// Addr returns the server address. Empty until Start succeeds.
func (s *RedisServer) Addr() string {
	return s.addr
}

// Client returns a fresh client bound to the server. The caller owns it.
func (s *RedisServer) Client() (*redis.Client, error) {
	if s.addr == "" {
		return nil, errors.New("hashcache: redis server not started")
	}
	return redis.NewClient(&redis.Options{Addr: s.addr}), nil
}

// Stop terminates the container Start launched, if any, and forgets the
// address so the handle can be started again.
func (s *RedisServer) Stop(ctx context.Context) error {
	s.addr = ""
	if s.container == nil {
		return nil
	}
	err := s.container.Terminate(ctx)
	s.container = nil
	return err
}

func pingRedis(ctx context.Context, addr string) error {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: time.Second,
	})
	defer client.Close()
	return client.Ping(ctx).Err()
}
