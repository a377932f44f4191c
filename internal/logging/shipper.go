package logging

import (
	"errors"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Shipper mirrors log lines to a Logstash TCP input. Write only enqueues, so
// request handling never waits on the network; lines are dropped when the
// queue is full or the remote end is unreachable.
type Shipper struct {
	addr          string
	dialTimeout   time.Duration
	writeTimeout  time.Duration
	retryInterval time.Duration

	queue   chan []byte
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	dropped atomic.Int64

	conn      net.Conn
	nextRetry time.Time
}

type Option func(*Shipper)

// WithDialTimeout overrides the TCP dial timeout. Defaults to 2 seconds.
func WithDialTimeout(d time.Duration) Option {
	return func(s *Shipper) {
		s.dialTimeout = d
	}
}

// WithWriteTimeout overrides the TCP write timeout. Defaults to 1 second.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Shipper) {
		s.writeTimeout = d
	}
}

// WithRetryInterval overrides the cool-down after a failed connect or write.
func WithRetryInterval(d time.Duration) Option {
	return func(s *Shipper) {
		s.retryInterval = d
	}
}

// WithQueueSize sets how many pending lines are buffered. Defaults to 1024.
func WithQueueSize(n int) Option {
	return func(s *Shipper) {
		if n > 0 {
			s.queue = make(chan []byte, n)
		}
	}
}

func NewShipper(addr string, opts ...Option) (*Shipper, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logstash: empty address")
	}

	s := &Shipper{
		addr:          addr,
		dialTimeout:   2 * time.Second,
		writeTimeout:  time.Second,
		retryInterval: 5 * time.Second,
		queue:         make(chan []byte, 1024),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.wg.Add(1)
	go s.run()
	return s, nil
}

// Write implements io.Writer and always reports the full length.
func (s *Shipper) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	line := make([]byte, len(p), len(p)+1)
	copy(line, p)
	if line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}

	select {
	case <-s.done:
		s.dropped.Add(1)
	case s.queue <- line:
	default:
		s.dropped.Add(1)
	}
	return len(p), nil
}

// Dropped reports how many lines were discarded so far.
func (s *Shipper) Dropped() int64 {
	return s.dropped.Load()
}

// Close stops the sender after it drains what is already queued.
func (s *Shipper) Close() error {
	s.once.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
	return nil
}

func (s *Shipper) run() {
	defer s.wg.Done()
	defer s.closeConn()

	for {
		select {
		case line := <-s.queue:
			s.send(line)
		case <-s.done:
			for {
				select {
				case line := <-s.queue:
					s.send(line)
				default:
					return
				}
			}
		}
	}
}

func (s *Shipper) send(line []byte) {
	if err := s.ensureConn(); err != nil {
		s.dropped.Add(1)
		return
	}
	if s.writeTimeout > 0 {
		_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	}
	if _, err := s.conn.Write(line); err != nil {
		s.dropped.Add(1)
		s.closeConn()
		s.scheduleRetry()
	}
}

func (s *Shipper) ensureConn() error {
	if s.conn != nil {
		return nil
	}
	if !s.nextRetry.IsZero() && time.Now().Before(s.nextRetry) {
		return errRetryCooldown
	}

	conn, err := net.DialTimeout("tcp", s.addr, s.dialTimeout)
	if err != nil {
		s.scheduleRetry()
		return err
	}
	s.conn = conn
	s.nextRetry = time.Time{}
	return nil
}

func (s *Shipper) closeConn() {
	if s.conn == nil {
		return
	}
	_ = s.conn.Close()
	s.conn = nil
}

func (s *Shipper) scheduleRetry() {
	if s.retryInterval <= 0 {
		s.nextRetry = time.Time{}
		return
	}
	s.nextRetry = time.Now().Add(s.retryInterval)
}

var errRetryCooldown = errors.New("logstash: retry cooldown in effect")
