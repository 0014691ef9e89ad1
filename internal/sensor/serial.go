package sensor

import (
	"context"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.bug.st/serial"

	"github.com/Iron-Ham/evolution/internal/errors"
	"github.com/Iron-Ham/evolution/internal/logging"
)

// DefaultBaudRate is used when SerialConfig.BaudRate is unset.
const DefaultBaudRate = 115200

// DefaultPollInterval is used when SerialConfig.PollInterval is unset.
const DefaultPollInterval = time.Second

// SerialConfig configures a Serial session.
type SerialConfig struct {
	Port         string
	BaudRate     int
	PollInterval time.Duration
}

// Mode converts the configuration into the mode go.bug.st/serial opens with.
func (c SerialConfig) Mode() *serial.Mode {
	baud := c.BaudRate
	if baud <= 0 {
		baud = DefaultBaudRate
	}
	return &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

// Serial is a session whose availability follows a serial device: the
// device is available while its port is listed and can be opened.
type Serial struct {
	mu        sync.Mutex
	id        string
	cfg       SerialConfig
	logger    *logging.Logger
	open      bool
	available bool
	port      io.Closer

	listPorts func() ([]string, error)
	openPort  func(name string, mode *serial.Mode) (io.Closer, error)

	sources   map[Modality]Source
	listeners listeners

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSerial creates a closed serial session. A nil logger discards output.
func NewSerial(cfg SerialConfig, logger *logging.Logger) *Serial {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	id := uuid.NewString()
	return &Serial{
		id:        id,
		cfg:       cfg,
		logger:    logger.WithSession(id).WithComponent("sensor"),
		listPorts: serial.GetPortsList,
		openPort: func(name string, mode *serial.Mode) (io.Closer, error) {
			return serial.Open(name, mode)
		},
		sources: newSources(),
	}
}

// ListPorts returns the serial ports present on the system.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, errors.Wrap(err, "list serial ports")
	}
	slices.Sort(ports)
	return ports, nil
}

// ID returns the session identifier.
func (s *Serial) ID() string { return s.id }

// Open probes the port once and starts polling for presence changes.
func (s *Serial) Open() error {
	if s.cfg.Port == "" {
		return errors.NewSessionError("open", errors.ErrSensorUnavailable).
			WithSessionID(s.id).WithDriver("serial")
	}

	s.mu.Lock()
	if s.open {
		s.mu.Unlock()
		return nil
	}
	s.open = true
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	s.logger.Info("serial session opened", "port", s.cfg.Port, "baud", s.cfg.Mode().BaudRate)
	s.probe()
	s.wg.Go(func() { s.poll(ctx) })
	return nil
}

func (s *Serial) poll(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.probe()
		}
	}
}

// probe checks port presence once and updates availability.
func (s *Serial) probe() {
	ports, err := s.listPorts()
	if err != nil {
		s.logger.Warn("failed to list serial ports", "error", err)
		ports = nil
	}
	present := slices.Contains(ports, s.cfg.Port)

	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return
	}
	switch {
	case present && s.port == nil:
		port, err := s.openPort(s.cfg.Port, s.cfg.Mode())
		if err != nil {
			s.logger.Warn("failed to open serial port", "port", s.cfg.Port, "error", err)
		} else {
			s.port = port
		}
	case !present && s.port != nil:
		_ = s.port.Close()
		s.port = nil
	}
	available := s.port != nil
	changed := available != s.available
	s.available = available
	s.mu.Unlock()

	if changed {
		s.logger.Info("sensor availability changed", "available", available)
		s.listeners.notify(available)
	}
}

// Close stops polling and releases the port.
func (s *Serial) Close() error {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return errors.NewSessionError("close", errors.ErrSessionClosed).WithSessionID(s.id).WithDriver("serial")
	}
	s.open = false
	s.available = false
	cancel := s.cancel
	s.cancel = nil
	port := s.port
	s.port = nil
	s.mu.Unlock()

	cancel()
	s.wg.Wait()

	if port != nil {
		if err := port.Close(); err != nil {
			return errors.Wrap(err, "close serial port")
		}
	}
	s.logger.Info("serial session closed")
	return nil
}

// IsOpen reports whether the session is open.
func (s *Serial) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// IsAvailable reports whether the device port is held open.
func (s *Serial) IsAvailable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open && s.available
}

// OnAvailabilityChanged registers fn.
func (s *Serial) OnAvailabilityChanged(fn func(bool)) func() {
	return s.listeners.add(fn)
}

// Source returns the source for m.
func (s *Serial) Source(m Modality) Source {
	return s.sources[m]
}

// CoordinateMapper returns the fixed-ratio mapper.
func (s *Serial) CoordinateMapper() CoordinateMapper {
	return defaultMapper
}
