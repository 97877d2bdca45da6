package html2deck

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/hollisjv/go-html2deck/internal/process"
)

// browserSession wraps one headless Chrome process and the page contexts
// opened in it. At most one session is alive per Converter; it is created
// lazily on first use, reused across all jobs in a batch, and torn down
// explicitly via Close.
type browserSession struct {
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	bin      string
	logger   *zap.Logger
}

func newBrowserSession(bin string, logger *zap.Logger) *browserSession {
	return &browserSession{bin: bin, logger: logger}
}

// ensure lazily launches the browser and connects to it. Idempotent: a
// second call while the session is live reuses the existing process.
func (s *browserSession) ensure() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser != nil {
		return nil
	}

	// Sandboxing and GPU acceleration are off: both break headless Chrome
	// in unattended server and container environments.
	l := launcher.New().
		Headless(true).
		NoSandbox(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage")

	// Use pre-installed browser if specified (Docker/containerized environments)
	if s.bin != "" {
		l = l.Bin(s.bin)
	} else if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	s.launcher = l
	s.browser = browser
	s.logger.Info("browser session started")
	return nil
}

// page opens a new page context on the given URL. Callers own the page and
// must close it ("close what you opened").
func (s *browserSession) page(url string) (*rod.Page, error) {
	s.mu.Lock()
	browser := s.browser
	s.mu.Unlock()

	if browser == nil {
		return nil, fmt.Errorf("%w: session not started", ErrPageCreate)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	return page, nil
}

// Close tears down the browser process. Safe to call multiple times and
// on a session that never started.
func (s *browserSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser == nil {
		return nil
	}

	err := s.browser.Close()
	if s.launcher != nil {
		// Kill the process tree as well; browser.Close only ends the CDP
		// session and Chrome occasionally outlives it.
		s.launcher.Kill()
		process.KillProcessGroup(s.launcher.PID())
		s.launcher = nil
	}
	s.browser = nil
	s.logger.Info("browser session closed")
	return err
}
