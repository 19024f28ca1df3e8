// Package windowhost brings detached window surfaces up and down.
package windowhost

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/bnema/casement/internal/application/port"
	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/logging"
)

// DefaultGracePeriod is how long a surface gets to exit after SIGTERM.
const DefaultGracePeriod = 2 * time.Second

// Options configures a Launcher.
type Options struct {
	// Template is the surface command line. {exe}, {id} and {socket} are
	// substituted. Empty means surfaces are attached by hand.
	Template string
	// Exe is the casement binary, defaulting to os.Executable.
	Exe    string
	Socket string
	Grace  time.Duration
}

// Launcher implements port.WindowHost by spawning one process per detached
// window.
type Launcher struct {
	opts Options

	mu    sync.Mutex
	procs map[entity.WindowID]*exec.Cmd
	exits map[entity.WindowID]chan struct{}
}

var _ port.WindowHost = (*Launcher)(nil)

// NewLauncher creates a launcher.
func NewLauncher(opts Options) *Launcher {
	if opts.Exe == "" {
		if exe, err := os.Executable(); err == nil {
			opts.Exe = exe
		} else {
			opts.Exe = "casement"
		}
	}
	if opts.Grace <= 0 {
		opts.Grace = DefaultGracePeriod
	}
	return &Launcher{
		opts:  opts,
		procs: make(map[entity.WindowID]*exec.Cmd),
		exits: make(map[entity.WindowID]chan struct{}),
	}
}

// Command returns the argv for windowID.
func (l *Launcher) Command(windowID entity.WindowID) []string {
	return Expand(l.opts.Template, l.opts.Exe, windowID, l.opts.Socket)
}

// Expand splits template on whitespace and substitutes the placeholders.
func Expand(template, exe string, windowID entity.WindowID, socket string) []string {
	r := strings.NewReplacer(
		"{exe}", exe,
		"{id}", strconv.FormatUint(uint64(windowID), 10),
		"{socket}", socket,
	)
	fields := strings.Fields(template)
	for i, f := range fields {
		fields[i] = r.Replace(f)
	}
	return fields
}

func (l *Launcher) OpenWindow(ctx context.Context, windowID entity.WindowID) error {
	log := logging.FromContext(ctx).With().
		Str("component", "windowhost").
		Uint64("window_id", uint64(windowID)).
		Logger()

	argv := l.Command(windowID)
	if len(argv) == 0 {
		log.Info().
			Str("attach", fmt.Sprintf("%s window --id %d", l.opts.Exe, windowID)).
			Msg("window detached; no launcher configured")
		return nil
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(),
		"CASEMENT_WINDOW_ID="+strconv.FormatUint(uint64(windowID), 10),
		"CASEMENT_SOCKET="+l.opts.Socket,
	)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch window %d: %w", windowID, err)
	}

	exited := make(chan struct{})
	l.mu.Lock()
	l.procs[windowID] = cmd
	l.exits[windowID] = exited
	l.mu.Unlock()

	go func() {
		err := cmd.Wait()
		l.mu.Lock()
		if l.procs[windowID] == cmd {
			delete(l.procs, windowID)
			delete(l.exits, windowID)
		}
		l.mu.Unlock()
		close(exited)
		log.Debug().Err(err).Msg("window surface exited")
	}()

	log.Info().Int("pid", cmd.Process.Pid).Strs("argv", argv).Msg("window surface launched")
	return nil
}

func (l *Launcher) CloseWindow(ctx context.Context, windowID entity.WindowID) error {
	l.mu.Lock()
	cmd, ok := l.procs[windowID]
	exited := l.exits[windowID]
	l.mu.Unlock()
	if !ok {
		return nil
	}

	go l.terminate(ctx, windowID, cmd, exited)
	return nil
}

// Running reports whether a launched surface for windowID is still alive.
func (l *Launcher) Running(windowID entity.WindowID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.procs[windowID]
	return ok
}

// Close terminates every launched surface and waits for them.
func (l *Launcher) Close(ctx context.Context) {
	l.mu.Lock()
	type proc struct {
		id     entity.WindowID
		cmd    *exec.Cmd
		exited chan struct{}
	}
	procs := make([]proc, 0, len(l.procs))
	for id, cmd := range l.procs {
		procs = append(procs, proc{id: id, cmd: cmd, exited: l.exits[id]})
	}
	l.mu.Unlock()

	var wg sync.WaitGroup
	for _, p := range procs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.terminate(ctx, p.id, p.cmd, p.exited)
		}()
	}
	wg.Wait()
}

// terminate sends SIGTERM to the surface's process group, then SIGKILL
// once the grace period is over.
func (l *Launcher) terminate(ctx context.Context, windowID entity.WindowID, cmd *exec.Cmd, exited <-chan struct{}) {
	log := logging.FromContext(ctx)
	pgid := -cmd.Process.Pid

	if err := syscall.Kill(pgid, syscall.SIGTERM); err != nil && !errors.Is(err, syscall.ESRCH) {
		log.Debug().Err(err).Uint64("window_id", uint64(windowID)).Msg("SIGTERM failed")
	}

	select {
	case <-exited:
		return
	case <-time.After(l.opts.Grace):
	}

	log.Warn().Uint64("window_id", uint64(windowID)).Msg("window surface ignored SIGTERM, killing")
	_ = syscall.Kill(pgid, syscall.SIGKILL)
	<-exited
}
