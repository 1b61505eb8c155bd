package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/lixenwraith/tstris/audio"
	"github.com/lixenwraith/tstris/config"
	"github.com/lixenwraith/tstris/constant"
	"github.com/lixenwraith/tstris/engine"
	"github.com/lixenwraith/tstris/game"
	"github.com/lixenwraith/tstris/input"
	"github.com/lixenwraith/tstris/status"
	"github.com/lixenwraith/tstris/terminal"
)

const (
	logDir      = "logs"
	logFileName = "tstris.log"
	maxLogSize  = 10 * 1024 * 1024
)

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mTSTRIS CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(exitError)
		}
	}()

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// flags holds parsed command-line values
type flags struct {
	configPath string
	debug      bool
	version    bool

	mode    string
	level   int
	seed    uint64
	preview int
	noSound bool
	noGhost bool
	kicks   bool
	wait    bool

	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	f := &flags{set: make(map[string]bool)}
	fs := flag.NewFlagSet("tstris", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", config.DefaultPath(), "Path to YAML config file")
	fs.StringVar(&f.mode, "mode", "marathon", "Game mode: marathon, sprint")
	fs.IntVar(&f.level, "level", constant.MinLevel, "Starting level")
	fs.Uint64Var(&f.seed, "seed", 0, "Randomizer seed (0 = random)")
	fs.IntVar(&f.preview, "preview", constant.DefaultPreview, "Number of next pieces shown (0-5)")
	fs.BoolVar(&f.noSound, "no-sound", false, "Disable sound")
	fs.BoolVar(&f.noGhost, "no-ghost", false, "Hide the ghost piece")
	fs.BoolVar(&f.kicks, "kicks", false, "Enable wall kicks")
	fs.BoolVar(&f.wait, "wait", false, "Wait for hard drop before each game starts")
	fs.BoolVar(&f.debug, "debug", false, "Write debug log to "+filepath.Join(logDir, logFileName))
	fs.BoolVar(&f.version, "version", false, "Print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: tstris [flags]\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "\nActions for the config keys map: %v\n", input.ActionNames())
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// apply layers explicitly set flags over the file config
func (f *flags) apply(cfg *config.Config) {
	if f.set["mode"] {
		cfg.Mode = f.mode
	}
	if f.set["level"] {
		cfg.StartLevel = f.level
	}
	if f.set["seed"] {
		cfg.Seed = f.seed
	}
	if f.set["preview"] {
		cfg.Preview = f.preview
	}
	if f.noSound {
		cfg.Sound = false
	}
	if f.noGhost {
		cfg.Ghost = false
	}
	if f.kicks {
		cfg.WallKicks = true
	}
	if f.wait {
		cfg.WaitForStart = true
	}
}

// loadConfig resolves defaults, file and flags into a validated config
func loadConfig(f *flags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	f.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid settings: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "tstris: %v\n", err)
		return exitUsage
	}
	if f.version {
		fmt.Fprintf(stdout, "tstris %s\n", constant.Version)
		return exitOK
	}

	cfg, err := loadConfig(f)
	if err != nil {
		fmt.Fprintf(stderr, "tstris: %v\n", err)
		return exitUsage
	}
	keys, err := cfg.KeyTable()
	if err != nil {
		fmt.Fprintf(stderr, "tstris: %v\n", err)
		return exitUsage
	}

	if logFile := setupLogging(f.debug); logFile != nil {
		defer logFile.Close()
	}
	log.Printf("tstris %s starting: config=%q seed=%d", constant.Version, f.configPath, cfg.Seed)

	term, err := terminal.New()
	if err != nil {
		fmt.Fprintf(stderr, "tstris: %v\n", err)
		return exitError
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(stderr, "tstris: failed to initialize terminal: %v\n", err)
		return exitError
	}
	// Normal exit terminal cleanup
	defer term.Fini()

	sound := audio.NewSoundManager(cfg.Volume)
	if cfg.Sound {
		if err := sound.Initialize(); err != nil {
			log.Printf("Audio initialization failed: %v (continuing without audio)", err)
		} else {
			defer sound.Cleanup()
		}
	} else {
		sound.SetMuted(true)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	intents := make(chan input.Intent, constant.IntentQueueSize)
	reader := input.NewReader(term, keys)
	// Input polling uses raw goroutine as it interacts directly with terminal
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		defer func() {
			if r := recover(); r != nil {
				terminal.EmergencyReset(os.Stdout)
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mINPUT READER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(exitError)
			}
		}()
		reader.Run(ctx, intents)
	}()

	g := game.New(cfg.GameOptions())
	stats := status.NewRegistry()
	loop := engine.NewLoop(g, term, intents, engine.WithSound(sound), engine.WithStats(stats))
	if err := loop.Run(ctx); err != nil {
		// Signals end the session like Quit
		log.Printf("session interrupted: %v", err)
	}

	// Wake the reader out of PollEvent so it exits before the screen is torn down
	stop()
	term.PostInterrupt()
	select {
	case <-readerDone:
	case <-time.After(constant.ReaderShutdownTimeout):
		log.Printf("input reader still blocked at shutdown")
	}

	term.Fini()
	fmt.Fprintf(stdout, "score %d  lines %d  level %d  time %s\n",
		g.Score(), g.Lines(), g.Level(), formatDuration(g.Snapshot().Elapsed))
	return exitOK
}

func formatDuration(d time.Duration) string {
	return d.Truncate(100 * time.Millisecond).String()
}

// setupLogging routes the standard logger to logs/tstris.log when debug is set, discarding otherwise
// The terminal belongs to the renderer, so logs never go to stdout or stderr
// A log file over maxLogSize is rotated to a timestamped name
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("tstris-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			log.SetOutput(io.Discard)
			return nil
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	return f
}
