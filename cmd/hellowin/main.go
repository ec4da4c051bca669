// SPDX-License-Identifier: Unlicense OR MIT

// Command hellowin opens a single window, paints it and exits when it
// is closed.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"winwrap.org/app"
	"winwrap.org/internal/win32"
	"winwrap.org/internal/win32/fake"
)

var (
	configPath = flag.String("config", "", "YAML configuration file.")
	className  = flag.String("class", "", "window class name.")
	title      = flag.String("title", "", "window title.")
	width      = flag.Int("width", 0, "window width; 0 lets the system choose.")
	height     = flag.Int("height", 0, "window height; 0 lets the system choose.")
	initial    = flag.Int("initial", 0, "initial value attached to the window.")
	simulate   = flag.Bool("simulate", false, "run against the in-memory windowing system and close the window when idle.")
	debug      = flag.Bool("debug", false, "enable debug logging.")
)

func init() {
	// Window messages are delivered to the thread that created the
	// window.
	runtime.LockOSThread()
}

func main() {
	flag.Parse()
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hellowin: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&cfg)
	log := app.NewLogger(cfg.Debug)
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	var api win32.API
	if cfg.Simulate {
		api = newSimulation()
	} else if api, err = win32.NewSystem(); err != nil {
		log.Fatal("native windowing", zap.Error(err))
	}
	code, err := run(app.NewSystem(api, log), cfg)
	if err != nil {
		log.Fatal("hellowin", zap.Error(err))
	}
	log.Sync()
	os.Exit(code)
}

// applyFlags overrides cfg with the flags given on the command line.
func applyFlags(cfg *Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "class":
			cfg.Class = *className
		case "title":
			cfg.Title = *title
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "initial":
			cfg.Initial = *initial
		case "simulate":
			cfg.Simulate = *simulate
		case "debug":
			cfg.Debug = *debug
		}
	})
}

// newSimulation returns an in-memory system that closes every window
// once its queue is empty.
func newSimulation() *fake.System {
	s := fake.New()
	s.Idle = func(s *fake.System) bool {
		hwnds := s.Windows()
		if len(hwnds) == 0 {
			return false
		}
		return s.PostMessage(hwnds[0], win32.WM_CLOSE, 0, 0)
	}
	return s
}

// run registers the window class, opens the window and runs the
// message loop. It returns the exit code carried by WM_QUIT.
func run(sys *app.System, cfg Config) (int, error) {
	log := sys.Logger()
	proc := app.NewProc(sys, app.NewValues[int]())
	proc.OnPaint = func(hwnd win32.HWND, v *int) {
		log.Info("paint", zap.Uintptr("hwnd", uintptr(hwnd)), zap.Int("value", *v))
		*v++
	}
	proc.OnRelease = func(hwnd win32.HWND, v int) {
		log.Info("released", zap.Uintptr("hwnd", uintptr(hwnd)), zap.Int("value", v))
	}
	cls, err := sys.NewClass(cfg.Class, proc.WndProc)
	if err != nil {
		return 0, err
	}
	var opts []app.Option
	if cfg.Width > 0 {
		opts = append(opts, app.Size(cfg.Width, cfg.Height))
	}
	if p := cfg.Position; p != nil {
		opts = append(opts, app.Pos(p.X, p.Y))
	}
	tok := proc.Values().Box(cfg.Initial)
	hwnd, err := sys.CreateAppWindow(cls.Name, cfg.Title, uintptr(tok), opts...)
	if err != nil {
		proc.Values().Discard(tok)
		return 0, err
	}
	sys.ShowWindow(hwnd, win32.SW_SHOW)
	return sys.Loop()
}
