package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/ayusman/hoopform/internal/app"
	"github.com/ayusman/hoopform/internal/config"
	"github.com/ayusman/hoopform/internal/server"
	"github.com/ayusman/hoopform/internal/tray"
)

func main() {
	configPath := flag.String("config", config.GetConfigPath(), "path to the JSON config file")
	addr := flag.String("addr", "", "listen address, overrides server.addr")
	imagePath := flag.String("image", "", "analyze one image, print the result as JSON and exit")
	withOverlay := flag.Bool("overlay", false, "include the overlay data URL in -image output")
	withTray := flag.Bool("tray", false, "show shot statistics in the system tray")
	writeConfig := flag.Bool("write-config", false, "write the default config to -config and exit")
	flag.Parse()

	if *writeConfig {
		if err := config.Default().SaveToFile(*configPath); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Wrote default config to %s\n", *configPath)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	a := app.New(appConfig(cfg))

	if *imagePath != "" {
		err := analyzeOnce(a, *imagePath, *withOverlay)
		a.Close()
		if err != nil {
			log.Fatalf("Analysis failed: %v", err)
		}
		return
	}
	defer a.Close()

	fmt.Println("hoopform - Basketball Shooting Form Coach")

	// Find web directory
	webDir := findWebDir(cfg.Server.StaticDir)
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		App:       a,
	})

	fmt.Printf("Starting server on %s\n", cfg.Server.Addr)
	if !*withTray {
		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe(cfg.Server.Addr) }()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			a.Close()
			log.Fatalf("Server failed: %v", err)
		case sig := <-sigCh:
			log.Printf("Received %v, shutting down", sig)
		}
		return
	}

	go func() {
		if err := srv.ListenAndServe(cfg.Server.Addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	t := tray.New()
	t.SetStats(a.Stats().Snapshot())
	a.Stats().Subscribe(t.SetStats)
	t.OnOpen(func() {
		if err := openBrowser(browserURL(cfg.Server.Addr)); err != nil {
			log.Printf("Failed to open browser: %v", err)
		}
	})
	t.OnReset(func() { a.Stats().Reset() })
	t.Run()
}

func appConfig(cfg *config.Config) app.Config {
	return app.Config{
		Detector:         cfg.Detector,
		Thresholds:       cfg.Analyzer,
		Style:            cfg.Render,
		Capture:          cfg.Capture,
		SuccessThreshold: cfg.Stats.SuccessThreshold,
		DetectTimeout:    time.Duration(cfg.Server.DetectTimeoutSec) * time.Second,
	}
}

// analyzeOnce grades a single image file and prints the result.
func analyzeOnce(a *app.App, path string, withOverlay bool) error {
	res, err := a.AnalyzeFile(context.Background(), path)
	if err != nil {
		return err
	}
	if !withOverlay {
		res.Overlay = ""
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// browserURL turns a listen address into a URL a local browser can open.
func browserURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/"
}

func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}

// findWebDir searches for the web directory in common locations.
// It checks the configured directory, then "web", "../web", "../../web",
// and ~/.hoopform/web.
// Returns the first existing directory or empty string if none found.
func findWebDir(configured string) string {
	// Check relative paths from current working directory
	candidates := []string{"web", "../web", "../../web"}
	if configured != "" {
		candidates = append([]string{configured}, candidates...)
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".hoopform", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
