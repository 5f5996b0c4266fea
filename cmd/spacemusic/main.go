package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/vidalfer/SpaceMusic/internal/detector"
	"github.com/vidalfer/SpaceMusic/internal/server"
	"github.com/vidalfer/SpaceMusic/internal/store"
	"github.com/vidalfer/SpaceMusic/internal/tray"
)

func main() {
	addr := flag.String("addr", ":8000", "HTTP listen address")
	staticDir := flag.String("static", "", "static file directory (default: auto-detect web/)")
	dbPath := flag.String("db", "", "SQLite database path (default: ~/.spacemusic/spacemusic.db)")
	yoloPath := flag.String("yolo", "models/yolov8n.onnx", "YOLOv8 ONNX model path")
	maxPlayers := flag.Int("max-players", 4, "maximum number of tracked players")
	withTray := flag.Bool("tray", false, "show a system tray icon")
	flag.Parse()

	fmt.Println("SpaceMusic - Gesture DJ backend")

	// Initialize the store
	path := *dbPath
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}
		dbDir := filepath.Join(homeDir, ".spacemusic")
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		path = filepath.Join(dbDir, "spacemusic.db")
	}

	st, err := store.New(path)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Detection models: the service runs with whatever loads. Without the
	// hand model, tracking sessions are refused; without the person model,
	// the hand-only fallback is used.
	var hands detector.HandDetector
	if mp, err := detector.NewMediaPipeDetector(handConfig(*maxPlayers)); err == nil {
		hands = mp
		defer hands.Close()
		log.Println("MediaPipe hand detection loaded")
	} else {
		log.Printf("MediaPipe not available: %v", err)
	}

	var persons detector.PersonDetector
	if yolo, err := detector.NewYOLOPersonDetector(*yoloPath, 0.5); err == nil {
		persons = yolo
		defer persons.Close()
		log.Println("YOLOv8 person tracking loaded")
	} else {
		log.Printf("Person tracking not available: %v", err)
	}

	genAI := os.Getenv("GEMINI_API_KEY") != ""
	if !genAI {
		log.Println("GEMINI_API_KEY not set; music sessions use the local synth engine")
	}

	// Find web directory
	webDir := *staticDir
	if webDir == "" {
		webDir = findWebDir()
	}
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	cfg := server.Config{
		StaticDir:      webDir,
		Store:          st,
		Hands:          hands,
		Persons:        persons,
		MaxPlayers:     *maxPlayers,
		GenAIAvailable: genAI,
	}

	var t *tray.Tray
	if *withTray {
		t = tray.New()
		cfg.TrackingEnabled = t.IsEnabled
		cfg.OnPlayerCount = t.SetPlayerCount
		t.OnToggle(func(enabled bool) {
			if enabled {
				log.Println("Tracking enabled from tray")
			} else {
				log.Println("Tracking disabled from tray")
			}
		})
	}

	srv := server.New(cfg)

	fmt.Printf("Starting server on %s\n", *addr)

	if t != nil {
		t.OnOpenUI(func() {
			openBrowser("http://localhost" + *addr)
		})
		t.OnQuit(func() {
			os.Exit(0)
		})
		go func() {
			if err := srv.ListenAndServe(*addr); err != nil {
				log.Fatalf("Server failed: %v", err)
			}
		}()
		t.Run()
		return
	}

	if err := srv.ListenAndServe(*addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// handConfig sizes hand detection to the player limit: two hands each.
func handConfig(maxPlayers int) detector.Config {
	cfg := detector.DefaultConfig()
	cfg.MaxHands = maxPlayers * 2
	return cfg
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.spacemusic/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".spacemusic", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

// openBrowser opens the URL with the platform's default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
