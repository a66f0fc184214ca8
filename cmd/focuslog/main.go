package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/focuslog/focuslog/internal/config"
	"github.com/focuslog/focuslog/internal/daemon"
	"github.com/focuslog/focuslog/internal/database"
	"github.com/focuslog/focuslog/internal/export"
	"github.com/focuslog/focuslog/internal/reporter"
	"github.com/focuslog/focuslog/internal/tracker"
	"github.com/focuslog/focuslog/pkg/detector"
	"github.com/focuslog/focuslog/pkg/idle"
)

var (
	version = "0.1.0"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "start":
		startDaemon()
	case "stop":
		stopDaemon()
	case "status":
		showStatus()
	case "report":
		generateReport()
	case "export":
		exportDay()
	case "clear":
		clearDatabase()
	case "version":
		fmt.Printf("focuslog version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`focuslog - Application usage session tracker

Usage:
  focuslog <command> [options]

Commands:
  start              Start the tracking daemon
  stop               Stop the tracking daemon (flushes the open session)
  status             Show daemon status and current focused window
  report [period]    Generate time report (period: day, week, month)
  export [date]      Write a day's usage records to CSV (date: YYYY-MM-DD)
  clear              Clear all tracking data from database
  version            Show version information
  help               Show this help message

Examples:
  focuslog start
  focuslog status
  focuslog report week
  focuslog export 2026-03-14
  focuslog stop

Environment Variables:
  FOCUSLOG_DB_PATH          Database file path
  FOCUSLOG_POLL_INTERVAL    Poll interval in seconds (1-300)
  FOCUSLOG_IDLE_THRESHOLD   Idle threshold in seconds
  FOCUSLOG_PID_FILE         PID file path
  FOCUSLOG_EXPORT_DIR       Directory for day-partitioned CSV output
  FOCUSLOG_EXPORT_ENABLED   Write CSV live while tracking (true/false)
  FOCUSLOG_EXCLUDE_IDLE     Exclude idle time from reports (true/false)

Version: %s
`, version)
}

func startDaemon() {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Check if already running
	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if running {
		log.Fatalf("Daemon is already running (PID: %d)", pid)
	}

	// Parent process forks and exits; the child runs the tracker
	if os.Getenv("FOCUSLOG_DAEMON_CHILD") != "1" {
		daemonize()
		return
	}

	runDaemon(cfg, dm)
}

func runDaemon(cfg *config.Config, dm *daemon.Daemon) {
	// Redirect logs to file
	logFile, err := os.OpenFile("/tmp/focuslog.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err == nil {
		log.SetOutput(logFile)
		defer logFile.Close()
	}

	// Initialize database
	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize detector
	det, err := detector.New()
	if err != nil {
		log.Fatalf("Failed to initialize window detector: %v", err)
	}
	defer det.Close()

	log.Printf("Window detector initialized: %s", det.GetDisplayServer())

	// Write PID file
	if err := dm.WritePID(); err != nil {
		log.Fatalf("Failed to write PID file: %v", err)
	}
	defer dm.RemovePID()

	// Sinks: durable store always, live CSV when enabled
	repo := database.NewRepository(db)
	sinks := []tracker.Sink{repo}

	var csvWriter *export.CSVWriter
	if cfg.Export.Enabled {
		csvWriter = export.NewCSVWriter(cfg.Export.Dir)
		defer csvWriter.Close()
		sinks = append(sinks, csvWriter)
	}

	// The idle monitor is the only writer of the shared flag; the poll
	// loop reads it each tick.
	idleFlag := new(idle.Flag)
	trackerSvc := tracker.NewService(cfg, det, idleFlag, sinks...)
	trackerSvc.SetErrorSink(repo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	monitor := idle.NewMonitor(det, idleFlag, cfg.Tracker.IdleThreshold, cfg.Tracker.PollInterval)
	go monitor.Run(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
		trackerSvc.Stop()
	}()

	log.Println("Starting focuslog daemon...")
	log.Printf("Configuration:\n%s", cfg.String())

	if err := trackerSvc.Start(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Tracker error: %v", err)
	}

	log.Println("Daemon stopped successfully")
}

func stopDaemon() {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}

	if !running {
		fmt.Println("Daemon is not running")
		return
	}

	fmt.Printf("Stopping daemon (PID: %d)...\n", pid)
	if err := dm.Stop(); err != nil {
		log.Fatalf("Failed to stop daemon: %v", err)
	}

	fmt.Println("Daemon stopped successfully")
}

func showStatus() {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}

	if !running {
		fmt.Println("Status: Not running")
		// Still show current window detection even when not running
	} else {
		fmt.Printf("Status: Running (PID: %d)\n", pid)
		fmt.Printf("Poll Interval: %v\n", cfg.Tracker.PollInterval)
		fmt.Printf("Database: %s\n", cfg.Database.Path)
	}

	det, err := detector.New()
	if err != nil {
		fmt.Printf("\nCould not detect current window: %v\n", err)
		return
	}
	defer det.Close()

	snap, err := det.GetFocusedWindow()
	if err == nil && snap != nil {
		fmt.Printf("\nCurrent Window:\n")
		fmt.Printf("  App: %s\n", snap.Application)
		fmt.Printf("  Title: %s\n", snap.Title)
	}

	idleInfo, err := det.GetIdleInfo()
	if err == nil && idleInfo != nil {
		fmt.Printf("\nSystem State:\n")
		fmt.Printf("  Locked: %v\n", idleInfo.IsLocked)
		fmt.Printf("  Idle Time: %ds (threshold: %ds)\n",
			idleInfo.IdleTime, cfg.GetIdleThresholdSeconds())
	}
}

func generateReport() {
	periodType := "day"
	if len(os.Args) > 2 {
		periodType = os.Args[2]
	}

	cfg := config.New()

	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := database.NewRepository(db)
	rep := reporter.New(cfg, repo)

	jsonOutput := false
	if len(os.Args) > 3 && os.Args[3] == "--json" {
		jsonOutput = true
	}

	report, err := rep.GenerateReport(periodType)
	if err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}

	if jsonOutput {
		jsonStr, err := rep.FormatReportJSON(report)
		if err != nil {
			log.Fatalf("Failed to format JSON: %v", err)
		}
		fmt.Println(jsonStr)
	} else {
		fmt.Println(rep.FormatReportText(report))
	}
}

func exportDay() {
	cfg := config.New()

	day := time.Now()
	if len(os.Args) > 2 {
		var err error
		day, err = time.ParseInLocation("2006-01-02", os.Args[2], time.Local)
		if err != nil {
			log.Fatalf("Invalid date %q (want YYYY-MM-DD): %v", os.Args[2], err)
		}
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := database.NewRepository(db)
	records, err := repo.GetRecordsBetween(start, end)
	if err != nil {
		log.Fatalf("Failed to query records: %v", err)
	}

	if len(records) == 0 {
		fmt.Printf("No records for %s\n", start.Format("2006-01-02"))
		return
	}

	w := export.NewCSVWriter(cfg.Export.Dir)
	defer w.Close()

	for _, record := range records {
		if err := w.Append(record); err != nil {
			log.Fatalf("Failed to write record: %v", err)
		}
	}

	fmt.Printf("Exported %d records to %s\n", len(records), export.Filename(start.Format("20060102")))
}

func clearDatabase() {
	cfg := config.New()

	// Prompt for confirmation
	fmt.Print("This will delete all tracking data. Are you sure? (yes/no): ")
	var response string
	fmt.Scanln(&response)

	if response != "yes" && response != "y" {
		fmt.Println("Operation cancelled")
		return
	}

	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := database.NewRepository(db)

	if err := repo.Clear(); err != nil {
		log.Fatalf("Failed to clear database: %v", err)
	}

	fmt.Println("Database cleared successfully")
}

func daemonize() {
	env := os.Environ()
	env = append(env, "FOCUSLOG_DAEMON_CHILD=1")

	args := os.Args

	procAttr := &os.ProcAttr{
		Env:   env,
		Files: []*os.File{nil, nil, nil}, // stdin, stdout, stderr to /dev/null
		Sys: &syscall.SysProcAttr{
			Setsid: true, // Create new session
		},
	}

	process, err := os.StartProcess(args[0], args, procAttr)
	if err != nil {
		log.Fatalf("Failed to start daemon process: %v", err)
	}

	fmt.Printf("Daemon started successfully (PID: %d)\n", process.Pid)
	fmt.Println("Logs: /tmp/focuslog.log")
}
