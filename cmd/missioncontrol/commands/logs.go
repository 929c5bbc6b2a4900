package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/marcus/missioncontrol/internal/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View logs",
	Long: `View missioncontrol logs.

Displays recent log entries. Use --follow to stream logs in real-time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tail, _ := cmd.Flags().GetInt("tail")
		follow, _ := cmd.Flags().GetBool("follow")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logDir := cfg.ExpandedLogPath()
		out := cmd.OutOrStdout()

		if follow {
			return followLogs(cmd.Context(), out, logDir, tail)
		}
		return showLogs(out, logDir, tail)
	},
}

func init() {
	logsCmd.Flags().IntP("tail", "n", 50, "Number of log lines to show")
	logsCmd.Flags().BoolP("follow", "f", false, "Follow log output")
	rootCmd.AddCommand(logsCmd)
}

// logEntry represents a parsed JSON log line
type logEntry struct {
	Level     string    `json:"level"`
	Time      time.Time `json:"time"`
	Message   string    `json:"message"`
	Component string    `json:"component,omitempty"`
	Error     string    `json:"error,omitempty"`
}

func logFiles(logDir string) ([]string, error) {
	files, err := logging.Files(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading log dir: %w", err)
	}
	return files, nil
}

func showLogs(out io.Writer, logDir string, n int) error {
	files, err := logFiles(logDir)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		fmt.Fprintln(out, "No log files found.")
		return nil
	}

	for _, line := range readLastLines(files, n) {
		printLogLine(out, line)
	}
	return nil
}

func followLogs(ctx context.Context, out io.Writer, logDir string, initialLines int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	files, err := logFiles(logDir)
	if err != nil {
		return err
	}
	if len(files) > 0 && initialLines > 0 {
		for _, line := range readLastLines(files, initialLines) {
			printLogLine(out, line)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(logDir); err != nil {
		return fmt.Errorf("watching log dir: %w", err)
	}

	t := &tailer{dir: logDir}
	defer t.close()
	t.open(true)

	fmt.Fprintln(out, "--- Following logs (Ctrl+C to exit) ---")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Date rollover starts a new file.
			if t.current != currentLogFile(logDir) {
				t.open(false)
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				for _, line := range t.readLines() {
					printLogLine(out, line)
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watcher error: %v\n", err)
		}
	}
}

// tailer reads lines appended to today's log file.
type tailer struct {
	dir     string
	current string
	file    *os.File
	reader  *bufio.Reader
}

// open switches to today's file. atEnd skips content already written.
func (t *tailer) open(atEnd bool) {
	t.close()
	t.current = currentLogFile(t.dir)
	if t.current == "" {
		return
	}
	f, err := os.Open(t.current)
	if err != nil {
		t.current = ""
		return
	}
	if atEnd {
		_, _ = f.Seek(0, io.SeekEnd)
	}
	t.file = f
	t.reader = bufio.NewReader(f)
}

func (t *tailer) readLines() []string {
	if t.reader == nil {
		return nil
	}
	var lines []string
	for {
		line, err := t.reader.ReadString('\n')
		if err != nil {
			break
		}
		lines = append(lines, strings.TrimSuffix(line, "\n"))
	}
	return lines
}

func (t *tailer) close() {
	if t.file != nil {
		_ = t.file.Close()
	}
	t.file = nil
	t.reader = nil
}

func currentLogFile(logDir string) string {
	path := filepath.Join(logDir, logging.FileName(time.Now()))
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// readLastLines returns the last n lines across files, which are ordered
// newest first.
func readLastLines(files []string, n int) []string {
	var lines []string

	for _, file := range files {
		if len(lines) >= n {
			break
		}

		fileLines := readFileLines(file)
		remaining := n - len(lines)

		if len(fileLines) <= remaining {
			lines = append(fileLines, lines...)
		} else {
			lines = append(fileLines[len(fileLines)-remaining:], lines...)
		}
	}

	return lines
}

func readFileLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	return lines
}

func printLogLine(out io.Writer, line string) {
	var entry logEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		fmt.Fprintln(out, line)
		return
	}

	level := formatLogLevel(entry.Level)
	ts := entry.Time.Format("15:04:05")

	if entry.Component != "" {
		fmt.Fprintf(out, "%s %s [%s] %s", ts, level, entry.Component, entry.Message)
	} else {
		fmt.Fprintf(out, "%s %s %s", ts, level, entry.Message)
	}
	if entry.Error != "" {
		fmt.Fprintf(out, " error=%s", entry.Error)
	}
	fmt.Fprintln(out)
}

func formatLogLevel(level string) string {
	switch level {
	case "debug":
		return "DBG"
	case "info":
		return "INF"
	case "warn":
		return "WRN"
	case "error":
		return "ERR"
	case "":
		return "???"
	default:
		if len(level) < 3 {
			return strings.ToUpper(level)
		}
		return strings.ToUpper(level[:3])
	}
}
