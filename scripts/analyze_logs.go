package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

type LogStats struct {
	TotalErrors         int
	LoginSuccess        int
	LoginFailures       int
	Registrations       int
	AuthFailures        int
	OrdersPlaced        int
	DeliveriesAssigned  int
	PaymentsApplied     int
	SignatureFailures   int
	RateLimited         int
	CORSBlocked         int
	NotificationDropped int
	UserActivities      map[string]int
	ErrorPatterns       map[string]int
}

var (
	emailRegex  = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	prefixRegex = regexp.MustCompile(`^\w+: \d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} [^:]+:\d+: `)
	digitsRegex = regexp.MustCompile(`\d+`)
)

func main() {
	logDir := flag.String("dir", "./logs", "directory holding the log files")
	day := flag.String("date", time.Now().Format("2006-01-02"), "day to analyze (YYYY-MM-DD)")
	flag.Parse()

	stats := &LogStats{
		UserActivities: make(map[string]int),
		ErrorPatterns:  make(map[string]int),
	}

	analyzeErrorLogs(filepath.Join(*logDir, fmt.Sprintf("error-%s.log", *day)), stats)
	analyzeInfoLogs(filepath.Join(*logDir, fmt.Sprintf("info-%s.log", *day)), stats)
	analyzeDebugLogs(filepath.Join(*logDir, fmt.Sprintf("debug-%s.log", *day)), stats)

	printReport(*day, stats)
}

func scanLines(logFile string, fn func(line string)) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fn(scanner.Text())
	}
}

func analyzeErrorLogs(logFile string, stats *LogStats) {
	scanLines(logFile, func(line string) {
		stats.TotalErrors++

		switch {
		case strings.Contains(line, "Authentication failed"), strings.Contains(line, "Missing Authorization header"):
			stats.AuthFailures++
		case strings.Contains(line, "Payment verification failed"):
			stats.SignatureFailures++
		case strings.Contains(line, "Rate limit exceeded"):
			stats.RateLimited++
		case strings.Contains(line, "Blocked by CORS"):
			stats.CORSBlocked++
		case strings.Contains(line, "Notification") && strings.Contains(line, "dropped"):
			stats.NotificationDropped++
		}

		extractErrorPattern(line, stats)
	})
}

func analyzeInfoLogs(logFile string, stats *LogStats) {
	scanLines(logFile, func(line string) {
		switch {
		case strings.Contains(line, "User logged in"):
			stats.LoginSuccess++
			extractUserActivity(line, stats)
		case strings.Contains(line, "User registered"):
			stats.Registrations++
			extractUserActivity(line, stats)
		case strings.Contains(line, "placed by vendor"):
			stats.OrdersPlaced++
		case strings.Contains(line, "assigned to driver"):
			stats.DeliveriesAssigned++
		case strings.Contains(line, "Payment of") && strings.Contains(line, "applied"):
			stats.PaymentsApplied++
		}
	})
}

func analyzeDebugLogs(logFile string, stats *LogStats) {
	scanLines(logFile, func(line string) {
		if strings.Contains(line, "Login failed") {
			stats.LoginFailures++
			extractUserActivity(line, stats)
		}
	})
}

func extractUserActivity(line string, stats *LogStats) {
	if email := emailRegex.FindString(line); email != "" {
		stats.UserActivities[email]++
	}
}

// extractErrorPattern groups messages that differ only in ids and amounts
func extractErrorPattern(line string, stats *LogStats) {
	msg := prefixRegex.ReplaceAllString(line, "")
	if msg == "" {
		return
	}
	stats.ErrorPatterns[digitsRegex.ReplaceAllString(msg, "N")]++
}

func printReport(day string, stats *LogStats) {
	fmt.Println("\n=== Log Analysis Report ===")
	fmt.Println("Day:", day)
	fmt.Println("Generated:", time.Now().Format("2006-01-02 15:04:05"))

	fmt.Println("\n1. Authentication Statistics:")
	fmt.Printf("   Registrations: %d\n", stats.Registrations)
	fmt.Printf("   Successful Logins: %d\n", stats.LoginSuccess)
	fmt.Printf("   Failed Logins: %d\n", stats.LoginFailures)
	fmt.Printf("   Rejected Tokens: %d\n", stats.AuthFailures)

	fmt.Println("\n2. Orders & Payments:")
	fmt.Printf("   Orders Placed: %d\n", stats.OrdersPlaced)
	fmt.Printf("   Deliveries Assigned: %d\n", stats.DeliveriesAssigned)
	fmt.Printf("   Payments Applied: %d\n", stats.PaymentsApplied)
	fmt.Printf("   Gateway Signature Failures: %d\n", stats.SignatureFailures)

	fmt.Println("\n3. Security Incidents:")
	fmt.Printf("   Rate Limited Requests: %d\n", stats.RateLimited)
	fmt.Printf("   CORS Blocks: %d\n", stats.CORSBlocked)

	fmt.Println("\n4. Error Statistics:")
	fmt.Printf("   Total Errors: %d\n", stats.TotalErrors)
	fmt.Printf("   Dropped Notifications: %d\n", stats.NotificationDropped)

	fmt.Println("\n5. Most Active Users:")
	printTop(stats.UserActivities, 5, "activities")

	fmt.Println("\n6. Most Common Errors:")
	printTop(stats.ErrorPatterns, 5, "occurrences")
}

func printTop(counts map[string]int, limit int, unit string) {
	type entry struct {
		key   string
		count int
	}

	var entries []entry
	for k, n := range counts {
		entries = append(entries, entry{k, n})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count == entries[j].count {
			return entries[i].key < entries[j].key
		}
		return entries[i].count > entries[j].count
	})

	for i, e := range entries {
		if i >= limit {
			break
		}
		fmt.Printf("   %s: %d %s\n", e.key, e.count, unit)
	}
}
