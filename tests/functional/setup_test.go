//go:build functional

package functional_test

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/Anaselll/TeachMeApp/pkg/config"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

var (
	GlobalConfig *config.Config
	redisDB      *redis.Client
	testDB       *sql.DB
	serverCmd    *exec.Cmd
	BaseUrl      = getEnv("BASE_URL", "")
	WsUrl        = getEnv("WS_URL", "")
)

const (
	dbUser     = "postgres"
	dbPassword = "postgres"
	dbHost     = "localhost"
	dbPort     = "5432"
	dbName     = "functional_test"
	redisAddr  = "localhost:6379"
	redisIndex = 9
)

func TestMain(m *testing.M) {
	fmt.Println("🔨 Creating Test Environment...")
	setupTestEnvironment()
	code := m.Run()
	teardownTestEnvironment()
	os.Exit(code)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func setupTestEnvironment() {
	err := godotenv.Load("../../.env.functional")
	if err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	if err := config.Load("../../config/"); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	GlobalConfig = config.GetConfig()

	killProcessesOnPorts([]int{GlobalConfig.Server.Port, GlobalConfig.Server.MetricsPort})

	BaseUrl = getEnv("BASE_URL", fmt.Sprintf("http://localhost:%d", GlobalConfig.Server.Port))
	WsUrl = getEnv("WS_URL", fmt.Sprintf("ws://localhost:%d/ws", GlobalConfig.Server.Port))

	createTestDB(dbName)
	redisDB = redis.NewClient(&redis.Options{
		Addr: redisAddr,
		DB:   redisIndex,
	})

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("Failed to get working directory: %v", err)
	}

	serverCmd = exec.Command("go", "run", "../../cmd/teachme/main.go", "serve")
	serverCmd.Dir = wd
	serverCmd.Env = append(os.Environ(),
		"ENV_FILE=../../.env.functional",
		"CONFIG_PATH=../../config",
		"DATABASE_NAME="+dbName,
		"REDIS_DB="+strconv.Itoa(redisIndex),
		"TELEMETRY_ENABLED=false",
	)
	serverCmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdout, err := serverCmd.StdoutPipe()
	if err != nil {
		log.Fatalf("Failed to create server stdout pipe: %v", err)
	}
	stderr, err := serverCmd.StderrPipe()
	if err != nil {
		log.Fatalf("Failed to create server stderr pipe: %v", err)
	}
	go func() {
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			fmt.Printf("[SERVER STDOUT] %s\n", scanner.Text())
		}
	}()
	go func() {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			fmt.Printf("[SERVER STDERR] %s\n", scanner.Text())
		}
	}()

	fmt.Println("✨ Starting API Server:", serverCmd.String())
	if err := serverCmd.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
	fmt.Printf("   API server started with PID: %d\n", serverCmd.Process.Pid)

	waitForServerReady(BaseUrl+"/__/health", "api server")

	testDB, err = sql.Open("postgres", fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName,
	))
	if err != nil {
		log.Fatalf("Cannot connect to test database: %v", err)
	}

	fmt.Println("🚀 Test Environment Ready")
}

func waitForServerReady(url, serverName string) {
	maxRetries := 60
	retryInterval := time.Second

	for i := 0; i < maxRetries; i++ {
		resp, err := http.Get(url) //nolint:gosec // URL is controlled in test environment
		if err == nil && resp.StatusCode < 500 {
			_ = resp.Body.Close()
			fmt.Printf("✅ %s is ready\n", serverName)
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		if i == maxRetries-1 {
			log.Fatalf("❌ %s failed to become ready after %d seconds. Last error: %v", serverName, maxRetries, err)
		}
		fmt.Printf("⏳ Waiting for %s to be ready... (attempt %d/%d)\n", serverName, i+1, maxRetries)
		time.Sleep(retryInterval)
	}
}

func createTestDB(name string) {
	db, err := sql.Open("postgres", fmt.Sprintf(
		"host=%s port=%s user=%s password=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword,
	))
	if err != nil {
		log.Fatalf("Cannot connect to PostgreSQL: %v", err)
	}
	defer func() { _ = db.Close() }()

	_, err = db.Exec(fmt.Sprintf("CREATE DATABASE %s;", name))
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return
		}
		log.Fatalf("Error creating database: %v", err)
	}
	fmt.Printf("✅ Database %s created\n", name)
}

func teardownTestEnvironment() {
	if serverCmd != nil && serverCmd.Process != nil {
		if err := syscall.Kill(-serverCmd.Process.Pid, syscall.SIGKILL); err != nil {
			log.Printf("error killing api server: %v", err)
		}
	}
	fmt.Printf("🗑 Server Stopped\n")
	if testDB != nil {
		_ = testDB.Close()
	}
	dropTestDB(dbName)
	redisDB.FlushDB(context.Background())
	_ = redisDB.Close()
	fmt.Printf("🗑 Redis flushed\n")
}

func dropTestDB(name string) {
	db, err := sql.Open("postgres", fmt.Sprintf(
		"host=%s port=%s user=%s password=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword,
	))
	if err != nil {
		log.Printf("cannot connect to postgres to remove db %v", err)
		return
	}
	defer func() { _ = db.Close() }()

	if _, err = db.Exec(fmt.Sprintf("DROP DATABASE %s WITH (FORCE);", name)); err != nil {
		log.Printf("error removing database: %v", err)
		return
	}
	fmt.Printf("🗑 Database %s removed\n", name)
}

func killProcessesOnPorts(ports []int) {
	for _, port := range ports {
		cmd := exec.Command("lsof", "-ti", fmt.Sprintf(":%d", port)) //nolint:gosec // port comes from config
		output, err := cmd.Output()
		if err != nil {
			continue
		}
		for _, pidStr := range strings.Split(strings.TrimSpace(string(output)), "\n") {
			pid, err := strconv.Atoi(strings.TrimSpace(pidStr))
			if err != nil {
				continue
			}
			process, err := os.FindProcess(pid)
			if err != nil {
				continue
			}
			if err := process.Kill(); err != nil {
				log.Printf("failed to kill process %d: %v", pid, err)
			} else {
				fmt.Printf("🔪 Killed process %d on port %d\n", pid, port)
			}
		}
	}
}
