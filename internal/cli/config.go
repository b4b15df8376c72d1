package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pdrpinto/gridnav"
	"github.com/pdrpinto/gridnav/internal/session"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "gridnav"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	widthFlagName     = "width"
	heightFlagName    = "height"
	obstaclesFlagName = "obstacles"
	seedFlagName      = "seed"
	modeFlagName      = "mode"
	verboseFlagName   = "verbose"
	logFileFlagName   = "log-file"

	gridWidthKey      = "grid.width"
	gridHeightKey     = "grid.height"
	gridObstaclesKey  = "grid.obstacle_probability"
	gridSeedKey       = "grid.seed"
	searchModeKey     = "search.mode"
	renderCellSizeKey = "render.cell_size"
	renderColorKey    = "render.color"
	serverAddrKey     = "server.addr"
	trialsCountKey    = "trials.count"
	trialsParallelKey = "trials.parallel"

	defaultGridWidth      = 15
	defaultGridHeight     = 15
	defaultGridSeed       = 0
	defaultSearchMode     = "astar"
	defaultCellSize       = 40
	defaultRenderColor    = true
	defaultServerAddr     = ":8080"
	defaultTrialsCount    = 100
	defaultTrialsParallel = 4

	envPrefix = "GRIDNAV"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".gridnav.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

// configErr is the error from reading the config file at startup.
var configErr error

func init() {
	// A .env file is optional; real environment variables win over it.
	_ = godotenv.Load()

	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(gridWidthKey, defaultGridWidth)
	viper.SetDefault(gridHeightKey, defaultGridHeight)
	viper.SetDefault(gridObstaclesKey, gridnav.DefaultObstacleProbability)
	viper.SetDefault(gridSeedKey, defaultGridSeed)
	viper.SetDefault(searchModeKey, defaultSearchMode)
	viper.SetDefault(renderCellSizeKey, defaultCellSize)
	viper.SetDefault(renderColorKey, defaultRenderColor)
	viper.SetDefault(serverAddrKey, defaultServerAddr)
	viper.SetDefault(trialsCountKey, defaultTrialsCount)
	viper.SetDefault(trialsParallelKey, defaultTrialsParallel)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	configErr = readConfig()
}

// readConfig loads gridnav.yaml when present. A missing file is not an error.
func readConfig() error {
	err := viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("read %s: %w", configFileName, err)
}

// settings is the resolved configuration of one command invocation.
type settings struct {
	Session        session.Config
	Seed           int64
	CellSize       int
	Color          bool
	Addr           string
	TrialsCount    int
	TrialsParallel int
}

func loadSettings() (settings, error) {
	if configErr != nil {
		return settings{}, configErr
	}

	mode, err := gridnav.ParseMode(viper.GetString(searchModeKey))
	if err != nil {
		return settings{}, err
	}

	s := settings{
		Session: session.Config{
			Width:               viper.GetInt(gridWidthKey),
			Height:              viper.GetInt(gridHeightKey),
			ObstacleProbability: viper.GetFloat64(gridObstaclesKey),
			Mode:                mode,
		},
		Seed:           viper.GetInt64(gridSeedKey),
		CellSize:       viper.GetInt(renderCellSizeKey),
		Color:          viper.GetBool(renderColorKey),
		Addr:           viper.GetString(serverAddrKey),
		TrialsCount:    viper.GetInt(trialsCountKey),
		TrialsParallel: viper.GetInt(trialsParallelKey),
	}
	if s.Session.Width <= 0 || s.Session.Height <= 0 {
		return settings{}, fmt.Errorf("grid %dx%d: %w", s.Session.Width, s.Session.Height, gridnav.ErrInvalidDimensions)
	}
	if s.Seed == 0 {
		s.Seed = time.Now().UnixNano()
	}

	return s, nil
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) *slog.Logger {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose || viper.GetBool(logVerboseKey) {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)

	return globalLogger
}
