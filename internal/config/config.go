package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	toml "github.com/pelletier/go-toml/v2"

	"pathviz/internal/eventbus"
	"pathviz/internal/finder"
)

const (
	defaultCols       = 40
	defaultRows       = 20
	defaultRate       = 300
	defaultColorizeMS = 50
	defaultGrace      = 1.2
	defaultCellWidth  = 2
	defaultLogFile    = "pathviz.log"
	minGridSize       = 2
)

// Config represents the application configuration
type Config struct {
	Grid     GridSettings     `toml:"grid"`
	Playback PlaybackSettings `toml:"playback"`
	Search   SearchSettings   `toml:"search"`
	UI       UISettings       `toml:"ui"`
}

// GridSettings sizes the grid and its initial contents
type GridSettings struct {
	Cols     int  `toml:"cols"`
	Rows     int  `toml:"rows"`
	DemoWall bool `toml:"demo_wall"`
}

// PlaybackSettings controls the replay of a search
type PlaybackSettings struct {
	OperationsPerSecond int     `toml:"operations_per_second"`
	ColorizeMS          int     `toml:"colorize_ms"`
	GraceFactor         float64 `toml:"grace_factor"`
}

// SearchSettings is the initial state of the algorithm panel
type SearchSettings struct {
	Algorithm        string  `toml:"algorithm"`
	Heuristic        string  `toml:"heuristic"`
	AllowDiagonal    bool    `toml:"allow_diagonal"`
	DontCrossCorners bool    `toml:"dont_cross_corners"`
	Bidirectional    bool    `toml:"bidirectional"`
	Weight           float64 `toml:"weight"`
	TrackRecursion   bool    `toml:"track_recursion"`
	TimeLimit        int     `toml:"time_limit"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	CellWidth int    `toml:"cell_width"`
	ShowHelp  bool   `toml:"show_help"`
	LogFile   string `toml:"log_file"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Path() string
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath is $XDG_CONFIG_HOME/pathviz/config.toml, or the platform
// equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "pathviz", "config.toml")
}

// NewConfigService creates a config service reading path, or DefaultPath
// when path is empty
func NewConfigService(path string) ConfigService {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string { return cs.filePath }

// Load loads the configuration from file. A missing file yields the defaults.
func (cs *configService) Load() (*Config, error) {
	cfg := DefaultConfig()
	existing := true
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		existing = false
	} else {
		loaded, err := cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	log.Printf("config: loaded %s (existing=%t)", cs.filePath, existing)
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath, Existing: existing})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	log.Printf("config: saved %s", cs.filePath)
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys absent from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	cfg.Normalize()
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "create config directory %s", dir)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write config file %s", path)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Grid: GridSettings{
			Cols:     defaultCols,
			Rows:     defaultRows,
			DemoWall: true,
		},
		Playback: PlaybackSettings{
			OperationsPerSecond: defaultRate,
			ColorizeMS:          defaultColorizeMS,
			GraceFactor:         defaultGrace,
		},
		Search: SearchSettings{
			Algorithm: string(finder.AStar),
			Heuristic: string(finder.Manhattan),
			Weight:    1,
			TimeLimit: finder.DefaultTimeLimit,
		},
		UI: UISettings{
			CellWidth: defaultCellWidth,
			ShowHelp:  true,
			LogFile:   defaultLogFile,
		},
	}
}

// Normalize replaces out-of-range values with usable ones
func (c *Config) Normalize() {
	if c.Grid.Cols < minGridSize {
		c.Grid.Cols = defaultCols
	}
	if c.Grid.Rows < minGridSize {
		c.Grid.Rows = defaultRows
	}
	if c.Playback.OperationsPerSecond <= 0 {
		c.Playback.OperationsPerSecond = defaultRate
	}
	if c.Playback.ColorizeMS < 0 {
		c.Playback.ColorizeMS = defaultColorizeMS
	}
	if c.Playback.GraceFactor <= 0 {
		c.Playback.GraceFactor = defaultGrace
	}
	if _, err := finder.ParseAlgorithm(c.Search.Algorithm); err != nil {
		log.Printf("config: %v, using %s", err, finder.AStar)
		c.Search.Algorithm = string(finder.AStar)
	}
	opts := c.FinderOptions()
	c.Search.Heuristic = string(opts.Heuristic)
	c.Search.Weight = opts.Weight
	c.Search.TimeLimit = opts.TimeLimit
	if c.UI.CellWidth < 1 {
		c.UI.CellWidth = defaultCellWidth
	}
	if strings.TrimSpace(c.UI.LogFile) == "" {
		c.UI.LogFile = defaultLogFile
	}
}

// Algorithm is the configured search algorithm
func (c *Config) Algorithm() finder.Algorithm {
	algo, err := finder.ParseAlgorithm(c.Search.Algorithm)
	if err != nil {
		return finder.AStar
	}
	return algo
}

// FinderOptions converts the search settings into finder options
func (c *Config) FinderOptions() finder.Options {
	return finder.Options{
		AllowDiagonal:    c.Search.AllowDiagonal,
		DontCrossCorners: c.Search.DontCrossCorners,
		Heuristic:        finder.HeuristicName(strings.ToLower(c.Search.Heuristic)),
		Weight:           c.Search.Weight,
		Bidirectional:    c.Search.Bidirectional,
		TrackRecursion:   c.Search.TrackRecursion,
		TimeLimit:        c.Search.TimeLimit,
	}.Normalize()
}

// Grace is how long deferred restarts and resets wait for node animations
// to settle
func (c *Config) Grace() time.Duration {
	ms := float64(c.Playback.ColorizeMS) * c.Playback.GraceFactor
	return time.Duration(ms * float64(time.Millisecond))
}

// Colorize is the duration of a node's colour animation
func (c *Config) Colorize() time.Duration {
	return time.Duration(c.Playback.ColorizeMS) * time.Millisecond
}

// Overrides are command line values that take precedence over the file.
// Zero values leave the corresponding setting untouched.
type Overrides struct {
	Cols      int
	Rows      int
	Rate      int
	Algorithm string
}

// Apply merges o into c
func (c *Config) Apply(o Overrides) error {
	if o.Algorithm != "" {
		algo, err := finder.ParseAlgorithm(o.Algorithm)
		if err != nil {
			return err
		}
		c.Search.Algorithm = string(algo)
	}
	if o.Cols > 0 {
		c.Grid.Cols = o.Cols
	}
	if o.Rows > 0 {
		c.Grid.Rows = o.Rows
	}
	if o.Rate > 0 {
		c.Playback.OperationsPerSecond = o.Rate
	}
	c.Normalize()
	return nil
}
