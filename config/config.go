package config

import "maps"

// CollisionConfig sizes the tile collision system.
type CollisionConfig struct {
	TileWidth            float64 `yaml:"tile_width"`
	TileHeight           float64 `yaml:"tile_height"`
	MaxTemporarySurfaces int     `yaml:"max_temporary_surfaces"`
	BoxHitCapacity       int     `yaml:"box_hit_capacity"` // hit points kept per box test
}

// PoolConfig holds the hand-tuned pool capacities. They describe the worst
// simultaneous population of each type across the whole game.
type PoolConfig struct {
	Objects             int            `yaml:"objects"`
	ComponentsPerObject int            `yaml:"components_per_object"`
	HitVolumes          int            `yaml:"hit_volumes"`
	SpawnReserve        int            `yaml:"spawn_reserve"` // objects kept back from cosmetic spawns
	Components          map[string]int `yaml:"components"`    // keyed by component kind name
}

// PhysicsConfig contains world physics, in world units and seconds.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	Friction     float64 `yaml:"friction"`
	AirFriction  float64 `yaml:"air_friction"`
	GroundGrace  float64 `yaml:"ground_grace"` // seconds a floor touch still counts as grounded
	SkinWidth    float64 `yaml:"skin_width"`
}

// PlayerConfig contains all player-related configuration values
type PlayerConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Life           int     `yaml:"life"`
	RunSpeed       float64 `yaml:"run_speed"`
	Acceleration   float64 `yaml:"acceleration"`
	JumpImpulse    float64 `yaml:"jump_impulse"`
	StompSpeed     float64 `yaml:"stomp_speed"`
	StompBounce    float64 `yaml:"stomp_bounce"`
	HitReactTime   float64 `yaml:"hit_react_time"`
	InvincibleTime float64 `yaml:"invincible_time"`
	Knockback      float64 `yaml:"knockback"`
	DeathTime      float64 `yaml:"death_time"`
	GhostDelay     float64 `yaml:"ghost_delay"`
}

// EnemyConfig contains the patrolling enemy's configuration
type EnemyConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Life        int     `yaml:"life"`
	PatrolSpeed float64 `yaml:"patrol_speed"`
	WallProbe   float64 `yaml:"wall_probe"`  // look-ahead for walls
	LedgeProbe  float64 `yaml:"ledge_probe"` // look-down for floor ahead
	Knockback   float64 `yaml:"knockback"`
	DeathTime   float64 `yaml:"death_time"`
}

// PlatformConfig contains moving platform configuration
type PlatformConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Travel float64 `yaml:"travel"` // distance covered each way
	Period float64 `yaml:"period"` // seconds for one leg
}

// EffectConfig contains cosmetic spawn configuration
type EffectConfig struct {
	DustLifetime float64 `yaml:"dust_lifetime"`
	CoinLifetime float64 `yaml:"coin_lifetime"`
}

// LoopConfig drives the fixed-step simulation loop.
type LoopConfig struct {
	TickRate int `yaml:"tick_rate"`
}

// Step returns the fixed simulation step in seconds.
func (l LoopConfig) Step() float64 {
	if l.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(l.TickRate)
}

// DebugConfig toggles debug drawing and checks.
type DebugConfig struct {
	DrawCollision bool `yaml:"draw_collision"`
	DrawVolumes   bool `yaml:"draw_volumes"`
	LeakCheck     bool `yaml:"leak_check"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level      string `yaml:"level"`
	Timestamps bool   `yaml:"timestamps"`
}

// Config holds general viewer configuration.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Fraction of the distance to the player the view closes each frame.
	CameraSmoothing float64 `yaml:"camera_smoothing"`
}

// Global configuration instances
var C *Config
var Collision CollisionConfig
var Pools PoolConfig
var Physics PhysicsConfig
var Player PlayerConfig
var Enemy EnemyConfig
var Platform PlatformConfig
var Effects EffectConfig
var Loop LoopConfig
var Debug DebugConfig
var Log LogConfig

func init() {
	C = &Config{
		Width:           640,
		Height:          360,
		CameraSmoothing: 0.15,
	}

	Collision = CollisionConfig{
		TileWidth:            32,
		TileHeight:           32,
		// Every pooled solid surface submitting all four sides.
		MaxTemporarySurfaces: 128,
		BoxHitCapacity:       8,
	}

	Pools = PoolConfig{
		Objects:             384,
		ComponentsPerObject: 12,
		HitVolumes:          256,
		SpawnReserve:        32,
		Components: map[string]int{
			"gravity":              384,
			"physics":              384,
			"movement":             384,
			"background-collision": 256,
			"solid-surface":        32,
			"tween-path":           32,
			"patrol-ai":            128,
			"hit-volumes":          256,
			"hit-reaction":         256,
			"lifetime":             128,
			"player-controller":    1,
		},
	}

	Physics = PhysicsConfig{
		Gravity:      -900,
		MaxFallSpeed: 600,
		Friction:     1200,
		AirFriction:  300,
		GroundGrace:  0.1,
		SkinWidth:    0.01,
	}

	Player = PlayerConfig{
		Width:          16,
		Height:         40,
		Life:           3,
		RunSpeed:       180,
		Acceleration:   1500,
		JumpImpulse:    420,
		StompSpeed:     700,
		StompBounce:    300,
		HitReactTime:   0.5,
		InvincibleTime: 1.5,
		Knockback:      200,
		DeathTime:      1.25,
		GhostDelay:     0.3,
	}

	Enemy = EnemyConfig{
		Width:       24,
		Height:      24,
		Life:        1,
		PatrolSpeed: 60,
		WallProbe:   8,
		LedgeProbe:  16,
		Knockback:   150,
		DeathTime:   0.5,
	}

	Platform = PlatformConfig{
		Width:  64,
		Height: 8,
		Travel: 128,
		Period: 2,
	}

	Effects = EffectConfig{
		DustLifetime: 0.4,
		CoinLifetime: 8,
	}

	Loop = LoopConfig{
		TickRate: 60,
	}

	Debug = DebugConfig{
		DrawCollision: true,
		DrawVolumes:   true,
		LeakCheck:     true,
	}

	Log = LogConfig{
		Level:      "info",
		Timestamps: true,
	}
}

// Settings is the YAML view of every configuration var.
type Settings struct {
	Viewer    Config          `yaml:"viewer"`
	Collision CollisionConfig `yaml:"collision"`
	Pools     PoolConfig      `yaml:"pools"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Enemy     EnemyConfig     `yaml:"enemy"`
	Platform  PlatformConfig  `yaml:"platform"`
	Effects   EffectConfig    `yaml:"effects"`
	Loop      LoopConfig      `yaml:"loop"`
	Debug     DebugConfig     `yaml:"debug"`
	Log       LogConfig       `yaml:"log"`
}

// Current snapshots the configuration vars.
func Current() Settings {
	pools := Pools
	pools.Components = maps.Clone(Pools.Components)
	return Settings{
		Viewer:    *C,
		Collision: Collision,
		Pools:     pools,
		Physics:   Physics,
		Player:    Player,
		Enemy:     Enemy,
		Platform:  Platform,
		Effects:   Effects,
		Loop:      Loop,
		Debug:     Debug,
		Log:       Log,
	}
}

// Apply installs s as the configuration vars.
func Apply(s Settings) {
	viewer := s.Viewer
	C = &viewer
	Collision = s.Collision
	Pools = s.Pools
	Physics = s.Physics
	Player = s.Player
	Enemy = s.Enemy
	Platform = s.Platform
	Effects = s.Effects
	Loop = s.Loop
	Debug = s.Debug
	Log = s.Log
}

// ComponentCapacity returns the configured pool size for a component kind,
// or fallback when none is set.
func ComponentCapacity(name string, fallback int) int {
	if n, ok := Pools.Components[name]; ok && n >= 0 {
		return n
	}
	return fallback
}
