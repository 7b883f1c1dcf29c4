package config

import (
	"fmt"
	"strings"
	"sync"

	"mjx/common/log"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var (
	Conf   *Config
	confMu sync.RWMutex
)

type Config struct {
	AppName      string       `mapstructure:"appName"`
	Log          LogConf      `mapstructure:"log"`
	MetricPort   int          `mapstructure:"metricPort"`
	Rules        RulesConf    `mapstructure:"rules"`
	Runner       RunnerConf   `mapstructure:"runner"`
	DatabaseConf DatabaseConf `mapstructure:"database"`
	NatsConf     NatsConfig   `mapstructure:"nats"`
	Sinks        SinkConf     `mapstructure:"sinks"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// RulesConf 对局规则
type RulesConf struct {
	InitialPoints int  `mapstructure:"initialPoints"`
	Rounds        int  `mapstructure:"rounds"`    // 4 东风战，8 半庄战
	MaxRounds     int  `mapstructure:"maxRounds"` // 含西入的最大局数
	TargetPoints  int  `mapstructure:"targetPoints"`
	RedFives      bool `mapstructure:"redFives"`
	OpenTanyao    bool `mapstructure:"openTanyao"`
	MaxRon        int  `mapstructure:"maxRon"`
	ThreeRonAbort bool `mapstructure:"threeRonAbort"`
	Tobi          bool `mapstructure:"tobi"`
	AgariYame     bool `mapstructure:"agariYame"`
}

// RunnerConf 批量模拟
type RunnerConf struct {
	Games            int      `mapstructure:"games"`
	Parallel         int      `mapstructure:"parallel"`
	Seed             uint64   `mapstructure:"seed"`
	ProgressInterval int      `mapstructure:"progressInterval"` // 进度日志间隔（秒），0 不打印
	OnIllegal        string   `mapstructure:"onIllegal"`        // abort 或 fallback
	Agents           []string `mapstructure:"agents"`           // random / rule，长度为 4
}

type DatabaseConf struct {
	MongoConf MongoConf `mapstructure:"mongo"`
	RedisConf RedisConf `mapstructure:"redis"`
}

type MongoConf struct {
	Url         string `mapstructure:"url"`
	Db          string `mapstructure:"db"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	MinPoolSize int    `mapstructure:"minPoolSize"`
	MaxPoolSize int    `mapstructure:"maxPoolSize"`
}

type RedisConf struct {
	Addr         string   `mapstructure:"addr"`
	ClusterAddrs []string `mapstructure:"clusterAddrs"`
	Password     string   `mapstructure:"password"`
	PoolSize     int      `mapstructure:"poolSize"`
	MinIdleConns int      `mapstructure:"minIdleConns"`
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
}

type NatsConfig struct {
	URL     string `json:"url" mapstructure:"url"`
	Subject string `json:"subject" mapstructure:"subject"`
}

// SinkConf 对局结果输出到哪些外部组件
type SinkConf struct {
	Mongo bool `mapstructure:"mongo"`
	Redis bool `mapstructure:"redis"`
	Nats  bool `mapstructure:"nats"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("appName", "mjx-simulator")
	v.SetDefault("log.level", "info")
	v.SetDefault("rules.initialPoints", 25000)
	v.SetDefault("rules.rounds", 8)
	v.SetDefault("rules.maxRounds", 12)
	v.SetDefault("rules.targetPoints", 30000)
	v.SetDefault("rules.redFives", true)
	v.SetDefault("rules.openTanyao", true)
	v.SetDefault("rules.maxRon", 2)
	v.SetDefault("rules.threeRonAbort", true)
	v.SetDefault("rules.tobi", true)
	v.SetDefault("rules.agariYame", true)
	v.SetDefault("runner.games", 100)
	v.SetDefault("runner.parallel", 4)
	v.SetDefault("runner.onIllegal", "abort")
	v.SetDefault("runner.agents", []string{"rule", "rule", "rule", "rule"})
	v.SetDefault("database.mongo.db", "mjx")
	v.SetDefault("nats.subject", "mjx.game.result")
}

func newViper(configFile string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvPrefix("MJX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	return v
}

// Load 读取配置文件，configFile 为空时只使用默认值与环境变量
func Load(configFile string) (*Config, error) {
	v := newViper(configFile)
	if configFile != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件出错: %w", err)
		}
	}
	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件出错: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InitConfig 加载全局配置并监听文件变化，规则变更只影响之后开始的对局
func InitConfig(configFile string) {
	cfg, err := Load(configFile)
	if err != nil {
		panic(err)
	}
	setConf(cfg)
	if configFile == "" {
		return
	}

	v := newViper(configFile)
	if err := v.ReadInConfig(); err != nil {
		panic(fmt.Errorf("读取配置文件出错, err:%v", err))
	}
	v.OnConfigChange(func(in fsnotify.Event) {
		if err := reload(v); err != nil {
			log.Warn("配置热更新失败，继续使用旧配置 file=%s: %v", in.Name, err)
			return
		}
		log.Info("配置已重新加载: %s", in.Name)
	})
	v.WatchConfig()
}

// reload 用 v 中已读取的内容替换全局配置，解析或校验失败时保留旧配置
func reload(v *viper.Viper) error {
	next := new(Config)
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("解析配置文件出错: %w", err)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	setConf(next)
	return nil
}

func setConf(cfg *Config) {
	confMu.Lock()
	defer confMu.Unlock()
	Conf = cfg
}

// Current 并发安全地读取全局配置
func Current() *Config {
	confMu.RLock()
	defer confMu.RUnlock()
	return Conf
}

func (c *Config) Validate() error {
	if c.Rules.Rounds != 4 && c.Rules.Rounds != 8 {
		return fmt.Errorf("rules.rounds 只支持 4 或 8: %d", c.Rules.Rounds)
	}
	if c.Rules.MaxRounds < c.Rules.Rounds {
		return fmt.Errorf("rules.maxRounds(%d) 小于 rules.rounds(%d)", c.Rules.MaxRounds, c.Rules.Rounds)
	}
	if c.Rules.MaxRon < 1 || c.Rules.MaxRon > 3 {
		return fmt.Errorf("rules.maxRon 取值范围 1-3: %d", c.Rules.MaxRon)
	}
	if c.Runner.Parallel < 1 {
		return fmt.Errorf("runner.parallel 必须至少为 1: %d", c.Runner.Parallel)
	}
	if len(c.Runner.Agents) != 4 {
		return fmt.Errorf("runner.agents 需要 4 个: %v", c.Runner.Agents)
	}
	switch c.Runner.OnIllegal {
	case "abort", "fallback":
	default:
		return fmt.Errorf("runner.onIllegal 只支持 abort 或 fallback: %s", c.Runner.OnIllegal)
	}
	return nil
}
