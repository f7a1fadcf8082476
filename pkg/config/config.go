package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Keystone  KeystoneConfig  `mapstructure:"keystone"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	HttpPort string `mapstructure:"http_port"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	MQType   string `mapstructure:"mq_type"` // "redis" or "kafka"
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	GroupID string   `mapstructure:"group_id"` // 消费者组
}

type KeystoneConfig struct {
	HDPathPrefix string `mapstructure:"hd_path_prefix"`
	// 为 true 时 "没有找到账户" 不再切到手动输入 accountId 的界面
	HideEnterAccountIDModal bool   `mapstructure:"hide_enter_account_id_modal"`
	Storage                 string `mapstructure:"storage"` // "memory", "redis" or "multilevel"
}

// SimulatorConfig 开发用的模拟签名设备
type SimulatorConfig struct {
	Keys        []SimulatedKey `mapstructure:"keys"`
	Reject      []string       `mapstructure:"reject"` // 在设备上拒绝确认的 account id
	FailConnect bool           `mapstructure:"fail_connect"`
}

// SimulatedKey 一个派生路径对应的公钥，以及链上登记在该公钥下的账户
// (用列表而不是 map，viper 会把 map 的 key 转成小写)
type SimulatedKey struct {
	Path      string   `mapstructure:"path"`
	PublicKey string   `mapstructure:"public_key"`
	Accounts  []string `mapstructure:"accounts"`
}

var Global Config

// Init 从 ./config.yaml 或 ./config/config.yaml 加载配置
func Init() {
	InitWithFile("")
}

// InitWithFile 与 Init 相同，但 cfgFile 非空时只读取该文件
func InitWithFile(cfgFile string) {
	v := viper.GetViper()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	cfg, err := Load(v)
	if err != nil {
		log.Fatalf("Unable to load config, %v", err)
	}
	Global = cfg
	log.Printf("Configuration loaded successfully. Env: %s", Global.App.Env)
}

// Load 用给定的 viper 实例读取配置，配置文件缺失时只使用默认值和环境变量
func Load(v *viper.Viper) (Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Warning: Config file not found, using defaults and environment variables")
		} else if v.ConfigFileUsed() != "" {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.http_port", "8080")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.mq_type", "redis")

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.group_id", "wallet_keystone_events")

	v.SetDefault("keystone.hd_path_prefix", "44'/397'/0'/0'/")
	v.SetDefault("keystone.hide_enter_account_id_modal", false)
	v.SetDefault("keystone.storage", "memory")

	v.SetDefault("simulator.fail_connect", false)
}
