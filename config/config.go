package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var ConfigInfo config

// 使用Viper的好处在于支持配置文件的热更新 同时viper对于大小写并不敏感 都是统一进行处理
func Init() {
	wd, _ := os.Getwd()
	logrus.Infof("Current working directory: %s", wd)

	// .env 只用于本地开发，不存在时忽略
	if err := godotenv.Load(); err == nil {
		logrus.Info("Loaded environment from .env")
	}

	viper.SetConfigType("yaml")
	viper.SetConfigName("config.yml")
	viper.SetEnvPrefix("VIDEOTUBE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	configPaths := []string{
		"../../config",
		"./config",
		"../config",
		".",
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
		absPath, _ := filepath.Abs(path)
		logrus.Debugf("Added config path: %s (absolute: %s)", path, absPath)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logrus.Warnf("config file not found, using defaults and environment: %v", err)
		} else {
			logrus.Errorf("config error: %v", err)
		}
	} else {
		logrus.Infof("Successfully read config file: %s", viper.ConfigFileUsed())
	}

	load()

	logrus.Infof("Config loaded - database driver: %s, mysql: %s:%s@%s/%s",
		ConfigInfo.Database.Driver, ConfigInfo.Database.Mysql.Username, "***",
		ConfigInfo.Database.Mysql.Addr, ConfigInfo.Database.Mysql.Database)
	if ConfigInfo.Redis.Addr == "" {
		logrus.Warn("No redis configured, view de-duplication and token revocation are disabled")
	}
	if ConfigInfo.RabbitMq.URL == "" {
		logrus.Warn("No rabbitmq configured, media cleanup runs inline")
	}
}

func setDefaults() {
	viper.SetDefault("server.addr", "0.0.0.0:8000")
	viper.SetDefault("server.cors_origins", []string{"http://localhost:3000"})
	viper.SetDefault("server.max_body_size", 512*1024*1024)

	viper.SetDefault("database.driver", "mysql")
	viper.SetDefault("database.mysql.charset", "utf8mb4")
	viper.SetDefault("database.sqlite_path", "videotube.db")
	viper.SetDefault("database.max_open_conns", 50)
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.conn_max_lifetime", "1h")

	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.view_ttl", "24h")

	viper.SetDefault("minio.bucket", "videotube")
	viper.SetDefault("minio.use_ssl", false)

	viper.SetDefault("jwt.timeout", "1h")
	viper.SetDefault("jwt.max_refresh", "240h")

	viper.SetDefault("jaeger.service_name", "videotube-api")
	viper.SetDefault("sentinel.qps", 1000)
}

// 手动从viper获取配置值，避免Unmarshal问题
func load() {
	ConfigInfo.Server.Addr = viper.GetString("server.addr")
	ConfigInfo.Server.CorsOrigins = viper.GetStringSlice("server.cors_origins")
	ConfigInfo.Server.MaxBodySize = viper.GetInt("server.max_body_size")

	ConfigInfo.Database.Driver = viper.GetString("database.driver")
	ConfigInfo.Database.Mysql.Addr = viper.GetString("database.mysql.addr")
	ConfigInfo.Database.Mysql.Database = viper.GetString("database.mysql.database")
	ConfigInfo.Database.Mysql.Username = viper.GetString("database.mysql.username")
	ConfigInfo.Database.Mysql.Password = viper.GetString("database.mysql.password")
	ConfigInfo.Database.Mysql.Charset = viper.GetString("database.mysql.charset")
	ConfigInfo.Database.SqlitePath = viper.GetString("database.sqlite_path")
	ConfigInfo.Database.MaxOpenConns = viper.GetInt("database.max_open_conns")
	ConfigInfo.Database.MaxIdleConns = viper.GetInt("database.max_idle_conns")
	ConfigInfo.Database.ConnMaxLifetime = durationOr(viper.GetString("database.conn_max_lifetime"), time.Hour)

	ConfigInfo.Redis.Addr = viper.GetString("redis.addr")
	ConfigInfo.Redis.Password = viper.GetString("redis.password")
	ConfigInfo.Redis.DB = viper.GetInt("redis.db")
	ConfigInfo.Redis.ViewTTL = durationOr(viper.GetString("redis.view_ttl"), 24*time.Hour)

	ConfigInfo.Minio.Endpoint = viper.GetString("minio.endpoint")
	ConfigInfo.Minio.AccessKey = viper.GetString("minio.access_key")
	ConfigInfo.Minio.SecretKey = viper.GetString("minio.secret_key")
	ConfigInfo.Minio.UseSSL = viper.GetBool("minio.use_ssl")
	ConfigInfo.Minio.Bucket = viper.GetString("minio.bucket")
	ConfigInfo.Minio.PublicBaseURL = viper.GetString("minio.public_base_url")

	ConfigInfo.RabbitMq.URL = viper.GetString("rabbitmq.url")

	ConfigInfo.Jwt.Secret = viper.GetString("jwt.secret")
	ConfigInfo.Jwt.Timeout = durationOr(viper.GetString("jwt.timeout"), time.Hour)
	ConfigInfo.Jwt.MaxRefresh = durationOr(viper.GetString("jwt.max_refresh"), 240*time.Hour)

	ConfigInfo.Jaeger.Enabled = viper.GetBool("jaeger.enabled")
	ConfigInfo.Jaeger.AgentAddr = viper.GetString("jaeger.agent_addr")
	ConfigInfo.Jaeger.ServiceName = viper.GetString("jaeger.service_name")

	ConfigInfo.Sentinel.QPS = viper.GetFloat64("sentinel.qps")
}

func durationOr(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		logrus.Warnf("invalid duration %q, fallback to %s", raw, fallback)
		return fallback
	}
	return d
}
