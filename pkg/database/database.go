package database

import (
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	gormopentracing "gorm.io/plugin/opentracing"

	"videotube.com/config"
)

const (
	DriverMysql  = "mysql"
	DriverSqlite = "sqlite"
)

// Options 数据库连接配置
type Options struct {
	Driver string
	DSN    string
	// 连接池配置
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
	Tracing         bool
}

// FromConfig 从全局配置生成连接配置
func FromConfig() Options {
	c := config.ConfigInfo.Database
	opts := Options{
		Driver:          strings.ToLower(c.Driver),
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
		LogLevel:        logger.Warn,
		Tracing:         true,
	}
	switch opts.Driver {
	case DriverSqlite:
		opts.DSN = c.SqlitePath
	default:
		opts.Driver = DriverMysql
		opts.DSN = MysqlDSN()
	}
	return opts
}

// MysqlDSN 生成mysql的dsn
func MysqlDSN() string {
	m := config.ConfigInfo.Database.Mysql
	charset := m.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	return strings.Join([]string{m.Username, ":", m.Password, "@tcp(", m.Addr, ")/",
		m.Database, "?charset=", charset, "&parseTime=True&loc=Local"}, "")
}

// Open 创建数据库连接
func Open(opts Options) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch opts.Driver {
	case DriverMysql:
		dialector = mysql.Open(opts.DSN)
	case DriverSqlite:
		dialector = sqlite.Open(opts.DSN)
	default:
		return nil, errors.Errorf("unsupported database driver %q", opts.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(opts.LogLevel),
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	})
	if err != nil {
		return nil, errors.WithMessage(err, "gorm.Open failed")
	}
	if opts.Tracing {
		if err = db.Use(gormopentracing.New()); err != nil {
			return nil, errors.WithMessage(err, "register opentracing plugin failed")
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// 设置连接池参数
	if opts.Driver == DriverSqlite {
		// sqlite只允许一个写连接
		sqlDB.SetMaxOpenConns(1)
	} else if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	hlog.Infof("database connected, driver=%s", opts.Driver)
	return db, nil
}
