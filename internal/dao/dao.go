// Package dao 实现数据访问层
package dao

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kiyensi/store-settings-service/pkg/fileurl"
	"github.com/kiyensi/store-settings-service/pkg/util"
	"github.com/kiyensi/store-settings-service/pkg/writequeue"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig 数据库连接配置
type DatabaseConfig struct {
	Type         string
	Path         string
	Host         string
	Name         string
	UserName     string
	Password     string
	Charset      string
	ParseTime    bool
	TablePrefix  string
	AutoMigrate  bool
	MaxIdleConns int
	MaxOpenConns int
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m、1h
	ConnMaxLifetime string
	// ConnMaxIdleTime 空闲连接最大生命周期，支持格式：10m、1h
	ConnMaxIdleTime string
	RunMode         string
}

// Dao 数据访问对象，持有数据库连接与写队列
type Dao struct {
	db         *gorm.DB
	logger     *zap.Logger
	writeQueue *writequeue.Queue
}

// New 创建 Dao 实例
// writeQueue 可为 nil，此时写操作直接执行不经过队列
func New(db *gorm.DB, log *zap.Logger, writeQueue *writequeue.Queue) *Dao {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dao{db: db, logger: log, writeQueue: writeQueue}
}

// DB 返回底层 gorm 连接
func (d *Dao) DB() *gorm.DB {
	return d.db
}

// Logger 返回日志器
func (d *Dao) Logger() *zap.Logger {
	return d.logger
}

// ExecuteWrite 将写操作提交到写队列串行执行
// SQLite 单写者限制下避免 "database is locked"
func (d *Dao) ExecuteWrite(ctx context.Context, fn func(db *gorm.DB) error) error {
	if d.writeQueue == nil {
		return fn(d.db)
	}
	return d.writeQueue.Execute(ctx, func() error {
		return fn(d.db)
	})
}

// SnapshotDatabase 把 sqlite 数据库的一致性快照写到 dst
// 走写队列，与业务写操作串行；dst 不能预先存在，仅 sqlite 引擎支持
func (d *Dao) SnapshotDatabase(ctx context.Context, dst string) error {
	return d.ExecuteWrite(ctx, func(db *gorm.DB) error {
		return db.WithContext(ctx).Exec("VACUUM INTO ?", dst).Error
	})
}

// NewDBEngine 按配置创建数据库引擎
func NewDBEngine(c *DatabaseConfig) (*gorm.DB, error) {

	dialector := newDialector(c)
	if dialector == nil {
		return nil, fmt.Errorf("unsupported database type: %s", c.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix, // 表名前缀，`User` 的表名应该是 `t_users`
			SingularTable: true,          // 使用单数表名，启用该选项，此时，`User` 的表名应该是 `t_user`
		},
	})
	if err != nil {
		return nil, err
	}
	if c.RunMode == "debug" {
		db.Config.Logger = logger.Default.LogMode(logger.Info)
	} else {
		db.Config.Logger = logger.Default.LogMode(logger.Silent)
	}

	// 获取通用数据库对象 sql.DB ，然后使用其提供的功能
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SetMaxIdleConns 用于设置连接池中空闲连接的最大数量。
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)

	// SetMaxOpenConns 设置打开数据库连接的最大数量。
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)

	// SetConnMaxLifetime 设置了连接可复用的最大时间。
	sqlDB.SetConnMaxLifetime(parseDurationOr(c.ConnMaxLifetime, 30*time.Minute))

	// SetConnMaxIdleTime 设置连接空闲的最大时间。
	sqlDB.SetConnMaxIdleTime(parseDurationOr(c.ConnMaxIdleTime, 10*time.Minute))

	_ = db.Use(&gormTracing.OpentracingPlugin{})

	return db, nil

}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	if d, err := util.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

func newDialector(c *DatabaseConfig) gorm.Dialector {
	if c.Type == "mysql" {
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		))
	} else if c.Type == "postgres" {
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
			c.Host,
			c.UserName,
			c.Password,
			c.Name,
		))
	} else if c.Type == "sqlite" {

		if !fileurl.IsExist(c.Path) {
			fileurl.CreatePath(c.Path, os.ModePerm)
		}
		return sqlite.Open(c.Path)
	}
	return nil

}
