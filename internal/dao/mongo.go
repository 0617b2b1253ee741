package dao

import (
	"context"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/haierkeys/keepsake-service/internal/domain"
	"github.com/haierkeys/keepsake-service/pkg/logger"
	"github.com/haierkeys/keepsake-service/pkg/util"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
)

const (
	collectionPhotos  = "photos"
	collectionLetters = "letters"
)

// MongoConfig MongoDB 配置
type MongoConfig struct {
	URI string `yaml:"uri" default:"mongodb://localhost:27017/keepsake"`
	// Database 为空时取 URI 中的库名，再为空时使用 keepsake
	Database string `yaml:"database"`
	// RetryInterval 连接失败后的重试间隔
	RetryInterval          string `yaml:"retry-interval" default:"5s"`
	ServerSelectionTimeout string `yaml:"server-selection-timeout" default:"30s"`
	ConnectTimeout         string `yaml:"connect-timeout" default:"30s"`
}

// MongoConnector 管理 MongoDB 连接，首次连接失败时按固定间隔重试
type MongoConnector struct {
	conf          MongoConfig
	logger        *zap.Logger
	retryInterval time.Duration
	dbName        string

	client atomic.Pointer[mongo.Client]
	db     atomic.Pointer[mongo.Database]

	// dial 建立连接并确认可用
	dial func(ctx context.Context) (*mongo.Client, error)
}

func NewMongoConnector(conf MongoConfig, zl *zap.Logger) (*MongoConnector, error) {
	if conf.URI == "" {
		return nil, errors.New("mongo uri is required")
	}
	interval := 5 * time.Second
	if conf.RetryInterval != "" {
		d, err := util.ParseDuration(conf.RetryInterval)
		if err != nil {
			return nil, errors.Wrap(err, "parse mongo retry-interval")
		}
		interval = d
	}

	c := &MongoConnector{
		conf:          conf,
		logger:        zl,
		retryInterval: interval,
		dbName:        mongoDatabaseName(conf),
	}
	c.dial = c.connect
	return c, nil
}

// mongoDatabaseName 解析库名
func mongoDatabaseName(conf MongoConfig) string {
	if conf.Database != "" {
		return conf.Database
	}
	if u, err := url.Parse(conf.URI); err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return "keepsake"
}

func (c *MongoConnector) connect(ctx context.Context) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(c.conf.URI)
	if d, err := util.ParseDuration(c.conf.ServerSelectionTimeout); err == nil && d > 0 {
		opts.SetServerSelectionTimeout(d)
	}
	if d, err := util.ParseDuration(c.conf.ConnectTimeout); err == nil && d > 0 {
		opts.SetConnectTimeout(d)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// Run 连接直到成功或 ctx 取消
func (c *MongoConnector) Run(ctx context.Context) error {
	for attempt := 1; ; attempt++ {
		client, err := c.dial(ctx)
		if err == nil {
			c.client.Store(client)
			c.db.Store(client.Database(c.dbName))
			c.logger.Info("mongodb connected",
				zap.String("database", c.dbName),
				zap.Int(logger.FieldAttempt, attempt))
			return nil
		}

		c.logger.Warn("mongodb connect failed, retrying",
			zap.Int(logger.FieldAttempt, attempt),
			zap.Duration("retryIn", c.retryInterval),
			zap.Error(err))

		timer := time.NewTimer(c.retryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Connected 是否已连接
func (c *MongoConnector) Connected() bool {
	return c.db.Load() != nil
}

// Database 已连接的数据库，未连接时返回 domain.ErrDatabaseUnavailable
func (c *MongoConnector) Database() (*mongo.Database, error) {
	db := c.db.Load()
	if db == nil {
		return nil, domain.ErrDatabaseUnavailable
	}
	return db, nil
}

func (c *MongoConnector) collection(name string) (*mongo.Collection, error) {
	db, err := c.Database()
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

func (c *MongoConnector) Close(ctx context.Context) error {
	client := c.client.Swap(nil)
	c.db.Store(nil)
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// mongoErr 统一转换驱动错误
func mongoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	case errors.Is(err, domain.ErrDatabaseUnavailable):
		return err
	case mongo.IsNetworkError(err), mongo.IsTimeout(err), errors.Is(err, mongo.ErrClientDisconnected):
		return errors.Wrap(domain.ErrDatabaseUnavailable, err.Error())
	}
	return errors.Wrap(err, "mongodb")
}
