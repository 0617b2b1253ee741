// Package dao 实现数据访问层
package dao

import (
	"context"

	"github.com/haierkeys/keepsake-service/internal/domain"
	"github.com/haierkeys/keepsake-service/pkg/code"

	"go.uber.org/zap"
)

const (
	StoreMongo    = "mongodb"
	StoreJSONFile = "jsonfile"
	StoreSQL      = "sql"
)

// Config 记录存储配置
type Config struct {
	// RecordStore 记录存储类型：mongodb / jsonfile / sql
	RecordStore string `yaml:"record-store" default:"mongodb"`
	// DataPath jsonfile 存储目录
	DataPath string      `yaml:"data-path" default:"storage/data"`
	Mongo    MongoConfig `yaml:"mongo"`
	SQL      SQLConfig   `yaml:"sql"`
}

// Store 选定的记录存储及其生命周期
type Store struct {
	Photos  domain.PhotoRepository
	Letters domain.LetterRepository
	Type    string

	run   func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Run 阻塞直到存储可用或 ctx 取消；无需连接的存储立即返回
func (s *Store) Run(ctx context.Context) error {
	if s.run == nil {
		return nil
	}
	return s.run(ctx)
}

// Close 释放连接或文件句柄
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// NewStore 按配置创建记录存储
func NewStore(c Config, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch c.RecordStore {
	case StoreMongo:
		conn, err := NewMongoConnector(c.Mongo, logger)
		if err != nil {
			return nil, err
		}
		return &Store{
			Photos:  NewMongoPhotoRepository(conn),
			Letters: NewMongoLetterRepository(conn),
			Type:    StoreMongo,
			run:     conn.Run,
			close:   conn.Close,
		}, nil

	case StoreJSONFile:
		photos, err := NewJSONPhotoRepository(c.DataPath)
		if err != nil {
			return nil, err
		}
		letters, err := NewJSONLetterRepository(c.DataPath)
		if err != nil {
			return nil, err
		}
		return &Store{Photos: photos, Letters: letters, Type: StoreJSONFile}, nil

	case StoreSQL:
		db, err := NewDBEngine(c.SQL, logger)
		if err != nil {
			return nil, err
		}
		return &Store{
			Photos:  NewSQLPhotoRepository(db),
			Letters: NewSQLLetterRepository(db),
			Type:    StoreSQL,
			close: func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		}, nil
	}

	return nil, code.ErrorInvalidRecordStore.WithDetails(c.RecordStore)
}
