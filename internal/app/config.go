// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/haierkeys/keepsake-service/internal/dao"
	"github.com/haierkeys/keepsake-service/internal/service"
	"github.com/haierkeys/keepsake-service/pkg/storage"
	"github.com/haierkeys/keepsake-service/pkg/util"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	App      AppSettings    `yaml:"app"`
	Database dao.Config     `yaml:"database"`
	Storage  storage.Config `yaml:"storage"`
	Cors     CorsConfig     `yaml:"cors"`
	Tracer   TracerConfig   `yaml:"tracer"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"info"`
	// File 日志文件路径，为空时只输出到 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 监听地址
	HttpPort string `yaml:"http-port" default:":3000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址（metrics/pprof），为空时不启动
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultContextTimeout 请求上下文超时（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// UploadMaxSize 单张图片大小上限，支持 KB/MB 后缀
	UploadMaxSize string `yaml:"upload-max-size" default:"5MB"`
	// AllowedExts 托管存储允许的图片扩展名
	AllowedExts []string `yaml:"allowed-exts" default:"[\".jpg\",\".jpeg\",\".png\",\".gif\"]"`
	// UploadRateLimit 每分钟允许的上传次数，0 表示不限
	UploadRateLimit int `yaml:"upload-rate-limit" default:"30"`
	// OrphanSweepInterval 孤儿图片清理间隔，0 表示关闭
	OrphanSweepInterval string `yaml:"orphan-sweep-interval" default:"6h"`
	// OrphanGracePeriod 早于该时长且无记录引用的图片才会被清理
	OrphanGracePeriod string `yaml:"orphan-grace-period" default:"1h"`
}

// CorsConfig 跨域配置
type CorsConfig struct {
	AllowOrigins []string `yaml:"allow-origins" default:"[\"https://songpengju.github.io\",\"http://localhost:8000\"]"`
	AllowMethods []string `yaml:"allow-methods" default:"[\"GET\",\"POST\",\"PUT\",\"DELETE\",\"OPTIONS\"]"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
}

// LoadConfig 从文件加载配置，随后应用环境变量覆盖
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	c, err := ParseConfig(file)
	if err != nil {
		return nil, realpath, err
	}
	c.File = realpath

	c.ApplyEnv(os.LookupEnv)
	return c, realpath, nil
}

// ParseConfig 解析 YAML 并填充默认值
func ParseConfig(data []byte) (*AppConfig, error) {
	c := new(AppConfig)

	// 设置默认值
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "set default config failed")
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "parse config file failed")
	}

	// 再次设置默认值，以填充 YAML 中存在但值为空的字段
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "re-set default config failed")
	}
	return c, nil
}

// envOverrides 环境变量与配置项的对应关系
var envOverrides = map[string]func(c *AppConfig, v string){
	"PORT": func(c *AppConfig, v string) {
		if !strings.Contains(v, ":") {
			v = ":" + v
		}
		c.Server.HttpPort = v
	},
	"MONGODB_URI":     func(c *AppConfig, v string) { c.Database.Mongo.URI = v },
	"RECORD_STORE":    func(c *AppConfig, v string) { c.Database.RecordStore = v },
	"DATA_DIR":        func(c *AppConfig, v string) { c.Database.DataPath = v },
	"UPLOAD_DIR":      func(c *AppConfig, v string) { c.Storage.SavePath = v },
	"STORAGE_TYPE":    func(c *AppConfig, v string) { c.Storage.Type = v },
	"UPLOAD_MAX_SIZE": func(c *AppConfig, v string) { c.App.UploadMaxSize = v },

	"S3_ENDPOINT":          func(c *AppConfig, v string) { c.Storage.Endpoint = v },
	"S3_REGION":            func(c *AppConfig, v string) { c.Storage.Region = v },
	"S3_BUCKET":            func(c *AppConfig, v string) { c.Storage.BucketName = v },
	"S3_ACCESS_KEY_ID":     func(c *AppConfig, v string) { c.Storage.AccessKeyID = v },
	"S3_SECRET_ACCESS_KEY": func(c *AppConfig, v string) { c.Storage.AccessKeySecret = v },
	"S3_PUBLIC_URL":        func(c *AppConfig, v string) { c.Storage.PublicURL = v },

	"OSS_ENDPOINT":          func(c *AppConfig, v string) { c.Storage.Endpoint = v },
	"OSS_BUCKET":            func(c *AppConfig, v string) { c.Storage.BucketName = v },
	"OSS_ACCESS_KEY_ID":     func(c *AppConfig, v string) { c.Storage.AccessKeyID = v },
	"OSS_ACCESS_KEY_SECRET": func(c *AppConfig, v string) { c.Storage.AccessKeySecret = v },
}

// ApplyEnv 用环境变量覆盖配置，空值忽略
func (c *AppConfig) ApplyEnv(lookup func(string) (string, bool)) {
	for key, apply := range envOverrides {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			apply(c, strings.TrimSpace(v))
		}
	}
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	if err := os.WriteFile(c.File, data, 0644); err != nil {
		return errors.Wrap(err, "write config file failed")
	}
	return nil
}

// GetAssetServiceConfig 提取文件存储服务配置
func (c *AppConfig) GetAssetServiceConfig() service.AssetServiceConfig {
	return service.AssetServiceConfig{
		StorageType:   c.Storage.Type,
		MaxUploadSize: util.ParseSize(c.App.UploadMaxSize, service.DefaultMaxUploadSize),
		AllowedExts:   c.App.AllowedExts,
	}
}

// GetContextTimeout 请求上下文超时
func (c *AppConfig) GetContextTimeout() time.Duration {
	return time.Duration(c.App.DefaultContextTimeout) * time.Second
}

// GetOrphanSweepInterval 孤儿图片清理间隔，解析失败或为 0 时返回 0
func (c *AppConfig) GetOrphanSweepInterval() time.Duration {
	d, err := util.ParseDuration(c.App.OrphanSweepInterval)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// GetOrphanGracePeriod 孤儿图片保护期
func (c *AppConfig) GetOrphanGracePeriod() time.Duration {
	d, err := util.ParseDuration(c.App.OrphanGracePeriod)
	if err != nil || d < 0 {
		return time.Hour
	}
	return d
}

// Redacted 返回隐藏密钥后的副本，用于启动日志
func (c *AppConfig) Redacted() AppConfig {
	cp := *c
	if cp.Storage.AccessKeySecret != "" {
		cp.Storage.AccessKeySecret = "******"
	}
	if cp.Storage.Password != "" {
		cp.Storage.Password = "******"
	}
	if cp.Database.SQL.Password != "" {
		cp.Database.SQL.Password = "******"
	}
	cp.Database.Mongo.URI = redactURI(cp.Database.Mongo.URI)
	return cp
}

// redactURI 隐藏连接串中的密码
func redactURI(uri string) string {
	scheme := strings.Index(uri, "://")
	at := strings.LastIndex(uri, "@")
	if scheme < 0 || at < scheme {
		return uri
	}
	cred := uri[scheme+3 : at]
	if i := strings.Index(cred, ":"); i >= 0 {
		return uri[:scheme+3] + cred[:i] + ":******" + uri[at:]
	}
	return uri
}
