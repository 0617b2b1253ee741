package cmd

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/haierkeys/keepsake-service/pkg/fileurl"

	"github.com/pkg/errors"
	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type runFlags struct {
	dir     string // 工作目录
	port    string // 监听端口，覆盖配置
	runMode string // gin 运行模式，覆盖配置
	config  string // 配置文件路径
}

// configCandidates 未指定 -c 时依次查找
var configCandidates = []string{"config/config-dev.yaml", "config.yaml", "config/config.yaml"}

// configPollInterval 配置文件轮询间隔
const configPollInterval = 5 * time.Second

func init() {
	runEnv := new(runFlags)

	runCommand := &cobra.Command{
		Use:   "run [-c config_file] [-d working_dir] [-p port] [-m mode]",
		Short: "启动照片与信件服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			if runEnv.dir != "" {
				if err := os.Chdir(runEnv.dir); err != nil {
					return errors.Wrapf(err, "chdir %s", runEnv.dir)
				}
				bootstrapLogger.Info("working directory changed", zap.String("dir", runEnv.dir))
			}

			path, err := resolveConfigPath(runEnv.config, configDefault)
			if err != nil {
				return err
			}
			runEnv.config = path

			s, err := NewServer(runEnv)
			if err != nil {
				return errors.Wrap(err, "start service")
			}

			cur := &currentServer{s: s}
			go watchConfig(runEnv, cur)

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			s = cur.get()
			s.logger.Info("Received shutdown signal, initiating graceful shutdown...")
			s.sc.SendCloseSignal(nil)

			// 等待 http 监听与 App 容器全部退出
			if err := s.sc.WaitClosed(); err != nil {
				s.logger.Error("Shutdown completed with error", zap.Error(err))
				return nil
			}
			s.logger.Info("Service has been shut down gracefully.")
			return nil
		},
	}

	rootCmd.AddCommand(runCommand)
	fs := runCommand.Flags()
	fs.StringVarP(&runEnv.dir, "dir", "d", "", "run dir")
	fs.StringVarP(&runEnv.port, "port", "p", "", "run port")
	fs.StringVarP(&runEnv.runMode, "mode", "m", "", "run mode")
	fs.StringVarP(&runEnv.config, "config", "c", "", "config file")
}

// resolveConfigPath 返回要加载的配置文件
// 指定路径原样返回；否则按 configCandidates 查找，都不存在时写出内置默认配置
func resolveConfigPath(flagPath, fallback string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	for _, p := range configCandidates {
		if fileurl.IsExist(p) {
			return p, nil
		}
	}

	path := configCandidates[len(configCandidates)-1]
	bootstrapLogger.Warn("config file not found, creating default config", zap.String("path", path))

	if err := fileurl.CreatePath(path, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "create config dir")
	}
	if err := os.WriteFile(path, []byte(fallback), 0o644); err != nil {
		return "", errors.Wrap(err, "write default config")
	}
	return path, nil
}

// currentServer 热加载后替换的 Server 引用
type currentServer struct {
	mu sync.Mutex
	s  *Server
}

func (c *currentServer) get() *Server {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s
}

func (c *currentServer) set(s *Server) {
	c.mu.Lock()
	c.s = s
	c.mu.Unlock()
}

// watchConfig 配置文件被写入时关闭当前 Server 并按新配置重建
// 重建失败时等待下一次写入
func watchConfig(runEnv *runFlags, cur *currentServer) {
	w := watcher.New()
	w.SetMaxEvents(1)
	w.FilterOps(watcher.Write)

	if err := w.Add(runEnv.config); err != nil {
		cur.get().logger.Error("config watcher file error", zap.Error(err))
		return
	}

	go func() {
		for {
			select {
			case event := <-w.Event:
				old := cur.get()
				old.logger.Info("config changed, reloading",
					zap.String("event", event.Op.String()), zap.String("file", event.Path))
				old.sc.SendCloseSignal(nil)
				if err := old.sc.WaitClosed(); err != nil {
					old.logger.Warn("previous server closed with error", zap.Error(err))
				}

				s, err := NewServer(runEnv)
				if err != nil {
					bootstrapLogger.Error("reload failed", zap.Error(err))
					continue
				}
				cur.set(s)
			case err := <-w.Error:
				cur.get().logger.Error("config watcher error", zap.Error(err))
			case <-w.Closed:
				bootstrapLogger.Info("config watcher closed")
				return
			}
		}
	}()

	if err := w.Start(configPollInterval); err != nil {
		cur.get().logger.Error("config watcher start error", zap.Error(err))
	}
}
